package api

import (
	"net/http"

	"parkingportal/internal/service"
	"parkingportal/internal/session"
)

// PaymentHandler receives the browser back from the checkout page.
type PaymentHandler struct {
	Service *service.BookingService
}

func NewPaymentHandler(svc *service.BookingService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// Callback confirms or abandons the session's pending reservation and
// redirects to the page that reports the outcome.
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	sess := session.From(r.Context())
	if !sess.Authenticated() {
		http.Redirect(w, r, h.Service.FrontendURL+"/sign-in", http.StatusSeeOther)
		return
	}
	q := r.URL.Query()
	to := h.Service.ConfirmPayment(r.Context(), sess, q.Get("payment"), q.Get("session_id"))
	http.Redirect(w, r, to, http.StatusSeeOther)
}
