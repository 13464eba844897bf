package api

import (
	"errors"
	"net/http"

	apperrors "parkingportal/internal/errors"
	"parkingportal/internal/service"
	"parkingportal/internal/session"
	"parkingportal/internal/wizard"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// Create starts a wizard from the search form. An incomplete origin sends
// the browser back to the entry page.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req StartBookingRequest
	if !decode(w, r, &req) {
		return
	}
	v, err := h.Service.Start(r.Context(), session.From(r.Context()), req)
	if err != nil {
		var verr *apperrors.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: verr.Message, Field: verr.Field, Redirect: "/"})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.Service.View(session.From(r.Context()), mux.Vars(r)["id"])
	h.respond(w, v, err)
}

func (h *BookingHandler) Discard(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Discard(session.From(r.Context()), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookingHandler) RefreshSlots(w http.ResponseWriter, r *http.Request) {
	v, err := h.Service.RefreshSlots(r.Context(), session.From(r.Context()), mux.Vars(r)["id"])
	h.respond(w, v, err)
}

func (h *BookingHandler) SelectSlot(w http.ResponseWriter, r *http.Request) {
	var req SelectSlotRequest
	if !decode(w, r, &req) {
		return
	}
	v, err := h.Service.SelectSlot(session.From(r.Context()), mux.Vars(r)["id"], req.SlotID)
	h.respond(w, v, err)
}

func (h *BookingHandler) SetVehicle(w http.ResponseWriter, r *http.Request) {
	var req wizard.VehicleInfo
	if !decode(w, r, &req) {
		return
	}
	v, err := h.Service.SetVehicle(session.From(r.Context()), mux.Vars(r)["id"], req)
	h.respond(w, v, err)
}

func (h *BookingHandler) SetPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if !decode(w, r, &req) {
		return
	}
	method := wizard.ParsePaymentMethod(req.Method)
	v, err := h.Service.SetPayment(session.From(r.Context()), mux.Vars(r)["id"], method, req.BillingPhone)
	h.respond(w, v, err)
}

func (h *BookingHandler) Next(w http.ResponseWriter, r *http.Request) {
	v, err := h.Service.Next(session.From(r.Context()), mux.Vars(r)["id"])
	h.respond(w, v, err)
}

func (h *BookingHandler) Previous(w http.ResponseWriter, r *http.Request) {
	v, err := h.Service.Previous(session.From(r.Context()), mux.Vars(r)["id"])
	h.respond(w, v, err)
}

func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.Submit(r.Context(), session.From(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// respond writes the wizard view. A gate or validation failure still carries
// the current view so the page can re-render.
func (h *BookingHandler) respond(w http.ResponseWriter, v wizard.View, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, v)
		return
	}
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) && v.ID != "" {
		writeJSON(w, http.StatusUnprocessableEntity, struct {
			ErrorResponse
			Booking wizard.View `json:"booking"`
		}{ErrorResponse{Error: verr.Message, Field: verr.Field}, v})
		return
	}
	writeError(w, err)
}
