package api

import (
	"net/http"

	"parkingportal/internal/reservation"
	"parkingportal/internal/service"
	"parkingportal/internal/session"

	"github.com/gorilla/mux"
)

type AdminHandler struct {
	Service *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

// ListReservations serves one tab of the admin board. refresh=1 reloads the
// board from the backend.
func (h *AdminHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tab, err := reservation.ParseBucket(q.Get("tab"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	refresh := q.Get("refresh") == "1" || q.Get("refresh") == "true"
	rows, err := h.Service.Reservations(r.Context(), session.From(r.Context()), tab, q.Get("q"), refresh)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *AdminHandler) Act(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	action, err := reservation.ParseAction(mux.Vars(r)["action"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	rec, err := h.Service.Act(r.Context(), session.From(r.Context()), id, action)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Dashboard(r.Context(), session.From(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type adminUserRow struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	IsActive   bool   `json:"is_active"`
	DateJoined string `json:"date_joined"`
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.Users(r.Context(), session.From(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	rows := make([]adminUserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, adminUserRow{
			ID:         u.ID,
			Username:   u.Username,
			Email:      u.Email,
			FullName:   u.FullName(),
			IsActive:   u.IsActive,
			DateJoined: u.DateJoined,
		})
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *AdminHandler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	active := mux.Vars(r)["op"] == "activate"
	if err := h.Service.SetUserActive(r.Context(), session.From(r.Context()), id, active); err != nil {
		writeError(w, err)
		return
	}
	if active {
		writeJSON(w, http.StatusOK, message("User activated"))
		return
	}
	writeJSON(w, http.StatusOK, message("User deactivated"))
}
