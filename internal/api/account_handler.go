package api

import (
	"net/http"

	"parkingportal/internal/entities"
	"parkingportal/internal/service"
	"parkingportal/internal/session"
)

type AccountHandler struct {
	Service *service.AccountService
}

func NewAccountHandler(svc *service.AccountService) *AccountHandler {
	return &AccountHandler{Service: svc}
}

func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.Profile(r.Context(), session.From(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req entities.ProfileUpdate
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.UpdateProfile(r.Context(), session.From(r.Context()), req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, message("Profile updated"))
}

func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req entities.PasswordChange
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.ChangePassword(r.Context(), session.From(r.Context()), req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, message("Password changed"))
}

func (h *AccountHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Notifications(r.Context(), session.From(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AccountHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.Service.UnreadCount(r.Context(), session.From(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread_count": n})
}

func (h *AccountHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.MarkAllRead(r.Context(), session.From(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, message("All notifications marked as read"))
}
