package api

import (
	"net/http"
	"time"

	"parkingportal/internal/entities"
	apperrors "parkingportal/internal/errors"
	"parkingportal/internal/service"
	"parkingportal/internal/session"
)

type AuthHandler struct {
	service      service.AuthService
	cookieTTL    time.Duration
	secureCookie bool
}

func NewAuthHandler(svc service.AuthService, cookieTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{service: svc, cookieTTL: cookieTTL, secureCookie: secureCookie}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req entities.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.service.Register(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message("Account created. You can now sign in."))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, false)
}

func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, true)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, admin bool) {
	var req LoginRequest
	if !decode(w, r, &req) {
		return
	}
	sess, token, err := h.service.Login(r.Context(), entities.LoginRequest{Username: req.Username, Password: req.Password}, admin)
	if err != nil {
		writeError(w, err)
		return
	}
	http.SetCookie(w, h.cookie(token, int(h.cookieTTL.Seconds())))
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: sess.User})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := session.From(r.Context()); sess != nil {
		if err := h.service.Logout(r.Context(), sess); err != nil {
			writeError(w, err)
			return
		}
	}
	http.SetCookie(w, h.cookie("", -1))
	writeJSON(w, http.StatusOK, message("Signed out"))
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := session.From(r.Context())
	if !sess.Authenticated() {
		writeError(w, apperrors.ErrUnauthorized("Not signed in"))
		return
	}
	writeJSON(w, http.StatusOK, sess.User)
}

func (h *AuthHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
