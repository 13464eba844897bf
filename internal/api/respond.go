package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"parkingportal/internal/backend"
	apperrors "parkingportal/internal/errors"

	"github.com/gorilla/mux"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto a status code and ErrorResponse.
func writeError(w http.ResponseWriter, err error) {
	var (
		verr *apperrors.ValidationError
		herr *apperrors.HTTPError
		uerr *apperrors.UpstreamError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: verr.Message, Field: verr.Field})
	case errors.As(err, &herr):
		writeJSON(w, herr.Code, ErrorResponse{Error: herr.Message, Redirect: herr.Redirect})
	case errors.Is(err, backend.ErrSessionExpired):
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Your session has expired. Please sign in again.", Redirect: "/sign-in"})
	case errors.As(err, &uerr):
		if uerr.Status >= 400 && uerr.Status < 500 {
			writeJSON(w, uerr.Status, ErrorResponse{Error: "The request was rejected.", Detail: uerr.Body})
			return
		}
		log.Printf("Upstream failure: %v", err)
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: "The parking service is unavailable. Please try again."})
	default:
		log.Printf("Internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid ID"})
		return 0, false
	}
	return id, true
}

func message(msg string) map[string]string {
	return map[string]string{"message": msg}
}
