package api

import (
	"parkingportal/internal/entities"
	"parkingportal/internal/wizard"
)

// Auth
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string        `json:"token"`
	User  entities.User `json:"user"`
}

// Booking wizard
type SelectSlotRequest struct {
	SlotID int `json:"slot_id"`
}

type PaymentRequest struct {
	Method       string `json:"method"`
	BillingPhone string `json:"billing_phone"`
}

type StartBookingRequest = wizard.Origin

// Reservations
type CancelRequest struct {
	Confirm bool `json:"confirm"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error    string `json:"error"`
	Field    string `json:"field,omitempty"`
	Redirect string `json:"redirect,omitempty"`
	Detail   string `json:"detail,omitempty"`
}
