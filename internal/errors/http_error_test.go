package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("plate_number", "is required")
	if err.Error() != "plate_number: is required" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if NewValidationError("", "slot required").Error() != "slot required" {
		t.Fatalf("message without field should be bare")
	}
}

func TestUpstreamErrorUnwrapsThroughWrapping(t *testing.T) {
	base := &UpstreamError{Op: "POST /reservations/create/", Status: 400, Body: `{"date":["required"]}`}
	wrapped := fmt.Errorf("create reservation: %w", base)

	var target *UpstreamError
	if !errors.As(wrapped, &target) {
		t.Fatalf("expected UpstreamError in chain")
	}
	if target.Status != http.StatusBadRequest {
		t.Fatalf("status = %d", target.Status)
	}
}

func TestHTTPErrorRedirect(t *testing.T) {
	err := ErrUnauthorized("sign in required").WithRedirect("/sign-in")
	if err.Code != http.StatusUnauthorized || err.Redirect != "/sign-in" {
		t.Fatalf("unexpected error %+v", err)
	}
}
