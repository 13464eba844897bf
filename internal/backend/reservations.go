package backend

import (
	"context"
	"fmt"
	"net/http"

	"parkingportal/internal/entities"
)

// CheckAvailability is public on the backend and needs no token.
func (c *Client) CheckAvailability(ctx context.Context, req entities.AvailabilityRequest) ([]entities.SlotAvailability, error) {
	var resp entities.AvailabilityResponse
	if _, err := c.doJSON(ctx, http.MethodPost, "/slots/check-availability/", "", req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *Client) CreateReservation(ctx context.Context, creds Credentials, req entities.ReservationRequest) error {
	return c.doAuthed(ctx, creds, http.MethodPost, "/reservations/create/", req, nil)
}

func (c *Client) MyReservations(ctx context.Context, creds Credentials) ([]entities.Reservation, error) {
	var out []entities.Reservation
	if err := c.doAuthed(ctx, creds, http.MethodGet, "/reservations/my/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CancelMyReservation(ctx context.Context, creds Credentials, id int) error {
	return c.doAuthed(ctx, creds, http.MethodPost, fmt.Sprintf("/reservations/%d/cancel/", id), nil, nil)
}

func (c *Client) AllReservations(ctx context.Context, creds Credentials) ([]entities.Reservation, error) {
	var out []entities.Reservation
	if err := c.doAuthed(ctx, creds, http.MethodGet, "/admin/reservations/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApproveReservation(ctx context.Context, creds Credentials, id int) error {
	return c.doAuthed(ctx, creds, http.MethodPatch, fmt.Sprintf("/reservations/%d/approve/", id), map[string]any{}, nil)
}

func (c *Client) CheckInReservation(ctx context.Context, creds Credentials, id int) error {
	return c.doAuthed(ctx, creds, http.MethodPatch, fmt.Sprintf("/admin/reservations/%d/check-in/", id), map[string]any{}, nil)
}

func (c *Client) CheckOutReservation(ctx context.Context, creds Credentials, id int) error {
	return c.doAuthed(ctx, creds, http.MethodPatch, fmt.Sprintf("/admin/reservations/%d/check-out/", id), map[string]any{}, nil)
}

func (c *Client) CancelReservation(ctx context.Context, creds Credentials, id int) error {
	return c.doAuthed(ctx, creds, http.MethodPatch, fmt.Sprintf("/admin/reservations/%d/cancel/", id), map[string]any{}, nil)
}

func (c *Client) MarkReservationPaid(ctx context.Context, creds Credentials, id int) error {
	return c.doAuthed(ctx, creds, http.MethodPut, fmt.Sprintf("/reservations/%d/mark-paid/", id), map[string]any{}, nil)
}

// CreateCheckout asks the backend to open a hosted checkout session.
func (c *Client) CreateCheckout(ctx context.Context, creds Credentials, req entities.CheckoutRequest) (*entities.CheckoutSession, error) {
	var resp entities.CheckoutResponse
	if err := c.doAuthed(ctx, creds, http.MethodPost, "/online-payments/", req, &resp); err != nil {
		return nil, err
	}
	if resp.Data.CheckoutURL == "" {
		return nil, fmt.Errorf("checkout response without checkout_url: %s", resp.Message)
	}
	return &resp.Data, nil
}
