package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"parkingportal/internal/backend"
	"parkingportal/internal/entities"
	apperrors "parkingportal/internal/errors"
	"parkingportal/internal/reservation"
	"parkingportal/internal/session"
)

type MyReservationsBackend interface {
	MyReservations(ctx context.Context, creds backend.Credentials) ([]entities.Reservation, error)
	CancelMyReservation(ctx context.Context, creds backend.Credentials, id int) error
}

// ReservationService serves the signed-in user's own reservations.
type ReservationService struct {
	Backend    MyReservationsBackend
	Classifier reservation.Classifier
	now        func() time.Time
}

func NewReservationService(be MyReservationsBackend, cls reservation.Classifier) *ReservationService {
	return &ReservationService{Backend: be, Classifier: cls, now: time.Now}
}

func (s *ReservationService) List(ctx context.Context, sess *session.Context) ([]reservation.UserRow, error) {
	records, err := s.Backend.MyReservations(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return s.Classifier.UserRows(records, s.now()), nil
}

func (s *ReservationService) find(ctx context.Context, sess *session.Context, id int) (entities.Reservation, error) {
	records, err := s.Backend.MyReservations(ctx, sess)
	if err != nil {
		return entities.Reservation{}, fmt.Errorf("list reservations: %w", err)
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return entities.Reservation{}, apperrors.ErrNotFound("reservation not found")
}

// Cancel cancels one of the user's reservations. The caller must have
// confirmed; the reservation must not have started.
func (s *ReservationService) Cancel(ctx context.Context, sess *session.Context, id int, confirmed bool) (*reservation.UserRow, error) {
	if !confirmed {
		return nil, apperrors.NewValidationError("confirm", "confirm the cancellation to continue")
	}
	r, err := s.find(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !s.Classifier.CanSelfCancel(r, now) {
		return nil, apperrors.ErrConflict("this reservation can no longer be cancelled")
	}
	if err := s.Backend.CancelMyReservation(ctx, sess, id); err != nil {
		log.Printf("Error cancelling reservation %d for user %s: %v", id, sess.User.Username, err)
		return nil, fmt.Errorf("cancel reservation: %w", err)
	}

	r.IsCancelled = true
	rows := s.Classifier.UserRows([]entities.Reservation{r}, now)
	return &rows[0], nil
}

func (s *ReservationService) Receipt(ctx context.Context, sess *session.Context, id int) ([]byte, string, error) {
	r, err := s.find(ctx, sess, id)
	if err != nil {
		return nil, "", err
	}
	if r.IsCancelled {
		return nil, "", apperrors.ErrConflict("cancelled reservations have no receipt")
	}
	iv, _ := s.Classifier.Interval(r)
	return BuildReceiptPDF(r, iv, s.now().In(s.Classifier.Loc))
}
