package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"parkingportal/internal/backend"
	"parkingportal/internal/entities"
	apperrors "parkingportal/internal/errors"
	"parkingportal/internal/reservation"
	"parkingportal/internal/session"
)

type AdminBackend interface {
	AllReservations(ctx context.Context, creds backend.Credentials) ([]entities.Reservation, error)
	ApproveReservation(ctx context.Context, creds backend.Credentials, id int) error
	CheckInReservation(ctx context.Context, creds backend.Credentials, id int) error
	CheckOutReservation(ctx context.Context, creds backend.Credentials, id int) error
	CancelReservation(ctx context.Context, creds backend.Credentials, id int) error
	MarkReservationPaid(ctx context.Context, creds backend.Credentials, id int) error
	DashboardSummary(ctx context.Context, creds backend.Credentials) (*entities.DashboardSummary, error)
	Users(ctx context.Context, creds backend.Credentials) ([]entities.AdminUser, error)
	ActivateUser(ctx context.Context, creds backend.Credentials, id int) error
	DeactivateUser(ctx context.Context, creds backend.Credentials, id int) error
}

// AdminService backs the admin console. Each admin session keeps its own
// cached board; actions update it in place after the backend accepts them.
type AdminService struct {
	Backend    AdminBackend
	Classifier reservation.Classifier

	mu     sync.Mutex
	boards map[string]*reservation.Board
	now    func() time.Time
}

func NewAdminService(be AdminBackend, cls reservation.Classifier) *AdminService {
	return &AdminService{
		Backend:    be,
		Classifier: cls,
		boards:     map[string]*reservation.Board{},
		now:        time.Now,
	}
}

func (s *AdminService) board(key string) *reservation.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[key]
	if !ok {
		b = reservation.NewBoard(s.Classifier)
		s.boards[key] = b
	}
	return b
}

func (s *AdminService) load(ctx context.Context, sess *session.Context, b *reservation.Board) error {
	records, err := s.Backend.AllReservations(ctx, sess)
	if err != nil {
		return fmt.Errorf("list reservations: %w", err)
	}
	b.Replace(records, s.now())
	return nil
}

// Reservations returns one tab of the board. The backend is queried on first
// use and whenever refresh is set.
func (s *AdminService) Reservations(ctx context.Context, sess *session.Context, tab reservation.Bucket, query string, refresh bool) ([]reservation.Row, error) {
	b := s.board(sess.Key)
	if refresh || !b.Loaded() {
		if err := s.load(ctx, sess, b); err != nil {
			return nil, err
		}
	}
	return b.Tab(tab, query, s.now()), nil
}

// Act runs an admin action. It is refused when the action is not offered for
// the record at this instant. On backend failure the board is left unchanged.
func (s *AdminService) Act(ctx context.Context, sess *session.Context, id int, action reservation.Action) (*entities.Reservation, error) {
	b := s.board(sess.Key)
	if !b.Loaded() {
		if err := s.load(ctx, sess, b); err != nil {
			return nil, err
		}
	}
	allowed, ok := b.Allowed(id, action, s.now())
	if !ok {
		return nil, apperrors.ErrNotFound("reservation not found")
	}
	if !allowed {
		return nil, apperrors.ErrConflict(fmt.Sprintf("%s is not available for this reservation", action))
	}

	if err := s.mutate(ctx, sess, id, action); err != nil {
		log.Printf("Error running %s on reservation %d: %v", action, id, err)
		return nil, fmt.Errorf("%s reservation: %w", action, err)
	}

	b.Apply(id, action)
	r, _ := b.Get(id)
	return &r, nil
}

func (s *AdminService) mutate(ctx context.Context, sess *session.Context, id int, action reservation.Action) error {
	switch action {
	case reservation.Approve:
		return s.Backend.ApproveReservation(ctx, sess, id)
	case reservation.CheckIn:
		return s.Backend.CheckInReservation(ctx, sess, id)
	case reservation.CheckOut:
		return s.Backend.CheckOutReservation(ctx, sess, id)
	case reservation.Cancel:
		return s.Backend.CancelReservation(ctx, sess, id)
	case reservation.MarkPaid:
		return s.Backend.MarkReservationPaid(ctx, sess, id)
	}
	return apperrors.NewValidationError("action", "unknown action")
}

func (s *AdminService) Dashboard(ctx context.Context, sess *session.Context) (*entities.DashboardSummary, error) {
	return s.Backend.DashboardSummary(ctx, sess)
}

func (s *AdminService) Users(ctx context.Context, sess *session.Context) ([]entities.AdminUser, error) {
	return s.Backend.Users(ctx, sess)
}

func (s *AdminService) SetUserActive(ctx context.Context, sess *session.Context, id int, active bool) error {
	if active {
		return s.Backend.ActivateUser(ctx, sess, id)
	}
	return s.Backend.DeactivateUser(ctx, sess, id)
}

// EndSession forgets the board of a closed session.
func (s *AdminService) EndSession(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.boards, key)
	s.mu.Unlock()
}

// SweepBoards drops boards not refreshed since cutoff.
func (s *AdminService) SweepBoards(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key, b := range s.boards {
		if b.LoadedAt().Before(cutoff) {
			delete(s.boards, key)
			n++
		}
	}
	return n
}
