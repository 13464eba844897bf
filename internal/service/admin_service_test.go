package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"parkingportal/internal/backend"
	"parkingportal/internal/entities"
	apperrors "parkingportal/internal/errors"
	"parkingportal/internal/reservation"
)

type fakeAdminBackend struct {
	records []entities.Reservation
	fetches int
	err     error
	calls   []string
}

func (f *fakeAdminBackend) AllReservations(context.Context, backend.Credentials) ([]entities.Reservation, error) {
	f.fetches++
	out := make([]entities.Reservation, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeAdminBackend) record(op string) error {
	f.calls = append(f.calls, op)
	return f.err
}

func (f *fakeAdminBackend) ApproveReservation(_ context.Context, _ backend.Credentials, _ int) error {
	return f.record("approve")
}

func (f *fakeAdminBackend) CheckInReservation(_ context.Context, _ backend.Credentials, _ int) error {
	return f.record("check-in")
}

func (f *fakeAdminBackend) CheckOutReservation(_ context.Context, _ backend.Credentials, _ int) error {
	return f.record("check-out")
}

func (f *fakeAdminBackend) CancelReservation(_ context.Context, _ backend.Credentials, _ int) error {
	return f.record("cancel")
}

func (f *fakeAdminBackend) MarkReservationPaid(_ context.Context, _ backend.Credentials, _ int) error {
	return f.record("mark-paid")
}

func (f *fakeAdminBackend) DashboardSummary(context.Context, backend.Credentials) (*entities.DashboardSummary, error) {
	return &entities.DashboardSummary{}, nil
}

func (f *fakeAdminBackend) Users(context.Context, backend.Credentials) ([]entities.AdminUser, error) {
	return nil, nil
}

func (f *fakeAdminBackend) ActivateUser(_ context.Context, _ backend.Credentials, _ int) error {
	return f.record("activate")
}

func (f *fakeAdminBackend) DeactivateUser(_ context.Context, _ backend.Credentials, _ int) error {
	return f.record("deactivate")
}

// adminNow is 09:00 on 2024-06-21 in Manila.
var adminNow = time.Date(2024, 6, 21, 9, 0, 0, 0, manila)

func newAdminFixture(records ...entities.Reservation) (*AdminService, *fakeAdminBackend) {
	be := &fakeAdminBackend{records: records}
	svc := NewAdminService(be, reservation.NewClassifier(manila))
	svc.now = func() time.Time { return adminNow }
	return svc, be
}

func incomingRecord(id int) entities.Reservation {
	return entities.Reservation{
		ID:            id,
		User:          entities.Label{Name: "jdoe"},
		SlotType:      entities.Label{Name: "Standard"},
		Date:          "2024-06-21",
		Time:          "10:00",
		DurationHours: 2,
		PlateNumber:   "ABC 123",
	}
}

func hasAction(actions []reservation.Action, a reservation.Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}

func TestAdminApproveFlipsCachedRecord(t *testing.T) {
	svc, be := newAdminFixture(incomingRecord(1))
	sess := testSession()

	rows, err := svc.Reservations(context.Background(), sess, reservation.Incoming, "", false)
	if err != nil || len(rows) != 1 {
		t.Fatalf("rows = %+v, err = %v", rows, err)
	}
	if !hasAction(rows[0].Actions, reservation.Approve) {
		t.Fatalf("approve should be offered, got %v", rows[0].Actions)
	}

	r, err := svc.Act(context.Background(), sess, 1, reservation.Approve)
	if err != nil {
		t.Fatalf("Act: %v", err)
	}
	if !r.IsApproved {
		t.Fatalf("record should be approved")
	}

	rows, _ = svc.Reservations(context.Background(), sess, reservation.Incoming, "", false)
	if hasAction(rows[0].Actions, reservation.Approve) {
		t.Fatalf("approve should no longer be offered")
	}
	if !hasAction(rows[0].Actions, reservation.Cancel) || !hasAction(rows[0].Actions, reservation.MarkPaid) {
		t.Fatalf("cancel and mark-paid expected after approval, got %v", rows[0].Actions)
	}
	if be.fetches != 1 {
		t.Fatalf("local update should not refetch, fetches = %d", be.fetches)
	}
}

func TestAdminActFailureLeavesBoardUnchanged(t *testing.T) {
	svc, be := newAdminFixture(incomingRecord(1))
	be.err = &apperrors.UpstreamError{Op: "approve", Status: http.StatusInternalServerError}
	sess := testSession()

	if _, err := svc.Act(context.Background(), sess, 1, reservation.Approve); err == nil {
		t.Fatalf("expected error")
	}
	rows, _ := svc.Reservations(context.Background(), sess, reservation.Incoming, "", false)
	if rows[0].IsApproved || !hasAction(rows[0].Actions, reservation.Approve) {
		t.Fatalf("board should be unchanged, got %+v", rows[0])
	}
}

func TestAdminActRefusesHiddenAction(t *testing.T) {
	svc, be := newAdminFixture(incomingRecord(1))
	sess := testSession()

	_, err := svc.Act(context.Background(), sess, 1, reservation.CheckIn)
	var herr *apperrors.HTTPError
	if !errors.As(err, &herr) || herr.Code != http.StatusConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(be.calls) != 0 {
		t.Fatalf("backend should not be called, got %v", be.calls)
	}

	_, err = svc.Act(context.Background(), sess, 99, reservation.Approve)
	if !errors.As(err, &herr) || herr.Code != http.StatusNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAdminBoardsArePerSession(t *testing.T) {
	svc, be := newAdminFixture(incomingRecord(1))
	a := testSession()
	b := testSession()
	b.Key = "other"

	_, _ = svc.Reservations(context.Background(), a, reservation.Incoming, "", false)
	_, _ = svc.Reservations(context.Background(), b, reservation.Incoming, "", false)
	if be.fetches != 2 {
		t.Fatalf("fetches = %d", be.fetches)
	}

	svc.EndSession(context.Background(), a.Key)
	if n := svc.SweepBoards(adminNow.Add(time.Minute)); n != 1 {
		t.Fatalf("swept = %d", n)
	}
}
