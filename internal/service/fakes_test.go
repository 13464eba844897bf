package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"parkingportal/internal/backend"
	"parkingportal/internal/db"
	"parkingportal/internal/entities"
	"parkingportal/internal/session"
	"parkingportal/internal/wizard"

	"github.com/shopspring/decimal"
)

var manila = time.FixedZone("UTC+8", 8*3600)

func testSession() *session.Context {
	return session.New("sess-1", entities.User{ID: 7, Username: "jdoe", Email: "j@example.com"}, "access", "refresh", time.Now().Add(time.Hour))
}

type fakeBookingBackend struct {
	mu        sync.Mutex
	results   []entities.SlotAvailability
	availErr  error
	createErr error
	created   []entities.ReservationRequest
}

func (f *fakeBookingBackend) CheckAvailability(_ context.Context, _ entities.AvailabilityRequest) ([]entities.SlotAvailability, error) {
	return f.results, f.availErr
}

func (f *fakeBookingBackend) CreateReservation(_ context.Context, _ backend.Credentials, req entities.ReservationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, req)
	return nil
}

type fakeGateway struct {
	calls    int
	err      error
	paid     bool
	refunded []string
}

func (f *fakeGateway) CreateCheckout(_ context.Context, _ backend.Credentials, req entities.CheckoutRequest) (*entities.CheckoutSession, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &entities.CheckoutSession{ID: "cs_1", Type: "checkout_session", CheckoutURL: "https://pay.test/cs_1"}, nil
}

// verifyingGateway also confirms and refunds checkouts.
type verifyingGateway struct{ fakeGateway }

func (f *verifyingGateway) CheckoutPaid(_ context.Context, _ string) (bool, error) {
	return f.paid, nil
}

func (f *verifyingGateway) Refund(_ context.Context, id string) error {
	f.refunded = append(f.refunded, id)
	return nil
}

type memPending struct {
	mu    sync.Mutex
	slots map[string]db.PendingReservation
}

func newMemPending() *memPending {
	return &memPending{slots: map[string]db.PendingReservation{}}
}

func (m *memPending) Save(_ context.Context, p db.PendingReservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[p.SessionKey] = p
	return nil
}

func (m *memPending) Take(_ context.Context, key string) (*db.PendingReservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.slots[key]
	if !ok {
		return nil, nil
	}
	delete(m.slots, key)
	return &p, nil
}

func (m *memPending) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}

func (m *memPending) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, p := range m.slots {
		if p.CreatedAt.Before(cutoff) {
			delete(m.slots, k)
			n++
		}
	}
	return n, nil
}

func (m *memPending) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.slots[key]
	return ok
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []entities.ReservationEmailData
}

func (r *recordingNotifier) ReservationCreated(d entities.ReservationEmailData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, d)
}

var errBackendDown = errors.New("backend down")

func testOrigin() wizard.Origin {
	return wizard.Origin{
		LocationID:       1,
		LocationLabel:    "North Lot",
		VehicleTypeID:    2,
		VehicleTypeLabel: "Car",
		Date:             "2024-06-21",
		Time:             "10:00",
	}
}

func standardSlots() []entities.SlotAvailability {
	return []entities.SlotAvailability{
		{SlotType: "Standard", RatePerHour: decimal.RequireFromString("60"), AvailableSlots: 5, Type: "Open"},
		{SlotType: "Covered", RatePerHour: decimal.RequireFromString("90"), AvailableSlots: 0, Type: "Covered"},
	}
}
