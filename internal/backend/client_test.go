package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"parkingportal/internal/entities"
	apperrors "parkingportal/internal/errors"
	"parkingportal/internal/session"

	"github.com/shopspring/decimal"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second)
}

func creds(access, refresh string) *session.Context {
	return session.New("sess", entities.User{ID: 1, Username: "jdoe"}, access, refresh, time.Now().Add(time.Hour))
}

func TestCheckAvailabilityDecodesResults(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/slots/check-availability/" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var req entities.AvailabilityRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.LocationID != 3 || req.VehicleTypeID != 1 || req.Time != "10:00" {
			t.Errorf("unexpected request %+v", req)
		}
		_, _ = w.Write([]byte(`{"results":[{"slot_type":"Standard","rate_per_hour":"60.00","available_slots":4,"type":"Open","description":"Open air"}]}`))
	}))

	results, err := c.CheckAvailability(context.Background(), entities.AvailabilityRequest{LocationID: 3, VehicleTypeID: 1, Date: "2024-06-21", Time: "10:00"})
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if len(results) != 1 || results[0].AvailableSlots != 4 {
		t.Fatalf("results = %+v", results)
	}
	if !results[0].RatePerHour.Equal(decimal.RequireFromString("60")) {
		t.Fatalf("rate = %s", results[0].RatePerHour)
	}
}

func TestNon2xxBecomesUpstreamError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"plate_number":["This field is required."]}`))
	}))

	err := c.CreateReservation(context.Background(), creds("a", "r"), entities.ReservationRequest{})
	var up *apperrors.UpstreamError
	if !errors.As(err, &up) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if up.Status != http.StatusBadRequest || up.Body == "" {
		t.Fatalf("unexpected upstream error %+v", up)
	}
}

func TestUnauthorizedRefreshesOnceAndRetries(t *testing.T) {
	var calls, refreshes int32
	mux := http.NewServeMux()
	mux.HandleFunc("/reservations/my/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[{"id":5,"location":{"name":"North"},"date":"2024-06-21","time":"10:00"}]`))
	})
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshes, 1)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["refresh"] != "r1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"access":"fresh"}`))
	})
	c := newTestClient(t, mux)

	cr := creds("stale", "r1")
	out, err := c.MyReservations(context.Background(), cr)
	if err != nil {
		t.Fatalf("MyReservations: %v", err)
	}
	if len(out) != 1 || out[0].Location.Name != "North" {
		t.Fatalf("out = %+v", out)
	}
	if atomic.LoadInt32(&calls) != 2 || atomic.LoadInt32(&refreshes) != 1 {
		t.Fatalf("calls=%d refreshes=%d", calls, refreshes)
	}
	if cr.AccessToken() != "fresh" || !cr.Dirty() {
		t.Fatalf("refreshed token not recorded on credentials")
	}
}

func TestFailedRefreshReportsSessionExpired(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/reservations/my/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	c := newTestClient(t, mux)

	_, err := c.MyReservations(context.Background(), creds("stale", "bad"))
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestCreateCheckoutUnwrapsData(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["payment_method"] != "gcash" || req["billing_phone"] != "0917" {
			t.Errorf("unexpected payload %v", req)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"message":"Success","data":{"id":"cs_1","type":"checkout_session","checkout_url":"https://pay.test/cs_1"}}`))
	}))

	sess, err := c.CreateCheckout(context.Background(), creds("a", "r"), entities.CheckoutRequest{
		PaymentMethod:    "gcash",
		BillingPhone:     "0917",
		LineItemAmount:   decimal.RequireFromString("180"),
		LineItemQuantity: 1,
		Currency:         "PHP",
	})
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}
	if sess.CheckoutURL != "https://pay.test/cs_1" {
		t.Fatalf("session = %+v", sess)
	}
}

func TestAdminMutationsUseBackendVerbs(t *testing.T) {
	type call struct{ method, path string }
	var (
		mu  sync.Mutex
		got []call
	)
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = append(got, call{r.Method, r.URL.Path})
		mu.Unlock()
		_, _ = w.Write([]byte(`{}`))
	}))
	cr := creds("a", "r")
	ctx := context.Background()

	_ = c.ApproveReservation(ctx, cr, 9)
	_ = c.CheckInReservation(ctx, cr, 9)
	_ = c.CheckOutReservation(ctx, cr, 9)
	_ = c.CancelReservation(ctx, cr, 9)
	_ = c.MarkReservationPaid(ctx, cr, 9)

	mu.Lock()
	defer mu.Unlock()
	want := []call{
		{http.MethodPatch, "/reservations/9/approve/"},
		{http.MethodPatch, "/admin/reservations/9/check-in/"},
		{http.MethodPatch, "/admin/reservations/9/check-out/"},
		{http.MethodPatch, "/admin/reservations/9/cancel/"},
		{http.MethodPut, "/reservations/9/mark-paid/"},
	}
	if len(got) != len(want) {
		t.Fatalf("calls = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("call %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestProfileUnwrapsEnvelope(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":{"full_name":"Jane Doe","email":"j@example.com","username":"jdoe"}}`))
	}))
	p, err := c.Profile(context.Background(), creds("a", "r"))
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.FullName != "Jane Doe" || p.Email != "j@example.com" {
		t.Fatalf("profile = %+v", p)
	}
}
