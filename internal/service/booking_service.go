package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"time"

	"parkingportal/internal/backend"
	"parkingportal/internal/db"
	"parkingportal/internal/entities"
	apperrors "parkingportal/internal/errors"
	"parkingportal/internal/session"
	"parkingportal/internal/utils"
	"parkingportal/internal/wizard"
)

type BookingBackend interface {
	CheckAvailability(ctx context.Context, req entities.AvailabilityRequest) ([]entities.SlotAvailability, error)
	CreateReservation(ctx context.Context, creds backend.Credentials, req entities.ReservationRequest) error
}

// PendingStore holds the one pending reservation a session may have while
// it is away on a checkout page.
type PendingStore interface {
	Save(ctx context.Context, p db.PendingReservation) error
	Take(ctx context.Context, sessionKey string) (*db.PendingReservation, error)
	Delete(ctx context.Context, sessionKey string) error
}

type ReservationNotifier interface {
	ReservationCreated(data entities.ReservationEmailData)
}

// pendingPayload is what the pending slot holds: the creation request plus
// what the confirmation message needs.
type pendingPayload struct {
	Reservation  entities.ReservationRequest `json:"reservation"`
	CheckoutID   string                      `json:"checkout_id"`
	LocationName string                      `json:"location_name"`
	SlotLabel    string                      `json:"slot_label"`
	Total        string                      `json:"total"`
	BillingPhone string                      `json:"billing_phone"`
}

type SubmitResult struct {
	Status      string `json:"status"`
	Redirect    string `json:"redirect"`
	CheckoutURL string `json:"checkout_url,omitempty"`
}

const (
	SubmitCreated  = "created"
	SubmitCheckout = "checkout"
)

type BookingService struct {
	Wizards  *WizardStore
	Backend  BookingBackend
	Payments PaymentGateway
	Pending  PendingStore
	Notifier ReservationNotifier

	Currency    string
	FrontendURL string
	Loc         *time.Location
	now         func() time.Time
}

func NewBookingService(wizards *WizardStore, be BookingBackend, payments PaymentGateway, pending PendingStore, notifier ReservationNotifier, currency, frontendURL string, loc *time.Location) *BookingService {
	return &BookingService{
		Wizards:     wizards,
		Backend:     be,
		Payments:    payments,
		Pending:     pending,
		Notifier:    notifier,
		Currency:    currency,
		FrontendURL: frontendURL,
		Loc:         loc,
		now:         time.Now,
	}
}

// Start creates a wizard at the slot step and loads its slot options.
func (s *BookingService) Start(ctx context.Context, sess *session.Context, origin wizard.Origin) (wizard.View, error) {
	w, err := s.Wizards.Create(sess.Key, origin)
	if err != nil {
		return wizard.View{}, err
	}
	return s.RefreshSlots(ctx, sess, w.ID())
}

func (s *BookingService) View(sess *session.Context, id string) (wizard.View, error) {
	var v wizard.View
	err := s.Wizards.With(sess.Key, id, func(w *wizard.Wizard) error {
		v = w.View()
		return nil
	})
	return v, err
}

func (s *BookingService) Discard(sess *session.Context, id string) error {
	if !s.Wizards.Delete(sess.Key, id) {
		return apperrors.ErrNotFound("booking not found")
	}
	return nil
}

// RefreshSlots fetches slot options without holding the wizard's lock. Only
// the response to the most recent fetch is applied.
func (s *BookingService) RefreshSlots(ctx context.Context, sess *session.Context, id string) (wizard.View, error) {
	var (
		seq   uint64
		query entities.AvailabilityRequest
		ok    bool
	)
	err := s.Wizards.With(sess.Key, id, func(w *wizard.Wizard) error {
		seq = w.BeginSlotFetch()
		query, ok = w.AvailabilityQuery()
		return nil
	})
	if err != nil {
		return wizard.View{}, err
	}

	var (
		slots    []wizard.Slot
		fetchErr error
	)
	if ok {
		results, err := s.Backend.CheckAvailability(ctx, query)
		if err != nil {
			log.Printf("Error checking slot availability for booking %s: %v", id, err)
			fetchErr = err
		} else {
			slots = wizard.SlotsFromAvailability(results)
		}
	}

	var v wizard.View
	err = s.Wizards.With(sess.Key, id, func(w *wizard.Wizard) error {
		w.ApplySlots(seq, slots, fetchErr)
		v = w.View()
		return nil
	})
	return v, err
}

// Update applies fn to the wizard and returns its new view. A validation
// error from fn is returned alongside the unchanged view.
func (s *BookingService) Update(sess *session.Context, id string, fn func(*wizard.Wizard) error) (wizard.View, error) {
	var (
		v     wizard.View
		fnErr error
	)
	err := s.Wizards.With(sess.Key, id, func(w *wizard.Wizard) error {
		fnErr = fn(w)
		v = w.View()
		return nil
	})
	if err != nil {
		return wizard.View{}, err
	}
	return v, fnErr
}

func (s *BookingService) SelectSlot(sess *session.Context, id string, slotID int) (wizard.View, error) {
	return s.Update(sess, id, func(w *wizard.Wizard) error { return w.SelectSlot(slotID) })
}

func (s *BookingService) SetVehicle(sess *session.Context, id string, v wizard.VehicleInfo) (wizard.View, error) {
	return s.Update(sess, id, func(w *wizard.Wizard) error {
		w.SetVehicle(v)
		return nil
	})
}

func (s *BookingService) SetPayment(sess *session.Context, id string, method wizard.PaymentMethod, phone string) (wizard.View, error) {
	return s.Update(sess, id, func(w *wizard.Wizard) error { return w.SetPayment(method, phone) })
}

func (s *BookingService) Next(sess *session.Context, id string) (wizard.View, error) {
	return s.Update(sess, id, func(w *wizard.Wizard) error { return w.Next() })
}

func (s *BookingService) Previous(sess *session.Context, id string) (wizard.View, error) {
	return s.Update(sess, id, func(w *wizard.Wizard) error {
		w.Previous()
		return nil
	})
}

// Submit finishes the booking from the payment step. Cash creates the
// reservation now; online methods open a checkout and park the request in
// the session's pending slot until the browser returns.
func (s *BookingService) Submit(ctx context.Context, sess *session.Context, id string) (*SubmitResult, error) {
	var (
		result *SubmitResult
		email  entities.ReservationEmailData
	)
	err := s.Wizards.With(sess.Key, id, func(w *wizard.Wizard) error {
		if w.Step() != wizard.StepPayment {
			return apperrors.NewValidationError("step", "complete the previous steps first")
		}
		if w.PaymentMethod().Online() {
			r, err := s.startCheckout(ctx, sess, w)
			result = r
			return err
		}

		req, err := w.ReservationRequest(false)
		if err != nil {
			return err
		}
		if err := s.Backend.CreateReservation(ctx, sess, req); err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		slot, _ := w.Selected()
		email = s.emailData(sess, req, w.Origin().LocationLabel, slot.Label, w.Total().StringFixed(2), w.BillingPhone())
		result = &SubmitResult{Status: SubmitCreated, Redirect: s.reservationsURL("")}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Status == SubmitCreated {
		s.Wizards.Delete(sess.Key, id)
		s.notify(email)
	}
	return result, nil
}

func (s *BookingService) startCheckout(ctx context.Context, sess *session.Context, w *wizard.Wizard) (*SubmitResult, error) {
	checkout, err := w.CheckoutRequest(s.Currency)
	if err != nil {
		return nil, err
	}
	req, err := w.ReservationRequest(true)
	if err != nil {
		return nil, err
	}

	cs, err := s.Payments.CreateCheckout(ctx, sess, checkout)
	if err != nil {
		return nil, fmt.Errorf("create checkout: %w", err)
	}

	slot, _ := w.Selected()
	payload, err := json.Marshal(pendingPayload{
		Reservation:  req,
		CheckoutID:   cs.ID,
		LocationName: w.Origin().LocationLabel,
		SlotLabel:    slot.Label,
		Total:        checkout.LineItemAmount.StringFixed(2),
		BillingPhone: checkout.BillingPhone,
	})
	if err != nil {
		return nil, fmt.Errorf("encode pending reservation: %w", err)
	}
	err = s.Pending.Save(ctx, db.PendingReservation{
		SessionKey: sess.Key,
		WizardID:   w.ID(),
		Payload:    payload,
		CreatedAt:  s.now(),
	})
	if err != nil {
		return nil, err
	}

	return &SubmitResult{Status: SubmitCheckout, Redirect: cs.CheckoutURL, CheckoutURL: cs.CheckoutURL}, nil
}

// ConfirmPayment handles the browser's return from the checkout page and
// returns where to send it next. The pending slot is emptied by every call,
// whatever the outcome, so a payload is submitted at most once.
func (s *BookingService) ConfirmPayment(ctx context.Context, sess *session.Context, outcome, checkoutID string) string {
	p, err := s.Pending.Take(ctx, sess.Key)
	if err != nil {
		log.Printf("Error reading pending reservation for session %s: %v", sess.Key, err)
		return s.reservationsURL("failed")
	}

	if outcome != "success" {
		if p != nil && s.Wizards.Exists(sess.Key, p.WizardID) {
			return s.FrontendURL + "/step-payment?" + url.Values{"booking": {p.WizardID}, "payment": {"cancel"}}.Encode()
		}
		return s.FrontendURL + "/"
	}
	if p == nil {
		return s.reservationsURL("")
	}

	var payload pendingPayload
	if err := json.Unmarshal(p.Payload, &payload); err != nil {
		log.Printf("Error decoding pending reservation for session %s: %v", sess.Key, err)
		return s.reservationsURL("failed")
	}
	// The checkout opened for this payload wins over the query parameter.
	if payload.CheckoutID != "" {
		checkoutID = payload.CheckoutID
	}

	if verifier, ok := s.Payments.(PaymentVerifier); ok && checkoutID != "" {
		paid, err := verifier.CheckoutPaid(ctx, checkoutID)
		if err != nil || !paid {
			log.Printf("Checkout %s not confirmed as paid (paid=%v): %v", checkoutID, paid, err)
			return s.reservationsURL("failed")
		}
	}

	if err := s.Backend.CreateReservation(ctx, sess, payload.Reservation); err != nil {
		log.Printf("Error creating paid reservation for session %s: %v", sess.Key, err)
		if refunder, ok := s.Payments.(PaymentRefunder); ok && checkoutID != "" {
			if rerr := refunder.Refund(ctx, checkoutID); rerr != nil {
				log.Printf("ALERT: refund of checkout %s failed: %v", checkoutID, rerr)
			}
		}
		return s.reservationsURL("failed")
	}

	s.Wizards.Delete(sess.Key, p.WizardID)
	s.notify(s.emailData(sess, payload.Reservation, payload.LocationName, payload.SlotLabel, payload.Total, payload.BillingPhone))
	return s.reservationsURL("success")
}

func (s *BookingService) reservationsURL(confirmation string) string {
	if confirmation == "" {
		return s.FrontendURL + "/reservations"
	}
	return s.FrontendURL + "/reservations?confirmation=" + confirmation
}

func (s *BookingService) emailData(sess *session.Context, req entities.ReservationRequest, location, slot, total, phone string) entities.ReservationEmailData {
	name := sess.User.FullName
	if name == "" {
		name = sess.User.Username
	}
	start := req.Date + " " + req.Time
	if t, err := utils.ParseStart(req.Date, req.Time, s.Loc); err == nil {
		start = utils.FormatStart(t)
	}
	return entities.ReservationEmailData{
		UserName:       name,
		UserEmail:      sess.User.Email,
		UserPhone:      phone,
		LocationName:   location,
		SlotType:       slot,
		VehiclePlate:   req.PlateNumber,
		VehicleModel:   req.VehicleMake + " " + req.VehicleModel,
		StartFormatted: start,
		DurationHours:  req.DurationHours,
		Total:          total,
		Currency:       s.Currency,
		ModeOfPayment:  req.ModeOfPayment,
		CurrentYear:    s.now().In(s.Loc).Year(),
	}
}

func (s *BookingService) notify(data entities.ReservationEmailData) {
	if s.Notifier != nil {
		s.Notifier.ReservationCreated(data)
	}
}

// EndSession drops the wizards and the pending slot of a closed session.
func (s *BookingService) EndSession(ctx context.Context, key string) {
	s.Wizards.DeleteOwner(key)
	if err := s.Pending.Delete(ctx, key); err != nil {
		log.Printf("Error clearing pending reservation of session %s: %v", key, err)
	}
}
