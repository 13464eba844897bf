// Package wizard holds the booking wizard state machine for steps 2 to 5.
// Step 1 (choosing location, vehicle type, date and time) happens before a
// wizard exists and arrives as an Origin.
package wizard

import (
	"fmt"
	"strings"

	"parkingportal/internal/entities"
	apperrors "parkingportal/internal/errors"
	"parkingportal/internal/utils"

	"github.com/shopspring/decimal"
)

type Step int

const (
	StepSlot    Step = 2
	StepVehicle Step = 3
	StepReview  Step = 4
	StepPayment Step = 5
)

func (s Step) String() string {
	switch s {
	case StepSlot:
		return "slot"
	case StepVehicle:
		return "vehicle"
	case StepReview:
		return "review"
	case StepPayment:
		return "payment"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

type Origin struct {
	LocationID       int    `json:"location_id"`
	LocationLabel    string `json:"location_label"`
	VehicleTypeID    int    `json:"vehicle_type_id"`
	VehicleTypeLabel string `json:"vehicle_type_label"`
	Date             string `json:"date"`
	Time             string `json:"time"`
}

// Missing lists the origin parameters that are absent.
func (o Origin) Missing() []string {
	var missing []string
	if o.LocationID <= 0 {
		missing = append(missing, "location_id")
	}
	if strings.TrimSpace(o.LocationLabel) == "" {
		missing = append(missing, "location_label")
	}
	if o.VehicleTypeID <= 0 {
		missing = append(missing, "vehicle_type_id")
	}
	if strings.TrimSpace(o.VehicleTypeLabel) == "" {
		missing = append(missing, "vehicle_type_label")
	}
	if strings.TrimSpace(o.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(o.Time) == "" {
		missing = append(missing, "time")
	}
	return missing
}

type Slot struct {
	ID             int             `json:"id"`
	Label          string          `json:"label"`
	PricePerHour   decimal.Decimal `json:"price_per_hour"`
	Type           string          `json:"type"`
	AvailableCount int             `json:"available_count"`
	Description    string          `json:"description"`
}

func (s Slot) Selectable() bool { return s.AvailableCount > 0 }

// SlotsFromAvailability converts backend results into wizard options. Results
// without a slot type id are numbered by position, starting at 1.
func SlotsFromAvailability(results []entities.SlotAvailability) []Slot {
	slots := make([]Slot, 0, len(results))
	for i, r := range results {
		id := r.SlotTypeID
		if id == 0 {
			id = i + 1
		}
		slots = append(slots, Slot{
			ID:             id,
			Label:          r.SlotType,
			PricePerHour:   r.RatePerHour,
			Type:           r.Type,
			AvailableCount: r.AvailableSlots,
			Description:    r.Description,
		})
	}
	return slots
}

type VehicleInfo struct {
	PlateNumber string `json:"plate_number"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Color       string `json:"color"`
	Hours       int    `json:"hours"`
}

// Validate returns the first missing field.
func (v VehicleInfo) Validate() error {
	switch {
	case strings.TrimSpace(v.PlateNumber) == "":
		return apperrors.NewValidationError("plate_number", "is required")
	case strings.TrimSpace(v.Make) == "":
		return apperrors.NewValidationError("make", "is required")
	case strings.TrimSpace(v.Model) == "":
		return apperrors.NewValidationError("model", "is required")
	case strings.TrimSpace(v.Color) == "":
		return apperrors.NewValidationError("color", "is required")
	case v.Hours <= 0:
		return apperrors.NewValidationError("hours", "must be at least 1")
	}
	return nil
}

// Wizard is not safe for concurrent use; callers serialize access per wizard.
type Wizard struct {
	id     string
	origin Origin
	step   Step

	slots    []Slot
	slotErr  string
	slotSeq  uint64
	selected *Slot

	vehicle      VehicleInfo
	method       PaymentMethod
	billingPhone string
}

// New runs the entry guard once: a wizard is never created from an incomplete origin.
func New(id string, origin Origin) (*Wizard, error) {
	if missing := origin.Missing(); len(missing) > 0 {
		return nil, apperrors.NewValidationError(missing[0], "missing booking parameter")
	}
	return &Wizard{
		id:     id,
		origin: origin,
		step:   StepSlot,
		method: Cash,
	}, nil
}

func (w *Wizard) ID() string        { return w.id }
func (w *Wizard) Origin() Origin    { return w.origin }
func (w *Wizard) Step() Step        { return w.step }
func (w *Wizard) Slots() []Slot     { return w.slots }
func (w *Wizard) SlotError() string { return w.slotErr }

func (w *Wizard) Vehicle() VehicleInfo         { return w.vehicle }
func (w *Wizard) PaymentMethod() PaymentMethod { return w.method }
func (w *Wizard) BillingPhone() string         { return w.billingPhone }

func (w *Wizard) Selected() (Slot, bool) {
	if w.selected == nil {
		return Slot{}, false
	}
	return *w.selected, true
}

// Gate reports why the wizard cannot leave the current step, or nil.
func (w *Wizard) Gate() error {
	switch w.step {
	case StepSlot:
		if w.selected == nil {
			return apperrors.NewValidationError("slot_id", "select a parking slot first")
		}
	case StepVehicle:
		return w.vehicle.Validate()
	}
	return nil
}

// Next advances one step when the gate passes. It is a no-op at the payment step.
func (w *Wizard) Next() error {
	if w.step == StepPayment {
		return nil
	}
	if err := w.Gate(); err != nil {
		return err
	}
	w.step++
	return nil
}

// Previous moves back one step without clearing anything. It is a no-op at the slot step.
func (w *Wizard) Previous() {
	if w.step > StepSlot {
		w.step--
	}
}

// AvailabilityQuery returns the slot query for this wizard, or false when an
// input is missing and no request should be made.
func (w *Wizard) AvailabilityQuery() (entities.AvailabilityRequest, bool) {
	o := w.origin
	if o.LocationID <= 0 || o.VehicleTypeID <= 0 || o.Date == "" || o.Time == "" {
		return entities.AvailabilityRequest{}, false
	}
	return entities.AvailabilityRequest{
		LocationID:    o.LocationID,
		VehicleTypeID: o.VehicleTypeID,
		Date:          o.Date,
		Time:          o.Time,
	}, true
}

// BeginSlotFetch issues the sequence number for a new availability request.
func (w *Wizard) BeginSlotFetch() uint64 {
	w.slotSeq++
	return w.slotSeq
}

// ApplySlots records the outcome of the fetch tagged seq. Responses from any
// fetch other than the latest one issued are discarded and false is returned.
// A failed fetch empties the options and keeps the error for display. A
// selection that is no longer offered or no longer selectable is dropped and
// the wizard returns to the slot step.
func (w *Wizard) ApplySlots(seq uint64, slots []Slot, fetchErr error) bool {
	if seq != w.slotSeq {
		return false
	}
	if fetchErr != nil {
		w.slots = nil
		w.slotErr = "Unable to load available slots. Please try again."
		w.dropSelection()
		return true
	}
	w.slots = slots
	w.slotErr = ""
	if w.selected != nil {
		id := w.selected.ID
		w.selected = nil
		for _, s := range slots {
			if s.ID == id && s.Selectable() {
				w.selected = &s
				break
			}
		}
		if w.selected == nil {
			w.dropSelection()
		}
	}
	return true
}

func (w *Wizard) dropSelection() {
	w.selected = nil
	if w.step > StepSlot {
		w.step = StepSlot
	}
}

// SelectSlot picks one of the current options. Options with no availability are refused.
func (w *Wizard) SelectSlot(id int) error {
	for _, s := range w.slots {
		if s.ID != id {
			continue
		}
		if !s.Selectable() {
			return apperrors.NewValidationError("slot_id", "this slot is fully booked")
		}
		w.selected = &s
		return nil
	}
	return apperrors.NewValidationError("slot_id", "unknown slot")
}

func (w *Wizard) SetVehicle(v VehicleInfo) {
	v.PlateNumber = utils.NormalizePlate(v.PlateNumber)
	v.Make = strings.TrimSpace(v.Make)
	v.Model = strings.TrimSpace(v.Model)
	v.Color = strings.TrimSpace(v.Color)
	w.vehicle = v
}

func (w *Wizard) SetPayment(method PaymentMethod, billingPhone string) error {
	if !method.Valid() {
		return apperrors.NewValidationError("method", "unsupported payment method")
	}
	w.method = method
	w.billingPhone = strings.TrimSpace(billingPhone)
	return nil
}

// Total is hours times the selected slot's hourly rate, zero when either is absent.
func (w *Wizard) Total() decimal.Decimal {
	return Cost(w.vehicle.Hours, w.selected)
}

func Cost(hours int, slot *Slot) decimal.Decimal {
	if slot == nil || hours <= 0 {
		return decimal.Zero
	}
	return slot.PricePerHour.Mul(decimal.NewFromInt(int64(hours)))
}

// ReservationRequest builds the creation payload from the draft.
func (w *Wizard) ReservationRequest(isPaid bool) (entities.ReservationRequest, error) {
	if w.selected == nil {
		return entities.ReservationRequest{}, apperrors.NewValidationError("slot_id", "select a parking slot first")
	}
	if err := w.vehicle.Validate(); err != nil {
		return entities.ReservationRequest{}, err
	}
	return entities.ReservationRequest{
		Location:      w.origin.LocationID,
		SlotType:      w.selected.ID,
		VehicleType:   w.origin.VehicleTypeID,
		Date:          w.origin.Date,
		Time:          w.origin.Time,
		DurationHours: w.vehicle.Hours,
		PlateNumber:   w.vehicle.PlateNumber,
		VehicleMake:   w.vehicle.Make,
		VehicleModel:  w.vehicle.Model,
		Color:         w.vehicle.Color,
		ModeOfPayment: w.method.Label(),
		IsPaid:        isPaid,
	}, nil
}

// CheckoutRequest builds the payment request for an online method. The billing
// phone is checked before anything else so no call is made without it.
func (w *Wizard) CheckoutRequest(currency string) (entities.CheckoutRequest, error) {
	if !w.method.Online() {
		return entities.CheckoutRequest{}, apperrors.NewValidationError("method", "cash payments do not use checkout")
	}
	if w.billingPhone == "" {
		return entities.CheckoutRequest{}, apperrors.NewValidationError("billing_phone", "is required for online payment")
	}
	if w.selected == nil {
		return entities.CheckoutRequest{}, apperrors.NewValidationError("slot_id", "select a parking slot first")
	}
	return entities.CheckoutRequest{
		Description:      fmt.Sprintf("Parking reservation at %s on %s %s", w.origin.LocationLabel, w.origin.Date, w.origin.Time),
		BillingPhone:     w.billingPhone,
		LineItemAmount:   w.Total(),
		LineItemName:     fmt.Sprintf("%s slot, %d hour(s)", w.selected.Label, w.vehicle.Hours),
		LineItemQuantity: 1,
		Currency:         currency,
		PaymentMethod:    w.method.Code(),
	}, nil
}
