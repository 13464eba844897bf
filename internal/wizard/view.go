package wizard

import "github.com/shopspring/decimal"

// View is the JSON rendering of a wizard for the browser.
type View struct {
	ID           string          `json:"id"`
	Step         Step            `json:"step"`
	StepName     string          `json:"step_name"`
	Origin       Origin          `json:"origin"`
	Slots        []Slot          `json:"slots"`
	SlotError    string          `json:"slot_error,omitempty"`
	SelectedSlot *Slot           `json:"selected_slot,omitempty"`
	Vehicle      VehicleInfo     `json:"vehicle"`
	Method       PaymentMethod   `json:"payment_method"`
	BillingPhone string          `json:"billing_phone,omitempty"`
	Total        decimal.Decimal `json:"total_amount"`
	CanAdvance   bool            `json:"can_advance"`
}

func (w *Wizard) View() View {
	v := View{
		ID:           w.id,
		Step:         w.step,
		StepName:     w.step.String(),
		Origin:       w.origin,
		Slots:        w.slots,
		SlotError:    w.slotErr,
		Vehicle:      w.vehicle,
		Method:       w.method,
		BillingPhone: w.billingPhone,
		Total:        w.Total(),
		CanAdvance:   w.step != StepPayment && w.Gate() == nil,
	}
	if v.Slots == nil {
		v.Slots = []Slot{}
	}
	if s, ok := w.Selected(); ok {
		v.SelectedSlot = &s
	}
	return v
}
