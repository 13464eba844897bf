package wizard

import "strings"

type PaymentMethod string

const (
	Cash  PaymentMethod = "cash"
	Card  PaymentMethod = "card"
	GCash PaymentMethod = "gcash"
	Maya  PaymentMethod = "maya"
)

func ParsePaymentMethod(s string) PaymentMethod {
	return PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case Cash, Card, GCash, Maya:
		return true
	}
	return false
}

// Online reports whether the method goes through an external checkout page.
func (m PaymentMethod) Online() bool {
	return m == Card || m == GCash || m == Maya
}

// Code is the checkout provider's payment method type.
func (m PaymentMethod) Code() string {
	switch m {
	case Card:
		return "card"
	case GCash:
		return "gcash"
	case Maya:
		return "paymaya"
	}
	return ""
}

// Label is the mode_of_payment stored on the reservation.
func (m PaymentMethod) Label() string {
	switch m {
	case Card:
		return "Card"
	case GCash:
		return "GCash"
	case Maya:
		return "Maya"
	}
	return "Cash"
}
