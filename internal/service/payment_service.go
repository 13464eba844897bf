package service

import (
	"context"

	"parkingportal/internal/backend"
	"parkingportal/internal/entities"

	"github.com/shopspring/decimal"
)

var centsPerUnit = decimal.NewFromInt(100)

// PaymentGateway opens a hosted checkout page for an online payment.
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, creds backend.Credentials, req entities.CheckoutRequest) (*entities.CheckoutSession, error)
}

// PaymentVerifier is implemented by gateways that can confirm a checkout was paid.
type PaymentVerifier interface {
	CheckoutPaid(ctx context.Context, checkoutID string) (bool, error)
}

// PaymentRefunder is implemented by gateways that can refund a checkout.
type PaymentRefunder interface {
	Refund(ctx context.Context, checkoutID string) error
}

// NewPaymentGateway picks the checkout provider. The parking backend proxies
// every method; Stripe handles cards only.
func NewPaymentGateway(provider string, client *backend.Client, stripeSvc *StripeService) PaymentGateway {
	if provider == "stripe" && stripeSvc != nil {
		return stripeSvc
	}
	return client
}
