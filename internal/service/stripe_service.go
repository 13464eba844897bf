package service

import (
	"context"
	"fmt"
	"strings"

	"parkingportal/internal/backend"
	"parkingportal/internal/entities"
	apperrors "parkingportal/internal/errors"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/refund"
)

// StripeService opens card checkouts directly with Stripe. It is used when
// PAYMENT_PROVIDER=stripe; e-wallet methods stay on the backend gateway.
type StripeService struct {
	callbackURL string
}

func NewStripeService(secretKey, publicURL string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{callbackURL: strings.TrimRight(publicURL, "/") + "/api/payments/callback"}
}

func (s *StripeService) CreateCheckout(ctx context.Context, _ backend.Credentials, req entities.CheckoutRequest) (*entities.CheckoutSession, error) {
	if req.PaymentMethod != "card" {
		return nil, apperrors.NewValidationError("method", "only card payments are available with this provider")
	}

	amount := req.LineItemAmount.Mul(centsPerUnit).Round(0).IntPart()
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(strings.ToLower(req.Currency)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.LineItemName),
						Description: stripe.String(req.Description),
					},
					UnitAmount: stripe.Int64(amount),
				},
				Quantity: stripe.Int64(int64(req.LineItemQuantity)),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.callbackURL + "?payment=success&session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.callbackURL + "?payment=cancel"),
	}
	params.Context = ctx
	params.AddMetadata("billing_phone", req.BillingPhone)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout: %w", err)
	}
	return &entities.CheckoutSession{ID: sess.ID, Type: "checkout_session", CheckoutURL: sess.URL}, nil
}

// CheckoutPaid reports whether the Stripe checkout session has been paid.
func (s *StripeService) CheckoutPaid(ctx context.Context, checkoutID string) (bool, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := session.Get(checkoutID, params)
	if err != nil {
		return false, fmt.Errorf("stripe get session %s: %w", checkoutID, err)
	}
	return sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid, nil
}

// Refund returns the money of a paid checkout whose reservation could not be created.
func (s *StripeService) Refund(ctx context.Context, checkoutID string) error {
	getParams := &stripe.CheckoutSessionParams{}
	getParams.Context = ctx
	sess, err := session.Get(checkoutID, getParams)
	if err != nil {
		return err
	}
	if sess.PaymentIntent == nil || sess.PaymentIntent.ID == "" {
		return fmt.Errorf("no PaymentIntent found for session %s", checkoutID)
	}
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(sess.PaymentIntent.ID),
	}
	params.Context = ctx
	_, err = refund.New(params)
	return err
}
