package entities

import "github.com/shopspring/decimal"

type CheckoutRequest struct {
	Description      string          `json:"description"`
	BillingPhone     string          `json:"billing_phone"`
	LineItemAmount   decimal.Decimal `json:"line_item_amount"`
	LineItemName     string          `json:"line_item_name"`
	LineItemQuantity int             `json:"line_item_quantity"`
	Currency         string          `json:"currency"`
	PaymentMethod    string          `json:"payment_method"`
}

type CheckoutSession struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	CheckoutURL string `json:"checkout_url"`
}

type CheckoutResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    CheckoutSession `json:"data"`
}
