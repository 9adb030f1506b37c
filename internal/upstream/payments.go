package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Payment is a recorded payment against an invoice.
type Payment struct {
	ID        string  `json:"id"`
	InvoiceID string  `json:"invoiceId"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency,omitempty"`
	Method    string  `json:"method,omitempty"`
	Reference string  `json:"reference,omitempty"`
	PaidAt    string  `json:"paidAt,omitempty"`
	Note      string  `json:"note,omitempty"`
}

// PaymentInput records a new payment.
type PaymentInput struct {
	InvoiceID string  `json:"invoiceId"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method,omitempty"`
	Reference string  `json:"reference,omitempty"`
	PaidAt    string  `json:"paidAt,omitempty"`
	Note      string  `json:"note,omitempty"`
}

// ListPayments fetches payments, optionally scoped to one invoice.
func (c *Client) ListPayments(ctx context.Context, invoiceID string) ([]Payment, error) {
	query := url.Values{}
	if strings.TrimSpace(invoiceID) != "" {
		query.Set("invoiceId", invoiceID)
	}
	var payments []Payment
	if err := c.do(ctx, "payments", http.MethodGet, "/api/payments", query, nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// CreatePayment records a payment against an invoice.
func (c *Client) CreatePayment(ctx context.Context, input PaymentInput) (Payment, error) {
	if strings.TrimSpace(input.InvoiceID) == "" {
		return Payment{}, fmt.Errorf("upstream: payment invoice id is required")
	}
	var payment Payment
	if err := c.do(ctx, "payments", http.MethodPost, "/api/payments", nil, input, &payment); err != nil {
		return Payment{}, err
	}
	return payment, nil
}
