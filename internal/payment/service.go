// Package payment exposes invoice payment history and manual payment entry.
package payment

import (
	"context"
	"net/http"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/clearlane/freight-console/internal/common"
	"github.com/clearlane/freight-console/internal/upstream"
)

// RecordInput is a manual payment entry submitted from the dashboard.
type RecordInput struct {
	InvoiceID string  `json:"invoiceId" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Method    string  `json:"method" validate:"omitempty,max=64"`
	Reference string  `json:"reference" validate:"omitempty,max=128"`
	PaidAt    string  `json:"paidAt" validate:"omitempty,datetime=2006-01-02"`
	Note      string  `json:"note" validate:"omitempty,max=512"`
}

// ServiceConfig configures the payment service dependencies.
type ServiceConfig struct {
	Upstream *upstream.Client
	Validate *validator.Validate
}

// Service validates payment submissions and relays them upstream.
type Service struct {
	upstream *upstream.Client
	validate *validator.Validate
}

// NewService constructs a Service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{upstream: cfg.Upstream, validate: cfg.Validate}
}

// List returns payments, optionally scoped to one invoice.
func (s *Service) List(ctx context.Context, invoiceID string) ([]upstream.Payment, error) {
	return s.upstream.ListPayments(ctx, strings.TrimSpace(invoiceID))
}

// Record validates and submits a manual payment entry.
func (s *Service) Record(ctx context.Context, input RecordInput) (upstream.Payment, error) {
	if s.validate != nil {
		if err := s.validate.Struct(input); err != nil {
			return upstream.Payment{}, common.NewAppError(http.StatusBadRequest, "invalid payment payload", http.StatusBadRequest, err)
		}
	}
	return s.upstream.CreatePayment(ctx, upstream.PaymentInput{
		InvoiceID: strings.TrimSpace(input.InvoiceID),
		Amount:    input.Amount,
		Method:    strings.TrimSpace(input.Method),
		Reference: strings.TrimSpace(input.Reference),
		PaidAt:    strings.TrimSpace(input.PaidAt),
		Note:      strings.TrimSpace(input.Note),
	})
}
