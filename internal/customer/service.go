// Package customer exposes the CRM customer list, profile edits, and the
// follow-up history.
package customer

import (
	"context"
	"net/http"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/clearlane/freight-console/internal/common"
	"github.com/clearlane/freight-console/internal/upstream"
)

// UpsertInput creates or updates a customer profile.
type UpsertInput struct {
	Name    string `json:"name" validate:"required,max=128"`
	Contact string `json:"contact" validate:"omitempty,max=128"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
	Email   string `json:"email" validate:"omitempty,email"`
	Level   string `json:"level" validate:"omitempty,oneof=A B C D"`
	Source  string `json:"source" validate:"omitempty,max=64"`
	Owner   string `json:"owner" validate:"omitempty,max=64"`
	Remark  string `json:"remark" validate:"omitempty,max=512"`
}

// FollowUpInput appends a follow-up note.
type FollowUpInput struct {
	Note string `json:"note" validate:"required,max=1024"`
}

// ServiceConfig configures the customer service dependencies.
type ServiceConfig struct {
	Upstream *upstream.Client
	Validate *validator.Validate
}

// Service validates CRM edits and relays them upstream.
type Service struct {
	upstream *upstream.Client
	validate *validator.Validate
}

// NewService constructs a Service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{upstream: cfg.Upstream, validate: cfg.Validate}
}

// List returns a filtered customer page.
func (s *Service) List(ctx context.Context, params upstream.ListCustomersParams) (upstream.CustomerPage, error) {
	return s.upstream.ListCustomers(ctx, params)
}

// Get returns one customer profile.
func (s *Service) Get(ctx context.Context, id string) (upstream.Customer, error) {
	return s.upstream.GetCustomer(ctx, id)
}

// Create validates and creates a customer profile.
func (s *Service) Create(ctx context.Context, input UpsertInput) (upstream.Customer, error) {
	if err := s.check(input); err != nil {
		return upstream.Customer{}, err
	}
	return s.upstream.CreateCustomer(ctx, toUpstream(input))
}

// Update validates and updates a customer profile.
func (s *Service) Update(ctx context.Context, id string, input UpsertInput) (upstream.Customer, error) {
	if err := s.check(input); err != nil {
		return upstream.Customer{}, err
	}
	return s.upstream.UpdateCustomer(ctx, id, toUpstream(input))
}

// FollowUps returns the follow-up history for a customer.
func (s *Service) FollowUps(ctx context.Context, customerID string) ([]upstream.FollowUp, error) {
	return s.upstream.ListFollowUps(ctx, customerID)
}

// AddFollowUp validates and appends a follow-up note.
func (s *Service) AddFollowUp(ctx context.Context, customerID string, input FollowUpInput) (upstream.FollowUp, error) {
	if err := s.check(input); err != nil {
		return upstream.FollowUp{}, err
	}
	return s.upstream.CreateFollowUp(ctx, customerID, upstream.FollowUpInput{Note: strings.TrimSpace(input.Note)})
}

func (s *Service) check(input any) error {
	if s.validate == nil {
		return nil
	}
	if err := s.validate.Struct(input); err != nil {
		return common.NewAppError(http.StatusBadRequest, "invalid customer payload", http.StatusBadRequest, err)
	}
	return nil
}

func toUpstream(input UpsertInput) upstream.CustomerInput {
	return upstream.CustomerInput{
		Name:    strings.TrimSpace(input.Name),
		Contact: strings.TrimSpace(input.Contact),
		Phone:   strings.TrimSpace(input.Phone),
		Email:   strings.TrimSpace(input.Email),
		Level:   strings.TrimSpace(input.Level),
		Source:  strings.TrimSpace(input.Source),
		Owner:   strings.TrimSpace(input.Owner),
		Remark:  strings.TrimSpace(input.Remark),
	}
}
