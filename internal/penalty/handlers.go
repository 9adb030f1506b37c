// Package penalty lists and records penalty entries.
package penalty

import (
	"encoding/json"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/clearlane/freight-console/internal/common"
	"github.com/clearlane/freight-console/internal/upstream"
)

// CreateInput records a new penalty.
type CreateInput struct {
	CustomerID string  `json:"customerId" validate:"omitempty,max=64"`
	Subject    string  `json:"subject" validate:"required,max=256"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Currency   string  `json:"currency" validate:"omitempty,len=3"`
	Reason     string  `json:"reason" validate:"omitempty,max=512"`
}

// Handler exposes the penalty endpoints.
type Handler struct {
	upstream *upstream.Client
	validate *validator.Validate
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Upstream *upstream.Client
	Validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{upstream: cfg.Upstream, validate: cfg.Validate}
}

// List handles GET /api/v1/penalties.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.upstream == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "penalty service not configured")
		return
	}
	penalties, err := h.upstream.ListPenalties(r.Context(), r.URL.Query().Get("customerId"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, penalties)
}

// Create handles POST /api/v1/penalties.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.upstream == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "penalty service not configured")
		return
	}
	var input CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.Fail(w, http.StatusBadRequest, 400, "invalid JSON body")
		return
	}
	if h.validate != nil {
		if err := h.validate.Struct(input); err != nil {
			common.Fail(w, http.StatusBadRequest, 400, "invalid penalty payload")
			return
		}
	}
	penalty, err := h.upstream.CreatePenalty(r.Context(), upstream.PenaltyInput{
		CustomerID: input.CustomerID,
		Subject:    input.Subject,
		Amount:     input.Amount,
		Currency:   input.Currency,
		Reason:     input.Reason,
	})
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, penalty)
}
