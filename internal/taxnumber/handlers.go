// Package taxnumber manages the shared tax number pool.
package taxnumber

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/clearlane/freight-console/internal/common"
	"github.com/clearlane/freight-console/internal/upstream"
)

// CreateInput adds a tax number to the shared pool.
type CreateInput struct {
	Country string `json:"country" validate:"required,len=2,uppercase"`
	Number  string `json:"number" validate:"required,max=64"`
	Holder  string `json:"holder" validate:"omitempty,max=128"`
}

// Handler exposes the shared tax number endpoints.
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

// List handles GET /api/v1/shared-tax-numbers.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.upstream == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "tax number service not configured")
		return
	}
	numbers, err := h.upstream.ListSharedTaxNumbers(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, numbers)
}

// Create handles POST /api/v1/shared-tax-numbers.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.upstream == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "tax number service not configured")
		return
	}
	var input CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.Fail(w, http.StatusBadRequest, 400, "invalid JSON body")
		return
	}
	if h.validate != nil {
		if err := h.validate.Struct(input); err != nil {
			common.Fail(w, http.StatusBadRequest, 400, "invalid tax number payload")
			return
		}
	}
	number, err := h.upstream.CreateSharedTaxNumber(r.Context(), upstream.SharedTaxNumberInput{
		Country: input.Country,
		Number:  input.Number,
		Holder:  input.Holder,
	})
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, number)
}

// Delete handles DELETE /api/v1/shared-tax-numbers/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.upstream == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "tax number service not configured")
		return
	}
	if err := h.upstream.DeleteSharedTaxNumber(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, map[string]any{"deleted": true})
}
