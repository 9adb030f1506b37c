// Package supplier exposes supplier price list reads and replacements.
package supplier

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/clearlane/freight-console/internal/common"
	"github.com/clearlane/freight-console/internal/upstream"
)

// PriceInput is one row of a replacement price list.
type PriceInput struct {
	ID        string  `json:"id" validate:"omitempty,max=64"`
	Service   string  `json:"service" validate:"required,max=128"`
	Route     string  `json:"route" validate:"omitempty,max=128"`
	Unit      string  `json:"unit" validate:"omitempty,max=32"`
	Price     float64 `json:"price" validate:"gte=0"`
	Currency  string  `json:"currency" validate:"omitempty,len=3"`
	ValidFrom string  `json:"validFrom" validate:"omitempty,datetime=2006-01-02"`
	ValidTo   string  `json:"validTo" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateInput replaces a supplier's whole price list.
type UpdateInput struct {
	Prices []PriceInput `json:"prices" validate:"required,min=1,dive"`
}

// Handler exposes the supplier price endpoints.
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

// Prices handles GET /api/v1/suppliers/{id}/prices.
func (h *Handler) Prices(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.upstream == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "supplier service not configured")
		return
	}
	prices, err := h.upstream.ListSupplierPrices(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, prices)
}

// UpdatePrices handles PUT /api/v1/suppliers/{id}/prices.
func (h *Handler) UpdatePrices(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.upstream == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "supplier service not configured")
		return
	}
	var input UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.Fail(w, http.StatusBadRequest, 400, "invalid JSON body")
		return
	}
	if h.validate != nil {
		if err := h.validate.Struct(input); err != nil {
			common.Fail(w, http.StatusBadRequest, 400, "invalid price list payload")
			return
		}
	}
	rows := make([]upstream.SupplierPrice, 0, len(input.Prices))
	for _, price := range input.Prices {
		rows = append(rows, upstream.SupplierPrice{
			ID:        price.ID,
			Service:   price.Service,
			Route:     price.Route,
			Unit:      price.Unit,
			Price:     price.Price,
			Currency:  price.Currency,
			ValidFrom: price.ValidFrom,
			ValidTo:   price.ValidTo,
		})
	}
	updated, err := h.upstream.UpdateSupplierPrices(r.Context(), chi.URLParam(r, "id"), rows)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, updated)
}
