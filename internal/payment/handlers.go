package payment

import (
	"encoding/json"
	"net/http"

	"github.com/clearlane/freight-console/internal/common"
)

// Handler exposes the payment endpoints.
type Handler struct {
	service *Service
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{service: cfg.Service}
}

// List handles GET /api/v1/payments.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "payment service not configured")
		return
	}
	payments, err := h.service.List(r.Context(), r.URL.Query().Get("invoiceId"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, payments)
}

// Record handles POST /api/v1/payments.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "payment service not configured")
		return
	}
	var input RecordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.Fail(w, http.StatusBadRequest, 400, "invalid JSON body")
		return
	}
	payment, err := h.service.Record(r.Context(), input)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, payment)
}
