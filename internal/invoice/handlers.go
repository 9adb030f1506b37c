package invoice

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clearlane/freight-console/internal/common"
	"github.com/clearlane/freight-console/internal/upstream"
)

// Handler exposes the invoice endpoints.
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

// List handles GET /api/v1/invoices.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "invoice service not configured")
		return
	}
	page, limit := common.ParsePagination(r, 20)
	result, err := h.service.List(r.Context(), upstream.ListInvoicesParams{
		CustomerID: r.URL.Query().Get("customerId"),
		Status:     r.URL.Query().Get("status"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, map[string]any{
		"list":       result.List,
		"pagination": common.Pagination{Page: page, PerPage: limit, TotalItems: result.Total},
	})
}

// View handles GET /api/v1/invoices/{id}/view.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "invoice service not configured")
		return
	}
	view, err := h.service.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, view)
}

// Regenerate handles POST /api/v1/invoices/{id}/regenerate.
func (h *Handler) Regenerate(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "invoice service not configured")
		return
	}
	ref, err := h.service.Regenerate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, ref)
}
