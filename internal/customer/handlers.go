package customer

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clearlane/freight-console/internal/common"
	"github.com/clearlane/freight-console/internal/upstream"
)

// Handler exposes the CRM customer endpoints.
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

func (h *Handler) ready(w http.ResponseWriter) bool {
	if h == nil || h.service == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "customer service not configured")
		return false
	}
	return true
}

// List handles GET /api/v1/customers.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	page, limit := common.ParsePagination(r, 20)
	result, err := h.service.List(r.Context(), upstream.ListCustomersParams{
		Query: r.URL.Query().Get("q"),
		Level: r.URL.Query().Get("level"),
		Page:  page,
		Limit: limit,
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

// Get handles GET /api/v1/customers/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	customer, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, customer)
}

// Create handles POST /api/v1/customers.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	var input UpsertInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.Fail(w, http.StatusBadRequest, 400, "invalid JSON body")
		return
	}
	customer, err := h.service.Create(r.Context(), input)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, customer)
}

// Update handles PUT /api/v1/customers/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	var input UpsertInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.Fail(w, http.StatusBadRequest, 400, "invalid JSON body")
		return
	}
	customer, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, customer)
}

// FollowUps handles GET /api/v1/customers/{id}/follow-ups.
func (h *Handler) FollowUps(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	entries, err := h.service.FollowUps(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, entries)
}

// AddFollowUp handles POST /api/v1/customers/{id}/follow-ups.
func (h *Handler) AddFollowUp(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	var input FollowUpInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.Fail(w, http.StatusBadRequest, 400, "invalid JSON body")
		return
	}
	entry, err := h.service.AddFollowUp(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, entry)
}
