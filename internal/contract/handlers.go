// Package contract manages contract template descriptors.
package contract

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/clearlane/freight-console/internal/common"
	"github.com/clearlane/freight-console/internal/upstream"
)

// CreateInput registers a template descriptor.
type CreateInput struct {
	Name    string `json:"name" validate:"required,max=128"`
	Kind    string `json:"kind" validate:"omitempty,max=64"`
	Version string `json:"version" validate:"omitempty,max=32"`
}

// Handler exposes the contract template endpoints.
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

// List handles GET /api/v1/contract-templates.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.upstream == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "contract service not configured")
		return
	}
	templates, err := h.upstream.ListContractTemplates(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, templates)
}

// Create handles POST /api/v1/contract-templates.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.upstream == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "contract service not configured")
		return
	}
	var input CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.Fail(w, http.StatusBadRequest, 400, "invalid JSON body")
		return
	}
	if h.validate != nil {
		if err := h.validate.Struct(input); err != nil {
			common.Fail(w, http.StatusBadRequest, 400, "invalid template payload")
			return
		}
	}
	template, err := h.upstream.CreateContractTemplate(r.Context(), upstream.ContractTemplateInput{
		Name:    input.Name,
		Kind:    input.Kind,
		Version: input.Version,
	})
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, template)
}

// Delete handles DELETE /api/v1/contract-templates/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.upstream == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "contract service not configured")
		return
	}
	if err := h.upstream.DeleteContractTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, map[string]any{"deleted": true})
}
