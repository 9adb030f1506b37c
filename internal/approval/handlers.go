// Package approval lists pending approval requests and records decisions.
package approval

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clearlane/freight-console/internal/common"
	"github.com/clearlane/freight-console/internal/upstream"
)

// DecisionInput is an approve/reject action from the dashboard.
type DecisionInput struct {
	Approved bool   `json:"approved"`
	Comment  string `json:"comment" validate:"omitempty,max=512"`
}

// Handler exposes the approval endpoints. The package is a thin relay, so it
// talks to the upstream client directly.
type Handler struct {
	upstream *upstream.Client
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Upstream *upstream.Client
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{upstream: cfg.Upstream}
}

// List handles GET /api/v1/approvals.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.upstream == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "approval service not configured")
		return
	}
	approvals, err := h.upstream.ListApprovals(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, approvals)
}

// Decide handles POST /api/v1/approvals/{id}/decision.
func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.upstream == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "approval service not configured")
		return
	}
	var input DecisionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.Fail(w, http.StatusBadRequest, 400, "invalid JSON body")
		return
	}
	approval, err := h.upstream.DecideApproval(r.Context(), chi.URLParam(r, "id"), upstream.ApprovalDecision{
		Approved: input.Approved,
		Comment:  input.Comment,
	})
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, approval)
}
