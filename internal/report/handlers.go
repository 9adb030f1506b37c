package report

import (
	"net/http"

	"github.com/clearlane/freight-console/internal/common"
)

// Handler exposes the report endpoints.
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

// Finance handles GET /api/v1/reports/finance.
func (h *Handler) Finance(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "report service not configured")
		return
	}
	summary, err := h.service.Finance(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, summary)
}

// Commission handles GET /api/v1/reports/commission.
func (h *Handler) Commission(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		common.Fail(w, http.StatusServiceUnavailable, 503, "report service not configured")
		return
	}
	summary, err := h.service.Commission(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.Data(w, summary)
}
