package invoice_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/clearlane/freight-console/internal/invoice"
)

func newTestRouter(h *invoice.Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/v1/invoices", h.List)
	r.Get("/api/v1/invoices/{id}/view", h.View)
	r.Post("/api/v1/invoices/{id}/regenerate", h.Regenerate)
	return r
}

func TestHandlerViewEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/invoices/inv-1", func(w http.ResponseWriter, r *http.Request) {
		items := `[{"description":"代理费","amount":500}]`
		_, _ = w.Write([]byte(invoiceEnvelope(items, 450)))
	})
	svc, _, _ := newTestService(t, mux)
	router := newTestRouter(invoice.NewHandler(invoice.HandlerConfig{Service: svc}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/invoices/inv-1/view", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		ErrCode int          `json:"errCode"`
		Data    invoice.View `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 200, body.ErrCode)
	require.Equal(t, invoice.OutcomeDistributed, body.Data.Outcome)
	require.Equal(t, 450.0, body.Data.Totals.TotalAmount)
	require.Equal(t, 50.0, body.Data.Lines[0].Discount)
}

func TestHandlerUpstreamAppErrorKeepsEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/invoices/inv-404", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errCode":40401,"msg":"invoice not found"}`))
	})
	svc, _, _ := newTestService(t, mux)
	router := newTestRouter(invoice.NewHandler(invoice.HandlerConfig{Service: svc}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/invoices/inv-404/view", nil))
	// application-level upstream errors keep HTTP 200 and surface via errCode
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		ErrCode int    `json:"errCode"`
		Msg     string `json:"msg"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 40401, body.ErrCode)
	require.Equal(t, "invoice not found", body.Msg)
}

func TestHandlerListPagination(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/invoices", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "10", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"errCode":200,"data":{"list":[{"id":"inv-1","totalAmount":100,"currency":"USD"}],"total":31}}`))
	})
	svc, _, _ := newTestService(t, mux)
	router := newTestRouter(invoice.NewHandler(invoice.HandlerConfig{Service: svc}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/invoices?page=2&limit=10", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		ErrCode int `json:"errCode"`
		Data    struct {
			List       []map[string]any `json:"list"`
			Pagination struct {
				Page       int `json:"page"`
				PerPage    int `json:"per_page"`
				TotalItems int `json:"total_items"`
			} `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 200, body.ErrCode)
	require.Len(t, body.Data.List, 1)
	require.Equal(t, 2, body.Data.Pagination.Page)
	require.Equal(t, 31, body.Data.Pagination.TotalItems)
}
