package customer_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/clearlane/freight-console/internal/app"
	"github.com/clearlane/freight-console/internal/customer"
	"github.com/clearlane/freight-console/internal/upstream"
)

func newTestRouter(t *testing.T, handler http.Handler) http.Handler {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := upstream.New(upstream.Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	svc := customer.NewService(customer.ServiceConfig{Upstream: client, Validate: app.NewValidator()})
	h := customer.NewHandler(customer.HandlerConfig{Service: svc})

	r := chi.NewRouter()
	r.Get("/api/v1/customers", h.List)
	r.Post("/api/v1/customers", h.Create)
	r.Get("/api/v1/customers/{id}", h.Get)
	r.Put("/api/v1/customers/{id}", h.Update)
	r.Get("/api/v1/customers/{id}/follow-ups", h.FollowUps)
	r.Post("/api/v1/customers/{id}/follow-ups", h.AddFollowUp)
	return r
}

func TestCreateValidatesBeforeUpstream(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("/api/customers", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	router := newTestRouter(t, mux)

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"name":"","email":"not-an-email"}`)
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/customers", body))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, called, "invalid payloads must not reach upstream")

	var envelope struct {
		ErrCode int    `json:"errCode"`
		Msg     string `json:"msg"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, http.StatusBadRequest, envelope.ErrCode)
}

func TestCreateRelaysUpstream(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/customers", func(w http.ResponseWriter, r *http.Request) {
		var input upstream.CustomerInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		require.Equal(t, "Acme Trading", input.Name)
		require.Equal(t, "B", input.Level)
		_, _ = w.Write([]byte(`{"errCode":200,"data":{"id":"cus-1","name":"Acme Trading","level":"B"}}`))
	})
	router := newTestRouter(t, mux)

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"name":"Acme Trading","level":"B","email":"ops@acme.example"}`)
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/customers", body))
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		ErrCode int               `json:"errCode"`
		Data    upstream.Customer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, 200, envelope.ErrCode)
	require.Equal(t, "cus-1", envelope.Data.ID)
}

func TestFollowUpFlow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/customers/cus-1/follow-ups", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"errCode":200,"data":[{"id":"fu-1","note":"called about Q4 volumes"}]}`))
		case http.MethodPost:
			_, _ = w.Write([]byte(`{"errCode":200,"data":{"id":"fu-2","note":"quoted new rates"}}`))
		}
	})
	router := newTestRouter(t, mux)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/customers/cus-1/follow-ups", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "called about Q4 volumes")

	rec = httptest.NewRecorder()
	body := strings.NewReader(`{"note":"quoted new rates"}`)
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/customers/cus-1/follow-ups", body))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "fu-2")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/customers/cus-1/follow-ups", strings.NewReader(`{"note":""}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
