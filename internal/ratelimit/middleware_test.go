package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/clearlane/freight-console/internal/ratelimit"
)

func TestLimitEnforced(t *testing.T) {
	mw, err := ratelimit.New(limitermemory.NewStore(), "2-H")
	require.NoError(t, err)

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", nil)
		req.RemoteAddr = "203.0.113.9:4242"
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", nil)
	req.RemoteAddr = "203.0.113.9:4242"
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Contains(t, rec.Body.String(), "rate limit exceeded")
	require.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestDistinctClientsDoNotShareBuckets(t *testing.T) {
	mw, err := ratelimit.New(limitermemory.NewStore(), "1-H")
	require.NoError(t, err)
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest(http.MethodPost, "/api/v1/penalties", nil)
	first.RemoteAddr = "198.51.100.1:1000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	require.Equal(t, http.StatusOK, rec.Code)

	second := httptest.NewRequest(http.MethodPost, "/api/v1/penalties", nil)
	second.RemoteAddr = "198.51.100.2:1000"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestInvalidRateRejected(t *testing.T) {
	_, err := ratelimit.New(limitermemory.NewStore(), "lots")
	require.Error(t, err)
}
