package report_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/clearlane/freight-console/internal/cache"
	"github.com/clearlane/freight-console/internal/common"
	"github.com/clearlane/freight-console/internal/report"
	"github.com/clearlane/freight-console/internal/upstream"
)

func newService(t *testing.T, handler http.Handler) *report.Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	client, err := upstream.New(upstream.Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	return report.NewService(report.ServiceConfig{
		Upstream: client,
		Redis:    cache.New(rdb, time.Minute),
		Logger:   zerolog.Nop(),
	})
}

func TestFinanceSummaryCached(t *testing.T) {
	var fetches atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/api/finance/summary", func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		require.Equal(t, "2024-11", r.URL.Query().Get("period"))
		_, _ = w.Write([]byte(`{"errCode":200,"data":{"period":"2024-11","invoiced":120000,"received":95000,"outstanding":25000}}`))
	})
	svc := newService(t, mux)

	first, err := svc.Finance(context.Background(), "2024-11")
	require.NoError(t, err)
	require.Equal(t, 120000.0, first.Invoiced)

	second, err := svc.Finance(context.Background(), "2024-11")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, int64(1), fetches.Load(), "second read must come from cache")
}

func TestPeriodValidation(t *testing.T) {
	svc := newService(t, http.NewServeMux())

	_, err := svc.Finance(context.Background(), "November 2024")
	require.Error(t, err)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

func TestCommissionSummary(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/commission/summary", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errCode":200,"data":{"period":"2024-10","rows":[{"agent":"li.wei","orders":12,"revenue":88000,"commission":4400}],"total":4400}}`))
	})
	svc := newService(t, mux)

	summary, err := svc.Commission(context.Background(), "2024-10")
	require.NoError(t, err)
	require.Len(t, summary.Rows, 1)
	require.Equal(t, 4400.0, summary.Total)
}
