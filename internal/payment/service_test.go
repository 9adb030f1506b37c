package payment_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clearlane/freight-console/internal/app"
	"github.com/clearlane/freight-console/internal/common"
	"github.com/clearlane/freight-console/internal/payment"
	"github.com/clearlane/freight-console/internal/upstream"
)

func newService(t *testing.T, handler http.Handler) *payment.Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := upstream.New(upstream.Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return payment.NewService(payment.ServiceConfig{Upstream: client, Validate: app.NewValidator()})
}

func TestRecordRejectsInvalidPayload(t *testing.T) {
	svc := newService(t, http.NewServeMux())

	cases := []payment.RecordInput{
		{Amount: 100},                                // missing invoice
		{InvoiceID: "inv-1"},                         // missing amount
		{InvoiceID: "inv-1", Amount: -5},             // non-positive amount
		{InvoiceID: "inv-1", Amount: 10, PaidAt: "31/12/2024"}, // wrong date layout
	}
	for i, input := range cases {
		_, err := svc.Record(context.Background(), input)
		require.Error(t, err, "case %d", i)
		var appErr *common.AppError
		require.ErrorAs(t, err, &appErr, "case %d", i)
		require.Equal(t, http.StatusBadRequest, appErr.HTTPStatus, "case %d", i)
	}
}

func TestRecordSubmitsUpstream(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/payments", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte(`{"errCode":200,"data":{"id":"pay-7","invoiceId":"inv-1","amount":150.5}}`))
	})
	svc := newService(t, mux)

	result, err := svc.Record(context.Background(), payment.RecordInput{
		InvoiceID: "inv-1",
		Amount:    150.5,
		Method:    "wire",
		PaidAt:    "2024-11-30",
	})
	require.NoError(t, err)
	require.Equal(t, "pay-7", result.ID)
	require.Equal(t, 150.5, result.Amount)
}

func TestListScopesToInvoice(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/payments", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "inv-9", r.URL.Query().Get("invoiceId"))
		_, _ = w.Write([]byte(`{"errCode":200,"data":[{"id":"pay-1","invoiceId":"inv-9","amount":20}]}`))
	})
	svc := newService(t, mux)

	payments, err := svc.List(context.Background(), "inv-9")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	require.Equal(t, "inv-9", payments[0].InvoiceID)
}
