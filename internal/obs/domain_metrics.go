package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// UpstreamRequestTotal counts upstream ERP calls by resource and outcome.
	UpstreamRequestTotal *prometheus.CounterVec
	// UpstreamRequestLatency records upstream call latency in milliseconds.
	UpstreamRequestLatency *prometheus.HistogramVec
	// DiscountDistributionTotal counts invoice views by reconciliation outcome.
	DiscountDistributionTotal *prometheus.CounterVec
	// DiscountResidual observes the absolute residual left after distribution.
	DiscountResidual prometheus.Histogram
	// InvoiceViewCacheHits counts invoice view cache lookups by result.
	InvoiceViewCacheHits *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		UpstreamRequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Count of upstream ERP requests by resource and outcome.",
		}, []string{"resource", "result"})
		UpstreamRequestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_ms",
			Help:      "Latency of upstream ERP requests in milliseconds.",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"resource"})
		DiscountDistributionTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discount_distribution_total",
			Help:      "Count of invoice reconciliations by outcome.",
		}, []string{"outcome"})
		DiscountResidual = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "discount_residual_abs",
			Help:      "Absolute residual between line totals and the authoritative invoice total after distribution.",
			Buckets:   []float64{0.01, 0.1, 1, 10, 100, 1000},
		})
		InvoiceViewCacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_view_cache_total",
			Help:      "Invoice view cache lookups by result.",
		}, []string{"result"})

		mustRegisterCollector(reg, UpstreamRequestTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				UpstreamRequestTotal = v
			}
		})
		mustRegisterCollector(reg, UpstreamRequestLatency, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.HistogramVec); ok {
				UpstreamRequestLatency = v
			}
		})
		mustRegisterCollector(reg, DiscountDistributionTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				DiscountDistributionTotal = v
			}
		})
		mustRegisterCollector(reg, DiscountResidual, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Histogram); ok {
				DiscountResidual = v
			}
		})
		mustRegisterCollector(reg, InvoiceViewCacheHits, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				InvoiceViewCacheHits = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
