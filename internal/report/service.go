// Package report serves cached finance and commission summaries.
package report

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/clearlane/freight-console/internal/cache"
	"github.com/clearlane/freight-console/internal/common"
	"github.com/clearlane/freight-console/internal/upstream"
)

// ServiceConfig configures the report service dependencies.
type ServiceConfig struct {
	Upstream *upstream.Client
	Redis    *cache.Cache
	Logger   zerolog.Logger
}

// Service caches period summaries in front of the upstream report endpoints.
// Summaries change slowly, so a short TTL keeps dashboards snappy without
// showing stale month-end numbers for long.
type Service struct {
	upstream *upstream.Client
	cache    *cache.Cache
	logger   zerolog.Logger
}

// NewService constructs a Service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{upstream: cfg.Upstream, cache: cfg.Redis, logger: cfg.Logger}
}

// normalizePeriod validates an optional YYYY-MM period, defaulting to the
// current month.
func normalizePeriod(period string) (string, error) {
	period = strings.TrimSpace(period)
	if period == "" {
		return time.Now().Format("2006-01"), nil
	}
	if _, err := time.Parse("2006-01", period); err != nil {
		return "", common.NewAppError(http.StatusBadRequest, "period must be formatted YYYY-MM", http.StatusBadRequest, err)
	}
	return period, nil
}

// Finance returns the finance summary for a period.
func (s *Service) Finance(ctx context.Context, period string) (upstream.FinanceSummary, error) {
	period, err := normalizePeriod(period)
	if err != nil {
		return upstream.FinanceSummary{}, err
	}

	key := "report:finance:" + period
	var cached upstream.FinanceSummary
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		s.logger.Warn().Err(err).Str("period", period).Msg("finance report cache read failed")
	} else if hit {
		return cached, nil
	}

	summary, err := s.upstream.FinanceSummaryReport(ctx, period)
	if err != nil {
		return upstream.FinanceSummary{}, err
	}
	if err := s.cache.SetJSON(ctx, key, summary); err != nil {
		s.logger.Warn().Err(err).Str("period", period).Msg("finance report cache write failed")
	}
	return summary, nil
}

// Commission returns the commission summary for a period.
func (s *Service) Commission(ctx context.Context, period string) (upstream.CommissionSummary, error) {
	period, err := normalizePeriod(period)
	if err != nil {
		return upstream.CommissionSummary{}, err
	}

	key := "report:commission:" + period
	var cached upstream.CommissionSummary
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		s.logger.Warn().Err(err).Str("period", period).Msg("commission report cache read failed")
	} else if hit {
		return cached, nil
	}

	summary, err := s.upstream.CommissionSummaryReport(ctx, period)
	if err != nil {
		return upstream.CommissionSummary{}, err
	}
	if err := s.cache.SetJSON(ctx, key, summary); err != nil {
		s.logger.Warn().Err(err).Str("period", period).Msg("commission report cache write failed")
	}
	return summary, nil
}
