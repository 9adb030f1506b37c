package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// FinanceSummary aggregates receivables and income for a period.
type FinanceSummary struct {
	Period      string  `json:"period,omitempty"`
	Invoiced    float64 `json:"invoiced"`
	Received    float64 `json:"received"`
	Outstanding float64 `json:"outstanding"`
	Penalties   float64 `json:"penalties,omitempty"`
	Currency    string  `json:"currency,omitempty"`
}

// CommissionRow is one agent's commission for a period.
type CommissionRow struct {
	Agent      string  `json:"agent"`
	Orders     int     `json:"orders"`
	Revenue    float64 `json:"revenue"`
	Commission float64 `json:"commission"`
}

// CommissionSummary is the commission report for one period.
type CommissionSummary struct {
	Period string          `json:"period"`
	Rows   []CommissionRow `json:"rows"`
	Total  float64         `json:"total"`
}

// FinanceSummaryReport fetches the finance summary for a period (YYYY-MM).
func (c *Client) FinanceSummaryReport(ctx context.Context, period string) (FinanceSummary, error) {
	query := url.Values{}
	if strings.TrimSpace(period) != "" {
		query.Set("period", period)
	}
	var summary FinanceSummary
	if err := c.do(ctx, "reports", http.MethodGet, "/api/finance/summary", query, nil, &summary); err != nil {
		return FinanceSummary{}, err
	}
	return summary, nil
}

// CommissionSummaryReport fetches the commission report for a period (YYYY-MM).
func (c *Client) CommissionSummaryReport(ctx context.Context, period string) (CommissionSummary, error) {
	query := url.Values{}
	if strings.TrimSpace(period) != "" {
		query.Set("period", period)
	}
	var summary CommissionSummary
	if err := c.do(ctx, "reports", http.MethodGet, "/api/commission/summary", query, nil, &summary); err != nil {
		return CommissionSummary{}, err
	}
	return summary, nil
}
