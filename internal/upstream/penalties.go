package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Penalty is a recorded penalty entry.
type Penalty struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customerId,omitempty"`
	Subject    string  `json:"subject"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency,omitempty"`
	Reason     string  `json:"reason,omitempty"`
	Status     string  `json:"status,omitempty"`
	CreatedAt  string  `json:"createdAt,omitempty"`
}

// PenaltyInput creates a penalty record.
type PenaltyInput struct {
	CustomerID string  `json:"customerId,omitempty"`
	Subject    string  `json:"subject"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency,omitempty"`
	Reason     string  `json:"reason,omitempty"`
}

// ListPenalties fetches penalty records, optionally scoped to one customer.
func (c *Client) ListPenalties(ctx context.Context, customerID string) ([]Penalty, error) {
	query := url.Values{}
	if strings.TrimSpace(customerID) != "" {
		query.Set("customerId", customerID)
	}
	var penalties []Penalty
	if err := c.do(ctx, "penalties", http.MethodGet, "/api/penalties", query, nil, &penalties); err != nil {
		return nil, err
	}
	return penalties, nil
}

// CreatePenalty records a new penalty.
func (c *Client) CreatePenalty(ctx context.Context, input PenaltyInput) (Penalty, error) {
	var penalty Penalty
	if err := c.do(ctx, "penalties", http.MethodPost, "/api/penalties", nil, input, &penalty); err != nil {
		return Penalty{}, err
	}
	return penalty, nil
}
