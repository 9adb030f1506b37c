package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// SharedTaxNumber is one entry in the shared tax number pool.
type SharedTaxNumber struct {
	ID        string `json:"id"`
	Country   string `json:"country"`
	Number    string `json:"number"`
	Holder    string `json:"holder,omitempty"`
	InUseBy   string `json:"inUseBy,omitempty"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// SharedTaxNumberInput adds a tax number to the pool.
type SharedTaxNumberInput struct {
	Country string `json:"country"`
	Number  string `json:"number"`
	Holder  string `json:"holder,omitempty"`
}

// ListSharedTaxNumbers fetches the shared tax number pool.
func (c *Client) ListSharedTaxNumbers(ctx context.Context) ([]SharedTaxNumber, error) {
	var numbers []SharedTaxNumber
	if err := c.do(ctx, "shared-tax-numbers", http.MethodGet, "/api/shared-tax-numbers", nil, nil, &numbers); err != nil {
		return nil, err
	}
	return numbers, nil
}

// CreateSharedTaxNumber adds an entry to the pool.
func (c *Client) CreateSharedTaxNumber(ctx context.Context, input SharedTaxNumberInput) (SharedTaxNumber, error) {
	var number SharedTaxNumber
	if err := c.do(ctx, "shared-tax-numbers", http.MethodPost, "/api/shared-tax-numbers", nil, input, &number); err != nil {
		return SharedTaxNumber{}, err
	}
	return number, nil
}

// DeleteSharedTaxNumber removes an entry from the pool.
func (c *Client) DeleteSharedTaxNumber(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("upstream: tax number id is required")
	}
	return c.do(ctx, "shared-tax-numbers", http.MethodDelete, "/api/shared-tax-numbers/"+url.PathEscape(id), nil, nil, nil)
}
