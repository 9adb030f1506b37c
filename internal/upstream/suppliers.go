package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// SupplierPrice is one row of a supplier's price list.
type SupplierPrice struct {
	ID        string  `json:"id,omitempty"`
	Service   string  `json:"service"`
	Route     string  `json:"route,omitempty"`
	Unit      string  `json:"unit,omitempty"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency,omitempty"`
	ValidFrom string  `json:"validFrom,omitempty"`
	ValidTo   string  `json:"validTo,omitempty"`
}

// ListSupplierPrices fetches the price list for a supplier.
func (c *Client) ListSupplierPrices(ctx context.Context, supplierID string) ([]SupplierPrice, error) {
	supplierID = strings.TrimSpace(supplierID)
	if supplierID == "" {
		return nil, fmt.Errorf("upstream: supplier id is required")
	}
	var prices []SupplierPrice
	if err := c.do(ctx, "supplier-prices", http.MethodGet, "/api/suppliers/"+url.PathEscape(supplierID)+"/prices", nil, nil, &prices); err != nil {
		return nil, err
	}
	return prices, nil
}

// UpdateSupplierPrices replaces the price list for a supplier.
func (c *Client) UpdateSupplierPrices(ctx context.Context, supplierID string, prices []SupplierPrice) ([]SupplierPrice, error) {
	supplierID = strings.TrimSpace(supplierID)
	if supplierID == "" {
		return nil, fmt.Errorf("upstream: supplier id is required")
	}
	var updated []SupplierPrice
	if err := c.do(ctx, "supplier-prices", http.MethodPut, "/api/suppliers/"+url.PathEscape(supplierID)+"/prices", nil, prices, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}
