package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Invoice is the full upstream invoice payload. Items may arrive as a
// structured array or as a JSON-encoded string; it is kept raw here and
// normalised by the invoice package.
type Invoice struct {
	ID          string          `json:"id"`
	InvoiceNo   string          `json:"invoiceNo,omitempty"`
	CustomerID  string          `json:"customerId,omitempty"`
	Customer    string          `json:"customerName,omitempty"`
	Items       json.RawMessage `json:"items,omitempty"`
	Description string          `json:"description,omitempty"`
	TotalAmount float64         `json:"totalAmount"`
	PaidAmount  float64         `json:"paidAmount,omitempty"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status,omitempty"`
	IssuedAt    string          `json:"issuedAt,omitempty"`
	DueDate     string          `json:"dueDate,omitempty"`
	DocumentURL string          `json:"documentUrl,omitempty"`
}

// InvoiceSummary is the list representation of an invoice.
type InvoiceSummary struct {
	ID          string  `json:"id"`
	InvoiceNo   string  `json:"invoiceNo,omitempty"`
	Customer    string  `json:"customerName,omitempty"`
	TotalAmount float64 `json:"totalAmount"`
	PaidAmount  float64 `json:"paidAmount,omitempty"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status,omitempty"`
	IssuedAt    string  `json:"issuedAt,omitempty"`
}

// InvoicePage is a paginated invoice listing.
type InvoicePage struct {
	List  []InvoiceSummary `json:"list"`
	Total int              `json:"total"`
}

// DocumentRef points at a regenerated invoice document.
type DocumentRef struct {
	URL string `json:"url"`
}

// ListInvoicesParams filters the invoice listing.
type ListInvoicesParams struct {
	CustomerID string
	Status     string
	Page       int
	Limit      int
}

// ListInvoices fetches a page of invoices.
func (c *Client) ListInvoices(ctx context.Context, params ListInvoicesParams) (InvoicePage, error) {
	query := url.Values{}
	if strings.TrimSpace(params.CustomerID) != "" {
		query.Set("customerId", params.CustomerID)
	}
	if strings.TrimSpace(params.Status) != "" {
		query.Set("status", params.Status)
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	var page InvoicePage
	if err := c.do(ctx, "invoices", http.MethodGet, "/api/invoices", query, nil, &page); err != nil {
		return InvoicePage{}, err
	}
	return page, nil
}

// GetInvoice fetches one invoice with its raw item payload.
func (c *Client) GetInvoice(ctx context.Context, id string) (Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Invoice{}, fmt.Errorf("upstream: invoice id is required")
	}
	var inv Invoice
	if err := c.do(ctx, "invoices", http.MethodGet, "/api/invoices/"+url.PathEscape(id), nil, nil, &inv); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

// RegenerateInvoiceDocument asks the ERP to rebuild the printable document.
func (c *Client) RegenerateInvoiceDocument(ctx context.Context, id string) (DocumentRef, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return DocumentRef{}, fmt.Errorf("upstream: invoice id is required")
	}
	var ref DocumentRef
	if err := c.do(ctx, "invoices", http.MethodPost, "/api/invoices/"+url.PathEscape(id)+"/regenerate", nil, nil, &ref); err != nil {
		return DocumentRef{}, err
	}
	return ref, nil
}
