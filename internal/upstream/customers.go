package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Customer is a CRM customer record.
type Customer struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Contact    string `json:"contact,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	Level      string `json:"level,omitempty"`
	Source     string `json:"source,omitempty"`
	Owner      string `json:"owner,omitempty"`
	Remark     string `json:"remark,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	LastFollow string `json:"lastFollowUpAt,omitempty"`
}

// CustomerInput creates or updates a customer.
type CustomerInput struct {
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Level   string `json:"level,omitempty"`
	Source  string `json:"source,omitempty"`
	Owner   string `json:"owner,omitempty"`
	Remark  string `json:"remark,omitempty"`
}

// FollowUp is one CRM follow-up entry for a customer.
type FollowUp struct {
	ID        string `json:"id"`
	Note      string `json:"note"`
	CreatedBy string `json:"createdBy,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// FollowUpInput appends a follow-up note to a customer.
type FollowUpInput struct {
	Note string `json:"note"`
}

// CustomerPage is a paginated customer listing.
type CustomerPage struct {
	List  []Customer `json:"list"`
	Total int        `json:"total"`
}

// ListCustomersParams filters the customer listing.
type ListCustomersParams struct {
	Query string
	Level string
	Page  int
	Limit int
}

// ListCustomers fetches a page of customers.
func (c *Client) ListCustomers(ctx context.Context, params ListCustomersParams) (CustomerPage, error) {
	query := url.Values{}
	if strings.TrimSpace(params.Query) != "" {
		query.Set("q", params.Query)
	}
	if strings.TrimSpace(params.Level) != "" {
		query.Set("level", params.Level)
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	var page CustomerPage
	if err := c.do(ctx, "customers", http.MethodGet, "/api/customers", query, nil, &page); err != nil {
		return CustomerPage{}, err
	}
	return page, nil
}

// GetCustomer fetches one customer.
func (c *Client) GetCustomer(ctx context.Context, id string) (Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Customer{}, fmt.Errorf("upstream: customer id is required")
	}
	var customer Customer
	if err := c.do(ctx, "customers", http.MethodGet, "/api/customers/"+url.PathEscape(id), nil, nil, &customer); err != nil {
		return Customer{}, err
	}
	return customer, nil
}

// CreateCustomer creates a customer record.
func (c *Client) CreateCustomer(ctx context.Context, input CustomerInput) (Customer, error) {
	var customer Customer
	if err := c.do(ctx, "customers", http.MethodPost, "/api/customers", nil, input, &customer); err != nil {
		return Customer{}, err
	}
	return customer, nil
}

// UpdateCustomer updates an existing customer record.
func (c *Client) UpdateCustomer(ctx context.Context, id string, input CustomerInput) (Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Customer{}, fmt.Errorf("upstream: customer id is required")
	}
	var customer Customer
	if err := c.do(ctx, "customers", http.MethodPut, "/api/customers/"+url.PathEscape(id), nil, input, &customer); err != nil {
		return Customer{}, err
	}
	return customer, nil
}

// ListFollowUps fetches the follow-up history for a customer.
func (c *Client) ListFollowUps(ctx context.Context, customerID string) ([]FollowUp, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, fmt.Errorf("upstream: customer id is required")
	}
	var entries []FollowUp
	if err := c.do(ctx, "customers", http.MethodGet, "/api/customers/"+url.PathEscape(customerID)+"/follow-ups", nil, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateFollowUp appends a follow-up note to a customer.
func (c *Client) CreateFollowUp(ctx context.Context, customerID string, input FollowUpInput) (FollowUp, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return FollowUp{}, fmt.Errorf("upstream: customer id is required")
	}
	var entry FollowUp
	if err := c.do(ctx, "customers", http.MethodPost, "/api/customers/"+url.PathEscape(customerID)+"/follow-ups", nil, input, &entry); err != nil {
		return FollowUp{}, err
	}
	return entry, nil
}
