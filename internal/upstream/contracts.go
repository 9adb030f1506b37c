package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ContractTemplate is contract template metadata. Template file contents are
// managed by the ERP; only the descriptor travels through the gateway.
type ContractTemplate struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind,omitempty"`
	Version   string `json:"version,omitempty"`
	UpdatedBy string `json:"updatedBy,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ContractTemplateInput creates a template descriptor.
type ContractTemplateInput struct {
	Name    string `json:"name"`
	Kind    string `json:"kind,omitempty"`
	Version string `json:"version,omitempty"`
}

// ListContractTemplates fetches all contract template descriptors.
func (c *Client) ListContractTemplates(ctx context.Context) ([]ContractTemplate, error) {
	var templates []ContractTemplate
	if err := c.do(ctx, "contract-templates", http.MethodGet, "/api/contract-template", nil, nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// CreateContractTemplate registers a new template descriptor.
func (c *Client) CreateContractTemplate(ctx context.Context, input ContractTemplateInput) (ContractTemplate, error) {
	var template ContractTemplate
	if err := c.do(ctx, "contract-templates", http.MethodPost, "/api/contract-template", nil, input, &template); err != nil {
		return ContractTemplate{}, err
	}
	return template, nil
}

// DeleteContractTemplate removes a template descriptor.
func (c *Client) DeleteContractTemplate(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("upstream: contract template id is required")
	}
	return c.do(ctx, "contract-templates", http.MethodDelete, "/api/contract-template/"+url.PathEscape(id), nil, nil, nil)
}
