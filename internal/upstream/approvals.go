package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Approval is a pending or decided approval request.
type Approval struct {
	ID          string `json:"id"`
	Kind        string `json:"kind,omitempty"`
	Subject     string `json:"subject,omitempty"`
	RequestedBy string `json:"requestedBy,omitempty"`
	Status      string `json:"status,omitempty"`
	Comment     string `json:"comment,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	DecidedAt   string `json:"decidedAt,omitempty"`
}

// ApprovalDecision records an approve/reject action.
type ApprovalDecision struct {
	Approved bool   `json:"approved"`
	Comment  string `json:"comment,omitempty"`
}

// ListApprovals fetches approvals, optionally filtered by status.
func (c *Client) ListApprovals(ctx context.Context, status string) ([]Approval, error) {
	query := url.Values{}
	if strings.TrimSpace(status) != "" {
		query.Set("status", status)
	}
	var approvals []Approval
	if err := c.do(ctx, "approvals", http.MethodGet, "/api/approvals", query, nil, &approvals); err != nil {
		return nil, err
	}
	return approvals, nil
}

// DecideApproval submits an approve/reject decision.
func (c *Client) DecideApproval(ctx context.Context, id string, decision ApprovalDecision) (Approval, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Approval{}, fmt.Errorf("upstream: approval id is required")
	}
	var approval Approval
	if err := c.do(ctx, "approvals", http.MethodPost, "/api/approvals/"+url.PathEscape(id)+"/decision", nil, decision, &approval); err != nil {
		return Approval{}, err
	}
	return approval, nil
}
