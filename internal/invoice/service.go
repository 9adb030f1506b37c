package invoice

import (
	"context"
	"math"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/clearlane/freight-console/internal/cache"
	"github.com/clearlane/freight-console/internal/common"
	"github.com/clearlane/freight-console/internal/obs"
	"github.com/clearlane/freight-console/internal/upstream"
)

// View is the fully reconciled invoice detail served to the dashboard. Lines
// carry the derived per-line figures; Totals carries the footer sums plus the
// authoritative total.
type View struct {
	ID           string            `json:"id"`
	InvoiceNo    string            `json:"invoiceNo,omitempty"`
	CustomerID   string            `json:"customerId,omitempty"`
	Customer     string            `json:"customerName,omitempty"`
	Currency     string            `json:"currency"`
	Status       string            `json:"status,omitempty"`
	IssuedAt     string            `json:"issuedAt,omitempty"`
	DueDate      string            `json:"dueDate,omitempty"`
	DocumentURL  string            `json:"documentUrl,omitempty"`
	DetailMode   bool              `json:"detailMode"`
	DiscountMode bool              `json:"discountMode"`
	Lines        []DistributedLine `json:"lines"`
	Totals       Totals            `json:"totals"`
	Outcome      string            `json:"reconciliation"`
}

// ServiceConfig configures the invoice service dependencies.
type ServiceConfig struct {
	Upstream *upstream.Client
	Redis    *cache.Cache
	Keywords []string
	Logger   zerolog.Logger
}

// Service builds reconciled invoice views on top of the upstream client. The
// reconciliation itself is pure; the service adds fetching, caching, and
// metrics around it.
type Service struct {
	upstream *upstream.Client
	cache    *cache.Cache
	keywords KeywordSet
	logger   zerolog.Logger
}

// NewService constructs a Service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		upstream: cfg.Upstream,
		cache:    cfg.Redis,
		keywords: NewKeywordSet(cfg.Keywords),
		logger:   cfg.Logger,
	}
}

// List proxies the paginated invoice listing.
func (s *Service) List(ctx context.Context, params upstream.ListInvoicesParams) (upstream.InvoicePage, error) {
	return s.upstream.ListInvoices(ctx, params)
}

func viewCacheKey(id string) string {
	return "invoice:view:" + id
}

// View fetches an invoice and reconciles its lines against the authoritative
// total. Results are cached briefly; the cache is a read-through layer and
// never serves stale data past its TTL.
func (s *Service) View(ctx context.Context, id string) (View, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return View{}, common.NewAppError(http.StatusBadRequest, "invoice id is required", http.StatusBadRequest, nil)
	}

	key := viewCacheKey(id)
	var cached View
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		s.logger.Warn().Err(err).Str("invoice_id", id).Msg("invoice view cache read failed")
		observeCache("error")
	} else if hit {
		observeCache("hit")
		return cached, nil
	} else {
		observeCache("miss")
	}

	inv, err := s.upstream.GetInvoice(ctx, id)
	if err != nil {
		return View{}, err
	}

	view := s.Build(inv)

	if err := s.cache.SetJSON(ctx, key, view); err != nil {
		s.logger.Warn().Err(err).Str("invoice_id", id).Msg("invoice view cache write failed")
	}
	return view, nil
}

// Build runs the parse/distribute/aggregate pipeline over one upstream
// invoice. It is deterministic for a given payload.
func (s *Service) Build(inv upstream.Invoice) View {
	lines := ParseLines(inv.Items, inv.Description)
	dist := Distribute(lines, inv.TotalAmount, s.keywords)

	if obs.DiscountDistributionTotal != nil {
		obs.DiscountDistributionTotal.WithLabelValues(dist.Outcome).Inc()
	}
	if obs.DiscountResidual != nil {
		obs.DiscountResidual.Observe(math.Abs(dist.Residual))
	}

	return View{
		ID:           inv.ID,
		InvoiceNo:    inv.InvoiceNo,
		CustomerID:   inv.CustomerID,
		Customer:     inv.Customer,
		Currency:     inv.Currency,
		Status:       inv.Status,
		IssuedAt:     inv.IssuedAt,
		DueDate:      inv.DueDate,
		DocumentURL:  inv.DocumentURL,
		DetailMode:   DetailMode(lines),
		DiscountMode: DiscountMode(lines),
		Lines:        dist.Lines,
		Totals:       Aggregate(dist.Lines, inv.TotalAmount),
		Outcome:      dist.Outcome,
	}
}

// Regenerate asks the ERP to rebuild the invoice document and drops the
// cached view so the next load reflects the new document URL.
func (s *Service) Regenerate(ctx context.Context, id string) (upstream.DocumentRef, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return upstream.DocumentRef{}, common.NewAppError(http.StatusBadRequest, "invoice id is required", http.StatusBadRequest, nil)
	}
	ref, err := s.upstream.RegenerateInvoiceDocument(ctx, id)
	if err != nil {
		return upstream.DocumentRef{}, err
	}
	if err := s.cache.Delete(ctx, viewCacheKey(id)); err != nil {
		s.logger.Warn().Err(err).Str("invoice_id", id).Msg("invoice view cache invalidation failed")
	}
	return ref, nil
}

func observeCache(result string) {
	if obs.InvoiceViewCacheHits != nil {
		obs.InvoiceViewCacheHits.WithLabelValues(result).Inc()
	}
}
