// Package cortellis glues the query builder and the digest client into the
// per-intent operations the tool and REST surfaces call.
package cortellis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/uh-joan/cortellis-mcp-server/internal/digest"
	"github.com/uh-joan/cortellis-mcp-server/internal/query"
	"github.com/uh-joan/cortellis-mcp-server/internal/types"
)

// Client is the authenticated Cortellis API client. It is safe for
// concurrent use; each call performs its own digest handshake.
type Client struct {
	endpoints   Endpoints
	fetcher     Fetcher
	rateLimiter *rate.Limiter
}

// Fetcher performs one authenticated request. Satisfied by *digest.Client;
// narrowed to an interface so transport behavior can be faked in tests.
type Fetcher interface {
	Fetch(ctx context.Context, method, url string) (json.RawMessage, error)
}

// NewClient builds a client from the loaded configuration, wiring the
// tuned HTTP transport into the digest client.
func NewClient(cfg *types.Config) *Client {
	transport := &http.Transport{
		MaxConnsPerHost:       cfg.MaxConnections,
		MaxIdleConns:          cfg.MaxIdleConns,
		MaxIdleConnsPerHost:   cfg.MaxIdleConns,
		IdleConnTimeout:       cfg.IdleConnTimeout,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.RequestTimeout,
	}

	httpClient := &http.Client{
		Transport: transport,
		Timeout:   cfg.RequestTimeout,
	}

	fetcher := digest.NewClient(httpClient, digest.Credentials{
		Username: cfg.CortellisUsername,
		Password: cfg.CortellisPassword,
	})

	return &Client{
		endpoints:   NewEndpoints(cfg.CortellisBaseURL),
		fetcher:     fetcher,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}
}

// NewClientWithFetcher builds a client over a caller-supplied fetcher.
func NewClientWithFetcher(baseURL string, fetcher Fetcher, limiter *rate.Limiter) *Client {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &Client{
		endpoints:   NewEndpoints(baseURL),
		fetcher:     fetcher,
		rateLimiter: limiter,
	}
}

// SearchDrugs executes a drug search.
func (c *Client) SearchDrugs(ctx context.Context, p types.SearchDrugsParams) (json.RawMessage, error) {
	return c.fetch(ctx, query.DrugSearchURL(c.endpoints.Drug, p))
}

// SearchCompanies executes a company search.
func (c *Client) SearchCompanies(ctx context.Context, p types.SearchCompaniesParams) (json.RawMessage, error) {
	return c.fetch(ctx, query.CompanySearchURL(c.endpoints.Company, p))
}

// SearchDeals executes a deal search.
func (c *Client) SearchDeals(ctx context.Context, p types.SearchDealsParams) (json.RawMessage, error) {
	return c.fetch(ctx, query.DealSearchURL(c.endpoints.Deal, p))
}

// ExploreOntology resolves and executes a taxonomy term lookup.
func (c *Client) ExploreOntology(ctx context.Context, p types.OntologyParams) (json.RawMessage, error) {
	u, err := query.OntologySearchURL(c.endpoints.Ontology, p)
	if err != nil {
		return nil, err
	}
	return c.fetch(ctx, u)
}

// GetRecord fetches a single record of the given kind by id.
func (c *Client) GetRecord(ctx context.Context, kind types.RecordKind, id string) (json.RawMessage, error) {
	base, err := c.recordBase(kind)
	if err != nil {
		return nil, err
	}
	u, err := query.RecordURL(base, id)
	if err != nil {
		return nil, err
	}
	return c.fetch(ctx, u)
}

// GetDrug fetches one drug record.
func (c *Client) GetDrug(ctx context.Context, id string) (json.RawMessage, error) {
	return c.GetRecord(ctx, types.RecordDrug, id)
}

// GetDrugSWOT fetches the SWOT analysis for a drug.
func (c *Client) GetDrugSWOT(ctx context.Context, id string) (json.RawMessage, error) {
	return c.GetRecord(ctx, types.RecordDrugSWOT, id)
}

// GetDrugFinancial fetches consensus financial data for a drug.
func (c *Client) GetDrugFinancial(ctx context.Context, id string) (json.RawMessage, error) {
	return c.GetRecord(ctx, types.RecordDrugFinancial, id)
}

// GetCompany fetches one company record.
func (c *Client) GetCompany(ctx context.Context, id string) (json.RawMessage, error) {
	return c.GetRecord(ctx, types.RecordCompany, id)
}

func (c *Client) recordBase(kind types.RecordKind) (string, error) {
	switch kind {
	case types.RecordDrug:
		return c.endpoints.Drug, nil
	case types.RecordDrugSWOT:
		return c.endpoints.DrugSWOT, nil
	case types.RecordDrugFinancial:
		return c.endpoints.DrugFin, nil
	case types.RecordCompany:
		return c.endpoints.Company, nil
	default:
		return "", types.NewValidationError(fmt.Sprintf("unknown record kind: %s", kind))
	}
}

func (c *Client) fetch(ctx context.Context, url string) (json.RawMessage, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}
	return c.fetcher.Fetch(ctx, defaultMethod, url)
}
