package contentful

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// RetryConfig holds retry configuration for the delivery API client.
type RetryConfig struct {
	MaxAttempts int
	WaitTime    time.Duration
	MaxWaitTime time.Duration
}

// CBConfig holds circuit breaker configuration.
type CBConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
}

// ClientConfig holds everything needed to reach the Content Delivery API.
type ClientConfig struct {
	// BaseURL overrides the delivery API host, for tests and the local stub.
	BaseURL     string
	SpaceID     string
	AccessToken string
	Environment string
	Timeout     time.Duration
	Retry       RetryConfig
	CB          CBConfig
}

const defaultBaseURL = "https://cdn.contentful.com"

// Query describes one entries request. Filters are dotted-field equality
// matches the provider applies server-side.
type Query struct {
	ContentType string
	// Filters maps dotted field paths to exact-match values,
	// e.g. "fields.slug" -> "expand-footprint" or "sys.id" -> "abc123".
	Filters map[string]string
	// Include is the reference-resolution depth (0 means provider default).
	Include int
	Limit   int
}

func (q Query) params() map[string]string {
	p := make(map[string]string, len(q.Filters)+3)
	if q.ContentType != "" {
		p["content_type"] = q.ContentType
	}
	for field, value := range q.Filters {
		p[field] = value
	}
	if q.Include > 0 {
		p["include"] = strconv.Itoa(q.Include)
	}
	if q.Limit > 0 {
		p["limit"] = strconv.Itoa(q.Limit)
	}

	return p
}

// Client is a thin query client over the Content Delivery API. It is
// read-only; the delivery API has no write surface and this service wants
// none.
type Client struct {
	http   *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
	base   string
}

// NewClient creates a delivery API client with retry and a circuit breaker.
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	environment := cfg.Environment
	if environment == "" {
		environment = "master"
	}

	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.AccessToken).
		SetRetryCount(cfg.Retry.MaxAttempts).
		SetRetryWaitTime(cfg.Retry.WaitTime).
		SetRetryMaxWaitTime(cfg.Retry.MaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Retry on network errors, rate limits and 5xx status codes
			if err != nil {
				return true
			}

			return r.StatusCode() == 429 || r.StatusCode() >= 500
		})

	return &Client{
		http:   http,
		cb:     newCircuitBreaker(cfg.CB),
		logger: logger,
		base:   fmt.Sprintf("/spaces/%s/environments/%s", cfg.SpaceID, environment),
	}
}

func newCircuitBreaker(cfg CBConfig) *gobreaker.CircuitBreaker[*resty.Response] {
	settings := gobreaker.Settings{
		Name:        "contentful",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= 3 && failureRatio >= cfg.FailureRatio
		},
	}

	return gobreaker.NewCircuitBreaker[*resty.Response](settings)
}

// GetEntries runs an entries query and returns the full document, includes
// and all. Zero matches is a valid document with an empty item list, not an
// error.
func (c *Client) GetEntries(ctx context.Context, q Query) (*Document, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		var doc Document
		r, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(q.params()).
			SetResult(&doc).
			Get(c.base + "/entries")
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("delivery api returned status %d", r.StatusCode())
		}

		return r, nil
	})
	if err != nil {
		c.logger.Warn("entries query failed",
			zap.String("content_type", q.ContentType),
			zap.String("state", c.cb.State().String()),
			zap.Error(err),
		)

		return nil, fmt.Errorf("querying entries: %w", err)
	}

	doc := resp.Result().(*Document)
	c.logger.Debug("entries query completed",
		zap.String("content_type", q.ContentType),
		zap.Int("total", doc.Total),
		zap.Int("items", len(doc.Items)),
	)

	return doc, nil
}

// GetEntry fetches a single entry by its provider-native ID. The single-entry
// endpoint resolves no references; callers that need linked records use
// GetEntries with a sys.id filter and an include depth instead.
func (c *Client) GetEntry(ctx context.Context, id string) (*Entry, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		var entry Entry
		r, err := c.http.R().
			SetContext(ctx).
			SetResult(&entry).
			Get(c.base + "/entries/" + id)
		if err != nil {
			return nil, err
		}
		if r.StatusCode() == 404 {
			return r, nil
		}
		if r.IsError() {
			return nil, fmt.Errorf("delivery api returned status %d", r.StatusCode())
		}

		return r, nil
	})
	if err != nil {
		c.logger.Warn("entry fetch failed",
			zap.String("entry_id", id),
			zap.String("state", c.cb.State().String()),
			zap.Error(err),
		)

		return nil, fmt.Errorf("fetching entry %s: %w", id, err)
	}

	if resp.StatusCode() == 404 {
		return nil, nil
	}

	return resp.Result().(*Entry), nil
}

// HealthCheck verifies the space is reachable with the configured
// credentials.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", "1").
		Get(c.base + "/entries")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}

// Transport exposes the underlying HTTP client for test instrumentation.
func (c *Client) Transport() *resty.Client {
	return c.http
}
