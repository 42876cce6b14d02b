package contentful

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrMissingCredentials is returned when the provider is constructed without
// a space ID or access token. Missing credentials are a configuration error,
// never a silent fallback.
var ErrMissingCredentials = errors.New("contentful credentials missing: space id and access token are required")

// DefaultMaxClientAge is how long a cached client handle is trusted before
// it is rebuilt on next use.
const DefaultMaxClientAge = 30 * time.Minute

// ClientProvider lazily constructs and caches the delivery API client.
//
// The handle is rebuilt when older than maxAge or after Invalidate (the
// manual-retry path after a failed query). Construction is idempotent and
// cheap, so racing callers losing the build race costs one allocation; the
// mutex only serializes publication of the handle.
type ClientProvider struct {
	cfg    ClientConfig
	maxAge time.Duration
	logger *zap.Logger

	mu      sync.Mutex
	client  *Client
	builtAt time.Time
	now     func() time.Time
}

// NewClientProvider creates a ClientProvider. maxAge <= 0 selects
// DefaultMaxClientAge.
func NewClientProvider(cfg ClientConfig, maxAge time.Duration, logger *zap.Logger) *ClientProvider {
	if maxAge <= 0 {
		maxAge = DefaultMaxClientAge
	}

	return &ClientProvider{
		cfg:    cfg,
		maxAge: maxAge,
		logger: logger,
		now:    time.Now,
	}
}

// Client returns the cached client handle, building or rebuilding it as
// needed. Fails only on missing credentials.
func (p *ClientProvider) Client() (*Client, error) {
	if p.cfg.SpaceID == "" || p.cfg.AccessToken == "" {
		return nil, ErrMissingCredentials
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil && p.now().Sub(p.builtAt) < p.maxAge {
		return p.client, nil
	}

	stale := p.client != nil
	p.client = NewClient(p.cfg, p.logger)
	p.builtAt = p.now()

	if stale {
		p.logger.Info("rebuilt stale delivery api client",
			zap.Duration("max_age", p.maxAge),
		)
	} else {
		p.logger.Info("constructed delivery api client",
			zap.String("space", p.cfg.SpaceID),
			zap.String("environment", p.cfg.Environment),
		)
	}

	return p.client, nil
}

// Invalidate drops the cached handle so the next Client call rebuilds it.
// Called after failed queries and by the manual refresh endpoint.
func (p *ClientProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.client = nil

	p.logger.Debug("delivery api client invalidated")
}
