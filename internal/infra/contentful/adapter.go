package contentful

import (
	"context"

	"go.uber.org/zap"

	"vending-content-service/internal/domain"
)

// Reference-resolution depths. Lists resolve one level of links (features,
// machine summaries); detail lookups go one deeper so machine assets embedded
// under a goal or product arrive in the includes.
const (
	includeList   = 2
	includeDetail = 3
)

// adapterCore is the shared plumbing of every content adapter: the cached
// client handle, the transformer, entry/exit logging and the blocked write
// path. The system is mid-migration and operators diagnose content
// mismatches from these logs, so the logging here is deliberate, not debug
// noise.
type adapterCore struct {
	provider    *ClientProvider
	transformer *Transformer
	logger      *zap.Logger
	kind        domain.Kind
	contentType string
}

func newAdapterCore(provider *ClientProvider, transformer *Transformer, logger *zap.Logger, kind domain.Kind, contentType string) adapterCore {
	return adapterCore{
		provider:    provider,
		transformer: transformer,
		logger:      logger.With(zap.String("kind", string(kind))),
		kind:        kind,
		contentType: contentType,
	}
}

// query runs an entries query through the cached client, invalidating the
// handle on failure so the next attempt gets a fresh one.
func (a *adapterCore) query(ctx context.Context, operation string, q Query) (*Document, error) {
	client, err := a.provider.Client()
	if err != nil {
		return nil, domain.NewProviderError(operation, a.kind, err)
	}

	doc, err := client.GetEntries(ctx, q)
	if err != nil {
		a.provider.Invalidate()

		return nil, domain.NewProviderError(operation, a.kind, err)
	}

	return doc, nil
}

// bySlug runs the exact-match slug query. A zero-item document means not
// found; the caller maps that to nil.
func (a *adapterCore) bySlug(ctx context.Context, slug string) (*Document, error) {
	a.logger.Debug("getBySlug", zap.String("slug", slug))

	doc, err := a.query(ctx, "getBySlug", Query{
		ContentType: a.contentType,
		Filters:     map[string]string{"fields.slug": slug},
		Include:     includeDetail,
		Limit:       1,
	})
	if err != nil {
		return nil, err
	}

	a.logger.Debug("getBySlug result", zap.String("slug", slug), zap.Int("matches", len(doc.Items)))

	return doc, nil
}

// byID fetches one entry by provider-native ID with references resolved.
func (a *adapterCore) byID(ctx context.Context, id string) (*Document, error) {
	a.logger.Debug("getById", zap.String("id", id))

	doc, err := a.query(ctx, "getById", Query{
		ContentType: a.contentType,
		Filters:     map[string]string{"sys.id": id},
		Include:     includeDetail,
		Limit:       1,
	})
	if err != nil {
		return nil, err
	}

	a.logger.Debug("getById result", zap.String("id", id), zap.Int("matches", len(doc.Items)))

	return doc, nil
}

// all fetches the whole collection with optional server-side filters.
func (a *adapterCore) all(ctx context.Context, serverFilters map[string]string) (*Document, error) {
	a.logger.Debug("getAll", zap.Any("filters", serverFilters))

	doc, err := a.query(ctx, "getAll", Query{
		ContentType: a.contentType,
		Filters:     serverFilters,
		Include:     includeList,
		Limit:       1000,
	})
	if err != nil {
		return nil, err
	}

	a.logger.Debug("getAll result", zap.Int("total", doc.Total), zap.Int("items", len(doc.Items)))

	return doc, nil
}

// matchFilters maps the cross-kind ListFilters the provider can evaluate into
// query parameters. The slug filter deliberately uses the full-text match
// operator rather than exact equality: it is the fallback net the lookup
// ladder casts when the exact bySlug query came up empty.
func matchFilters(filters domain.ListFilters) map[string]string {
	if filters.Slug == "" {
		return nil
	}

	return map[string]string{"fields.slug[match]": filters.Slug}
}

// writeBlocked is the single implementation behind create, update, delete and
// clone on every adapter. It logs a deprecation warning naming the operation
// and kind, performs no network call, and returns ErrWriteDisabled.
func (a *adapterCore) writeBlocked(operation string) error {
	a.logger.Warn("blocked deprecated write operation",
		zap.String("operation", operation),
		zap.String("guidance", "author content in Contentful directly; the adapter write path is permanently disabled"),
	)

	return domain.NewWriteDisabledError(operation, a.kind)
}
