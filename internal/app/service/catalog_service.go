// Package service provides application use cases.
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"vending-content-service/internal/domain"
	"vending-content-service/internal/slug"
)

// Refresher invalidates the cached provider client handle. Implemented by
// contentful.ClientProvider.
type Refresher interface {
	Invalidate()
}

// Adapters bundles the per-kind content adapters the façade orchestrates.
type Adapters struct {
	ProductTypes  domain.ProductTypeAdapter
	BusinessGoals domain.BusinessGoalAdapter
	Machines      domain.MachineAdapter
	Technologies  domain.TechnologyAdapter
	CaseStudies   domain.CaseStudyAdapter
}

// CatalogService is the lookup façade the site consumes. Each Get<Kind>BySlug
// hides the multi-attempt fallback resolution behind a plain signature:
// verbatim lookup, loose-match filtered fetch, resolved-slug lookup,
// full-collection fuzzy matching and the legacy keyword shim,
// short-circuiting on the first hit.
type CatalogService struct {
	adapters  Adapters
	resolver  *slug.Resolver
	refresher Refresher
	cache     domain.Cache
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewCatalogService creates a CatalogService. cache may be nil (caching
// disabled); refresher may be nil in tests.
func NewCatalogService(
	adapters Adapters,
	resolver *slug.Resolver,
	refresher Refresher,
	cache domain.Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		adapters:  adapters,
		resolver:  resolver,
		refresher: refresher,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// lookupBySlug is the shared attempt ladder. Lookup never treats a miss as an
// error: nil with a nil error is the not-found result. A provider failure is
// remembered, the remaining attempts still run, and the failure only
// surfaces when every attempt comes up empty.
func lookupBySlug[T any](
	ctx context.Context,
	s *CatalogService,
	kind domain.Kind,
	raw string,
	getBySlug func(context.Context, string) (*T, error),
	getAll func(context.Context, domain.ListFilters) ([]*T, error),
	slugOf func(*T) string,
	textOf func(*T) string,
) (*T, error) {
	log := s.logger.With(zap.String("kind", string(kind)), zap.String("slug", raw))

	// attempt 1: reject blank input before any network call
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		log.Debug("lookup skipped: blank slug")

		return nil, nil
	}

	var firstErr error
	keepErr := func(step string, err error) {
		log.Warn("lookup attempt failed", zap.String("step", step), zap.Error(err))
		if firstErr == nil {
			firstErr = err
		}
	}

	// attempt 2: exact provider query with the slug as given
	log.Debug("lookup attempt", zap.String("step", "verbatim"))
	entity, err := getBySlug(ctx, trimmed)
	if err != nil {
		keepErr("verbatim", err)
	} else if entity != nil {
		return entity, nil
	}

	// attempt 3: broader fetch with the provider's loose slug match, same
	// slug but a different query shape than the exact lookup above. This
	// attempt always runs, even when resolution would be a no-op.
	log.Debug("lookup attempt", zap.String("step", "filtered"))
	candidates, err := getAll(ctx, domain.ListFilters{Slug: trimmed})
	if err != nil {
		keepErr("filtered", err)
	} else if len(candidates) > 0 {
		return candidates[0], nil
	}

	// attempt 4: exact provider query with the resolved slug
	resolved := s.resolver.Resolve(trimmed)
	if resolved != trimmed {
		log.Debug("lookup attempt", zap.String("step", "resolved"), zap.String("resolved", resolved))
		entity, err = getBySlug(ctx, resolved)
		if err != nil {
			keepErr("resolved", err)
		} else if entity != nil {
			return entity, nil
		}
	}

	// attempt 5: fetch the collection and match manually
	log.Debug("lookup attempt", zap.String("step", "collection"))
	all, err := getAll(ctx, domain.ListFilters{})
	if err != nil {
		keepErr("collection", err)
	}
	if entity := matchInCollection(all, trimmed, resolved, slugOf); entity != nil {
		return entity, nil
	}

	// attempt 6: legacy keyword shim, deliberately narrow
	if entity := matchByKeyword(all, resolved, textOf); entity != nil {
		log.Info("lookup matched via legacy keyword shim")

		return entity, nil
	}

	if firstErr != nil {
		log.Error("lookup failed after all attempts", zap.Error(firstErr))

		return nil, firstErr
	}

	log.Info("lookup exhausted all attempts, not found")

	return nil, nil
}

// matchInCollection tries, in order: exact slug equality, resolved-slug
// equality, substring containment in either direction, then equality against
// each generated slug variation. First match wins.
func matchInCollection[T any](all []*T, raw, resolved string, slugOf func(*T) string) *T {
	if len(all) == 0 {
		return nil
	}

	norm := slug.Normalize(raw)
	for _, entity := range all {
		es := slugOf(entity)
		if es == raw || es == norm || es == resolved {
			return entity
		}
	}

	for _, entity := range all {
		es := slugOf(entity)
		if es == "" || norm == "" {
			continue
		}
		if strings.Contains(es, norm) || strings.Contains(norm, es) {
			return entity
		}
	}

	for _, variant := range slug.Variations(raw) {
		for _, entity := range all {
			if slugOf(entity) == variant {
				return entity
			}
		}
	}

	return nil
}

// legacyKeywords drive the last-resort title/description scan. This is a
// compatibility shim for old campaign links, not a search feature; the set is
// fixed and must not grow with content.
var legacyKeywords = []string{"expand", "footprint"}

func matchByKeyword[T any](all []*T, resolved string, textOf func(*T) string) *T {
	slugHasKeyword := false
	for _, kw := range legacyKeywords {
		if strings.Contains(resolved, kw) {
			slugHasKeyword = true

			break
		}
	}
	if !slugHasKeyword {
		return nil
	}

	for _, entity := range all {
		text := strings.ToLower(textOf(entity))
		for _, kw := range legacyKeywords {
			if strings.Contains(text, kw) {
				return entity
			}
		}
	}

	return nil
}

// GetProductTypeBySlug resolves a raw URL segment to a product type, or nil.
func (s *CatalogService) GetProductTypeBySlug(ctx context.Context, raw string) (*domain.ProductType, error) {
	return lookupBySlug(ctx, s, domain.KindProductType, raw,
		s.adapters.ProductTypes.GetBySlug,
		s.adapters.ProductTypes.GetAll,
		func(p *domain.ProductType) string { return p.Slug },
		func(p *domain.ProductType) string { return p.Title + " " + p.Description },
	)
}

// GetBusinessGoalBySlug resolves a raw URL segment to a business goal, or
// nil. Invisible goals are still reachable here; visibility only hides them
// from lists.
func (s *CatalogService) GetBusinessGoalBySlug(ctx context.Context, raw string) (*domain.BusinessGoal, error) {
	goal, err := lookupBySlug(ctx, s, domain.KindBusinessGoal, raw,
		s.adapters.BusinessGoals.GetBySlug,
		s.adapters.BusinessGoals.GetAll,
		func(g *domain.BusinessGoal) string { return g.Slug },
		func(g *domain.BusinessGoal) string { return g.Title + " " + g.Description },
	)
	if err != nil || goal == nil {
		return goal, err
	}

	// Detail pages need complete machine imagery; refetch any summary that
	// arrived without it.
	if resolver, ok := s.adapters.Machines.(machineImageResolver); ok {
		goal.RecommendedMachines = resolver.ResolveMachineImages(ctx, goal.RecommendedMachines)
	}

	return goal, nil
}

// GetMachineBySlug resolves a raw URL segment to a machine, or nil.
func (s *CatalogService) GetMachineBySlug(ctx context.Context, raw string) (*domain.Machine, error) {
	return lookupBySlug(ctx, s, domain.KindMachine, raw,
		s.adapters.Machines.GetBySlug,
		s.adapters.Machines.GetAll,
		func(m *domain.Machine) string { return m.Slug },
		func(m *domain.Machine) string { return m.Title + " " + m.Description },
	)
}

// GetTechnologyBySlug resolves a raw URL segment to a technology, or nil.
func (s *CatalogService) GetTechnologyBySlug(ctx context.Context, raw string) (*domain.Technology, error) {
	return lookupBySlug(ctx, s, domain.KindTechnology, raw,
		s.adapters.Technologies.GetBySlug,
		s.adapters.Technologies.GetAll,
		func(t *domain.Technology) string { return t.Slug },
		func(t *domain.Technology) string { return t.Title + " " + t.Description },
	)
}

// GetCaseStudyBySlug resolves a raw URL segment to a case study, or nil.
func (s *CatalogService) GetCaseStudyBySlug(ctx context.Context, raw string) (*domain.CaseStudy, error) {
	return lookupBySlug(ctx, s, domain.KindCaseStudy, raw,
		s.adapters.CaseStudies.GetBySlug,
		s.adapters.CaseStudies.GetAll,
		func(c *domain.CaseStudy) string { return c.Slug },
		func(c *domain.CaseStudy) string { return c.Title + " " + c.Summary },
	)
}

// machineImageResolver is satisfied by contentful.MachineAdapter. Adapters
// that do not implement it (fakes in tests) skip the refetch.
type machineImageResolver interface {
	ResolveMachineImages(ctx context.Context, summaries []domain.MachineSummary) []domain.MachineSummary
}

// cachedList is the read-through path for the list endpoints.
func cachedList[T any](
	ctx context.Context,
	s *CatalogService,
	key string,
	fetch func(context.Context) ([]*T, error),
) ([]*T, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
			var out []*T
			if err := json.Unmarshal(data, &out); err == nil {
				s.logger.Debug("list served from cache", zap.String("key", key))

				return out, nil
			}
			s.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
		}
	}

	out, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(out); err == nil {
			if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
				s.logger.Warn("list cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return out, nil
}

func listKey(kind domain.Kind, filters domain.ListFilters) string {
	key := "list:" + string(kind)
	if filters.VisibleOnly {
		key += ":visible"
	}
	if filters.HomepageOnly {
		key += ":homepage"
	}
	if filters.Type != "" {
		key += ":" + string(filters.Type)
	}

	return key
}

// GetProductTypes lists product types, cached when caching is enabled.
func (s *CatalogService) GetProductTypes(ctx context.Context, filters domain.ListFilters) ([]*domain.ProductType, error) {
	return cachedList(ctx, s, listKey(domain.KindProductType, filters),
		func(ctx context.Context) ([]*domain.ProductType, error) {
			return s.adapters.ProductTypes.GetAll(ctx, filters)
		})
}

// GetBusinessGoals lists business goals, cached when caching is enabled.
func (s *CatalogService) GetBusinessGoals(ctx context.Context, filters domain.ListFilters) ([]*domain.BusinessGoal, error) {
	return cachedList(ctx, s, listKey(domain.KindBusinessGoal, filters),
		func(ctx context.Context) ([]*domain.BusinessGoal, error) {
			return s.adapters.BusinessGoals.GetAll(ctx, filters)
		})
}

// GetMachines lists machines, cached when caching is enabled.
func (s *CatalogService) GetMachines(ctx context.Context, filters domain.ListFilters) ([]*domain.Machine, error) {
	return cachedList(ctx, s, listKey(domain.KindMachine, filters),
		func(ctx context.Context) ([]*domain.Machine, error) {
			return s.adapters.Machines.GetAll(ctx, filters)
		})
}

// GetTechnologies lists technologies, cached when caching is enabled.
func (s *CatalogService) GetTechnologies(ctx context.Context, filters domain.ListFilters) ([]*domain.Technology, error) {
	return cachedList(ctx, s, listKey(domain.KindTechnology, filters),
		func(ctx context.Context) ([]*domain.Technology, error) {
			return s.adapters.Technologies.GetAll(ctx, filters)
		})
}

// GetCaseStudies lists case studies, cached when caching is enabled.
func (s *CatalogService) GetCaseStudies(ctx context.Context, filters domain.ListFilters) ([]*domain.CaseStudy, error) {
	return cachedList(ctx, s, listKey(domain.KindCaseStudy, filters),
		func(ctx context.Context) ([]*domain.CaseStudy, error) {
			return s.adapters.CaseStudies.GetAll(ctx, filters)
		})
}

// GetProductTypeByID fetches one product type by provider-native ID.
func (s *CatalogService) GetProductTypeByID(ctx context.Context, id string) (*domain.ProductType, error) {
	return s.adapters.ProductTypes.GetByID(ctx, id)
}

// GetBusinessGoalByID fetches one business goal by provider-native ID.
func (s *CatalogService) GetBusinessGoalByID(ctx context.Context, id string) (*domain.BusinessGoal, error) {
	return s.adapters.BusinessGoals.GetByID(ctx, id)
}

// GetMachineByID fetches one machine by provider-native ID.
func (s *CatalogService) GetMachineByID(ctx context.Context, id string) (*domain.Machine, error) {
	return s.adapters.Machines.GetByID(ctx, id)
}

// GetTechnologyByID fetches one technology by provider-native ID.
func (s *CatalogService) GetTechnologyByID(ctx context.Context, id string) (*domain.Technology, error) {
	return s.adapters.Technologies.GetByID(ctx, id)
}

// GetCaseStudyByID fetches one case study by provider-native ID.
func (s *CatalogService) GetCaseStudyByID(ctx context.Context, id string) (*domain.CaseStudy, error) {
	return s.adapters.CaseStudies.GetByID(ctx, id)
}

// Refresh is the manual retry action: it drops the cached provider client
// handle and clears the list cache so the next queries start clean.
func (s *CatalogService) Refresh(ctx context.Context) error {
	s.logger.Info("manual refresh requested")

	if s.refresher != nil {
		s.refresher.Invalidate()
	}
	if s.cache != nil {
		if err := s.cache.Clear(ctx); err != nil {
			return err
		}
	}

	return nil
}
