package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vending-content-service/internal/domain"
	"vending-content-service/internal/slug"
)

// fakeAdapter is an in-memory adapter. One generic implementation satisfies
// every per-kind adapter interface.
type fakeAdapter[T any] struct {
	items  []*T
	slugOf func(*T) string
	idOf   func(*T) string

	getBySlugErr error
	getAllErr    error

	mu            sync.Mutex
	slugQueries   []string
	getAllCalls   int
	getAllFilters []domain.ListFilters
}

func (f *fakeAdapter[T]) GetAll(_ context.Context, filters domain.ListFilters) ([]*T, error) {
	f.mu.Lock()
	f.getAllCalls++
	f.getAllFilters = append(f.getAllFilters, filters)
	f.mu.Unlock()

	if f.getAllErr != nil {
		return nil, f.getAllErr
	}

	// the fake applies the slug filter exactly; the provider's looser match
	// operator is pinned in the adapter query-shape tests
	if filters.Slug != "" {
		var out []*T
		for _, item := range f.items {
			if f.slugOf(item) == filters.Slug {
				out = append(out, item)
			}
		}

		return out, nil
	}

	return f.items, nil
}

func (f *fakeAdapter[T]) GetBySlug(_ context.Context, s string) (*T, error) {
	f.mu.Lock()
	f.slugQueries = append(f.slugQueries, s)
	f.mu.Unlock()

	if f.getBySlugErr != nil {
		return nil, f.getBySlugErr
	}
	for _, item := range f.items {
		if f.slugOf(item) == s {
			return item, nil
		}
	}

	return nil, nil
}

func (f *fakeAdapter[T]) GetByID(_ context.Context, id string) (*T, error) {
	for _, item := range f.items {
		if f.idOf(item) == id {
			return item, nil
		}
	}

	return nil, nil
}

func (f *fakeAdapter[T]) Create(_ context.Context, _ *T) error {
	return domain.ErrWriteDisabled
}

func (f *fakeAdapter[T]) Update(_ context.Context, _ *T) error {
	return domain.ErrWriteDisabled
}

func (f *fakeAdapter[T]) Delete(_ context.Context, _ string) error {
	return domain.ErrWriteDisabled
}

func (f *fakeAdapter[T]) Clone(_ context.Context, _ string) (*T, error) {
	return nil, domain.ErrWriteDisabled
}

// fakeCache is a TTL-less in-memory domain.Cache.
type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	cleared int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.data[key], nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value

	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)

	return nil
}

func (c *fakeCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = map[string][]byte{}
	c.cleared++

	return nil
}

type fakeRefresher struct {
	calls int
}

func (r *fakeRefresher) Invalidate() { r.calls++ }

func goalAdapter(goals ...*domain.BusinessGoal) *fakeAdapter[domain.BusinessGoal] {
	return &fakeAdapter[domain.BusinessGoal]{
		items:  goals,
		slugOf: func(g *domain.BusinessGoal) string { return g.Slug },
		idOf:   func(g *domain.BusinessGoal) string { return g.ID },
	}
}

func machineAdapter(machines ...*domain.Machine) *fakeAdapter[domain.Machine] {
	return &fakeAdapter[domain.Machine]{
		items:  machines,
		slugOf: func(m *domain.Machine) string { return m.Slug },
		idOf:   func(m *domain.Machine) string { return m.ID },
	}
}

func newTestService(adapters Adapters, cache domain.Cache) (*CatalogService, *slug.Registry) {
	registry := slug.NewRegistry()
	resolver := slug.NewResolver(registry, zap.NewNop())

	if adapters.ProductTypes == nil {
		adapters.ProductTypes = &fakeAdapter[domain.ProductType]{
			slugOf: func(p *domain.ProductType) string { return p.Slug },
			idOf:   func(p *domain.ProductType) string { return p.ID },
		}
	}
	if adapters.BusinessGoals == nil {
		adapters.BusinessGoals = goalAdapter()
	}
	if adapters.Machines == nil {
		adapters.Machines = machineAdapter()
	}
	if adapters.Technologies == nil {
		adapters.Technologies = &fakeAdapter[domain.Technology]{
			slugOf: func(tc *domain.Technology) string { return tc.Slug },
			idOf:   func(tc *domain.Technology) string { return tc.ID },
		}
	}
	if adapters.CaseStudies == nil {
		adapters.CaseStudies = &fakeAdapter[domain.CaseStudy]{
			slugOf: func(c *domain.CaseStudy) string { return c.Slug },
			idOf:   func(c *domain.CaseStudy) string { return c.ID },
		}
	}

	return NewCatalogService(adapters, resolver, nil, cache, time.Minute, zap.NewNop()), registry
}

// TestGetBusinessGoalBySlug_BlankInput: blank slugs short-circuit before any
// adapter call.
func TestGetBusinessGoalBySlug_BlankInput(t *testing.T) {
	goals := goalAdapter()
	svc, _ := newTestService(Adapters{BusinessGoals: goals}, nil)

	for _, raw := range []string{"", "   ", "\t"} {
		goal, err := svc.GetBusinessGoalBySlug(context.Background(), raw)
		assert.NoError(t, err)
		assert.Nil(t, goal)
	}

	assert.Empty(t, goals.slugQueries)
	assert.Zero(t, goals.getAllCalls)
}

// TestGetBusinessGoalBySlug_VerbatimHit stops at the first attempt.
func TestGetBusinessGoalBySlug_VerbatimHit(t *testing.T) {
	goals := goalAdapter(&domain.BusinessGoal{ID: "g1", Slug: "increase-revenue"})
	svc, _ := newTestService(Adapters{BusinessGoals: goals}, nil)

	goal, err := svc.GetBusinessGoalBySlug(context.Background(), "increase-revenue")
	require.NoError(t, err)
	require.NotNil(t, goal)
	assert.Equal(t, "g1", goal.ID)

	assert.Equal(t, []string{"increase-revenue"}, goals.slugQueries)
	assert.Zero(t, goals.getAllCalls)
}

// TestGetBusinessGoalBySlug_NormalizedHit: a messy URL segment resolves to
// the provider slug on the second attempt.
func TestGetBusinessGoalBySlug_NormalizedHit(t *testing.T) {
	goals := goalAdapter(&domain.BusinessGoal{ID: "g1", Slug: "expand-footprint"})
	svc, _ := newTestService(Adapters{BusinessGoals: goals}, nil)

	goal, err := svc.GetBusinessGoalBySlug(context.Background(), "Expand_Footprint")
	require.NoError(t, err)
	require.NotNil(t, goal)
	assert.Equal(t, "g1", goal.ID)

	assert.Equal(t, []string{"Expand_Footprint", "expand-footprint"}, goals.slugQueries)
	assert.Equal(t, 1, goals.getAllCalls)
}

// TestGetBusinessGoalBySlug_AliasHit: hardcoded aliases reach the canonical
// provider slug.
func TestGetBusinessGoalBySlug_AliasHit(t *testing.T) {
	goals := goalAdapter(&domain.BusinessGoal{ID: "g1", Slug: "expand-footprint"})
	svc, _ := newTestService(Adapters{BusinessGoals: goals}, nil)

	goal, err := svc.GetBusinessGoalBySlug(context.Background(), "expand")
	require.NoError(t, err)
	require.NotNil(t, goal)
	assert.Equal(t, "g1", goal.ID)
}

// TestGetBusinessGoalBySlug_RegistryPrecedence: a registered slug change wins
// over the hardcoded alias table.
func TestGetBusinessGoalBySlug_RegistryPrecedence(t *testing.T) {
	goals := goalAdapter(&domain.BusinessGoal{ID: "g2", Slug: "reach-new-locations"})
	svc, registry := newTestService(Adapters{BusinessGoals: goals}, nil)

	registry.RegisterSlugChange("expand", "reach-new-locations")

	goal, err := svc.GetBusinessGoalBySlug(context.Background(), "expand")
	require.NoError(t, err)
	require.NotNil(t, goal)
	assert.Equal(t, "g2", goal.ID)
}

// TestGetMachineBySlug_CollectionFallback: when exact queries miss, the
// collection scan matches by substring.
func TestGetMachineBySlug_CollectionFallback(t *testing.T) {
	machines := machineAdapter(
		&domain.Machine{ID: "m1", Slug: "combo-max"},
		&domain.Machine{ID: "m2", Slug: "barista-one"},
	)
	svc, _ := newTestService(Adapters{Machines: machines}, nil)

	machine, err := svc.GetMachineBySlug(context.Background(), "barista")
	require.NoError(t, err)
	require.NotNil(t, machine)
	assert.Equal(t, "m2", machine.ID)

	// one slug-filtered fetch, then the full-collection scan
	require.Equal(t, 2, machines.getAllCalls)
	assert.Equal(t, "barista", machines.getAllFilters[0].Slug)
	assert.Empty(t, machines.getAllFilters[1].Slug)
}

// TestLookup_UnknownSlugExhaustsAllAttempts: a slug that resolves to itself
// still gets the exact lookup, the loose slug-filtered fetch and the
// full-collection scan before the miss becomes final.
func TestLookup_UnknownSlugExhaustsAllAttempts(t *testing.T) {
	goals := goalAdapter(&domain.BusinessGoal{ID: "g1", Slug: "increase-revenue", Title: "Increase Revenue"})
	svc, _ := newTestService(Adapters{BusinessGoals: goals}, nil)

	goal, err := svc.GetBusinessGoalBySlug(context.Background(), "totally-unknown-slug")
	require.NoError(t, err)
	assert.Nil(t, goal)

	// exactly one exact query (resolution is the identity here), then the
	// filtered fetch with the same slug, then the collection scan
	assert.Equal(t, []string{"totally-unknown-slug"}, goals.slugQueries)
	require.Equal(t, 2, goals.getAllCalls)
	assert.Equal(t, "totally-unknown-slug", goals.getAllFilters[0].Slug)
	assert.Empty(t, goals.getAllFilters[1].Slug)
}

// TestGetBusinessGoalBySlug_KeywordShim: the fixed legacy keywords scan
// titles and descriptions as a last resort.
func TestGetBusinessGoalBySlug_KeywordShim(t *testing.T) {
	goals := goalAdapter(
		&domain.BusinessGoal{ID: "g1", Slug: "reach-new-markets", Title: "Expand Your Footprint"},
		&domain.BusinessGoal{ID: "g2", Slug: "increase-revenue", Title: "Increase Revenue"},
	)
	svc, _ := newTestService(Adapters{BusinessGoals: goals}, nil)

	goal, err := svc.GetBusinessGoalBySlug(context.Background(), "expand-options")
	require.NoError(t, err)
	require.NotNil(t, goal)
	assert.Equal(t, "g1", goal.ID)

	// a slug without a legacy keyword never reaches the shim
	none, err := svc.GetBusinessGoalBySlug(context.Background(), "unknown-goal")
	require.NoError(t, err)
	assert.Nil(t, none)
}

// TestLookup_ErrorOnlySurfacesWhenUnmatched: a failed attempt is swallowed if
// a later attempt finds the entity.
func TestLookup_ErrorOnlySurfacesWhenUnmatched(t *testing.T) {
	goals := goalAdapter(&domain.BusinessGoal{ID: "g1", Slug: "expand-footprint"})
	goals.getBySlugErr = errors.New("delivery api returned status 500")
	svc, _ := newTestService(Adapters{BusinessGoals: goals}, nil)

	goal, err := svc.GetBusinessGoalBySlug(context.Background(), "expand-footprint")
	require.NoError(t, err)
	require.NotNil(t, goal)
	assert.Equal(t, "g1", goal.ID)
}

// TestLookup_FirstErrorSurfacesWhenAllMiss: with no match anywhere, the first
// remembered failure comes back.
func TestLookup_FirstErrorSurfacesWhenAllMiss(t *testing.T) {
	slugErr := errors.New("delivery api returned status 500")
	goals := goalAdapter()
	goals.getBySlugErr = slugErr
	goals.getAllErr = errors.New("delivery api returned status 502")
	svc, _ := newTestService(Adapters{BusinessGoals: goals}, nil)

	goal, err := svc.GetBusinessGoalBySlug(context.Background(), "anything")
	assert.Nil(t, goal)
	assert.ErrorIs(t, err, slugErr)
}

// TestGetMachines_CachedList: the second list call is served from cache.
func TestGetMachines_CachedList(t *testing.T) {
	machines := machineAdapter(&domain.Machine{ID: "m1", Slug: "combo-max"})
	cache := newFakeCache()
	svc, _ := newTestService(Adapters{Machines: machines}, cache)

	first, err := svc.GetMachines(context.Background(), domain.ListFilters{})
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.GetMachines(context.Background(), domain.ListFilters{})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)

	assert.Equal(t, 1, machines.getAllCalls)

	// different filters never share a cache entry
	_, err = svc.GetMachines(context.Background(), domain.ListFilters{VisibleOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 2, machines.getAllCalls)
}

// TestRefresh invalidates the provider handle and clears the list cache.
func TestRefresh(t *testing.T) {
	machines := machineAdapter(&domain.Machine{ID: "m1", Slug: "combo-max"})
	cache := newFakeCache()
	refresher := &fakeRefresher{}

	registry := slug.NewRegistry()
	resolver := slug.NewResolver(registry, zap.NewNop())
	svc := NewCatalogService(Adapters{
		ProductTypes: &fakeAdapter[domain.ProductType]{
			slugOf: func(p *domain.ProductType) string { return p.Slug },
			idOf:   func(p *domain.ProductType) string { return p.ID },
		},
		BusinessGoals: goalAdapter(),
		Machines:      machines,
		Technologies: &fakeAdapter[domain.Technology]{
			slugOf: func(tc *domain.Technology) string { return tc.Slug },
			idOf:   func(tc *domain.Technology) string { return tc.ID },
		},
		CaseStudies: &fakeAdapter[domain.CaseStudy]{
			slugOf: func(c *domain.CaseStudy) string { return c.Slug },
			idOf:   func(c *domain.CaseStudy) string { return c.ID },
		},
	}, resolver, refresher, cache, time.Minute, zap.NewNop())

	_, err := svc.GetMachines(context.Background(), domain.ListFilters{})
	require.NoError(t, err)
	require.NotEmpty(t, cache.data)

	require.NoError(t, svc.Refresh(context.Background()))

	assert.Equal(t, 1, refresher.calls)
	assert.Equal(t, 1, cache.cleared)
	assert.Empty(t, cache.data)

	// next list call refetches
	_, err = svc.GetMachines(context.Background(), domain.ListFilters{})
	require.NoError(t, err)
	assert.Equal(t, 2, machines.getAllCalls)
}

// TestGetMachineByID passes straight through to the adapter.
func TestGetMachineByID(t *testing.T) {
	machines := machineAdapter(&domain.Machine{ID: "m1", Slug: "combo-max"})
	svc, _ := newTestService(Adapters{Machines: machines}, nil)

	machine, err := svc.GetMachineByID(context.Background(), "m1")
	require.NoError(t, err)
	require.NotNil(t, machine)
	assert.Equal(t, "combo-max", machine.Slug)

	missing, err := svc.GetMachineByID(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
