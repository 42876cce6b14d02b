package domain

import (
	"context"
	"time"
)

// ListFilters narrows GetAll calls. Fields the provider can filter server-side
// are pushed into the query; the rest is applied by the adapter after fetch.
type ListFilters struct {
	// VisibleOnly drops entities whose Visible flag is false.
	VisibleOnly bool
	// HomepageOnly keeps entities flagged for the homepage.
	HomepageOnly bool
	// Type filters machines by family (vending, locker).
	Type MachineType
	// Slug narrows the fetch to entries whose slug matches this value. The
	// provider evaluates it with its loose match operator, so this is a
	// broader net than GetBySlug's exact query.
	Slug string
}

// ProductTypeAdapter reads product types from the content provider.
// Write operations exist only to satisfy the legacy adapter contract; every
// implementation returns ErrWriteDisabled without touching the network.
// Implementations: internal/infra/contentful/product_adapter.go
type ProductTypeAdapter interface {
	GetAll(ctx context.Context, filters ListFilters) ([]*ProductType, error)
	GetBySlug(ctx context.Context, slug string) (*ProductType, error)
	GetByID(ctx context.Context, id string) (*ProductType, error)
	Create(ctx context.Context, p *ProductType) error
	Update(ctx context.Context, p *ProductType) error
	Delete(ctx context.Context, id string) error
	Clone(ctx context.Context, id string) (*ProductType, error)
}

// BusinessGoalAdapter reads business goals from the content provider.
// Implementations: internal/infra/contentful/goal_adapter.go
type BusinessGoalAdapter interface {
	GetAll(ctx context.Context, filters ListFilters) ([]*BusinessGoal, error)
	GetBySlug(ctx context.Context, slug string) (*BusinessGoal, error)
	GetByID(ctx context.Context, id string) (*BusinessGoal, error)
	Create(ctx context.Context, g *BusinessGoal) error
	Update(ctx context.Context, g *BusinessGoal) error
	Delete(ctx context.Context, id string) error
	Clone(ctx context.Context, id string) (*BusinessGoal, error)
}

// MachineAdapter reads machines from the content provider.
// Implementations: internal/infra/contentful/machine_adapter.go
type MachineAdapter interface {
	GetAll(ctx context.Context, filters ListFilters) ([]*Machine, error)
	GetBySlug(ctx context.Context, slug string) (*Machine, error)
	GetByID(ctx context.Context, id string) (*Machine, error)
	Create(ctx context.Context, m *Machine) error
	Update(ctx context.Context, m *Machine) error
	Delete(ctx context.Context, id string) error
	Clone(ctx context.Context, id string) (*Machine, error)
}

// TechnologyAdapter reads technology pages from the content provider.
// Implementations: internal/infra/contentful/technology_adapter.go
type TechnologyAdapter interface {
	GetAll(ctx context.Context, filters ListFilters) ([]*Technology, error)
	GetBySlug(ctx context.Context, slug string) (*Technology, error)
	GetByID(ctx context.Context, id string) (*Technology, error)
	Create(ctx context.Context, t *Technology) error
	Update(ctx context.Context, t *Technology) error
	Delete(ctx context.Context, id string) error
	Clone(ctx context.Context, id string) (*Technology, error)
}

// CaseStudyAdapter reads case studies from the content provider.
// Implementations: internal/infra/contentful/casestudy_adapter.go
type CaseStudyAdapter interface {
	GetAll(ctx context.Context, filters ListFilters) ([]*CaseStudy, error)
	GetBySlug(ctx context.Context, slug string) (*CaseStudy, error)
	GetByID(ctx context.Context, id string) (*CaseStudy, error)
	Create(ctx context.Context, c *CaseStudy) error
	Update(ctx context.Context, c *CaseStudy) error
	Delete(ctx context.Context, id string) error
	Clone(ctx context.Context, id string) (*CaseStudy, error)
}

// Cache defines the interface for caching operations.
// Implementations: internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all cached values.
	Clear(ctx context.Context) error
}
