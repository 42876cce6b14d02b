package contentful

import (
	"context"

	"go.uber.org/zap"

	"vending-content-service/internal/domain"
)

// TechnologyAdapter reads technology entries from the delivery API.
type TechnologyAdapter struct {
	adapterCore
}

// NewTechnologyAdapter creates a TechnologyAdapter.
func NewTechnologyAdapter(provider *ClientProvider, transformer *Transformer, logger *zap.Logger) *TechnologyAdapter {
	return &TechnologyAdapter{
		adapterCore: newAdapterCore(provider, transformer, logger, domain.KindTechnology, typeTechnology),
	}
}

// GetAll returns the technology collection with sections resolved.
func (a *TechnologyAdapter) GetAll(ctx context.Context, filters domain.ListFilters) ([]*domain.Technology, error) {
	doc, err := a.all(ctx, matchFilters(filters))
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Technology, 0, len(doc.Items))
	for _, item := range doc.Items {
		tech := a.transformer.Technology(item, doc)
		if filters.VisibleOnly && !tech.Visible {
			continue
		}
		out = append(out, tech)
	}

	return out, nil
}

// GetBySlug returns the technology with exactly this provider slug, or nil.
func (a *TechnologyAdapter) GetBySlug(ctx context.Context, slug string) (*domain.Technology, error) {
	doc, err := a.bySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if len(doc.Items) == 0 {
		return nil, nil
	}

	return a.transformer.Technology(doc.Items[0], doc), nil
}

// GetByID returns the technology with this provider-native ID, or nil.
func (a *TechnologyAdapter) GetByID(ctx context.Context, id string) (*domain.Technology, error) {
	doc, err := a.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(doc.Items) == 0 {
		return nil, nil
	}

	return a.transformer.Technology(doc.Items[0], doc), nil
}

// Create is permanently disabled.
func (a *TechnologyAdapter) Create(ctx context.Context, _ *domain.Technology) error {
	return a.writeBlocked("create")
}

// Update is permanently disabled.
func (a *TechnologyAdapter) Update(ctx context.Context, _ *domain.Technology) error {
	return a.writeBlocked("update")
}

// Delete is permanently disabled.
func (a *TechnologyAdapter) Delete(ctx context.Context, _ string) error {
	return a.writeBlocked("delete")
}

// Clone is permanently disabled.
func (a *TechnologyAdapter) Clone(ctx context.Context, _ string) (*domain.Technology, error) {
	return nil, a.writeBlocked("clone")
}
