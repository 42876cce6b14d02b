package contentful

import (
	"context"

	"go.uber.org/zap"

	"vending-content-service/internal/domain"
)

// ProductTypeAdapter reads productType entries from the delivery API.
type ProductTypeAdapter struct {
	adapterCore
}

// NewProductTypeAdapter creates a ProductTypeAdapter.
func NewProductTypeAdapter(provider *ClientProvider, transformer *Transformer, logger *zap.Logger) *ProductTypeAdapter {
	return &ProductTypeAdapter{
		adapterCore: newAdapterCore(provider, transformer, logger, domain.KindProductType, typeProductType),
	}
}

// GetAll returns the product type collection. Zero results is an empty slice,
// never an error. VisibleOnly filtering happens here, after transform, so the
// absent-flag default applies.
func (a *ProductTypeAdapter) GetAll(ctx context.Context, filters domain.ListFilters) ([]*domain.ProductType, error) {
	doc, err := a.all(ctx, matchFilters(filters))
	if err != nil {
		return nil, err
	}

	out := make([]*domain.ProductType, 0, len(doc.Items))
	for _, item := range doc.Items {
		p := a.transformer.ProductType(item, doc)
		if filters.VisibleOnly && !p.Visible {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

// GetBySlug returns the product type with exactly this provider slug, or nil.
func (a *ProductTypeAdapter) GetBySlug(ctx context.Context, slug string) (*domain.ProductType, error) {
	doc, err := a.bySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if len(doc.Items) == 0 {
		return nil, nil
	}

	return a.transformer.ProductType(doc.Items[0], doc), nil
}

// GetByID returns the product type with this provider-native ID, or nil.
func (a *ProductTypeAdapter) GetByID(ctx context.Context, id string) (*domain.ProductType, error) {
	doc, err := a.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(doc.Items) == 0 {
		return nil, nil
	}

	return a.transformer.ProductType(doc.Items[0], doc), nil
}

// Create is permanently disabled.
func (a *ProductTypeAdapter) Create(ctx context.Context, _ *domain.ProductType) error {
	return a.writeBlocked("create")
}

// Update is permanently disabled.
func (a *ProductTypeAdapter) Update(ctx context.Context, _ *domain.ProductType) error {
	return a.writeBlocked("update")
}

// Delete is permanently disabled.
func (a *ProductTypeAdapter) Delete(ctx context.Context, _ string) error {
	return a.writeBlocked("delete")
}

// Clone is permanently disabled.
func (a *ProductTypeAdapter) Clone(ctx context.Context, _ string) (*domain.ProductType, error) {
	return nil, a.writeBlocked("clone")
}
