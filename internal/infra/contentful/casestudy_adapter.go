package contentful

import (
	"context"

	"go.uber.org/zap"

	"vending-content-service/internal/domain"
)

// CaseStudyAdapter reads caseStudy entries from the delivery API.
type CaseStudyAdapter struct {
	adapterCore
}

// NewCaseStudyAdapter creates a CaseStudyAdapter.
func NewCaseStudyAdapter(provider *ClientProvider, transformer *Transformer, logger *zap.Logger) *CaseStudyAdapter {
	return &CaseStudyAdapter{
		adapterCore: newAdapterCore(provider, transformer, logger, domain.KindCaseStudy, typeCaseStudy),
	}
}

// GetAll returns the case study collection.
func (a *CaseStudyAdapter) GetAll(ctx context.Context, filters domain.ListFilters) ([]*domain.CaseStudy, error) {
	doc, err := a.all(ctx, matchFilters(filters))
	if err != nil {
		return nil, err
	}

	out := make([]*domain.CaseStudy, 0, len(doc.Items))
	for _, item := range doc.Items {
		cs := a.transformer.CaseStudy(item, doc)
		if filters.VisibleOnly && !cs.Visible {
			continue
		}
		out = append(out, cs)
	}

	return out, nil
}

// GetBySlug returns the case study with exactly this provider slug, or nil.
func (a *CaseStudyAdapter) GetBySlug(ctx context.Context, slug string) (*domain.CaseStudy, error) {
	doc, err := a.bySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if len(doc.Items) == 0 {
		return nil, nil
	}

	return a.transformer.CaseStudy(doc.Items[0], doc), nil
}

// GetByID returns the case study with this provider-native ID, or nil.
func (a *CaseStudyAdapter) GetByID(ctx context.Context, id string) (*domain.CaseStudy, error) {
	doc, err := a.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(doc.Items) == 0 {
		return nil, nil
	}

	return a.transformer.CaseStudy(doc.Items[0], doc), nil
}

// Create is permanently disabled.
func (a *CaseStudyAdapter) Create(ctx context.Context, _ *domain.CaseStudy) error {
	return a.writeBlocked("create")
}

// Update is permanently disabled.
func (a *CaseStudyAdapter) Update(ctx context.Context, _ *domain.CaseStudy) error {
	return a.writeBlocked("update")
}

// Delete is permanently disabled.
func (a *CaseStudyAdapter) Delete(ctx context.Context, _ string) error {
	return a.writeBlocked("delete")
}

// Clone is permanently disabled.
func (a *CaseStudyAdapter) Clone(ctx context.Context, _ string) (*domain.CaseStudy, error) {
	return nil, a.writeBlocked("clone")
}
