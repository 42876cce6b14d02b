package contentful

import (
	"context"

	"go.uber.org/zap"

	"vending-content-service/internal/domain"
)

// BusinessGoalAdapter reads businessGoal entries from the delivery API.
type BusinessGoalAdapter struct {
	adapterCore
}

// NewBusinessGoalAdapter creates a BusinessGoalAdapter.
func NewBusinessGoalAdapter(provider *ClientProvider, transformer *Transformer, logger *zap.Logger) *BusinessGoalAdapter {
	return &BusinessGoalAdapter{
		adapterCore: newAdapterCore(provider, transformer, logger, domain.KindBusinessGoal, typeBusinessGoal),
	}
}

// GetAll returns the business goal collection, recommended machines built
// with the embedded-includes strategy. Invisible goals are dropped here when
// VisibleOnly is set; direct-slug lookup bypasses this filter by design.
func (a *BusinessGoalAdapter) GetAll(ctx context.Context, filters domain.ListFilters) ([]*domain.BusinessGoal, error) {
	doc, err := a.all(ctx, matchFilters(filters))
	if err != nil {
		return nil, err
	}

	out := make([]*domain.BusinessGoal, 0, len(doc.Items))
	for _, item := range doc.Items {
		g := a.transformer.BusinessGoal(item, doc)
		if filters.VisibleOnly && !g.Visible {
			continue
		}
		if filters.HomepageOnly && !g.ShowOnHomepage {
			continue
		}
		out = append(out, g)
	}

	return out, nil
}

// GetBySlug returns the goal with exactly this provider slug, or nil.
func (a *BusinessGoalAdapter) GetBySlug(ctx context.Context, slug string) (*domain.BusinessGoal, error) {
	doc, err := a.bySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if len(doc.Items) == 0 {
		return nil, nil
	}

	return a.transformer.BusinessGoal(doc.Items[0], doc), nil
}

// GetByID returns the goal with this provider-native ID, or nil.
func (a *BusinessGoalAdapter) GetByID(ctx context.Context, id string) (*domain.BusinessGoal, error) {
	doc, err := a.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(doc.Items) == 0 {
		return nil, nil
	}

	return a.transformer.BusinessGoal(doc.Items[0], doc), nil
}

// Create is permanently disabled.
func (a *BusinessGoalAdapter) Create(ctx context.Context, _ *domain.BusinessGoal) error {
	return a.writeBlocked("create")
}

// Update is permanently disabled.
func (a *BusinessGoalAdapter) Update(ctx context.Context, _ *domain.BusinessGoal) error {
	return a.writeBlocked("update")
}

// Delete is permanently disabled.
func (a *BusinessGoalAdapter) Delete(ctx context.Context, _ string) error {
	return a.writeBlocked("delete")
}

// Clone is permanently disabled.
func (a *BusinessGoalAdapter) Clone(ctx context.Context, _ string) (*domain.BusinessGoal, error) {
	return nil, a.writeBlocked("clone")
}
