package contentful

import (
	"context"

	"go.uber.org/zap"

	"vending-content-service/internal/domain"
)

// MachineAdapter reads machine entries from the delivery API.
type MachineAdapter struct {
	adapterCore
}

// NewMachineAdapter creates a MachineAdapter.
func NewMachineAdapter(provider *ClientProvider, transformer *Transformer, logger *zap.Logger) *MachineAdapter {
	return &MachineAdapter{
		adapterCore: newAdapterCore(provider, transformer, logger, domain.KindMachine, typeMachine),
	}
}

// GetAll returns the machine collection. The type filter is pushed to the
// provider; visibility filtering stays client-side so the absent-flag default
// applies.
func (a *MachineAdapter) GetAll(ctx context.Context, filters domain.ListFilters) ([]*domain.Machine, error) {
	serverFilters := matchFilters(filters)
	if filters.Type != "" {
		if serverFilters == nil {
			serverFilters = make(map[string]string, 1)
		}
		serverFilters["fields.type"] = string(filters.Type)
	}

	doc, err := a.all(ctx, serverFilters)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Machine, 0, len(doc.Items))
	for _, item := range doc.Items {
		m := a.transformer.Machine(item, doc)
		if filters.VisibleOnly && !m.Visible {
			continue
		}
		if filters.HomepageOnly && !m.ShowOnHomepage {
			continue
		}
		out = append(out, m)
	}

	return out, nil
}

// GetBySlug returns the machine with exactly this provider slug, or nil.
func (a *MachineAdapter) GetBySlug(ctx context.Context, slug string) (*domain.Machine, error) {
	doc, err := a.bySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if len(doc.Items) == 0 {
		return nil, nil
	}

	return a.transformer.Machine(doc.Items[0], doc), nil
}

// GetByID returns the machine with this provider-native ID, or nil.
func (a *MachineAdapter) GetByID(ctx context.Context, id string) (*domain.Machine, error) {
	doc, err := a.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(doc.Items) == 0 {
		return nil, nil
	}

	return a.transformer.Machine(doc.Items[0], doc), nil
}

// ResolveMachineImages is the per-machine refetch strategy for recommended
// machines. Summaries built from embedded includes can arrive without image
// data when the parent query's include depth falls short; detail pages that
// need guaranteed-complete images pass their summaries through here.
//
// A summary that already has an image is returned untouched. A refetch
// failure keeps the original summary and logs a warning; one bad machine
// never fails the parent entity.
func (a *MachineAdapter) ResolveMachineImages(ctx context.Context, summaries []domain.MachineSummary) []domain.MachineSummary {
	out := make([]domain.MachineSummary, len(summaries))
	for i, summary := range summaries {
		out[i] = summary
		if summary.HasImage() || summary.ID == "" {
			continue
		}

		machine, err := a.GetByID(ctx, summary.ID)
		if err != nil || machine == nil {
			a.logger.Warn("machine image refetch failed, keeping partial summary",
				zap.String("machine_id", summary.ID),
				zap.Error(err),
			)

			continue
		}

		out[i].Images = machine.Images
		out[i].Thumbnail = machine.Thumbnail
	}

	return out
}

// Create is permanently disabled.
func (a *MachineAdapter) Create(ctx context.Context, _ *domain.Machine) error {
	return a.writeBlocked("create")
}

// Update is permanently disabled.
func (a *MachineAdapter) Update(ctx context.Context, _ *domain.Machine) error {
	return a.writeBlocked("update")
}

// Delete is permanently disabled.
func (a *MachineAdapter) Delete(ctx context.Context, _ string) error {
	return a.writeBlocked("delete")
}

// Clone is permanently disabled.
func (a *MachineAdapter) Clone(ctx context.Context, _ string) (*domain.Machine, error) {
	return nil, a.writeBlocked("clone")
}
