package contentful

import (
	"go.uber.org/zap"

	"vending-content-service/internal/domain"
)

// Content type IDs as configured in the provider space.
const (
	typeProductType       = "productType"
	typeBusinessGoal      = "businessGoal"
	typeMachine           = "machine"
	typeTechnology        = "technology"
	typeTechnologySection = "technologySection"
	typeFeature           = "feature"
	typeCaseStudy         = "caseStudy"
)

// Transformer maps raw provider entries into domain shapes. It performs no
// I/O; linked records are resolved against the document the entry arrived in.
//
// Every nested reference is optional. A missing or malformed reference is
// logged as a warning and degrades that one field to its zero value; it never
// fails the entry.
type Transformer struct {
	logger *zap.Logger
}

// NewTransformer creates a Transformer.
func NewTransformer(logger *zap.Logger) *Transformer {
	return &Transformer{logger: logger}
}

// Image converts an asset into a ContentImage, or nil when the asset has no
// usable file URL. No placeholder is substituted at this layer.
func (t *Transformer) Image(asset *Asset) *domain.ContentImage {
	if asset == nil {
		return nil
	}
	url := asset.URL()
	if url == "" {
		t.logger.Warn("asset has no file url, dropping image",
			zap.String("asset_id", asset.Sys.ID),
		)

		return nil
	}

	return &domain.ContentImage{
		ID:  asset.Sys.ID,
		URL: url,
		Alt: asset.Fields.Title,
	}
}

// imageField resolves an asset link field into a ContentImage. An absent
// field is silently nil; a present but unresolvable link is logged.
func (t *Transformer) imageField(e *Entry, doc *Document, key string) *domain.ContentImage {
	v, present := e.Fields[key]
	if !present || v == nil {
		return nil
	}
	asset, ok := doc.ResolveAsset(v)
	if !ok {
		t.logger.Warn("unresolvable asset link",
			zap.String("entry_id", e.Sys.ID),
			zap.String("field", key),
		)

		return nil
	}

	return t.Image(asset)
}

// imagesField resolves an array of asset links.
func (t *Transformer) imagesField(e *Entry, doc *Document, key string) []domain.ContentImage {
	out := []domain.ContentImage{}
	for _, asset := range doc.ResolveAssetLinks(e.Fields[key]) {
		if img := t.Image(asset); img != nil {
			out = append(out, *img)
		}
	}

	return out
}

// Feature converts a linked feature entry.
func (t *Transformer) Feature(e *Entry, doc *Document) domain.Feature {
	return domain.Feature{
		ID:          e.Sys.ID,
		Title:       stringField(e.Fields, "title"),
		Description: stringField(e.Fields, "description"),
		Icon:        stringField(e.Fields, "icon"),
		Screenshot:  t.imageField(e, doc, "screenshot"),
	}
}

// featuresField resolves an array of feature links. Unresolvable links are
// counted and logged once per entry rather than once per link.
func (t *Transformer) featuresField(e *Entry, doc *Document, key string) []domain.Feature {
	out := []domain.Feature{}
	v, present := e.Fields[key]
	if !present {
		return out
	}
	links, isSlice := v.([]any)
	if !isSlice {
		t.logger.Warn("features field is not an array, defaulting to empty",
			zap.String("entry_id", e.Sys.ID),
			zap.String("field", key),
		)

		return out
	}
	resolved := doc.ResolveEntryLinks(v)
	for _, fe := range resolved {
		out = append(out, t.Feature(fe, doc))
	}
	if dropped := len(links) - len(resolved); dropped > 0 {
		t.logger.Warn("dropped unresolvable feature links",
			zap.String("entry_id", e.Sys.ID),
			zap.String("field", key),
			zap.Int("dropped", dropped),
		)
	}

	return out
}

// MachineSummary converts a linked machine entry into the lenient embedded
// shape. With shallow include depth the machine's own asset links may be
// absent from the document; the summary then simply carries no image, which
// is valid.
func (t *Transformer) MachineSummary(e *Entry, doc *Document) domain.MachineSummary {
	return domain.MachineSummary{
		ID:          e.Sys.ID,
		Slug:        stringField(e.Fields, "slug"),
		Title:       stringField(e.Fields, "title"),
		Description: stringField(e.Fields, "description"),
		Type:        domain.MachineType(stringField(e.Fields, "type")),
		Temperature: stringField(e.Fields, "temperature"),
		Features:    stringSlice(e.Fields, "features"),
		Images:      t.imagesField(e, doc, "images"),
		Thumbnail:   t.imageField(e, doc, "thumbnail"),
		Image:       t.imageField(e, doc, "image"),
	}
}

// machinesField resolves an array of machine links into embedded summaries.
// This is the embedded-includes strategy: cheap, but completeness of image
// data depends on the query's include depth. Callers that need guaranteed
// images go through MachineAdapter.ResolveMachineImages afterwards.
func (t *Transformer) machinesField(e *Entry, doc *Document, key string) []domain.MachineSummary {
	out := []domain.MachineSummary{}
	for _, me := range doc.ResolveEntryLinks(e.Fields[key]) {
		out = append(out, t.MachineSummary(me, doc))
	}

	return out
}

// ProductType converts a productType entry.
func (t *Transformer) ProductType(e Entry, doc *Document) *domain.ProductType {
	return &domain.ProductType{
		ID:                  e.Sys.ID,
		Slug:                stringField(e.Fields, "slug"),
		Title:               stringField(e.Fields, "title"),
		Description:         stringField(e.Fields, "description"),
		Benefits:            stringSlice(e.Fields, "benefits"),
		Image:               t.imageField(&e, doc, "image"),
		Video:               stringField(e.Fields, "video"),
		Features:            t.featuresField(&e, doc, "features"),
		RecommendedMachines: t.machinesField(&e, doc, "recommendedMachines"),
		Visible:             boolField(e.Fields, "visible", true),
		DisplayOrder:        intField(e.Fields, "displayOrder"),
		CreatedAt:           e.Sys.CreatedAt,
		UpdatedAt:           e.Sys.UpdatedAt,
	}
}

// BusinessGoal converts a businessGoal entry.
func (t *Transformer) BusinessGoal(e Entry, doc *Document) *domain.BusinessGoal {
	return &domain.BusinessGoal{
		ID:                  e.Sys.ID,
		Slug:                stringField(e.Fields, "slug"),
		Title:               stringField(e.Fields, "title"),
		Description:         stringField(e.Fields, "description"),
		Image:               t.imageField(&e, doc, "image"),
		Icon:                stringField(e.Fields, "icon"),
		Benefits:            stringSlice(e.Fields, "benefits"),
		Features:            t.featuresField(&e, doc, "features"),
		RecommendedMachines: t.machinesField(&e, doc, "recommendedMachines"),
		Visible:             boolField(e.Fields, "visible", true),
		DisplayOrder:        intField(e.Fields, "displayOrder"),
		ShowOnHomepage:      boolField(e.Fields, "showOnHomepage", false),
		HomepageOrder:       intField(e.Fields, "homepageOrder"),
		CreatedAt:           e.Sys.CreatedAt,
		UpdatedAt:           e.Sys.UpdatedAt,
	}
}

// Machine converts a machine entry.
func (t *Transformer) Machine(e Entry, doc *Document) *domain.Machine {
	return &domain.Machine{
		ID:             e.Sys.ID,
		Slug:           stringField(e.Fields, "slug"),
		Title:          stringField(e.Fields, "title"),
		Description:    stringField(e.Fields, "description"),
		Type:           domain.MachineType(stringField(e.Fields, "type")),
		Temperature:    stringField(e.Fields, "temperature"),
		Dimensions:     stringField(e.Fields, "dimensions"),
		Features:       stringSlice(e.Fields, "features"),
		Images:         t.imagesField(&e, doc, "images"),
		Thumbnail:      t.imageField(&e, doc, "thumbnail"),
		Visible:        boolField(e.Fields, "visible", true),
		DisplayOrder:   intField(e.Fields, "displayOrder"),
		ShowOnHomepage: boolField(e.Fields, "showOnHomepage", false),
		CreatedAt:      e.Sys.CreatedAt,
		UpdatedAt:      e.Sys.UpdatedAt,
	}
}

// TechnologySection converts a linked technologySection entry.
func (t *Transformer) TechnologySection(e *Entry, doc *Document, technologyID string) domain.TechnologySection {
	return domain.TechnologySection{
		ID:           e.Sys.ID,
		TechnologyID: technologyID,
		Title:        stringField(e.Fields, "title"),
		Description:  stringField(e.Fields, "description"),
		SectionType:  stringField(e.Fields, "sectionType"),
		DisplayOrder: intField(e.Fields, "displayOrder"),
		Features:     t.featuresField(e, doc, "features"),
	}
}

// Technology converts a technology entry together with its linked sections.
func (t *Transformer) Technology(e Entry, doc *Document) *domain.Technology {
	sections := []domain.TechnologySection{}
	for _, se := range doc.ResolveEntryLinks(e.Fields["sections"]) {
		sections = append(sections, t.TechnologySection(se, doc, e.Sys.ID))
	}

	return &domain.Technology{
		ID:           e.Sys.ID,
		Slug:         stringField(e.Fields, "slug"),
		Title:        stringField(e.Fields, "title"),
		Description:  stringField(e.Fields, "description"),
		Image:        t.imageField(&e, doc, "image"),
		Sections:     sections,
		Visible:      boolField(e.Fields, "visible", true),
		DisplayOrder: intField(e.Fields, "displayOrder"),
		CreatedAt:    e.Sys.CreatedAt,
		UpdatedAt:    e.Sys.UpdatedAt,
	}
}

// CaseStudy converts a caseStudy entry.
func (t *Transformer) CaseStudy(e Entry, doc *Document) *domain.CaseStudy {
	return &domain.CaseStudy{
		ID:          e.Sys.ID,
		Slug:        stringField(e.Fields, "slug"),
		Title:       stringField(e.Fields, "title"),
		Customer:    stringField(e.Fields, "customer"),
		Industry:    stringField(e.Fields, "industry"),
		Summary:     stringField(e.Fields, "summary"),
		Results:     stringSlice(e.Fields, "results"),
		Image:       t.imageField(&e, doc, "image"),
		Quote:       stringField(e.Fields, "quote"),
		QuoteAuthor: stringField(e.Fields, "quoteAuthor"),
		Visible:     boolField(e.Fields, "visible", true),
		CreatedAt:   e.Sys.CreatedAt,
		UpdatedAt:   e.Sys.UpdatedAt,
	}
}
