// Package domain contains the provider-agnostic catalog entities.
// This package has no external dependencies (only stdlib).
package domain

import (
	"time"
)

// Kind identifies a catalog content kind.
type Kind string

const (
	KindProductType  Kind = "productType"
	KindBusinessGoal Kind = "businessGoal"
	KindMachine      Kind = "machine"
	KindTechnology   Kind = "technology"
	KindCaseStudy    Kind = "caseStudy"
)

// MachineType distinguishes the two machine families the catalog carries.
type MachineType string

const (
	MachineTypeVending MachineType = "vending"
	MachineTypeLocker  MachineType = "locker"
)

// ContentImage is a fully-qualified image reference.
// URL is always absolute and https-qualified; protocol-relative URLs from the
// provider are rewritten before this shape is constructed.
type ContentImage struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Feature is a single selling point attached to a product type, business goal
// or technology section. Ownership is by value; features are never shared
// between parents.
type Feature struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Icon        string        `json:"icon,omitempty"`
	Screenshot  *ContentImage `json:"screenshot,omitempty"`
}

// MachineSummary is the lenient partial machine shape embedded in business
// goals and product types. Any image field may be absent; consumers pick the
// first populated one.
type MachineSummary struct {
	ID          string         `json:"id"`
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        MachineType    `json:"type"`
	Temperature string         `json:"temperature,omitempty"`
	Features    []string       `json:"features,omitempty"`
	Images      []ContentImage `json:"images"`
	Thumbnail   *ContentImage  `json:"thumbnail,omitempty"`
	Image       *ContentImage  `json:"image,omitempty"`
}

// HasImage reports whether any of the summary's image fields is populated.
func (m *MachineSummary) HasImage() bool {
	return len(m.Images) > 0 || m.Thumbnail != nil || m.Image != nil
}

// Machine is the full machine record behind /machines/:slug.
type Machine struct {
	ID             string         `json:"id"`
	Slug           string         `json:"slug"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Type           MachineType    `json:"type"`
	Temperature    string         `json:"temperature,omitempty"`
	Dimensions     string         `json:"dimensions,omitempty"`
	Features       []string       `json:"features"`
	Images         []ContentImage `json:"images"`
	Thumbnail      *ContentImage  `json:"thumbnail,omitempty"`
	Visible        bool           `json:"visible"`
	DisplayOrder   int            `json:"display_order"`
	ShowOnHomepage bool           `json:"show_on_homepage"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Summary projects the machine into its embedded summary shape.
func (m *Machine) Summary() MachineSummary {
	return MachineSummary{
		ID:          m.ID,
		Slug:        m.Slug,
		Title:       m.Title,
		Description: m.Description,
		Type:        m.Type,
		Temperature: m.Temperature,
		Features:    m.Features,
		Images:      m.Images,
		Thumbnail:   m.Thumbnail,
	}
}

// ProductType is a sellable software product line (e.g. grocery, car wash).
type ProductType struct {
	ID                  string           `json:"id"`
	Slug                string           `json:"slug"`
	Title               string           `json:"title"`
	Description         string           `json:"description"`
	Benefits            []string         `json:"benefits"`
	Image               *ContentImage    `json:"image,omitempty"`
	Video               string           `json:"video,omitempty"`
	Features            []Feature        `json:"features"`
	RecommendedMachines []MachineSummary `json:"recommended_machines"`
	Visible             bool             `json:"visible"`
	DisplayOrder        int              `json:"display_order"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// BusinessGoal is an outcome page (e.g. expand footprint, increase revenue).
// Slug is unique within the provider's businessGoal collection. A goal with
// Visible == false is hidden from list views but still reachable by direct
// slug lookup.
type BusinessGoal struct {
	ID                  string           `json:"id"`
	Slug                string           `json:"slug"`
	Title               string           `json:"title"`
	Description         string           `json:"description"`
	Image               *ContentImage    `json:"image,omitempty"`
	Icon                string           `json:"icon,omitempty"`
	Benefits            []string         `json:"benefits"`
	Features            []Feature        `json:"features,omitempty"`
	RecommendedMachines []MachineSummary `json:"recommended_machines"`
	Visible             bool             `json:"visible"`
	DisplayOrder        int              `json:"display_order"`
	ShowOnHomepage      bool             `json:"show_on_homepage"`
	HomepageOrder       int              `json:"homepage_order"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// TechnologySection is one titled block of a technology page.
type TechnologySection struct {
	ID           string    `json:"id"`
	TechnologyID string    `json:"technology_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	SectionType  string    `json:"section_type"`
	DisplayOrder int       `json:"display_order"`
	Features     []Feature `json:"features"`
}

// Technology is a platform technology page composed of ordered sections.
type Technology struct {
	ID           string              `json:"id"`
	Slug         string              `json:"slug"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Image        *ContentImage       `json:"image,omitempty"`
	Sections     []TechnologySection `json:"sections"`
	Visible      bool                `json:"visible"`
	DisplayOrder int                 `json:"display_order"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// CaseStudy is a customer story page.
type CaseStudy struct {
	ID          string        `json:"id"`
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Customer    string        `json:"customer"`
	Industry    string        `json:"industry,omitempty"`
	Summary     string        `json:"summary"`
	Results     []string      `json:"results"`
	Image       *ContentImage `json:"image,omitempty"`
	Quote       string        `json:"quote,omitempty"`
	QuoteAuthor string        `json:"quote_author,omitempty"`
	Visible     bool          `json:"visible"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
