// Package contentful implements the content-provider side of the catalog:
// the raw Content Delivery API wire model, the transforms into domain shapes,
// and the per-kind read adapters.
package contentful

import (
	"strings"
	"time"
)

// Sys holds Contentful's system metadata for entries, assets and links.
type Sys struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	LinkType    string          `json:"linkType,omitempty"`
	ContentType *ContentTypeRef `json:"contentType,omitempty"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
	UpdatedAt   time.Time       `json:"updatedAt,omitempty"`
}

// ContentTypeRef links an entry to its content type.
type ContentTypeRef struct {
	Sys Sys `json:"sys"`
}

// Entry is a raw provider entry. Fields stay untyped because every content
// kind shares this envelope; narrowing happens in the transformer.
type Entry struct {
	Sys    Sys            `json:"sys"`
	Fields map[string]any `json:"fields"`
}

// ContentTypeID returns the entry's content type, or "" when the reference is
// missing (links and malformed entries).
func (e *Entry) ContentTypeID() string {
	if e.Sys.ContentType == nil {
		return ""
	}

	return e.Sys.ContentType.Sys.ID
}

// AssetFile is the file payload of an asset.
type AssetFile struct {
	URL         string `json:"url"`
	FileName    string `json:"fileName,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

// AssetFields is the typed field set of an asset.
type AssetFields struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	File        *AssetFile `json:"file"`
}

// Asset is a raw provider asset (images, videos).
type Asset struct {
	Sys    Sys         `json:"sys"`
	Fields AssetFields `json:"fields"`
}

// URL returns the asset's https-qualified URL. Contentful serves
// protocol-relative URLs ("//images.ctfassets.net/..."); those are rewritten
// to https, URLs already carrying a scheme are left alone, and a missing file
// yields "".
func (a *Asset) URL() string {
	if a == nil || a.Fields.File == nil {
		return ""
	}

	return qualifyURL(a.Fields.File.URL)
}

func qualifyURL(raw string) string {
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, "http"):
		return raw
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	default:
		return raw
	}
}

// Includes carries the linked records resolved by the provider up to the
// query's include depth.
type Includes struct {
	Entry []Entry `json:"Entry,omitempty"`
	Asset []Asset `json:"Asset,omitempty"`
}

// Document is the envelope of an entries query.
type Document struct {
	Total    int      `json:"total"`
	Skip     int      `json:"skip"`
	Limit    int      `json:"limit"`
	Items    []Entry  `json:"items"`
	Includes Includes `json:"includes"`
}

// linkID extracts the target ID and link type from a raw link field value.
// Returns ok == false for anything that is not a well-formed link map.
func linkID(v any) (id, linkType string, ok bool) {
	m, isMap := v.(map[string]any)
	if !isMap {
		return "", "", false
	}
	sys, isMap := m["sys"].(map[string]any)
	if !isMap {
		return "", "", false
	}
	id, _ = sys["id"].(string)
	linkType, _ = sys["linkType"].(string)
	if id == "" {
		return "", "", false
	}

	return id, linkType, true
}

// ResolveEntry resolves a link field value against the document's includes.
func (d *Document) ResolveEntry(v any) (*Entry, bool) {
	id, linkType, ok := linkID(v)
	if !ok || (linkType != "" && linkType != "Entry") {
		return nil, false
	}
	for i := range d.Includes.Entry {
		if d.Includes.Entry[i].Sys.ID == id {
			return &d.Includes.Entry[i], true
		}
	}

	return nil, false
}

// ResolveAsset resolves an asset link field value against the includes.
func (d *Document) ResolveAsset(v any) (*Asset, bool) {
	id, linkType, ok := linkID(v)
	if !ok || (linkType != "" && linkType != "Asset") {
		return nil, false
	}
	for i := range d.Includes.Asset {
		if d.Includes.Asset[i].Sys.ID == id {
			return &d.Includes.Asset[i], true
		}
	}

	return nil, false
}

// ResolveEntryLinks resolves an array field of entry links, skipping anything
// malformed or missing from the includes.
func (d *Document) ResolveEntryLinks(v any) []*Entry {
	items, isSlice := v.([]any)
	if !isSlice {
		return nil
	}

	out := make([]*Entry, 0, len(items))
	for _, item := range items {
		if entry, ok := d.ResolveEntry(item); ok {
			out = append(out, entry)
		}
	}

	return out
}

// ResolveAssetLinks resolves an array field of asset links.
func (d *Document) ResolveAssetLinks(v any) []*Asset {
	items, isSlice := v.([]any)
	if !isSlice {
		return nil
	}

	out := make([]*Asset, 0, len(items))
	for _, item := range items {
		if asset, ok := d.ResolveAsset(item); ok {
			out = append(out, asset)
		}
	}

	return out
}
