// Package dto defines request and response shapes for the HTTP API.
package dto

import (
	"vending-content-service/internal/domain"
)

// ListRequest holds the query parameters accepted by the list endpoints.
type ListRequest struct {
	VisibleOnly  bool   `query:"visible_only"`
	HomepageOnly bool   `query:"homepage_only"`
	Type         string `query:"type" validate:"omitempty,oneof=vending locker"`
}

// ToListFilters converts the request to domain list filters.
func (r *ListRequest) ToListFilters() domain.ListFilters {
	return domain.ListFilters{
		VisibleOnly:  r.VisibleOnly,
		HomepageOnly: r.HomepageOnly,
		Type:         domain.MachineType(r.Type),
	}
}

// SlugChangeRequest registers a renamed slug so old URLs keep resolving.
type SlugChangeRequest struct {
	URLSlug      string `json:"url_slug" validate:"required,max=200"`
	ProviderSlug string `json:"provider_slug" validate:"required,max=200"`
}
