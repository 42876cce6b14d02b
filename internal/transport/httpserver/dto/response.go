package dto

import "time"

// ListResponse wraps a collection result. Items carries the domain entities
// directly; their JSON tags are the public contract.
type ListResponse struct {
	Items any `json:"items"`
	Count int `json:"count"`
}

// NewListResponse builds a ListResponse from a typed slice.
func NewListResponse[T any](items []*T) ListResponse {
	return ListResponse{Items: items, Count: len(items)}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// WriteDisabledResponse is returned for every write route. Content is
// managed in the CMS; this API is read-only.
type WriteDisabledResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Kind  string `json:"kind"`
}

// RefreshResponse acknowledges a provider refresh.
type RefreshResponse struct {
	Status      string `json:"status"`
	RefreshedAt string `json:"refreshed_at"`
}

// NewRefreshResponse builds a RefreshResponse stamped with the given time.
func NewRefreshResponse(at time.Time) RefreshResponse {
	return RefreshResponse{
		Status:      "ok",
		RefreshedAt: at.Format(time.RFC3339),
	}
}

// SlugChangeResponse echoes a registered slug mapping.
type SlugChangeResponse struct {
	URLSlug      string `json:"url_slug"`
	ProviderSlug string `json:"provider_slug"`
}

// SlugChangesResponse lists all registered slug mappings.
type SlugChangesResponse struct {
	Mappings map[string]string `json:"mappings"`
	Count    int               `json:"count"`
}
