package models

// CollectRequest is the request payload for starting a crawl over the API.
type CollectRequest struct {
	Source  string                 `json:"source" validate:"required,oneof=jobup datacareer"`
	Options *CollectRequestOptions `json:"options,omitempty"`
}

// CollectRequestOptions mirrors CollectOptions with validation tags for the
// API surface. Zero values fall back to the configured defaults.
type CollectRequestOptions struct {
	Terms           []string `json:"terms,omitempty" validate:"omitempty,dive,min=1"`
	MaxPagesPerTerm int      `json:"max_pages_per_term,omitempty" validate:"omitempty,min=1,max=100"`
	TotalLimit      int      `json:"total_limit,omitempty" validate:"omitempty,min=1"`
	FetchDetails    *bool    `json:"fetch_details,omitempty"`
	MaxNoNewPages   int      `json:"max_no_new_pages,omitempty" validate:"omitempty,min=1,max=20"`
}
