package model

// SearchRequest is a free-text search submission.
type SearchRequest struct {
	Query  string  `json:"query" binding:"required"`
	UserID *string `json:"user_id,omitempty"`
}

// SearchResult is the outcome of one completed search.
type SearchResult struct {
	Apartments   []Listing        `json:"apartments"`
	Parameters   SearchParameters `json:"parameters"`
	TotalResults int              `json:"total_results"`
	SearchID     string           `json:"search_id"`
}
