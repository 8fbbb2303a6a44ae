package model

import "time"

// SearchHistory is an append-only record of one executed search. Records are
// never mutated or deleted; they feed the popularity signal and let a search
// be re-scored later by its identifier.
type SearchHistory struct {
	ID                  string           `json:"id" db:"id"`
	UserID              *string          `json:"user_id,omitempty" db:"user_id"`
	OriginalQuery       string           `json:"original_query" db:"original_query"`
	ExtractedParameters SearchParameters `json:"extracted_parameters" db:"extracted_parameters"`
	ResultsCount        int              `json:"results_count" db:"results_count"`
	CreatedAt           time.Time        `json:"created_at" db:"created_at"`
}

// PopularSearch is one row of the popular-query aggregation.
type PopularSearch struct {
	Query string `json:"query" db:"query"`
	Count int    `json:"count" db:"count"`
}
