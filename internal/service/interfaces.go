package service

import (
	"context"

	"apartment-search/internal/model"
)

// Completer is the opaque text-understanding call. Prompt construction and
// response parsing are owned by the caller; any shape mismatch in the raw
// text is the caller's soft failure to absorb.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ListingStore is the persistent listing collaborator. A missing listing is
// reported as (nil, nil), not as an error.
type ListingStore interface {
	FindAvailable(ctx context.Context) ([]model.Listing, error)
	FindByID(ctx context.Context, id string) (*model.Listing, error)
	Create(ctx context.Context, listing *model.Listing) error
	Update(ctx context.Context, id string, upd model.ListingUpdate) (*model.Listing, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, params model.SearchParameters) ([]model.Listing, error)
}

// HistoryStore is the append-only search history collaborator.
type HistoryStore interface {
	Append(ctx context.Context, record *model.SearchHistory) error
	FindByID(ctx context.Context, id string) (*model.SearchHistory, error)
	ListRecent(ctx context.Context, userID *string, limit int) ([]model.SearchHistory, error)
	AggregatePopular(ctx context.Context, limit int) ([]model.PopularSearch, error)
	CountLocationSearches(ctx context.Context, location string) (int, error)
	CountPriceRangeSearches(ctx context.Context, price float64) (int, error)
}
