package service

import (
	"context"

	"apartment-search/internal/model"
)

// fakeCompleter returns a canned response or error.
type fakeCompleter struct {
	resp       string
	err        error
	lastPrompt string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.resp, nil
}

// fakeListingStore serves listings from memory.
type fakeListingStore struct {
	listings   []model.Listing
	searchErr  error
	findErr    error
	lastParams model.SearchParameters
}

func (f *fakeListingStore) FindAvailable(_ context.Context) ([]model.Listing, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.listings, nil
}

func (f *fakeListingStore) FindByID(_ context.Context, id string) (*model.Listing, error) {
	for i := range f.listings {
		if f.listings[i].ID == id {
			return &f.listings[i], nil
		}
	}
	return nil, nil
}

func (f *fakeListingStore) Create(_ context.Context, listing *model.Listing) error {
	f.listings = append(f.listings, *listing)
	return nil
}

func (f *fakeListingStore) Update(_ context.Context, id string, _ model.ListingUpdate) (*model.Listing, error) {
	return f.FindByID(context.Background(), id)
}

func (f *fakeListingStore) SoftDelete(_ context.Context, id string) (bool, error) {
	for _, l := range f.listings {
		if l.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeListingStore) Search(_ context.Context, params model.SearchParameters) ([]model.Listing, error) {
	f.lastParams = params
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.listings, nil
}

// fakeHistoryStore records appends and serves canned counts.
type fakeHistoryStore struct {
	records       []model.SearchHistory
	appendErr     error
	findErr       error
	locationCount int
	priceCount    int
	countErr      error
}

func (f *fakeHistoryStore) Append(_ context.Context, record *model.SearchHistory) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	if record.ID == "" {
		record.ID = "search-1"
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeHistoryStore) FindByID(_ context.Context, id string) (*model.SearchHistory, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, nil
}

func (f *fakeHistoryStore) ListRecent(_ context.Context, userID *string, limit int) ([]model.SearchHistory, error) {
	out := []model.SearchHistory{}
	for _, r := range f.records {
		if userID != nil && (r.UserID == nil || *r.UserID != *userID) {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeHistoryStore) AggregatePopular(_ context.Context, limit int) ([]model.PopularSearch, error) {
	counts := map[string]int{}
	order := []string{}
	for _, r := range f.records {
		if counts[r.OriginalQuery] == 0 {
			order = append(order, r.OriginalQuery)
		}
		counts[r.OriginalQuery]++
	}
	out := []model.PopularSearch{}
	for _, q := range order {
		out = append(out, model.PopularSearch{Query: q, Count: counts[q]})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeHistoryStore) CountLocationSearches(_ context.Context, _ string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.locationCount, nil
}

func (f *fakeHistoryStore) CountPriceRangeSearches(_ context.Context, _ float64) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.priceCount, nil
}
