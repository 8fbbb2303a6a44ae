package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apartment-search/internal/model"
)

func newTestSearchService(completer Completer, listings *fakeListingStore, history *fakeHistoryStore) *SearchService {
	logger := testLogger()
	extractor := NewIntentExtractor(completer, nil, logger)
	apartments := NewApartmentService(listings, logger)
	scorer := NewRecommendationScorer(listings, history, logger)
	return NewSearchService(history, extractor, apartments, scorer, logger)
}

func TestSearchWorkflow(t *testing.T) {
	completer := &fakeCompleter{
		resp: `{"bedrooms": 2, "max_price": 3000, "location": "Manhattan", "amenities": ["gym", "WiFi"]}`,
	}
	listings := &fakeListingStore{listings: []model.Listing{
		{ID: "a1", Price: 2400, Bedrooms: 2, Location: "manhattan"},
		{ID: "a2", Price: 2800, Bedrooms: 2, Location: "manhattan"},
	}}
	history := &fakeHistoryStore{}
	svc := newTestSearchService(completer, listings, history)

	userID := "user-42"
	result, err := svc.Search(context.Background(), &model.SearchRequest{
		Query:  "2 bedroom with gym and wifi in Manhattan under $3000",
		UserID: &userID,
	})
	require.NoError(t, err)

	assert.Len(t, result.Apartments, 2)
	assert.Equal(t, 2, result.TotalResults)
	assert.Equal(t, "search-1", result.SearchID)

	// Enriched parameters reach the filter plan.
	params := listings.lastParams
	assert.Equal(t, 0.0, *params.MinPrice)
	assert.Equal(t, 3000.0, *params.MaxPrice)
	assert.Equal(t, 2, *params.Bedrooms)
	assert.Equal(t, "any", *params.RoomType)
	assert.Equal(t, "manhattan", *params.Location)
	assert.Equal(t, 50.0, *params.MaxDistance)
	assert.Equal(t, []string{"fitness_center", "internet"}, params.Amenities)

	// History keeps the verbatim query text and the enriched parameters.
	require.Len(t, history.records, 1)
	record := history.records[0]
	assert.Equal(t, "2 bedroom with gym and wifi in Manhattan under $3000", record.OriginalQuery)
	assert.Equal(t, &userID, record.UserID)
	assert.Equal(t, params, record.ExtractedParameters)
	assert.Equal(t, 2, record.ResultsCount)
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := newTestSearchService(&fakeCompleter{}, &fakeListingStore{}, &fakeHistoryStore{})

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := svc.Search(context.Background(), &model.SearchRequest{Query: query})
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}
}

func TestSearchSurvivesExtractionFailure(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("upstream unavailable")}
	listings := &fakeListingStore{listings: []model.Listing{{ID: "a1", Price: 1800}}}
	history := &fakeHistoryStore{}
	svc := newTestSearchService(completer, listings, history)

	result, err := svc.Search(context.Background(), &model.SearchRequest{Query: "anything at all"})
	require.NoError(t, err)

	// The search proceeds on schema defaults and is still recorded.
	assert.Equal(t, 1, result.TotalResults)
	assert.Equal(t, model.DefaultSearchParameters(), listings.lastParams)
	assert.Len(t, history.records, 1)
}

func TestSearchListingStoreFailure(t *testing.T) {
	listings := &fakeListingStore{searchErr: errors.New("connection refused")}
	history := &fakeHistoryStore{}
	svc := newTestSearchService(&fakeCompleter{resp: `{}`}, listings, history)

	_, err := svc.Search(context.Background(), &model.SearchRequest{Query: "studio"})
	assert.ErrorIs(t, err, ErrSearchFailed)
	assert.Empty(t, history.records)
}

func TestSearchHistoryStoreFailure(t *testing.T) {
	listings := &fakeListingStore{listings: []model.Listing{{ID: "a1"}}}
	history := &fakeHistoryStore{appendErr: errors.New("connection refused")}
	svc := newTestSearchService(&fakeCompleter{resp: `{}`}, listings, history)

	_, err := svc.Search(context.Background(), &model.SearchRequest{Query: "studio"})
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestSearchInvertedPriceRangePassesThrough(t *testing.T) {
	completer := &fakeCompleter{resp: `{"min_price": 5000, "max_price": 2000}`}
	listings := &fakeListingStore{}
	svc := newTestSearchService(completer, listings, &fakeHistoryStore{})

	result, err := svc.Search(context.Background(), &model.SearchRequest{Query: "between 5000 and 2000"})
	require.NoError(t, err)

	// The misordered range is kept as extracted; the filter simply matches
	// nothing.
	assert.Equal(t, 5000.0, *listings.lastParams.MinPrice)
	assert.Equal(t, 2000.0, *listings.lastParams.MaxPrice)
	assert.Equal(t, 0, result.TotalResults)
}

func TestRecommendationsFor(t *testing.T) {
	listings := &fakeListingStore{listings: []model.Listing{
		{ID: "match", Price: 2000, Location: "manhattan"},
		{ID: "other", Price: 9500, Location: "queens"},
	}}
	history := &fakeHistoryStore{records: []model.SearchHistory{{
		ID:            "search-1",
		OriginalQuery: "2 bedroom in manhattan",
		ExtractedParameters: model.SearchParameters{
			MinPrice: model.Float64Ptr(1000),
			MaxPrice: model.Float64Ptr(3000),
			Location: model.StringPtr("manhattan"),
		},
	}}}
	svc := newTestSearchService(&fakeCompleter{}, listings, history)

	got, err := svc.RecommendationsFor(context.Background(), "search-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "match", got[0].ID)
}

func TestRecommendationsForUnknownSearch(t *testing.T) {
	svc := newTestSearchService(&fakeCompleter{}, &fakeListingStore{}, &fakeHistoryStore{})

	_, err := svc.RecommendationsFor(context.Background(), "no-such-search")
	assert.ErrorIs(t, err, ErrSearchNotFound)
}

func TestRecommendationsForStoreFailure(t *testing.T) {
	history := &fakeHistoryStore{findErr: errors.New("connection refused")}
	svc := newTestSearchService(&fakeCompleter{}, &fakeListingStore{}, history)

	_, err := svc.RecommendationsFor(context.Background(), "search-1")
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestHistoryScopedToUser(t *testing.T) {
	alice := "alice"
	bob := "bob"
	history := &fakeHistoryStore{records: []model.SearchHistory{
		{ID: "s1", UserID: &alice, OriginalQuery: "studio"},
		{ID: "s2", UserID: &bob, OriginalQuery: "loft"},
		{ID: "s3", UserID: &alice, OriginalQuery: "2 bedroom"},
	}}
	svc := newTestSearchService(&fakeCompleter{}, &fakeListingStore{}, history)

	got, err := svc.History(context.Background(), &alice)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s1", got[0].ID)
	assert.Equal(t, "s3", got[1].ID)

	all, err := svc.History(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPopularSearches(t *testing.T) {
	history := &fakeHistoryStore{records: []model.SearchHistory{
		{ID: "s1", OriginalQuery: "studio in manhattan"},
		{ID: "s2", OriginalQuery: "studio in manhattan"},
		{ID: "s3", OriginalQuery: "loft in brooklyn"},
	}}
	svc := newTestSearchService(&fakeCompleter{}, &fakeListingStore{}, history)

	got, err := svc.PopularSearches(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.PopularSearch{Query: "studio in manhattan", Count: 2}, got[0])
}
