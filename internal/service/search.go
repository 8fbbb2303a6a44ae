package service

import (
	"context"
	"strings"

	"apartment-search/internal/model"

	"github.com/sirupsen/logrus"
)

// searchState tracks the strictly sequential search workflow. There is no
// branching back; FAILED is terminal and reachable from any state.
type searchState string

const (
	stateReceived  searchState = "received"
	stateExtracted searchState = "extracted"
	stateEnriched  searchState = "enriched"
	stateFiltered  searchState = "filtered"
	statePersisted searchState = "persisted"
	stateComplete  searchState = "complete"
	stateFailed    searchState = "failed"
)

const (
	defaultHistoryLimit = 20
	defaultPopularLimit = 10
)

// SearchService is the top-level search workflow: extract, enrich, filter,
// persist history, and on demand re-score for recommendations.
type SearchService struct {
	history    HistoryStore
	extractor  *IntentExtractor
	apartments *ApartmentService
	scorer     *RecommendationScorer
	logger     *logrus.Entry
}

// NewSearchService creates a new search service.
func NewSearchService(
	history HistoryStore,
	extractor *IntentExtractor,
	apartments *ApartmentService,
	scorer *RecommendationScorer,
	logger *logrus.Logger,
) *SearchService {
	return &SearchService{
		history:    history,
		extractor:  extractor,
		apartments: apartments,
		scorer:     scorer,
		logger:     logger.WithField("component", "search"),
	}
}

// Search runs one search request through the workflow. Extraction problems
// degrade to a default search and never fail the request; an unreachable
// store fails it with a single generic error. A history record written
// before a later failure is not rolled back.
func (s *SearchService) Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResult, error) {
	state := stateReceived

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	// Extraction is fail-soft internally; this step cannot fail the flow.
	params := s.extractor.Extract(ctx, query)
	state = stateExtracted

	params = s.enrich(ctx, params)
	state = stateEnriched

	listings, err := s.apartments.Search(ctx, params)
	if err != nil {
		return nil, s.fail(state, err)
	}
	state = stateFiltered

	record := &model.SearchHistory{
		UserID:              req.UserID,
		OriginalQuery:       query,
		ExtractedParameters: params,
		ResultsCount:        len(listings),
	}
	if err := s.history.Append(ctx, record); err != nil {
		return nil, s.fail(state, err)
	}
	state = statePersisted

	state = stateComplete
	s.logger.WithFields(logrus.Fields{
		"state":     string(state),
		"search_id": record.ID,
		"results":   len(listings),
	}).Info("search completed")

	return &model.SearchResult{
		Apartments:   listings,
		Parameters:   params,
		TotalResults: len(listings),
		SearchID:     record.ID,
	}, nil
}

// enrich applies the post-extraction normalization steps. Each sub-step is
// fail-soft inside the extractor. Coordinates from location enrichment are
// computed but not applied to filtering; the distance post-filter stays a
// separate, explicitly invoked operation.
func (s *SearchService) enrich(ctx context.Context, params model.SearchParameters) model.SearchParameters {
	if location := params.LocationValue(); location != model.AnyValue {
		data := s.extractor.NormalizeLocation(ctx, location)
		params.Location = model.StringPtr(data.Normalized)
	}

	if params.MinPrice != nil || params.MaxPrice != nil {
		minPrice, maxPrice := s.extractor.ValidatePriceRange(params.MinPrice, params.MaxPrice)
		params.MinPrice = model.Float64Ptr(minPrice)
		params.MaxPrice = model.Float64Ptr(maxPrice)
	}

	if len(params.Amenities) > 0 {
		params.Amenities = s.extractor.NormalizeAmenities(params.Amenities)
	}

	return params
}

func (s *SearchService) fail(state searchState, err error) error {
	s.logger.WithFields(logrus.Fields{
		"state": string(state),
		"next":  string(stateFailed),
	}).WithError(err).Error("search failed")
	return ErrSearchFailed
}

// RecommendationsFor re-scores the stored parameters of a past search.
// An unknown identifier is a distinct, recoverable NotFound condition.
func (s *SearchService) RecommendationsFor(ctx context.Context, searchID string) ([]model.Listing, error) {
	record, err := s.history.FindByID(ctx, searchID)
	if err != nil {
		s.logger.WithError(err).WithField("search_id", searchID).Error("history lookup failed")
		return nil, ErrSearchFailed
	}
	if record == nil {
		return nil, ErrSearchNotFound
	}

	return s.scorer.GenerateRecommendations(ctx, record.ExtractedParameters, DefaultRecommendationLimit)
}

// History returns the most recent searches, optionally scoped to a user.
func (s *SearchService) History(ctx context.Context, userID *string) ([]model.SearchHistory, error) {
	return s.history.ListRecent(ctx, userID, defaultHistoryLimit)
}

// PopularSearches returns the most frequent query texts.
func (s *SearchService) PopularSearches(ctx context.Context) ([]model.PopularSearch, error) {
	return s.history.AggregatePopular(ctx, defaultPopularLimit)
}

// Explain describes why a listing scores well for the given parameters.
func (s *SearchService) Explain(ctx context.Context, listing model.Listing, params model.SearchParameters) string {
	return s.scorer.Explain(ctx, listing, params)
}
