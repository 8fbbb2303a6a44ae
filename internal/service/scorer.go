package service

import (
	"context"
	"math"
	"sort"
	"strings"

	"apartment-search/internal/model"

	"github.com/sirupsen/logrus"
)

// Composite score weights. Fixed constants, sum to 1.0.
const (
	weightPriceMatch        = 0.3
	weightLocationProximity = 0.25
	weightFeatureSimilarity = 0.25
	weightPopularity        = 0.2
)

const (
	// neutralScore is used when a factor has nothing to measure against.
	neutralScore = 0.5

	// fallbackPopularity applies when the history store cannot be reached.
	fallbackPopularity = 0.1

	// popularityCeiling is the search count treated as maximum popularity.
	popularityCeiling = 100.0

	// DefaultRecommendationLimit caps recommendation lists when the caller
	// gives no limit.
	DefaultRecommendationLimit = 10
)

// RecommendationScorer ranks listings against a parameter set with a
// four-factor weighted score.
type RecommendationScorer struct {
	listings ListingStore
	history  HistoryStore
	logger   *logrus.Entry
}

// NewRecommendationScorer creates a new scorer.
func NewRecommendationScorer(listings ListingStore, history HistoryStore, logger *logrus.Logger) *RecommendationScorer {
	return &RecommendationScorer{
		listings: listings,
		history:  history,
		logger:   logger.WithField("component", "scorer"),
	}
}

// Score computes the weighted recommendation score for one listing.
func (s *RecommendationScorer) Score(ctx context.Context, listing model.Listing, params model.SearchParameters) model.RecommendationScore {
	factors := model.ScoreFactors{
		PriceMatch:        s.priceMatchScore(listing, params),
		LocationProximity: s.locationScore(listing, params),
		FeatureSimilarity: s.featureScore(listing, params),
		Popularity:        s.popularityScore(ctx, listing),
	}

	total := factors.PriceMatch*weightPriceMatch +
		factors.LocationProximity*weightLocationProximity +
		factors.FeatureSimilarity*weightFeatureSimilarity +
		factors.Popularity*weightPopularity

	return model.RecommendationScore{
		Listing: listing,
		Score:   total,
		Factors: factors,
	}
}

// priceMatchScore scores how well the listing price fits the requested
// range: 1.0 at the midpoint falling to 0.7 at either bound, with a steep
// penalty outside the range.
func (s *RecommendationScorer) priceMatchScore(listing model.Listing, params model.SearchParameters) float64 {
	price := listing.Price
	minPrice := params.MinPriceValue()
	maxPrice := params.MaxPriceValue()

	if price >= minPrice && price <= maxPrice {
		halfRange := (maxPrice - minPrice) / 2
		if halfRange == 0 {
			return 1.0
		}
		midpoint := (minPrice + maxPrice) / 2
		return 1 - 0.3*(math.Abs(price-midpoint)/halfRange)
	}

	if price < minPrice {
		if minPrice == 0 {
			return 1.0
		}
		deficit := minPrice - price
		return math.Max(0, 1-2*(deficit/minPrice))
	}

	if maxPrice == 0 {
		if price > 0 {
			return 0
		}
		return 1.0
	}
	excess := price - maxPrice
	return math.Max(0, 1-2*(excess/maxPrice))
}

// locationScore is neutral without a location preference, 1.0 on a substring
// hit, otherwise the fraction of query tokens found individually.
func (s *RecommendationScorer) locationScore(listing model.Listing, params model.SearchParameters) float64 {
	location := params.LocationValue()
	if location == "" || location == model.AnyValue {
		return neutralScore
	}

	search := strings.ToLower(location)
	label := strings.ToLower(listing.Location)
	address := strings.ToLower(listing.Address)

	if strings.Contains(label, search) || strings.Contains(address, search) {
		return 1.0
	}

	words := strings.Fields(search)
	if len(words) == 0 {
		return 0
	}
	matches := 0
	for _, word := range words {
		if strings.Contains(label, word) || strings.Contains(address, word) {
			matches++
		}
	}
	return float64(matches) / float64(len(words))
}

// featureScore averages the bedroom, room-type and amenity factors over
// those actually specified; neutral when none are.
func (s *RecommendationScorer) featureScore(listing model.Listing, params model.SearchParameters) float64 {
	score := 0.0
	factors := 0

	if params.Bedrooms != nil {
		factors++
		difference := math.Abs(float64(listing.Bedrooms - *params.Bedrooms))
		if difference == 0 {
			score += 1
		} else {
			score += math.Max(0, 1-difference*0.3)
		}
	}

	if roomType := params.RoomTypeValue(); params.RoomType != nil && roomType != model.AnyValue {
		factors++
		listingType := strings.ToLower(listing.RoomType)
		searchType := strings.ToLower(roomType)
		if strings.Contains(listingType, searchType) || strings.Contains(searchType, listingType) {
			score += 1
		}
	}

	if len(params.Amenities) > 0 {
		factors++
		matching := 0
		for _, requested := range params.Amenities {
			for _, have := range listing.Amenities {
				if strings.Contains(strings.ToLower(have), strings.ToLower(requested)) {
					matching++
					break
				}
			}
		}
		score += float64(matching) / float64(len(params.Amenities))
	}

	if factors == 0 {
		return neutralScore
	}
	return score / float64(factors)
}

// popularityScore derives popularity from how often the listing's location
// and price range appear in past searches. Store failures degrade to a low
// default instead of propagating.
func (s *RecommendationScorer) popularityScore(ctx context.Context, listing model.Listing) float64 {
	locationCount, err := s.history.CountLocationSearches(ctx, listing.Location)
	if err != nil {
		s.logger.WithError(err).Error("popularity lookup failed")
		return fallbackPopularity
	}

	priceCount, err := s.history.CountPriceRangeSearches(ctx, listing.Price)
	if err != nil {
		s.logger.WithError(err).Error("popularity lookup failed")
		return fallbackPopularity
	}

	locationScore := math.Min(float64(locationCount)/popularityCeiling, 1.0)
	priceScore := math.Min(float64(priceCount)/popularityCeiling, 1.0)
	return (locationScore + priceScore) / 2
}

// GenerateRecommendations scores every available listing and returns the top
// limit, sorted by score descending with ties kept in retrieval order.
func (s *RecommendationScorer) GenerateRecommendations(ctx context.Context, params model.SearchParameters, limit int) ([]model.Listing, error) {
	listings, err := s.listings.FindAvailable(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]model.RecommendationScore, 0, len(listings))
	for _, listing := range listings {
		scored = append(scored, s.Score(ctx, listing, params))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	if limit > len(scored) {
		limit = len(scored)
	}

	recommendations := make([]model.Listing, 0, limit)
	for _, sc := range scored[:limit] {
		recommendations = append(recommendations, sc.Listing)
	}

	s.logger.WithField("count", len(recommendations)).Debug("generated recommendations")
	return recommendations, nil
}

// Explain converts the sub-scores for one listing into a human-readable
// summary of why it was recommended.
func (s *RecommendationScorer) Explain(ctx context.Context, listing model.Listing, params model.SearchParameters) string {
	sc := s.Score(ctx, listing, params)

	reasons := []string{}
	if sc.Factors.PriceMatch > 0.8 {
		reasons = append(reasons, "Excellent price match for your budget")
	} else if sc.Factors.PriceMatch > 0.6 {
		reasons = append(reasons, "Good price match for your budget")
	}
	if sc.Factors.LocationProximity > 0.8 {
		reasons = append(reasons, "Located in your preferred area")
	}
	if sc.Factors.FeatureSimilarity > 0.8 {
		reasons = append(reasons, "Matches your room and amenity preferences")
	}
	if sc.Factors.Popularity > 0.6 {
		reasons = append(reasons, "Popular choice among similar searches")
	}

	if len(reasons) == 0 {
		return "This apartment matches some of your criteria"
	}
	return strings.Join(reasons, ", ")
}
