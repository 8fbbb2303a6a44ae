package model

// ScoreFactors holds the four independent sub-scores, each in [0,1].
type ScoreFactors struct {
	PriceMatch        float64 `json:"price_match"`
	LocationProximity float64 `json:"location_proximity"`
	FeatureSimilarity float64 `json:"feature_similarity"`
	Popularity        float64 `json:"popularity"`
}

// RecommendationScore pairs a listing with its composite score. Transient,
// never persisted.
type RecommendationScore struct {
	Listing Listing      `json:"listing"`
	Score   float64      `json:"score"`
	Factors ScoreFactors `json:"factors"`
}
