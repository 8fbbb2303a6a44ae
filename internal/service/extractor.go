package service

import (
	"context"
	"fmt"
	"strings"

	"apartment-search/internal/model"
	"apartment-search/internal/utils"

	"github.com/sirupsen/logrus"
)

const extractionPromptTemplate = `You are an apartment search assistant. Extract structured search parameters from the user's natural language query.

Extract the following fields if present:
- min_price: minimum monthly rent (number)
- max_price: maximum monthly rent (number)
- bedrooms: number of bedrooms (integer, 0-10)
- room_type: type of room, e.g. "studio", "1bhk", "2bhk" (string)
- location: desired neighborhood or city (string)
- max_distance: maximum distance from the location in kilometers (number, 0-100)
- amenities: array of desired amenities (strings)

Important rules:
- Respond ONLY with valid JSON
- If a field is not mentioned or cannot be inferred, omit it
- "under $3000" means max_price 3000; "$1500-2500" means min_price 1500 and max_price 2500
- "2K" means 2000

Examples:
Query: "2 bedroom apartment in Manhattan under $3000"
Response: {"bedrooms": 2, "location": "Manhattan", "max_price": 3000}

Query: "studio with gym and pool near downtown"
Response: {"room_type": "studio", "location": "downtown", "amenities": ["gym", "pool"]}

Query: %s`

// amenitySynonyms maps informal amenity terms to canonical tags. Unmapped
// terms pass through lower-cased unchanged.
var amenitySynonyms = map[string]string{
	"gym":     "fitness_center",
	"pool":    "swimming_pool",
	"parking": "parking_space",
	"wifi":    "internet",
	"ac":      "air_conditioning",
	"heating": "central_heating",
}

// GeocodeFunc resolves a normalized location label to coordinates. Lookups
// are best-effort; a failure never reaches the caller of NormalizeLocation.
type GeocodeFunc func(ctx context.Context, location string) (lat, lon float64, err error)

// LocationData is the result of location enrichment.
type LocationData struct {
	Normalized string   `json:"normalized_location"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

// IntentExtractor turns free text into search parameters via the external
// text-understanding service. Every operation is fail-soft: errors are
// absorbed into schema defaults or identity and logged, never propagated.
type IntentExtractor struct {
	client   Completer
	geocoder GeocodeFunc
	logger   *logrus.Entry
}

// NewIntentExtractor creates a new intent extractor. client may be nil when
// extraction is disabled; geocoder may be nil when coordinate lookup is
// unavailable.
func NewIntentExtractor(client Completer, geocoder GeocodeFunc, logger *logrus.Logger) *IntentExtractor {
	return &IntentExtractor{
		client:   client,
		geocoder: geocoder,
		logger:   logger.WithField("component", "extractor"),
	}
}

// Extract derives search parameters from a free-text query. On any failure
// it returns the full schema defaults; successful partial extractions are
// normalized before being returned.
func (e *IntentExtractor) Extract(ctx context.Context, query string) model.SearchParameters {
	query = strings.TrimSpace(query)
	if query == "" {
		return model.DefaultSearchParameters()
	}

	if e.client == nil {
		e.logger.Warn("extraction service not configured, falling back to schema defaults")
		return model.DefaultSearchParameters()
	}

	raw, err := e.client.Complete(ctx, fmt.Sprintf(extractionPromptTemplate, query))
	if err != nil {
		e.logger.WithError(err).Warn("parameter extraction failed, falling back to schema defaults")
		return model.DefaultSearchParameters()
	}

	var extracted model.SearchParameters
	if err := utils.ParseAIJSON(raw, &extracted); err != nil {
		e.logger.WithError(err).Warn("unparseable extraction response, falling back to schema defaults")
		return model.DefaultSearchParameters()
	}

	return extracted.Normalized()
}

// NormalizeLocation case-folds and trims a location label and attaches
// coordinates when the lookup succeeds.
func (e *IntentExtractor) NormalizeLocation(ctx context.Context, location string) LocationData {
	data := LocationData{
		Normalized: strings.ToLower(strings.TrimSpace(location)),
	}

	if e.geocoder == nil {
		return data
	}

	lat, lon, err := e.geocoder(ctx, data.Normalized)
	if err != nil {
		e.logger.WithError(err).WithField("location", data.Normalized).
			Warn("coordinate lookup failed")
		return data
	}
	data.Latitude = &lat
	data.Longitude = &lon
	return data
}

// ValidatePriceRange fills missing bounds with schema defaults. A misordered
// range (min > max) is passed through unchanged; the filter plan will simply
// match nothing.
func (e *IntentExtractor) ValidatePriceRange(minPrice, maxPrice *float64) (float64, float64) {
	min := model.DefaultMinPrice
	if minPrice != nil {
		min = *minPrice
	}
	max := model.DefaultMaxPrice
	if maxPrice != nil {
		max = *maxPrice
	}

	if min > max {
		e.logger.WithFields(logrus.Fields{
			"min_price": min,
			"max_price": max,
		}).Warn("inverted price range passed through unchanged")
	}

	return min, max
}

// NormalizeAmenities maps informal amenity terms to canonical tags. Order is
// preserved and duplicates are kept.
func (e *IntentExtractor) NormalizeAmenities(amenities []string) []string {
	normalized := make([]string, 0, len(amenities))
	for _, amenity := range amenities {
		lowered := strings.ToLower(strings.TrimSpace(amenity))
		if canonical, ok := amenitySynonyms[lowered]; ok {
			normalized = append(normalized, canonical)
			continue
		}
		normalized = append(normalized, lowered)
	}
	return normalized
}
