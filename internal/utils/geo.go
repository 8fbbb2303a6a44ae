package utils

import (
	"math"

	"apartment-search/internal/model"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// FilterByDistance removes listings farther than maxKm from the target point.
// Pure post-filter, independent of the relational query.
func FilterByDistance(listings []model.Listing, targetLat, targetLon, maxKm float64) []model.Listing {
	filtered := make([]model.Listing, 0, len(listings))
	for _, listing := range listings {
		if HaversineKm(targetLat, targetLon, listing.Latitude, listing.Longitude) <= maxKm {
			filtered = append(filtered, listing)
		}
	}
	return filtered
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
