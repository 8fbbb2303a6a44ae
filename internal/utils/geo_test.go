package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"apartment-search/internal/model"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		delta                  float64
	}{
		{
			name: "Same point",
			lat1: 40.7128, lon1: -74.0060,
			lat2: 40.7128, lon2: -74.0060,
			want: 0, delta: 0.001,
		},
		{
			name: "New York to Los Angeles",
			lat1: 40.7128, lon1: -74.0060,
			lat2: 34.0522, lon2: -118.2437,
			want: 3936, delta: 20,
		},
		{
			name: "Manhattan to Brooklyn",
			lat1: 40.7831, lon1: -73.9712,
			lat2: 40.6782, lon2: -73.9442,
			want: 11.9, delta: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.want, got, tt.delta)
		})
	}
}

func TestFilterByDistance(t *testing.T) {
	listings := []model.Listing{
		{ID: "near", Latitude: 40.7128, Longitude: -74.0060},
		{ID: "close", Latitude: 40.7831, Longitude: -73.9712},
		{ID: "far", Latitude: 34.0522, Longitude: -118.2437},
	}

	filtered := FilterByDistance(listings, 40.7128, -74.0060, 50)

	assert.Len(t, filtered, 2)
	assert.Equal(t, "near", filtered[0].ID)
	assert.Equal(t, "close", filtered[1].ID)
}

func TestFilterByDistanceEmpty(t *testing.T) {
	filtered := FilterByDistance(nil, 40.7128, -74.0060, 50)
	assert.Empty(t, filtered)
	assert.NotNil(t, filtered)
}
