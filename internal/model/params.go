package model

import (
	"database/sql/driver"
	"encoding/json"
)

// AnyValue is the "no preference" sentinel for string parameters.
const AnyValue = "any"

// Schema defaults and declared ranges for search parameters.
const (
	DefaultMinPrice    = 0.0
	DefaultMaxPrice    = 1000000.0
	DefaultBedrooms    = 1
	DefaultRoomType    = AnyValue
	DefaultLocation    = AnyValue
	DefaultMaxDistance = 50.0

	MinBedrooms   = 0
	MaxBedrooms   = 10
	MinDistanceKm = 0.0
	MaxDistanceKm = 100.0
)

// SearchParameters is the canonical search intent schema. A nil field means
// the value was not extracted; Normalized fills every gap from the schema
// defaults so downstream components can rely on all fields being present.
type SearchParameters struct {
	MinPrice    *float64 `json:"min_price,omitempty" form:"min_price" binding:"omitempty,min=0"`
	MaxPrice    *float64 `json:"max_price,omitempty" form:"max_price" binding:"omitempty,min=0"`
	Bedrooms    *int     `json:"bedrooms,omitempty" form:"bedrooms" binding:"omitempty,min=0,max=10"`
	RoomType    *string  `json:"room_type,omitempty" form:"room_type"`
	Location    *string  `json:"location,omitempty" form:"location"`
	MaxDistance *float64 `json:"max_distance,omitempty" form:"max_distance" binding:"omitempty,min=0,max=100"`
	Amenities   []string `json:"amenities,omitempty" form:"amenities"`
}

// DefaultSearchParameters returns the schema defaults with every field set.
func DefaultSearchParameters() SearchParameters {
	return SearchParameters{
		MinPrice:    Float64Ptr(DefaultMinPrice),
		MaxPrice:    Float64Ptr(DefaultMaxPrice),
		Bedrooms:    IntPtr(DefaultBedrooms),
		RoomType:    StringPtr(DefaultRoomType),
		Location:    StringPtr(DefaultLocation),
		MaxDistance: Float64Ptr(DefaultMaxDistance),
		Amenities:   []string{},
	}
}

// Normalized fills absent fields from the schema defaults and clamps numeric
// fields to their declared ranges. Present values are never overwritten. The
// operation is total and pure.
func (p SearchParameters) Normalized() SearchParameters {
	out := SearchParameters{
		MinPrice:    Float64Ptr(maxFloat(valueOrFloat(p.MinPrice, DefaultMinPrice), 0)),
		MaxPrice:    Float64Ptr(maxFloat(valueOrFloat(p.MaxPrice, DefaultMaxPrice), 0)),
		Bedrooms:    IntPtr(clampInt(valueOrInt(p.Bedrooms, DefaultBedrooms), MinBedrooms, MaxBedrooms)),
		RoomType:    StringPtr(valueOrString(p.RoomType, DefaultRoomType)),
		Location:    StringPtr(valueOrString(p.Location, DefaultLocation)),
		MaxDistance: Float64Ptr(clampFloat(valueOrFloat(p.MaxDistance, DefaultMaxDistance), MinDistanceKm, MaxDistanceKm)),
		Amenities:   p.Amenities,
	}
	if out.Amenities == nil {
		out.Amenities = []string{}
	}
	return out
}

// MinPriceValue returns the minimum price, falling back to the schema default.
func (p SearchParameters) MinPriceValue() float64 {
	return valueOrFloat(p.MinPrice, DefaultMinPrice)
}

// MaxPriceValue returns the maximum price, falling back to the schema default.
func (p SearchParameters) MaxPriceValue() float64 {
	return valueOrFloat(p.MaxPrice, DefaultMaxPrice)
}

// BedroomsValue returns the bedroom count, falling back to the schema default.
func (p SearchParameters) BedroomsValue() int {
	return valueOrInt(p.Bedrooms, DefaultBedrooms)
}

// RoomTypeValue returns the room type, falling back to the schema default.
func (p SearchParameters) RoomTypeValue() string {
	return valueOrString(p.RoomType, DefaultRoomType)
}

// LocationValue returns the location, falling back to the schema default.
func (p SearchParameters) LocationValue() string {
	return valueOrString(p.Location, DefaultLocation)
}

// MaxDistanceValue returns the distance cap, falling back to the schema default.
func (p SearchParameters) MaxDistanceValue() float64 {
	return valueOrFloat(p.MaxDistance, DefaultMaxDistance)
}

// Value implements driver.Valuer so parameters persist as a JSONB column.
func (p SearchParameters) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner.
func (p *SearchParameters) Scan(value interface{}) error {
	if value == nil {
		*p = SearchParameters{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), p)
	}
	return json.Unmarshal(bytes, p)
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 { return &v }

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// StringPtr returns a pointer to v.
func StringPtr(v string) *string { return &v }

func valueOrFloat(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func valueOrInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func valueOrString(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxFloat(v, lo float64) float64 {
	if v < lo {
		return lo
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
