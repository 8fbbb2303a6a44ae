package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Listing represents a rentable apartment unit.
type Listing struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Bedrooms    int       `json:"bedrooms" db:"bedrooms"`
	Bathrooms   int       `json:"bathrooms" db:"bathrooms"`
	RoomType    string    `json:"room_type" db:"room_type"`
	Location    string    `json:"location" db:"location"`
	Address     string    `json:"address" db:"address"`
	Latitude    float64   `json:"latitude" db:"latitude"`
	Longitude   float64   `json:"longitude" db:"longitude"`
	SquareFeet  int       `json:"square_feet" db:"square_feet"`
	Amenities   JSONArray `json:"amenities" db:"amenities"`
	Images      JSONArray `json:"images,omitempty" db:"images"`
	Available   bool      `json:"available" db:"available"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ListingUpdate carries a partial update; nil fields are left untouched.
type ListingUpdate struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	Bedrooms    *int     `json:"bedrooms,omitempty" binding:"omitempty,min=0"`
	Bathrooms   *int     `json:"bathrooms,omitempty" binding:"omitempty,min=0"`
	RoomType    *string  `json:"room_type,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Address     *string  `json:"address,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	SquareFeet  *int     `json:"square_feet,omitempty" binding:"omitempty,min=0"`
	Amenities   []string `json:"amenities,omitempty"`
	Available   *bool    `json:"available,omitempty"`
}

// JSONArray maps a JSON column onto a string slice.
type JSONArray []string

// Value implements driver.Valuer.
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner.
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
