package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"apartment-search/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// searchResultCap is the hard limit on filtered search results. Callers
// needing more must refine their parameters.
const searchResultCap = 50

const listingColumns = `
	id, title, description, price, bedrooms, bathrooms, room_type,
	location, address, latitude, longitude, square_feet, amenities,
	images, available, created_at, updated_at`

// ListingRepository handles apartment listing persistence.
type ListingRepository struct {
	db *sqlx.DB
}

// NewListingRepository creates a new listing repository.
func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// FindAvailable returns all available listings, newest first.
func (r *ListingRepository) FindAvailable(ctx context.Context) ([]model.Listing, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM apartments
		WHERE available = true
		ORDER BY created_at DESC
	`, listingColumns)

	listings := []model.Listing{}
	if err := r.db.SelectContext(ctx, &listings, query); err != nil {
		return nil, fmt.Errorf("failed to fetch available listings: %w", err)
	}
	return listings, nil
}

// FindByID returns an available listing by id, or nil when absent.
func (r *ListingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM apartments
		WHERE id = $1 AND available = true
	`, listingColumns)

	var listing model.Listing
	if err := r.db.GetContext(ctx, &listing, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &listing, nil
}

// Create inserts a new listing. The identifier and timestamps are generated
// here; new listings are always available.
func (r *ListingRepository) Create(ctx context.Context, listing *model.Listing) error {
	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}
	if listing.Amenities == nil {
		listing.Amenities = model.JSONArray{}
	}
	now := time.Now().UTC()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	listing.Available = true

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO apartments
			(id, title, description, price, bedrooms, bathrooms, room_type,
			 location, address, latitude, longitude, square_feet, amenities,
			 images, available, created_at, updated_at)
		VALUES
			(:id, :title, :description, :price, :bedrooms, :bathrooms, :room_type,
			 :location, :address, :latitude, :longitude, :square_feet, :amenities,
			 :images, :available, :created_at, :updated_at)
	`, listing)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// Update applies a partial update and returns the updated listing, or nil
// when the listing does not exist.
func (r *ListingRepository) Update(ctx context.Context, id string, upd model.ListingUpdate) (*model.Listing, error) {
	setClauses := []string{}
	args := []interface{}{}
	argIndex := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if upd.Title != nil {
		addSet("title", *upd.Title)
	}
	if upd.Description != nil {
		addSet("description", *upd.Description)
	}
	if upd.Price != nil {
		addSet("price", *upd.Price)
	}
	if upd.Bedrooms != nil {
		addSet("bedrooms", *upd.Bedrooms)
	}
	if upd.Bathrooms != nil {
		addSet("bathrooms", *upd.Bathrooms)
	}
	if upd.RoomType != nil {
		addSet("room_type", *upd.RoomType)
	}
	if upd.Location != nil {
		addSet("location", *upd.Location)
	}
	if upd.Address != nil {
		addSet("address", *upd.Address)
	}
	if upd.Latitude != nil {
		addSet("latitude", *upd.Latitude)
	}
	if upd.Longitude != nil {
		addSet("longitude", *upd.Longitude)
	}
	if upd.SquareFeet != nil {
		addSet("square_feet", *upd.SquareFeet)
	}
	if upd.Amenities != nil {
		addSet("amenities", model.JSONArray(upd.Amenities))
	}
	if upd.Available != nil {
		addSet("available", *upd.Available)
	}

	if len(setClauses) > 0 {
		setClauses = append(setClauses, "updated_at = NOW()")
		query := fmt.Sprintf("UPDATE apartments SET %s WHERE id = $%d",
			strings.Join(setClauses, ", "), argIndex)
		args = append(args, id)

		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("failed to update listing: %w", err)
		}
	}

	return r.FindByID(ctx, id)
}

// SoftDelete flips the availability flag. Idempotent; reports whether the
// listing exists.
func (r *ListingRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE apartments SET available = false, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete listing: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete listing: %w", err)
	}
	return affected > 0, nil
}

// Search executes the filter plan for the given parameters. All clauses are
// ANDed; a clause is skipped entirely when its parameter equals the "no
// preference" sentinel. Results are ordered by price ascending with creation
// time descending as tie-break, capped at searchResultCap.
func (r *ListingRepository) Search(ctx context.Context, params model.SearchParameters) ([]model.Listing, error) {
	whereClauses := []string{"available = true"}
	args := []interface{}{}
	argIndex := 1

	if params.MinPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *params.MinPrice)
		argIndex++
	}
	if params.MaxPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *params.MaxPrice)
		argIndex++
	}
	if params.Bedrooms != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("bedrooms = $%d", argIndex))
		args = append(args, *params.Bedrooms)
		argIndex++
	}
	if roomType := params.RoomTypeValue(); roomType != "" && roomType != model.AnyValue {
		whereClauses = append(whereClauses, fmt.Sprintf("room_type ILIKE $%d", argIndex))
		args = append(args, "%"+roomType+"%")
		argIndex++
	}
	if location := params.LocationValue(); location != "" && location != model.AnyValue {
		whereClauses = append(whereClauses,
			fmt.Sprintf("(location ILIKE $%d OR address ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+location+"%")
		argIndex++
	}
	// A listing matches when it has at least one requested amenity (OR, not AND)
	if len(params.Amenities) > 0 {
		amenityClauses := make([]string, 0, len(params.Amenities))
		for _, amenity := range params.Amenities {
			amenityClauses = append(amenityClauses, fmt.Sprintf("amenities::text ILIKE $%d", argIndex))
			args = append(args, "%"+amenity+"%")
			argIndex++
		}
		whereClauses = append(whereClauses, "("+strings.Join(amenityClauses, " OR ")+")")
	}

	query := fmt.Sprintf(`
		SELECT %s FROM apartments
		WHERE %s
		ORDER BY price ASC, created_at DESC
		LIMIT $%d
	`, listingColumns, strings.Join(whereClauses, " AND "), argIndex)
	args = append(args, searchResultCap)

	listings := []model.Listing{}
	if err := r.db.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}
	return listings, nil
}
