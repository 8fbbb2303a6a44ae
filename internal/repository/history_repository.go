package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"apartment-search/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// HistoryRepository persists append-only search history records.
type HistoryRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a new history repository.
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Append writes one history record, generating its identifier and timestamp.
func (r *HistoryRepository) Append(ctx context.Context, record *model.SearchHistory) error {
	record.ID = uuid.NewString()
	record.CreatedAt = time.Now().UTC()

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO search_history
			(id, user_id, original_query, extracted_parameters, results_count, created_at)
		VALUES
			(:id, :user_id, :original_query, :extracted_parameters, :results_count, :created_at)
	`, record)
	if err != nil {
		return fmt.Errorf("failed to append search history: %w", err)
	}
	return nil
}

// FindByID returns a history record by id, or nil when absent.
func (r *HistoryRepository) FindByID(ctx context.Context, id string) (*model.SearchHistory, error) {
	var record model.SearchHistory
	err := r.db.GetContext(ctx, &record, `
		SELECT id, user_id, original_query, extracted_parameters, results_count, created_at
		FROM search_history
		WHERE id = $1
	`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get search history: %w", err)
	}
	return &record, nil
}

// ListRecent returns the newest records, optionally scoped to a user.
func (r *HistoryRepository) ListRecent(ctx context.Context, userID *string, limit int) ([]model.SearchHistory, error) {
	records := []model.SearchHistory{}
	var err error
	if userID != nil {
		err = r.db.SelectContext(ctx, &records, `
			SELECT id, user_id, original_query, extracted_parameters, results_count, created_at
			FROM search_history
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		`, *userID, limit)
	} else {
		err = r.db.SelectContext(ctx, &records, `
			SELECT id, user_id, original_query, extracted_parameters, results_count, created_at
			FROM search_history
			ORDER BY created_at DESC
			LIMIT $1
		`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list search history: %w", err)
	}
	return records, nil
}

// AggregatePopular groups history by exact query text, most frequent first.
func (r *HistoryRepository) AggregatePopular(ctx context.Context, limit int) ([]model.PopularSearch, error) {
	popular := []model.PopularSearch{}
	err := r.db.SelectContext(ctx, &popular, `
		SELECT original_query AS query, COUNT(*) AS count
		FROM search_history
		GROUP BY original_query
		ORDER BY count DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate popular searches: %w", err)
	}
	return popular, nil
}

// CountLocationSearches counts records whose stored location parameter
// substring-matches the given location.
func (r *HistoryRepository) CountLocationSearches(ctx context.Context, location string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM search_history
		WHERE extracted_parameters->>'location' ILIKE $1
	`, "%"+location+"%")
	if err != nil {
		return 0, fmt.Errorf("failed to count location searches: %w", err)
	}
	return count, nil
}

// CountPriceRangeSearches counts records whose stored price range contains
// the given price.
func (r *HistoryRepository) CountPriceRangeSearches(ctx context.Context, price float64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM search_history
		WHERE (extracted_parameters->>'min_price')::numeric <= $1
		  AND (extracted_parameters->>'max_price')::numeric >= $1
	`, price)
	if err != nil {
		return 0, fmt.Errorf("failed to count price range searches: %w", err)
	}
	return count, nil
}
