package service

import (
	"context"

	"apartment-search/internal/model"
	"apartment-search/internal/utils"

	"github.com/sirupsen/logrus"
)

// ApartmentService exposes the listing store and the deterministic filter
// plan to the rest of the system.
type ApartmentService struct {
	store  ListingStore
	logger *logrus.Entry
}

// NewApartmentService creates a new apartment service.
func NewApartmentService(store ListingStore, logger *logrus.Logger) *ApartmentService {
	return &ApartmentService{
		store:  store,
		logger: logger.WithField("component", "apartments"),
	}
}

// FindAll returns all available apartments.
func (s *ApartmentService) FindAll(ctx context.Context) ([]model.Listing, error) {
	return s.store.FindAvailable(ctx)
}

// FindByID returns an available apartment by id, or nil when absent.
func (s *ApartmentService) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	return s.store.FindByID(ctx, id)
}

// Create inserts a new apartment listing.
func (s *ApartmentService) Create(ctx context.Context, listing *model.Listing) error {
	return s.store.Create(ctx, listing)
}

// Update applies a partial update, returning nil when the apartment is absent.
func (s *ApartmentService) Update(ctx context.Context, id string, upd model.ListingUpdate) (*model.Listing, error) {
	return s.store.Update(ctx, id, upd)
}

// Delete soft-deletes an apartment by flipping its availability flag.
func (s *ApartmentService) Delete(ctx context.Context, id string) (bool, error) {
	return s.store.SoftDelete(ctx, id)
}

// Search executes the filter plan for the given parameters.
func (s *ApartmentService) Search(ctx context.Context, params model.SearchParameters) ([]model.Listing, error) {
	listings, err := s.store.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("count", len(listings)).Debug("filter plan executed")
	return listings, nil
}

// FilterByDistance removes listings farther than maxKm from the target
// point. Pure post-filter over already-fetched listings.
func (s *ApartmentService) FilterByDistance(listings []model.Listing, targetLat, targetLon, maxKm float64) []model.Listing {
	return utils.FilterByDistance(listings, targetLat, targetLon, maxKm)
}
