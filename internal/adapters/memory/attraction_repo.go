package memory

import (
	"context"
	"fmt"

	"github.com/samirrijal/bucketlist/internal/core/domain"
)

// AttractionRepo implements ports.AttractionRepository over an immutable catalog.
type AttractionRepo struct {
	catalog *domain.Catalog
}

// NewAttractionRepo creates a repository backed by catalog.
func NewAttractionRepo(catalog *domain.Catalog) *AttractionRepo {
	return &AttractionRepo{catalog: catalog}
}

// List returns all attractions in catalog order.
func (r *AttractionRepo) List(ctx context.Context) ([]domain.Attraction, error) {
	return r.catalog.All(), nil
}

// GetByID returns one attraction or domain.ErrNotFound.
func (r *AttractionRepo) GetByID(ctx context.Context, id domain.AttractionID) (*domain.Attraction, error) {
	a, ok := r.catalog.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return &a, nil
}

func (r *AttractionRepo) Lookup() domain.AttractionLookup {
	return r.catalog
}

// Fingerprint returns the catalog fingerprint.
func (r *AttractionRepo) Fingerprint() string {
	return r.catalog.Fingerprint()
}
