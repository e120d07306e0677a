package ports

import (
	"context"

	"github.com/samirrijal/bucketlist/internal/core/domain"
)

// AttractionRepository serves the read-only attraction catalog.
type AttractionRepository interface {
	List(ctx context.Context) ([]domain.Attraction, error)
	GetByID(ctx context.Context, id domain.AttractionID) (*domain.Attraction, error)
	// Lookup exposes the catalog to the view reducer.
	Lookup() domain.AttractionLookup
	// Fingerprint identifies the catalog contents; it scopes shared cache keys.
	Fingerprint() string
}
