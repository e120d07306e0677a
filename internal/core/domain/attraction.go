package domain

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/samirrijal/bucketlist/internal/pkg/geospatial"
)

// attractionNamespace scopes name-derived attraction IDs.
var attractionNamespace = uuid.MustParse("6f1c4a52-3c1e-4e0b-9a57-2d1f0e6b8c11")

// AttractionID identifies an attraction within a catalog.
type AttractionID string

// NewAttractionID derives a stable ID from an attraction name, so the same
// dataset produces the same IDs on every start.
func NewAttractionID(name string) AttractionID {
	return AttractionID(uuid.NewSHA1(attractionNamespace, []byte(name)).String())
}

// Attraction is a point of interest shown as a pin and a card.
type Attraction struct {
	ID          AttractionID `json:"id"`
	Name        string       `json:"name"`
	Coordinate  GeoPoint     `json:"coordinate"`
	Description string       `json:"description"`
	Icon        string       `json:"icon"`
}

// Validate checks the attraction's identity and coordinate.
func (a Attraction) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("attraction %q: id is required", a.Name)
	}
	if err := a.Coordinate.Validate(); err != nil {
		return fmt.Errorf("attraction %q: %w", a.Name, err)
	}
	return nil
}

// Distance returns the great-circle distance in miles between the attraction
// and ref.
func Distance(a Attraction, ref GeoPoint) (float64, error) {
	if err := a.Coordinate.Validate(); err != nil {
		return 0, err
	}
	if err := ref.Validate(); err != nil {
		return 0, err
	}
	meters := geospatial.Haversine(a.Coordinate.Lat, a.Coordinate.Lon, ref.Lat, ref.Lon)
	return geospatial.Miles(meters), nil
}

// FormatMiles renders a distance the way the card list shows it.
func FormatMiles(miles float64) string {
	return fmt.Sprintf("%.2f mi", miles)
}
