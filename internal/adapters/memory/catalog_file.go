package memory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samirrijal/bucketlist/internal/core/domain"
)

// CatalogFile is the on-disk attraction table.
//
//	attractions:
//	  - name: Café Du Monde
//	    lat: 29.95763
//	    lon: -90.06175
//	    description: Iconic café known for beignets and café au lait.
//	    icon: cup.and.saucer
type CatalogFile struct {
	Attractions []CatalogEntry `yaml:"attractions"`
}

// CatalogEntry is one attraction record. ID defaults to an ID derived from Name.
type CatalogEntry struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Lat         float64 `yaml:"lat"`
	Lon         float64 `yaml:"lon"`
	Description string  `yaml:"description"`
	Icon        string  `yaml:"icon"`
}

// LoadCatalogFile reads and validates a YAML catalog.
func LoadCatalogFile(path string) (*domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog and builds a validated domain.Catalog.
func ParseCatalog(data []byte) (*domain.Catalog, error) {
	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Attractions) == 0 {
		return nil, fmt.Errorf("catalog has no attractions")
	}

	attractions := make([]domain.Attraction, 0, len(file.Attractions))
	for _, e := range file.Attractions {
		if e.Name == "" {
			return nil, fmt.Errorf("catalog entry %q: name is required", e.ID)
		}
		id := domain.AttractionID(e.ID)
		if id == "" {
			id = domain.NewAttractionID(e.Name)
		}
		attractions = append(attractions, domain.Attraction{
			ID:          id,
			Name:        e.Name,
			Coordinate:  domain.GeoPoint{Lat: e.Lat, Lon: e.Lon},
			Description: e.Description,
			Icon:        e.Icon,
		})
	}

	return domain.NewCatalog(attractions)
}
