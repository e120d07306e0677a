package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
)

// Catalog is an immutable, ordered set of attractions.
type Catalog struct {
	items       []Attraction
	index       map[AttractionID]int
	fingerprint string
}

// NewCatalog validates attractions and freezes them in the given order.
// Records with out-of-range coordinates fail with ErrInvalidCoordinate and
// repeated IDs with ErrDuplicateID.
func NewCatalog(attractions []Attraction) (*Catalog, error) {
	c := &Catalog{
		items: make([]Attraction, 0, len(attractions)),
		index: make(map[AttractionID]int, len(attractions)),
	}
	for i, a := range attractions {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, exists := c.index[a.ID]; exists {
			return nil, fmt.Errorf("record %d: %w: %s", i, ErrDuplicateID, a.ID)
		}
		c.index[a.ID] = len(c.items)
		c.items = append(c.items, a)
	}
	c.fingerprint = fingerprint(c.items)
	return c, nil
}

// fingerprint hashes every record field in catalog order.
func fingerprint(items []Attraction) string {
	h := sha256.New()
	for _, a := range items {
		for _, field := range []string{
			string(a.ID), a.Name,
			strconv.FormatFloat(a.Coordinate.Lat, 'g', -1, 64),
			strconv.FormatFloat(a.Coordinate.Lon, 'g', -1, 64),
			a.Description, a.Icon,
		} {
			h.Write([]byte(field))
			h.Write([]byte{0})
		}
	}
	return hex.EncodeToString(h.Sum(nil)[:8])
}

// All returns a copy of the attractions in catalog order.
func (c *Catalog) All() []Attraction {
	out := make([]Attraction, len(c.items))
	copy(out, c.items)
	return out
}

// Get looks up an attraction by ID.
func (c *Catalog) Get(id AttractionID) (Attraction, bool) {
	i, ok := c.index[id]
	if !ok {
		return Attraction{}, false
	}
	return c.items[i], true
}

// Len returns the number of attractions.
func (c *Catalog) Len() int { return len(c.items) }

// Fingerprint identifies the catalog contents. Catalogs with the same
// records in the same order share a fingerprint.
func (c *Catalog) Fingerprint() string { return c.fingerprint }
