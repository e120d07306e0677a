package domain

// City is the map's home region.
type City struct {
	Name   string   `json:"name"`
	Center GeoPoint `json:"center"`
	Span   Span     `json:"span"`
}

// DefaultViewport is the camera position before any selection.
func (c City) DefaultViewport() Viewport {
	return Viewport{Center: c.Center, Span: c.Span}
}

// NewOrleans returns the built-in city and its attractions.
func NewOrleans() (City, []Attraction) {
	city := City{
		Name:   "New Orleans",
		Center: GeoPoint{Lat: 29.95583, Lon: -90.06526},
		Span:   FocusSpan,
	}

	attractions := []Attraction{
		newAttraction(
			"French Quarter",
			GeoPoint{Lat: 29.95583, Lon: -90.06526},
			"The historic heart of New Orleans – music, food, and old-world charm.",
			"building.columns",
		),
		newAttraction(
			"Café Du Monde",
			GeoPoint{Lat: 29.95763, Lon: -90.06175},
			"Iconic café known for beignets and café au lait.",
			"cup.and.saucer",
		),
		newAttraction(
			"New Orleans Historic Voodoo Museum",
			GeoPoint{Lat: 29.95980, Lon: -90.06390},
			"A small museum exploring voodoo’s culture and folklore.",
			"wand.and.stars",
		),
		newAttraction(
			"Cajun Encounters",
			GeoPoint{Lat: 30.03217, Lon: -89.92707},
			"Tour company offering swamp, city, and plantation adventures.",
			"bus",
		),
		newAttraction(
			"New Orleans Ghost Adventures Tours",
			GeoPoint{Lat: 29.95642, Lon: -90.06291},
			"Chilling haunted tour featuring authentic ghost stories.",
			"ghost",
		),
	}

	return city, attractions
}

func newAttraction(name string, at GeoPoint, description, icon string) Attraction {
	return Attraction{
		ID:          NewAttractionID(name),
		Name:        name,
		Coordinate:  at,
		Description: description,
		Icon:        icon,
	}
}
