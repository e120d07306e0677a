package domain

import "fmt"

// AttractionCard is an attraction annotated with its distance from a
// reference point, as shown in the horizontal card list.
type AttractionCard struct {
	Attraction
	DistanceMiles float64 `json:"distance_miles"`
	DistanceLabel string  `json:"distance_label"`
}

// AttractionDetail is the content of the detail sheet.
type AttractionDetail struct {
	Attraction
	City          string  `json:"city"`
	DistanceMiles float64 `json:"distance_miles"`
	DistanceText  string  `json:"distance_text"`
}

// NewAttractionCard computes the card for a relative to ref.
func NewAttractionCard(a Attraction, ref GeoPoint) (AttractionCard, error) {
	miles, err := Distance(a, ref)
	if err != nil {
		return AttractionCard{}, err
	}
	return AttractionCard{Attraction: a, DistanceMiles: miles, DistanceLabel: FormatMiles(miles)}, nil
}

// NewAttractionDetail computes the detail sheet for a within city.
func NewAttractionDetail(a Attraction, city City) (AttractionDetail, error) {
	miles, err := Distance(a, city.Center)
	if err != nil {
		return AttractionDetail{}, err
	}
	return AttractionDetail{
		Attraction:    a,
		City:          city.Name,
		DistanceMiles: miles,
		DistanceText:  fmt.Sprintf("Distance from city center: %.2f miles", miles),
	}, nil
}
