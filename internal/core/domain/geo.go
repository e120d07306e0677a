package domain

import (
	"fmt"
	"math"

	"github.com/samirrijal/bucketlist/internal/pkg/geospatial"
)

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Validate reports ErrInvalidCoordinate when the point lies outside
// [-90,90] latitude or [-180,180] longitude. NaN is never in range.
func (p GeoPoint) Validate() error {
	if !(p.Lat >= -90 && p.Lat <= 90) {
		return fmt.Errorf("%w: latitude %f must be between -90 and 90", ErrInvalidCoordinate, p.Lat)
	}
	if !(p.Lon >= -180 && p.Lon <= 180) {
		return fmt.Errorf("%w: longitude %f must be between -180 and 180", ErrInvalidCoordinate, p.Lon)
	}
	return nil
}

// Span is the angular extent of a map region in degrees.
type Span struct {
	LatitudeDelta  float64 `json:"latitude_delta"`
	LongitudeDelta float64 `json:"longitude_delta"`
}

// FocusSpan is the span used when the camera focuses a single attraction.
var FocusSpan = Span{LatitudeDelta: 0.01, LongitudeDelta: 0.01}

// Viewport is the visible map region. It is always replaced as a whole.
type Viewport struct {
	Center GeoPoint `json:"center"`
	Span   Span     `json:"span"`
}

// Contains reports whether p lies inside the visible region, edges
// included. Regions crossing the antimeridian are handled.
func (v Viewport) Contains(p GeoPoint) bool {
	if math.Abs(p.Lat-v.Center.Lat) > v.Span.LatitudeDelta/2 {
		return false
	}
	return math.Abs(geospatial.LonDelta(v.Center.Lon, p.Lon)) <= v.Span.LongitudeDelta/2
}
