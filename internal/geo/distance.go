// Package geo computes great-circle distances between coordinates stored as
// decimal strings.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultEarthRadiusKm is the mean Earth radius.
const DefaultEarthRadiusKm = 6371.0

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidRadius     = errors.New("earth radius must be positive")
)

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ParsePoint parses decimal-string coordinates. Non-numeric, non-finite and
// out-of-range values are rejected.
func ParsePoint(lat, lng string) (Point, error) {
	latitude, err := parseCoordinate("latitude", lat, 90)
	if err != nil {
		return Point{}, err
	}
	longitude, err := parseCoordinate("longitude", lng, 180)
	if err != nil {
		return Point{}, err
	}
	return Point{Latitude: latitude, Longitude: longitude}, nil
}

func parseCoordinate(name, raw string, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidCoordinate, name, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > limit {
		return 0, fmt.Errorf("%w: %s %q out of range", ErrInvalidCoordinate, name, raw)
	}
	return v, nil
}

// Calculator computes haversine distances for a configured sphere radius.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	radiusKm float64
}

func NewCalculator(radiusKm float64) (*Calculator, error) {
	if radiusKm <= 0 || math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) {
		return nil, ErrInvalidRadius
	}
	return &Calculator{radiusKm: radiusKm}, nil
}

// RadiusKm returns the sphere radius the calculator was built with.
func (c *Calculator) RadiusKm() float64 {
	return c.radiusKm
}

// Distance returns the great-circle distance between a and b in kilometers.
func (c *Calculator) Distance(a, b Point) float64 {
	dLat := degreesToRadians(b.Latitude - a.Latitude)
	dLon := degreesToRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(a.Latitude))*math.Cos(degreesToRadians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	// rounding can push h a hair past 1 for antipodal points
	h = math.Min(1, math.Max(0, h))

	return 2 * c.radiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DistanceStrings parses both points and returns the distance between them.
func (c *Calculator) DistanceStrings(lat1, lng1, lat2, lng2 string) (float64, error) {
	a, err := ParsePoint(lat1, lng1)
	if err != nil {
		return 0, err
	}
	b, err := ParsePoint(lat2, lng2)
	if err != nil {
		return 0, err
	}
	return c.Distance(a, b), nil
}

// Within reports whether b lies within radiusKm of a, inclusive.
func (c *Calculator) Within(a, b Point, radiusKm float64) bool {
	return c.Distance(a, b) <= radiusKm
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
