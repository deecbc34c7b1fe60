package geo

import (
	"math"
)

// EarthRadiusMeters is the spherical Earth radius used for great-circle math.
const EarthRadiusMeters = 6371000.0

// Point is a named reference coordinate, e.g. a campus location.
type Point struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `yaml:"longitude" validate:"gte=-180,lte=180"`
}

// HaversineMeters returns the great-circle distance in meters between two
// coordinates given in degrees.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) + math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

// WithinAny reports whether (lat, lon) lies within radiusMeters of at least
// one of the reference points.
func WithinAny(lat, lon float64, points []Point, radiusMeters float64) bool {
	for _, p := range points {
		if HaversineMeters(lat, lon, p.Latitude, p.Longitude) <= radiusMeters {
			return true
		}
	}
	return false
}

// BoundingBox is an axis-aligned lat/lon rectangle.
type BoundingBox struct {
	South float64 `yaml:"south"`
	North float64 `yaml:"north"`
	West  float64 `yaml:"west"`
	East  float64 `yaml:"east"`
}

// Contains reports whether the coordinate falls inside the box, edges included.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.South && lat <= b.North && lon >= b.West && lon <= b.East
}
