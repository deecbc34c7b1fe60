package geo

import (
	"math"
	"testing"
)

func TestHaversineMeters_ZeroDistance(t *testing.T) {
	d := HaversineMeters(40.7128, -74.0060, 40.7128, -74.0060)
	if d != 0 {
		t.Errorf("distance from a point to itself should be 0, got %v", d)
	}
}

func TestHaversineMeters_Symmetry(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"manhattan to brooklyn", 40.7831, -73.9712, 40.6782, -73.9442},
		{"across the equator", -1.5, 30.0, 1.5, 30.0},
		{"across the antimeridian", 10.0, 179.5, 10.0, -179.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab := HaversineMeters(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			ba := HaversineMeters(tt.lat2, tt.lon2, tt.lat1, tt.lon1)
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("distance not symmetric: %v vs %v", ab, ba)
			}
		})
	}
}

func TestHaversineMeters_KnownSeparation(t *testing.T) {
	// One thousandth of a degree of latitude is pi*R/180/1000 meters.
	want := math.Pi * EarthRadiusMeters / 180 / 1000
	got := HaversineMeters(40.7128, -74.0060, 40.7138, -74.0060)
	if math.Abs(got-want) > 0.01 {
		t.Errorf("expected about %.4f m, got %.4f m", want, got)
	}
}

func TestHaversineMeters_MonotoneAlongBearing(t *testing.T) {
	// Distance must not decrease as the angular separation grows due north.
	prev := -1.0
	for i := 1; i <= 20; i++ {
		d := HaversineMeters(40.0, -74.0, 40.0+float64(i)*0.05, -74.0)
		if d <= prev {
			t.Fatalf("distance not increasing at step %d: %v <= %v", i, d, prev)
		}
		prev = d
	}
}

func TestWithinAny(t *testing.T) {
	campuses := []Point{
		{Name: "City College", Latitude: 40.8200, Longitude: -73.9493},
		{Name: "Hunter College", Latitude: 40.7685, Longitude: -73.9657},
	}
	tests := []struct {
		name     string
		lat, lon float64
		radius   float64
		want     bool
	}{
		{"at a campus", 40.8200, -73.9493, 750, true},
		{"just inside radius", 40.8205, -73.9493, 750, true},
		{"far away", 40.5795, -74.1502, 750, false},
		{"zero radius elsewhere", 40.8210, -73.9493, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithinAny(tt.lat, tt.lon, campuses, tt.radius)
			if got != tt.want {
				t.Errorf("WithinAny(%v, %v, r=%v) = %v, want %v", tt.lat, tt.lon, tt.radius, got, tt.want)
			}
		})
	}
}

func TestBoundingBox_Contains(t *testing.T) {
	cbd := BoundingBox{South: 40.7047, North: 40.7614, West: -74.0150, East: -73.9441}
	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"inside", 40.7300, -73.9900, true},
		{"on south edge", 40.7047, -73.9900, true},
		{"north of zone", 40.8000, -73.9900, false},
		{"east of zone", 40.7300, -73.9000, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cbd.Contains(tt.lat, tt.lon); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}
