package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// kmNorthOf returns a point the given great-circle distance due north of p.
func kmNorthOf(p Point, km float64) Point {
	return Point{Lat: p.Lat + km/EarthRadiusKm*180/math.Pi, Lng: p.Lng}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	pairs := []struct {
		name string
		a, b Point
	}{
		{"lisbon-porto", Point{38.7223, -9.1393}, Point{41.1579, -8.6291}},
		{"across antimeridian", Point{-16.5, 179.9}, Point{-17.1, -179.8}},
		{"poles", Point{90, 0}, Point{-90, 0}},
		{"equator", Point{0, 10}, Point{0, -10}},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, DistanceKm(tt.a, tt.b), DistanceKm(tt.b, tt.a), 1e-9)
			assert.Zero(t, DistanceKm(tt.a, tt.a))
			assert.Zero(t, DistanceKm(tt.b, tt.b))
		})
	}
}

func TestDistanceKm_KnownValues(t *testing.T) {
	lisbon := Point{38.7223, -9.1393}
	porto := Point{41.1579, -8.6291}
	amadora := Point{38.7538, -9.2308}

	assert.InDelta(t, 274, DistanceKm(lisbon, porto), 5)
	assert.Less(t, DistanceKm(lisbon, amadora), 15.0)
	assert.InDelta(t, 35.1, DistanceKm(Point{}, kmNorthOf(Point{}, 35.1)), 1e-6)
	assert.InDelta(t, math.Pi*EarthRadiusKm, DistanceKm(Point{90, 0}, Point{-90, 0}), 1e-6)
}
