package geo

import "errors"

// MinCitySeparationKm is inclusive: two cities exactly this far apart are
// still too close.
const MinCitySeparationKm = 35.0

var (
	ErrCountryRequired = errors.New("country required before selecting cities")
	ErrCitiesTooClose  = errors.New("cities must be at least 35 km apart")
)

func tooClose(distanceKm float64) bool {
	return distanceKm <= MinCitySeparationKm
}

// ValidateCoverage checks a coverage selection against the catalog. Cities
// missing from the country's list, or listed without coordinates, are not
// distance-checked.
func (c *Catalog) ValidateCoverage(country string, cities []string) error {
	if country == "" && len(cities) > 0 {
		return ErrCountryRequired
	}
	if country == "" || len(cities) == 0 {
		return nil
	}

	known := make(map[string]City)
	for _, city := range c.Cities(country) {
		known[city.Name] = city
	}

	seen := make(map[string]bool, len(cities))
	points := make([]Point, 0, len(cities))
	for _, name := range cities {
		city, ok := known[name]
		if !ok || seen[name] {
			continue
		}
		p, ok := city.Point()
		if !ok {
			continue
		}
		seen[name] = true
		points = append(points, p)
	}

	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if tooClose(DistanceKm(points[i], points[j])) {
				return ErrCitiesTooClose
			}
		}
	}
	return nil
}
