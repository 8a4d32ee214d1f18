package geo

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type City struct {
	Name string   `yaml:"name" json:"name"`
	Lat  *float64 `yaml:"lat,omitempty" json:"lat,omitempty"`
	Lng  *float64 `yaml:"lng,omitempty" json:"lng,omitempty"`
}

// Point reports the city's coordinates when both are known.
func (c City) Point() (Point, bool) {
	if c.Lat == nil || c.Lng == nil {
		return Point{}, false
	}
	return Point{Lat: *c.Lat, Lng: *c.Lng}, true
}

type countryEntry struct {
	Name   string `yaml:"name"`
	Cities []City `yaml:"cities"`
}

type catalogFile struct {
	Countries []countryEntry `yaml:"countries"`
}

// Catalog is the fixed list of coverage countries and their known cities.
type Catalog struct {
	countries []string
	cities    map[string][]City
}

func NewCatalog(entries map[string][]City, order []string) *Catalog {
	c := &Catalog{cities: make(map[string][]City, len(order))}
	for _, name := range order {
		c.countries = append(c.countries, name)
		c.cities[name] = entries[name]
	}
	return c
}

// LoadCatalog reads a YAML catalog:
//
//	countries:
//	  - name: Portugal
//	    cities:
//	      - {name: Lisbon, lat: 38.7223, lng: -9.1393}
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read city catalog: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse city catalog: %w", err)
	}
	if len(file.Countries) == 0 {
		return nil, fmt.Errorf("city catalog %s has no countries", path)
	}

	entries := make(map[string][]City, len(file.Countries))
	order := make([]string, 0, len(file.Countries))
	for _, country := range file.Countries {
		name := strings.TrimSpace(country.Name)
		if name == "" {
			continue
		}
		if _, dup := entries[name]; !dup {
			order = append(order, name)
		}
		entries[name] = append(entries[name], country.Cities...)
	}
	return NewCatalog(entries, order), nil
}

func (c *Catalog) Countries() []string {
	out := make([]string, len(c.countries))
	copy(out, c.countries)
	return out
}

func (c *Catalog) HasCountry(name string) bool {
	_, ok := c.cities[name]
	return ok
}

func (c *Catalog) Cities(country string) []City {
	return c.cities[country]
}
