package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/fadilmartias/applicant-portal/internal/config"
	"github.com/fadilmartias/applicant-portal/internal/geo"
	"github.com/fadilmartias/applicant-portal/internal/util"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const (
	SourceRemote   = "remote"
	SourceFallback = "fallback"
)

var (
	ErrCountryRequired = errors.New("country is required")
	ErrInvalidCountry  = errors.New("invalid country")
)

type CityServiceInterface interface {
	Cities(ctx context.Context, country string) (CityLookup, error)
}

type CityLookup struct {
	Cities []geo.City `json:"cities"`
	Source string     `json:"source"`
}

// CityService lists cities for a coverage country from the countriesnow API,
// falling back to the built-in catalog whenever the API is unusable.
type CityService struct {
	client  *resty.Client
	apiURL  string
	catalog *geo.Catalog
}

func NewCityService(cfg *config.CitiesConfig, catalog *geo.Catalog) *CityService {
	return &CityService{
		client:  resty.New().SetTimeout(cfg.Timeout),
		apiURL:  cfg.APIURL,
		catalog: catalog,
	}
}

func (s *CityService) Cities(ctx context.Context, country string) (CityLookup, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return CityLookup{}, ErrCountryRequired
	}
	if !s.catalog.HasCountry(country) {
		return CityLookup{}, ErrInvalidCountry
	}

	fallback := s.catalog.Cities(country)
	names, err := s.fetchNames(ctx, country)
	if err != nil {
		log.Printf("city lookup for %s fell back to catalog: %v", country, err)
		return CityLookup{Cities: fallback, Source: SourceFallback}, nil
	}
	return CityLookup{Cities: mergeCoordinates(names, fallback), Source: SourceRemote}, nil
}

func (s *CityService) fetchNames(ctx context.Context, country string) ([]string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"country": country}).
		Post(s.apiURL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, errors.New(resp.Status())
	}

	body := resp.String()
	if gjson.Get(body, "error").Bool() {
		return nil, errors.New(gjson.Get(body, "msg").String())
	}
	names := normalizeCityNames(gjson.Get(body, "data"))
	if len(names) == 0 {
		return nil, errors.New("no cities returned")
	}
	return names, nil
}

func normalizeCityNames(data gjson.Result) []string {
	if !data.IsArray() {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, item := range data.Array() {
		name := strings.TrimSpace(item.String())
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	util.SortNames(names)
	return names
}

// mergeCoordinates keeps remote names and borrows coordinates from the
// catalog, matching names case-insensitively.
func mergeCoordinates(names []string, known []geo.City) []geo.City {
	byName := make(map[string]geo.City, len(known))
	for _, city := range known {
		byName[strings.ToLower(city.Name)] = city
	}
	cities := make([]geo.City, 0, len(names))
	for _, name := range names {
		if city, ok := byName[strings.ToLower(name)]; ok {
			cities = append(cities, city)
			continue
		}
		cities = append(cities, geo.City{Name: name})
	}
	return cities
}
