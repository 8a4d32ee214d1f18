package config

import (
	"log"
	"os"
	"sync"
	"time"
)

type CitiesConfig struct {
	APIURL      string
	Timeout     time.Duration
	CatalogPath string
}

var (
	citiesConfig *CitiesConfig
	citiesOnce   sync.Once
)

func LoadCitiesConfig() *CitiesConfig {
	citiesOnce.Do(func() {
		timeout := 5 * time.Second
		if raw := os.Getenv("CITIES_API_TIMEOUT"); raw != "" {
			parsed, err := time.ParseDuration(raw)
			if err != nil {
				log.Printf("Warning: invalid CITIES_API_TIMEOUT %q, using %s", raw, timeout)
			} else {
				timeout = parsed
			}
		}
		citiesConfig = &CitiesConfig{
			APIURL:      envOrDefault("CITIES_API_URL", "https://countriesnow.space/api/v0.1/countries/cities"),
			Timeout:     timeout,
			CatalogPath: os.Getenv("CITY_CATALOG_PATH"),
		}
	})
	return citiesConfig
}
