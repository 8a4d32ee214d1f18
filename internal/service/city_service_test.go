package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadilmartias/applicant-portal/internal/config"
	"github.com/fadilmartias/applicant-portal/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCityService(t *testing.T, handler http.HandlerFunc) *CityService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewCityService(&config.CitiesConfig{APIURL: srv.URL, Timeout: time.Second}, geo.DefaultCatalog())
}

func jsonReply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestCityService_ValidatesCountry(t *testing.T) {
	s := newCityService(t, jsonReply(`{}`))

	_, err := s.Cities(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrCountryRequired)

	_, err = s.Cities(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, ErrInvalidCountry)
}

func TestCityService_RemoteMergesCoordinates(t *testing.T) {
	s := newCityService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		jsonReply(`{"error":false,"msg":"ok","data":["porto"," Lisbon ","Aveiro","Lisbon",""]}`)(w, r)
	})

	lookup, err := s.Cities(context.Background(), "Portugal")
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, lookup.Source)

	var names []string
	for _, c := range lookup.Cities {
		names = append(names, c.Name)
	}
	// Known cities take the catalog spelling along with the coordinates.
	assert.Equal(t, []string{"Aveiro", "Lisbon", "Porto"}, names)

	_, ok := lookup.Cities[1].Point()
	assert.True(t, ok)
}

func TestCityService_FallsBack(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"api error flag": jsonReply(`{"error":true,"msg":"country not found"}`),
		"empty data":     jsonReply(`{"error":false,"data":[]}`),
		"non array data": jsonReply(`{"error":false,"data":"Lisbon"}`),
		"http failure": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			s := newCityService(t, handler)
			lookup, err := s.Cities(context.Background(), "Portugal")
			require.NoError(t, err)
			assert.Equal(t, SourceFallback, lookup.Source)
			assert.Equal(t, geo.DefaultCatalog().Cities("Portugal"), lookup.Cities)
		})
	}
}
