package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	corelogger "fieldassign/core/logger"
)

const defaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// CityUnknown is returned when a location cannot be resolved to a city.
const CityUnknown = "City not found"

// Geocoder resolves postal codes to city names for display purposes.
// Lookups are cached so each zip code is resolved at most once.
type Geocoder struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     corelogger.Logger

	mu    sync.RWMutex
	cache map[string]string
}

// GeocoderOption configures a Geocoder.
type GeocoderOption func(*Geocoder)

// WithGeocodeURL overrides the API endpoint, mainly for tests.
func WithGeocodeURL(u string) GeocoderOption {
	return func(g *Geocoder) { g.baseURL = u }
}

// WithGeocodeHTTPClient replaces the underlying HTTP client.
func WithGeocodeHTTPClient(h *http.Client) GeocoderOption {
	return func(g *Geocoder) { g.http = h }
}

// NewGeocoder creates a geocoder using the given API key.
func NewGeocoder(apiKey string, log corelogger.Logger, opts ...GeocoderOption) *Geocoder {
	g := &Geocoder{
		baseURL: defaultGeocodeURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
		cache:   make(map[string]string),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		AddressComponents []struct {
			LongName string   `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
}

// City returns the city name for a zip code, or CityUnknown when the
// lookup fails. Failures are logged, never fatal, and are not cached, so a
// transient outage does not pin CityUnknown for the rest of the run.
func (g *Geocoder) City(ctx context.Context, zip string) string {
	g.mu.RLock()
	city, ok := g.cache[zip]
	g.mu.RUnlock()
	if ok {
		return city
	}

	city, err := g.lookup(ctx, zip)
	if err != nil {
		if g.log != nil {
			g.log.Warnf("geocode %s: %v", zip, err)
		}
		return CityUnknown
	}

	g.mu.Lock()
	g.cache[zip] = city
	g.mu.Unlock()
	return city
}

func (g *Geocoder) lookup(ctx context.Context, zip string) (string, error) {
	q := url.Values{}
	q.Set("address", zip)
	q.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode geocode response: %w", err)
	}
	if body.Status != "OK" || len(body.Results) == 0 {
		return "", fmt.Errorf("geocode: status %s", body.Status)
	}
	for _, comp := range body.Results[0].AddressComponents {
		for _, t := range comp.Types {
			if t == "locality" || t == "postal_town" {
				return comp.LongName, nil
			}
		}
	}
	return "", fmt.Errorf("geocode: no locality in result for %s", zip)
}
