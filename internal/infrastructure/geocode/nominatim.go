// Package geocode implements the geocoding boundary against the OpenStreetMap
// Nominatim API. Lookups are one-shot with a bounded timeout; every failure
// class is reported uniformly as domain.ErrCityNotGeocoded so callers can fall
// back to the default delivery charge without inspecting transport errors.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/anantha-foods/ordering-system/internal/api/metrics"
	"github.com/anantha-foods/ordering-system/internal/core/domain"
)

const (
	defaultBaseURL = "https://nominatim.openstreetmap.org"
	defaultTimeout = 5 * time.Second
	userAgent      = "AnanthaFoods-Ordering/1.0"
)

// Config captures the settings for the Nominatim client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client resolves (city, state) pairs against Nominatim, constrained to India.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 || timeout > defaultTimeout {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// nominatimResult is the subset of the Nominatim response we care about.
// Coordinates come back as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve looks up the best match for "<city>, <state>, India". Transport
// errors, non-200 responses, empty result sets and malformed payloads all
// return domain.ErrCityNotGeocoded.
func (c *Client) Resolve(ctx context.Context, city, state string) (domain.Coordinate, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("%s, %s, India", city, state))
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: %s", domain.ErrCityNotGeocoded, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("city", city).Str("state", state).Msg("geocode request failed")
		metrics.GeocodeLookupsTotal.WithLabelValues("miss").Inc()
		return domain.Coordinate{}, fmt.Errorf("%w: %s", domain.ErrCityNotGeocoded, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.GeocodeLookupsTotal.WithLabelValues("miss").Inc()
		return domain.Coordinate{}, fmt.Errorf("%w: status %d", domain.ErrCityNotGeocoded, resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		metrics.GeocodeLookupsTotal.WithLabelValues("miss").Inc()
		return domain.Coordinate{}, fmt.Errorf("%w: decode: %s", domain.ErrCityNotGeocoded, err)
	}
	if len(results) == 0 {
		metrics.GeocodeLookupsTotal.WithLabelValues("miss").Inc()
		return domain.Coordinate{}, fmt.Errorf("%w: no results for %s, %s", domain.ErrCityNotGeocoded, city, state)
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		metrics.GeocodeLookupsTotal.WithLabelValues("miss").Inc()
		return domain.Coordinate{}, fmt.Errorf("%w: malformed coordinates", domain.ErrCityNotGeocoded)
	}

	coord := domain.Coordinate{Lat: lat, Lon: lon}
	if !coord.Valid() {
		metrics.GeocodeLookupsTotal.WithLabelValues("miss").Inc()
		return domain.Coordinate{}, fmt.Errorf("%w: coordinates out of range", domain.ErrCityNotGeocoded)
	}

	metrics.GeocodeLookupsTotal.WithLabelValues("hit").Inc()
	return coord, nil
}
