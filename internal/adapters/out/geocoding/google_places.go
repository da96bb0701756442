package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ewaste/internal/core/domain/model/kernel"
	"ewaste/internal/core/ports"
)

const (
	// DefaultGoogleBaseURL is the Maps Platform host. Compatible proxies such as
	// maps.gomaps.pro accept the same paths.
	DefaultGoogleBaseURL = "https://maps.googleapis.com"

	findPlacePath = "/maps/api/place/findplacefromtext/json"
)

type findPlaceResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Candidates   []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"candidates"`
}

// GooglePlacesOracle resolves addresses with the Places Find Place API.
// It is safe for concurrent use.
type GooglePlacesOracle struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	maxAttempts int
	backoff     time.Duration
}

// NewGooglePlacesOracle creates an oracle for apiKey. An empty baseURL selects
// DefaultGoogleBaseURL; timeout bounds each HTTP round-trip.
func NewGooglePlacesOracle(apiKey, baseURL string, timeout time.Duration) (*GooglePlacesOracle, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}
	if baseURL == "" {
		baseURL = DefaultGoogleBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &GooglePlacesOracle{
		session:     &http.Client{Timeout: timeout},
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxAttempts: 3,
		backoff:     200 * time.Millisecond,
	}, nil
}

// Resolve returns the location of the first candidate for query.
// ZERO_RESULTS is reported as ports.ErrGeoUnresolved.
func (o *GooglePlacesOracle) Resolve(ctx context.Context, query string) (kernel.GeoPoint, error) {
	query = normalize(query)
	if query == "" {
		return kernel.GeoPoint{}, ports.ErrGeoUnresolved
	}

	endpoint := o.baseURL + findPlacePath
	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("input", query)
		q.Set("inputtype", "textquery")
		q.Set("fields", "geometry")
		q.Set("key", o.apiKey)
		req.URL.RawQuery = q.Encode()
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("find place %q: %w", query, err)
	}
	defer resp.Body.Close()

	var decoded findPlaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("decode find place response: %w", err)
	}

	switch decoded.Status {
	case "OK":
	case "ZERO_RESULTS":
		return kernel.GeoPoint{}, ports.ErrGeoUnresolved
	default:
		return kernel.GeoPoint{}, fmt.Errorf("find place %q: status %s: %s",
			query, decoded.Status, decoded.ErrorMessage)
	}

	if len(decoded.Candidates) == 0 {
		return kernel.GeoPoint{}, ports.ErrGeoUnresolved
	}

	loc := decoded.Candidates[0].Geometry.Location
	return kernel.NewGeoPoint(loc.Lat, loc.Lng)
}

// normalize collapses whitespace so equal addresses share cache keys.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
