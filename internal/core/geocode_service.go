package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// ErrGeocodeUnavailable signals that neither the proxy nor the upstream
// geocoder answered.
var ErrGeocodeUnavailable = errors.New("geocoding service unavailable")

// GeocodeAddress is the structured address block of a geocoder response.
type GeocodeAddress struct {
	Road     string `json:"road,omitempty"`
	Suburb   string `json:"suburb,omitempty"`
	City     string `json:"city,omitempty"`
	Town     string `json:"town,omitempty"`
	Village  string `json:"village,omitempty"`
	State    string `json:"state,omitempty"`
	Postcode string `json:"postcode,omitempty"`
	Country  string `json:"country,omitempty"`
}

// GeocodeResult is one geocoder hit, forward or reverse.
type GeocodeResult struct {
	DisplayName string         `json:"display_name"`
	Lat         string         `json:"lat"`
	Lon         string         `json:"lon"`
	Address     GeocodeAddress `json:"address"`
}

// Locality returns the best city-level name available.
func (r *GeocodeResult) Locality() string {
	for _, v := range []string{r.Address.City, r.Address.Town, r.Address.Village, r.Address.Suburb} {
		if v != "" {
			return v
		}
	}
	return ""
}

// geocodeService implements the GeocodeService interface against a
// Nominatim-compatible upstream, optionally via a caching proxy. The proxy
// is tried first; any proxy failure falls through to the upstream.
type geocodeService struct {
	httpClient *http.Client
	proxyURL   string // optional
	baseURL    string
	logger     *zap.Logger
}

// NewGeocodeService creates a new GeocodeService instance.
func NewGeocodeService(httpClient *http.Client, proxyURL, baseURL string, logger *zap.Logger) GeocodeService {
	return &geocodeService{
		httpClient: httpClient,
		proxyURL:   proxyURL,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// Reverse resolves coordinates to an address.
func (s *geocodeService) Reverse(ctx context.Context, lat, lon string) (*GeocodeResult, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", lat)
	params.Set("lon", lon)

	body, err := s.fetch(ctx, "/reverse", params)
	if err != nil {
		return nil, err
	}

	var result GeocodeResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}
	return &result, nil
}

// SearchPlaces forward-geocodes a free-text query, restricted to India.
func (s *geocodeService) SearchPlaces(ctx context.Context, query string) ([]GeocodeResult, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("addressdetails", "1")
	params.Set("countrycodes", "in")
	params.Set("limit", "8")

	body, err := s.fetch(ctx, "/search", params)
	if err != nil {
		return nil, err
	}

	var results []GeocodeResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode place search response: %w", err)
	}
	return results, nil
}

// fetch tries the proxy first, then the upstream directly.
func (s *geocodeService) fetch(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if s.proxyURL != "" {
		body, err := s.get(ctx, s.proxyURL+path+"?"+params.Encode())
		if err == nil {
			return body, nil
		}
		s.logger.Warn("geocode proxy failed, falling back to upstream", zap.String("path", path), zap.Error(err))
	}

	body, err := s.get(ctx, s.baseURL+path+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeocodeUnavailable, err)
	}
	return body, nil
}

func (s *geocodeService) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "storefront-backend-go/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
