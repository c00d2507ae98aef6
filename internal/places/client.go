package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/commupath/commupath/internal/model"
)

// Client talks to the Google Maps Places and Geocoding web services.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a Maps client from configuration.
func NewClient(cfg model.MapsConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com/maps/api"
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// NearbyResult is one raw entry from the Nearby Search endpoint. Geometry is
// a pointer so that entries missing it can be detected and dropped.
type NearbyResult struct {
	Name             string    `json:"name"`
	Vicinity         string    `json:"vicinity"`
	Geometry         *Geometry `json:"geometry"`
	PlaceID          string    `json:"place_id"`
	Types            []string  `json:"types"`
	Rating           float64   `json:"rating"`
	UserRatingsTotal int       `json:"user_ratings_total"`
	BusinessStatus   string    `json:"business_status"`
}

// Geometry holds the place location.
type Geometry struct {
	Location *LatLng `json:"location"`
}

// LatLng is a raw coordinate pair from the wire.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type nearbyResponse struct {
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message"`
	Results      []NearbyResult `json:"results"`
}

// NearbySearch runs one Nearby Search query for a single place type.
// "ZERO_RESULTS" is empty-but-not-erroneous; every other non-OK status is
// an error.
func (c *Client) NearbySearch(ctx context.Context, center model.Coordinates, radius int, placeType string) ([]NearbyResult, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", center.Lat, center.Lng))
	params.Set("radius", fmt.Sprintf("%d", radius))
	params.Set("type", placeType)
	params.Set("language", "en")
	params.Set("key", c.apiKey)

	var resp nearbyResponse
	if err := c.getJSON(ctx, "/place/nearbysearch/json", params, &resp); err != nil {
		return nil, err
	}

	switch resp.Status {
	case "OK":
		return resp.Results, nil
	case "ZERO_RESULTS":
		return nil, nil
	default:
		if resp.ErrorMessage != "" {
			return nil, fmt.Errorf("places status %s: %s", resp.Status, resp.ErrorMessage)
		}
		return nil, fmt.Errorf("places status %s", resp.Status)
	}
}

// GeocodeResult is one address candidate from the Geocoding endpoint.
type GeocodeResult struct {
	AddressComponents []AddressComponent `json:"address_components"`
	FormattedAddress  string             `json:"formatted_address"`
}

// AddressComponent is a typed piece of an address.
type AddressComponent struct {
	LongName string   `json:"long_name"`
	Types    []string `json:"types"`
}

type geocodeResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message"`
	Results      []GeocodeResult `json:"results"`
}

// ReverseGeocode looks up address candidates for a coordinate pair.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) ([]GeocodeResult, error) {
	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("key", c.apiKey)

	var resp geocodeResponse
	if err := c.getJSON(ctx, "/geocode/json", params, &resp); err != nil {
		return nil, err
	}

	switch resp.Status {
	case "OK":
		return resp.Results, nil
	case "ZERO_RESULTS":
		return nil, nil
	default:
		if resp.ErrorMessage != "" {
			return nil, fmt.Errorf("geocoding status %s: %s", resp.Status, resp.ErrorMessage)
		}
		return nil, fmt.Errorf("geocoding status %s", resp.Status)
	}
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("maps request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("maps returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
