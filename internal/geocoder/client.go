package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/rajasatyajit/ReliefOps/config"
	apperrors "github.com/rajasatyajit/ReliefOps/internal/errors"
	"github.com/rajasatyajit/ReliefOps/internal/models"
)

// Client resolves place names against a Nominatim-compatible search
// endpoint. Every upstream call waits on the limiter first, which enforces
// the provider's minimum delay between requests.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

// NewClient creates a rate-limited geocoding client
func NewClient(cfg config.GeocodeConfig) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
	}
}

// nominatimResult mirrors the provider's search response. Coordinates
// arrive as strings.
type nominatimResult struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Importance  float64 `json:"importance"`
	Type        string  `json:"type"`
	DisplayName string  `json:"display_name"`
}

// Resolve looks up a place name. A nil result with nil error means the
// provider returned no match.
func (c *Client) Resolve(ctx context.Context, place string) (*models.LocationInfo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperrors.GeocodeError{Place: place, Err: err}
	}

	params := url.Values{
		"q":               {place},
		"format":          {"jsonv2"},
		"limit":           {"1"},
		"accept-language": {"en"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, apperrors.GeocodeError{Place: place, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.GeocodeError{Place: place, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.GeocodeError{Place: place, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, apperrors.GeocodeError{Place: place, Err: err}
	}

	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, apperrors.GeocodeError{Place: place, Err: fmt.Errorf("parse latitude: %w", err)}
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, apperrors.GeocodeError{Place: place, Err: fmt.Errorf("parse longitude: %w", err)}
	}

	return &models.LocationInfo{
		Latitude:    lat,
		Longitude:   lon,
		Importance:  results[0].Importance,
		Type:        results[0].Type,
		DisplayName: results[0].DisplayName,
	}, nil
}
