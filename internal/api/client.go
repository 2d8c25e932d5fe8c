// Package api is the REST consumer for the delivery platform's public
// endpoints: restaurant browsing, food items, categories and reverse
// geocoding. It implements no business logic of its own.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mikeMule/gebeta-client/internal/models"
)

// Client talks to the platform backend. The zero HTTP client gets a sane
// timeout; tests inject an httptest-backed one.
type Client struct {
	baseURL string
	http    *http.Client
	log     logrus.FieldLogger
}

// NewClient creates a client for the configured API base URL.
func NewClient(cfg *models.Config, httpClient *http.Client, log logrus.FieldLogger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		http:    httpClient,
		log:     log,
	}
}

// Restaurants fetches the full restaurant listing.
func (c *Client) Restaurants(ctx context.Context) ([]models.Restaurant, error) {
	var out []models.Restaurant
	if err := c.getJSON(ctx, "/api/restaurants", &out); err != nil {
		return nil, errors.Wrap(err, "fetching restaurants")
	}
	return out, nil
}

// Restaurant fetches a single restaurant by id.
func (c *Client) Restaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	var out models.Restaurant
	if err := c.getJSON(ctx, "/api/restaurants/"+url.PathEscape(id), &out); err != nil {
		return nil, errors.Wrapf(err, "fetching restaurant %s", id)
	}
	return &out, nil
}

// FoodItems fetches the menu of a restaurant.
func (c *Client) FoodItems(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	var out []models.MenuItem
	path := "/api/restaurants/" + url.PathEscape(restaurantID) + "/food-items"
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, errors.Wrapf(err, "fetching food items for restaurant %s", restaurantID)
	}
	return out, nil
}

// Categories fetches the browse categories.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.getJSON(ctx, "/api/categories", &out); err != nil {
		return nil, errors.Wrap(err, "fetching categories")
	}
	return out, nil
}

// geocodeResponse accepts either field name the backend has used for the
// resolved place name.
type geocodeResponse struct {
	LocationName string `json:"locationName"`
	Name         string `json:"name"`
}

// Geocode resolves coordinates to a human-readable place name. Failures of
// any kind resolve to the fallback name rather than an error; the caller
// always gets something it can render.
func (c *Client) Geocode(ctx context.Context, lat, lng float64) string {
	path := fmt.Sprintf("/api/geocode?lat=%f&lng=%f", lat, lng)
	var resp geocodeResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		c.log.WithError(err).Debug("reverse geocode failed, using fallback")
		return models.FallbackLocationName
	}
	if resp.LocationName != "" {
		return resp.LocationName
	}
	if resp.Name != "" {
		return resp.Name
	}
	return models.FallbackLocationName
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %d for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decoding response")
	}
	return nil
}
