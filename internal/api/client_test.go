package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeMule/gebeta-client/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(&models.Config{APIBaseURL: server.URL}, server.Client(), nil)
}

func TestRestaurants(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/restaurants", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"r1","name":"Mama's Kitchen","rating":4.5},{"id":"r2","name":"Addis Grill"}]`))
	})

	restaurants, err := client.Restaurants(context.Background())
	require.NoError(t, err)
	require.Len(t, restaurants, 2)
	assert.Equal(t, "Mama's Kitchen", restaurants[0].Name)
	assert.Equal(t, 4.5, restaurants[0].Rating)
}

func TestRestaurant_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.Restaurant(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestFoodItems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/restaurants/r1/food-items", r.URL.Path)
		w.Write([]byte(`[{"id":"m1","restaurant_id":"r1","name":"Doro Wat","price":160}]`))
	})

	items, err := client.FoodItems(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 160.0, items[0].Price)
}

func TestCategories(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/categories", r.URL.Path)
		w.Write([]byte(`[{"id":"c1","name":"Burgers"}]`))
	})

	categories, err := client.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
}

func TestGeocode(t *testing.T) {
	t.Run("locationName field", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/geocode", r.URL.Path)
			assert.NotEmpty(t, r.URL.Query().Get("lat"))
			assert.NotEmpty(t, r.URL.Query().Get("lng"))
			w.Write([]byte(`{"locationName":"Bole, Addis Ababa"}`))
		})
		assert.Equal(t, "Bole, Addis Ababa", client.Geocode(context.Background(), 9.0, 38.7))
	})

	t.Run("name field", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"name":"Piassa"}`))
		})
		assert.Equal(t, "Piassa", client.Geocode(context.Background(), 9.0, 38.7))
	})

	t.Run("server error falls back", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		assert.Equal(t, models.FallbackLocationName, client.Geocode(context.Background(), 9.0, 38.7))
	})

	t.Run("empty body falls back", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		})
		assert.Equal(t, models.FallbackLocationName, client.Geocode(context.Background(), 9.0, 38.7))
	})
}

func TestLocationCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loc", "last_location.json")
	cache, err := NewLocationCache(&models.Config{LocationCachePath: path})
	require.NoError(t, err)

	_, ok := cache.Load()
	assert.False(t, ok, "empty cache should miss")

	loc := models.Location{Lat: 9.0054, Lng: 38.7636}
	require.NoError(t, cache.Store(loc))

	record, ok := cache.Load()
	require.True(t, ok)
	assert.Equal(t, loc, record.Location())
	assert.False(t, record.Timestamp.IsZero())
}
