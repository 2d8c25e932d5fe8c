package api

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/mikeMule/gebeta-client/internal/models"
)

// locationCacheFile is the fixed key the last-known device location lives
// under, relative to the user cache directory.
const locationCacheFile = "gebeta/last_location.json"

// LocationCache persists the last-known device location so the app can fall
// back to it when no live fix is available. It holds exactly one record.
type LocationCache struct {
	path string
}

// NewLocationCache builds a cache at the configured path, defaulting to the
// fixed key under the user cache directory.
func NewLocationCache(cfg *models.Config) (*LocationCache, error) {
	path := ""
	if cfg != nil {
		path = cfg.LocationCachePath
	}
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return nil, errors.Wrap(err, "resolving user cache dir")
		}
		path = filepath.Join(dir, filepath.FromSlash(locationCacheFile))
	}
	return &LocationCache{path: path}, nil
}

// Store writes the location with the current timestamp.
func (lc *LocationCache) Store(loc models.Location) error {
	record := models.CachedLocation{
		Latitude:  loc.Lat,
		Longitude: loc.Lng,
		Timestamp: time.Now(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "encoding cached location")
	}
	if err := os.MkdirAll(filepath.Dir(lc.path), 0o755); err != nil {
		return errors.Wrap(err, "creating cache dir")
	}
	if err := os.WriteFile(lc.path, data, 0o644); err != nil {
		return errors.Wrap(err, "writing cached location")
	}
	return nil
}

// Load returns the cached location, if any. A missing or unreadable cache is
// not an error, just an absent fallback.
func (lc *LocationCache) Load() (models.CachedLocation, bool) {
	data, err := os.ReadFile(lc.path)
	if err != nil {
		return models.CachedLocation{}, false
	}
	var record models.CachedLocation
	if err := json.Unmarshal(data, &record); err != nil {
		return models.CachedLocation{}, false
	}
	return record, true
}
