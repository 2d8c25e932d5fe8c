package models

import "time"

// Location is a geographic coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CachedLocation is the last-known device location persisted locally and
// used as a geolocation fallback when the device cannot provide a fix.
type CachedLocation struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// Location converts the cached record back to a coordinate pair.
func (c CachedLocation) Location() Location {
	return Location{Lat: c.Latitude, Lng: c.Longitude}
}
