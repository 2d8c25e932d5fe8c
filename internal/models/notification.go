package models

import "time"

// ConnectionState describes the notification channel's transport state.
type ConnectionState int

const (
	StateConnecting ConnectionState = iota
	StateConnected
	StateDisconnected
)

func (s ConnectionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// NotificationMessage is a push-style message surfaced to the user. Messages
// arrive as JSON frames on the notification channel; only frames carrying both
// a title and a message body are promoted into the notification list.
type NotificationMessage struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// AuthPayload is the first outbound frame on a freshly opened channel,
// sent only when at least one identity field is known.
type AuthPayload struct {
	Type         string `json:"type"`
	UserID       string `json:"userId,omitempty"`
	UserType     string `json:"userType,omitempty"`
	RestaurantID string `json:"restaurantId,omitempty"`
}

// HasIdentity reports whether any identity field is set.
func (a AuthPayload) HasIdentity() bool {
	return a.UserID != "" || a.UserType != "" || a.RestaurantID != ""
}
