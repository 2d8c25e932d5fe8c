package models

const (
	MessageTypeAuthenticate = "authenticate"
	MessageTypeAuthSuccess  = "authentication_success"
	MessageTypeOrderUpdate  = "order_update"
	MessageTypePromotion    = "promotion"

	TopicCartEvents         = "cart_events"
	TopicOrderEvents        = "order_events"
	TopicNotificationEvents = "notification_events"

	// FallbackLocationName is returned when reverse geocoding fails.
	FallbackLocationName = "Location unavailable"
)
