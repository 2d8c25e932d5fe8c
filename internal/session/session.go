// Package session wires the client core together: one cart store, one
// notification channel and one API client per user session, constructed
// explicitly and handed to whoever owns the session. It also hosts the
// session simulator used by the CLI.
package session

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/lucsky/cuid"
	"github.com/sirupsen/logrus"

	"github.com/mikeMule/gebeta-client/internal/api"
	"github.com/mikeMule/gebeta-client/internal/cart"
	"github.com/mikeMule/gebeta-client/internal/models"
	"github.com/mikeMule/gebeta-client/internal/notify"
)

// Session is the per-user client state: the order draft, the realtime
// channel and the backend client. Nothing here is a package global; the
// lifecycle is Start → use → Close.
type Session struct {
	Config  *models.Config
	Cart    *cart.Store
	Channel *notify.Channel
	API     *api.Client

	log  logrus.FieldLogger
	sink OutputDestination
}

// SessionOption configures a Session.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	log        logrus.FieldLogger
	sink       OutputDestination
	dialer     notify.Dialer
	httpClient *http.Client
	handler    notify.Handler
}

// WithLogger sets the session logger.
func WithLogger(log logrus.FieldLogger) SessionOption {
	return func(sc *sessionConfig) { sc.log = log }
}

// WithSink routes session events (orders, cart activity) to a destination.
func WithSink(sink OutputDestination) SessionOption {
	return func(sc *sessionConfig) { sc.sink = sink }
}

// WithDialer overrides the notification channel transport.
func WithDialer(d notify.Dialer) SessionOption {
	return func(sc *sessionConfig) { sc.dialer = d }
}

// WithHTTPClient overrides the API client's HTTP client.
func WithHTTPClient(client *http.Client) SessionOption {
	return func(sc *sessionConfig) { sc.httpClient = client }
}

// WithNotificationHandler registers a callback for surfaced notifications.
func WithNotificationHandler(h notify.Handler) SessionOption {
	return func(sc *sessionConfig) { sc.handler = h }
}

// NewSession assembles a session from configuration.
func NewSession(cfg *models.Config, opts ...SessionOption) *Session {
	sc := &sessionConfig{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(sc)
	}

	notifyOpts := []notify.Option{notify.WithLogger(sc.log)}
	if sc.dialer != nil {
		notifyOpts = append(notifyOpts, notify.WithDialer(sc.dialer))
	}
	if sc.handler != nil {
		notifyOpts = append(notifyOpts, notify.WithHandler(sc.handler))
	}

	return &Session{
		Config:  cfg,
		Cart:    cart.NewStore(cfg),
		Channel: notify.New(cfg, notifyOpts...),
		API:     api.NewClient(cfg, sc.httpClient, sc.log),
		log:     sc.log,
		sink:    sc.sink,
	}
}

// Start brings the realtime channel up.
func (s *Session) Start(ctx context.Context) {
	s.Channel.Start(ctx)
}

// Close tears the session down, closing the channel and any event sink.
func (s *Session) Close() {
	s.Channel.Close()
	if s.sink != nil {
		if err := s.sink.Close(); err != nil {
			s.log.WithError(err).Warn("closing session sink")
		}
	}
}

// OrderEvent is the session event emitted when an order is placed.
type OrderEvent struct {
	OrderID  string           `json:"order_id"`
	PlacedAt time.Time        `json:"placed_at"`
	Cart     models.CartState `json:"cart"`
}

// Checkout places the current order draft. An empty cart places nothing. On
// success the draft is cleared, which is the only cart reset the session
// performs on the user's behalf.
func (s *Session) Checkout() (OrderEvent, bool) {
	state := s.Cart.State()
	if state.IsEmpty() {
		return OrderEvent{}, false
	}

	event := OrderEvent{
		OrderID:  cuid.New(),
		PlacedAt: time.Now(),
		Cart:     state,
	}
	s.emit(models.TopicOrderEvents, event)
	s.Cart.Clear()
	return event, true
}

func (s *Session) emit(topic string, event interface{}) {
	if s.sink == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		s.log.WithError(err).Warn("cannot encode session event")
		return
	}
	if err := s.sink.WriteMessage(topic, data); err != nil {
		s.log.WithError(err).WithField("topic", topic).Warn("cannot write session event")
	}
}
