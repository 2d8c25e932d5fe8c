// Package notify implements the real-time notification channel: a single
// auto-reconnecting WebSocket connection driven by one owning goroutine
// running an explicit connection state machine. Incoming JSON frames become
// dismissible notifications; outbound sends are best-effort and never queued.
package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lucsky/cuid"
	"github.com/sirupsen/logrus"

	"github.com/mikeMule/gebeta-client/internal/models"
)

const defaultRetryDelay = 5 * time.Second

// Handler receives notifications as they arrive, after they have been added
// to the channel's own list.
type Handler func(models.NotificationMessage)

// Conn is the transport surface the channel needs. *websocket.Conn satisfies
// it; tests inject in-memory fakes.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Dialer opens a transport connection to the given URL.
type Dialer interface {
	DialContext(ctx context.Context, url string) (Conn, error)
}

type gorillaDialer struct{}

func (gorillaDialer) DialContext(ctx context.Context, url string) (Conn, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return nil, err
	}
	return conn, nil
}

// Channel owns exactly one transport connection at a time and reconnects with
// a fixed delay, unbounded, for as long as it is running. Reconnect attempts
// are suppressed while the host surface is hidden and resume immediately when
// it becomes visible again.
type Channel struct {
	cfg        *models.Config
	log        logrus.FieldLogger
	dialer     Dialer
	handler    Handler
	retryDelay time.Duration

	mu            sync.Mutex
	conn          Conn
	state         models.ConnectionState
	visible       bool
	lastMessage   *models.NotificationMessage
	notifications []models.NotificationMessage

	states chan models.ConnectionState
	wake   chan struct{}

	startOnce sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

// Option configures a Channel.
type Option func(*Channel)

// WithDialer replaces the default WebSocket dialer.
func WithDialer(d Dialer) Option {
	return func(c *Channel) { c.dialer = d }
}

// WithHandler registers a callback invoked for every surfaced notification.
func WithHandler(h Handler) Option {
	return func(c *Channel) { c.handler = h }
}

// WithLogger replaces the default logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Channel) { c.log = log }
}

// New creates a channel for the configured WebSocket endpoint. The channel is
// idle until Start is called.
func New(cfg *models.Config, opts ...Option) *Channel {
	c := &Channel{
		cfg:        cfg,
		log:        logrus.StandardLogger(),
		dialer:     gorillaDialer{},
		retryDelay: defaultRetryDelay,
		state:      models.StateDisconnected,
		visible:    true,
		states:     make(chan models.ConnectionState, 64),
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	if cfg.RetryDelay > 0 {
		c.retryDelay = cfg.RetryDelay
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start launches the connection loop. It may be called once; the loop runs
// until Close or until ctx is cancelled.
func (c *Channel) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		ctx, c.cancel = context.WithCancel(ctx)
		go c.run(ctx)
	})
}

// Close stops the loop and closes the live transport. Safe to call even if
// Start was never invoked.
func (c *Channel) Close() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()
	<-c.done
}

func (c *Channel) run(ctx context.Context) {
	defer close(c.done)
	for {
		if ctx.Err() != nil {
			return
		}
		c.setState(models.StateConnecting)
		conn, err := c.dialer.DialContext(ctx, c.cfg.WebSocketURL)
		if err != nil {
			c.log.WithError(err).WithField("url", c.cfg.WebSocketURL).Warn("notification channel connect failed")
			c.setState(models.StateDisconnected)
			if !c.waitRetry(ctx) {
				return
			}
			continue
		}

		if ctx.Err() != nil {
			conn.Close()
			return
		}
		c.adoptConn(conn)
		c.setState(models.StateConnected)
		c.authenticate()
		c.readLoop(conn)

		c.releaseConn(conn)
		c.setState(models.StateDisconnected)
		if !c.waitRetry(ctx) {
			return
		}
	}
}

// adoptConn installs the new transport, explicitly closing any prior one so
// the channel never holds two live connections.
func (c *Channel) adoptConn(conn Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.conn.Close()
	}
	c.conn = conn
}

func (c *Channel) releaseConn(conn Conn) {
	conn.Close()
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	c.mu.Unlock()
}

func (c *Channel) readLoop(conn Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.log.WithError(err).Debug("notification channel read ended")
			return
		}
		c.handleFrame(data)
	}
}

// waitRetry blocks for the fixed retry delay, then for as long as the surface
// stays hidden. Returns false when the loop should exit.
func (c *Channel) waitRetry(ctx context.Context) bool {
	// Drop any wake signal left over from a visibility toggle that happened
	// while connected.
	select {
	case <-c.wake:
	default:
	}

	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	case <-c.wake:
	}
	for !c.isVisible() {
		select {
		case <-ctx.Done():
			return false
		case <-c.wake:
		}
	}
	return ctx.Err() == nil
}

// SetVisible tells the channel whether the host page or screen is currently
// visible. Becoming visible while disconnected triggers an immediate
// reconnect attempt instead of waiting out the retry delay.
func (c *Channel) SetVisible(visible bool) {
	c.mu.Lock()
	wasVisible := c.visible
	c.visible = visible
	c.mu.Unlock()
	if visible && !wasVisible {
		select {
		case c.wake <- struct{}{}:
		default:
		}
	}
}

func (c *Channel) isVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

func (c *Channel) authenticate() {
	auth := models.AuthPayload{
		Type:         models.MessageTypeAuthenticate,
		UserID:       c.cfg.UserID,
		UserType:     c.cfg.UserType,
		RestaurantID: c.cfg.RestaurantID,
	}
	if !auth.HasIdentity() {
		return
	}
	if !c.SendMessage(auth) {
		c.log.Warn("failed to send authenticate frame")
	}
}

// inboundFrame tolerates the loose shapes the server emits: the timestamp may
// be an RFC 3339 string, epoch milliseconds, or absent.
type inboundFrame struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Timestamp json.RawMessage `json:"timestamp"`
}

func (c *Channel) handleFrame(data []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		c.log.WithError(err).Warn("discarding malformed notification frame")
		return
	}
	if frame.Type == models.MessageTypeAuthSuccess {
		c.log.Debug("notification channel authenticated")
		return
	}

	msg := models.NotificationMessage{
		ID:        frame.ID,
		Type:      frame.Type,
		Title:     frame.Title,
		Message:   frame.Message,
		Timestamp: parseTimestamp(frame.Timestamp),
	}
	if msg.ID == "" {
		msg.ID = cuid.New()
	}

	c.mu.Lock()
	c.lastMessage = &msg
	surfaced := msg.Title != "" && msg.Message != ""
	if surfaced {
		c.notifications = append([]models.NotificationMessage{msg}, c.notifications...)
	}
	handler := c.handler
	c.mu.Unlock()

	if surfaced && handler != nil {
		handler(msg)
	}
}

func parseTimestamp(raw json.RawMessage) time.Time {
	if len(raw) > 0 {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if ts, err := time.Parse(time.RFC3339, s); err == nil {
				return ts
			}
		}
		var millis int64
		if err := json.Unmarshal(raw, &millis); err == nil && millis > 0 {
			return time.UnixMilli(millis)
		}
	}
	return time.Now()
}

// SendMessage transmits a payload while connected. Non-string payloads are
// JSON-serialized. Returns false, without queueing, when the channel is not
// connected or the write fails.
func (c *Channel) SendMessage(payload interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != models.StateConnected || c.conn == nil {
		return false
	}

	var data []byte
	switch p := payload.(type) {
	case string:
		data = []byte(p)
	case []byte:
		data = p
	default:
		encoded, err := json.Marshal(payload)
		if err != nil {
			c.log.WithError(err).Warn("cannot serialize outbound message")
			return false
		}
		data = encoded
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.log.WithError(err).Warn("websocket write failed")
		return false
	}
	return true
}

func (c *Channel) setState(state models.ConnectionState) {
	c.mu.Lock()
	if c.state == state {
		c.mu.Unlock()
		return
	}
	c.state = state
	c.mu.Unlock()

	c.log.WithField("state", state.String()).Debug("notification channel state change")
	select {
	case c.states <- state:
	default:
	}
}

// State returns the current connection state.
func (c *Channel) State() models.ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// States exposes the stream of state transitions. The channel is buffered;
// a full buffer drops transitions rather than blocking the loop.
func (c *Channel) States() <-chan models.ConnectionState {
	return c.states
}

// LastMessage returns the most recent non-auth message, surfaced or not.
func (c *Channel) LastMessage() (models.NotificationMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastMessage == nil {
		return models.NotificationMessage{}, false
	}
	return *c.lastMessage, true
}

// Notifications returns the notification list, newest first.
func (c *Channel) Notifications() []models.NotificationMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.NotificationMessage, len(c.notifications))
	copy(out, c.notifications)
	return out
}

// ClearNotification removes a single notification by id.
func (c *Channel) ClearNotification(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.notifications[:0:0]
	for _, n := range c.notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	c.notifications = kept
}

// ClearAllNotifications empties the notification list.
func (c *Channel) ClearAllNotifications() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = nil
}
