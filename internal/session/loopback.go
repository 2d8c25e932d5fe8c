package session

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/mikeMule/gebeta-client/internal/models"
	"github.com/mikeMule/gebeta-client/internal/notify"
)

// LoopbackDialer is an in-memory transport standing in for the platform's
// WebSocket endpoint. The simulator pushes frames into it and the
// notification channel reads them back, so a full session can run without a
// backend. It answers authenticate frames the way the server would.
type LoopbackDialer struct {
	frames chan []byte

	mu   sync.Mutex
	conn *loopbackConn
}

func NewLoopbackDialer() *LoopbackDialer {
	return &LoopbackDialer{frames: make(chan []byte, 64)}
}

func (d *LoopbackDialer) DialContext(ctx context.Context, url string) (notify.Conn, error) {
	conn := &loopbackConn{dialer: d, closed: make(chan struct{})}
	d.mu.Lock()
	d.conn = conn
	d.mu.Unlock()
	return conn, nil
}

// Push delivers a frame to the connected channel. Frames pushed while the
// buffer is full are dropped, matching a lossy push feed.
func (d *LoopbackDialer) Push(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case d.frames <- data:
	default:
	}
}

// Drop closes the live connection, simulating a transport failure.
func (d *LoopbackDialer) Drop() {
	d.mu.Lock()
	conn := d.conn
	d.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}

type loopbackConn struct {
	dialer *LoopbackDialer
	closed chan struct{}
	once   sync.Once
}

func (c *loopbackConn) ReadMessage() (int, []byte, error) {
	select {
	case data := <-c.dialer.frames:
		return websocket.TextMessage, data, nil
	case <-c.closed:
		return 0, nil, io.EOF
	}
}

func (c *loopbackConn) WriteMessage(messageType int, data []byte) error {
	select {
	case <-c.closed:
		return io.ErrClosedPipe
	default:
	}
	var frame map[string]interface{}
	if err := json.Unmarshal(data, &frame); err == nil {
		if frame["type"] == models.MessageTypeAuthenticate {
			c.dialer.Push(map[string]string{"type": models.MessageTypeAuthSuccess})
		}
	}
	return nil
}

func (c *loopbackConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}
