// Package socket is the WebSocket adapter: one duplex connection per use
// site, torn down when the owning screen goes away. Incoming frames are
// republished on the bus as socket.* events; connection errors are logged
// and end the pump, they are not surfaced to the user.
package socket

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/codecircle/cctui/internal/bus"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const pingInterval = 30 * time.Second

// Inbound is the bus payload for received frames. Origin names the
// connection that produced the frame, so the shell's long-lived socket
// and a chat screen's socket can be told apart by subscribers.
type Inbound struct {
	Origin string
	Raw    []byte
}

// Conn is one live connection to the relay server.
type Conn struct {
	ws     *websocket.Conn
	origin string
	bus    *bus.Bus
	logger *zap.Logger

	writeMu   sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

// Dial opens a connection and starts its read pump. Frames arrive on the
// bus as "socket.<event>" with an Inbound payload.
func Dial(ctx context.Context, url, origin string, b *bus.Bus, logger *zap.Logger) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, WireURL(url), nil)
	if err != nil {
		return nil, err
	}
	c := &Conn{
		ws:     ws,
		origin: origin,
		bus:    b,
		logger: logger,
		done:   make(chan struct{}),
	}
	go c.readPump()
	go c.keepalive()
	return c, nil
}

// WireURL rewrites an http(s) base URL to its ws(s) form. Already-ws URLs
// pass through.
func WireURL(url string) string {
	switch {
	case strings.HasPrefix(url, "https://"):
		return "wss://" + strings.TrimPrefix(url, "https://")
	case strings.HasPrefix(url, "http://"):
		return "ws://" + strings.TrimPrefix(url, "http://")
	}
	return url
}

func (c *Conn) readPump() {
	for {
		var env Envelope
		if err := c.ws.ReadJSON(&env); err != nil {
			select {
			case <-c.done:
			default:
				c.logger.Warn("socket read failed", zap.Error(err), zap.String("origin", c.origin))
			}
			c.bus.Publish(bus.Event{
				Kind:      bus.SocketClosed,
				Timestamp: time.Now(),
				Payload:   Inbound{Origin: c.origin},
			})
			return
		}
		if env.Event == "" {
			continue
		}
		c.bus.Publish(bus.Event{
			Kind:      "socket." + env.Event,
			Timestamp: time.Now(),
			Payload:   Inbound{Origin: c.origin, Raw: env.Payload},
		})
	}
}

func (c *Conn) keepalive() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.writeMu.Lock()
			err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// Emit sends one event frame. Failed sends are fire-and-forget from the
// caller's point of view; the error is returned for logging only.
func (c *Conn) Emit(event string, payload any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteJSON(struct {
		Event   string `json:"event"`
		Payload any    `json:"payload,omitempty"`
	}{Event: event, Payload: payload})
}

// Close tears the connection down. Idempotent; the read pump exits on the
// closed socket.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.writeMu.Lock()
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()
		_ = c.ws.Close()
	})
}
