// SPDX-License-Identifier: MIT

package stream

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultWriteTimeout bounds a single frame write to one viewer.
const DefaultWriteTimeout = 5 * time.Second

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the hub logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("stream: WithLogger: logger must not be nil")
	}

	return func(h *Hub) { h.logger = l }
}

// WithWriteTimeout sets the per-viewer write deadline. Panics on d <= 0.
func WithWriteTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("stream: WithWriteTimeout: timeout must be positive")
	}

	return func(h *Hub) { h.writeTimeout = d }
}

// viewer is one connected client; mu serialises writes to conn.
type viewer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (v *viewer) write(msg []byte, timeout time.Duration) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.writeLocked(msg, timeout)
}

// writeLocked writes msg; the caller holds v.mu.
func (v *viewer) writeLocked(msg []byte, timeout time.Duration) error {
	_ = v.conn.SetWriteDeadline(time.Now().Add(timeout))

	return v.conn.WriteMessage(websocket.BinaryMessage, msg)
}

// Hub fans frames out to every connected viewer. It is safe for
// concurrent use.
type Hub struct {
	upgrader     websocket.Upgrader
	logger       *slog.Logger
	writeTimeout time.Duration

	mu      sync.RWMutex
	viewers map[*websocket.Conn]*viewer
	latest  []byte // last broadcast message, sent to new viewers
	closed  bool
}

// NewHub returns an empty hub accepting any origin.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		writeTimeout: DefaultWriteTimeout,
		viewers:      make(map[*websocket.Conn]*viewer),
	}
	for _, o := range opts {
		o(h)
	}

	return h
}

// ServeHTTP upgrades the request and keeps the viewer registered until the
// connection fails or the hub is closed.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	closed := h.closed
	h.mu.RUnlock()
	if closed {
		http.Error(w, ErrClosed.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	v := &viewer{conn: conn}
	if err = h.register(v); err != nil {
		h.logger.Warn("viewer rejected", "remote", r.RemoteAddr, "err", err)
		h.drop(conn)
		return
	}
	defer h.drop(conn)
	h.logger.Info("viewer connected", "remote", r.RemoteAddr)

	for {
		if _, _, err = conn.ReadMessage(); err != nil {
			h.logger.Debug("viewer gone", "remote", r.RemoteAddr, "err", err)
			return
		}
	}
}

// register adds v and sends it the latest frame. v.mu is taken before the
// hub lock is released, so a concurrent Broadcast reaches v only after the
// latest frame; the write itself happens outside the hub lock.
func (h *Hub) register(v *viewer) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrClosed
	}
	latest := h.latest
	v.mu.Lock()
	h.viewers[v.conn] = v
	h.mu.Unlock()
	defer v.mu.Unlock()

	if latest == nil {
		return nil
	}

	return v.writeLocked(latest, h.writeTimeout)
}

// drop unregisters and closes conn. Safe to call more than once.
func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.viewers, conn)
	h.mu.Unlock()
	conn.Close()
}

// Broadcast encodes f once and writes it to every viewer. Viewers whose
// write fails are dropped. Returns the number of viewers reached.
func (h *Hub) Broadcast(f Frame) (int, error) {
	msg, err := f.Marshal()
	if err != nil {
		return 0, fmt.Errorf("Broadcast: %w", err)
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return 0, fmt.Errorf("Broadcast: %w", ErrClosed)
	}
	h.latest = msg
	targets := make([]*viewer, 0, len(h.viewers))
	for _, v := range h.viewers {
		targets = append(targets, v)
	}
	h.mu.Unlock()

	sent := 0
	for _, v := range targets {
		if err := v.write(msg, h.writeTimeout); err != nil {
			h.logger.Warn("websocket write failed", "remote", v.conn.RemoteAddr().String(), "err", err)
			h.drop(v.conn)
			continue
		}
		sent++
	}

	return sent, nil
}

// Clients returns the number of registered viewers.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.viewers)
}

// Close disconnects every viewer and rejects new ones.
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	conns := make([]*websocket.Conn, 0, len(h.viewers))
	for c := range h.viewers {
		conns = append(conns, c)
	}
	h.viewers = make(map[*websocket.Conn]*viewer)
	h.mu.Unlock()

	for _, c := range conns {
		_ = c.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		c.Close()
	}

	return nil
}
