// Package stream serves a live countdown to browsers and other clients over
// WebSocket, with a plain JSON snapshot endpoint next to it.
package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mrz1836/countdown/internal/countdown"
)

// Message types sent to clients.
const (
	// TypeTick carries the breakdown after a sampler tick.
	TypeTick = "tick"
	// TypeExpired is sent instead of TypeTick once the deadline has passed.
	TypeExpired = "expired"
)

// Message is the JSON frame pushed to every client.
type Message struct {
	Type   string              `json:"type"`
	Data   countdown.Remaining `json:"data"`
	Target time.Time           `json:"target"`
	SentAt time.Time           `json:"sent_at"`
}

// HubConfig holds configuration for WebSocket connections.
type HubConfig struct {
	WriteTimeout   time.Duration
	ReadTimeout    time.Duration
	PingInterval   time.Duration
	MaxMessageSize int64
	SendBuffer     int
	AllowedOrigins []string
}

// DefaultHubConfig returns the default WebSocket configuration.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		WriteTimeout:   10 * time.Second,
		ReadTimeout:    60 * time.Second,
		PingInterval:   30 * time.Second,
		MaxMessageSize: 512,
		SendBuffer:     16,
		AllowedOrigins: []string{"*"},
	}
}

// Hub fans countdown updates out to connected WebSocket clients.
type Hub struct {
	cd       *countdown.Countdown
	config   HubConfig
	upgrader websocket.Upgrader
	logger   zerolog.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool

	broadcastCh chan Message
	unsubscribe func()
	closeOnce   sync.Once
}

// client is one WebSocket connection.
type client struct {
	id          string
	conn        *websocket.Conn
	send        chan []byte
	hub         *Hub
	connectedAt time.Time
	// since is the SentAt of the snapshot; updates not newer are skipped
	since time.Time
}

// NewHub creates a Hub subscribed to cd. Updates are queued until Run
// drains them.
func NewHub(cd *countdown.Countdown, config HubConfig, logger zerolog.Logger) *Hub {
	defaults := DefaultHubConfig()
	if config.SendBuffer <= 0 {
		config.SendBuffer = defaults.SendBuffer
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = defaults.WriteTimeout
	}
	if config.ReadTimeout <= 0 {
		config.ReadTimeout = defaults.ReadTimeout
	}
	if config.PingInterval <= 0 {
		config.PingInterval = defaults.PingInterval
	}
	if config.MaxMessageSize <= 0 {
		config.MaxMessageSize = defaults.MaxMessageSize
	}

	h := &Hub{
		cd:          cd,
		config:      config,
		logger:      logger.With().Str("component", "stream_hub").Logger(),
		clients:     make(map[*client]struct{}),
		broadcastCh: make(chan Message, config.SendBuffer),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	h.unsubscribe = cd.Subscribe(h.enqueue)
	return h
}

// Snapshot returns the message a newly connected client receives.
func (h *Hub) Snapshot() Message {
	r, at := h.cd.Sample()
	return h.messageAt(r, at)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run broadcasts queued updates until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) error {
	h.logger.Info().Msg("stream hub started")
	defer h.Close()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Msg("stream hub shutting down")
			return nil
		case msg := <-h.broadcastCh:
			h.broadcast(msg)
		}
	}
}

// Close unsubscribes from the countdown and disconnects all clients.
// It is safe to call more than once.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		h.unsubscribe()

		h.mu.Lock()
		h.closed = true
		clients := make([]*client, 0, len(h.clients))
		for c := range h.clients {
			clients = append(clients, c)
		}
		h.mu.Unlock()

		for _, c := range clients {
			h.unregister(c)
		}
	})
}

// ServeWS upgrades the request and streams updates to the new client,
// starting with the current snapshot.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("failed to upgrade websocket connection")
		return
	}

	current := h.Snapshot()
	c := &client{
		id:          uuid.NewString(),
		conn:        conn,
		send:        make(chan []byte, h.config.SendBuffer),
		hub:         h,
		connectedAt: time.Now(),
		since:       current.SentAt,
	}

	snapshot, err := json.Marshal(current)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal snapshot")
		_ = conn.Close()
		return
	}
	c.send <- snapshot

	if !h.register(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(h.config.WriteTimeout))
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// enqueue runs on the countdown's tick goroutine and never blocks it.
func (h *Hub) enqueue(r countdown.Remaining) {
	select {
	case h.broadcastCh <- h.message(r):
	default:
		h.logger.Warn().Msg("broadcast queue full, dropping update")
	}
}

func (h *Hub) message(r countdown.Remaining) Message {
	return h.messageAt(r, h.cd.Now())
}

func (h *Hub) messageAt(r countdown.Remaining, at time.Time) Message {
	msgType := TypeTick
	if r.IsExpired {
		msgType = TypeExpired
	}
	return Message{
		Type:   msgType,
		Data:   r,
		Target: h.cd.Target(),
		SentAt: at,
	}
}

func (h *Hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal update")
		return
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if !msg.SentAt.After(c.since) {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.logger.Warn().Str("client_id", c.id).Msg("client send buffer full, closing connection")
			h.unregister(c)
		}
	}

	h.logger.Debug().
		Str("type", msg.Type).
		Int("clients", len(targets)).
		Msg("update broadcasted")
}

// register adds c unless the hub is closed.
func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return false
	}
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info().
		Str("client_id", c.id).
		Int("total_clients", total).
		Msg("websocket client connected")
	return true
}

// unregister removes c and closes its send channel once.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.mu.Unlock()

	h.logger.Info().
		Str("client_id", c.id).
		Dur("connected_for", time.Since(c.connectedAt)).
		Msg("websocket client disconnected")
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return slices.Contains(h.config.AllowedOrigins, "*") || slices.Contains(h.config.AllowedOrigins, origin)
}

// writePump is the only writer to the connection.
func (c *client) writePump() {
	ticker := time.NewTicker(c.hub.config.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
		c.hub.unregister(c)
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.logger.Debug().Err(err).Str("client_id", c.id).Msg("failed to write message")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.hub.logger.Debug().Err(err).Str("client_id", c.id).Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump consumes control frames. Clients have nothing to say, so any
// data frame is ignored.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.config.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn().Err(err).Str("client_id", c.id).Msg("unexpected websocket close")
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	}
}
