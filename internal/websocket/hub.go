package feedws

import (
	"context"
	"encoding/json"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Event is one change notification pushed to every connected client.
type Event struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	Payload   any    `json:"payload,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Hub fans committed store changes out to websocket subscribers. All client
// bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Event
	done       chan struct{}
	logger     *zap.Logger
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Event, 64),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 32),
	}
}

// Run serves registrations and broadcasts until ctx is canceled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
		case client := <-h.unregister:
			if _, exists := h.clients[client]; exists {
				delete(h.clients, client)
				close(client.send)
			}
		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

// Publish queues an event without blocking. Events are dropped when the
// queue is full or the hub has stopped.
func (h *Hub) Publish(eventType, id string, payload any) {
	event := &Event{
		Type:      eventType,
		ID:        id,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("event feed queue full, dropping event", zap.String("type", eventType), zap.String("id", id))
	}
}

func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) deliver(event *Event) {
	encoded, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("event feed encode failed", zap.String("type", event.Type), zap.Error(err))
		return
	}

	for client := range h.clients {
		select {
		case client.send <- encoded:
		default:
			// Slow subscribers are cut off rather than stalling the feed.
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// UpgradeRequired rejects plain HTTP requests to the feed endpoint.
func UpgradeRequired(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// Handler upgrades the connection and streams events until the client leaves.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := NewClient(h, conn)
		if !h.Register(client) {
			_ = conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}

// ReadPump discards inbound frames; the feed is read-only. It returns when
// the connection closes.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
