// Package feed pushes new-order events to the admin dashboards connected
// over websockets. Delivery is best-effort: no queueing, no replay for late
// joiners, and a connection that fails a write is dropped on the spot.
package feed

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/zingamazing/zing-orders/internal/order"
)

const (
	EventNewOrder     = "new_order"
	EventPaymentEvent = "payment_event"
)

type Event struct {
	Type    string          `json:"type"`
	Order   *order.Order    `json:"order,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Conn is the subset of *websocket.Conn the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type Client struct {
	conn Conn
	mu   sync.Mutex // one writer at a time per connection
}

func (c *Client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub is the registry of live admin viewers. All access to the connection
// set goes through its mutex.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) Register(conn Conn) *Client {
	c := &Client{conn: conn}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	log.Printf("[feed] admin connected, %d live", n)
	return c
}

func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		_ = c.conn.Close()
		log.Printf("[feed] admin disconnected, %d live", n)
	}
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast serializes ev once and writes it to every live connection.
// Connections whose write fails are deregistered before Broadcast returns.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[feed] marshal %s event: %v", ev.Type, err)
		return
	}

	h.mu.Lock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	for _, c := range targets {
		if err := c.write(data); err != nil {
			log.Printf("[feed] write failed, dropping connection: %v", err)
			h.Remove(c)
		}
	}
}
