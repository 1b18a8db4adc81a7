package wshub

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/coder/websocket"

	"github.com/kamalchopra096-alt/fmi-green-bonds/internal/broadcast"
)

// Request is the JSON envelope received from clients. Every request is
// answered by exactly one Ack carrying the same Seq.
type Request struct {
	Op   string          `json:"op"`
	Seq  int64           `json:"seq"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Ack is the synchronous-style acknowledgment for one Request.
type Ack struct {
	Type  string `json:"type"` // always "ack"
	Seq   int64  `json:"seq"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// EventMessage is a server-initiated notification pushed outside the
// request/ack cycle.
type EventMessage struct {
	Type  string `json:"type"` // always "event"
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Client represents a single WebSocket connection in the hub.
type Client struct {
	Identity string
	Conn     *websocket.Conn
	Send     chan []byte
}

// WritePump reads from the Send channel and writes to the WebSocket
// connection, preserving per-recipient FIFO order.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// QueueAck enqueues a successful acknowledgment. Non-blocking: drops if the
// connection is backed up.
func (c *Client) QueueAck(seq int64, data any) {
	c.queue(Ack{Type: "ack", Seq: seq, OK: true, Data: data})
}

// QueueError enqueues a failed acknowledgment carrying the error text.
func (c *Client) QueueError(seq int64, err error) {
	c.queue(Ack{Type: "ack", Seq: seq, Error: err.Error()})
}

// QueueEvent enqueues a pushed notification.
func (c *Client) QueueEvent(name string, data any) {
	c.queue(EventMessage{Type: "event", Event: name, Data: data})
}

func (c *Client) queue(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WSHub] Marshal error: %v\n", err)
		return
	}
	select {
	case c.Send <- data:
	default:
		// Drop message if channel full
	}
}

// Forward pumps room events from a broadcast subscription into the
// connection until the subscription closes or the context ends.
func (c *Client) Forward(ctx context.Context, ch chan broadcast.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			c.QueueEvent(ev.Name, ev.Data)
		}
	}
}

// Hub tracks the process's live WebSocket connections by identity.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.Identity] = c
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(identity string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[identity]; ok {
		close(c.Send)
		delete(h.clients, identity)
	}
}

// Get returns the client for an identity, or nil.
func (h *Hub) Get(identity string) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[identity]
}

// Count returns the number of live connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
