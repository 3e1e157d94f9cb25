// Package notify pushes newly created orders to connected admin dashboards.
package notify

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-storefront/internal/orders"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 32
	fetchWait  = 5 * time.Second
)

const (
	FrameSnapshot = "snapshot"
	FrameOrder    = "order"
	FrameError    = "error"
)

// Frame is what a dashboard receives over the socket.
type Frame struct {
	Type   string         `json:"type"`
	Orders []orders.Order `json:"orders,omitempty"`
	Order  *orders.Order  `json:"order,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Fetcher returns the authoritative order list; *orders.Admin satisfies it.
type Fetcher interface {
	All(ctx context.Context) ([]orders.Order, error)
}

// Deduper reports whether an event id was already handled; *redisx.Deduper
// satisfies it.
type Deduper interface {
	Seen(ctx context.Context, id string) (bool, error)
}

type client struct {
	conn *websocket.Conn
	list *orders.LiveList
	send chan Frame
}

type Hub struct {
	Orders   Fetcher
	Dedup    Deduper
	Upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub(f Fetcher, d Deduper) *Hub {
	return &Hub{
		Orders: f,
		Dedup:  d,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// HandleOrderCreated is the Kafka handler for order.created. Returning nil
// lets the consumer commit the offset.
func (h *Hub) HandleOrderCreated(ctx context.Context, m kafkago.Message) error {
	env, o, ok, err := orders.DecodeOrderCreated(m.Value)
	if err != nil {
		log.Printf("[feed] skipping undecodable message at offset %d: %v", m.Offset, err)
		return nil
	}
	if !ok {
		return nil
	}
	if h.Dedup != nil {
		seen, err := h.Dedup.Seen(ctx, env.EventID)
		if err != nil {
			log.Printf("[feed] dedup %s: %v", env.EventID, err)
		} else if seen {
			return nil
		}
	}
	n := h.Broadcast(o)
	log.Printf("[feed] order %s pushed to %d dashboard(s)", o.ID, n)
	return nil
}

// Broadcast appends o to every connected list and reports how many
// dashboards did not already have it.
func (h *Hub) Broadcast(o orders.Order) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for c := range h.clients {
		if !c.list.Append(o) {
			continue
		}
		order := o
		if h.enqueue(c, Frame{Type: FrameOrder, Order: &order}) {
			n++
		}
	}
	return n
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request, sends the current order list and then
// streams new orders. A "refresh" message from the dashboard triggers a full
// fetch reconciled into its list.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[feed] upgrade: %v", err)
		return
	}
	c := &client{conn: conn, list: orders.NewLiveList(nil), send: make(chan Frame, sendBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(c)
	h.refresh(r.Context(), c)
	h.readLoop(c)
}

func (h *Hub) refresh(ctx context.Context, c *client) {
	ctx, cancel := context.WithTimeout(ctx, fetchWait)
	defer cancel()

	mark := c.list.Mark()
	all, err := h.Orders.All(ctx)
	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		log.Printf("[feed] refresh: %v", err)
		h.enqueue(c, Frame{Type: FrameError, Error: "could not load orders"})
		return
	}
	c.list.ReconcileSince(mark, all)
	h.enqueue(c, Frame{Type: FrameSnapshot, Orders: c.list.Snapshot()})
}

func (h *Hub) readLoop(c *client) {
	defer h.drop(c)

	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if isRefresh(msg) {
			h.refresh(context.Background(), c)
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case f, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(f); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// enqueue must be called with h.mu held. A dashboard that cannot keep up is
// disconnected; it reloads the full list when it reconnects.
func (h *Hub) enqueue(c *client, f Frame) bool {
	if _, ok := h.clients[c]; !ok {
		return false
	}
	select {
	case c.send <- f:
		return true
	default:
		log.Printf("[feed] dashboard too slow, disconnecting")
		delete(h.clients, c)
		close(c.send)
		return false
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func isRefresh(msg []byte) bool {
	s := strings.TrimSpace(string(msg))
	if strings.EqualFold(s, "refresh") {
		return true
	}
	var req struct {
		Type string `json:"type"`
	}
	return json.Unmarshal(msg, &req) == nil && req.Type == "refresh"
}
