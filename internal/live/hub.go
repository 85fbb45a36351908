package live

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"vocamaster/internal/store"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// The upgrader's default CheckOrigin rejects cross-origin upgrades, so
// only same-origin pages can open the cookie-authenticated socket.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Frame is one push to a connected client: the full current contents of
// a collection. Clients replace their local copy wholesale, they never
// patch.
type Frame struct {
	Collection string      `json:"collection"`
	Records    interface{} `json:"records"`
}

// Hub fans collection updates out to websocket clients. Each client
// holds its own store subscriptions, so a fresh connection receives a
// snapshot of every collection before any change frames.
type Hub struct {
	store store.Store

	mu      sync.Mutex
	clients map[*client]bool
}

type client struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	done        chan struct{}
	unsubscribe []func()
}

// NewHub creates a hub over the given store
func NewHub(st store.Store) *Hub {
	return &Hub{
		store:   st,
		clients: make(map[*client]bool),
	}
}

// ServeWs upgrades the request and streams all four collections to the
// client until it disconnects.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 64),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	for _, kind := range store.Kinds {
		kind := kind
		cancel := h.store.Subscribe(kind, func(records interface{}) {
			c.push(string(kind), records)
		})
		c.unsubscribe = append(c.unsubscribe, cancel)
	}

	go c.writePump()
	go c.readPump()
}

// ClientCount reports the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Stop closes every client connection.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.detach(c)
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	h.detach(c)
}

// detach must be called with h.mu held. The send channel stays open:
// a notify callback copied out of the store before the unsubscribe may
// still fire after detach, so writePump exits on done instead of a
// channel close.
func (h *Hub) detach(c *client) {
	for _, cancel := range c.unsubscribe {
		cancel()
	}
	close(c.done)
	delete(h.clients, c)
}

// push queues a frame without blocking. A client that cannot keep up
// loses frames rather than stalling the store's notifier, and a client
// already detached drops the frame outright.
func (c *client) push(collection string, records interface{}) {
	select {
	case <-c.done:
		return
	default:
	}
	payload, err := json.Marshal(Frame{Collection: collection, Records: records})
	if err != nil {
		log.Printf("Failed to encode %s frame: %v", collection, err)
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

// readPump discards client messages; the socket is push-only. It exists
// to process pongs and detect disconnects.
func (c *client) readPump() {
	defer func() {
		c.hub.drop(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket unexpected close: %v", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
