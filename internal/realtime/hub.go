// Package realtime pushes booking events to websocket clients so seat maps
// can refresh without polling.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"smartparking/internal/domain/models"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer = 32
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Filter narrows the events a client receives. Empty fields match anything.
type Filter struct {
	LocationID  string
	ZoneID      string
	BookingDate string
}

func (f Filter) match(ev models.SeatEvent) bool {
	return (f.LocationID == "" || f.LocationID == ev.LocationID) &&
		(f.ZoneID == "" || f.ZoneID == ev.ZoneID) &&
		(f.BookingDate == "" || f.BookingDate == ev.BookingDate)
}

type client struct {
	conn   *websocket.Conn
	filter Filter
	send   chan []byte
}

// Hub fans booking events out to connected clients. A client whose buffer
// is full is dropped rather than slowing down publishers.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub builds a hub. checkOrigin may be nil to accept any origin.
func NewHub(checkOrigin func(r *http.Request) bool) *Hub {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Hub{
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024, CheckOrigin: checkOrigin},
		clients:  make(map[*client]struct{}),
	}
}

// Clients is the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish implements services.EventPublisher. Clients only ever see the
// public SeatEvent form of ev.
func (h *Hub) Publish(_ context.Context, booking models.BookingEvent) error {
	ev := booking.Public()
	msg, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("realtime: marshal event: %w", err)
	}

	h.mu.RLock()
	var slow []*client
	for c := range h.clients {
		if !c.filter.match(ev) {
			continue
		}
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		log.Printf("[REALTIME] action=drop_slow_client remote=%s", c.conn.RemoteAddr())
		h.remove(c)
	}
	return nil
}

// ServeWS upgrades the request and streams matching events until the
// client disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, f Filter) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{conn: conn, filter: normalize(f), send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(c)
	go h.readLoop(c)
	return nil
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()
	for c := range clients {
		close(c.send)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		close(c.send)
	}
}

// readLoop only exists to notice disconnects and answer pongs.
func (h *Hub) readLoop(c *client) {
	defer h.remove(c)
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[REALTIME] action=read err=%v", err)
			}
			return
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
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

func normalize(f Filter) Filter {
	return Filter{
		LocationID:  strings.TrimSpace(f.LocationID),
		ZoneID:      strings.TrimSpace(f.ZoneID),
		BookingDate: strings.TrimSpace(f.BookingDate),
	}
}
