package main

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// writeWait bounds how long a broadcast waits on a stalled client.
const writeWait = 100 * time.Millisecond

// event is the envelope sent to /live subscribers.
type event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// hub fans events out to the connected WebSocket clients.
type hub struct {
	lock    sync.Mutex
	clients map[*websocket.Conn]bool
}

func newHub() *hub {
	return &hub{clients: make(map[*websocket.Conn]bool)}
}

func (h *hub) add(conn *websocket.Conn) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.clients[conn] = true
}

func (h *hub) remove(conn *websocket.Conn) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

func (h *hub) count() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.clients)
}

// broadcast sends the event to every client, dropping clients whose writes
// fail or stall past writeWait.
func (h *hub) broadcast(e event) {
	h.lock.Lock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		clients = append(clients, conn)
	}
	h.lock.Unlock()

	var wg sync.WaitGroup
	var failedLock sync.Mutex
	var failed []*websocket.Conn

	for _, conn := range clients {
		wg.Add(1)
		go func(c *websocket.Conn) {
			defer wg.Done()
			c.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.WriteJSON(e); err != nil {
				failedLock.Lock()
				failed = append(failed, c)
				failedLock.Unlock()
			}
		}(conn)
	}
	wg.Wait()

	for _, conn := range failed {
		h.remove(conn)
	}
}
