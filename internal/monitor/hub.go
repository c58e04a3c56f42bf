// Package monitor exposes a local, read-only HTTP+WebSocket endpoint a
// human can attach to for watching the bot's chosen turns and search
// statistics live. It never accepts input back from a watcher — there is
// no control surface here, only observation.
package monitor

import (
	"sync"

	"k8s.io/klog/v2"
)

// Hub maintains the set of connected spectator clients and fans a single
// broadcast message out to all of them.
type Hub struct {
	clients map[*Client]bool

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates an unstarted Hub; call Run in its own goroutine.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run processes register/unregister/broadcast events until its channels
// are abandoned; it's meant to run for the lifetime of the process.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			klog.V(3).Infof("monitor: spectator connected, %d total", h.ClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			h.unregisterClientLocked(client)
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				h.sendToClientLocked(client, message)
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) unregisterClientLocked(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
}

func (h *Hub) sendToClientLocked(client *Client, message []byte) {
	select {
	case client.send <- message:
	default:
		close(client.send)
		delete(h.clients, client)
	}
}

// BroadcastMessage sends message to every connected spectator.
func (h *Hub) BroadcastMessage(message []byte) {
	h.broadcast <- message
}

// ClientCount returns how many spectators are currently connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
