// Package liveview is an observational tap on a running experiment: a
// websocket hub that broadcasts each TraceRecord as JSON to whatever
// clients are connected. Parties never communicate over it — it has no
// bearing on reconciliation outcomes, only on watching them happen.
package liveview

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ersantana/rangesync-testbench/internal/simulator"
)

// Client is one connected websocket observer.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   string
}

// Hub fans a stream of TraceRecords out to every connected Client. It is
// a one-way broadcaster: clients never send anything back that the
// simulation consumes.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

// NewHub builds an idle Hub; call Run to start its event loop.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run services register/unregister/broadcast until stop is closed.
func (h *Hub) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// slow client: drop it rather than block the broadcaster
					go func(c *Client) { h.unregister <- c }(client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastRecord JSON-encodes one TraceRecord and fans it out to every
// connected client. Encoding failures are logged and dropped — a
// malformed broadcast payload must never interrupt the simulation.
func (h *Hub) BroadcastRecord(rec simulator.TraceRecord) {
	data, err := json.Marshal(rec)
	if err != nil {
		log.Printf("liveview: failed to encode trace record: %v", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		// broadcast channel full: an observer tap must never backpressure
		// the simulation, so the record is silently dropped.
	}
}

// ClientCount reports how many observers are currently connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
