// Package websocket implements a WebSocket Hub for broadcasting live match
// updates. Clients subscribe to a match ID; when the match's result is
// recorded the server pushes the final scores and rating changes to every
// watcher instantly, without polling.
package websocket

import "sync"

// Client represents a single connected WebSocket client.
// Each watcher of a match has one Client instance on the server.
type Client struct {
	MatchID string      // Which match this client is watching
	Send    chan []byte // Buffered channel of outgoing messages; the Hub writes here, the socket writer drains it
}

// Message is a unit of data to broadcast to all clients watching one match.
type Message struct {
	MatchID string
	Data    []byte // Raw bytes to send (JSON-encoded match payloads)
}

// Hub manages all active WebSocket connections, grouped by match ID.
// It runs in its own goroutine and processes registration, unregistration, and
// broadcast events through channels, keeping all map mutation on a single
// goroutine.
type Hub struct {
	// clients is a nested map: matchID -> set of Client pointers.
	// map[*Client]bool as a "set" is the usual Go idiom.
	clients map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client

	// mu lets broadcasts read the client set (RLock) while the main loop
	// holds the write lock for mutations.
	mu sync.RWMutex
}

// NewHub creates and initializes a Hub. The broadcast channel is buffered so
// handlers don't block if the Hub goroutine is briefly busy; register and
// unregister are unbuffered because those operations complete synchronously.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the Hub's main event loop. Call it in a goroutine ("go hub.Run()").
func (h *Hub) Run() {
	for {
		select {

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.MatchID] == nil {
				h.clients[client.MatchID] = make(map[*Client]bool)
			}
			h.clients[client.MatchID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.MatchID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send) // Signals the socket writer goroutine to stop
					if len(clients) == 0 {
						delete(h.clients, client.MatchID)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients[msg.MatchID] {
				select {
				case client.Send <- msg.Data:
				// A full buffer means the client is too slow; drop it rather
				// than blocking the broadcast loop for everyone else.
				default:
					delete(h.clients[msg.MatchID], client)
					close(client.Send)
				}
			}
			if len(h.clients[msg.MatchID]) == 0 {
				delete(h.clients, msg.MatchID)
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToMatch sends data to all clients currently watching the given
// match. This is the public API handlers call when a result is recorded.
func (h *Hub) BroadcastToMatch(matchID string, data []byte) {
	h.broadcast <- &Message{MatchID: matchID, Data: data}
}

// Register adds a client to the Hub so it starts receiving broadcasts for its
// match. Called when a WebSocket connection is opened.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the Hub when its connection closes.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
