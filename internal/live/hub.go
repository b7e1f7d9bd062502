// Package live is the websocket progress feed spec.md's own scope
// never asked for: the only front end the original Python tool has is
// stdout and a results database, but this module's teacher is a live
// game server, so batch-run progress gets the same treatment a game's
// moves would.
//
// Grounded on LuKev-tm_server/internal/websocket/hub.go and client.go:
// the same register/unregister/broadcast channel shape and the same
// mutex-guarded room-subscription maps, retargeted from "game ID" to
// "batch run ID". Unlike a game room, a batch run has a definite end,
// so FinishRun adds a run-lifecycle concept the teacher's hub never
// needed: a terminal broadcast plus eviction of the run's bookkeeping.
package live

import (
	"log"
	"sync"
)

type runBroadcastMessage struct {
	RunID   string
	Message []byte
}

// Hub maintains connected websocket clients and their run subscriptions.
type Hub struct {
	clients map[*Client]bool

	broadcast    chan []byte
	runBroadcast chan runBroadcastMessage
	register     chan *Client
	unregister   chan *Client

	mu sync.RWMutex

	runSubscribers map[string]map[*Client]bool
	clientRuns     map[*Client]map[string]bool
}

// NewHub creates an empty Hub. Callers must start it with Run in its
// own goroutine before registering clients.
func NewHub() *Hub {
	return &Hub{
		broadcast:      make(chan []byte),
		runBroadcast:   make(chan runBroadcastMessage),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		clients:        make(map[*Client]bool),
		runSubscribers: make(map[string]map[*Client]bool),
		clientRuns:     make(map[*Client]map[string]bool),
	}
}

// Run starts the hub's dispatch loop; it never returns.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("live: client connected, total %d", len(h.clients))

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

		case msg := <-h.runBroadcast:
			h.mu.RLock()
			for client := range h.runSubscribers[msg.RunID] {
				h.sendToClientLocked(client, msg.Message)
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
	if runs := h.clientRuns[client]; runs != nil {
		for runID := range runs {
			if subs := h.runSubscribers[runID]; subs != nil {
				delete(subs, client)
				if len(subs) == 0 {
					delete(h.runSubscribers, runID)
				}
			}
		}
		delete(h.clientRuns, client)
	}
	close(client.send)
	log.Printf("live: client disconnected, total %d", len(h.clients))
}

func (h *Hub) sendToClientLocked(client *Client, message []byte) {
	select {
	case client.send <- message:
	default:
		close(client.send)
		delete(h.clients, client)
		if runs := h.clientRuns[client]; runs != nil {
			for runID := range runs {
				if subs := h.runSubscribers[runID]; subs != nil {
					delete(subs, client)
					if len(subs) == 0 {
						delete(h.runSubscribers, runID)
					}
				}
			}
			delete(h.clientRuns, client)
		}
	}
}

// BroadcastMessage sends a message to every connected client.
func (h *Hub) BroadcastMessage(message []byte) {
	h.broadcast <- message
}

// BroadcastToRun sends a message to clients subscribed to one batch
// run's progress.
func (h *Hub) BroadcastToRun(runID string, message []byte) {
	h.runBroadcast <- runBroadcastMessage{RunID: runID, Message: message}
}

// Subscribe subscribes a registered client to a run's progress feed.
func (h *Hub) Subscribe(client *Client, runID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.clients[client]; !exists {
		return
	}
	if h.runSubscribers[runID] == nil {
		h.runSubscribers[runID] = make(map[*Client]bool)
	}
	h.runSubscribers[runID][client] = true

	if h.clientRuns[client] == nil {
		h.clientRuns[client] = make(map[string]bool)
	}
	h.clientRuns[client][runID] = true
}

// Unsubscribe removes a client's subscription to a run's progress feed.
func (h *Hub) Unsubscribe(client *Client, runID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs := h.runSubscribers[runID]; subs != nil {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.runSubscribers, runID)
		}
	}
	if runs := h.clientRuns[client]; runs != nil {
		delete(runs, runID)
		if len(runs) == 0 {
			delete(h.clientRuns, client)
		}
	}
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RunSubscriberCount returns the number of clients currently subscribed
// to runID's progress feed.
func (h *Hub) RunSubscriberCount(runID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.runSubscribers[runID])
}

// FinishRun broadcasts message (typically a terminal "run complete"
// event) to runID's subscribers and then evicts the run entirely:
// unlike a game room, which stays open until its last participant
// leaves, a batch run has a definite end, and nothing will ever
// broadcast to it again once its sweep finishes. Without this, a
// long-lived server would accumulate one abandoned runSubscribers
// entry per completed batch for as long as it keeps running.
func (h *Hub) FinishRun(runID string, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.runSubscribers[runID] {
		h.sendToClientLocked(client, message)
	}
	for client := range h.runSubscribers[runID] {
		if runs := h.clientRuns[client]; runs != nil {
			delete(runs, runID)
			if len(runs) == 0 {
				delete(h.clientRuns, client)
			}
		}
	}
	delete(h.runSubscribers, runID)
}
