package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of connected admin sessions and broadcasts
// notification events to them. Delivery is best effort: there is no replay
// for sessions that connect after an event fires, no acknowledgment, and an
// event with no connected sessions is logged and dropped.
type Hub struct {
	// Connected admin sessions
	clients map[*Client]bool

	// Channel for outbound events
	broadcast chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Mutex for event listeners
	listenersMu sync.RWMutex

	// Event listeners (in-process observers, used by tests)
	eventListeners []chan *Event

	// Logger for Hub operations
	logger zerolog.Logger
}

// Event is a notification pushed to connected admin sessions
type Event struct {
	// Event name, e.g. "assignment_submitted"
	Event string `json:"event"`

	// Arbitrary JSON payload
	Payload interface{} `json:"payload,omitempty"`

	// Timestamp when the event fired
	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:      make(chan *Event),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		clients:        make(map[*Client]bool),
		eventListeners: []chan *Event{},
		logger:         logger,
	}
}

// Run starts the hub, handling client registrations and broadcasts
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// registerClient registers a new admin session to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Admin session connected")
}

// unregisterClient unregisters an admin session from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		h.logger.Info().
			Int64("userID", client.userID).
			Msg("Admin session disconnected")
	}
}

// broadcastEvent broadcasts an event to all connected admin sessions
func (h *Hub) broadcastEvent(event *Event) {
	// Notify in-process listeners first
	h.notifyEventListeners(event)

	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.clients) == 0 {
		h.logger.Debug().
			Str("event", event.Event).
			Msg("No admin sessions connected, event dropped")
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("event", event.Event).
			Msg("Failed to marshal event for broadcast")
		return
	}

	for client := range h.clients {
		select {
		case client.send <- data:
			// Event sent successfully
		default:
			// Client's send buffer is full, they are slow or gone.
			// Drop the session.
			close(client.send)
			delete(h.clients, client)
			h.logger.Warn().
				Int64("userID", client.userID).
				Msg("Dropped slow admin session")
		}
	}

	h.logger.Debug().
		Str("event", event.Event).
		Int("clientCount", len(h.clients)).
		Msg("Event broadcast to admin sessions")
}

// notifyEventListeners sends an event to all registered event listeners
func (h *Hub) notifyEventListeners(event *Event) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()

	for _, listener := range h.eventListeners {
		// Non-blocking send to avoid blocking on slow listeners
		select {
		case listener <- event:
		default:
			h.logger.Warn().Msg("Skipped slow event listener")
		}
	}
}

// Notify broadcasts a named event with a payload to all connected admin
// sessions.
func (h *Hub) Notify(eventName string, payload interface{}) {
	h.broadcast <- &Event{
		Event:     eventName,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// ClientCount returns the number of connected admin sessions
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// AddEventListener registers a channel to receive all events
func (h *Hub) AddEventListener(listener chan *Event) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	h.eventListeners = append(h.eventListeners, listener)
}

// RemoveEventListener removes a listener from the hub
func (h *Hub) RemoveEventListener(listener chan *Event) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	for i, l := range h.eventListeners {
		if l == listener {
			h.eventListeners[i] = h.eventListeners[len(h.eventListeners)-1]
			h.eventListeners = h.eventListeners[:len(h.eventListeners)-1]
			break
		}
	}
}
