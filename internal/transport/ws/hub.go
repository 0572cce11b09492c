package ws

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Browser event types
const (
	EvtAnswer     MessageType = "answer"
	EvtToggle     MessageType = "toggle"
	EvtAudioEnded MessageType = "audio_ended"
	EvtSubmit     MessageType = "submit"
	EvtRestart    MessageType = "restart"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Hub manages the browser connection of each session
type Hub struct {
	conns map[string]*Connection // sessionID -> conn

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	disconnect chan string
	broadcast  chan *BroadcastMessage

	log zerolog.Logger
}

// Connection represents a WebSocket connection
type Connection struct {
	SessionID string
	Send      chan []byte

	replaced atomic.Bool
}

// NewConnection creates a connection for a session
func NewConnection(sessionID string) *Connection {
	return &Connection{
		SessionID: sessionID,
		Send:      make(chan []byte, 256),
	}
}

// Replaced reports whether a newer connection took over the session
func (c *Connection) Replaced() bool {
	return c.replaced.Load()
}

// BroadcastMessage is a message to deliver to one session
type BroadcastMessage struct {
	SessionID string
	Message   *Message
}

// NewHub creates a new WebSocket hub
func NewHub(log zerolog.Logger) *Hub {
	h := &Hub{
		conns:      make(map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		disconnect: make(chan string, 16),
		broadcast:  make(chan *BroadcastMessage, 256),
		log:        log.With().Str("component", "ws_hub").Logger(),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if existing, ok := h.conns[conn.SessionID]; ok {
				existing.replaced.Store(true)
				close(existing.Send)
				h.log.Debug().Str("sessionId", conn.SessionID).Msg("connection replaced")
			}
			h.conns[conn.SessionID] = conn
			h.mu.Unlock()
			h.log.Debug().Str("sessionId", conn.SessionID).Msg("browser connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if existing, ok := h.conns[conn.SessionID]; ok && existing == conn {
				delete(h.conns, conn.SessionID)
				close(conn.Send)
				h.log.Debug().Str("sessionId", conn.SessionID).Msg("browser disconnected")
			}
			h.mu.Unlock()

		case id := <-h.disconnect:
			h.mu.Lock()
			if conn, ok := h.conns[id]; ok {
				delete(h.conns, id)
				close(conn.Send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				h.log.Error().Err(err).Msg("marshal message")
				continue
			}

			h.mu.RLock()
			conn, ok := h.conns[msg.SessionID]
			if !ok {
				h.log.Debug().Str("sessionId", msg.SessionID).Str("type", string(msg.Message.Type)).Msg("no browser attached, dropping")
			} else {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection, replacing any earlier one for the session
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Connected reports whether a browser is attached to the session
func (h *Hub) Connected(sessionID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[sessionID]
	return ok
}

// SendToSession queues a message for the session's browser
// (implements service.Broadcaster and audio.Commander)
func (h *Hub) SendToSession(sessionID string, msgType string, payload interface{}) {
	var data json.RawMessage
	if payload != nil {
		data, _ = json.Marshal(payload)
	}
	h.broadcast <- &BroadcastMessage{
		SessionID: sessionID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// DisconnectSession closes the session's connection if there is one
func (h *Hub) DisconnectSession(sessionID string) {
	h.disconnect <- sessionID
}
