package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"audiosurvey/internal/model"
	"audiosurvey/internal/service"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler handles WebSocket connections
type Handler struct {
	hub     *Hub
	tokens  *service.TokenService
	surveys *service.SurveyService
	log     zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, tokens *service.TokenService, surveys *service.SurveyService, log zerolog.Logger) *Handler {
	return &Handler{
		hub:     hub,
		tokens:  tokens,
		surveys: surveys,
		log:     log.With().Str("component", "ws").Logger(),
	}
}

type answerEvent struct {
	QuestionID int          `json:"questionId"`
	Value      model.Answer `json:"value"`
}

type toggleEvent struct {
	QuestionID int `json:"questionId"`
}

// SessionWS handles GET /v1/ws/sessions/{id}
func (h *Handler) SessionWS(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	token := r.URL.Query().Get("token")

	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokens.Validate(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	if claims.SessionID != sessionID {
		http.Error(w, "token not valid for this session", http.StatusForbidden)
		return
	}
	if err := h.surveys.Attach(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade")
		return
	}

	conn := NewConnection(sessionID)
	h.hub.Register(conn)

	h.log.Info().Str("sessionId", sessionID).Msg("browser attached")

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
		// A page reload opens a new session, so a closed socket ends this one
		if !conn.Replaced() {
			h.surveys.Close(context.Background(), conn.SessionID)
		}
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn().Err(err).Str("sessionId", conn.SessionID).Msg("websocket read")
			}
			break
		}

		if err := h.dispatch(context.Background(), conn.SessionID, data); err != nil {
			h.hub.SendToSession(conn.SessionID, model.MsgError, model.ErrorPayload{Message: err.Error()})
		}
	}
}

func (h *Handler) dispatch(ctx context.Context, sessionID string, data []byte) error {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}

	var err error
	switch msg.Type {
	case EvtAnswer:
		var evt answerEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return fmt.Errorf("invalid answer: %w", err)
		}
		_, err = h.surveys.Answer(ctx, sessionID, evt.QuestionID, evt.Value)
	case EvtToggle:
		var evt toggleEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return fmt.Errorf("invalid toggle: %w", err)
		}
		_, err = h.surveys.TogglePlayback(ctx, sessionID, evt.QuestionID)
	case EvtAudioEnded:
		_, err = h.surveys.PlaybackEnded(ctx, sessionID)
	case EvtSubmit:
		_, err = h.surveys.Submit(ctx, sessionID)
	case EvtRestart:
		_, err = h.surveys.Restart(ctx, sessionID)
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}

	if err != nil && !errors.Is(err, model.ErrIncomplete) {
		h.log.Debug().Err(err).Str("sessionId", sessionID).Str("type", string(msg.Type)).Msg("event rejected")
	}
	return err
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
