// Package webchat is the transport in front of the scheduling assistant: a
// WebSocket endpoint for the chat widget and an HTTP fallback for clients
// that cannot hold a socket open.
package webchat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/Silveira-k7/PragmaL/internal/assistant"
	"github.com/Silveira-k7/PragmaL/pkg/logging"
)

// Conversation is the assistant surface the transport drives. Turns are
// synchronous: one message in, one reply out.
type Conversation interface {
	HandleTurn(ctx context.Context, sessionID, message string) (*assistant.TurnResult, error)
	Greeting() string
}

// Handler manages web chat connections and messages.
type Handler struct {
	conversation Conversation
	logger       *logging.Logger

	mu       sync.RWMutex
	sessions map[string]*wsConn // sessionID -> active connection
}

type wsConn struct {
	conn *websocket.Conn
}

// InboundMessage is what the widget sends.
type InboundMessage struct {
	Type      string `json:"type"` // "message", "ping"
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type      string          `json:"type"` // "message", "session", "pong", "error"
	Text      string          `json:"text,omitempty"`
	Role      string          `json:"role,omitempty"`
	SessionID string          `json:"session_id,omitempty"`
	State     assistant.State `json:"state,omitempty"`
	Committed bool            `json:"committed,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// NewHandler creates a web chat handler.
func NewHandler(conversation Conversation, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		conversation: conversation,
		logger:       logger,
		sessions:     make(map[string]*wsConn),
	}
}

// HandleWebSocket upgrades to WebSocket and handles real-time messaging.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	_ = websocket.JSON.Send(conn, OutboundMessage{
		Type:      "session",
		SessionID: sessionID,
	})
	_ = websocket.JSON.Send(conn, h.assistantMessage(sessionID, h.conversation.Greeting(), "", false))

	wsc := &wsConn{conn: conn}
	h.mu.Lock()
	h.sessions[sessionID] = wsc
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		if h.sessions[sessionID] == wsc {
			delete(h.sessions, sessionID)
		}
		h.mu.Unlock()
	}()

	h.logger.Info("webchat: connection opened", "session_id", sessionID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			continue
		}
		if msg.Type != "message" || strings.TrimSpace(msg.Text) == "" {
			continue
		}

		// One turn at a time per connection: the read loop does not pull the
		// next message until this reply is sent.
		result, err := h.conversation.HandleTurn(r.Context(), sessionID, msg.Text)
		if err != nil {
			h.logger.Error("webchat: turn failed", "error", err, "session_id", sessionID)
			_ = websocket.JSON.Send(conn, OutboundMessage{
				Type: "error",
				Text: "Desculpe, algo deu errado. Tente novamente.",
			})
			continue
		}
		_ = websocket.JSON.Send(conn, h.assistantMessage(result.SessionID, result.Reply, result.State, result.Committed))
	}
}

func (h *Handler) assistantMessage(sessionID, text string, state assistant.State, committed bool) OutboundMessage {
	return OutboundMessage{
		Type:      "message",
		Role:      "assistant",
		Text:      text,
		SessionID: sessionID,
		State:     state,
		Committed: committed,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// HandleMessage is the HTTP fallback for sending messages.
// POST /api/chat with {"session_id": "...", "text": "..."}.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
		Text      string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	result, err := h.conversation.HandleTurn(r.Context(), req.SessionID, req.Text)
	if err != nil {
		h.logger.Error("webchat: turn failed", "error", err, "session_id", req.SessionID)
		http.Error(w, "failed to process message", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

// HandleGreeting returns the assistant's opening message.
// GET /api/chat/greeting.
func (h *Handler) HandleGreeting(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"greeting": h.conversation.Greeting()})
}
