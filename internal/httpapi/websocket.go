package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/hailam/minishare/internal/logging"
	"github.com/hailam/minishare/internal/share"
)

// writeWait bounds a single write to a client that has stopped reading.
const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Codes are public; any page may embed the editor.
	},
}

// WSMessage is a client request over the WebSocket.
type WSMessage struct {
	Type    string          `json:"type"`    // "encode", "decode", "stats", "ping"
	ID      string          `json:"id"`      // Request ID for correlating responses
	Payload json.RawMessage `json:"payload"` // Type-specific payload
}

// WSResponse is a server reply over the WebSocket.
type WSResponse struct {
	Type    string `json:"type"`              // "result", "error", "pong"
	ID      string `json:"id,omitempty"`      // Request ID
	Payload any    `json:"payload,omitempty"` // Response data
	Error   string `json:"error,omitempty"`   // Error message if any
	Code    string `json:"code,omitempty"`    // Error kind if any
}

// WSClient represents a connected WebSocket client.
type WSClient struct {
	conn     *websocket.Conn
	handlers *Handlers
	sendChan chan WSResponse
	done     chan struct{} // closed when writePump exits
}

// WebSocket handles WebSocket connections for live encoding while a board
// is being edited.
func (h *Handlers) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.OrNop(h.Logger).Warn("websocket upgrade", zap.Error(err))
		return
	}
	// Same bound as HTTP request bodies.
	conn.SetReadLimit(maxBodyBytes)

	client := &WSClient{conn: conn, handlers: h, sendChan: make(chan WSResponse, 256), done: make(chan struct{})}
	go client.writePump()
	client.readPump()
}

func (c *WSClient) writePump() {
	defer close(c.done)
	defer c.conn.Close()
	for msg := range c.sendChan {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (c *WSClient) readPump() {
	defer close(c.sendChan)
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		select {
		case c.sendChan <- c.handleMessage(msg):
		case <-c.done:
			return
		}
	}
}

func (c *WSClient) handleMessage(msg WSMessage) WSResponse {
	switch msg.Type {
	case "encode":
		var req BoardRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		}
		code, err := share.Encode(req.Board)
		if err != nil {
			return errorResponse(msg.ID, err)
		}
		return WSResponse{Type: "result", ID: msg.ID, Payload: EncodeResponse{Code: code, URL: c.handlers.shareURL(code)}}

	case "decode":
		var req DecodeRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		}
		b, err := share.Decode(req.Position)
		if err != nil {
			return errorResponse(msg.ID, err)
		}
		return WSResponse{Type: "result", ID: msg.ID, Payload: DecodeResponse{Code: req.Position, Board: b.Rows(), Placement: b.Placement(), Pieces: b.Count()}}

	case "stats":
		var req BoardRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		}
		return WSResponse{Type: "result", ID: msg.ID, Payload: share.SharingStatistics(req.Board)}

	case "ping":
		return WSResponse{Type: "pong", ID: msg.ID}

	default:
		return WSResponse{Type: "error", ID: msg.ID, Error: "unknown message type"}
	}
}

func errorResponse(id string, err error) WSResponse {
	resp := WSResponse{Type: "error", ID: id, Error: err.Error()}
	var se *share.SharingError
	if errors.As(err, &se) {
		resp.Error = se.Message
		resp.Code = se.Kind.String()
	}
	return resp
}
