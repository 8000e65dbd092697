package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 64,
	WriteBufferSize: 1024 * 64,
	CheckOrigin: func(r *http.Request) bool {
		return true // local tooling only
	},
}

// WebSocket message types from client.
const (
	wsMsgFormat  = "format"
	wsMsgSummary = "summary"
)

// WebSocket message types to client.
const (
	wsMsgFormatted = "formatted"
	wsMsgReport    = "report"
	wsMsgError     = "error"
)

// wsMessage is the envelope for WebSocket messages in both directions.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// wsFormatted is the payload for "formatted" messages.
type wsFormatted struct {
	Output string `json:"output"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxBodyBytes)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.WithError(err).Warn("websocket read failed")
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.sendWSError(conn, "invalid message format")
			continue
		}

		switch msg.Type {
		case wsMsgFormat:
			s.handleWSFormat(conn, msg.Data)
		case wsMsgSummary:
			s.handleWSSummary(conn, msg.Data)
		default:
			s.sendWSError(conn, "unknown message type: "+msg.Type)
		}
	}
}

func (s *Server) handleWSFormat(conn *websocket.Conn, data json.RawMessage) {
	var req formatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendWSError(conn, "invalid format data: "+err.Error())
		return
	}

	out := s.format(req)
	s.sendWSMessage(conn, wsMsgFormatted, wsFormatted{Output: out})
}

func (s *Server) handleWSSummary(conn *websocket.Conn, data json.RawMessage) {
	var req summaryRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendWSError(conn, "invalid summary data: "+err.Error())
		return
	}

	s.sendWSMessage(conn, wsMsgReport, analysisReport(req.Results))
}

func (s *Server) sendWSMessage(conn *websocket.Conn, msgType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		s.log.WithError(err).Warn("ws marshal failed")
		return
	}
	msg := wsMessage{Type: msgType, Data: raw}
	if err := conn.WriteJSON(msg); err != nil {
		s.log.WithError(err).Warn("ws write failed")
	}
}

func (s *Server) sendWSError(conn *websocket.Conn, errMsg string) {
	s.sendWSMessage(conn, wsMsgError, map[string]string{"message": errMsg})
}
