// internal/handler/ws.go
package handler

import (
	"net/http"

	"github.com/Shani242/Z-Credit-Payment-Module/internal/notify"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // tighten for production deployments
	},
}

type WSHandler struct {
	hub    *notify.Hub
	logger *zap.Logger
}

func NewWSHandler(hub *notify.Hub, logger *zap.Logger) *WSHandler {
	return &WSHandler{hub: hub, logger: logger}
}

// HandleWebSocket upgrades the connection and streams transaction outcome
// events to the client until it disconnects.
func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &notify.Client{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan []byte, 16),
		Hub:  h.hub,
	}
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
