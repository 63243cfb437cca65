package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "bookswap/internal/infrastructure/websocket"
	"bookswap/pkg/logger"
)

type FeedHandler struct {
	hub      *ws.Hub
	upgrader gorillaws.Upgrader
}

func NewFeedHandler(hub *ws.Hub) *FeedHandler {
	return &FeedHandler{
		hub: hub,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Live upgrades the request and streams listing events until the peer leaves.
func (h *FeedHandler) Live(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already written the HTTP error.
		logger.Warn("Live feed upgrade failed: %v", err)
		return nil
	}

	client := ws.NewClient(conn)
	if err := h.hub.Register(client); err != nil {
		logger.Warn("Live feed unavailable: %v", err)
		conn.Close()
		return nil
	}

	go client.WritePump()
	go client.ReadPump(h.hub)

	return nil
}
