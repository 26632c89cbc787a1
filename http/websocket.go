// server/http/websocket.go
package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/ViniZap4/calmrush-server/auth"
)

const localsSocketUser = "socketUser"

func (s *Server) handleUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	c.Locals(localsSocketUser, auth.User(c).ID)
	return c.Next()
}

func (s *Server) handleWebSocket(conn *websocket.Conn) {
	userID, _ := conn.Locals(localsSocketUser).(string)
	if userID == "" {
		conn.Close()
		return
	}
	s.hub.HandleConnection(userID, conn)
}
