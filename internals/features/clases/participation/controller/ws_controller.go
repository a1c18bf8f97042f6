package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"pragmaprofe_backend/internals/features/clases/participation/service"
)

// WSUpgrade deja pasar solo upgrades websocket reales.
func WSUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// ServeWS conecta un viewer al room de la sesión. El socket es solo de
// bajada (snapshots); los envíos de alumnos van por POST.
func ServeWS() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		code := normalizeCode(conn.Params("code"))
		service.LiveHub.Join(code, conn)
		defer service.LiveHub.Leave(code, conn)

		// loop de lectura solo para detectar el cierre
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
