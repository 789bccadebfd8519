// Package middleware holds the fiber handlers that run before the game routes.
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// GameLookup reports whether a game exists, returning an error if it does not.
type GameLookup func(gameID string) error

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid
// WebSocket connection attempts for a live game. The game id is stored in
// locals so it is available after the upgrade.
func WebSocketUpgrade(lookup GameLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// First, check if this is a WebSocket upgrade request
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := c.Params("id")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}
		if err := lookup(gameID); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("gameID", gameID)
		return c.Next()
	}
}
