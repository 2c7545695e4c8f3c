package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// SeatCheck reports why playerID may not observe gameID, or nil if it may.
type SeatCheck func(gameID, playerID string) error

// WebSocketUpgrade lets a request through to the websocket handler only if it
// is an upgrade request from a player seated in the game named by :gameId.
func WebSocketUpgrade(checkSeat SeatCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}

		// Set by EnsurePlayerID
		playerID, ok := c.Locals("playerID").(string)
		if !ok || playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		if err := checkSeat(gameID, playerID); err != nil {
			log.Debugf("refusing websocket for player %s in game %s: %v", playerID, gameID, err)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		// The connection context is different from the upgrade context, so
		// carry the ids across in locals
		c.Locals("wsGameID", gameID)
		c.Locals("wsPlayerID", playerID)

		return c.Next()
	}
}
