package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// Locals keys set by EnsurePlayerID. Websocket handlers read them from the
// upgraded connection.
const (
	PlayerIDKey   = "playerID"
	PlayerNameKey = "playerName"
)

// EnsurePlayerID identifies the caller from the X-Player-ID header or the playerId
// query parameter. An optional display name comes from X-Player-Name or name.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Check if playerID is already set
		if c.Locals(PlayerIDKey) != nil {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}
		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		name := c.Get("X-Player-Name")
		if name == "" {
			name = c.Query("name")
		}

		c.Locals(PlayerIDKey, playerID)
		c.Locals(PlayerNameKey, name)
		return c.Next()
	}
}

// PlayerID returns the ID stored by EnsurePlayerID, or "" when it did not run.
func PlayerID(c *fiber.Ctx) string {
	id, _ := c.Locals(PlayerIDKey).(string)
	return id
}

func PlayerName(c *fiber.Ctx) string {
	name, _ := c.Locals(PlayerNameKey).(string)
	return name
}
