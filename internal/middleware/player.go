package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// EnsurePlayerID tags each request with the client's player ID, read from
// the X-Player-ID header or the playerId query parameter. A client that
// sends neither is issued a fresh one in the response header.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}
		if playerID == "" {
			playerID = uuid.New().String()
			c.Set("X-Player-ID", playerID)
		}

		c.Locals("playerID", playerID)
		return c.Next()
	}
}

// PlayerID returns the ID stored by EnsurePlayerID, or "" outside that middleware.
func PlayerID(c *fiber.Ctx) string {
	id, _ := c.Locals("playerID").(string)
	return id
}
