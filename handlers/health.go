package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HandleHealth reports liveness plus cache and session counters.
func HandleHealth(c *fiber.Ctx) error {
	redisOK := searches.Ping() == nil
	return c.JSON(fiber.Map{
		"status":       "ok",
		"sessions":     sessions.Len(),
		"redis":        redisOK,
		"result_cache": searchClient.CacheStats(),
	})
}
