package cookie

import (
	"github.com/gofiber/fiber/v2"
)

// GetSearchSession returns the visitor's search session ID, "" if unset.
func GetSearchSession(c *fiber.Ctx) string {
	return c.Cookies("search_session")
}

// SetSearchSession pins the visitor to a search session.
func SetSearchSession(c *fiber.Ctx, id string) {
	c.Cookie(&fiber.Cookie{
		Name:     "search_session",
		Value:    id,
		MaxAge:   24 * 60 * 60, // 24 hours
		HTTPOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: "Strict",
	})
}
