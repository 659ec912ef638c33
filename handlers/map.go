package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/cazare-ro/site/geo"
)

// HandleMapMoved receives raw camera events. The session debounces them
// into a settled live viewport; nothing is fetched and the committed
// area is untouched.
func HandleMapMoved(c *fiber.Ctx) error {
	b, ok := geo.Parse(c.FormValue("bounds"))
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	getSession(c).MapMoved(b)
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSearchArea is the explicit "search this area" commit.
func HandleSearchArea(c *fiber.Ctx) error {
	s := getSession(c)
	return commit(c, s, func() {
		if b, ok := geo.Parse(c.FormValue("bounds")); ok {
			s.Viewport.SetLive(b)
		}
		s.CommitArea()
	})
}

// HandleClearArea removes the area filter without moving the camera.
func HandleClearArea(c *fiber.Ctx) error {
	s := getSession(c)
	return commit(c, s, func() {
		s.ClearArea()
	})
}

// HandleHover shares the highlight between list and map. The session
// resolves the listing's position into an ease target, surfaced here as
// an HX-Trigger event so the browser glue pans the camera, purely
// visually.
func HandleHover(c *fiber.Ctx) error {
	s := getSession(c)
	s.SetActive(c.Params("id"))
	if lat, lng, ok := s.Viewport.EaseTarget(); ok {
		c.Set("HX-Trigger", fmt.Sprintf(`{"map:ease":{"lat":%f,"lng":%f}}`, lat, lng))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleHoverClear drops the highlight.
func HandleHoverClear(c *fiber.Ctx) error {
	getSession(c).ClearActive(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// HandlePopupOpen opens a marker popup, cancelling any pending close.
func HandlePopupOpen(c *fiber.Ctx) error {
	getSession(c).Viewport.OpenPopup(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// HandlePopupClose schedules a delayed popup close, tolerating pointer
// transit between marker and popup.
func HandlePopupClose(c *fiber.Ctx) error {
	getSession(c).Viewport.RequestClose(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}
