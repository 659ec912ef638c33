package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/cazare-ro/site/filter"
	"github.com/cazare-ro/site/ui"
)

// HandleHome serves the full discovery page. Filter state mounts from
// the page URL, so a shared or bookmarked link reproduces the result
// set.
func HandleHome(c *fiber.Ctx) error {
	id := sessionID(c)
	s := sessions.GetOrCreate(id)
	s.Init(filter.Decode(queryValues(c)))

	snap := s.WaitSettled(settleTimeout)
	return render(c, ui.SearchPage(snap, searches.Recent(id)))
}

// HandleSearch feeds free-text input into the debounced pipeline.
func HandleSearch(c *fiber.Ctx) error {
	s := getSession(c)
	return commit(c, s, func() {
		s.SetFreeText(c.Query("q"))
	})
}

// HandleSort commits a sort order change.
func HandleSort(c *fiber.Ctx) error {
	s := getSession(c)
	return commit(c, s, func() {
		s.Dispatch(filter.SetSort{Sort: filter.Sort(c.FormValue("value"))})
	})
}

// HandleType commits a property type change.
func HandleType(c *fiber.Ctx) error {
	s := getSession(c)
	return commit(c, s, func() {
		s.Dispatch(filter.SetPropertyType{Type: c.FormValue("value")})
	})
}

// HandleRating commits a minimum rating change.
func HandleRating(c *fiber.Ctx) error {
	rating, err := strconv.ParseFloat(c.FormValue("value"), 64)
	if err != nil {
		rating = 0
	}
	s := getSession(c)
	return commit(c, s, func() {
		s.Dispatch(filter.SetMinRating{Rating: rating})
	})
}

// HandleCurrency commits a currency switch, which also resets any
// committed price filter.
func HandleCurrency(c *fiber.Ctx) error {
	s := getSession(c)
	return commit(c, s, func() {
		s.Dispatch(filter.SetCurrency{Currency: filter.Currency(c.Query("value"))})
	})
}

// HandlePriceDraft tracks slider positions mid-drag without committing.
func HandlePriceDraft(c *fiber.Ctx) error {
	s := getSession(c)
	s.SetDraftPrice(parsePriceField(c, "priceMin"), parsePriceField(c, "priceMax"))
	return c.SendStatus(fiber.StatusNoContent)
}

// HandlePrice commits the price range on slider release.
func HandlePrice(c *fiber.Ctx) error {
	s := getSession(c)
	return commit(c, s, func() {
		s.SetDraftPrice(parsePriceField(c, "priceMin"), parsePriceField(c, "priceMax"))
		s.CommitDraftPrice()
	})
}

// HandleAmenity toggles one amenity facet.
func HandleAmenity(c *fiber.Ctx) error {
	s := getSession(c)
	return commit(c, s, func() {
		s.Dispatch(filter.ToggleAmenity{Key: c.Params("key")})
	})
}

// HandlePage commits a page change; the one facet change that does not
// reset pagination.
func HandlePage(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("value"))
	if err != nil {
		page = 1
	}
	s := getSession(c)
	return commit(c, s, func() {
		s.Dispatch(filter.SetPage{Page: page})
	})
}

// HandleClearFilters resets every facet to its default, including the
// committed map area and the derived price extent.
func HandleClearFilters(c *fiber.Ctx) error {
	s := getSession(c)
	return commit(c, s, func() {
		s.Dispatch(filter.ClearAll{})
	})
}

// HandleChipRemove resets exactly the facet behind one chip.
func HandleChipRemove(c *fiber.Ctx) error {
	s := getSession(c)
	return commit(c, s, func() {
		s.RemoveChip(c.Query("key"))
	})
}

// HandleRetry re-runs the current query after a failure.
func HandleRetry(c *fiber.Ctx) error {
	s := getSession(c)
	return commit(c, s, func() {
		s.Retry()
	})
}

func parsePriceField(c *fiber.Ctx, name string) *float64 {
	v, err := strconv.ParseFloat(c.FormValue(name), 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}
