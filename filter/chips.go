package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Chip is one removable token for an active, non-default facet.
type Chip struct {
	// Key identifies the facet for the removal endpoint, e.g. "type",
	// "priceMin", "amenity:wifi". An empty key marks a display-only chip.
	Key   string
	Label string
}

// maxAmenityChips is how many amenities get individual chips before the
// rest collapse into a "+N more" summary.
const maxAmenityChips = 2

// Chips projects the committed, non-default facets into an ordered list
// of removable chips. Sort, currency and page are presentation
// preferences, not filters, and never become chips.
func Chips(s State) []Chip {
	var chips []Chip

	if s.FreeText != "" {
		chips = append(chips, Chip{Key: "q", Label: fmt.Sprintf("%q", s.FreeText)})
	}
	if s.PropertyType != PropertyTypeAll && s.PropertyType != "" {
		chips = append(chips, Chip{Key: "type", Label: "type: " + s.PropertyType})
	}
	if s.PriceMin != nil {
		chips = append(chips, Chip{Key: "priceMin", Label: "min price: " + moneyLabel(*s.PriceMin, s.Currency)})
	}
	if s.PriceMax != nil {
		chips = append(chips, Chip{Key: "priceMax", Label: "max price: " + moneyLabel(*s.PriceMax, s.Currency)})
	}
	if s.MinRating > 0 {
		chips = append(chips, Chip{Key: "rating", Label: fmt.Sprintf("rating %.1f+", s.MinRating)})
	}
	amenities := s.AmenityList()
	for i, key := range amenities {
		if i == maxAmenityChips {
			chips = append(chips, Chip{Label: fmt.Sprintf("+%d more amenities", len(amenities)-maxAmenityChips)})
			break
		}
		chips = append(chips, Chip{Key: "amenity:" + key, Label: key})
	}
	if s.CommittedBounds != "" {
		chips = append(chips, Chip{Key: "bounds", Label: "map area"})
	}
	return chips
}

// RemovalAction maps a chip key to the action that resets exactly that
// facet. Unknown or display-only keys return false.
func RemovalAction(key string) (Action, bool) {
	switch key {
	case "q":
		return SetFreeText{}, true
	case "type":
		return SetPropertyType{Type: PropertyTypeAll}, true
	case "rating":
		return SetMinRating{}, true
	case "bounds":
		return ClearBounds{}, true
	}
	if amenity, ok := strings.CutPrefix(key, "amenity:"); ok && amenity != "" {
		return RemoveAmenity{Key: amenity}, true
	}
	return nil, false
}

// RemovalActionFor resolves chip keys that need the current state to
// preserve the untouched half of the price range.
func RemovalActionFor(s State, key string) (Action, bool) {
	switch key {
	case "priceMin":
		return SetPriceRange{Max: s.PriceMax}, true
	case "priceMax":
		return SetPriceRange{Min: s.PriceMin}, true
	}
	return RemovalAction(key)
}

func moneyLabel(v float64, c Currency) string {
	amount := strconv.FormatFloat(v, 'f', -1, 64)
	if c == EUR {
		return amount + " €"
	}
	return amount + " lei"
}
