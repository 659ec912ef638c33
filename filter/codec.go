package filter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/cazare-ro/site/geo"
)

// Encode maps committed state to page URL query parameters. A parameter
// is omitted when its facet sits at the default value, so a pristine
// state encodes to an empty query string.
func Encode(s State) url.Values {
	v := url.Values{}
	if s.FreeText != "" {
		v.Set("q", s.FreeText)
	}
	if s.Sort != SortRecommended && ValidSort(s.Sort) {
		v.Set("sort", string(s.Sort))
	}
	if s.PropertyType != PropertyTypeAll && s.PropertyType != "" {
		v.Set("type", s.PropertyType)
	}
	if s.PriceMin != nil {
		v.Set("priceMin", formatPrice(*s.PriceMin))
	}
	if s.PriceMax != nil {
		v.Set("priceMax", formatPrice(*s.PriceMax))
	}
	if s.MinRating > 0 {
		v.Set("minRating", strconv.FormatFloat(s.MinRating, 'f', -1, 64))
	}
	if len(s.Amenities) > 0 {
		v.Set("facilities", strings.Join(s.AmenityList(), ","))
	}
	if s.Currency != RON && ValidCurrency(s.Currency) {
		v.Set("currency", string(s.Currency))
	}
	if s.CommittedBounds != "" {
		v.Set("bounds", s.CommittedBounds)
	}
	if s.Page > 1 {
		v.Set("page", strconv.Itoa(s.Page))
	}
	return v
}

// PageURL renders the canonical page URL for the state.
func PageURL(s State) string {
	qs := Encode(s).Encode()
	if qs == "" {
		return "/"
	}
	return "/?" + qs
}

// Decode rebuilds state from page URL query parameters. Missing, unknown
// or malformed values fall back to their defaults; Decode never fails.
// Decode(Encode(s)) == s for every reachable state.
func Decode(v url.Values) State {
	s := Default()

	s.FreeText = strings.TrimSpace(v.Get("q"))
	if srt := Sort(v.Get("sort")); ValidSort(srt) {
		s.Sort = srt
	}
	if t := strings.TrimSpace(v.Get("type")); t != "" {
		s.PropertyType = t
	}
	s.PriceMin = parsePrice(v.Get("priceMin"))
	s.PriceMax = parsePrice(v.Get("priceMax"))
	if s.PriceMin != nil && s.PriceMax != nil && *s.PriceMin > *s.PriceMax {
		s.PriceMin, s.PriceMax = s.PriceMax, s.PriceMin
	}
	if r, err := strconv.ParseFloat(v.Get("minRating"), 64); err == nil {
		s.MinRating = clampRating(r)
	}
	if raw := v.Get("facilities"); raw != "" {
		for _, key := range strings.Split(raw, ",") {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if s.Amenities == nil {
				s.Amenities = make(map[string]bool)
			}
			s.Amenities[key] = true
		}
	}
	if c := Currency(v.Get("currency")); ValidCurrency(c) {
		s.Currency = c
	}
	// Re-encode parsed bounds so CommittedBounds is always normalized.
	if b, ok := geo.Parse(v.Get("bounds")); ok {
		s.CommittedBounds = b.Encode()
	}
	if p, err := strconv.Atoi(v.Get("page")); err == nil && p > 1 {
		s.Page = p
	}
	return s
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func parsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil || p < 0 {
		return nil
	}
	return &p
}
