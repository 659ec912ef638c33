package filter

import (
	"sort"
	"strings"
)

// Sort is a result ordering supported by the listing endpoint.
type Sort string

const (
	SortRecommended Sort = "recommended"
	SortRatingDesc  Sort = "ratingDesc"
	SortPriceAsc    Sort = "priceAsc"
	SortPriceDesc   Sort = "priceDesc"
)

// ValidSort reports whether s is a supported ordering.
func ValidSort(s Sort) bool {
	switch s {
	case SortRecommended, SortRatingDesc, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}

// Currency is a supported listing price currency.
type Currency string

const (
	RON Currency = "RON"
	EUR Currency = "EUR"
)

// ValidCurrency reports whether c is a supported currency.
func ValidCurrency(c Currency) bool {
	return c == RON || c == EUR
}

// PropertyTypeAll means no property type filter.
const PropertyTypeAll = "all"

// State is the canonical, committed filter state for one search session.
// Draft slider positions and the live (uncommitted) viewport never live
// here; they belong to the session and viewport controller.
type State struct {
	FreeText     string
	Sort         Sort
	PropertyType string
	PriceMin     *float64
	PriceMax     *float64
	MinRating    float64 // 0 = no filter, max 5
	Amenities    map[string]bool
	Currency     Currency
	// CommittedBounds is the last explicitly applied map area in the
	// "swLat,swLng,neLat,neLng" wire encoding, or "" for no area filter.
	CommittedBounds string
	Page            int
}

// Default returns the state every facet resets to.
func Default() State {
	return State{
		Sort:         SortRecommended,
		PropertyType: PropertyTypeAll,
		Currency:     RON,
		Page:         1,
	}
}

// AmenityList returns the committed amenity keys in stable order.
func (s State) AmenityList() []string {
	keys := make([]string, 0, len(s.Amenities))
	for k := range s.Amenities {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HasAmenity reports whether the amenity key is committed.
func (s State) HasAmenity(key string) bool {
	return s.Amenities[key]
}

func (s State) clone() State {
	out := s
	if s.Amenities != nil {
		out.Amenities = make(map[string]bool, len(s.Amenities))
		for k, v := range s.Amenities {
			if v {
				out.Amenities[k] = true
			}
		}
	}
	return out
}

// Equal compares two states facet by facet.
func (s State) Equal(o State) bool {
	if s.FreeText != o.FreeText || s.Sort != o.Sort ||
		s.PropertyType != o.PropertyType || s.MinRating != o.MinRating ||
		s.Currency != o.Currency || s.CommittedBounds != o.CommittedBounds ||
		s.Page != o.Page {
		return false
	}
	if !floatPtrEqual(s.PriceMin, o.PriceMin) || !floatPtrEqual(s.PriceMax, o.PriceMax) {
		return false
	}
	if len(s.Amenities) != len(o.Amenities) {
		return false
	}
	for k := range s.Amenities {
		if !o.Amenities[k] {
			return false
		}
	}
	return true
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Action is one facet transition. Reduce applies exactly one.
type Action interface{ isAction() }

type SetFreeText struct{ Text string }
type SetSort struct{ Sort Sort }
type SetPropertyType struct{ Type string }
type SetPriceRange struct{ Min, Max *float64 }
type SetMinRating struct{ Rating float64 }
type ToggleAmenity struct{ Key string }
type RemoveAmenity struct{ Key string }
type SetCurrency struct{ Currency Currency }
type CommitBounds struct{ Bounds string }
type ClearBounds struct{}
type SetPage struct{ Page int }
type ClearAll struct{}

func (SetFreeText) isAction()     {}
func (SetSort) isAction()         {}
func (SetPropertyType) isAction() {}
func (SetPriceRange) isAction()   {}
func (SetMinRating) isAction()    {}
func (ToggleAmenity) isAction()   {}
func (RemoveAmenity) isAction()   {}
func (SetCurrency) isAction()     {}
func (CommitBounds) isAction()    {}
func (ClearBounds) isAction()     {}
func (SetPage) isAction()         {}
func (ClearAll) isAction()        {}

// Reduce returns the state after applying one action. It is pure: the
// input state is never mutated. Every action other than SetPage resets
// the page to 1.
func Reduce(s State, a Action) State {
	next := s.clone()

	switch act := a.(type) {
	case SetFreeText:
		next.FreeText = strings.TrimSpace(act.Text)
	case SetSort:
		if ValidSort(act.Sort) {
			next.Sort = act.Sort
		} else {
			next.Sort = SortRecommended
		}
	case SetPropertyType:
		t := strings.TrimSpace(act.Type)
		if t == "" {
			t = PropertyTypeAll
		}
		next.PropertyType = t
	case SetPriceRange:
		next.PriceMin = copyFloat(act.Min)
		next.PriceMax = copyFloat(act.Max)
		if next.PriceMin != nil && next.PriceMax != nil && *next.PriceMin > *next.PriceMax {
			next.PriceMin, next.PriceMax = next.PriceMax, next.PriceMin
		}
	case SetMinRating:
		next.MinRating = clampRating(act.Rating)
	case ToggleAmenity:
		key := strings.TrimSpace(act.Key)
		if key == "" {
			return s
		}
		if next.Amenities == nil {
			next.Amenities = make(map[string]bool)
		}
		if next.Amenities[key] {
			delete(next.Amenities, key)
		} else {
			next.Amenities[key] = true
		}
	case RemoveAmenity:
		if !next.Amenities[act.Key] {
			return s
		}
		delete(next.Amenities, act.Key)
	case SetCurrency:
		if !ValidCurrency(act.Currency) {
			return s
		}
		next.Currency = act.Currency
		// A numeric price means something else in another currency.
		next.PriceMin = nil
		next.PriceMax = nil
	case CommitBounds:
		next.CommittedBounds = act.Bounds
	case ClearBounds:
		next.CommittedBounds = ""
	case SetPage:
		if act.Page < 1 {
			next.Page = 1
		} else {
			next.Page = act.Page
		}
		return next
	case ClearAll:
		return Default()
	}

	next.Page = 1
	return next
}

func clampRating(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
