package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fp(v float64) *float64 { return &v }

func TestReducePageResets(t *testing.T) {
	base := Default()
	base.Page = 7

	tests := []struct {
		name   string
		action Action
	}{
		{"free text", SetFreeText{Text: "cabana"}},
		{"sort", SetSort{Sort: SortPriceAsc}},
		{"property type", SetPropertyType{Type: "vila"}},
		{"price range", SetPriceRange{Min: fp(100), Max: fp(500)}},
		{"min rating", SetMinRating{Rating: 4}},
		{"amenity toggle", ToggleAmenity{Key: "wifi"}},
		{"currency", SetCurrency{Currency: EUR}},
		{"commit bounds", CommitBounds{Bounds: "45.100000,25.200000,45.900000,25.800000"}},
		{"clear all", ClearAll{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := Reduce(base, tt.action)
			assert.Equal(t, 1, next.Page)
		})
	}
}

func TestReduceSetPageKeepsFacets(t *testing.T) {
	s := Default()
	s.FreeText = "munte"
	s.MinRating = 4

	next := Reduce(s, SetPage{Page: 3})

	assert.Equal(t, 3, next.Page)
	assert.Equal(t, "munte", next.FreeText)
	assert.Equal(t, 4.0, next.MinRating)
}

func TestReduceSetPageFloor(t *testing.T) {
	next := Reduce(Default(), SetPage{Page: -2})
	assert.Equal(t, 1, next.Page)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := Default()
	s.Amenities = map[string]bool{"wifi": true}
	s.Page = 4

	_ = Reduce(s, ToggleAmenity{Key: "parking"})
	_ = Reduce(s, ToggleAmenity{Key: "wifi"})

	assert.Equal(t, 4, s.Page)
	assert.Equal(t, map[string]bool{"wifi": true}, s.Amenities)
}

func TestReduceToggleAmenity(t *testing.T) {
	s := Default()

	s = Reduce(s, ToggleAmenity{Key: "wifi"})
	s = Reduce(s, ToggleAmenity{Key: "spa"})
	assert.Equal(t, []string{"spa", "wifi"}, s.AmenityList())

	s = Reduce(s, ToggleAmenity{Key: "wifi"})
	assert.Equal(t, []string{"spa"}, s.AmenityList())
}

func TestReduceRemoveAmenity(t *testing.T) {
	s := Default()
	s.Amenities = map[string]bool{"wifi": true, "parking": true, "spa": true}

	s = Reduce(s, RemoveAmenity{Key: "wifi"})

	assert.Equal(t, []string{"parking", "spa"}, s.AmenityList())
}

func TestReduceCurrencyResetsPrices(t *testing.T) {
	s := Default()
	s.PriceMin = fp(100)
	s.PriceMax = fp(800)

	next := Reduce(s, SetCurrency{Currency: EUR})

	assert.Equal(t, EUR, next.Currency)
	assert.Nil(t, next.PriceMin)
	assert.Nil(t, next.PriceMax)
}

func TestReduceInvalidCurrencyIgnored(t *testing.T) {
	s := Default()
	s.PriceMin = fp(100)

	next := Reduce(s, SetCurrency{Currency: "USD"})

	assert.True(t, next.Equal(s))
}

func TestReducePriceRangeSwapsInverted(t *testing.T) {
	next := Reduce(Default(), SetPriceRange{Min: fp(900), Max: fp(200)})

	assert.Equal(t, 200.0, *next.PriceMin)
	assert.Equal(t, 900.0, *next.PriceMax)
}

func TestReduceRatingClamped(t *testing.T) {
	assert.Equal(t, 5.0, Reduce(Default(), SetMinRating{Rating: 9}).MinRating)
	assert.Equal(t, 0.0, Reduce(Default(), SetMinRating{Rating: -1}).MinRating)
}

func TestReduceClearAll(t *testing.T) {
	s := Default()
	s.FreeText = "mare"
	s.PropertyType = "vila"
	s.PriceMin = fp(200)
	s.MinRating = 4.5
	s.Amenities = map[string]bool{"pool": true}
	s.Currency = EUR
	s.CommittedBounds = "44.100000,28.500000,44.300000,28.700000"
	s.Page = 3

	next := Reduce(s, ClearAll{})

	assert.True(t, next.Equal(Default()))
}

func TestReduceClearBounds(t *testing.T) {
	s := Default()
	s.CommittedBounds = "44.100000,28.500000,44.300000,28.700000"

	next := Reduce(s, ClearBounds{})

	assert.Empty(t, next.CommittedBounds)
}

func TestStateEqual(t *testing.T) {
	a := Default()
	b := Default()
	assert.True(t, a.Equal(b))

	b.Amenities = map[string]bool{"wifi": true}
	assert.False(t, a.Equal(b))

	a.Amenities = map[string]bool{"wifi": true}
	assert.True(t, a.Equal(b))

	a.PriceMin = fp(100)
	b.PriceMin = fp(100)
	assert.True(t, a.Equal(b))

	b.PriceMin = fp(150)
	assert.False(t, a.Equal(b))
}
