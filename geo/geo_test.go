package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeParse(t *testing.T) {
	b := Bounds{SWLat: 45.1, SWLng: 25.2, NELat: 45.9, NELng: 25.8}

	encoded := b.Encode()
	assert.Equal(t, "45.100000,25.200000,45.900000,25.800000", encoded)

	parsed, ok := Parse(encoded)
	assert.True(t, ok)
	assert.Equal(t, b, parsed)
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too few", "45.1,25.2,45.9"},
		{"too many", "45.1,25.2,45.9,25.8,1.0"},
		{"non-numeric", "a,b,c,d"},
		{"nan", "NaN,25.2,45.9,25.8"},
		{"inf", "45.1,Inf,45.9,25.8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Parse(tt.input)
			assert.False(t, ok)
		})
	}
}

func TestParseTrimsWhitespace(t *testing.T) {
	parsed, ok := Parse("45.1, 25.2, 45.9, 25.8")
	assert.True(t, ok)
	assert.Equal(t, Bounds{SWLat: 45.1, SWLng: 25.2, NELat: 45.9, NELng: 25.8}, parsed)
}

func TestCenter(t *testing.T) {
	b := Bounds{SWLat: 44, SWLng: 24, NELat: 46, NELng: 26}
	lat, lng := b.Center()
	assert.Equal(t, 45.0, lat)
	assert.Equal(t, 25.0, lng)
}
