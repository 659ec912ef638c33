package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Bounds represents a geographic bounding box (south-west / north-east).
type Bounds struct {
	SWLat float64
	SWLng float64
	NELat float64
	NELng float64
}

// Encode renders the bounds in the wire format "swLat,swLng,neLat,neLng"
// with 6-decimal fixed floats.
func (b Bounds) Encode() string {
	return fmt.Sprintf("%.6f,%.6f,%.6f,%.6f", b.SWLat, b.SWLng, b.NELat, b.NELng)
}

// Parse decodes the wire format. A value with the wrong arity or any
// non-finite component is treated as "no area filter".
func Parse(s string) (Bounds, bool) {
	if s == "" {
		return Bounds{}, false
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Bounds{}, false
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Bounds{}, false
		}
		vals[i] = v
	}
	return Bounds{SWLat: vals[0], SWLng: vals[1], NELat: vals[2], NELng: vals[3]}, true
}

// Center returns the midpoint of the box.
func (b Bounds) Center() (lat, lng float64) {
	return (b.SWLat + b.NELat) / 2, (b.SWLng + b.NELng) / 2
}
