package listing

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/cazare-ro/site/filter"
	"github.com/cazare-ro/site/geo"
)

// Geo carries a listing's position as GeoJSON-style [lng, lat].
type Geo struct {
	Coordinates [2]float64 `json:"coordinates"`
}

// Lat returns the latitude component.
func (g Geo) Lat() float64 { return g.Coordinates[1] }

// Lng returns the longitude component.
func (g Geo) Lng() float64 { return g.Coordinates[0] }

// Listing is one stay as served by the listing endpoint.
type Listing struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	PropertyType  string   `json:"type"`
	PricePerNight float64  `json:"pricePerNight"`
	Currency      string   `json:"currency"`
	RatingAvg     float64  `json:"ratingAvg"`
	ReviewsCount  int      `json:"reviewsCount"`
	Amenities     []string `json:"amenities"`
	Geo           Geo      `json:"geo"`
	Images        []string `json:"images"`
}

// SearchResult is the paginated response contract.
type SearchResult struct {
	Items []Listing `json:"items"`
	Total int       `json:"total"`
}

// Prices extracts the per-night prices of a result page, in page order.
func (r SearchResult) Prices() []float64 {
	prices := make([]float64, 0, len(r.Items))
	for _, it := range r.Items {
		prices = append(prices, it.PricePerNight)
	}
	return prices
}

// Query is one outbound request to the listing search endpoint.
type Query struct {
	State filter.State
	Limit int
}

// Params renders the query parameters the listing endpoint understands.
// The committed map area is split into swLat/swLng/neLat/neLng.
func (q Query) Params() url.Values {
	s := q.State
	v := url.Values{}
	if s.FreeText != "" {
		v.Set("q", s.FreeText)
	}
	v.Set("sort", string(s.Sort))
	if s.PropertyType != filter.PropertyTypeAll && s.PropertyType != "" {
		v.Set("type", s.PropertyType)
	}
	if s.PriceMin != nil {
		v.Set("priceMin", strconv.FormatFloat(*s.PriceMin, 'f', -1, 64))
	}
	if s.PriceMax != nil {
		v.Set("priceMax", strconv.FormatFloat(*s.PriceMax, 'f', -1, 64))
	}
	if s.MinRating > 0 {
		v.Set("minRating", strconv.FormatFloat(s.MinRating, 'f', -1, 64))
	}
	if len(s.Amenities) > 0 {
		v.Set("facilities", strings.Join(s.AmenityList(), ","))
	}
	v.Set("currency", string(s.Currency))
	if b, ok := geo.Parse(s.CommittedBounds); ok {
		v.Set("swLat", coord(b.SWLat))
		v.Set("swLng", coord(b.SWLng))
		v.Set("neLat", coord(b.NELat))
		v.Set("neLng", coord(b.NELng))
	}
	v.Set("page", strconv.Itoa(s.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	return v
}

// Key is the composite query key: every committed facet plus page and
// limit. Two queries with equal keys are interchangeable.
func (q Query) Key() string {
	return q.Params().Encode()
}

func coord(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
