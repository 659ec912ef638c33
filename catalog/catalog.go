package catalog

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/cazare-ro/site/db"
	"github.com/cazare-ro/site/filter"
	"github.com/cazare-ro/site/geo"
	"github.com/cazare-ro/site/listing"
)

// EURRate is the fixed RON per EUR rate the dev catalog serves prices at.
const EURRate = 4.98

const defaultLimit = 20

// Params are the search parameters the listing endpoint understands,
// mirroring the outbound query contract of the search engine.
type Params struct {
	Q          string
	Sort       filter.Sort
	Type       string
	PriceMin   *float64
	PriceMax   *float64
	MinRating  float64
	Facilities []string
	Currency   filter.Currency
	Bounds     *geo.Bounds
	Page       int
	Limit      int
}

// ParseParams reads search parameters from a request query. Malformed
// values degrade to "no filter" rather than erroring.
func ParseParams(v url.Values) Params {
	p := Params{
		Q:        strings.TrimSpace(v.Get("q")),
		Sort:     filter.SortRecommended,
		Type:     strings.TrimSpace(v.Get("type")),
		Currency: filter.RON,
		Page:     1,
		Limit:    defaultLimit,
	}
	if s := filter.Sort(v.Get("sort")); filter.ValidSort(s) {
		p.Sort = s
	}
	if c := filter.Currency(v.Get("currency")); filter.ValidCurrency(c) {
		p.Currency = c
	}
	if f, err := strconv.ParseFloat(v.Get("priceMin"), 64); err == nil && f >= 0 {
		p.PriceMin = &f
	}
	if f, err := strconv.ParseFloat(v.Get("priceMax"), 64); err == nil && f >= 0 {
		p.PriceMax = &f
	}
	if r, err := strconv.ParseFloat(v.Get("minRating"), 64); err == nil && r > 0 {
		p.MinRating = math.Min(r, 5)
	}
	if raw := v.Get("facilities"); raw != "" {
		for _, key := range strings.Split(raw, ",") {
			if key = strings.TrimSpace(key); key != "" {
				p.Facilities = append(p.Facilities, key)
			}
		}
	}
	if b, ok := parseCorners(v); ok {
		p.Bounds = &b
	}
	if n, err := strconv.Atoi(v.Get("page")); err == nil && n >= 1 {
		p.Page = n
	}
	if n, err := strconv.Atoi(v.Get("limit")); err == nil && n >= 1 && n <= 100 {
		p.Limit = n
	}
	return p
}

func parseCorners(v url.Values) (geo.Bounds, bool) {
	raw := [4]string{v.Get("swLat"), v.Get("swLng"), v.Get("neLat"), v.Get("neLng")}
	var vals [4]float64
	for i, s := range raw {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return geo.Bounds{}, false
		}
		vals[i] = f
	}
	return geo.Bounds{SWLat: vals[0], SWLng: vals[1], NELat: vals[2], NELng: vals[3]}, true
}

// Search runs a faceted catalog query and returns one result page plus
// the total match count. Prices are stored in RON and served in the
// requested currency.
func Search(p Params) ([]listing.Listing, int, error) {
	where, args := buildWhere(p)

	var total int
	countQuery := "SELECT COUNT(*) FROM Listing" + where
	if err := db.Get().QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting listings: %w", err)
	}

	query := "SELECT id, title, type, price_ron, rating_avg, reviews_count, amenities, lat, lng, images FROM Listing" +
		where + orderBy(p.Sort) + " LIMIT ? OFFSET ?"
	rows, err := db.Get().Query(query, append(args, p.Limit, (p.Page-1)*p.Limit)...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying listings: %w", err)
	}
	defer rows.Close()

	var items []listing.Listing
	for rows.Next() {
		var (
			it        listing.Listing
			priceRON  float64
			amenities string
			images    string
			lat, lng  float64
		)
		if err := rows.Scan(&it.ID, &it.Title, &it.PropertyType, &priceRON, &it.RatingAvg,
			&it.ReviewsCount, &amenities, &lat, &lng, &images); err != nil {
			return nil, 0, fmt.Errorf("error scanning listing: %w", err)
		}
		it.PricePerNight = convertPrice(priceRON, p.Currency)
		it.Currency = string(p.Currency)
		it.Amenities = splitCSV(amenities)
		it.Images = splitCSV(images)
		it.Geo = listing.Geo{Coordinates: [2]float64{lng, lat}}
		items = append(items, it)
	}
	return items, total, rows.Err()
}

func buildWhere(p Params) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if p.Q != "" {
		clauses = append(clauses, "title LIKE '%' || ? || '%'")
		args = append(args, p.Q)
	}
	if p.Type != "" && p.Type != filter.PropertyTypeAll {
		clauses = append(clauses, "type = ?")
		args = append(args, p.Type)
	}
	if p.PriceMin != nil {
		clauses = append(clauses, "price_ron >= ?")
		args = append(args, toRON(*p.PriceMin, p.Currency))
	}
	if p.PriceMax != nil {
		clauses = append(clauses, "price_ron <= ?")
		args = append(args, toRON(*p.PriceMax, p.Currency))
	}
	if p.MinRating > 0 {
		clauses = append(clauses, "rating_avg >= ?")
		args = append(args, p.MinRating)
	}
	for _, key := range p.Facilities {
		clauses = append(clauses, "',' || amenities || ',' LIKE '%,' || ? || ',%'")
		args = append(args, key)
	}
	if p.Bounds != nil {
		clauses = append(clauses, "lat BETWEEN ? AND ?", "lng BETWEEN ? AND ?")
		args = append(args, p.Bounds.SWLat, p.Bounds.NELat, p.Bounds.SWLng, p.Bounds.NELng)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func orderBy(s filter.Sort) string {
	switch s {
	case filter.SortRatingDesc:
		return " ORDER BY rating_avg DESC, reviews_count DESC"
	case filter.SortPriceAsc:
		return " ORDER BY price_ron ASC"
	case filter.SortPriceDesc:
		return " ORDER BY price_ron DESC"
	default:
		return " ORDER BY reviews_count DESC, rating_avg DESC"
	}
}

func convertPrice(priceRON float64, c filter.Currency) float64 {
	if c == filter.EUR {
		return math.Round(priceRON/EURRate*100) / 100
	}
	return priceRON
}

func toRON(v float64, c filter.Currency) float64 {
	if c == filter.EUR {
		return v * EURRate
	}
	return v
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
