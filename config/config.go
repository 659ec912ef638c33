package config

import (
	"os"
	"time"
)

// Settings read from the environment at startup.
var (
	ServerPort    = getenv("PORT", "8080")
	ListingAPIURL = getenv("LISTING_API_URL", "http://localhost:8081/api/listings")
	RedisAddress  = getenv("REDIS_ADDR", "localhost:6379")
	RedisPassword = os.Getenv("REDIS_PASSWORD")
	DatabaseURL   = getenv("LISTING_DB", "listings.db")
)

const (
	// SearchPageLimit is the page size requested from the listing endpoint.
	SearchPageLimit = 20

	// TextDebounceWindow separates keystroke cadence from fetch cadence.
	TextDebounceWindow = 250 * time.Millisecond

	// MapIdleWindow is how long the camera must rest before the live
	// viewport is considered settled.
	MapIdleWindow = 300 * time.Millisecond

	// PopupCloseDelay tolerates pointer transit between a marker and its
	// popup before the popup actually closes.
	PopupCloseDelay = 140 * time.Millisecond

	// SessionTTL evicts idle search sessions from the registry.
	SessionTTL = 30 * time.Minute

	// ResultCacheTTL bounds how long a listing query response is reused.
	ResultCacheTTL = time.Minute

	// Price distribution clip percentiles for slider bounds.
	PricePercentileLow  = 2
	PricePercentileHigh = 98

	// RecentSearchLimit caps the per-session search history ring.
	RecentSearchLimit = 5

	ServerRateLimitMax = 120
	ServerRateLimitExp = 30 * time.Second

	ListingFetchTimeout = 10 * time.Second
)

// CDN assets for the page layout.
const (
	TailwindCSSURL = "https://cdn.jsdelivr.net/npm/tailwindcss@2.2.19/dist/tailwind.min.css"
	HTMXURL        = "https://unpkg.com/htmx.org@1.9.12"
	LeafletCSSURL  = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	LeafletJSURL   = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
