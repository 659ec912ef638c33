package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cazare-ro/site/history"
	"github.com/cazare-ro/site/listing"
	"github.com/cazare-ro/site/session"
)

// setupApp wires the handler package to a stub listing backend and an
// in-memory Redis, and returns a fiber app with the production routes.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(listing.SearchResult{
			Items: []listing.Listing{
				{
					ID:            "l-001",
					Title:         "Cabana Piatra Mare",
					PropertyType:  "cabana",
					PricePerNight: 320,
					Currency:      "RON",
					Geo:           listing.Geo{Coordinates: [2]float64{25.62, 45.55}},
				},
				{ID: "l-002", Title: "Vila Delta", PropertyType: "vila", PricePerNight: 80, Currency: "RON"},
				{ID: "l-003", Title: "Pensiunea Bran", PropertyType: "pensiune", PricePerNight: 250, Currency: "RON"},
				{ID: "l-004", Title: "Casa Sibiu", PropertyType: "casa", PricePerNight: 700, Currency: "RON"},
			},
			Total: 4,
		})
	}))
	t.Cleanup(backend.Close)

	client, err := listing.NewClient(backend.URL)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	hist := history.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 5)

	reg := session.NewRegistry(time.Minute, func(id string) *session.Session {
		return session.New(client, session.Options{
			TextDebounce: 20 * time.Millisecond,
			IdleDebounce: 10 * time.Millisecond,
			PopupDelay:   10 * time.Millisecond,
			Limit:        4,
			Recorder:     func(q string) { hist.Record(id, q) },
		})
	})

	Init(reg, client, hist)

	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Get("/", HandleHome)
	app.Get("/search", HandleSearch)
	app.Post("/sort", HandleSort)
	app.Post("/type", HandleType)
	app.Post("/rating", HandleRating)
	app.Post("/price", HandlePrice)
	app.Post("/price/draft", HandlePriceDraft)
	app.Post("/amenity/:key", HandleAmenity)
	app.Post("/currency", HandleCurrency)
	app.Post("/page", HandlePage)
	app.Post("/filters/clear", HandleClearFilters)
	app.Post("/chips/remove", HandleChipRemove)
	app.Post("/map/moved", HandleMapMoved)
	app.Post("/map/area", HandleSearchArea)
	app.Post("/map/area/clear", HandleClearArea)
	app.Post("/hover/:id", HandleHover)
	app.Post("/hover/:id/clear", HandleHoverClear)
	return app
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, ck := range resp.Cookies() {
		if ck.Name == "search_session" {
			return ck
		}
	}
	t.Fatal("no search_session cookie set")
	return nil
}

func formRequest(path, body string, ck *http.Cookie) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if ck != nil {
		req.AddCookie(ck)
	}
	return req
}

func TestHomePageRenders(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 200, resp.StatusCode)
	assert.NotNil(t, sessionCookie(t, resp))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "searchBody")
	assert.Contains(t, string(body), "Cabana Piatra Mare")
}

func TestHomePageMountsFromURL(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/?type=vila&minRating=4", nil), 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 200, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "type: vila", "chip for the mounted type filter")
}

func TestFacetCommitReplacesURL(t *testing.T) {
	app := setupApp(t)

	home, err := app.Test(httptest.NewRequest("GET", "/", nil), 5000)
	require.NoError(t, err)
	home.Body.Close()
	ck := sessionCookie(t, home)

	resp, err := app.Test(formRequest("/type", "value=vila", ck), 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "/?type=vila", resp.Header.Get("HX-Replace-Url"))
}

func TestSearchDebouncedCommitRecordsHistory(t *testing.T) {
	app := setupApp(t)

	home, err := app.Test(httptest.NewRequest("GET", "/", nil), 5000)
	require.NoError(t, err)
	home.Body.Close()
	ck := sessionCookie(t, home)

	req := httptest.NewRequest("GET", "/search?q=cabana", nil)
	req.AddCookie(ck)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "/?q=cabana", resp.Header.Get("HX-Replace-Url"))

	assert.Eventually(t, func() bool {
		recent := searches.Recent(ck.Value)
		return len(recent) == 1 && recent[0] == "cabana"
	}, time.Second, 10*time.Millisecond)
}

func TestMapAreaCommitAndClear(t *testing.T) {
	app := setupApp(t)

	home, err := app.Test(httptest.NewRequest("GET", "/", nil), 5000)
	require.NoError(t, err)
	home.Body.Close()
	ck := sessionCookie(t, home)

	bounds := "bounds=45.100000,25.200000,45.900000,25.800000"

	moved, err := app.Test(formRequest("/map/moved", bounds, ck), 5000)
	require.NoError(t, err)
	moved.Body.Close()
	assert.Equal(t, 204, moved.StatusCode)

	resp, err := app.Test(formRequest("/map/area", bounds, ck), 5000)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("HX-Replace-Url"), "bounds=")

	cleared, err := app.Test(formRequest("/map/area/clear", "", ck), 5000)
	require.NoError(t, err)
	cleared.Body.Close()
	require.Equal(t, 200, cleared.StatusCode)
	assert.Equal(t, "/", cleared.Header.Get("HX-Replace-Url"))
}

func TestHoverSurfacesEaseTarget(t *testing.T) {
	app := setupApp(t)

	home, err := app.Test(httptest.NewRequest("GET", "/", nil), 5000)
	require.NoError(t, err)
	home.Body.Close()
	ck := sessionCookie(t, home)

	resp, err := app.Test(formRequest("/hover/l-001", "", ck), 5000)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, 204, resp.StatusCode)

	trigger := resp.Header.Get("HX-Trigger")
	assert.Contains(t, trigger, "map:ease")
	assert.Contains(t, trigger, "45.550000")
	assert.Contains(t, trigger, "25.620000")

	// Hovering something not in the result set highlights nothing to
	// ease toward.
	none, err := app.Test(formRequest("/hover/l-999", "", ck), 5000)
	require.NoError(t, err)
	none.Body.Close()
	require.Equal(t, 204, none.StatusCode)
	assert.Empty(t, none.Header.Get("HX-Trigger"))

	cleared, err := app.Test(formRequest("/hover/l-001/clear", "", ck), 5000)
	require.NoError(t, err)
	cleared.Body.Close()
	assert.Equal(t, 204, cleared.StatusCode)
}

func TestEvictedSessionRebuildsFromCurrentURL(t *testing.T) {
	app := setupApp(t)

	// A cookie for a session the registry no longer holds.
	ck := &http.Cookie{Name: "search_session", Value: session.NewID()}

	req := formRequest("/page", "", ck)
	req.URL.RawQuery = "value=1"
	req.Header.Set("HX-Current-URL", "https://cazare.example/?type=pensiune")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 200, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "type: pensiune", "state rebuilt from the reported page URL")
}

func TestPriceDraftDoesNotCommit(t *testing.T) {
	app := setupApp(t)

	home, err := app.Test(httptest.NewRequest("GET", "/", nil), 5000)
	require.NoError(t, err)
	home.Body.Close()
	ck := sessionCookie(t, home)

	resp, err := app.Test(formRequest("/price/draft", "priceMin=100&priceMax=600", ck), 5000)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 204, resp.StatusCode)

	committed, err := app.Test(formRequest("/price", "priceMin=100&priceMax=600", ck), 5000)
	require.NoError(t, err)
	committed.Body.Close()
	require.Equal(t, 200, committed.StatusCode)
	assert.Contains(t, committed.Header.Get("HX-Replace-Url"), "priceMin=100")
}
