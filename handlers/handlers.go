package handlers

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	g "maragu.dev/gomponents"

	"github.com/cazare-ro/site/cookie"
	"github.com/cazare-ro/site/filter"
	"github.com/cazare-ro/site/history"
	"github.com/cazare-ro/site/listing"
	"github.com/cazare-ro/site/session"
	"github.com/cazare-ro/site/ui"
)

// settleTimeout caps how long a handler waits for the pipeline to
// settle before answering with whatever state it has.
const settleTimeout = 15 * time.Second

var (
	sessions     *session.Registry
	searchClient *listing.Client
	searches     *history.Store
)

// Init wires the handler package to its collaborators.
func Init(reg *session.Registry, client *listing.Client, hist *history.Store) {
	sessions = reg
	searchClient = client
	searches = hist
}

// render sets the content type to HTML and renders the component.
func render(c *fiber.Ctx, component g.Node) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTML)
	return component.Render(c.Response().BodyWriter())
}

// sessionID returns the visitor's session ID, minting one if needed.
func sessionID(c *fiber.Ctx) string {
	id := cookie.GetSearchSession(c)
	if id == "" {
		id = session.NewID()
		cookie.SetSearchSession(c, id)
	}
	return id
}

// getSession resolves the visitor's live session. When the session has
// been evicted, a fresh one is rebuilt from the page URL htmx reports,
// so an expired cookie degrades to a state reload instead of an error.
func getSession(c *fiber.Ctx) *session.Session {
	id := sessionID(c)
	if s, ok := sessions.Get(id); ok {
		return s
	}
	s := sessions.GetOrCreate(id)
	s.Init(filter.Decode(currentURLValues(c)))
	return s
}

// queryValues converts the request query into url.Values.
func queryValues(c *fiber.Ctx) url.Values {
	v := url.Values{}
	c.Request().URI().QueryArgs().VisitAll(func(key, value []byte) {
		v.Add(string(key), string(value))
	})
	return v
}

// currentURLValues reads the query of the page URL htmx reports.
func currentURLValues(c *fiber.Ctx) url.Values {
	raw := c.Get("HX-Current-URL")
	if raw == "" {
		return queryValues(c)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return url.Values{}
	}
	return u.Query()
}

// commit runs one user action against the session, waits for the
// pipeline to settle, mirrors the canonical state into the page URL
// via history-replace, and renders the refreshed search body.
func commit(c *fiber.Ctx, s *session.Session, act func()) error {
	act()
	snap := s.WaitSettled(settleTimeout)
	c.Set("HX-Replace-Url", snap.PageURL)
	return render(c, ui.SearchPartial(snap))
}
