package ui

import (
	"fmt"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/cazare-ro/site/geo"
	"github.com/cazare-ro/site/session"
)

// MapSection renders the map container once per page load. Partial
// updates only swap the hidden data container and the "search this
// area" affordance, so the Leaflet instance survives facet changes.
func MapSection(snap session.Snapshot) g.Node {
	var initScript string
	if b, ok := geo.Parse(snap.State.CommittedBounds); ok {
		initScript = fmt.Sprintf("initMap({swLat: %f, swLng: %f, neLat: %f, neLng: %f});",
			b.SWLat, b.SWLng, b.NELat, b.NELng)
	} else {
		initScript = "initMap();"
	}

	return Div(
		ID("map-view"),
		Class("relative"),
		Div(
			Class("h-[36rem] w-full rounded-lg border bg-gray-50"),
			Div(
				ID("map-container"),
				Class("h-full w-full"),
				Style("border-radius: inherit; overflow: hidden;"),
			),
		),
		areaButton(snap, false),
		mapData(snap, false),
		Script(
			Type("text/javascript"),
			g.Raw(initScript),
		),
	)
}

// mapData carries listing coordinates for the Leaflet glue. Swapped
// out-of-band on every committed transition.
func mapData(snap session.Snapshot, oob bool) g.Node {
	var items []g.Node
	for _, it := range snap.Results {
		items = append(items,
			Div(
				g.Attr("data-listing-id", it.ID),
				g.Attr("data-lat", fmt.Sprintf("%f", it.Geo.Lat())),
				g.Attr("data-lng", fmt.Sprintf("%f", it.Geo.Lng())),
				g.Attr("data-title", it.Title),
				g.Attr("data-price", priceLabel(it)),
				g.Iff(it.ID == snap.ActiveID, func() g.Node { return g.Attr("data-active", "true") }),
			),
		)
	}
	return Div(
		ID("map-data"),
		Class("hidden"),
		g.If(oob, g.Attr("hx-swap-oob", "true")),
		g.Group(items),
	)
}

// areaButton is the "search this area" affordance, shown while the
// settled camera differs from the committed search area.
func areaButton(snap session.Snapshot, oob bool) g.Node {
	buttonClass := "px-4 py-2 bg-emerald-600 text-white rounded-full shadow-lg hover:bg-emerald-700"
	wrapperClass := "absolute top-3 left-1/2 -translate-x-1/2 z-[1000]"
	if !snap.Dirty {
		wrapperClass += " hidden"
	}

	var clear g.Node = g.Text("")
	if snap.State.CommittedBounds != "" {
		clear = Button(
			Type("button"),
			Class("ml-2 px-4 py-2 bg-white border rounded-full shadow-lg hover:bg-gray-50"),
			hx.Post("/map/area/clear"),
			hx.Target("#searchBody"),
			hx.Swap("outerHTML"),
			g.Text("Elimină zona"),
		)
	}

	return Div(
		ID("area-button"),
		Class(wrapperClass),
		g.If(oob, g.Attr("hx-swap-oob", "true")),
		Button(
			Type("button"),
			Class(buttonClass),
			hx.Post("/map/area"),
			hx.Include("#map-bounds"),
			hx.Target("#searchBody"),
			hx.Swap("outerHTML"),
			g.Text("Caută în această zonă"),
		),
		clear,
		Input(Type("hidden"), ID("map-bounds"), Name("bounds")),
	)
}
