package ui

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"

	"github.com/cazare-ro/site/config"
)

// ---- Page Layout ----

func Page(title string, content []g.Node) g.Node {
	return components.HTML5(components.HTML5Props{
		Title:    title,
		Language: "ro",
		Head: []g.Node{
			Link(
				Rel("stylesheet"),
				Href(config.TailwindCSSURL),
			),
			// Leaflet CSS for map functionality
			Link(
				Rel("stylesheet"),
				Href(config.LeafletCSSURL),
			),
			Script(
				Type("text/javascript"),
				Src(config.HTMXURL),
				Defer(),
			),
			// Leaflet JS for map functionality
			Script(
				Type("text/javascript"),
				Src(config.LeafletJSURL),
				Defer(),
			),
			// Custom map functionality
			Script(
				Type("text/javascript"),
				Src("/js/map.js"),
				Defer(),
			),
		},
		Body: []g.Node{
			Div(
				Class("container mx-auto px-4 py-6"),
				navigation(),
				g.Group(content),
			),
		},
	})
}

func navigation() g.Node {
	return Div(
		Class("flex items-center justify-between mb-6"),
		A(Href("/"), Class("text-2xl font-bold text-emerald-700"), g.Text("Cazare")),
		Span(Class("text-sm text-gray-500"), g.Text("cazări la munte și la mare")),
	)
}

func pageHeader(text string) g.Node {
	return H1(Class("text-3xl font-bold mb-6"), g.Text(text))
}
