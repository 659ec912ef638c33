package ui

import (
	"net/url"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/cazare-ro/site/filter"
)

// ChipsRow renders the active, non-default facets as removable chips.
func ChipsRow(chips []filter.Chip) g.Node {
	if len(chips) == 0 {
		return Div(ID("chipsRow"))
	}

	var nodes []g.Node
	for _, chip := range chips {
		nodes = append(nodes, chipNode(chip))
	}
	return Div(
		ID("chipsRow"),
		Class("flex flex-wrap gap-2 mb-3"),
		g.Group(nodes),
	)
}

func chipNode(chip filter.Chip) g.Node {
	label := Span(Class("text-sm"), g.Text(chip.Label))
	if chip.Key == "" {
		// Display-only, e.g. the "+N more amenities" summary.
		return Span(
			Class("inline-flex items-center px-3 py-1 bg-gray-100 rounded-full"),
			label,
		)
	}
	return Span(
		Class("inline-flex items-center gap-1 px-3 py-1 bg-emerald-50 border border-emerald-200 rounded-full"),
		label,
		Button(
			Type("button"),
			Class("text-emerald-700 hover:text-emerald-900 font-bold"),
			g.Attr("aria-label", "Elimină filtrul"),
			hx.Post("/chips/remove?key="+url.QueryEscape(chip.Key)),
			hx.Target("#searchBody"),
			hx.Swap("outerHTML"),
			g.Text("×"),
		),
	)
}
