package ui

import (
	"fmt"
	"strconv"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/cazare-ro/site/filter"
	"github.com/cazare-ro/site/session"
)

var propertyTypes = []struct {
	value string
	label string
}{
	{filter.PropertyTypeAll, "Toate"},
	{"cabana", "Cabană"},
	{"apartament", "Apartament"},
	{"vila", "Vilă"},
	{"pensiune", "Pensiune"},
	{"casa", "Casă"},
}

var amenityOptions = []struct {
	key   string
	label string
}{
	{"wifi", "Wi-Fi"},
	{"parking", "Parcare"},
	{"pool", "Piscină"},
	{"spa", "Spa"},
	{"sauna", "Saună"},
	{"fireplace", "Șemineu"},
	{"breakfast", "Mic dejun"},
	{"petFriendly", "Pet friendly"},
}

// FilterPanel renders every facet control. The price sliders take their
// extent and step from the bounds derived off the current result page.
func FilterPanel(snap session.Snapshot) g.Node {
	return Div(
		Class("bg-white border rounded-lg p-4 mb-4 grid grid-cols-1 md:grid-cols-2 gap-4"),
		typeFilter(snap.State.PropertyType),
		ratingFilter(snap.State.MinRating),
		priceFilter(snap),
		amenityFilter(snap.State),
		clearFilters(),
	)
}

func typeFilter(active string) g.Node {
	var opts []g.Node
	for _, t := range propertyTypes {
		opts = append(opts, Option(
			Value(t.value),
			g.Text(t.label),
			g.If(t.value == active, Selected()),
		))
	}
	return Div(
		Label(Class("block text-sm font-medium mb-1"), g.Text("Tip proprietate")),
		Select(
			Name("value"),
			Class("w-full p-2 border rounded-md"),
			hx.Post("/type"),
			hx.Trigger("change"),
			hx.Target("#searchBody"),
			hx.Swap("outerHTML"),
			g.Group(opts),
		),
	)
}

func ratingFilter(active float64) g.Node {
	ratings := []float64{0, 3, 3.5, 4, 4.5}
	var opts []g.Node
	for _, r := range ratings {
		label := "Oricare"
		if r > 0 {
			label = fmt.Sprintf("%.1f+", r)
		}
		opts = append(opts, Option(
			Value(strconv.FormatFloat(r, 'f', -1, 64)),
			g.Text(label),
			g.If(r == active, Selected()),
		))
	}
	return Div(
		Label(Class("block text-sm font-medium mb-1"), g.Text("Rating minim")),
		Select(
			Name("value"),
			Class("w-full p-2 border rounded-md"),
			hx.Post("/rating"),
			hx.Trigger("change"),
			hx.Target("#searchBody"),
			hx.Swap("outerHTML"),
			g.Group(opts),
		),
	)
}

// priceFilter renders the min/max sliders. Dragging moves the value
// label and feeds the draft endpoint; the release's change event
// bubbles to the wrapper, which commits both ends in one request.
func priceFilter(snap session.Snapshot) g.Node {
	b := snap.PriceBounds
	s := snap.State

	min := b.Min
	if s.PriceMin != nil {
		min = *s.PriceMin
	}
	max := b.Max
	if s.PriceMax != nil {
		max = *s.PriceMax
	}

	slider := func(name string, value float64, labelID string) g.Node {
		return Input(
			Type("range"),
			Name(name),
			Class("w-full"),
			Min(formatNum(b.Min)),
			Max(formatNum(b.Max)),
			Step(formatNum(b.Step)),
			Value(formatNum(value)),
			g.Attr("oninput", fmt.Sprintf("document.getElementById('%s').textContent=this.value", labelID)),
			hx.Post("/price/draft"),
			hx.Trigger("input throttle:150ms"),
			hx.Include("closest div"),
			hx.Swap("none"),
		)
	}

	return Div(
		Class("md:col-span-2"),
		hx.Post("/price"),
		hx.Trigger("change"),
		hx.Include("this"),
		hx.Target("#searchBody"),
		hx.Swap("outerHTML"),
		Label(Class("block text-sm font-medium mb-1"),
			g.Text("Preț pe noapte ("),
			Span(ID("price-min-label"), g.Text(formatNum(min))),
			g.Text(" – "),
			Span(ID("price-max-label"), g.Text(formatNum(max))),
			g.Text(" "+currencyUnit(s.Currency)+")"),
		),
		slider("priceMin", min, "price-min-label"),
		slider("priceMax", max, "price-max-label"),
	)
}

func amenityFilter(s filter.State) g.Node {
	var boxes []g.Node
	for _, a := range amenityOptions {
		boxes = append(boxes, Label(
			Class("flex items-center gap-2 text-sm"),
			Input(
				Type("checkbox"),
				g.If(s.HasAmenity(a.key), Checked()),
				hx.Post("/amenity/"+a.key),
				hx.Target("#searchBody"),
				hx.Swap("outerHTML"),
			),
			g.Text(a.label),
		))
	}
	return Div(
		Class("md:col-span-2"),
		Label(Class("block text-sm font-medium mb-1"), g.Text("Facilități")),
		Div(Class("grid grid-cols-2 md:grid-cols-4 gap-2"), g.Group(boxes)),
	)
}

func clearFilters() g.Node {
	return Div(
		Class("md:col-span-2 flex justify-end"),
		Button(
			Type("button"),
			Class("px-4 py-2 border border-gray-400 text-gray-600 rounded-full hover:bg-gray-50"),
			hx.Post("/filters/clear"),
			hx.Target("#searchBody"),
			hx.Swap("outerHTML"),
			g.Text("Șterge filtrele"),
		),
	)
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func currencyUnit(c filter.Currency) string {
	if c == filter.EUR {
		return "€"
	}
	return "lei"
}
