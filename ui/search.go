package ui

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/cazare-ro/site/filter"
	"github.com/cazare-ro/site/session"
)

// SearchPage renders the complete discovery page.
func SearchPage(snap session.Snapshot, recent []string) g.Node {
	return Page("Cazare — căutare", []g.Node{
		SearchSection(snap, recent),
		Div(
			Class("grid grid-cols-1 lg:grid-cols-2 gap-6"),
			SearchBody(snap),
			MapSection(snap),
		),
	})
}

// SearchPartial is the htmx response after any committed transition:
// the search body plus out-of-band refreshes of the map data and the
// "search this area" affordance.
func SearchPartial(snap session.Snapshot) g.Node {
	return g.Group([]g.Node{
		SearchBody(snap),
		mapData(snap, true),
		areaButton(snap, true),
	})
}

// SearchSection is the free-text input plus sort and currency controls.
// The input is debounced on the client so keystrokes do not become
// requests, and again in the session so requests do not become fetches.
func SearchSection(snap session.Snapshot, recent []string) g.Node {
	s := snap.State
	return Div(
		Class("mb-4 flex flex-wrap items-center gap-3"),
		Input(
			Type("search"),
			Name("q"),
			ID("searchInput"),
			Class("flex-1 min-w-64 p-3 border rounded-lg"),
			Placeholder("Caută cabane, vile, pensiuni..."),
			Value(s.FreeText),
			g.Attr("list", "recent-searches"),
			g.Attr("autocomplete", "off"),
			hx.Get("/search"),
			hx.Trigger("input changed delay:250ms"),
			hx.Target("#searchBody"),
			hx.Swap("outerHTML"),
		),
		DataList(
			ID("recent-searches"),
			g.Group(recentOptions(recent)),
		),
		sortSelect(s.Sort),
		currencyToggle(s.Currency),
	)
}

func recentOptions(recent []string) []g.Node {
	var opts []g.Node
	for _, q := range recent {
		opts = append(opts, Option(Value(q)))
	}
	return opts
}

func sortSelect(active filter.Sort) g.Node {
	options := []struct {
		value filter.Sort
		label string
	}{
		{filter.SortRecommended, "Recomandate"},
		{filter.SortRatingDesc, "Rating descrescător"},
		{filter.SortPriceAsc, "Preț crescător"},
		{filter.SortPriceDesc, "Preț descrescător"},
	}

	var opts []g.Node
	for _, o := range options {
		opts = append(opts, Option(
			Value(string(o.value)),
			g.Text(o.label),
			g.If(o.value == active, Selected()),
		))
	}

	return Select(
		Name("value"),
		Class("p-3 border rounded-lg bg-white"),
		hx.Post("/sort"),
		hx.Trigger("change"),
		hx.Target("#searchBody"),
		hx.Swap("outerHTML"),
		g.Group(opts),
	)
}

func currencyToggle(active filter.Currency) g.Node {
	button := func(c filter.Currency) g.Node {
		class := "px-3 py-2 border first:rounded-l-lg last:rounded-r-lg "
		if c == active {
			class += "bg-emerald-600 text-white"
		} else {
			class += "bg-white hover:bg-gray-50"
		}
		return Button(
			Type("button"),
			Class(class),
			hx.Post("/currency?value="+string(c)),
			hx.Target("#searchBody"),
			hx.Swap("outerHTML"),
			g.Text(string(c)),
		)
	}
	return Div(
		Class("flex"),
		button(filter.RON),
		button(filter.EUR),
	)
}

// SearchBody groups everything that re-renders on a committed
// transition: chips, the filter panel and the result list.
func SearchBody(snap session.Snapshot) g.Node {
	return Div(
		ID("searchBody"),
		ChipsRow(snap.Chips),
		FilterPanel(snap),
		ResultsSection(snap),
	)
}
