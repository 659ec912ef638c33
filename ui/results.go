package ui

import (
	"fmt"
	"strconv"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/cazare-ro/site/listing"
	"github.com/cazare-ro/site/session"
)

// ResultsSection renders the result list, the error banner with retry,
// and pagination.
func ResultsSection(snap session.Snapshot) g.Node {
	if snap.Err != "" {
		return errorBanner(snap.Err)
	}
	if len(snap.Results) == 0 {
		return noResultsMessage()
	}

	var cards []g.Node
	for _, it := range snap.Results {
		cards = append(cards, listingCard(it, it.ID == snap.ActiveID))
	}

	return Div(
		Div(
			Class("text-sm text-gray-500 mb-2"),
			g.Text(fmt.Sprintf("%d cazări găsite", snap.Total)),
		),
		Div(
			ID("resultList"),
			Class("grid grid-cols-1 md:grid-cols-2 gap-4"),
			g.Group(cards),
		),
		pagination(snap.State.Page, snap.TotalPages),
	)
}

func listingCard(it listing.Listing, active bool) g.Node {
	class := "border rounded-lg p-4 bg-white hover:shadow-md transition-shadow"
	if active {
		class += " ring-2 ring-emerald-500"
	}
	return Div(
		Class(class),
		g.Attr("data-listing-id", it.ID),
		g.Attr("data-lat", fmt.Sprintf("%f", it.Geo.Lat())),
		g.Attr("data-lng", fmt.Sprintf("%f", it.Geo.Lng())),
		hx.Post("/hover/"+it.ID),
		hx.Trigger("mouseenter"),
		hx.Swap("none"),
		H3(Class("font-semibold mb-1"), g.Text(it.Title)),
		Div(
			Class("text-sm text-gray-600 mb-2"),
			g.Text(fmt.Sprintf("%s · %.1f ★ (%d recenzii)", it.PropertyType, it.RatingAvg, it.ReviewsCount)),
		),
		Div(
			Class("font-bold text-emerald-700"),
			g.Text(priceLabel(it)),
		),
	)
}

func priceLabel(it listing.Listing) string {
	unit := "lei"
	if it.Currency == "EUR" {
		unit = "€"
	}
	return fmt.Sprintf("%s %s / noapte", strconv.FormatFloat(it.PricePerNight, 'f', -1, 64), unit)
}

func pagination(page, totalPages int) g.Node {
	if totalPages <= 1 {
		return g.Text("")
	}

	pageButton := func(p int, label string, disabled bool) g.Node {
		if disabled {
			return Span(Class("px-3 py-1 text-gray-300"), g.Text(label))
		}
		return Button(
			Type("button"),
			Class("px-3 py-1 border rounded hover:bg-gray-50"),
			hx.Post("/page?value="+strconv.Itoa(p)),
			hx.Target("#searchBody"),
			hx.Swap("outerHTML"),
			g.Text(label),
		)
	}

	return Div(
		Class("flex items-center justify-center gap-2 mt-4"),
		pageButton(page-1, "‹", page <= 1),
		Span(Class("text-sm text-gray-600"), g.Text(fmt.Sprintf("pagina %d din %d", page, totalPages))),
		pageButton(page+1, "›", page >= totalPages),
	)
}

func noResultsMessage() g.Node {
	return Div(
		Class("text-center text-gray-500 py-12"),
		g.Text("Nicio cazare nu se potrivește filtrelor. Încearcă să le lărgești."),
	)
}

func errorBanner(msg string) g.Node {
	return Div(
		Class("border border-red-300 bg-red-50 rounded-lg p-4 text-center"),
		Div(Class("text-red-700 mb-2"), g.Text("Căutarea a eșuat: "+msg)),
		Button(
			Type("button"),
			Class("px-4 py-2 bg-red-600 text-white rounded hover:bg-red-700"),
			hx.Post("/retry"),
			hx.Target("#searchBody"),
			hx.Swap("outerHTML"),
			g.Text("Reîncearcă"),
		),
	)
}
