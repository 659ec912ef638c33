package ui

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ErrorPage renders the full-page error view.
func ErrorPage(code int, message string) g.Node {
	return Page("Cazare — eroare", []g.Node{
		Div(
			Class("text-center py-16"),
			pageHeader(fmt.Sprintf("Eroare %d", code)),
			P(Class("text-gray-600 mb-6"), g.Text(message)),
			A(
				Href("/"),
				Class("px-4 py-2 bg-emerald-600 text-white rounded-full hover:bg-emerald-700"),
				g.Text("Înapoi la căutare"),
			),
		),
	})
}
