package catalog

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/cazare-ro/site/listing"
)

// NewMux builds the HTTP surface of the dev listing backend.
func NewMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/listings", handleSearch)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func handleSearch(w http.ResponseWriter, r *http.Request) {
	params := ParseParams(r.URL.Query())

	items, total, err := Search(params)
	if err != nil {
		log.Printf("[catalog] search error: %v", err)
		http.Error(w, `{"error":"search failed"}`, http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []listing.Listing{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(listing.SearchResult{Items: items, Total: total}); err != nil {
		log.Printf("[catalog] encode error: %v", err)
	}
}
