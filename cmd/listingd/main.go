package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/cazare-ro/site/catalog"
	"github.com/cazare-ro/site/config"
	"github.com/cazare-ro/site/db"
)

// listingd is the dev listing backend: a sqlite-backed implementation
// of the listing search endpoint the site queries.
func main() {
	if err := db.Init(config.DatabaseURL); err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	if err := catalog.EnsureSchema(); err != nil {
		log.Fatalf("error creating schema: %v", err)
	}
	if err := catalog.Seed(); err != nil {
		log.Fatalf("error seeding catalog: %v", err)
	}

	port := os.Getenv("LISTING_PORT")
	if port == "" {
		port = "8081"
	}

	fmt.Printf("Starting listing backend on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, catalog.NewMux()))
}
