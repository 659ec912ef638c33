package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/cazare-ro/site/config"
	h "github.com/cazare-ro/site/handlers"
	"github.com/cazare-ro/site/history"
	"github.com/cazare-ro/site/listing"
	"github.com/cazare-ro/site/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment")
	}

	// Initialize the listing client with its result cache
	client, err := listing.NewClient(config.ListingAPIURL)
	if err != nil {
		log.Fatalf("Failed to initialize listing client: %v", err)
	}

	// Initialize recent-search history
	searches := history.New(config.RedisAddress, config.RedisPassword, config.RecentSearchLimit)

	// Initialize the search session registry
	registry := session.NewRegistry(config.SessionTTL, func(id string) *session.Session {
		return session.New(client, session.Options{
			Recorder: func(q string) { searches.Record(id, q) },
		})
	})
	registry.StartSweeper()

	h.Init(registry, client, searches)

	app := fiber.New(fiber.Config{
		ErrorHandler: h.CustomErrorHandler,
		ReadTimeout:  30 * time.Second, // Prevent long-running requests
		WriteTimeout: 30 * time.Second, // Prevent long-running responses
	})

	// Add rate limiter
	app.Use(limiter.New(limiter.Config{
		Max:        config.ServerRateLimitMax,
		Expiration: config.ServerRateLimitExp,
	}))

	// Add logger middleware
	app.Use(logger.New())

	// Static files
	app.Static("/", "./static")

	// Main search page
	app.Get("/", h.HandleHome)
	app.Get("/search", h.HandleSearch)

	// Facet commits
	app.Post("/sort", h.HandleSort)
	app.Post("/type", h.HandleType)
	app.Post("/rating", h.HandleRating)
	app.Post("/price", h.HandlePrice)
	app.Post("/price/draft", h.HandlePriceDraft)
	app.Post("/amenity/:key", h.HandleAmenity)
	app.Post("/currency", h.HandleCurrency)
	app.Post("/page", h.HandlePage)
	app.Post("/filters/clear", h.HandleClearFilters)
	app.Post("/chips/remove", h.HandleChipRemove)
	app.Post("/retry", h.HandleRetry)

	// Map viewport
	app.Post("/map/moved", h.HandleMapMoved)
	app.Post("/map/area", h.HandleSearchArea)
	app.Post("/map/area/clear", h.HandleClearArea)
	app.Post("/hover/:id", h.HandleHover)
	app.Post("/hover/:id/clear", h.HandleHoverClear)
	app.Post("/popup/open/:id", h.HandlePopupOpen)
	app.Post("/popup/close/:id", h.HandlePopupClose)

	// Health check
	app.Get("/health", h.HandleHealth)

	fmt.Printf("Starting server on port %s...\n", config.ServerPort)
	log.Fatal(app.Listen(":" + config.ServerPort))
}
