package catalog

import (
	"fmt"
	"log"

	"github.com/cazare-ro/site/db"
)

const schema = `CREATE TABLE IF NOT EXISTS Listing (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	type TEXT NOT NULL,
	price_ron REAL NOT NULL,
	rating_avg REAL NOT NULL DEFAULT 0,
	reviews_count INTEGER NOT NULL DEFAULT 0,
	amenities TEXT NOT NULL DEFAULT '',
	lat REAL NOT NULL,
	lng REAL NOT NULL,
	images TEXT NOT NULL DEFAULT ''
)`

// EnsureSchema creates the listing table.
func EnsureSchema() error {
	if _, err := db.Get().Exec(schema); err != nil {
		return fmt.Errorf("error creating schema: %w", err)
	}
	return nil
}

type seedListing struct {
	id       string
	title    string
	typ      string
	priceRON float64
	rating   float64
	reviews  int
	amenity  string
	lat, lng float64
	images   string
}

var seedListings = []seedListing{
	{"l-001", "Cabană la Poalele Pietrei Craiului", "cabana", 450, 4.8, 212, "wifi,parking,fireplace", 45.5534, 25.2621, ""},
	{"l-002", "Cabană Rustică Valea Prahovei", "cabana", 380, 4.6, 148, "parking,fireplace,petFriendly", 45.4102, 25.5412, ""},
	{"l-003", "Apartament Central Brașov", "apartament", 260, 4.4, 320, "wifi,breakfast", 45.6427, 25.5887, ""},
	{"l-004", "Apartament Panoramic Cluj", "apartament", 290, 4.3, 187, "wifi,parking", 46.7712, 23.6236, ""},
	{"l-005", "Vilă cu Piscină Snagov", "vila", 1200, 4.9, 96, "wifi,parking,pool,spa", 44.7025, 26.1769, ""},
	{"l-006", "Vilă Boutique Sibiu", "vila", 890, 4.7, 133, "wifi,parking,spa,breakfast", 45.7983, 24.1256, ""},
	{"l-007", "Pensiunea Bucovina", "pensiune", 210, 4.5, 412, "wifi,parking,breakfast", 47.5561, 25.5710, ""},
	{"l-008", "Pensiunea Maramureș Verde", "pensiune", 190, 4.2, 265, "parking,breakfast,petFriendly", 47.6580, 24.0120, ""},
	{"l-009", "Casa Tradițională Viscri", "casa", 340, 4.9, 178, "parking,fireplace", 46.0551, 25.0893, ""},
	{"l-010", "Casa de Vacanță Delta Dunării", "casa", 420, 4.6, 89, "wifi,parking", 45.1679, 29.6567, ""},
	{"l-011", "Cabană A-Frame Apuseni", "cabana", 520, 4.7, 74, "wifi,fireplace,sauna", 46.5766, 22.6921, ""},
	{"l-012", "Studio Lângă Piața Unirii", "apartament", 180, 4.0, 501, "wifi", 44.4268, 26.1025, ""},
	{"l-013", "Vilă Domeniul Viticol Dealu Mare", "vila", 1550, 4.8, 41, "wifi,parking,pool,spa,breakfast", 45.0433, 26.3184, ""},
	{"l-014", "Pensiunea Transalpina", "pensiune", 230, 4.4, 198, "parking,breakfast,sauna", 45.3439, 23.6770, ""},
	{"l-015", "Cabană Izolată Retezat", "cabana", 610, 4.9, 57, "fireplace,sauna,petFriendly", 45.3631, 22.8683, ""},
	{"l-016", "Casa cu Grădină Sighișoara", "casa", 310, 4.3, 224, "wifi,parking,petFriendly", 46.2197, 24.7925, ""},
}

// Seed inserts the sample listings when the table is empty, so the dev
// backend answers with something useful out of the box.
func Seed() error {
	var count int
	if err := db.Get().QueryRow("SELECT COUNT(*) FROM Listing").Scan(&count); err != nil {
		return fmt.Errorf("error counting listings: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, l := range seedListings {
		_, err := db.Get().Exec(
			"INSERT INTO Listing (id, title, type, price_ron, rating_avg, reviews_count, amenities, lat, lng, images) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			l.id, l.title, l.typ, l.priceRON, l.rating, l.reviews, l.amenity, l.lat, l.lng, "")
		if err != nil {
			return fmt.Errorf("error seeding listing %s: %w", l.id, err)
		}
	}
	log.Printf("[catalog] seeded %d listings", len(seedListings))
	return nil
}
