package services

import (
	"testing"

	"github.com/campus-crumbs/api-go/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database migrated with the app models.
// The pool is capped at one connection so concurrent test goroutines
// serialize on the store the way independent requests do on a real server.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Writes here are all single statements, so the default wrapping
	// transaction is skipped; with one pooled connection that also lets a
	// test callback issue its own write while an operation is in flight.
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Listing{}, &models.Report{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func mustCreateListing(t *testing.T, s *ListingService, poster string) *models.Listing {
	t.Helper()

	listing, err := s.Create(CreateListingInput{
		FoodName:       "Pizza",
		Quantity:       2,
		Category:       "Meals",
		DietaryInfo:    "vegetarian",
		PickupLocation: "Davis Hall",
		PickupTime:     "5pm-6pm",
		Photo:          `{"uri":"data:image/png;base64,xyz"}`,
		ExpirationTime: "2025-05-01T18:00:00Z",
		CreatedAt:      "2025-05-01T12:00:00Z",
	}, poster)
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}
	return listing
}
