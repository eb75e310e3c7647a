package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/wortquiz/progression/internal/catalog"
	"github.com/wortquiz/progression/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing. The pool is
// pinned to one connection so every session sees the same in-memory store.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Player{},
		&models.Score{},
		&models.LeaderboardEntry{},
		&models.FailedWord{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// testCatalog returns a small fixed catalog matching the seed word lists.
func testCatalog() *catalog.Catalog {
	return catalog.New(map[string]int{
		"A1_animals":   6,
		"A1_colors":    10,
		"A1_family":    8,
		"A2_weather":   7,
		"B1_work_jobs": 5,
	}, "A1")
}

// createTestPlayer registers a fresh player and returns its id.
func createTestPlayer(t *testing.T, db *gorm.DB, username string) string {
	t.Helper()

	player, err := RegisterPlayer(db, "", username, "")
	if err != nil {
		t.Fatalf("Failed to register player %s: %v", username, err)
	}
	return player.ID
}

// submitAt records a submission at a fixed instant and fails the test on a
// transport-level error.
func submitAt(t *testing.T, db *gorm.DB, cat *catalog.Catalog, sub Submission, now time.Time) Outcome {
	t.Helper()

	out, err := RecordSubmission(db, cat, sub, now)
	if err != nil {
		t.Fatalf("RecordSubmission(%+v) failed: %v", sub, err)
	}
	return out
}
