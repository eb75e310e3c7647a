package services

import (
	"testing"
	"time"

	"github.com/wortquiz/progression/internal/catalog"
	"github.com/wortquiz/progression/internal/models"
	"gorm.io/gorm"
)

// TestSubmitLeaderboardEntryAdmission tests the perfect-completion gate
func TestSubmitLeaderboardEntryAdmission(t *testing.T) {
	db := setupTestDB(t)
	cat := testCatalog()

	// 9 of 10 is not a perfect run
	admitted, err := SubmitLeaderboardEntry(db, cat, "u1", "anna_k", "A1_colors", 9, 42.5)
	if err != nil {
		t.Fatalf("SubmitLeaderboardEntry failed: %v", err)
	}
	if admitted {
		t.Error("partial run should not be admitted")
	}

	admitted, err = SubmitLeaderboardEntry(db, cat, "u1", "anna_k", "A1_colors", 10, 42.5)
	if err != nil {
		t.Fatalf("SubmitLeaderboardEntry failed: %v", err)
	}
	if !admitted {
		t.Error("perfect run should be admitted")
	}

	// Raw category names resolve before the gate
	admitted, err = SubmitLeaderboardEntry(db, cat, "u1", "anna_k", "colors", 10, 40.0)
	if err != nil {
		t.Fatalf("SubmitLeaderboardEntry failed: %v", err)
	}
	if !admitted {
		t.Error("perfect run under a raw category name should be admitted")
	}

	var count int64
	db.Model(&models.LeaderboardEntry{}).Where("category = ?", "A1_colors").Count(&count)
	if count != 2 {
		t.Errorf("stored entries = %d, want 2 (history is kept)", count)
	}
}

// TestSubmitLeaderboardEntryInvalidInput tests silent dismissal of bad input
func TestSubmitLeaderboardEntryInvalidInput(t *testing.T) {
	db := setupTestDB(t)
	cat := testCatalog()

	cases := []struct {
		name               string
		userID, category   string
		score              int
		elapsed            float64
	}{
		{"missing user", "", "A1_colors", 10, 42},
		{"blank category", "u1", "  ", 10, 42},
		{"negative score", "u1", "A1_colors", -1, 42},
		{"zero time", "u1", "A1_colors", 10, 0},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			admitted, err := SubmitLeaderboardEntry(db, cat, tt.userID, "anna_k", tt.category, tt.score, tt.elapsed)
			if err != nil || admitted {
				t.Errorf("admitted=%v err=%v, want ignored without error", admitted, err)
			}
		})
	}
}

// TestCategoryLeaderboard tests best-per-user selection and time ordering
func TestCategoryLeaderboard(t *testing.T) {
	db := setupTestDB(t)
	cat := testCatalog()

	// anna has two perfect runs; only her fastest may appear
	mustAdmit(t, db, cat, "u1", "anna_k", "A1_colors", 10, 55.0)
	mustAdmit(t, db, cat, "u1", "anna_k", "A1_colors", 10, 31.2)
	mustAdmit(t, db, cat, "u2", "bert", "A1_colors", 10, 44.0)
	mustAdmit(t, db, cat, "u3", "carla", "A1_colors", 10, 29.9)
	// a different category must not bleed in
	mustAdmit(t, db, cat, "u2", "bert", "A2_weather", 7, 12.0)

	rows, err := CategoryLeaderboard(db, cat, "colors")
	if err != nil {
		t.Fatalf("CategoryLeaderboard failed: %v", err)
	}

	want := []LeaderboardRow{
		{Username: "carla", Time: 29.9},
		{Username: "anna_k", Time: 31.2},
		{Username: "bert", Time: 44.0},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d: %+v", len(rows), len(want), rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

// TestCategoryLeaderboardTopTen tests the hard cap of ten rows
func TestCategoryLeaderboardTopTen(t *testing.T) {
	db := setupTestDB(t)
	cat := testCatalog()

	for i := 0; i < 14; i++ {
		userID := string(rune('a'+i)) + "-user"
		mustAdmit(t, db, cat, userID, "player_"+string(rune('a'+i)), "B1_work_jobs", 5, float64(100-i))
	}

	rows, err := CategoryLeaderboard(db, cat, "B1_work_jobs")
	if err != nil {
		t.Fatalf("CategoryLeaderboard failed: %v", err)
	}
	if len(rows) != 10 {
		t.Fatalf("rows = %d, want 10", len(rows))
	}
	// Fastest of the 14 runs is 100-13=87 seconds
	if rows[0].Time != 87 {
		t.Errorf("fastest = %v, want 87", rows[0].Time)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Time < rows[i-1].Time {
			t.Errorf("rows out of order at %d: %v after %v", i, rows[i].Time, rows[i-1].Time)
		}
	}
}

// TestGlobalRanking tests the level-dominant total order
func TestGlobalRanking(t *testing.T) {
	db := setupTestDB(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	players := []models.Player{
		{ID: "u1", Username: "anna_k", Level: 3, XP: 10, Streak: 1, CreatedAt: base},
		{ID: "u2", Username: "bert", Level: 5, XP: 0, Streak: 0, CreatedAt: base},
		{ID: "u3", Username: "carla", Level: 3, XP: 10, Streak: 9, CreatedAt: base},
		{ID: "u4", Username: "dmitri", Level: 3, XP: 90, Streak: 0, CreatedAt: base},
	}
	for i := range players {
		players[i].NextLevelXP = 100
		if err := db.Create(&players[i]).Error; err != nil {
			t.Fatalf("Failed to seed player: %v", err)
		}
	}

	ranked, err := GlobalRanking(db, 10)
	if err != nil {
		t.Fatalf("GlobalRanking failed: %v", err)
	}

	wantOrder := []string{"bert", "dmitri", "carla", "anna_k"}
	if len(ranked) != len(wantOrder) {
		t.Fatalf("ranked = %d players, want %d", len(ranked), len(wantOrder))
	}
	for i, username := range wantOrder {
		if ranked[i].Username != username {
			t.Errorf("rank %d = %s, want %s", i+1, ranked[i].Username, username)
		}
		if ranked[i].Rank != i+1 {
			t.Errorf("rank field = %d, want %d", ranked[i].Rank, i+1)
		}
	}
}

// TestGlobalRankingLimit tests the row cap and its default
func TestGlobalRankingLimit(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 12; i++ {
		p := models.Player{
			ID:          string(rune('a'+i)) + "-user",
			Username:    "player_" + string(rune('a'+i)),
			Level:       1 + i,
			NextLevelXP: 100,
		}
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("Failed to seed player: %v", err)
		}
	}

	ranked, err := GlobalRanking(db, 0)
	if err != nil {
		t.Fatalf("GlobalRanking failed: %v", err)
	}
	if len(ranked) != 10 {
		t.Errorf("default limit rows = %d, want 10", len(ranked))
	}

	ranked, err = GlobalRanking(db, 3)
	if err != nil {
		t.Fatalf("GlobalRanking failed: %v", err)
	}
	if len(ranked) != 3 {
		t.Errorf("limit 3 rows = %d, want 3", len(ranked))
	}
}

// TestUserRank tests 1-based rank with tie-breaking on account age
func TestUserRank(t *testing.T) {
	db := setupTestDB(t)

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.AddDate(0, 1, 0)
	players := []models.Player{
		{ID: "u1", Username: "anna_k", Level: 5, XP: 50, Streak: 2, CreatedAt: older},
		{ID: "u2", Username: "bert", Level: 5, XP: 50, Streak: 2, CreatedAt: newer},
		{ID: "u3", Username: "carla", Level: 2, XP: 0, Streak: 0, CreatedAt: older},
	}
	for i := range players {
		players[i].NextLevelXP = 100
		if err := db.Create(&players[i]).Error; err != nil {
			t.Fatalf("Failed to seed player: %v", err)
		}
	}

	tests := []struct {
		userID string
		want   int
	}{
		{"u1", 1}, // ties broken by older account
		{"u2", 2},
		{"u3", 3},
	}
	for _, tt := range tests {
		rank, err := UserRank(db, tt.userID)
		if err != nil {
			t.Fatalf("UserRank(%s) failed: %v", tt.userID, err)
		}
		if rank != tt.want {
			t.Errorf("UserRank(%s) = %d, want %d", tt.userID, rank, tt.want)
		}
	}

	if _, err := UserRank(db, "missing"); err != ErrPlayerNotFound {
		t.Errorf("UserRank(missing) err = %v, want ErrPlayerNotFound", err)
	}
}

// mustAdmit submits a run and requires admission.
func mustAdmit(t *testing.T, db *gorm.DB, cat *catalog.Catalog, userID, username, category string, score int, elapsed float64) {
	t.Helper()

	admitted, err := SubmitLeaderboardEntry(db, cat, userID, username, category, score, elapsed)
	if err != nil {
		t.Fatalf("SubmitLeaderboardEntry failed: %v", err)
	}
	if !admitted {
		t.Fatalf("run %s/%s %d in %vs should be admitted", userID, category, score, elapsed)
	}
}
