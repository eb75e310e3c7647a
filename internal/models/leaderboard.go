package models

import (
	"time"
)

// LeaderboardEntry is one admitted perfect-completion run. The table is an
// append-only log; the ranking view derives best-per-user from it.
type LeaderboardEntry struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement"`
	UserID    string  `gorm:"type:char(36);not null;index:idx_leaderboard_category,priority:2"`
	Username  string  `gorm:"size:20;not null"`
	Category  string  `gorm:"size:255;not null;index:idx_leaderboard_category,priority:1"`
	Score     int     `gorm:"not null"`
	Time      float64 `gorm:"not null"`
	CreatedAt time.Time
}

// TableName overrides the table name for LeaderboardEntry
func (LeaderboardEntry) TableName() string {
	return "leaderboard_entries"
}
