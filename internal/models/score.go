package models

import (
	"time"
)

// Score is the single best result a player holds for one category.
// At most one row exists per (user, category); replacement requires a
// strictly better result.
type Score struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement"`
	UserID    string  `gorm:"type:char(36);not null;index:idx_user_category,unique"`
	Category  string  `gorm:"size:255;not null;index:idx_user_category,unique"`
	BestScore int     `gorm:"not null"`
	BestTime  float64 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for Score
func (Score) TableName() string {
	return "scores"
}
