package models

import (
	"time"
)

// FailedWord counts how often a player missed a word. This is the
// "failed_words" meta-bucket; it is never a scorable category.
type FailedWord struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"type:char(36);not null;index:idx_user_word,unique"`
	Word      string `gorm:"size:255;not null;index:idx_user_word,unique"`
	English   string `gorm:"size:255"`
	Gender    string `gorm:"size:8"`
	Category  string `gorm:"size:255"`
	Failures  int    `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for FailedWord
func (FailedWord) TableName() string {
	return "failed_words"
}
