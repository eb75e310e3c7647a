package models

import (
	"time"

	"gorm.io/datatypes"
)

// Player holds the progression state for one account.
// XP always stays below NextLevelXP; leveling consumes the overflow.
type Player struct {
	ID          string `gorm:"type:char(36);primaryKey"`
	Username    string `gorm:"uniqueIndex;size:20;not null"`
	Country     string `gorm:"size:64"`
	XP          int64  `gorm:"not null;default:0"`
	Level       int    `gorm:"not null;default:1"`
	NextLevelXP int64  `gorm:"not null;default:100"`
	Streak      int    `gorm:"not null;default:0"`
	LastActive  *datatypes.Date
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the table name for Player
func (Player) TableName() string {
	return "players"
}
