package services

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/wortquiz/progression/internal/catalog"
	"github.com/wortquiz/progression/internal/models"
	"gorm.io/gorm"
)

// Username rules match the game client: letters, digits, underscore, 3-20 chars.
var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

var (
	// ErrInvalidUsername rejects usernames outside the allowed pattern.
	ErrInvalidUsername = errors.New("invalid username: use 3-20 letters, numbers, or underscores")
	// ErrUsernameTaken rejects duplicate usernames.
	ErrUsernameTaken = errors.New("username already taken")
)

// CategoryStat is one best-score record enriched with completion percent.
type CategoryStat struct {
	Category  string  `json:"category"`
	BestScore int     `json:"bestScore"`
	BestTime  float64 `json:"bestTime"`
	Total     int     `json:"totalWords"`
	Percent   int     `json:"percent"`
}

// Profile is a player's progression state plus their per-category records.
type Profile struct {
	UserID      string         `json:"userId"`
	Username    string         `json:"username"`
	Country     string         `json:"country,omitempty"`
	XP          int64          `json:"xp"`
	Level       int            `json:"level"`
	NextLevelXP int64          `json:"nextLevelXp"`
	Streak      int            `json:"streak"`
	LastActive  string         `json:"lastActive,omitempty"`
	Stats       []CategoryStat `json:"stats"`
}

// RegisterPlayer creates progression state with defaults for a new account.
// The id is minted when the caller does not bring one.
func RegisterPlayer(db *gorm.DB, id, username, country string) (*models.Player, error) {
	if !usernameRe.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if id == "" {
		id = uuid.NewString()
	}

	var count int64
	if err := db.Model(&models.Player{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	player := models.Player{
		ID:          id,
		Username:    username,
		Country:     country,
		XP:          0,
		Level:       1,
		NextLevelXP: BaseLevelXP,
		Streak:      0,
	}
	if err := db.Create(&player).Error; err != nil {
		return nil, err
	}
	return &player, nil
}

// GetProfile loads the progression state and best-score records for a player.
func GetProfile(db *gorm.DB, cat *catalog.Catalog, userID string) (*Profile, error) {
	var player models.Player
	if err := db.Where("id = ?", userID).First(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	var records []models.Score
	if err := db.Where("user_id = ?", userID).Order("category ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	stats := make([]CategoryStat, 0, len(records))
	for _, rec := range records {
		total := 1
		if n, ok := cat.Size(rec.Category); ok && n > 0 {
			total = n
		}
		stats = append(stats, CategoryStat{
			Category:  rec.Category,
			BestScore: rec.BestScore,
			BestTime:  rec.BestTime,
			Total:     total,
			Percent:   completionPercent(rec.BestScore, total),
		})
	}

	profile := &Profile{
		UserID:      player.ID,
		Username:    player.Username,
		Country:     player.Country,
		XP:          player.XP,
		Level:       player.Level,
		NextLevelXP: player.NextLevelXP,
		Streak:      player.Streak,
		Stats:       stats,
	}
	if player.LastActive != nil {
		profile.LastActive = time.Time(*player.LastActive).Format("2006-01-02")
	}
	return profile, nil
}

// ClearBestScores deletes every best-score record for a player.
func ClearBestScores(db *gorm.DB, userID string) (int64, error) {
	result := db.Where("user_id = ?", userID).Delete(&models.Score{})
	return result.RowsAffected, result.Error
}

// FailureInput is one missed word reported by the game.
type FailureInput struct {
	Word     string `json:"word"`
	English  string `json:"english"`
	Gender   string `json:"gender"`
	Category string `json:"category"`
}

// RecordFailure bumps the failure count for a word, overwriting metadata so
// the stored entry follows catalog updates.
func RecordFailure(db *gorm.DB, userID string, in FailureInput) error {
	if in.Word == "" {
		return errors.New("missing word")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.FailedWord
		err := tx.Where("user_id = ? AND word = ?", userID, in.Word).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.FailedWord{
				UserID:   userID,
				Word:     in.Word,
				English:  in.English,
				Gender:   in.Gender,
				Category: in.Category,
				Failures: 1,
			}).Error
		}
		if err != nil {
			return err
		}

		return tx.Model(&existing).Updates(map[string]interface{}{
			"failures": existing.Failures + 1,
			"english":  in.English,
			"gender":   in.Gender,
			"category": in.Category,
		}).Error
	})
}

// ListFailures returns a player's missed words, most-missed first.
func ListFailures(db *gorm.DB, userID string) ([]models.FailedWord, error) {
	var words []models.FailedWord
	err := db.Where("user_id = ?", userID).
		Order("failures DESC, word ASC").
		Find(&words).Error
	return words, err
}

// ClearFailures deletes a player's failed-word list.
func ClearFailures(db *gorm.DB, userID string) (int64, error) {
	result := db.Where("user_id = ?", userID).Delete(&models.FailedWord{})
	return result.RowsAffected, result.Error
}
