package services

import (
	"errors"

	"github.com/wortquiz/progression/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScoreResult reports whether a submitted result replaced the stored best.
type ScoreResult struct {
	Improved bool
	Previous *models.Score
}

// upsertBestScore applies the strict-improvement rule for one (user, category)
// pair inside the caller's transaction: a higher score always wins, an equal
// score wins only with a strictly lower time. The first result for a pair
// always creates a record. Category must already be canonicalized.
func upsertBestScore(tx *gorm.DB, userID, category string, score int, elapsed float64) (ScoreResult, error) {
	var existing models.Score
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND category = ?", userID, category).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		record := models.Score{
			UserID:    userID,
			Category:  category,
			BestScore: score,
			BestTime:  elapsed,
		}
		if err := tx.Create(&record).Error; err != nil {
			return ScoreResult{}, err
		}
		return ScoreResult{Improved: true}, nil
	}
	if err != nil {
		return ScoreResult{}, err
	}

	previous := existing
	if score > existing.BestScore || (score == existing.BestScore && elapsed < existing.BestTime) {
		result := tx.Model(&existing).Updates(map[string]interface{}{
			"best_score": score,
			"best_time":  elapsed,
		})
		if result.Error != nil {
			return ScoreResult{}, result.Error
		}
		return ScoreResult{Improved: true, Previous: &previous}, nil
	}

	return ScoreResult{Improved: false, Previous: &previous}, nil
}
