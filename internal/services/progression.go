package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/wortquiz/progression/internal/catalog"
	"github.com/wortquiz/progression/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// MetaBucket tracks missed words; it is never a scorable category.
	MetaBucket = "failed_words"

	// marathonKey is the canonical category for long-form runs. Any raw
	// category containing the marker collapses to it before resolution.
	marathonKey    = "a1_marathon"
	marathonMarker = "marathon"

	submissionRetries = 3
)

// ErrConflict surfaces after a concurrent-update conflict persisted through
// all retries. Handlers map it to 409.
var ErrConflict = errors.New("E_CONFLICT - submission raced a concurrent update, retry")

// ErrPlayerNotFound means no progression state exists for the user id.
var ErrPlayerNotFound = errors.New("player not found")

// Submission is one practice-session result delivered by the request layer.
type Submission struct {
	UserID   string
	Category string
	Score    int
	Time     float64
}

// RecordSubmission runs the full submission workflow: validate, normalize the
// category, apply the score ledger, and on improvement advance the streak and
// grant XP with leveling. The read-modify-write of the player row happens in
// one locked transaction; two submissions for the same user cannot interleave.
func RecordSubmission(db *gorm.DB, cat *catalog.Catalog, sub Submission, now time.Time) (Outcome, error) {
	if sub.UserID == "" {
		return rejected("missing_user"), nil
	}
	if sub.Score < 0 {
		return rejected("invalid_score"), nil
	}
	if sub.Time <= 0 {
		return rejected("invalid_time"), nil
	}
	raw := strings.TrimSpace(sub.Category)
	if raw == "" {
		return rejected("missing_category"), nil
	}
	if strings.EqualFold(raw, MetaBucket) {
		return rejected("meta_category"), nil
	}

	if strings.Contains(strings.ToLower(raw), marathonMarker) {
		raw = marathonKey
	}

	key, resolved := cat.Resolve(raw)
	total := 1
	if resolved {
		if n, ok := cat.Size(key); ok && n > 0 {
			total = n
		}
	} else {
		// Degraded path: keep the raw string as the key and size the
		// category as a single word. Percent is meaningless here.
		key = raw
		log.Printf("submission for unresolved category %q by user %s", raw, sub.UserID)
	}

	var out Outcome
	var err error
	for attempt := 0; attempt < submissionRetries; attempt++ {
		out, err = recordOnce(db, sub, key, resolved, total, now)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, ErrPlayerNotFound) {
			return Outcome{}, err
		}
		if !retryableWriteError(err) {
			return Outcome{}, err
		}
	}
	return Outcome{}, ErrConflict
}

// recordOnce is a single transactional attempt at steps 4-11 of the workflow.
func recordOnce(db *gorm.DB, sub Submission, key string, resolved bool, total int, now time.Time) (Outcome, error) {
	var out Outcome

	err := db.Transaction(func(tx *gorm.DB) error {
		var player models.Player
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", sub.UserID).
			First(&player).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrPlayerNotFound, sub.UserID)
			}
			return err
		}

		ledger, err := upsertBestScore(tx, sub.UserID, key, sub.Score, sub.Time)
		if err != nil {
			return err
		}
		if !ledger.Improved {
			out = Outcome{
				Status:   StatusNoRecord,
				Category: key,
				Resolved: resolved,
				Level:    player.Level,
				XP:       player.XP,
				Streak:   player.Streak,
			}
			return nil
		}

		var lastActive *time.Time
		if player.LastActive != nil {
			t := time.Time(*player.LastActive)
			lastActive = &t
		}
		streak, activeDay := advanceStreak(player.Streak, lastActive, now)

		percent := completionPercent(sub.Score, total)
		bonus := speedBonus(sub.Time)
		gain := percent + bonus

		xp, nextLevelXP, level := applyLeveling(player.XP, player.NextLevelXP, player.Level, gain)

		active := datatypes.Date(activeDay)
		if err := tx.Model(&player).Updates(map[string]interface{}{
			"xp":            xp,
			"level":         level,
			"next_level_xp": nextLevelXP,
			"streak":        streak,
			"last_active":   active,
		}).Error; err != nil {
			return err
		}

		out = Outcome{
			Status:     StatusAccepted,
			Category:   key,
			Resolved:   resolved,
			Percent:    percent,
			SpeedBonus: bonus,
			XPGain:     gain,
			Level:      level,
			XP:         xp,
			Streak:     streak,
		}
		return nil
	})

	return out, err
}

// retryableWriteError matches store-level write conflicts worth a fresh read.
func retryableWriteError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "could not serialize")
}
