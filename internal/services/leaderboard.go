package services

import (
	"strings"

	"github.com/wortquiz/progression/internal/catalog"
	"github.com/wortquiz/progression/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// LeaderboardRow is one entry of a category top list.
type LeaderboardRow struct {
	Username string  `json:"username"`
	Time     float64 `json:"time"`
}

// RankedPlayer is one row of the global ranking.
type RankedPlayer struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Level    int    `json:"level"`
	XP       int64  `json:"xp"`
	Streak   int    `json:"streak"`
	Country  string `json:"country,omitempty"`
}

const leaderboardLimit = 10

// rankingOrder is the total ordering for global rank: level, then XP, then
// streak, each descending, with account age and id as deterministic
// tie-breakers.
const rankingOrder = "level DESC, xp DESC, streak DESC, created_at ASC, id ASC"

// SubmitLeaderboardEntry admits a run to the category leaderboard when the
// score equals the category's word count (perfect completion). Entries are
// appended; history for the same user is kept.
func SubmitLeaderboardEntry(db *gorm.DB, cat *catalog.Catalog, userID, username, rawCategory string, score int, elapsed float64) (bool, error) {
	raw := strings.TrimSpace(rawCategory)
	if raw == "" || userID == "" || score < 0 || elapsed <= 0 {
		return false, nil
	}
	if strings.Contains(strings.ToLower(raw), marathonMarker) {
		raw = marathonKey
	}

	key, ok := cat.Resolve(raw)
	if !ok {
		key = raw
	}
	total := 1
	if n, sized := cat.Size(key); sized && n > 0 {
		total = n
	}

	if score != total {
		return false, nil
	}

	entry := models.LeaderboardEntry{
		UserID:   userID,
		Username: username,
		Category: key,
		Score:    score,
		Time:     elapsed,
	}
	if err := db.Create(&entry).Error; err != nil {
		return false, err
	}
	return true, nil
}

// CategoryLeaderboard returns the top 10 perfect runs for a category, one per
// user (their fastest), ascending by time.
func CategoryLeaderboard(db *gorm.DB, cat *catalog.Catalog, rawCategory string) ([]LeaderboardRow, error) {
	key, ok := cat.Resolve(rawCategory)
	if !ok {
		key = strings.TrimSpace(rawCategory)
	}
	total := 1
	if n, sized := cat.Size(key); sized && n > 0 {
		total = n
	}

	query := db.Model(&models.LeaderboardEntry{})
	if db.Dialector.Name() == "mysql" {
		query = query.Clauses(hints.UseIndex("idx_leaderboard_category"))
	}

	var rows []LeaderboardRow
	err := query.
		Select("username, MIN(time) AS time").
		Where("category = ? AND score = ?", key, total).
		Group("user_id, username").
		Order("time ASC").
		Limit(leaderboardLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GlobalRanking returns up to limit players ordered by the ranking key.
// This is a snapshot read; no locks are taken.
func GlobalRanking(db *gorm.DB, limit int) ([]RankedPlayer, error) {
	if limit <= 0 {
		limit = leaderboardLimit
	}

	var players []models.Player
	if err := db.Order(rankingOrder).Limit(limit).Find(&players).Error; err != nil {
		return nil, err
	}

	ranked := make([]RankedPlayer, len(players))
	for i, p := range players {
		ranked[i] = RankedPlayer{
			Rank:     i + 1,
			Username: p.Username,
			Level:    p.Level,
			XP:       p.XP,
			Streak:   p.Streak,
			Country:  p.Country,
		}
	}
	return ranked, nil
}

// UserRank returns the 1-based global rank of one player.
func UserRank(db *gorm.DB, userID string) (int, error) {
	var player models.Player
	if err := db.Where("id = ?", userID).First(&player).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, ErrPlayerNotFound
		}
		return 0, err
	}

	var ahead int64
	err := db.Model(&models.Player{}).
		Where(`level > ?
			OR (level = ? AND xp > ?)
			OR (level = ? AND xp = ? AND streak > ?)
			OR (level = ? AND xp = ? AND streak = ? AND created_at < ?)
			OR (level = ? AND xp = ? AND streak = ? AND created_at = ? AND id < ?)`,
			player.Level,
			player.Level, player.XP,
			player.Level, player.XP, player.Streak,
			player.Level, player.XP, player.Streak, player.CreatedAt,
			player.Level, player.XP, player.Streak, player.CreatedAt, player.ID).
		Count(&ahead).Error
	if err != nil {
		return 0, err
	}

	return int(ahead) + 1, nil
}
