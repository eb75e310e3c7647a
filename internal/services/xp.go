package services

const (
	// BaseLevelXP is the XP required to clear level 1 for a fresh account.
	BaseLevelXP = 100

	// maxNextLevelXP caps threshold growth so the leveling loop can never
	// overflow int64 arithmetic, whatever state it starts from.
	maxNextLevelXP = int64(1) << 40

	fastBonusSeconds   = 40
	mediumBonusSeconds = 70
)

// completionPercent returns floor(score/total*100). An unknown category is
// sized 1 so the division stays defined; the result is not clamped to 100.
func completionPercent(score, total int) int {
	if total < 1 {
		total = 1
	}
	return score * 100 / total
}

// speedBonus rewards fast runs: +20 under 40s, +10 under 70s.
func speedBonus(elapsed float64) int {
	switch {
	case elapsed < fastBonusSeconds:
		return 20
	case elapsed < mediumBonusSeconds:
		return 10
	default:
		return 0
	}
}

// applyLeveling adds gain to xp and consumes full thresholds into level-ups.
// Each level-up grows the threshold by 25% (integer floor). The returned xp
// is always below the returned threshold. Level and threshold never decrease.
func applyLeveling(xp, nextLevelXP int64, level, gain int) (int64, int64, int) {
	if nextLevelXP < 1 {
		nextLevelXP = BaseLevelXP
	}
	xp += int64(gain)

	for xp >= nextLevelXP {
		xp -= nextLevelXP
		level++
		nextLevelXP = nextLevelXP * 125 / 100
		if nextLevelXP > maxNextLevelXP {
			nextLevelXP = maxNextLevelXP
		}
	}

	return xp, nextLevelXP, level
}
