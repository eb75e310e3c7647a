package services

// OutcomeStatus classifies the result of a score submission.
type OutcomeStatus string

const (
	// StatusAccepted means the result improved the stored best and XP was granted.
	StatusAccepted OutcomeStatus = "accepted"
	// StatusNoRecord means the result did not beat the stored best; nothing changed.
	StatusNoRecord OutcomeStatus = "no_record"
	// StatusRejected means the submission failed validation; nothing changed.
	StatusRejected OutcomeStatus = "rejected"
)

// Outcome reports what a submission did to the player's progression state.
type Outcome struct {
	Status     OutcomeStatus `json:"status"`
	Reason     string        `json:"reason,omitempty"`
	Category   string        `json:"category,omitempty"`
	Resolved   bool          `json:"resolved,omitempty"`
	Percent    int           `json:"percent,omitempty"`
	SpeedBonus int           `json:"speedBonus,omitempty"`
	XPGain     int           `json:"xpGain,omitempty"`
	Level      int           `json:"level,omitempty"`
	XP         int64         `json:"xp,omitempty"`
	Streak     int           `json:"streak,omitempty"`
}

func rejected(reason string) Outcome {
	return Outcome{Status: StatusRejected, Reason: reason}
}
