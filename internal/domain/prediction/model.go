package prediction

import (
	"strings"
	"time"
)

// Value is a match outcome pick. Single values are exact outcomes, the
// double-chance values cover two outcomes for partial credit.
type Value string

const (
	ValueHome       Value = "1"
	ValueDraw       Value = "X"
	ValueAway       Value = "2"
	ValueHomeOrDraw Value = "1X"
	ValueDrawOrAway Value = "X2"
)

// ParseValue normalizes and validates a raw pick.
func ParseValue(raw string) (Value, bool) {
	switch Value(strings.ToUpper(strings.TrimSpace(raw))) {
	case ValueHome:
		return ValueHome, true
	case ValueDraw:
		return ValueDraw, true
	case ValueAway:
		return ValueAway, true
	case ValueHomeOrDraw:
		return ValueHomeOrDraw, true
	case ValueDrawOrAway:
		return ValueDrawOrAway, true
	default:
		return "", false
	}
}

// Prediction is one user's pick for one match. UserName, MatchBetNumber and
// MatchLabel are snapshots taken at submission time so the record stays
// displayable after the user or match is gone.
type Prediction struct {
	UserID         string
	MatchID        string
	Value          Value
	UserName       string
	MatchBetNumber int
	MatchLabel     string
	SubmittedAt    time.Time

	// Points, once set, is the authoritative frozen score for this pick.
	// It survives deletion of the match and is never recomputed.
	Points *int
}

// Key is the composite identity used for upserts: one pick per user per match.
func Key(userID, matchID string) string {
	return userID + "_" + matchID
}

func (p Prediction) Key() string {
	return Key(p.UserID, p.MatchID)
}

func (p Prediction) Frozen() bool {
	return p.Points != nil
}
