package match

import (
	"sort"
	"time"
)

const (
	// GridSize is the number of matches open for picks at one time.
	GridSize = 10

	// LockLead is how long before kickoff a match stops accepting picks.
	LockLead = time.Hour

	// unnumberedBetSlot sorts matches without a bet number after all
	// numbered ones.
	unnumberedBetSlot = 999
)

type Team struct {
	Name    string
	FlagURL string
}

// Result is the final score of a finished match.
type Result struct {
	HomeScore int
	AwayScore int
}

// Match is one fixture of the contest grid.
type Match struct {
	ID          string
	BetNumber   int
	HomeTeam    Team
	AwayTeam    Team
	KickoffAt   time.Time
	Competition string
	Country     string
	Result      *Result
}

func (m Match) Finished() bool {
	return m.Result != nil
}

// Label renders the display name stored on predictions so they survive
// deletion of the match.
func (m Match) Label() string {
	return m.HomeTeam.Name + " vs " + m.AwayTeam.Name
}

// IsLocked reports whether the match no longer accepts picks at the given
// instant. Finished matches are locked permanently; open ones lock LockLead
// before kickoff.
func IsLocked(m Match, now time.Time) bool {
	if m.Result != nil {
		return true
	}
	return !now.Before(m.KickoffAt.Add(-LockLead))
}

func betSlot(m Match) int {
	if m.BetNumber <= 0 {
		return unnumberedBetSlot
	}
	return m.BetNumber
}

// Grid returns the up-to-GridSize matches currently addressable by picks,
// ordered by ascending bet number. The input is not mutated.
func Grid(matches []Match) []Match {
	out := make([]Match, len(matches))
	copy(out, matches)
	sort.SliceStable(out, func(i, j int) bool {
		return betSlot(out[i]) < betSlot(out[j])
	})
	if len(out) > GridSize {
		out = out[:GridSize]
	}
	return out
}
