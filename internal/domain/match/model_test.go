package match

import (
	"testing"
	"time"
)

func TestIsLocked_BeforeAndAfterCutoff(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2024, 7, 20, 21, 0, 0, 0, time.UTC)
	m := Match{ID: "m1", KickoffAt: kickoff}

	open := time.Date(2024, 7, 20, 19, 59, 59, 0, time.UTC)
	if IsLocked(m, open) {
		t.Fatalf("match should be open one second before the cutoff")
	}

	exactly := kickoff.Add(-LockLead)
	if !IsLocked(m, exactly) {
		t.Fatalf("match should be locked exactly at the cutoff")
	}

	locked := time.Date(2024, 7, 20, 20, 0, 1, 0, time.UTC)
	if !IsLocked(m, locked) {
		t.Fatalf("match should be locked one second after the cutoff")
	}
}

func TestIsLocked_FinishedMatchIsPermanentlyLocked(t *testing.T) {
	t.Parallel()

	kickoff := time.Now().Add(48 * time.Hour)
	m := Match{
		ID:        "m1",
		KickoffAt: kickoff,
		Result:    &Result{HomeScore: 1, AwayScore: 0},
	}

	if !IsLocked(m, kickoff.Add(-72*time.Hour)) {
		t.Fatalf("a match with a result must be locked regardless of time")
	}
}

func TestGrid_OrdersByBetNumberAndCapsAtTen(t *testing.T) {
	t.Parallel()

	betNumbers := []int{5, 1, 3, 2, 4, 6, 7, 8, 9, 10, 11, 12}
	matches := make([]Match, 0, len(betNumbers))
	for _, n := range betNumbers {
		matches = append(matches, Match{ID: "m" + string(rune('a'+n)), BetNumber: n})
	}

	grid := Grid(matches)
	if len(grid) != GridSize {
		t.Fatalf("grid size: got=%d want=%d", len(grid), GridSize)
	}
	for i, m := range grid {
		if m.BetNumber != i+1 {
			t.Fatalf("grid[%d]: got bet number %d want %d", i, m.BetNumber, i+1)
		}
	}
}

func TestGrid_UnnumberedMatchesSortLast(t *testing.T) {
	t.Parallel()

	matches := []Match{
		{ID: "no-number"},
		{ID: "second", BetNumber: 2},
		{ID: "first", BetNumber: 1},
	}

	grid := Grid(matches)
	if len(grid) != 3 {
		t.Fatalf("grid size: got=%d want=3", len(grid))
	}
	if grid[0].ID != "first" || grid[1].ID != "second" || grid[2].ID != "no-number" {
		t.Fatalf("unexpected order: %s, %s, %s", grid[0].ID, grid[1].ID, grid[2].ID)
	}
}

func TestGrid_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	matches := []Match{
		{ID: "b", BetNumber: 2},
		{ID: "a", BetNumber: 1},
	}

	_ = Grid(matches)
	if matches[0].ID != "b" {
		t.Fatalf("input slice was reordered")
	}
}
