package prediction

import "context"

// Repository exposes prediction read/write operations. UpsertBatch and
// FreezePoints apply all of their writes as one atomic batch.
type Repository interface {
	List(ctx context.Context) ([]Prediction, error)
	ListByUser(ctx context.Context, userID string) ([]Prediction, error)
	ListByMatch(ctx context.Context, matchID string) ([]Prediction, error)

	// UpsertBatch writes picks keyed by (user, match); a resubmission
	// overwrites the previous pick for that match only.
	UpsertBatch(ctx context.Context, items []Prediction) error

	// FreezePoints stores final point values on the predictions of one
	// match, keyed by composite prediction key.
	FreezePoints(ctx context.Context, matchID string, pointsByKey map[string]int) error

	// DeleteAll removes every prediction (competition reset).
	DeleteAll(ctx context.Context) error
}
