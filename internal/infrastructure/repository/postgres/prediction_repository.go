package postgres

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/prediction"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/platform/notify"
	qb "github.com/anguiley99-beep/prediction-foot-africa/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db  *sqlx.DB
	hub *notify.Hub
}

func NewPredictionRepository(db *sqlx.DB, hub *notify.Hub) *PredictionRepository {
	return &PredictionRepository{db: db, hub: hub}
}

func (r *PredictionRepository) List(ctx context.Context) ([]prediction.Prediction, error) {
	return r.list(ctx, nil)
}

func (r *PredictionRepository) ListByUser(ctx context.Context, userID string) ([]prediction.Prediction, error) {
	return r.list(ctx, []qb.Condition{qb.Eq("user_id", userID)})
}

func (r *PredictionRepository) ListByMatch(ctx context.Context, matchID string) ([]prediction.Prediction, error) {
	return r.list(ctx, []qb.Condition{qb.Eq("match_public_id", matchID)})
}

func (r *PredictionRepository) list(ctx context.Context, conditions []qb.Condition) ([]prediction.Prediction, error) {
	builder := qb.Select("*").From("predictions").
		OrderBy("user_id", "match_bet_number", "match_public_id")
	if len(conditions) > 0 {
		builder = builder.Where(conditions...)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select predictions query")
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select predictions")
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

// UpsertBatch writes the whole batch in one transaction. A conflicting
// (user, match) pair overwrites the stored pick but keeps any frozen points
// untouched.
func (r *PredictionRepository) UpsertBatch(ctx context.Context, items []prediction.Prediction) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin tx for prediction upsert")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const upsertQuery = `
INSERT INTO predictions (user_id, match_public_id, value, user_name, match_bet_number, match_label, submitted_at)
VALUES (:user_id, :match_public_id, :value, :user_name, :match_bet_number, :match_label, :submitted_at)
ON CONFLICT (user_id, match_public_id)
DO UPDATE SET
    value = EXCLUDED.value,
    user_name = EXCLUDED.user_name,
    match_bet_number = EXCLUDED.match_bet_number,
    match_label = EXCLUDED.match_label,
    submitted_at = EXCLUDED.submitted_at,
    updated_at = NOW()`

	for _, p := range items {
		query, args, err := sqlx.Named(upsertQuery, map[string]any{
			"user_id":          p.UserID,
			"match_public_id":  p.MatchID,
			"value":            string(p.Value),
			"user_name":        p.UserName,
			"match_bet_number": p.MatchBetNumber,
			"match_label":      p.MatchLabel,
			"submitted_at":     p.SubmittedAt,
		})
		if err != nil {
			return crerr.Wrapf(err, "bind upsert prediction %s query", p.Key())
		}
		query = tx.Rebind(query)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return crerr.Wrapf(err, "upsert prediction %s", p.Key())
		}
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit prediction upsert")
	}

	r.hub.Publish(notify.CollectionPredictions)
	return nil
}

// FreezePoints stores final point values for one match in one transaction.
// Rows whose points are already set are left alone.
func (r *PredictionRepository) FreezePoints(ctx context.Context, matchID string, pointsByKey map[string]int) error {
	if len(pointsByKey) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin tx for point freeze")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const freezeQuery = `
UPDATE predictions
SET points = :points, updated_at = NOW()
WHERE user_id = :user_id
  AND match_public_id = :match_public_id
  AND points IS NULL`

	for key, pts := range pointsByKey {
		userID, ok := splitPredictionKey(key, matchID)
		if !ok {
			continue
		}
		query, args, err := sqlx.Named(freezeQuery, map[string]any{
			"points":          pts,
			"user_id":         userID,
			"match_public_id": matchID,
		})
		if err != nil {
			return crerr.Wrapf(err, "bind freeze prediction %s query", key)
		}
		query = tx.Rebind(query)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return crerr.Wrapf(err, "freeze prediction %s", key)
		}
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit point freeze")
	}

	r.hub.Publish(notify.CollectionPredictions)
	return nil
}

func (r *PredictionRepository) DeleteAll(ctx context.Context) error {
	query, args, err := qb.DeleteFrom("predictions").ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build delete predictions query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "delete all predictions")
	}

	r.hub.Publish(notify.CollectionPredictions)
	return nil
}

// splitPredictionKey recovers the user id from a composite key given the
// match id it was built with.
func splitPredictionKey(key, matchID string) (string, bool) {
	userID, found := strings.CutSuffix(key, "_"+matchID)
	if !found || userID == "" {
		return "", false
	}
	return userID, true
}
