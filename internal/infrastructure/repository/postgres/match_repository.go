package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/match"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/platform/notify"
	qb "github.com/anguiley99-beep/prediction-foot-africa/internal/platform/querybuilder"
)

type MatchRepository struct {
	db  *sqlx.DB
	hub *notify.Hub
}

func NewMatchRepository(db *sqlx.DB, hub *notify.Hub) *MatchRepository {
	return &MatchRepository{db: db, hub: hub}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.IsNull("deleted_at")).
		OrderBy("bet_number", "kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *MatchRepository) Get(ctx context.Context, id string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	query, args, err := qb.InsertInto("matches").
		Columns("public_id", "bet_number", "home_team", "away_team", "kickoff_at", "competition", "country", "home_score", "away_score").
		Values(matchInsertValues(m)...).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("match %s already exists: %w", m.ID, err)
		}
		return fmt.Errorf("insert match: %w", err)
	}

	r.hub.Publish(notify.CollectionMatches)
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, m match.Match) error {
	builder := qb.Update("matches").
		Set("bet_number", m.BetNumber).
		Set("home_team", m.HomeTeam.Name).
		Set("away_team", m.AwayTeam.Name).
		Set("kickoff_at", m.KickoffAt).
		Set("competition", m.Competition).
		Set("country", m.Country).
		Set("home_score", matchScoreValue(m, true)).
		Set("away_score", matchScoreValue(m, false)).
		Set("updated_at", time.Now().UTC()).
		Where(
			qb.Eq("public_id", m.ID),
			qb.IsNull("deleted_at"),
		)

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update match: %w", err)
	}

	r.hub.Publish(notify.CollectionMatches)
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, id string) error {
	builder := qb.Update("matches").
		Set("deleted_at", time.Now().UTC()).
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		)

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}

	r.hub.Publish(notify.CollectionMatches)
	return nil
}

func matchInsertValues(m match.Match) []any {
	homeScore := sql.NullInt64{}
	awayScore := sql.NullInt64{}
	if m.Result != nil {
		homeScore = sql.NullInt64{Int64: int64(m.Result.HomeScore), Valid: true}
		awayScore = sql.NullInt64{Int64: int64(m.Result.AwayScore), Valid: true}
	}
	return []any{
		m.ID,
		m.BetNumber,
		m.HomeTeam.Name,
		m.AwayTeam.Name,
		m.KickoffAt,
		m.Competition,
		m.Country,
		homeScore,
		awayScore,
	}
}

func matchScoreValue(m match.Match, home bool) sql.NullInt64 {
	if m.Result == nil {
		return sql.NullInt64{}
	}
	if home {
		return sql.NullInt64{Int64: int64(m.Result.HomeScore), Valid: true}
	}
	return sql.NullInt64{Int64: int64(m.Result.AwayScore), Valid: true}
}
