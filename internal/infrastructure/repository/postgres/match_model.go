package postgres

import (
	"database/sql"
	"time"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/match"
)

type matchTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	BetNumber   int            `db:"bet_number"`
	HomeTeam    string         `db:"home_team"`
	AwayTeam    string         `db:"away_team"`
	KickoffAt   time.Time      `db:"kickoff_at"`
	Competition sql.NullString `db:"competition"`
	Country     sql.NullString `db:"country"`
	HomeScore   sql.NullInt64  `db:"home_score"`
	AwayScore   sql.NullInt64  `db:"away_score"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   *time.Time     `db:"deleted_at"`
}

func (row matchTableModel) toDomain() match.Match {
	m := match.Match{
		ID:          row.PublicID,
		BetNumber:   row.BetNumber,
		HomeTeam:    match.Team{Name: row.HomeTeam},
		AwayTeam:    match.Team{Name: row.AwayTeam},
		KickoffAt:   row.KickoffAt,
		Competition: row.Competition.String,
		Country:     row.Country.String,
	}
	// Both scores are written together when a result is recorded.
	if row.HomeScore.Valid && row.AwayScore.Valid {
		m.Result = &match.Result{
			HomeScore: int(row.HomeScore.Int64),
			AwayScore: int(row.AwayScore.Int64),
		}
	}
	return m
}
