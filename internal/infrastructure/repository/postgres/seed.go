package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo users and matches into an empty database. It
// is a no-op once any user row exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM users WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count users for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, u := range memory.SeedUsers() {
		query, args, err := sqlx.Named(`
INSERT INTO users (public_id, name, email, profile_picture_url, country_name, country_code, is_admin)
VALUES (:public_id, :name, :email, :profile_picture_url, :country_name, :country_code, :is_admin)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":           u.ID,
			"name":                u.Name,
			"email":               u.Email,
			"profile_picture_url": u.ProfilePictureURL,
			"country_name":        u.Country.Name,
			"country_code":        u.Country.Code,
			"is_admin":            u.IsAdmin,
		})
		if err != nil {
			return fmt.Errorf("bind seed user %s query: %w", u.ID, err)
		}
		query = tx.Rebind(query)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	for _, m := range memory.SeedMatches() {
		query, args, err := sqlx.Named(`
INSERT INTO matches (public_id, bet_number, home_team, away_team, kickoff_at, competition, country)
VALUES (:public_id, :bet_number, :home_team, :away_team, :kickoff_at, :competition, :country)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":   m.ID,
			"bet_number":  m.BetNumber,
			"home_team":   m.HomeTeam.Name,
			"away_team":   m.AwayTeam.Name,
			"kickoff_at":  m.KickoffAt,
			"competition": m.Competition,
			"country":     m.Country,
		})
		if err != nil {
			return fmt.Errorf("bind seed match %s query: %w", m.ID, err)
		}
		query = tx.Rebind(query)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed match %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bootstrap seed: %w", err)
	}

	return nil
}
