package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/user"
	qb "github.com/anguiley99-beep/prediction-foot-africa/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	query, args, err := qb.Select("*").From("users").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select users query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, user.User{
			ID:                row.PublicID,
			Name:              row.Name,
			Email:             row.Email,
			ProfilePictureURL: row.ProfilePictureURL.String,
			Country: user.Country{
				Name: row.CountryName.String,
				Code: row.CountryCode.String,
			},
			IsAdmin:   row.IsAdmin,
			LastLogin: row.LastLogin,
		})
	}

	return out, nil
}
