package postgres

import (
	"database/sql"
	"time"
)

type userTableModel struct {
	ID                int64          `db:"id"`
	PublicID          string         `db:"public_id"`
	Name              string         `db:"name"`
	Email             string         `db:"email"`
	ProfilePictureURL sql.NullString `db:"profile_picture_url"`
	CountryName       sql.NullString `db:"country_name"`
	CountryCode       sql.NullString `db:"country_code"`
	IsAdmin           bool           `db:"is_admin"`
	LastLogin         *time.Time     `db:"last_login"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
	DeletedAt         *time.Time     `db:"deleted_at"`
}
