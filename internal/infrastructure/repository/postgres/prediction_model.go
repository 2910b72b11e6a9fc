package postgres

import (
	"database/sql"
	"time"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/prediction"
)

type predictionTableModel struct {
	ID             int64         `db:"id"`
	UserID         string        `db:"user_id"`
	MatchPublicID  string        `db:"match_public_id"`
	Value          string        `db:"value"`
	UserName       string        `db:"user_name"`
	MatchBetNumber int           `db:"match_bet_number"`
	MatchLabel     string        `db:"match_label"`
	SubmittedAt    time.Time     `db:"submitted_at"`
	Points         sql.NullInt64 `db:"points"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
}

func (row predictionTableModel) toDomain() prediction.Prediction {
	return prediction.Prediction{
		UserID:         row.UserID,
		MatchID:        row.MatchPublicID,
		Value:          prediction.Value(row.Value),
		UserName:       row.UserName,
		MatchBetNumber: row.MatchBetNumber,
		MatchLabel:     row.MatchLabel,
		SubmittedAt:    row.SubmittedAt,
		Points:         nullIntToPtr(row.Points),
	}
}
