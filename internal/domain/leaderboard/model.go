package leaderboard

import "github.com/anguiley99-beep/prediction-foot-africa/internal/domain/user"

type RankChange string

const (
	RankUp   RankChange = "up"
	RankDown RankChange = "down"
	RankSame RankChange = "same"
)

// Entry is a derived standing row. It is recomputed in full from users,
// matches and predictions and never persisted.
type Entry struct {
	User       user.User
	Points     int
	Rank       int
	RankChange RankChange
}
