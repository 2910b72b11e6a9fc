package scoring

import (
	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/match"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/prediction"
)

// Point values of the contest rules: exact win pick 3, exact draw pick 2,
// double chance covering the outcome 1.
const (
	PointsExactWin    = 3
	PointsExactDraw   = 2
	PointsDoubleMatch = 1
)

// Outcome reduces a final score to the 1/X/2 symbol it realized.
func Outcome(res match.Result) prediction.Value {
	switch {
	case res.HomeScore > res.AwayScore:
		return prediction.ValueHome
	case res.HomeScore < res.AwayScore:
		return prediction.ValueAway
	default:
		return prediction.ValueDraw
	}
}

// ComputePoints maps a pick and a final score to its point value. Pure and
// total for all five pick values and any score pair.
func ComputePoints(value prediction.Value, res match.Result) int {
	actual := Outcome(res)

	if value == actual {
		if actual == prediction.ValueDraw {
			return PointsExactDraw
		}
		return PointsExactWin
	}

	switch value {
	case prediction.ValueHomeOrDraw:
		if actual == prediction.ValueHome || actual == prediction.ValueDraw {
			return PointsDoubleMatch
		}
	case prediction.ValueDrawOrAway:
		if actual == prediction.ValueDraw || actual == prediction.ValueAway {
			return PointsDoubleMatch
		}
	}

	return 0
}
