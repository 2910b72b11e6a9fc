package memory

import (
	"time"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/match"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/user"
)

func SeedUsers() []user.User {
	return []user.User{
		{
			ID:      "usr-admin",
			Name:    "Commissioner",
			Email:   "admin@prediction-foot.africa",
			Country: user.Country{Name: "Senegal", Code: "SN"},
			IsAdmin: true,
		},
		{
			ID:      "usr-awa",
			Name:    "Awa Diop",
			Email:   "awa@example.com",
			Country: user.Country{Name: "Senegal", Code: "SN"},
		},
		{
			ID:      "usr-kossi",
			Name:    "Kossi Mensah",
			Email:   "kossi@example.com",
			Country: user.Country{Name: "Togo", Code: "TG"},
		},
		{
			ID:      "usr-amina",
			Name:    "Amina Traore",
			Email:   "amina@example.com",
			Country: user.Country{Name: "Mali", Code: "ML"},
		},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{
			ID:          "mt-001",
			BetNumber:   1,
			HomeTeam:    match.Team{Name: "Senegal"},
			AwayTeam:    match.Team{Name: "Morocco"},
			KickoffAt:   time.Date(2026, 9, 12, 17, 0, 0, 0, time.UTC),
			Competition: "CAN Qualifiers",
			Country:     "Senegal",
		},
		{
			ID:          "mt-002",
			BetNumber:   2,
			HomeTeam:    match.Team{Name: "Nigeria"},
			AwayTeam:    match.Team{Name: "Ghana"},
			KickoffAt:   time.Date(2026, 9, 12, 19, 30, 0, 0, time.UTC),
			Competition: "CAN Qualifiers",
			Country:     "Nigeria",
		},
		{
			ID:          "mt-003",
			BetNumber:   3,
			HomeTeam:    match.Team{Name: "Ivory Coast"},
			AwayTeam:    match.Team{Name: "Cameroon"},
			KickoffAt:   time.Date(2026, 9, 13, 17, 0, 0, 0, time.UTC),
			Competition: "CAN Qualifiers",
			Country:     "Ivory Coast",
		},
		{
			ID:          "mt-004",
			BetNumber:   4,
			HomeTeam:    match.Team{Name: "Egypt"},
			AwayTeam:    match.Team{Name: "Algeria"},
			KickoffAt:   time.Date(2026, 9, 13, 20, 0, 0, 0, time.UTC),
			Competition: "CAN Qualifiers",
			Country:     "Egypt",
		},
		{
			ID:          "mt-005",
			BetNumber:   5,
			HomeTeam:    match.Team{Name: "Tunisia"},
			AwayTeam:    match.Team{Name: "Mali"},
			KickoffAt:   time.Date(2026, 9, 14, 17, 0, 0, 0, time.UTC),
			Competition: "CAN Qualifiers",
			Country:     "Tunisia",
		},
		{
			ID:          "mt-006",
			BetNumber:   6,
			HomeTeam:    match.Team{Name: "South Africa"},
			AwayTeam:    match.Team{Name: "DR Congo"},
			KickoffAt:   time.Date(2026, 9, 14, 19, 30, 0, 0, time.UTC),
			Competition: "CAN Qualifiers",
			Country:     "South Africa",
		},
	}
}
