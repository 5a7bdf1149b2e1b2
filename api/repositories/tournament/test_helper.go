package repositories

import (
	"time"

	"uchelper/pkg/database/models"
	"uchelper/pkg/tetrio"
)

var fixedDate = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func float(v float64) *float64 {
	return &v
}

func getActiveTournament() *models.Tournament {
	return &models.Tournament{
		ID:            1,
		Name:          "Underdogs Cup 8",
		Shorthand:     "UC8",
		Restrictions:  models.Restrictions{MaxRank: tetrio.RankSPlus, MaxRD: 100.0, MinGames: 10},
		Active:        true,
		SnapshottedAt: &fixedDate,
		CreatedAt:     fixedDate,
		UpdatedAt:     fixedDate,
	}
}

func normalizeTournamentTimes(tournaments ...*models.Tournament) {
	for _, tournament := range tournaments {
		if tournament == nil {
			continue
		}
		tournament.CreatedAt = tournament.CreatedAt.UTC()
		tournament.UpdatedAt = tournament.UpdatedAt.UTC()
		if tournament.SnapshottedAt != nil {
			utc := tournament.SnapshottedAt.UTC()
			tournament.SnapshottedAt = &utc
		}
	}
}
