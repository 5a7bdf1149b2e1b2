package repositories

import (
	"testing"

	"uchelper/pkg/database/models"
	"uchelper/pkg/tetrio"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedTournamentTestData(t *testing.T, db *gorm.DB) {
	// Clean up existing data
	db.Exec("TRUNCATE TABLE player_entries, tournaments, registration_entries, snapshot_entries, check_in_events RESTART IDENTITY CASCADE")

	discordHyper := "155149108183695360"
	discordGarbage := "415809047018536321"

	players := []*models.PlayerEntry{
		{TetrioID: "5e331f40a0d43328dcb3d293", Username: "hypercubed", DiscordID: &discordHyper, LinkedAt: &fixedDate, Rank: tetrio.RankSS, Rating: 23411.4, RD: float(60.1), GamesPlayed: 2861, GamesWon: 1702, HighestRank: tetrio.RankSS, FetchedAt: &fixedDate, CreatedAt: fixedDate, UpdatedAt: fixedDate},
		{TetrioID: "5e843b2c9f1a447d23c0a911", Username: "garbagetime", DiscordID: &discordGarbage, LinkedAt: &fixedDate, Rank: tetrio.RankA, Rating: 16822.9, RD: float(75.0), GamesPlayed: 412, GamesWon: 198, HighestRank: tetrio.RankAPlus, FetchedAt: &fixedDate, CreatedAt: fixedDate, UpdatedAt: fixedDate},
		{TetrioID: "61ab34cc10fe2b78e4d97730", Username: "tetraquake", Rank: tetrio.RankB, Rating: 12011.3, GamesPlayed: 44, GamesWon: 20, HighestRank: tetrio.RankB, CreatedAt: fixedDate, UpdatedAt: fixedDate},
	}

	for _, p := range players {
		err := db.Create(p).Error
		require.NoError(t, err)
	}

	tournaments := []*models.Tournament{
		{ID: 1, Name: "Underdogs Cup 8", Shorthand: "UC8", Restrictions: models.Restrictions{MaxRank: tetrio.RankSPlus, MaxRD: 100.0, MinGames: 10}, Active: true, SnapshottedAt: &fixedDate, CreatedAt: fixedDate, UpdatedAt: fixedDate},
		{ID: 2, Name: "Underdogs Cup 7", Shorthand: "UC7", Restrictions: models.Restrictions{MaxRank: tetrio.RankSPlus, MaxRD: 100.0, MinGames: 10}, CreatedAt: fixedDate, UpdatedAt: fixedDate},
	}

	for _, tournament := range tournaments {
		err := db.Create(tournament).Error
		require.NoError(t, err)
	}

	// Seeding with explicit ids leaves the sequence behind, move it past them.
	err := db.Exec("SELECT setval(pg_get_serial_sequence('tournaments', 'id'), 50)").Error
	require.NoError(t, err)

	registrations := []*models.RegistrationEntry{
		{TournamentID: 1, TetrioID: "5e331f40a0d43328dcb3d293", RegisteredAt: fixedDate},
		{TournamentID: 1, TetrioID: "5e843b2c9f1a447d23c0a911", RegisteredAt: fixedDate},
	}

	for _, registration := range registrations {
		err := db.Omit("Player").Create(registration).Error
		require.NoError(t, err)
	}

	snapshot := []*models.SnapshotEntry{
		{TournamentID: 1, TetrioID: "5e331f40a0d43328dcb3d293", Username: "hypercubed", Rank: tetrio.RankSS, Rating: 23190.0, RD: float(62.5), GamesPlayed: 2799},
	}

	for _, entry := range snapshot {
		err := db.Create(entry).Error
		require.NoError(t, err)
	}

	events := []*models.CheckInEvent{
		{TournamentID: 1, DiscordID: "155149108183695360", Action: models.CheckInAdd},
		{TournamentID: 1, DiscordID: "415809047018536321", Action: models.CheckInAdd},
		{TournamentID: 1, DiscordID: "155149108183695360", Action: models.CheckInRemove},
		{TournamentID: 1, DiscordID: "155149108183695360", Action: models.CheckInAdd},
	}

	for _, event := range events {
		err := db.Create(event).Error
		require.NoError(t, err)
	}
}
