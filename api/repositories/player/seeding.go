package repositories

import (
	"testing"

	"uchelper/pkg/database/models"
	"uchelper/pkg/tetrio"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPlayerTestData(t *testing.T, db *gorm.DB) {
	// Clean up existing data
	db.Exec("TRUNCATE TABLE player_entries CASCADE")

	discordHyper := "155149108183695360"
	discordSpin := "90329931401146368"
	countryUS := "US"
	countryBR := "BR"

	players := []*models.PlayerEntry{
		{TetrioID: "5e331f40a0d43328dcb3d293", Username: "hypercubed", DiscordID: &discordHyper, LinkedAt: &fixedDate, Rank: tetrio.RankSS, Rating: 23411.4, Glicko: float(24032.2), RD: float(60.1), GamesPlayed: 2861, GamesWon: 1702, APM: float(68.3), PPS: float(2.8), VS: float(139.6), Country: &countryUS, Supporter: true, Verified: true, HighestRank: tetrio.RankSS, FetchedAt: &fixedDate, CreatedAt: fixedDate, UpdatedAt: fixedDate},
		{TetrioID: "5e843b2c9f1a447d23c0a911", Username: "garbagetime", Rank: tetrio.RankA, Rating: 16822.9, Glicko: float(17333.7), RD: float(75.0), GamesPlayed: 412, GamesWon: 198, APM: float(42.1), PPS: float(1.9), VS: float(88.7), Country: &countryBR, HighestRank: tetrio.RankAPlus, FetchedAt: &fixedDate, CreatedAt: fixedDate, UpdatedAt: fixedDate},
		{TetrioID: "60f01c55ab2de1649cd18802", Username: "spindash", DiscordID: &discordSpin, LinkedAt: &fixedDate, Rank: tetrio.RankSPlus, Rating: 21877.0, Glicko: float(22410.5), RD: float(64.8), GamesPlayed: 980, GamesWon: 533, APM: float(55.4), PPS: float(2.3), VS: float(112.9), HighestRank: tetrio.RankSPlus, FetchedAt: &fixedDate, CreatedAt: fixedDate, UpdatedAt: fixedDate},
		{TetrioID: "61ab34cc10fe2b78e4d97730", Username: "tetraquake", Rank: tetrio.RankB, Rating: 12011.3, GamesPlayed: 44, GamesWon: 20, HighestRank: tetrio.RankB, CreatedAt: fixedDate, UpdatedAt: fixedDate},
	}

	for _, p := range players {
		err := db.Create(p).Error
		require.NoError(t, err)
	}
}
