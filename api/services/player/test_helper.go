package playerservice

import (
	"time"

	"uchelper/api/services/testutil"
	"uchelper/pkg/database/models"
	"uchelper/pkg/tetrio"

	"gorm.io/gorm"
)

const (
	testTetrioID  = "5e331f40a0d43328dcb3d293"
	testDiscordID = "155149108183695360"
)

// Helper to initialize the mocks.
func setupTestService() (
	*PlayerService,
	*testutil.MockPlayerRepository,
	*testutil.MockTetrioClient,
	*testutil.MockTenchiClient,
	*testutil.MockPlayerRedisClient,
	*testutil.MockCardCache,
) {
	mockPlayerRepo := new(testutil.MockPlayerRepository)
	mockTetrio := new(testutil.MockTetrioClient)
	mockTenchi := new(testutil.MockTenchiClient)
	mockRedis := new(testutil.MockPlayerRedisClient)
	mockCards := new(testutil.MockCardCache)

	service := &PlayerService{
		db:               new(gorm.DB),
		tetrio:           mockTetrio,
		tenchi:           mockTenchi,
		redis:            mockRedis,
		cards:            mockCards,
		PlayerRepository: mockPlayerRepo,
	}

	return service, mockPlayerRepo, mockTetrio, mockTenchi, mockRedis, mockCards
}

func float(v float64) *float64 {
	return &v
}

// storedPlayer returns a registry entry whose stats were fetched at the
// given time.
func storedPlayer(fetchedAt time.Time) *models.PlayerEntry {
	return &models.PlayerEntry{
		TetrioID:    testTetrioID,
		Username:    "hypercubed",
		Rank:        tetrio.RankSS,
		Rating:      23411.4,
		RD:          float(60.1),
		GamesPlayed: 2861,
		GamesWon:    1702,
		HighestRank: tetrio.RankSS,
		FetchedAt:   &fetchedAt,
	}
}

// linkedPlayer is storedPlayer with a discord identity attached.
func linkedPlayer(fetchedAt time.Time, discordID string) *models.PlayerEntry {
	player := storedPlayer(fetchedAt)
	player.DiscordID = &discordID
	player.LinkedAt = &fetchedAt
	return player
}

// ladderUser is the API response for the same account, slightly ahead
// of the stored stats.
func ladderUser() *tetrio.LeaderboardUser {
	return &tetrio.LeaderboardUser{
		ID:       testTetrioID,
		Username: "hypercubed",
		Verified: true,
		League: tetrio.LeagueData{
			GamesPlayed: 2903,
			GamesWon:    1731,
			Rating:      24100.8,
			Rank:        tetrio.RankU,
			Glicko:      float(24710.0),
			RD:          float(58.9),
		},
	}
}
