package tournamentservice

import (
	"context"
	"time"

	playerservice "uchelper/api/services/player"
	servicetestutil "uchelper/api/services/testutil"
	"uchelper/pkg/database/models"
	"uchelper/pkg/tetrio"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

const (
	testTournamentID = uint(1)
	testTetrioID     = "5e843b2c9f1a447d23c0a911"
	testDiscordID    = "415809047018536321"
)

var announcementDate = time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

// Helper to initialize the mocks.
func setupTestService() (*TournamentService, *servicetestutil.MockTournamentRepository, *MockPlayerResolver) {
	mockTournamentRepo := new(servicetestutil.MockTournamentRepository)
	mockPlayers := new(MockPlayerResolver)

	service := &TournamentService{
		db:                   new(gorm.DB),
		players:              mockPlayers,
		TournamentRepository: mockTournamentRepo,
	}

	return service, mockTournamentRepo, mockPlayers
}

func float(v float64) *float64 {
	return &v
}

// activeTournament is the running event the registration tests target.
func activeTournament() *models.Tournament {
	return &models.Tournament{
		ID:        testTournamentID,
		Name:      "Underdogs Cup 8",
		Shorthand: "UC8",
		Restrictions: models.Restrictions{
			MaxRank:  tetrio.RankSPlus,
			MaxRD:    100.0,
			MinGames: 10,
		},
		Active:        true,
		SnapshottedAt: &announcementDate,
	}
}

// eligiblePlayer sits comfortably under every restriction.
func eligiblePlayer() *models.PlayerEntry {
	discordID := testDiscordID
	linkedAt := announcementDate

	return &models.PlayerEntry{
		TetrioID:    testTetrioID,
		Username:    "garbagetime",
		DiscordID:   &discordID,
		LinkedAt:    &linkedAt,
		Rank:        tetrio.RankA,
		Rating:      16822.9,
		RD:          float(75.0),
		GamesPlayed: 412,
		GamesWon:    198,
		HighestRank: tetrio.RankAPlus,
	}
}

// eligibleSnapshot is the same account on announcement day.
func eligibleSnapshot() *models.SnapshotEntry {
	return &models.SnapshotEntry{
		ID:           1,
		TournamentID: testTournamentID,
		TetrioID:     testTetrioID,
		Username:     "garbagetime",
		Rank:         tetrio.RankA,
		Rating:       16511.2,
		RD:           float(76.4),
		GamesPlayed:  405,
	}
}

// Player resolver mock implementation. It lives here rather than with the
// shared mocks because its signatures reference the player service package.
type MockPlayerResolver struct {
	mock.Mock
}

func (m *MockPlayerResolver) GetPlayer(ctx context.Context, query string) (*models.PlayerEntry, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerEntry), args.Error(1)
}

func (m *MockPlayerResolver) GetByDiscord(ctx context.Context, discordID string) (*models.PlayerEntry, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerEntry), args.Error(1)
}

func (m *MockPlayerResolver) UpdatePlayer(ctx context.Context, query string) (*models.PlayerEntry, playerservice.Outcome, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, playerservice.OutcomeCached, args.Error(2)
	}
	return args.Get(0).(*models.PlayerEntry), args.Get(1).(playerservice.Outcome), args.Error(2)
}

func (m *MockPlayerResolver) UpdateFromLeaderboard(ctx context.Context) ([]tetrio.LeaderboardUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tetrio.LeaderboardUser), args.Error(1)
}

func (m *MockPlayerResolver) Link(ctx context.Context, discordID string, query string) (*models.PlayerEntry, error) {
	args := m.Called(ctx, discordID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerEntry), args.Error(1)
}
