package testutil

import (
	"context"
	"testing"
	"time"

	"uchelper/api/dto"
	"uchelper/pkg/database/models"
	"uchelper/pkg/tenchi"
	"uchelper/pkg/tetrio"

	"github.com/stretchr/testify/mock"
)

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(*testing.T) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// ============================================================================
// Mock Implementations used on the Player service tests.
// ============================================================================

// Player repository mock implementation.
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) GetByTetrioID(ctx context.Context, tetrioID string) (*models.PlayerEntry, error) {
	args := m.Called(ctx, tetrioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerEntry), args.Error(1)
}

func (m *MockPlayerRepository) GetByUsername(ctx context.Context, username string) (*models.PlayerEntry, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerEntry), args.Error(1)
}

func (m *MockPlayerRepository) GetByDiscordID(ctx context.Context, discordID string) (*models.PlayerEntry, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerEntry), args.Error(1)
}

func (m *MockPlayerRepository) UpsertPlayer(ctx context.Context, player *models.PlayerEntry) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

func (m *MockPlayerRepository) UpsertPlayerBatch(ctx context.Context, players []*models.PlayerEntry) error {
	args := m.Called(ctx, players)
	return args.Error(0)
}

func (m *MockPlayerRepository) LinkDiscord(ctx context.Context, tetrioID string, discordID string, linkedAt time.Time) (bool, error) {
	args := m.Called(ctx, tetrioID, discordID, linkedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlayerRepository) ClearDiscord(ctx context.Context, tetrioID string) (bool, error) {
	args := m.Called(ctx, tetrioID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlayerRepository) UpdateHighestRanks(ctx context.Context, ranks map[string]tetrio.Rank) (int64, error) {
	args := m.Called(ctx, ranks)
	return args.Get(0).(int64), args.Error(1)
}

// TETR.IO API client mock implementation.
type MockTetrioClient struct {
	mock.Mock
}

func (m *MockTetrioClient) FetchUser(ctx context.Context, query string) (*tetrio.LeaderboardUser, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tetrio.LeaderboardUser), args.Error(1)
}

func (m *MockTetrioClient) FetchLeaderboard(ctx context.Context) ([]tetrio.LeaderboardUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tetrio.LeaderboardUser), args.Error(1)
}

// Rank history client mock implementation.
type MockTenchiClient struct {
	mock.Mock
}

func (m *MockTenchiClient) FetchHistory(ctx context.Context) (*tenchi.PlayerHistory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenchi.PlayerHistory), args.Error(1)
}

// Player redis client mock implementation.
type MockPlayerRedisClient struct {
	mock.Mock
}

func (m *MockPlayerRedisClient) SetNX(ctx context.Context, key string, value any, expiration time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, expiration)
	return args.Bool(0), args.Error(1)
}

// Player card cache mock implementation.
type MockCardCache struct {
	mock.Mock
}

func (m *MockCardCache) GetCard(ctx context.Context, key string) *dto.PlayerCard {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*dto.PlayerCard)
}

func (m *MockCardCache) SetCard(ctx context.Context, key string, card *dto.PlayerCard) {
	m.Called(ctx, key, card)
}

// ============================================================================
// Mock Implementations used on the Tournament service tests.
// ============================================================================

// Tournament repository mock implementation.
type MockTournamentRepository struct {
	mock.Mock
}

func (m *MockTournamentRepository) CreateTournament(ctx context.Context, tournament *models.Tournament) error {
	args := m.Called(ctx, tournament)
	return args.Error(0)
}

func (m *MockTournamentRepository) GetByQuery(ctx context.Context, query string) (*models.Tournament, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tournament), args.Error(1)
}

func (m *MockTournamentRepository) GetActive(ctx context.Context) (*models.Tournament, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tournament), args.Error(1)
}

func (m *MockTournamentRepository) SetActive(ctx context.Context, tournamentID *uint) error {
	args := m.Called(ctx, tournamentID)
	return args.Error(0)
}

func (m *MockTournamentRepository) SetSnapshot(ctx context.Context, tournamentID uint, entries []*models.SnapshotEntry, capturedAt time.Time) error {
	args := m.Called(ctx, tournamentID, entries, capturedAt)
	return args.Error(0)
}

func (m *MockTournamentRepository) GetSnapshotEntry(ctx context.Context, tournamentID uint, tetrioID string) (*models.SnapshotEntry, error) {
	args := m.Called(ctx, tournamentID, tetrioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SnapshotEntry), args.Error(1)
}

func (m *MockTournamentRepository) AddRegistration(ctx context.Context, tournamentID uint, tetrioID string) (bool, error) {
	args := m.Called(ctx, tournamentID, tetrioID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTournamentRepository) RemoveRegistration(ctx context.Context, tournamentID uint, tetrioID string) (bool, error) {
	args := m.Called(ctx, tournamentID, tetrioID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTournamentRepository) IsRegistered(ctx context.Context, tournamentID uint, tetrioID string) (bool, error) {
	args := m.Called(ctx, tournamentID, tetrioID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTournamentRepository) GetRegistrations(ctx context.Context, tournamentID uint) ([]models.RegistrationEntry, error) {
	args := m.Called(ctx, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RegistrationEntry), args.Error(1)
}

func (m *MockTournamentRepository) SetCheckInMessage(ctx context.Context, tournamentID uint, messageID string) error {
	args := m.Called(ctx, tournamentID, messageID)
	return args.Error(0)
}

func (m *MockTournamentRepository) AddCheckInEvent(ctx context.Context, event *models.CheckInEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockTournamentRepository) GetCheckInEvents(ctx context.Context, tournamentID uint) ([]models.CheckInEvent, error) {
	args := m.Called(ctx, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CheckInEvent), args.Error(1)
}

// The player resolver mock lives next to the tournament service tests,
// its signatures reference the player service package.
