package tournamentservice

import (
	"context"
	"errors"
	"testing"
	"time"

	playerservice "uchelper/api/services/player"
	servicetestutil "uchelper/api/services/testutil"
	"uchelper/internal/testutil"
	"uchelper/pkg/database/models"
	"uchelper/pkg/registration"
	"uchelper/pkg/tetrio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Simple test for asserting that everything is fine with the tournament service creation.
func TestNewTournamentService(t *testing.T) {
	_, _, mockPlayers := setupTestService()
	deps := &TournamentServiceDeps{
		DB:      new(gorm.DB),
		Players: mockPlayers,
	}

	service := NewTournamentService(deps)
	assert.NotNil(t, service)
	assert.Equal(t, new(gorm.DB), service.db)
	assert.NotNil(t, service.TournamentRepository)
}

// Test the tournament creation and its collision handling.
func TestCreate(t *testing.T) {
	restrictions := models.Restrictions{MaxRank: tetrio.RankSPlus, MaxRD: 100.0, MinGames: 10}

	tests := []struct {
		name          string
		mockSetup     func(repo *servicetestutil.MockTournamentRepository)
		expectedError error
	}{
		{
			name: "created",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository) {
				repo.On("CreateTournament", mock.Anything, mock.MatchedBy(func(tournament *models.Tournament) bool {
					return tournament.Name == "Underdogs Cup 9" && tournament.Shorthand == "UC9"
				})).Return(nil).Once()
			},
		},
		{
			name: "duplicatename",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository) {
				repo.On("CreateTournament", mock.Anything, mock.AnythingOfType("*models.Tournament")).Return(gorm.ErrDuplicatedKey).Once()
			},
			expectedError: ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockRepo, _ := setupTestService()
			tt.mockSetup(mockRepo)

			result, err := service.Create(context.Background(), "Underdogs Cup 9", "UC9", restrictions)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, restrictions, result.Restrictions)
			}

			servicetestutil.VerifyAllMocks(t, mockRepo)
		})
	}
}

// Test the lookup by name or shorthand.
func TestGet(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		mockSetup func(repo *servicetestutil.MockTournamentRepository)
		expected  *testutil.OperationResult[*models.Tournament]
	}{
		{
			name:  "byshorthand",
			query: "UC8",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository) {
				repo.On("GetByQuery", mock.Anything, "UC8").Return(activeTournament(), nil).Once()
			},
			expected: testutil.NewSuccessResult(activeTournament()),
		},
		{
			name:  "unknowntournament",
			query: "UC99",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository) {
				repo.On("GetByQuery", mock.Anything, "UC99").Return(nil, nil).Once()
			},
			expected: &testutil.OperationResult[*models.Tournament]{Err: ErrNotFound},
		},
		{
			name:  "repositoryerror",
			query: "UC8",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository) {
				repo.On("GetByQuery", mock.Anything, "UC8").Return(nil, errors.New(testutil.DatabaseError)).Once()
			},
			expected: testutil.GetMockRepoError[*models.Tournament](),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockRepo, _ := setupTestService()
			tt.mockSetup(mockRepo)

			result, err := service.Get(context.Background(), tt.query)

			if tt.expected.Err != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expected.Err.Error())
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected.Data, result)
			}

			servicetestutil.VerifyAllMocks(t, mockRepo)
		})
	}
}

// Test the active tournament lookup.
func TestGetActive(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(repo *servicetestutil.MockTournamentRepository)
		expected  *testutil.OperationResult[*models.Tournament]
	}{
		{
			name: "activetournament",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
			},
			expected: testutil.NewSuccessResult(activeTournament()),
		},
		{
			name: "noneactive",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository) {
				repo.On("GetActive", mock.Anything).Return(nil, nil).Once()
			},
			expected: &testutil.OperationResult[*models.Tournament]{Err: registration.ErrNoTournamentActive},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockRepo, _ := setupTestService()
			tt.mockSetup(mockRepo)

			result, err := service.GetActive(context.Background())

			if tt.expected.Err != nil {
				assert.ErrorIs(t, err, tt.expected.Err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected.Data, result)
			}

			servicetestutil.VerifyAllMocks(t, mockRepo)
		})
	}
}

// Test the single active tournament switch.
func TestSetActive(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		mockSetup     func(repo *servicetestutil.MockTournamentRepository)
		expectActive  bool
		expectedError error
	}{
		{
			name:  "activatebyshorthand",
			query: "UC8",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository) {
				tournament := activeTournament()
				tournament.Active = false
				repo.On("GetByQuery", mock.Anything, "UC8").Return(tournament, nil).Once()
				id := testTournamentID
				repo.On("SetActive", mock.Anything, &id).Return(nil).Once()
			},
			expectActive: true,
		},
		{
			name:  "emptyquerydeactivatesall",
			query: "",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository) {
				repo.On("SetActive", mock.Anything, (*uint)(nil)).Return(nil).Once()
			},
		},
		{
			name:  "unknowntournament",
			query: "UC99",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository) {
				repo.On("GetByQuery", mock.Anything, "UC99").Return(nil, nil).Once()
			},
			expectedError: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockRepo, _ := setupTestService()
			tt.mockSetup(mockRepo)

			result, err := service.SetActive(context.Background(), tt.query)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				if tt.expectActive {
					assert.NotNil(t, result)
					assert.True(t, result.Active)
				} else {
					assert.Nil(t, result)
				}
			}

			servicetestutil.VerifyAllMocks(t, mockRepo)
		})
	}
}

// Test the announcement day snapshot capture.
func TestCaptureSnapshot(t *testing.T) {
	ladder := []tetrio.LeaderboardUser{
		{ID: testTetrioID, Username: "garbagetime", League: tetrio.LeagueData{Rank: tetrio.RankA, Rating: 16511.2, RD: float(76.4), GamesPlayed: 405}},
		{ID: "5e331f40a0d43328dcb3d293", Username: "hypercubed", League: tetrio.LeagueData{Rank: tetrio.RankSS, Rating: 23190.0, RD: float(62.5), GamesPlayed: 2799}},
	}

	tests := []struct {
		name          string
		query         string
		mockSetup     func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver)
		expectedCount int
		expectedError error
	}{
		{
			name:  "capturedforactive",
			query: "",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				players.On("UpdateFromLeaderboard", mock.Anything).Return(ladder, nil).Once()
				repo.On("SetSnapshot", mock.Anything, testTournamentID, mock.MatchedBy(func(entries []*models.SnapshotEntry) bool {
					return len(entries) == 2 && entries[0].TournamentID == testTournamentID && entries[0].TetrioID == testTetrioID
				}), mock.AnythingOfType("time.Time")).Return(nil).Once()
			},
			expectedCount: 2,
		},
		{
			name:  "capturedbyshorthand",
			query: "UC8",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetByQuery", mock.Anything, "UC8").Return(activeTournament(), nil).Once()
				players.On("UpdateFromLeaderboard", mock.Anything).Return(ladder, nil).Once()
				repo.On("SetSnapshot", mock.Anything, testTournamentID, mock.AnythingOfType("[]*models.SnapshotEntry"), mock.AnythingOfType("time.Time")).Return(nil).Once()
			},
			expectedCount: 2,
		},
		{
			name:  "syncalreadyrunning",
			query: "",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				players.On("UpdateFromLeaderboard", mock.Anything).Return(nil, playerservice.ErrSyncInProgress).Once()
			},
			expectedError: playerservice.ErrSyncInProgress,
		},
		{
			name:  "unknowntournament",
			query: "UC99",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetByQuery", mock.Anything, "UC99").Return(nil, nil).Once()
			},
			expectedError: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockRepo, mockPlayers := setupTestService()
			tt.mockSetup(mockRepo, mockPlayers)

			tournament, count, err := service.CaptureSnapshot(context.Background(), tt.query)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, tournament)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedCount, count)
				assert.NotNil(t, tournament.SnapshottedAt)
			}

			servicetestutil.VerifyAllMocks(t, mockRepo, mockPlayers)
		})
	}
}

// Test the registration flow, from resolution through eligibility to the
// duplicate guard.
func TestRegister(t *testing.T) {
	tests := []struct {
		name          string
		request       RegisterRequest
		mockSetup     func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver)
		expectedError error
		errorAs       func(err error) bool
	}{
		{
			name:    "linksandregisters",
			request: RegisterRequest{DiscordID: testDiscordID, Username: "garbagetime"},
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				players.On("Link", mock.Anything, testDiscordID, "garbagetime").Return(eligiblePlayer(), nil).Once()
				repo.On("GetSnapshotEntry", mock.Anything, testTournamentID, testTetrioID).Return(eligibleSnapshot(), nil).Once()
				repo.On("AddRegistration", mock.Anything, testTournamentID, testTetrioID).Return(true, nil).Once()
			},
		},
		{
			name:    "linkedaccountwithoutusername",
			request: RegisterRequest{DiscordID: testDiscordID},
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				players.On("GetByDiscord", mock.Anything, testDiscordID).Return(eligiblePlayer(), nil).Once()
				players.On("UpdatePlayer", mock.Anything, testTetrioID).Return(eligiblePlayer(), playerservice.OutcomeRefreshed, nil).Once()
				repo.On("GetSnapshotEntry", mock.Anything, testTournamentID, testTetrioID).Return(eligibleSnapshot(), nil).Once()
				repo.On("AddRegistration", mock.Anything, testTournamentID, testTetrioID).Return(true, nil).Once()
			},
		},
		{
			name:    "repeatedusernamefallsthrough",
			request: RegisterRequest{DiscordID: testDiscordID, Username: "garbagetime"},
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				players.On("Link", mock.Anything, testDiscordID, "garbagetime").Return(nil, playerservice.ErrAlreadyLinked).Once()
				players.On("GetByDiscord", mock.Anything, testDiscordID).Return(eligiblePlayer(), nil).Once()
				players.On("UpdatePlayer", mock.Anything, testTetrioID).Return(eligiblePlayer(), playerservice.OutcomeCached, nil).Once()
				repo.On("GetSnapshotEntry", mock.Anything, testTournamentID, testTetrioID).Return(eligibleSnapshot(), nil).Once()
				repo.On("AddRegistration", mock.Anything, testTournamentID, testTetrioID).Return(true, nil).Once()
			},
		},
		{
			name:    "noactivetournament",
			request: RegisterRequest{DiscordID: testDiscordID, Username: "garbagetime"},
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetActive", mock.Anything).Return(nil, nil).Once()
			},
			expectedError: registration.ErrNoTournamentActive,
		},
		{
			name:    "notlinkedandnousername",
			request: RegisterRequest{DiscordID: testDiscordID},
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				players.On("GetByDiscord", mock.Anything, testDiscordID).Return(nil, nil).Once()
			},
			errorAs: func(err error) bool {
				var missing *registration.MissingArgumentError
				return errors.As(err, &missing) && missing.Arg == "username"
			},
		},
		{
			name:    "usernamebelongstoanotherlink",
			request: RegisterRequest{DiscordID: testDiscordID, Username: "hypercubed"},
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				players.On("Link", mock.Anything, testDiscordID, "hypercubed").Return(nil, playerservice.ErrDuplicateTetrioEntry).Once()
			},
			expectedError: playerservice.ErrDuplicateTetrioEntry,
		},
		{
			name:    "snapshotnotcaptured",
			request: RegisterRequest{DiscordID: testDiscordID, Username: "garbagetime"},
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				unsnapshotted := activeTournament()
				unsnapshotted.SnapshottedAt = nil
				repo.On("GetActive", mock.Anything).Return(unsnapshotted, nil).Once()
				players.On("Link", mock.Anything, testDiscordID, "garbagetime").Return(eligiblePlayer(), nil).Once()
				repo.On("GetSnapshotEntry", mock.Anything, testTournamentID, testTetrioID).Return(nil, nil).Once()
			},
			expectedError: registration.ErrSnapshotMissing,
		},
		{
			name:    "unrankedonannouncementday",
			request: RegisterRequest{DiscordID: testDiscordID, Username: "garbagetime"},
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				players.On("Link", mock.Anything, testDiscordID, "garbagetime").Return(eligiblePlayer(), nil).Once()
				repo.On("GetSnapshotEntry", mock.Anything, testTournamentID, testTetrioID).Return(nil, nil).Once()
			},
			errorAs: func(err error) bool {
				var unranked *registration.UnrankedError
				return errors.As(err, &unranked) && unranked.Date.Equal(announcementDate)
			},
		},
		{
			name:    "ranktoohighonannouncementday",
			request: RegisterRequest{DiscordID: testDiscordID, Username: "garbagetime"},
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				players.On("Link", mock.Anything, testDiscordID, "garbagetime").Return(eligiblePlayer(), nil).Once()
				snap := eligibleSnapshot()
				snap.Rank = tetrio.RankSS
				repo.On("GetSnapshotEntry", mock.Anything, testTournamentID, testTetrioID).Return(snap, nil).Once()
			},
			errorAs: func(err error) bool {
				var rank *registration.AnnouncementRankError
				return errors.As(err, &rank) && rank.Rank == tetrio.RankSS && rank.Expected == tetrio.RankSPlus
			},
		},
		{
			name:    "outgrewthecap",
			request: RegisterRequest{DiscordID: testDiscordID, Username: "garbagetime"},
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				climbed := eligiblePlayer()
				climbed.Rank = tetrio.RankU
				players.On("Link", mock.Anything, testDiscordID, "garbagetime").Return(climbed, nil).Once()
				repo.On("GetSnapshotEntry", mock.Anything, testTournamentID, testTetrioID).Return(eligibleSnapshot(), nil).Once()
			},
			errorAs: func(err error) bool {
				var current *registration.CurrentRankError
				return errors.As(err, &current) && current.Rank == tetrio.RankU && current.Expected == tetrio.RankSS
			},
		},
		{
			name:    "staffoverrideskipseligibility",
			request: RegisterRequest{DiscordID: testDiscordID, Username: "garbagetime", StaffOverride: true},
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				climbed := eligiblePlayer()
				climbed.Rank = tetrio.RankU
				players.On("Link", mock.Anything, testDiscordID, "garbagetime").Return(climbed, nil).Once()
				repo.On("AddRegistration", mock.Anything, testTournamentID, testTetrioID).Return(true, nil).Once()
			},
		},
		{
			name:    "staffoverridestillblocksduplicates",
			request: RegisterRequest{DiscordID: testDiscordID, Username: "garbagetime", StaffOverride: true},
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				players.On("Link", mock.Anything, testDiscordID, "garbagetime").Return(eligiblePlayer(), nil).Once()
				repo.On("AddRegistration", mock.Anything, testTournamentID, testTetrioID).Return(false, nil).Once()
			},
			expectedError: registration.ErrAlreadyRegistered,
		},
		{
			name:    "alreadyregistered",
			request: RegisterRequest{DiscordID: testDiscordID, Username: "garbagetime"},
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				players.On("Link", mock.Anything, testDiscordID, "garbagetime").Return(eligiblePlayer(), nil).Once()
				repo.On("GetSnapshotEntry", mock.Anything, testTournamentID, testTetrioID).Return(eligibleSnapshot(), nil).Once()
				repo.On("AddRegistration", mock.Anything, testTournamentID, testTetrioID).Return(false, nil).Once()
			},
			expectedError: registration.ErrAlreadyRegistered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockRepo, mockPlayers := setupTestService()
			tt.mockSetup(mockRepo, mockPlayers)

			player, tournament, err := service.Register(context.Background(), tt.request)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, player)
			case tt.errorAs != nil:
				assert.Error(t, err)
				assert.True(t, tt.errorAs(err))
				assert.Nil(t, player)
			default:
				assert.NoError(t, err)
				assert.Equal(t, testTetrioID, player.TetrioID)
				assert.Equal(t, testTournamentID, tournament.ID)
			}

			servicetestutil.VerifyAllMocks(t, mockRepo, mockPlayers)
		})
	}
}

// Test taking a player off the list.
func TestUnregister(t *testing.T) {
	tests := []struct {
		name          string
		discordID     string
		username      string
		mockSetup     func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver)
		expectedError error
	}{
		{
			name:      "bydiscord",
			discordID: testDiscordID,
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				players.On("GetByDiscord", mock.Anything, testDiscordID).Return(eligiblePlayer(), nil).Once()
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				repo.On("RemoveRegistration", mock.Anything, testTournamentID, testTetrioID).Return(true, nil).Once()
			},
		},
		{
			name:     "byusername",
			username: "garbagetime",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				players.On("GetPlayer", mock.Anything, "garbagetime").Return(eligiblePlayer(), nil).Once()
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				repo.On("RemoveRegistration", mock.Anything, testTournamentID, testTetrioID).Return(true, nil).Once()
			},
		},
		{
			name:      "unknownplayer",
			discordID: testDiscordID,
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				players.On("GetByDiscord", mock.Anything, testDiscordID).Return(nil, nil).Once()
			},
			expectedError: playerservice.ErrNotFound,
		},
		{
			name:      "noactivetournament",
			discordID: testDiscordID,
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				players.On("GetByDiscord", mock.Anything, testDiscordID).Return(eligiblePlayer(), nil).Once()
				repo.On("GetActive", mock.Anything).Return(nil, nil).Once()
			},
			expectedError: registration.ErrNoTournamentActive,
		},
		{
			name:      "notregistered",
			discordID: testDiscordID,
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				players.On("GetByDiscord", mock.Anything, testDiscordID).Return(eligiblePlayer(), nil).Once()
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				repo.On("RemoveRegistration", mock.Anything, testTournamentID, testTetrioID).Return(false, nil).Once()
			},
			expectedError: registration.ErrNotRegistered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockRepo, mockPlayers := setupTestService()
			tt.mockSetup(mockRepo, mockPlayers)

			player, tournament, err := service.Unregister(context.Background(), tt.discordID, tt.username)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, player)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, testTetrioID, player.TetrioID)
				assert.Equal(t, testTournamentID, tournament.ID)
			}

			servicetestutil.VerifyAllMocks(t, mockRepo, mockPlayers)
		})
	}
}

// Test the sign-up listing and its dto mapping.
func TestRegisteredPlayers(t *testing.T) {
	registeredAt := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	entries := []models.RegistrationEntry{
		{ID: 1, TournamentID: testTournamentID, TetrioID: "5e331f40a0d43328dcb3d293", Player: models.PlayerEntry{
			TetrioID: "5e331f40a0d43328dcb3d293", Username: "hypercubed", Rank: tetrio.RankSS, Rating: 23411.4, GamesPlayed: 2861, RD: float(60.1),
		}, RegisteredAt: registeredAt},
		{ID: 2, TournamentID: testTournamentID, TetrioID: testTetrioID, Player: *eligiblePlayer(), RegisteredAt: registeredAt},
	}

	tests := []struct {
		name          string
		query         string
		mockSetup     func(repo *servicetestutil.MockTournamentRepository)
		expectedLen   int
		expectedError error
	}{
		{
			name:  "activelisting",
			query: "",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				repo.On("GetRegistrations", mock.Anything, testTournamentID).Return(entries, nil).Once()
			},
			expectedLen: 2,
		},
		{
			name:  "byshorthand",
			query: "UC8",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository) {
				repo.On("GetByQuery", mock.Anything, "UC8").Return(activeTournament(), nil).Once()
				repo.On("GetRegistrations", mock.Anything, testTournamentID).Return([]models.RegistrationEntry{}, nil).Once()
			},
			expectedLen: 0,
		},
		{
			name:  "unknowntournament",
			query: "UC99",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository) {
				repo.On("GetByQuery", mock.Anything, "UC99").Return(nil, nil).Once()
			},
			expectedError: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockRepo, _ := setupTestService()
			tt.mockSetup(mockRepo)

			tournament, players, err := service.RegisteredPlayers(context.Background(), tt.query)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, tournament)
			} else {
				assert.NoError(t, err)
				assert.Len(t, players, tt.expectedLen)
				if tt.expectedLen > 0 {
					assert.Equal(t, "hypercubed", players[0].Username)
					assert.Equal(t, "ss", players[0].Rank)
					assert.Equal(t, registeredAt, players[0].RegisteredAt)
				}
			}

			servicetestutil.VerifyAllMocks(t, mockRepo)
		})
	}
}

// Test appending to the check-in log.
func TestRecordCheckIn(t *testing.T) {
	tests := []struct {
		name          string
		mockSetup     func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver)
		expectedError error
	}{
		{
			name: "checkedin",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				players.On("GetByDiscord", mock.Anything, testDiscordID).Return(eligiblePlayer(), nil).Once()
				repo.On("IsRegistered", mock.Anything, testTournamentID, testTetrioID).Return(true, nil).Once()
				repo.On("AddCheckInEvent", mock.Anything, mock.MatchedBy(func(event *models.CheckInEvent) bool {
					return event.TournamentID == testTournamentID && event.DiscordID == testDiscordID && event.Action == models.CheckInAdd
				})).Return(nil).Once()
			},
		},
		{
			name: "notlinked",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				players.On("GetByDiscord", mock.Anything, testDiscordID).Return(nil, nil).Once()
			},
			expectedError: playerservice.ErrNotFound,
		},
		{
			name: "notregistered",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				players.On("GetByDiscord", mock.Anything, testDiscordID).Return(eligiblePlayer(), nil).Once()
				repo.On("IsRegistered", mock.Anything, testTournamentID, testTetrioID).Return(false, nil).Once()
			},
			expectedError: registration.ErrNotRegistered,
		},
		{
			name: "noactivetournament",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository, players *MockPlayerResolver) {
				repo.On("GetActive", mock.Anything).Return(nil, nil).Once()
			},
			expectedError: registration.ErrNoTournamentActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockRepo, mockPlayers := setupTestService()
			tt.mockSetup(mockRepo, mockPlayers)

			err := service.RecordCheckIn(context.Background(), testDiscordID, models.CheckInAdd)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			servicetestutil.VerifyAllMocks(t, mockRepo, mockPlayers)
		})
	}
}

// Test replaying the check-in log into the current set.
func TestCheckedIn(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(repo *servicetestutil.MockTournamentRepository)
		expected  []string
	}{
		{
			name: "replayedlog",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				repo.On("GetCheckInEvents", mock.Anything, testTournamentID).Return([]models.CheckInEvent{
					{ID: 1, TournamentID: testTournamentID, DiscordID: "90329931401146368", Action: models.CheckInAdd},
					{ID: 2, TournamentID: testTournamentID, DiscordID: testDiscordID, Action: models.CheckInAdd},
					{ID: 3, TournamentID: testTournamentID, DiscordID: "90329931401146368", Action: models.CheckInRemove},
					{ID: 4, TournamentID: testTournamentID, DiscordID: "155149108183695360", Action: models.CheckInAdd},
				}, nil).Once()
			},
			expected: []string{"155149108183695360", testDiscordID},
		},
		{
			name: "emptylog",
			mockSetup: func(repo *servicetestutil.MockTournamentRepository) {
				repo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
				repo.On("GetCheckInEvents", mock.Anything, testTournamentID).Return([]models.CheckInEvent{}, nil).Once()
			},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockRepo, _ := setupTestService()
			tt.mockSetup(mockRepo)

			checkedIn, err := service.CheckedIn(context.Background())

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, checkedIn)

			servicetestutil.VerifyAllMocks(t, mockRepo)
		})
	}
}

// Test anchoring the check-in message.
func TestSetCheckInMessage(t *testing.T) {
	service, mockRepo, _ := setupTestService()
	messageID := "1214033056418506844"
	mockRepo.On("GetActive", mock.Anything).Return(activeTournament(), nil).Once()
	mockRepo.On("SetCheckInMessage", mock.Anything, testTournamentID, messageID).Return(nil).Once()

	tournament, err := service.SetCheckInMessage(context.Background(), "", messageID)

	assert.NoError(t, err)
	assert.NotNil(t, tournament.CheckInMessageID)
	assert.Equal(t, messageID, *tournament.CheckInMessageID)

	servicetestutil.VerifyAllMocks(t, mockRepo)
}

// Test the CSV export of the sign-up list.
func TestExportRegistrations(t *testing.T) {
	registeredAt := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	discordID := testDiscordID
	entries := []models.RegistrationEntry{
		{ID: 1, TournamentID: testTournamentID, TetrioID: testTetrioID, Player: models.PlayerEntry{
			TetrioID: testTetrioID, Username: "garbagetime", Rank: tetrio.RankA, Rating: 16822.9,
			GamesPlayed: 412, RD: float(75.0), DiscordID: &discordID,
		}, RegisteredAt: registeredAt},
		{ID: 2, TournamentID: testTournamentID, TetrioID: "61ab34cc10fe2b78e4d97730", Player: models.PlayerEntry{
			TetrioID: "61ab34cc10fe2b78e4d97730", Username: "tetraquake", Rank: tetrio.RankB, Rating: 12011.3,
			GamesPlayed: 44,
		}, RegisteredAt: registeredAt},
	}

	t.Run("rendered", func(t *testing.T) {
		service, mockRepo, _ := setupTestService()
		mockRepo.On("GetByQuery", mock.Anything, "UC8").Return(activeTournament(), nil).Once()
		mockRepo.On("GetRegistrations", mock.Anything, testTournamentID).Return(entries, nil).Once()

		data, filename, err := service.ExportRegistrations(context.Background(), "UC8")

		assert.NoError(t, err)
		assert.Equal(t, "uc8-registrations.csv", filename)

		expected := "username,tetrio_id,rank,rating,games_played,rd,discord_id,registered_at\n" +
			"garbagetime,5e843b2c9f1a447d23c0a911,a,16822.90,412,75.00,415809047018536321,2024-03-02T12:00:00Z\n" +
			"tetraquake,61ab34cc10fe2b78e4d97730,b,12011.30,44,,,2024-03-02T12:00:00Z\n"
		assert.Equal(t, expected, string(data))

		servicetestutil.VerifyAllMocks(t, mockRepo)
	})

	t.Run("unknowntournament", func(t *testing.T) {
		service, mockRepo, _ := setupTestService()
		mockRepo.On("GetByQuery", mock.Anything, "UC99").Return(nil, nil).Once()

		data, filename, err := service.ExportRegistrations(context.Background(), "UC99")

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, data)
		assert.Empty(t, filename)

		servicetestutil.VerifyAllMocks(t, mockRepo)
	})
}
