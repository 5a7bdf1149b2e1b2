package playerservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"uchelper/api/dto"
	repositories "uchelper/api/repositories/player"
	"uchelper/pkg/database/models"
	"uchelper/pkg/messages"
	"uchelper/pkg/tenchi"
	"uchelper/pkg/tetrio"

	"gorm.io/gorm"
)

const (
	// CacheWindow is how long a fetched stat line keeps being served as is.
	CacheWindow = 45 * time.Minute

	// Bulk sync guard. The TTL covers the slowest observed full league cycle.
	syncLockKey = "players:leaderboard-sync"
	syncLockTTL = 10 * time.Minute

	cardKeyPrefix = "player:card:"
)

// Outcome reports what UpdatePlayer did with the record.
type Outcome int

const (
	OutcomeCached Outcome = iota
	OutcomeRefreshed
	OutcomeCreated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRefreshed:
		return "refreshed"
	case OutcomeCreated:
		return "created"
	default:
		return "cached"
	}
}

var (
	// ErrNotFound is returned when no stored player matches the lookup.
	ErrNotFound = errors.New(messages.CouldNotFindPlayer)

	// ErrFieldNotSet is returned when an unlink finds no link to remove.
	ErrFieldNotSet = errors.New("the account has no discord link to remove")

	// ErrAlreadyLinked is returned when the exact link already exists.
	ErrAlreadyLinked = errors.New("this discord account is already linked to this TETR.IO account")

	// ErrDuplicateDiscordEntry is returned when the discord account is
	// already linked to a different TETR.IO account.
	ErrDuplicateDiscordEntry = errors.New("this discord account is already linked to another TETR.IO account")

	// ErrDuplicateTetrioEntry is returned when the TETR.IO account is
	// already linked to a different discord account.
	ErrDuplicateTetrioEntry = errors.New("this TETR.IO account is already linked to another discord account")

	// ErrExternalFetch wraps every failure of the ladder clients.
	ErrExternalFetch = errors.New("couldn't fetch from the TETR.IO API")

	// ErrSyncInProgress is returned while another bulk sync holds the lock.
	ErrSyncInProgress = errors.New(messages.SyncInProgress)
)

// PlayerRedisClient is the slice of the redis client the service needs.
type PlayerRedisClient interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) (bool, error)
}

// CardCache is the profile card cache boundary.
type CardCache interface {
	GetCard(ctx context.Context, key string) *dto.PlayerCard
	SetCard(ctx context.Context, key string, card *dto.PlayerCard)
}

// PlayerService service with the player repository and the ladder clients.
type PlayerService struct {
	db     *gorm.DB
	tetrio tetrio.Client
	tenchi tenchi.Client
	redis  PlayerRedisClient
	cards  CardCache

	PlayerRepository repositories.PlayerRepository
}

type PlayerServiceDeps struct {
	DB     *gorm.DB
	Tetrio tetrio.Client
	Tenchi tenchi.Client
	Redis  PlayerRedisClient
	Cards  CardCache
}

// NewPlayerService creates a service for handling player operations.
func NewPlayerService(deps *PlayerServiceDeps) *PlayerService {
	return &PlayerService{
		db:               deps.DB,
		tetrio:           deps.Tetrio,
		tenchi:           deps.Tenchi,
		redis:            deps.Redis,
		cards:            deps.Cards,
		PlayerRepository: repositories.NewPlayerRepository(deps.DB),
	}
}

// GetPlayer returns the stored record matching an account id or username.
// Lookup only, the ladder is never called. Nil when nothing matches.
func (ps *PlayerService) GetPlayer(ctx context.Context, query string) (*models.PlayerEntry, error) {
	player, err := ps.PlayerRepository.GetByTetrioID(ctx, query)
	if err != nil {
		return nil, err
	}
	if player != nil {
		return player, nil
	}

	return ps.PlayerRepository.GetByUsername(ctx, query)
}

// GetByDiscord returns the record linked to a discord account, nil when none.
func (ps *PlayerService) GetByDiscord(ctx context.Context, discordID string) (*models.PlayerEntry, error) {
	return ps.PlayerRepository.GetByDiscordID(ctx, discordID)
}

// UpdatePlayer serves the stored record while its stats are fresh and
// refreshes it from the ladder otherwise, creating it on first sight.
func (ps *PlayerService) UpdatePlayer(ctx context.Context, query string) (*models.PlayerEntry, Outcome, error) {
	existing, err := ps.GetPlayer(ctx, query)
	if err != nil {
		return nil, OutcomeCached, err
	}

	if existing != nil && existing.StatsFresh(CacheWindow) {
		return existing, OutcomeCached, nil
	}

	user, err := ps.tetrio.FetchUser(ctx, query)
	if err != nil {
		return nil, OutcomeCached, fmt.Errorf("%w: %w", ErrExternalFetch, err)
	}

	outcome := OutcomeRefreshed
	if existing == nil {
		// The query may be an old username, the account id is the truth.
		existing, err = ps.PlayerRepository.GetByTetrioID(ctx, user.ID)
		if err != nil {
			return nil, OutcomeCached, err
		}
		if existing == nil {
			outcome = OutcomeCreated
		}
	}

	now := time.Now().UTC()
	entry := models.NewPlayerFromUser(user, now)
	if existing != nil {
		entry.DiscordID = existing.DiscordID
		entry.LinkedAt = existing.LinkedAt
		entry.HighestRank = existing.HighestRank
		entry.CreatedAt = existing.CreatedAt
	}

	if err := ps.PlayerRepository.UpsertPlayer(ctx, entry); err != nil {
		return nil, outcome, fmt.Errorf("couldn't store the refreshed player: %v", err)
	}

	return entry, outcome, nil
}

// Link ties a discord account to a TETR.IO account, refreshing the record
// on the way. Both sides must be free.
func (ps *PlayerService) Link(ctx context.Context, discordID string, query string) (*models.PlayerEntry, error) {
	player, _, err := ps.UpdatePlayer(ctx, query)
	if err != nil {
		return nil, err
	}

	if player.Linked() && *player.DiscordID == discordID {
		return nil, ErrAlreadyLinked
	}

	taken, err := ps.PlayerRepository.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, ErrDuplicateDiscordEntry
	}

	if player.Linked() {
		return nil, ErrDuplicateTetrioEntry
	}

	now := time.Now().UTC()
	linked, err := ps.PlayerRepository.LinkDiscord(ctx, player.TetrioID, discordID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateDiscordEntry
		}

		return nil, fmt.Errorf("couldn't link the accounts: %v", err)
	}

	if !linked {
		// Lost the race against another link, reclassify from the row.
		current, err := ps.PlayerRepository.GetByTetrioID(ctx, player.TetrioID)
		if err != nil {
			return nil, err
		}
		if current != nil && current.Linked() && *current.DiscordID == discordID {
			return nil, ErrAlreadyLinked
		}

		return nil, ErrDuplicateTetrioEntry
	}

	player.DiscordID = &discordID
	player.LinkedAt = &now

	return player, nil
}

// UnlinkByDiscord removes the link owned by a discord account.
func (ps *PlayerService) UnlinkByDiscord(ctx context.Context, discordID string) (*models.PlayerEntry, error) {
	player, err := ps.PlayerRepository.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, ErrNotFound
	}

	return ps.clearLink(ctx, player)
}

// UnlinkByTetrio removes the link of a TETR.IO account.
func (ps *PlayerService) UnlinkByTetrio(ctx context.Context, query string) (*models.PlayerEntry, error) {
	player, err := ps.GetPlayer(ctx, query)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, ErrNotFound
	}
	if !player.Linked() {
		return nil, ErrFieldNotSet
	}

	return ps.clearLink(ctx, player)
}

func (ps *PlayerService) clearLink(ctx context.Context, player *models.PlayerEntry) (*models.PlayerEntry, error) {
	cleared, err := ps.PlayerRepository.ClearDiscord(ctx, player.TetrioID)
	if err != nil {
		return nil, fmt.Errorf("couldn't unlink the account: %v", err)
	}
	if !cleared {
		return nil, ErrFieldNotSet
	}

	player.DiscordID = nil
	player.LinkedAt = nil

	return player, nil
}

// UpdateFromLeaderboard resyncs every stored stat line from one full
// league fetch and returns the applied ladder accounts. Each batch
// commits on its own, so a failure midway keeps the progress so far.
func (ps *PlayerService) UpdateFromLeaderboard(ctx context.Context) ([]tetrio.LeaderboardUser, error) {
	acquired, err := ps.redis.SetNX(ctx, syncLockKey, "running", syncLockTTL)
	if err != nil {
		return nil, fmt.Errorf("couldn't check the sync lock: %w", err)
	}
	if !acquired {
		return nil, ErrSyncInProgress
	}

	users, err := ps.tetrio.FetchLeaderboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExternalFetch, err)
	}

	now := time.Now().UTC()
	entries := make([]*models.PlayerEntry, len(users))
	for i := range users {
		entries[i] = models.NewPlayerFromUser(&users[i], now)
	}

	if err := ps.PlayerRepository.UpsertPlayerBatch(ctx, entries); err != nil {
		return nil, fmt.Errorf("couldn't apply the leaderboard: %v", err)
	}

	return users, nil
}

// RefreshHighestRanks pulls the community rank history dump and raises
// the stored highest rank of every player it knows.
func (ps *PlayerService) RefreshHighestRanks(ctx context.Context) (int64, error) {
	history, err := ps.tenchi.FetchHistory(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExternalFetch, err)
	}

	ranks := make(map[string]tetrio.Rank, len(history.Ranks))
	for username := range history.Ranks {
		if highest, ok := history.HighestRank(username); ok && highest > tetrio.RankUnranked {
			ranks[username] = highest
		}
	}

	return ps.PlayerRepository.UpdateHighestRanks(ctx, ranks)
}

// GetPlayerCard returns the profile card for a query, served from the
// two-tier cache unless a refresh is asked for.
func (ps *PlayerService) GetPlayerCard(ctx context.Context, query string, refresh bool) (*dto.PlayerCard, error) {
	key := cardCacheKey(query)

	if !refresh && ps.cards != nil {
		if card := ps.cards.GetCard(ctx, key); card != nil {
			return card, nil
		}
	}

	player, _, err := ps.UpdatePlayer(ctx, query)
	if err != nil {
		return nil, err
	}

	card := dto.NewPlayerCard(player)
	if ps.cards != nil {
		ps.cards.SetCard(ctx, key, card)
	}

	return card, nil
}

func cardCacheKey(query string) string {
	return cardKeyPrefix + strings.ToLower(strings.TrimSpace(query))
}
