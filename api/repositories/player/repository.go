package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"uchelper/pkg/database/models"
	"uchelper/pkg/tetrio"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	upsertBatchSize      = 500
	highestRankBatchSize = 500
)

// Stat columns a fresh ladder response is allowed to overwrite.
// Link fields and the highest rank are never touched by an upsert.
var playerStatsColumns = []string{
	"username", "rank", "rating", "glicko", "rd", "games_played", "games_won",
	"apm", "pps", "vs", "country", "supporter", "verified", "fetched_at",
	"updated_at",
}

// PlayerRepository is the public interface for accessing the player store.
type PlayerRepository interface {
	GetByTetrioID(ctx context.Context, tetrioID string) (*models.PlayerEntry, error)
	GetByUsername(ctx context.Context, username string) (*models.PlayerEntry, error)
	GetByDiscordID(ctx context.Context, discordID string) (*models.PlayerEntry, error)
	UpsertPlayer(ctx context.Context, player *models.PlayerEntry) error
	UpsertPlayerBatch(ctx context.Context, players []*models.PlayerEntry) error
	LinkDiscord(ctx context.Context, tetrioID string, discordID string, linkedAt time.Time) (bool, error)
	ClearDiscord(ctx context.Context, tetrioID string) (bool, error)
	UpdateHighestRanks(ctx context.Context, ranks map[string]tetrio.Rank) (int64, error)
}

// playerRepository repository structure.
type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a player repository.
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

// GetByTetrioID returns a player by account id, or nil when unknown.
func (pr *playerRepository) GetByTetrioID(ctx context.Context, tetrioID string) (*models.PlayerEntry, error) {
	var player models.PlayerEntry
	if err := pr.db.WithContext(ctx).Where("tetrio_id = ?", tetrioID).First(&player).Error; err != nil {
		// If the record was not found, doesn't need to return a error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("couldn't get the player by the account id: %v", err)
	}

	return &player, nil
}

// GetByUsername returns a player by the cached username, or nil when unknown.
// Usernames are stored lowercased, so the match is case-insensitive.
func (pr *playerRepository) GetByUsername(ctx context.Context, username string) (*models.PlayerEntry, error) {
	var player models.PlayerEntry
	normalized := strings.ToLower(strings.TrimSpace(username))

	if err := pr.db.WithContext(ctx).Where("username = ?", normalized).First(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("couldn't get the player by the username: %v", err)
	}

	return &player, nil
}

// GetByDiscordID returns the player linked to a discord id, or nil when none is.
func (pr *playerRepository) GetByDiscordID(ctx context.Context, discordID string) (*models.PlayerEntry, error) {
	var player models.PlayerEntry
	if err := pr.db.WithContext(ctx).Where("discord_id = ?", discordID).First(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("couldn't get the player by the discord id: %v", err)
	}

	return &player, nil
}

// UpsertPlayer creates or refreshes a single player entry.
func (pr *playerRepository) UpsertPlayer(ctx context.Context, player *models.PlayerEntry) error {
	return pr.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tetrio_id"}},
		DoUpdates: clause.AssignmentColumns(playerStatsColumns),
	}).Create(player).Error
}

// UpsertPlayerBatch applies a full leaderboard to the registry.
// Each batch commits on its own, a failure midway leaves earlier
// batches applied.
func (pr *playerRepository) UpsertPlayerBatch(ctx context.Context, players []*models.PlayerEntry) error {
	if len(players) == 0 {
		return nil
	}

	return pr.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tetrio_id"}},
		DoUpdates: clause.AssignmentColumns(playerStatsColumns),
	}).CreateInBatches(&players, upsertBatchSize).Error
}

// LinkDiscord ties a discord id to an unlinked player entry.
// The condition and the unique index on discord_id close the
// check-then-write race, a lost race reports no row linked or a
// duplicated key error.
func (pr *playerRepository) LinkDiscord(ctx context.Context, tetrioID string, discordID string, linkedAt time.Time) (bool, error) {
	result := pr.db.WithContext(ctx).Model(&models.PlayerEntry{}).
		Where("tetrio_id = ? AND discord_id IS NULL", tetrioID).
		Updates(map[string]any{
			"discord_id": discordID,
			"linked_at":  linkedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// ClearDiscord removes the link from a player entry.
// Reports whether there was a link to clear.
func (pr *playerRepository) ClearDiscord(ctx context.Context, tetrioID string) (bool, error) {
	result := pr.db.WithContext(ctx).Model(&models.PlayerEntry{}).
		Where("tetrio_id = ? AND discord_id IS NOT NULL", tetrioID).
		Updates(map[string]any{
			"discord_id": nil,
			"linked_at":  nil,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// UpdateHighestRanks raises the stored highest rank of every matched
// username. The rank only ever moves up, the history dump can lag the
// live ladder.
func (pr *playerRepository) UpdateHighestRanks(ctx context.Context, ranks map[string]tetrio.Rank) (int64, error) {
	if len(ranks) == 0 {
		return 0, nil
	}

	usernames := make([]string, 0, len(ranks))
	for username := range ranks {
		usernames = append(usernames, username)
	}

	var total int64
	for start := 0; start < len(usernames); start += highestRankBatchSize {
		end := start + highestRankBatchSize
		if end > len(usernames) {
			end = len(usernames)
		}
		chunk := usernames[start:end]

		var values strings.Builder
		args := make([]any, 0, len(chunk)*2)
		for i, username := range chunk {
			if i > 0 {
				values.WriteString(",")
			}
			values.WriteString("(?,?::rank_type)")
			args = append(args, strings.ToLower(username), ranks[username].Code())
		}

		result := pr.db.WithContext(ctx).Exec(fmt.Sprintf(`
			UPDATE player_entries
			SET highest_rank = data.rank
			FROM (VALUES %s) AS data(username, rank)
			WHERE player_entries.username = data.username
			  AND player_entries.highest_rank < data.rank
		`, values.String()), args...)
		if result.Error != nil {
			return total, fmt.Errorf("couldn't update the highest ranks: %v", result.Error)
		}

		total += result.RowsAffected
	}

	return total, nil
}
