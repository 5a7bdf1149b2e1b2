package dto

import (
	"time"

	"uchelper/pkg/database/models"
)

// TournamentInfo is the tournament payload the front end renders.
type TournamentInfo struct {
	ID               uint       `json:"id"`
	Name             string     `json:"name"`
	Shorthand        string     `json:"shorthand"`
	MaxRank          string     `json:"maxRank"`
	MaxRD            float64    `json:"maxRd"`
	MinGames         int64      `json:"minGames"`
	Active           bool       `json:"active"`
	SnapshottedAt    *time.Time `json:"snapshottedAt,omitempty"`
	CheckInMessageID *string    `json:"checkInMessageId,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// NewTournamentInfo converts a tournament record into its presentation form.
func NewTournamentInfo(t *models.Tournament) *TournamentInfo {
	return &TournamentInfo{
		ID:               t.ID,
		Name:             t.Name,
		Shorthand:        t.Shorthand,
		MaxRank:          t.Restrictions.MaxRank.Code(),
		MaxRD:            t.Restrictions.MaxRD,
		MinGames:         t.Restrictions.MinGames,
		Active:           t.Active,
		SnapshottedAt:    t.SnapshottedAt,
		CheckInMessageID: t.CheckInMessageID,
		CreatedAt:        t.CreatedAt,
	}
}

// RegisteredPlayer is one row of a tournament's player listing.
type RegisteredPlayer struct {
	TetrioID     string    `json:"id"`
	Username     string    `json:"username"`
	Rank         string    `json:"rank"`
	Rating       float64   `json:"rating"`
	GamesPlayed  int64     `json:"gamesPlayed"`
	RD           *float64  `json:"rd,omitempty"`
	DiscordID    *string   `json:"discordId,omitempty"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// NewRegisteredPlayer flattens a registration entry and its player record.
func NewRegisteredPlayer(entry models.RegistrationEntry) RegisteredPlayer {
	return RegisteredPlayer{
		TetrioID:     entry.TetrioID,
		Username:     entry.Player.Username,
		Rank:         entry.Player.Rank.Code(),
		Rating:       entry.Player.Rating,
		GamesPlayed:  entry.Player.GamesPlayed,
		RD:           entry.Player.RD,
		DiscordID:    entry.Player.DiscordID,
		RegisteredAt: entry.RegisteredAt,
	}
}
