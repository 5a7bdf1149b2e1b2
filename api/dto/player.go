package dto

import (
	"time"

	"uchelper/pkg/database/models"
)

// PlayerCard is the profile payload the front end renders.
type PlayerCard struct {
	TetrioID    string     `json:"id"`
	Username    string     `json:"username"`
	Rank        string     `json:"rank"`
	RankColor   string     `json:"rankColor"`
	RankIconURL string     `json:"rankIconUrl"`
	Rating      float64    `json:"rating"`
	Glicko      *float64   `json:"glicko,omitempty"`
	RD          *float64   `json:"rd,omitempty"`
	GamesPlayed int64      `json:"gamesPlayed"`
	GamesWon    int64      `json:"gamesWon"`
	APM         *float64   `json:"apm,omitempty"`
	PPS         *float64   `json:"pps,omitempty"`
	VS          *float64   `json:"vs,omitempty"`
	Country     *string    `json:"country,omitempty"`
	Supporter   bool       `json:"supporter"`
	Verified    bool       `json:"verified"`
	HighestRank string     `json:"highestRank"`
	DiscordID   *string    `json:"discordId,omitempty"`
	LinkedAt    *time.Time `json:"linkedAt,omitempty"`
	FetchedAt   *time.Time `json:"fetchedAt,omitempty"`
}

// NewPlayerCard converts a registry entry into its presentation form.
func NewPlayerCard(player *models.PlayerEntry) *PlayerCard {
	return &PlayerCard{
		TetrioID:    player.TetrioID,
		Username:    player.Username,
		Rank:        player.Rank.Code(),
		RankColor:   player.Rank.Color(),
		RankIconURL: player.Rank.IconURL(),
		Rating:      player.Rating,
		Glicko:      player.Glicko,
		RD:          player.RD,
		GamesPlayed: player.GamesPlayed,
		GamesWon:    player.GamesWon,
		APM:         player.APM,
		PPS:         player.PPS,
		VS:          player.VS,
		Country:     player.Country,
		Supporter:   player.Supporter,
		Verified:    player.Verified,
		HighestRank: player.HighestRank.Code(),
		DiscordID:   player.DiscordID,
		LinkedAt:    player.LinkedAt,
		FetchedAt:   player.FetchedAt,
	}
}
