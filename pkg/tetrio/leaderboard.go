package tetrio

import (
	"context"
	"encoding/json"
	"fmt"

	"uchelper/pkg/messages"
)

// LeagueData is a player's ranked league block.
// Glicko, RD, APM, PPS and VS are absent while the ladder
// considers the player's rating estimate unstable.
type LeagueData struct {
	GamesPlayed int64    `json:"gamesplayed"`
	GamesWon    int64    `json:"gameswon"`
	Rating      float64  `json:"rating"`
	Rank        Rank     `json:"rank"`
	Glicko      *float64 `json:"glicko,omitempty"`
	RD          *float64 `json:"rd,omitempty"`
	APM         *float64 `json:"apm,omitempty"`
	PPS         *float64 `json:"pps,omitempty"`
	VS          *float64 `json:"vs,omitempty"`
}

// LeaderboardUser is one player's stats as reported by the ladder.
type LeaderboardUser struct {
	ID        string     `json:"_id"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	XP        float64    `json:"xp"`
	Country   *string    `json:"country,omitempty"`
	Supporter bool       `json:"supporter"`
	Verified  bool       `json:"verified"`
	League    LeagueData `json:"league"`
}

// leaderboardData is the payload of the full league list endpoint.
type leaderboardData struct {
	Users []LeaderboardUser `json:"users"`
}

// FetchLeaderboard retrieves every ranked player on the ladder in one call.
// The response is large and the call is slow, callers are expected to
// run it off the interactive path.
func (c *apiClient) FetchLeaderboard(ctx context.Context) ([]LeaderboardUser, error) {
	envelope, err := c.get(ctx, "/users/lists/league/all")
	if err != nil {
		return nil, err
	}

	if !envelope.Success {
		return nil, fmt.Errorf("leaderboard request rejected: %s", envelope.Error)
	}

	var data leaderboardData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf(messages.FailedToParseMsg+": %w", err)
	}

	return data.Users, nil
}
