package tetrio

import (
	"context"
	"encoding/json"
	"fmt"

	"uchelper/pkg/messages"
)

// userData is the payload of the single user endpoint.
type userData struct {
	User *LeaderboardUser `json:"user"`
}

// FetchUser retrieves a single player by account id or username.
// Returns ErrNotFound when the ladder doesn't know the player.
func (c *apiClient) FetchUser(ctx context.Context, query string) (*LeaderboardUser, error) {
	envelope, err := c.get(ctx, "/users/"+escapeQuery(query))
	if err != nil {
		return nil, err
	}

	// The API reports unknown users as an unsuccessful response.
	if !envelope.Success {
		return nil, ErrNotFound
	}

	var data userData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf(messages.FailedToParseMsg+": %w", err)
	}

	if data.User == nil {
		return nil, ErrNotFound
	}

	return data.User, nil
}
