package tenchi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"uchelper/pkg/config"
	"uchelper/pkg/messages"
	"uchelper/pkg/tetrio"
)

// RankHistory is the rank-code timeline kept for a single player.
// The source also ships dates and TR values, we only keep what we use.
type RankHistory struct {
	Rank []string `json:"rank"`
}

// PlayerHistory is the community maintained history dump, keyed by username.
type PlayerHistory struct {
	TimestampOffset int64                  `json:"timestamp_offset"`
	Ranks           map[string]RankHistory `json:"ranks"`
}

// Client fetches the third party rank history dump.
type Client interface {
	FetchHistory(ctx context.Context) (*PlayerHistory, error)
}

type httpClient struct {
	url  string
	http *http.Client
}

// NewClient creates a rank history client.
func NewClient(cfg config.TenchiConfig) Client {
	return &httpClient{
		url: cfg.HistoryURL,
		// The dump is tens of megabytes, allow a generous timeout.
		http: &http.Client{Timeout: 2 * time.Minute},
	}
}

// FetchHistory downloads and parses the full history dump.
func (c *httpClient) FetchHistory(ctx context.Context) (*PlayerHistory, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't create the request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf(messages.RequestFailedMsg+": %w", c.url, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(messages.BadStatusCodeMsg, resp.StatusCode, c.url)
	}

	var history PlayerHistory
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		return nil, fmt.Errorf(messages.FailedToParseMsg+": %w", err)
	}

	return &history, nil
}

// HighestRank returns the best tier the player ever held.
// The second return reports whether the player is known to the dump at all.
func (h *PlayerHistory) HighestRank(username string) (tetrio.Rank, bool) {
	history, ok := h.Ranks[strings.ToLower(username)]
	if !ok {
		return tetrio.RankUnranked, false
	}

	highest := tetrio.RankUnranked
	for _, code := range history.Rank {
		if rank := tetrio.ParseRank(code); rank > highest {
			highest = rank
		}
	}

	return highest, true
}
