package tetrio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"uchelper/pkg/config"
	"uchelper/pkg/messages"

	"github.com/google/uuid"
)

// ErrNotFound is returned when the ladder doesn't know the requested player.
var ErrNotFound = errors.New(messages.CouldNotFindPlayer)

// Client is the boundary used to talk to the TETR.IO channel API.
type Client interface {
	FetchUser(ctx context.Context, query string) (*LeaderboardUser, error)
	FetchLeaderboard(ctx context.Context) ([]LeaderboardUser, error)
}

// apiClient is the http implementation of the Client.
type apiClient struct {
	baseURL string
	http    *http.Client
	session string
	pacer   *requestPacer
}

// NewClient creates a TETR.IO API client.
// A random session id is generated so the API serves consistent cached data.
func NewClient(cfg config.TetrioConfig) Client {
	return &apiClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		session: "UCH-" + uuid.NewString(),
		pacer:   newRequestPacer(60, time.Minute),
	}
}

// cacheInfo is the cache block present on every API response.
type cacheInfo struct {
	Status      string `json:"status"`
	CachedAt    int64  `json:"cached_at"`
	CachedUntil int64  `json:"cached_until"`
}

// apiEnvelope is the common response wrapper of the channel API.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Cache   *cacheInfo      `json:"cache,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// get runs a GET request against the API and returns the decoded envelope.
func (c *apiClient) get(ctx context.Context, path string) (*apiEnvelope, error) {
	c.pacer.wait()

	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't create the request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Session-ID", c.session)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf(messages.RequestFailedMsg+": %w", fullURL, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(messages.BadStatusCodeMsg, resp.StatusCode, fullURL)
	}

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf(messages.FailedToParseMsg+": %w", err)
	}

	return &envelope, nil
}

// escapeQuery normalizes a user supplied id or username for the URL path.
// Usernames are lowercase on the ladder.
func escapeQuery(query string) string {
	return url.PathEscape(strings.ToLower(strings.TrimSpace(query)))
}

// requestPacer keeps the client inside a polite requests-per-window budget.
type requestPacer struct {
	limit         int
	resetInterval time.Duration
	count         int
	lastReset     time.Time
	mu            sync.Mutex
}

func newRequestPacer(limit int, resetInterval time.Duration) *requestPacer {
	return &requestPacer{
		limit:         limit,
		resetInterval: resetInterval,
		lastReset:     time.Now(),
	}
}

// wait blocks until the current window has budget for one more request.
func (p *requestPacer) wait() {
	for {
		p.mu.Lock()

		now := time.Now()
		if now.Sub(p.lastReset) >= p.resetInterval {
			p.count = 0
			p.lastReset = now
		}

		if p.count < p.limit {
			p.count++
			p.mu.Unlock()
			return
		}

		waitTill := p.resetInterval - now.Sub(p.lastReset)
		p.mu.Unlock()

		time.Sleep(waitTill)
	}
}
