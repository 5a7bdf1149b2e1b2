package tournamentservice

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"uchelper/api/dto"
	repositories "uchelper/api/repositories/tournament"
	playerservice "uchelper/api/services/player"
	"uchelper/pkg/database/models"
	"uchelper/pkg/messages"
	"uchelper/pkg/registration"
	"uchelper/pkg/tetrio"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no tournament matches the query.
	ErrNotFound = errors.New(messages.TournamentNotFound)

	// ErrDuplicateName is returned when a name or shorthand is taken.
	ErrDuplicateName = errors.New("a tournament with this name or shorthand already exists")
)

// PlayerResolver is the slice of the player service the tournament flow
// needs for turning discord ids and usernames into registry entries.
type PlayerResolver interface {
	GetPlayer(ctx context.Context, query string) (*models.PlayerEntry, error)
	GetByDiscord(ctx context.Context, discordID string) (*models.PlayerEntry, error)
	UpdatePlayer(ctx context.Context, query string) (*models.PlayerEntry, playerservice.Outcome, error)
	UpdateFromLeaderboard(ctx context.Context) ([]tetrio.LeaderboardUser, error)
	Link(ctx context.Context, discordID string, query string) (*models.PlayerEntry, error)
}

// TournamentService service with the tournament repository and the
// player resolver.
type TournamentService struct {
	db      *gorm.DB
	players PlayerResolver

	TournamentRepository repositories.TournamentRepository
}

type TournamentServiceDeps struct {
	DB      *gorm.DB
	Players PlayerResolver
}

// NewTournamentService creates a service for handling tournament operations.
func NewTournamentService(deps *TournamentServiceDeps) *TournamentService {
	return &TournamentService{
		db:                   deps.DB,
		players:              deps.Players,
		TournamentRepository: repositories.NewTournamentRepository(deps.DB),
	}
}

// Create opens a new tournament with the given restrictions.
func (ts *TournamentService) Create(ctx context.Context, name string, shorthand string, restrictions models.Restrictions) (*models.Tournament, error) {
	tournament := &models.Tournament{
		Name:         name,
		Shorthand:    shorthand,
		Restrictions: restrictions,
	}

	if err := ts.TournamentRepository.CreateTournament(ctx, tournament); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}

		return nil, fmt.Errorf("couldn't create the tournament: %v", err)
	}

	return tournament, nil
}

// Get returns the tournament matching a name or shorthand.
func (ts *TournamentService) Get(ctx context.Context, query string) (*models.Tournament, error) {
	tournament, err := ts.TournamentRepository.GetByQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	if tournament == nil {
		return nil, ErrNotFound
	}

	return tournament, nil
}

// GetActive returns the currently running tournament.
func (ts *TournamentService) GetActive(ctx context.Context) (*models.Tournament, error) {
	tournament, err := ts.TournamentRepository.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if tournament == nil {
		return nil, registration.ErrNoTournamentActive
	}

	return tournament, nil
}

// SetActive makes the matched tournament the single active one.
// An empty query deactivates every tournament and returns nil.
func (ts *TournamentService) SetActive(ctx context.Context, query string) (*models.Tournament, error) {
	if strings.TrimSpace(query) == "" {
		if err := ts.TournamentRepository.SetActive(ctx, nil); err != nil {
			return nil, fmt.Errorf("couldn't deactivate the tournaments: %v", err)
		}

		return nil, nil
	}

	tournament, err := ts.Get(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := ts.TournamentRepository.SetActive(ctx, &tournament.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("couldn't activate the tournament: %v", err)
	}

	tournament.Active = true

	return tournament, nil
}

// CaptureSnapshot pulls the full league and freezes it as the tournament's
// announcement day stats, replacing any previous capture. Returns how
// many accounts the capture holds.
func (ts *TournamentService) CaptureSnapshot(ctx context.Context, query string) (*models.Tournament, int, error) {
	tournament, err := ts.resolveTournament(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	users, err := ts.players.UpdateFromLeaderboard(ctx)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]*models.SnapshotEntry, 0, len(users))
	for _, user := range users {
		entries = append(entries, models.NewSnapshotEntry(tournament.ID, user))
	}

	capturedAt := time.Now().UTC()
	if err := ts.TournamentRepository.SetSnapshot(ctx, tournament.ID, entries, capturedAt); err != nil {
		return nil, 0, fmt.Errorf("couldn't store the snapshot: %v", err)
	}

	tournament.SnapshottedAt = &capturedAt

	return tournament, len(entries), nil
}

// RegisterRequest is one registration attempt.
type RegisterRequest struct {
	DiscordID string
	// Username is optional when the discord account is already linked.
	Username string
	// StaffOverride skips the eligibility checks, not the duplicate check.
	StaffOverride bool
}

// Register signs a player up for the active tournament. The player is
// resolved from the discord account or linked on the fly from the given
// username, refreshed, and checked against the announcement day snapshot.
func (ts *TournamentService) Register(ctx context.Context, req RegisterRequest) (*models.PlayerEntry, *models.Tournament, error) {
	active, err := ts.GetActive(ctx)
	if err != nil {
		return nil, nil, err
	}

	player, err := ts.resolvePlayer(ctx, req.DiscordID, req.Username)
	if err != nil {
		return nil, nil, err
	}

	if !req.StaffOverride {
		snap, err := ts.TournamentRepository.GetSnapshotEntry(ctx, active.ID, player.TetrioID)
		if err != nil {
			return nil, nil, err
		}

		if err := registration.CheckStats(active.Restrictions, active.SnapshottedAt, snap, player); err != nil {
			return nil, nil, err
		}
	}

	added, err := ts.TournamentRepository.AddRegistration(ctx, active.ID, player.TetrioID)
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't store the registration: %v", err)
	}
	if !added {
		return nil, nil, registration.ErrAlreadyRegistered
	}

	return player, active, nil
}

// resolvePlayer turns a registration request into a fresh registry entry.
// A given username is linked to the discord account on the way, so a
// first registration and an account link are the same gesture.
func (ts *TournamentService) resolvePlayer(ctx context.Context, discordID string, username string) (*models.PlayerEntry, error) {
	username = strings.TrimSpace(username)

	if username != "" {
		player, err := ts.players.Link(ctx, discordID, username)
		if err == nil {
			return player, nil
		}
		if !errors.Is(err, playerservice.ErrAlreadyLinked) {
			return nil, err
		}
		// The exact pair is already linked, fall through to the local record.
	}

	linked, err := ts.players.GetByDiscord(ctx, discordID)
	if err != nil {
		return nil, err
	}
	if linked == nil {
		return nil, &registration.MissingArgumentError{Arg: "username"}
	}

	player, _, err := ts.players.UpdatePlayer(ctx, linked.TetrioID)
	if err != nil {
		return nil, err
	}

	return player, nil
}

// Unregister takes a player off the active tournament's list. Resolution
// is local only, nobody should be blocked from leaving by a ladder outage.
func (ts *TournamentService) Unregister(ctx context.Context, discordID string, username string) (*models.PlayerEntry, *models.Tournament, error) {
	player, err := ts.lookupPlayer(ctx, discordID, username)
	if err != nil {
		return nil, nil, err
	}
	if player == nil {
		return nil, nil, playerservice.ErrNotFound
	}

	active, err := ts.GetActive(ctx)
	if err != nil {
		return nil, nil, err
	}

	removed, err := ts.TournamentRepository.RemoveRegistration(ctx, active.ID, player.TetrioID)
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't remove the registration: %v", err)
	}
	if !removed {
		return nil, nil, registration.ErrNotRegistered
	}

	return player, active, nil
}

func (ts *TournamentService) lookupPlayer(ctx context.Context, discordID string, username string) (*models.PlayerEntry, error) {
	if username = strings.TrimSpace(username); username != "" {
		return ts.players.GetPlayer(ctx, username)
	}

	return ts.players.GetByDiscord(ctx, discordID)
}

// PlayerIsRegistered reports whether the account is on a tournament's list.
func (ts *TournamentService) PlayerIsRegistered(ctx context.Context, tournamentID uint, tetrioID string) (bool, error) {
	return ts.TournamentRepository.IsRegistered(ctx, tournamentID, tetrioID)
}

// RegisteredPlayers lists a tournament's sign-ups, best ranked first.
// An empty query lists the active tournament.
func (ts *TournamentService) RegisteredPlayers(ctx context.Context, query string) (*models.Tournament, []dto.RegisteredPlayer, error) {
	tournament, err := ts.resolveTournament(ctx, query)
	if err != nil {
		return nil, nil, err
	}

	entries, err := ts.TournamentRepository.GetRegistrations(ctx, tournament.ID)
	if err != nil {
		return nil, nil, err
	}

	players := make([]dto.RegisteredPlayer, 0, len(entries))
	for _, entry := range entries {
		players = append(players, dto.NewRegisteredPlayer(entry))
	}

	return tournament, players, nil
}

// RecordCheckIn appends a check-in or check-out to the active tournament's
// log. Only linked, registered players can check in.
func (ts *TournamentService) RecordCheckIn(ctx context.Context, discordID string, action models.CheckInAction) error {
	active, err := ts.GetActive(ctx)
	if err != nil {
		return err
	}

	player, err := ts.players.GetByDiscord(ctx, discordID)
	if err != nil {
		return err
	}
	if player == nil {
		return playerservice.ErrNotFound
	}

	registered, err := ts.TournamentRepository.IsRegistered(ctx, active.ID, player.TetrioID)
	if err != nil {
		return err
	}
	if !registered {
		return registration.ErrNotRegistered
	}

	event := &models.CheckInEvent{
		TournamentID: active.ID,
		DiscordID:    discordID,
		Action:       action,
	}
	if err := ts.TournamentRepository.AddCheckInEvent(ctx, event); err != nil {
		return fmt.Errorf("couldn't store the check-in event: %v", err)
	}

	return nil
}

// CheckedIn replays the active tournament's check-in log and returns the
// discord ids currently checked in, sorted for stable output.
func (ts *TournamentService) CheckedIn(ctx context.Context) ([]string, error) {
	active, err := ts.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	events, err := ts.TournamentRepository.GetCheckInEvents(ctx, active.ID)
	if err != nil {
		return nil, err
	}

	present := make(map[string]struct{})
	for _, event := range events {
		switch event.Action {
		case models.CheckInAdd:
			present[event.DiscordID] = struct{}{}
		case models.CheckInRemove:
			delete(present, event.DiscordID)
		}
	}

	checkedIn := make([]string, 0, len(present))
	for discordID := range present {
		checkedIn = append(checkedIn, discordID)
	}
	sort.Strings(checkedIn)

	return checkedIn, nil
}

// SetCheckInMessage anchors the message the front end collects check-in
// reactions on. An empty query targets the active tournament.
func (ts *TournamentService) SetCheckInMessage(ctx context.Context, query string, messageID string) (*models.Tournament, error) {
	tournament, err := ts.resolveTournament(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := ts.TournamentRepository.SetCheckInMessage(ctx, tournament.ID, messageID); err != nil {
		return nil, fmt.Errorf("couldn't store the check-in message: %v", err)
	}

	tournament.CheckInMessageID = &messageID

	return tournament, nil
}

// ExportRegistrations renders a tournament's sign-up list as a CSV
// download, named after the tournament's shorthand.
func (ts *TournamentService) ExportRegistrations(ctx context.Context, query string) ([]byte, string, error) {
	tournament, players, err := ts.RegisteredPlayers(ctx, query)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	rows := [][]string{{"username", "tetrio_id", "rank", "rating", "games_played", "rd", "discord_id", "registered_at"}}
	for _, player := range players {
		rd := ""
		if player.RD != nil {
			rd = strconv.FormatFloat(*player.RD, 'f', 2, 64)
		}
		discordID := ""
		if player.DiscordID != nil {
			discordID = *player.DiscordID
		}

		rows = append(rows, []string{
			player.Username,
			player.TetrioID,
			player.Rank,
			strconv.FormatFloat(player.Rating, 'f', 2, 64),
			strconv.FormatInt(player.GamesPlayed, 10),
			rd,
			discordID,
			player.RegisteredAt.UTC().Format(time.RFC3339),
		})
	}

	if err := writer.WriteAll(rows); err != nil {
		return nil, "", fmt.Errorf("couldn't render the export: %v", err)
	}

	filename := fmt.Sprintf("%s-registrations.csv", strings.ToLower(tournament.Shorthand))

	return buf.Bytes(), filename, nil
}

// resolveTournament matches a query, or falls back to the active
// tournament when the query is empty.
func (ts *TournamentService) resolveTournament(ctx context.Context, query string) (*models.Tournament, error) {
	if strings.TrimSpace(query) == "" {
		return ts.GetActive(ctx)
	}

	return ts.Get(ctx, query)
}
