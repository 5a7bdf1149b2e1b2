// Package registration decides whether a player may enter a tournament.
//
// Eligibility is evaluated against the announcement day snapshot first and
// the player's current stats last, so rejections always surface the most
// historically grounded reason. Every rejection carries the offending value,
// the required threshold and the announcement date where it applies.
package registration

import (
	"errors"
	"fmt"
	"time"

	"uchelper/pkg/database/models"
	"uchelper/pkg/messages"
	"uchelper/pkg/tetrio"
)

const announcementDateFormat = "2006-01-02"

var (
	// ErrSnapshotMissing means the tournament has no announcement day data yet.
	ErrSnapshotMissing = errors.New("player stat snapshot is missing")
	// ErrNoTournamentActive means there is nothing to register for.
	ErrNoTournamentActive = errors.New(messages.NoActiveTournament)
	// ErrAlreadyRegistered means the player is already on the list.
	ErrAlreadyRegistered = errors.New(messages.AlreadyRegisteredIn)
	// ErrNotRegistered means the player is not on the list.
	ErrNotRegistered = errors.New(messages.NotRegisteredIn)
)

// UnrankedError rejects players absent from the snapshot, which only
// contains accounts that were ranked at capture time.
type UnrankedError struct {
	Date time.Time
}

func (e *UnrankedError) Error() string {
	return fmt.Sprintf("player was unranked on announcement day (%s)", e.Date.Format(announcementDateFormat))
}

// AnnouncementRankError rejects players whose snapshot rank is above the cap.
type AnnouncementRankError struct {
	Rank     tetrio.Rank
	Expected tetrio.Rank
	Date     time.Time
}

func (e *AnnouncementRankError) Error() string {
	return fmt.Sprintf("rank was too high on announcement day (was %s by %s, %s or lower required)",
		e.Rank, e.Date.Format(announcementDateFormat), e.Expected)
}

// GamesError rejects players without enough ranked games by announcement day.
type GamesError struct {
	Value    int64
	Expected int64
	Date     time.Time
}

func (e *GamesError) Error() string {
	return fmt.Sprintf("not enough ranked games played by announcement day (had %d by %s, %d or more required)",
		e.Value, e.Date.Format(announcementDateFormat), e.Expected)
}

// DeviationError rejects players whose rating deviation was above the cap.
// A nil value means the ladder had no stable estimate, which counts as
// failing rather than passing by default.
type DeviationError struct {
	Value    *float64
	Expected float64
	Date     time.Time
}

func (e *DeviationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("rating deviation was not established by announcement day (%s), %.1f or lower required",
			e.Date.Format(announcementDateFormat), e.Expected)
	}
	return fmt.Sprintf("rating deviation was too high on announcement day (was %.1f by %s, %.1f or lower required)",
		*e.Value, e.Date.Format(announcementDateFormat), e.Expected)
}

// CurrentRankError rejects players who outgrew the cap since announcement.
// One tier above the announcement cap is allowed, ranking up during the
// registration window is natural.
type CurrentRankError struct {
	Rank     tetrio.Rank
	Expected tetrio.Rank
}

func (e *CurrentRankError) Error() string {
	return fmt.Sprintf("current rank is too high (currently %s, %s or lower required)", e.Rank, e.Expected)
}

// MissingArgumentError means the caller didn't give enough to resolve a player.
type MissingArgumentError struct {
	Arg string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("something was missing while registering (%s)", e.Arg)
}

// CheckStats evaluates a player against the tournament restrictions.
//
// The checks run in a fixed order and stop at the first failure:
// snapshot presence, snapshot membership, announcement rank, game count,
// rating deviation, then current rank. Returns nil when the player may
// register.
func CheckStats(restrictions models.Restrictions, snapshottedAt *time.Time, snap *models.SnapshotEntry, player *models.PlayerEntry) error {
	if snapshottedAt == nil {
		return ErrSnapshotMissing
	}
	date := *snapshottedAt

	if snap == nil {
		return &UnrankedError{Date: date}
	}

	if snap.Rank > restrictions.MaxRank {
		return &AnnouncementRankError{Rank: snap.Rank, Expected: restrictions.MaxRank, Date: date}
	}

	if snap.GamesPlayed < restrictions.MinGames {
		return &GamesError{Value: snap.GamesPlayed, Expected: restrictions.MinGames, Date: date}
	}

	if snap.RD == nil || *snap.RD > restrictions.MaxRD {
		return &DeviationError{Value: snap.RD, Expected: restrictions.MaxRD, Date: date}
	}

	rankCap := restrictions.MaxRank.Advance(1)
	if player.Rank > rankCap {
		return &CurrentRankError{Rank: player.Rank, Expected: rankCap}
	}

	return nil
}
