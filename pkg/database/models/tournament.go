package models

import (
	"time"

	"uchelper/pkg/tetrio"
)

// Restrictions are the registration requirements of a tournament,
// checked against the announcement day snapshot.
type Restrictions struct {
	// Highest announcement rank a player may have. Current rank is
	// allowed to be one tier above it.
	MaxRank tetrio.Rank `gorm:"type:rank_type"`
	// Highest rating deviation a player may have.
	MaxRD float64
	// Ranked games required by announcement day.
	MinGames int64
}

// Tournament is one event of the series.
// At most one tournament is active at any time.
type Tournament struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(100);uniqueIndex"`
	Shorthand string `gorm:"type:varchar(20);uniqueIndex"`

	Restrictions Restrictions `gorm:"embedded"`

	Active bool `gorm:"index"`

	// When the announcement day snapshot was captured. Nil until captured.
	SnapshottedAt *time.Time

	// Message the front end collects check-in reactions on.
	CheckInMessageID *string `gorm:"type:varchar(20)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshotted reports whether the tournament has announcement day data.
func (t *Tournament) Snapshotted() bool {
	return t.SnapshottedAt != nil
}

// RegistrationEntry ties a player to a tournament they signed up for.
// The player record outlives the tournament, only the id is referenced.
type RegistrationEntry struct {
	ID           uint        `gorm:"primaryKey"`
	TournamentID uint        `gorm:"index;uniqueIndex:idx_registration_tournament_player,priority:1"`
	TetrioID     string      `gorm:"type:char(24);uniqueIndex:idx_registration_tournament_player,priority:2"`
	Player       PlayerEntry `gorm:"foreignKey:TetrioID;references:TetrioID"`
	RegisteredAt time.Time   `gorm:"autoCreateTime"`
}

// SnapshotEntry is one player's announcement day stats for a tournament.
// The snapshot only contains players who were ranked at capture time.
type SnapshotEntry struct {
	ID           uint        `gorm:"primaryKey"`
	TournamentID uint        `gorm:"index;uniqueIndex:idx_snapshot_tournament_player,priority:1"`
	TetrioID     string      `gorm:"type:char(24);uniqueIndex:idx_snapshot_tournament_player,priority:2"`
	Username     string      `gorm:"type:varchar(64)"`
	Rank         tetrio.Rank `gorm:"type:rank_type"`
	Rating       float64
	RD           *float64
	GamesPlayed  int64
}

// NewSnapshotEntry captures the eligibility-relevant slice of a ladder user.
func NewSnapshotEntry(tournamentID uint, user tetrio.LeaderboardUser) *SnapshotEntry {
	return &SnapshotEntry{
		TournamentID: tournamentID,
		TetrioID:     user.ID,
		Username:     user.Username,
		Rank:         user.League.Rank,
		Rating:       user.League.Rating,
		RD:           user.League.RD,
		GamesPlayed:  user.League.GamesPlayed,
	}
}
