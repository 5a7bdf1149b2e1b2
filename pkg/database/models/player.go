package models

import (
	"strings"
	"time"

	"uchelper/pkg/tetrio"

	"gorm.io/gorm"
)

// PlayerEntry is one TETR.IO account known to the registry.
// Records are created the first time any lookup or link touches the account.
type PlayerEntry struct {
	TetrioID string `gorm:"primaryKey;type:char(24)"` // Account id from the ladder.
	Username string `gorm:"type:varchar(64);index"`

	// Link to the community identity. At most one entry per discord id.
	DiscordID *string `gorm:"type:varchar(20);uniqueIndex"`
	LinkedAt  *time.Time

	// Latest ranked stats as last retrieved from the ladder.
	Rank        tetrio.Rank `gorm:"type:rank_type;default:'z'"`
	Rating      float64
	Glicko      *float64
	RD          *float64
	GamesPlayed int64
	GamesWon    int64
	APM         *float64
	PPS         *float64
	VS          *float64
	Country     *string `gorm:"type:varchar(4)"`
	Supporter   bool
	Verified    bool

	// Best tier the player ever held, from the history dump. Display only.
	HighestRank tetrio.Rank `gorm:"type:rank_type;default:'z'"`

	// When the stats above were retrieved. Nil means never fetched.
	FetchedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Usernames are lowercase on the ladder, keep lookups consistent.
func (p *PlayerEntry) BeforeSave(tx *gorm.DB) error {
	p.Username = strings.ToLower(p.Username)
	return nil
}

// NewPlayerFromUser builds a registry entry from a ladder response.
func NewPlayerFromUser(user *tetrio.LeaderboardUser, fetchedAt time.Time) *PlayerEntry {
	entry := &PlayerEntry{TetrioID: user.ID}
	entry.ApplyUser(user, fetchedAt)
	return entry
}

// ApplyUser overwrites the cached stats with a fresh ladder response.
// Link fields are left untouched.
func (p *PlayerEntry) ApplyUser(user *tetrio.LeaderboardUser, fetchedAt time.Time) {
	p.Username = strings.ToLower(user.Username)
	p.Rank = user.League.Rank
	p.Rating = user.League.Rating
	p.Glicko = user.League.Glicko
	p.RD = user.League.RD
	p.GamesPlayed = user.League.GamesPlayed
	p.GamesWon = user.League.GamesWon
	p.APM = user.League.APM
	p.PPS = user.League.PPS
	p.VS = user.League.VS
	p.Country = user.Country
	p.Supporter = user.Supporter
	p.Verified = user.Verified
	p.FetchedAt = &fetchedAt
}

// StatsFresh reports whether the cached stats are younger than the window.
func (p *PlayerEntry) StatsFresh(window time.Duration) bool {
	if p.FetchedAt == nil {
		return false
	}
	return time.Since(*p.FetchedAt) < window
}

// Linked reports whether the account is tied to a discord identity.
func (p *PlayerEntry) Linked() bool {
	return p.DiscordID != nil
}
