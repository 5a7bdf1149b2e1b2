package models

import "time"

// CheckInAction is what a player did on the check-in message.
type CheckInAction string

const (
	CheckInAdd    CheckInAction = "add"
	CheckInRemove CheckInAction = "remove"
)

// CheckInEvent is one check-in or check-out, kept as an append only log.
// Replaying the log yields the currently checked in set, independent of
// the chat platform's live event stream.
type CheckInEvent struct {
	ID           uint          `gorm:"primaryKey"`
	TournamentID uint          `gorm:"index"`
	DiscordID    string        `gorm:"type:varchar(20);index"`
	Action       CheckInAction `gorm:"type:checkin_action"`
	CreatedAt    time.Time     `gorm:"autoCreateTime"`
}
