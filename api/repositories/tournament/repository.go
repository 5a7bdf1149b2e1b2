package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"uchelper/pkg/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const snapshotBatchSize = 500

// TournamentRepository is the public interface for accessing the tournament store.
type TournamentRepository interface {
	CreateTournament(ctx context.Context, tournament *models.Tournament) error
	GetByQuery(ctx context.Context, query string) (*models.Tournament, error)
	GetActive(ctx context.Context) (*models.Tournament, error)
	SetActive(ctx context.Context, tournamentID *uint) error
	SetSnapshot(ctx context.Context, tournamentID uint, entries []*models.SnapshotEntry, capturedAt time.Time) error
	GetSnapshotEntry(ctx context.Context, tournamentID uint, tetrioID string) (*models.SnapshotEntry, error)
	AddRegistration(ctx context.Context, tournamentID uint, tetrioID string) (bool, error)
	RemoveRegistration(ctx context.Context, tournamentID uint, tetrioID string) (bool, error)
	IsRegistered(ctx context.Context, tournamentID uint, tetrioID string) (bool, error)
	GetRegistrations(ctx context.Context, tournamentID uint) ([]models.RegistrationEntry, error)
	SetCheckInMessage(ctx context.Context, tournamentID uint, messageID string) error
	AddCheckInEvent(ctx context.Context, event *models.CheckInEvent) error
	GetCheckInEvents(ctx context.Context, tournamentID uint) ([]models.CheckInEvent, error)
}

// tournamentRepository repository structure.
type tournamentRepository struct {
	db *gorm.DB
}

// NewTournamentRepository creates a tournament repository.
func NewTournamentRepository(db *gorm.DB) TournamentRepository {
	return &tournamentRepository{db: db}
}

// CreateTournament inserts a new tournament.
// Name and shorthand collisions surface as a duplicated key error.
func (tr *tournamentRepository) CreateTournament(ctx context.Context, tournament *models.Tournament) error {
	return tr.db.WithContext(ctx).Create(tournament).Error
}

// GetByQuery returns the tournament whose name or shorthand matches
// exactly, or nil when none does.
func (tr *tournamentRepository) GetByQuery(ctx context.Context, query string) (*models.Tournament, error) {
	var tournament models.Tournament
	if err := tr.db.WithContext(ctx).Where("name = ? OR shorthand = ?", query, query).First(&tournament).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("couldn't get the tournament: %v", err)
	}

	return &tournament, nil
}

// GetActive returns the active tournament, or nil when none is.
func (tr *tournamentRepository) GetActive(ctx context.Context) (*models.Tournament, error) {
	var tournament models.Tournament
	if err := tr.db.WithContext(ctx).Where("active = ?", true).First(&tournament).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("couldn't get the active tournament: %v", err)
	}

	return &tournament, nil
}

// SetActive deactivates every tournament and activates the given one,
// in one transaction. A nil id leaves everything inactive.
func (tr *tournamentRepository) SetActive(ctx context.Context, tournamentID *uint) error {
	return tr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Tournament{}).
			Where("active = ?", true).
			Update("active", false).Error; err != nil {
			return fmt.Errorf("couldn't deactivate the tournaments: %v", err)
		}

		if tournamentID == nil {
			return nil
		}

		result := tx.Model(&models.Tournament{}).
			Where("id = ?", *tournamentID).
			Update("active", true)
		if result.Error != nil {
			return fmt.Errorf("couldn't activate the tournament: %v", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

// SetSnapshot replaces the tournament's announcement day data in one
// transaction. A re-capture drops the previous rows entirely.
func (tr *tournamentRepository) SetSnapshot(ctx context.Context, tournamentID uint, entries []*models.SnapshotEntry, capturedAt time.Time) error {
	return tr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tournament_id = ?", tournamentID).
			Delete(&models.SnapshotEntry{}).Error; err != nil {
			return fmt.Errorf("couldn't drop the previous snapshot: %v", err)
		}

		if len(entries) > 0 {
			for _, entry := range entries {
				entry.TournamentID = tournamentID
			}
			if err := tx.CreateInBatches(&entries, snapshotBatchSize).Error; err != nil {
				return fmt.Errorf("couldn't store the snapshot entries: %v", err)
			}
		}

		if err := tx.Model(&models.Tournament{}).
			Where("id = ?", tournamentID).
			Update("snapshotted_at", capturedAt).Error; err != nil {
			return fmt.Errorf("couldn't set the snapshot timestamp: %v", err)
		}

		return nil
	})
}

// GetSnapshotEntry returns a player's announcement day entry, or nil
// when the player wasn't ranked at capture time.
func (tr *tournamentRepository) GetSnapshotEntry(ctx context.Context, tournamentID uint, tetrioID string) (*models.SnapshotEntry, error) {
	var entry models.SnapshotEntry
	if err := tr.db.WithContext(ctx).
		Where("tournament_id = ? AND tetrio_id = ?", tournamentID, tetrioID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("couldn't get the snapshot entry: %v", err)
	}

	return &entry, nil
}

// AddRegistration appends a player to the tournament if not already
// present. The conflict target is the unique pair, so two concurrent
// registrations can't both report success.
func (tr *tournamentRepository) AddRegistration(ctx context.Context, tournamentID uint, tetrioID string) (bool, error) {
	entry := &models.RegistrationEntry{
		TournamentID: tournamentID,
		TetrioID:     tetrioID,
	}

	result := tr.db.WithContext(ctx).
		Omit("Player").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entry)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// RemoveRegistration drops a player from the tournament.
// Reports whether an entry was removed.
func (tr *tournamentRepository) RemoveRegistration(ctx context.Context, tournamentID uint, tetrioID string) (bool, error) {
	result := tr.db.WithContext(ctx).
		Where("tournament_id = ? AND tetrio_id = ?", tournamentID, tetrioID).
		Delete(&models.RegistrationEntry{})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// IsRegistered is a pure membership test.
func (tr *tournamentRepository) IsRegistered(ctx context.Context, tournamentID uint, tetrioID string) (bool, error) {
	var count int64
	err := tr.db.WithContext(ctx).Model(&models.RegistrationEntry{}).
		Where("tournament_id = ? AND tetrio_id = ?", tournamentID, tetrioID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("couldn't check the registration: %v", err)
	}

	return count > 0, nil
}

// GetRegistrations lists a tournament's registrations with the player
// records, best current rank first.
func (tr *tournamentRepository) GetRegistrations(ctx context.Context, tournamentID uint) ([]models.RegistrationEntry, error) {
	var entries []models.RegistrationEntry
	err := tr.db.WithContext(ctx).
		Joins("Player").
		Where("registration_entries.tournament_id = ?", tournamentID).
		Order(`"Player"."rank" DESC, "Player"."rating" DESC`).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("couldn't list the registrations: %v", err)
	}

	return entries, nil
}

// SetCheckInMessage stores the message the front end anchors check-in
// reactions on.
func (tr *tournamentRepository) SetCheckInMessage(ctx context.Context, tournamentID uint, messageID string) error {
	err := tr.db.WithContext(ctx).Model(&models.Tournament{}).
		Where("id = ?", tournamentID).
		Update("check_in_message_id", messageID).Error
	if err != nil {
		return fmt.Errorf("couldn't set the check-in message: %v", err)
	}

	return nil
}

// AddCheckInEvent appends one add/remove action to the log.
func (tr *tournamentRepository) AddCheckInEvent(ctx context.Context, event *models.CheckInEvent) error {
	if err := tr.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("couldn't store the check-in event: %v", err)
	}

	return nil
}

// GetCheckInEvents returns the full log in replay order.
func (tr *tournamentRepository) GetCheckInEvents(ctx context.Context, tournamentID uint) ([]models.CheckInEvent, error) {
	var events []models.CheckInEvent
	err := tr.db.WithContext(ctx).
		Where("tournament_id = ?", tournamentID).
		Order("id asc").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("couldn't read the check-in log: %v", err)
	}

	return events, nil
}
