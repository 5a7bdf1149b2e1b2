package database

import (
	"fmt"
	"time"

	"uchelper/pkg/database/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CreateEnums creates the enums used by the models.
// The rank_type values are declared in ladder order on purpose, so
// ORDER BY on rank columns follows the actual tier ordering.
func CreateEnums(db *gorm.DB) error {
	err := db.Exec(`
		DO $$
		BEGIN
		    IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'rank_type') THEN
		        CREATE TYPE rank_type AS ENUM ('z', 'd', 'd+', 'c-', 'c', 'c+', 'b-', 'b', 'b+', 'a-', 'a', 'a+', 's-', 's', 's+', 'ss', 'u', 'x');
		    END IF;

		    IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'checkin_action') THEN
		        CREATE TYPE checkin_action AS ENUM ('add', 'remove');
		    END IF;
		END $$;
	`).Error

	return err
}

// CreateCustomIndexes creates any necessary custom index.
func CreateCustomIndexes(db *gorm.DB) error {
	// Username lookups are case insensitive exact matches.
	searchIndex := `
		CREATE INDEX IF NOT EXISTS idx_player_username_lower ON player_entries (
		  lower(username) text_pattern_ops
		) WHERE username != '';`
	return db.Exec(searchIndex).Error
}

// RunMigrations replicates the full schema on the given connection.
func RunMigrations(db *gorm.DB) error {
	if err := CreateEnums(db); err != nil {
		return fmt.Errorf("couldn't create the enums: %w", err)
	}

	err := db.AutoMigrate(
		&models.PlayerEntry{},
		&models.Tournament{},
		&models.RegistrationEntry{},
		&models.SnapshotEntry{},
		&models.CheckInEvent{},
	)
	if err != nil {
		return fmt.Errorf("couldn't run the migrations: %w", err)
	}

	if err := CreateCustomIndexes(db); err != nil {
		return fmt.Errorf("couldn't create the custom indexes: %w", err)
	}

	return nil
}

// NewConnection opens the connection pool for the given DSN.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	// Get the SQL database itself.
	sqlDb, sqlErr := db.DB()
	if sqlErr != nil {
		return nil, fmt.Errorf("failed to get the sql connection: %v", sqlErr)
	}

	// Set the pool values.
	sqlDb.SetMaxOpenConns(100)
	sqlDb.SetMaxIdleConns(10)
	sqlDb.SetConnMaxLifetime(time.Hour)
	sqlDb.SetConnMaxIdleTime(time.Hour)

	// Test the connection.
	if err := sqlDb.Ping(); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
