package jobs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	playerservice "uchelper/api/services/player"
	tournamentservice "uchelper/api/services/tournament"
	"uchelper/pkg/bucket"
	"uchelper/pkg/config"
	"uchelper/pkg/database"
	"uchelper/pkg/registration"

	"github.com/google/uuid"
)

// ExportActiveRegistrations renders the active tournament's sign-up list
// as CSV and uploads it to the bucket so staff always have a recent copy.
func ExportActiveRegistrations(cfg *config.Config) error {
	log.Println("Starting registration export.")

	// Create a new connection pool.
	db, err := database.NewConnection(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("couldn't get database connection: %w", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	// The export reads local records only, a bare player service covers it.
	players := playerservice.NewPlayerService(&playerservice.PlayerServiceDeps{DB: db})
	tournaments := tournamentservice.NewTournamentService(&tournamentservice.TournamentServiceDeps{
		DB:      db,
		Players: players,
	})

	ctx := context.Background()
	data, filename, err := tournaments.ExportRegistrations(ctx, "")
	if err != nil {
		// Between tournaments there is nothing to export.
		if errors.Is(err, registration.ErrNoTournamentActive) {
			log.Println("No active tournament, skipping export.")
			return nil
		}
		return fmt.Errorf("couldn't render the registration export: %w", err)
	}

	bucketClient := bucket.NewClient(cfg.Bucket)
	objectKey := fmt.Sprintf("exports/%s/%s-%s", time.Now().UTC().Format("2006-01-02"), uuid.NewString(), filename)
	if err := bucketClient.Upload(ctx, objectKey, bytes.NewReader(data), "text/csv"); err != nil {
		return fmt.Errorf("couldn't upload the registration export: %w", err)
	}

	log.Printf("Finished registration export: %s (%d bytes).", objectKey, len(data))
	return nil
}
