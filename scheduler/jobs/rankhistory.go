package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	playerservice "uchelper/api/services/player"
	"uchelper/pkg/bucket"
	"uchelper/pkg/config"
	"uchelper/pkg/database"
	"uchelper/pkg/logger"
	"uchelper/pkg/tenchi"
)

// RefreshRankHistory raises stored highest ranks from the archived rank
// history. Highest ranks only ever go up, so the job is safe to rerun.
func RefreshRankHistory(cfg *config.Config) error {
	log.Println("Starting rank history refresh.")
	start := time.Now()

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

	players := playerservice.NewPlayerService(&playerservice.PlayerServiceDeps{
		DB:     db,
		Tenchi: tenchi.NewClient(cfg.Tenchi),
	})

	runLog, err := logger.CreateLogger(bucket.NewClient(cfg.Bucket))
	if err != nil {
		return fmt.Errorf("couldn't create the run logger: %w", err)
	}

	ctx := context.Background()
	updated, err := players.RefreshHighestRanks(ctx)
	if err != nil {
		runLog.Errorf("Rank history refresh failed: %v", err)
		uploadRunReport(runLog, "rank-history")
		return fmt.Errorf("rank history refresh failed: %w", err)
	}

	runLog.Infof("Raised the highest rank of %d players in %s.", updated, time.Since(start).Round(time.Millisecond))
	uploadRunReport(runLog, "rank-history")

	log.Printf("Finished rank history refresh: %d players updated.", updated)
	return nil
}
