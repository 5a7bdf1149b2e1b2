package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	playerservice "uchelper/api/services/player"
	"uchelper/pkg/bucket"
	"uchelper/pkg/config"
	"uchelper/pkg/database"
	"uchelper/pkg/logger"
	"uchelper/pkg/redis"
	"uchelper/pkg/tetrio"

	"github.com/google/uuid"
)

// SyncLeaderboard pulls the full ranked ladder and refreshes every stored
// player from it. A run report is uploaded to the bucket when it finishes.
func SyncLeaderboard(cfg *config.Config) error {
	log.Println("Starting leaderboard sync.")
	start := time.Now()

	// Create a new connection pool.
	db, err := database.NewConnection(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("couldn't get database connection: %w", err)
	}

	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		return fmt.Errorf("couldn't get redis connection: %w", err)
	}

	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		redisClient.Close()
	}()

	players := playerservice.NewPlayerService(&playerservice.PlayerServiceDeps{
		DB:     db,
		Tetrio: tetrio.NewClient(cfg.Tetrio),
		Redis:  redisClient,
	})

	runLog, err := logger.CreateLogger(bucket.NewClient(cfg.Bucket))
	if err != nil {
		return fmt.Errorf("couldn't create the run logger: %w", err)
	}

	ctx := context.Background()
	users, err := players.UpdateFromLeaderboard(ctx)
	if err != nil {
		// Another instance already holds the sync lock, nothing to do.
		if errors.Is(err, playerservice.ErrSyncInProgress) {
			log.Println("Another sync holds the lock, skipping.")
			return nil
		}

		runLog.Errorf("Leaderboard sync failed: %v", err)
		uploadRunReport(runLog, "leaderboard-sync")
		return fmt.Errorf("leaderboard sync failed: %w", err)
	}

	runLog.Infof("Synced %d ranked players in %s.", len(users), time.Since(start).Round(time.Millisecond))
	uploadRunReport(runLog, "leaderboard-sync")

	log.Printf("Finished leaderboard sync: %d players.", len(users))
	return nil
}

// Upload the run report under a dated, unique object key.
// A failed upload only loses the report, never the job result.
func uploadRunReport(runLog *logger.RunLogger, job string) {
	objectKey := fmt.Sprintf("reports/%s/%s-%s.log", job, time.Now().UTC().Format("2006-01-02"), uuid.NewString())
	if err := runLog.Upload(context.Background(), objectKey); err != nil {
		log.Printf("Couldn't upload the run report: %v", err)
	}
}
