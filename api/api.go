package main

import (
	"log"
	"os"

	"uchelper/api/modules"
	"uchelper/api/routes"
	"uchelper/pkg/config"
	"uchelper/pkg/database"
	"uchelper/pkg/redis"
	"uchelper/pkg/tenchi"
	"uchelper/pkg/tetrio"

	"github.com/joho/godotenv"
)

func main() {
	// Load the environment variables if not running on Docker.
	if os.Getenv("ENVIRONMENT") != "docker" {
		if err := godotenv.Load(); err != nil {
			log.Fatal("Error loading .env file")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading the configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Error running the migrations: %v", err)
	}

	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	// Create a module with all necessary handlers.
	module := modules.NewModule(&modules.ModuleDependencies{
		DB:     db,
		Redis:  redisClient,
		Tetrio: tetrio.NewClient(cfg.Tetrio),
		Tenchi: tenchi.NewClient(cfg.Tenchi),
	})

	// Create a new router with the routes setup.
	router := routes.NewRouter(module.Router)
	router.SetupRoutes(
		module.PlayerHandler,
		module.TournamentHandler,
	)

	// Start the server.
	if err := router.Run(cfg.API.Port); err != nil {
		log.Fatalf("Error running the server: %v", err)
	}
}
