package config

import (
	"fmt"
	"os"
)

// DatabaseConfig holds the postgres connection values.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	DSN      string
}

// RedisConfig holds the redis connection values.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// TetrioConfig holds the TETR.IO channel API values.
type TetrioConfig struct {
	BaseURL string
}

// TenchiConfig holds the third party rank history source values.
type TenchiConfig struct {
	HistoryURL string
}

// BucketConfig holds the S3 compatible storage values.
type BucketConfig struct {
	Region       string
	AccessKey    string
	AccessSecret string
	Endpoint     string
	Name         string
}

// APIConfig holds the HTTP server values.
type APIConfig struct {
	Port string
}

// Config is the full application configuration.
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Tetrio   TetrioConfig
	Tenchi   TenchiConfig
	Bucket   BucketConfig
	API      APIConfig
}

// Load reads the configuration from the environment.
// The mains are responsible for loading the .env file first when needed.
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     getEnvDefault("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     getEnvDefault("REDIS_HOST", "localhost"),
			Port:     getEnvDefault("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Tetrio: TetrioConfig{
			BaseURL: getEnvDefault("TETRIO_API_URL", "https://ch.tetr.io/api"),
		},
		Tenchi: TenchiConfig{
			HistoryURL: getEnvDefault("TENCHI_HISTORY_URL", "https://tetrio.team2xh.net/data/player_history.js"),
		},
		Bucket: BucketConfig{
			Region:       os.Getenv("BUCKET_REGION"),
			AccessKey:    os.Getenv("BUCKET_ACCESS_KEY"),
			AccessSecret: os.Getenv("BUCKET_ACCESS_SECRET"),
			Endpoint:     os.Getenv("BUCKET_ENDPOINT"),
			Name:         os.Getenv("BUCKET_NAME"),
		},
		API: APIConfig{
			Port: getEnvDefault("API_PORT", ":8080"),
		},
	}

	if cfg.Database.Host == "" || cfg.Database.User == "" || cfg.Database.Name == "" {
		return nil, fmt.Errorf("missing database configuration: DB_HOST, DB_USER and DB_NAME must be set")
	}

	cfg.Database.DSN = fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
	)

	return cfg, nil
}

// getEnvDefault returns the env value or the fallback when unset.
func getEnvDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
