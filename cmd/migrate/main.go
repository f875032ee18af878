package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rensmac/chat-summarizer/internal/config"
	"github.com/rensmac/chat-summarizer/internal/repository/mysql"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	sourceURL := os.Getenv("MIGRATIONS_URL")
	if sourceURL == "" {
		sourceURL = "file://migrations"
	}

	log.Info().
		Str("host", cfg.Database.Host).
		Int("port", cfg.Database.Port).
		Str("source", sourceURL).
		Msg("Running database migrations")

	if err := mysql.RunMigrations(cfg.Database.MigrateURL(), sourceURL); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
