// Manually purge expired refresh tokens.
//
// The main application runs the same sweep hourly; this script is for
// one-off runs, for example after restoring a database dump.
//
// Usage: go run scripts/purge_tokens.go

package main

import (
	"log"

	"studyset_backend/internal/config"
	"studyset_backend/internal/repository"
	"studyset_backend/pkg/database"
	"studyset_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	tokens := repository.NewRefreshTokenRepository(db)
	deleted, err := tokens.DeleteExpired()
	if err != nil {
		log.Fatalf("Purge failed: %v", err)
	}

	log.Printf("Removed %d expired refresh tokens", deleted)
}
