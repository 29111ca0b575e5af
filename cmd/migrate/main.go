package main

import (
	"context"
	"flag"
	"log"

	"github.com/momsgrove/grove-api/internal/infrastructure/database"
	"github.com/momsgrove/grove-api/pkg/config"
)

func main() {
	steps := flag.Int("steps", 1, "number of migrations to roll back with down; 0 rolls back everything")
	flag.Parse()

	direction := "up"
	if flag.NArg() > 0 {
		direction = flag.Arg(0)
	}
	if direction != "up" && direction != "down" {
		log.Fatalf("Unknown direction %q, expected up or down", direction)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if direction == "up" {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		return
	}

	n, err := database.MigrateDown(db, *steps)
	if err != nil {
		log.Fatalf("Failed to roll back after %d migration(s): %v", n, err)
	}
	log.Printf("✅ Rolled back %d migration(s)", n)
}
