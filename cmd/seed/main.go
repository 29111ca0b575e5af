package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"go.uber.org/zap"

	"github.com/momsgrove/grove-api/internal/adapter/repository"
	"github.com/momsgrove/grove-api/internal/infrastructure/database"
	"github.com/momsgrove/grove-api/internal/seed"
	"github.com/momsgrove/grove-api/pkg/config"
)

func main() {
	opts := seed.DefaultOptions()

	school := flag.String("school", opts.SchoolName, "demo school name")
	password := flag.String("password", opts.Password, "password for the demo accounts")
	unlock := flag.String("unlock", strings.Join(opts.Unlock, ","), "comma separated module ids to unlock")
	sample := flag.Bool("sample", opts.SampleData, "add a demo student, alert, event and fees")
	flag.Parse()

	opts.SchoolName = *school
	opts.Password = *password
	opts.SampleData = *sample
	opts.Unlock = nil
	for _, id := range strings.Split(*unlock, ",") {
		if id = strings.TrimSpace(id); id != "" {
			opts.Unlock = append(opts.Unlock, id)
		}
	}

	log.Println("🚀 Seeding Grove demo data...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	demo, err := seed.Run(ctx, repository.NewRegistry(db), opts, logger)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Printf("✅ School %q (%s)", demo.School.Name, demo.School.ID)
	for _, u := range []struct{ role, email string }{
		{"admin", seed.AdminEmail},
		{"teacher", seed.TeacherEmail},
		{"parent", seed.ParentEmail},
	} {
		log.Printf("   %-8s %s", u.role, u.email)
	}
}
