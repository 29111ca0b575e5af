package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	migrate "github.com/rubenv/sql-migrate"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/momsgrove/grove-api/migrations"
	"github.com/momsgrove/grove-api/pkg/config"
)

// NewPostgresDB creates a new PostgreSQL database connection using GORM.
// The first ping is retried with exponential backoff for up to Database.ConnectWait.
func NewPostgresDB(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.GetDatabaseDSN()

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	// Open connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get generic database object to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxOpenConns(cfg.Database.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MinConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := pingWithRetry(ctx, sqlDB, cfg.Database.ConnectWait); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Database connected successfully")

	return db, nil
}

func pingWithRetry(ctx context.Context, sqlDB *sql.DB, wait time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = wait

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(pingCtx); err != nil {
			log.Printf("⏳ Database not ready (attempt %d): %v", attempt, err)
			return err
		}
		return nil
	}, backoff.WithContext(b, ctx))
}

// AutoMigrate applies the embedded migrations
func AutoMigrate(db *gorm.DB) error {
	log.Println("🔄 Applying embedded migrations using sql-migrate...")

	n, err := exec(db, migrate.Up, 0)
	if err != nil {
		return err
	}

	log.Printf("✅ Applied %d migrations!\n", n)
	return nil
}

// MigrateDown rolls back up to steps migrations. Zero rolls back everything.
func MigrateDown(db *gorm.DB, steps int) (int, error) {
	return exec(db, migrate.Down, steps)
}

func exec(db *gorm.DB, dir migrate.MigrationDirection, max int) (int, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get db connection during migrate, error: %v", err)
	}

	n, err := migrate.ExecMax(sqlDB, "postgres", migrations.Source(), dir, max)
	if err != nil {
		return n, fmt.Errorf("failed to apply migration, error: %v", err)
	}
	return n, nil
}

// CloseDB closes the database connection
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Println("✅ Database connection closed")
	return nil
}
