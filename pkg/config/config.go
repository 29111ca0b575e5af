package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Storage    StorageConfig
	Summarizer SummarizerConfig
	Store      StoreConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string        `envconfig:"DB_HOST" default:"localhost"`
	Port        string        `envconfig:"DB_PORT" default:"5432"`
	User        string        `envconfig:"DB_USER" default:"postgres"`
	Password    string        `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string        `envconfig:"DB_NAME" default:"grove"`
	SSLMode     string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int           `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int           `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool          `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	ConnectWait time.Duration `envconfig:"DB_CONNECT_WAIT" default:"30s"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret string        `envconfig:"JWT_ACCESS_SECRET" default:"dev-access-secret-change-me"`
	AccessExpiry time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"12h"`
	Issuer       string        `envconfig:"JWT_ISSUER" default:"grove-api"`
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Enabled         bool          `envconfig:"STORAGE_ENABLED" default:"false"`
	Endpoint        string        `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	PublicURL       string        `envconfig:"STORAGE_PUBLIC_URL"`
	AccessKeyID     string        `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string        `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string        `envconfig:"STORAGE_BUCKET" default:"grove-documents"`
	UseSSL          bool          `envconfig:"STORAGE_USE_SSL" default:"false"`
	PresignExpiry   time.Duration `envconfig:"STORAGE_PRESIGN_EXPIRY" default:"15m"`
}

// SummarizerConfig selects the profile summarizer
type SummarizerConfig struct {
	Kind    string        `envconfig:"SUMMARIZER_KIND" default:"rules"`
	BaseURL string        `envconfig:"SUMMARIZER_BASE_URL" default:"https://api.groq.com"`
	APIKey  string        `envconfig:"SUMMARIZER_API_KEY"`
	Model   string        `envconfig:"SUMMARIZER_MODEL" default:"llama-3.1-8b-instant"`
	Timeout time.Duration `envconfig:"SUMMARIZER_TIMEOUT" default:"30s"`
}

// StoreConfig selects the repository driver
type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
	Seed   bool   `envconfig:"STORE_SEED" default:"false"`
}

// Summarizer kinds
const (
	SummarizerRules = "rules"
	SummarizerLLM   = "llm"
)

// Store drivers
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromEnv reads every section from the environment without validating.
// Sections are processed one by one so variable names carry no section prefix.
func FromEnv() (*Config, error) {
	var cfg Config
	sections := []interface{}{
		&cfg.Server,
		&cfg.Database,
		&cfg.Redis,
		&cfg.JWT,
		&cfg.Storage,
		&cfg.Summarizer,
		&cfg.Store,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}
	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Summarizer.Kind {
	case SummarizerRules:
	case SummarizerLLM:
		if c.Summarizer.APIKey == "" {
			return fmt.Errorf("SUMMARIZER_API_KEY is required when SUMMARIZER_KIND=llm")
		}
	default:
		return fmt.Errorf("unknown SUMMARIZER_KIND %q", c.Summarizer.Kind)
	}

	switch c.Store.Driver {
	case StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.IsProduction() {
		if c.JWT.AccessSecret == "" || strings.HasPrefix(c.JWT.AccessSecret, "dev-") {
			return fmt.Errorf("JWT_ACCESS_SECRET must be set in production")
		}
		if c.Store.Driver == StoreMemory {
			return fmt.Errorf("STORE_DRIVER=memory is not allowed in production")
		}
	}

	if c.JWT.AccessExpiry <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRY must be positive")
	}
	return nil
}

// IsProduction reports whether the server runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
