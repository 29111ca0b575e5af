package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:     ServerConfig{Environment: "development"},
		JWT:        JWTConfig{AccessSecret: "dev-secret", AccessExpiry: time.Hour},
		Summarizer: SummarizerConfig{Kind: SummarizerRules},
		Store:      StoreConfig{Driver: StoreMemory},
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, SummarizerRules, cfg.Summarizer.Kind)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, 12*time.Hour, cfg.JWT.AccessExpiry)
	assert.NoError(t, cfg.Validate())
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("SUMMARIZER_KIND", "llm")
	t.Setenv("SUMMARIZER_API_KEY", "key")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, SummarizerLLM, cfg.Summarizer.Kind)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown summarizer", mutate: func(c *Config) { c.Summarizer.Kind = "magic" }, wantErr: "unknown SUMMARIZER_KIND"},
		{name: "llm without key", mutate: func(c *Config) { c.Summarizer.Kind = SummarizerLLM }, wantErr: "SUMMARIZER_API_KEY"},
		{name: "unknown store", mutate: func(c *Config) { c.Store.Driver = "mongo" }, wantErr: "unknown STORE_DRIVER"},
		{
			name: "production dev secret",
			mutate: func(c *Config) {
				c.Server.Environment = "production"
				c.Store.Driver = StorePostgres
			},
			wantErr: "JWT_ACCESS_SECRET",
		},
		{
			name: "production memory store",
			mutate: func(c *Config) {
				c.Server.Environment = "production"
				c.JWT.AccessSecret = "a-real-secret"
			},
			wantErr: "STORE_DRIVER=memory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
