package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_DB", "prefs")

	cfg := Load()

	assert.Equal(t, "tzbot", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.AppPort)
	assert.Equal(t, "postgres://postgres:1234@db:5432/prefs?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, 10*time.Second, cfg.PollTimeout)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_DatabaseURLOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://data/tzbot.db")
	t.Setenv("APP_PORT", "9090")

	cfg := Load()

	assert.Equal(t, "sqlite://data/tzbot.db", cfg.DatabaseURL)
	assert.Equal(t, 9090, cfg.AppPort)
}

func TestValidate(t *testing.T) {
	valid := Config{
		ServiceName:      "tzbot",
		LoggerLevel:      "info",
		AppPort:          8080,
		DatabaseURL:      "sqlite://tzbot.db",
		TelegramBotToken: "123:abc",
		PollTimeout:      10 * time.Second,
		ShutdownTimeout:  15 * time.Second,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing token", func(c *Config) { c.TelegramBotToken = "" }},
		{"missing database url", func(c *Config) { c.DatabaseURL = "" }},
		{"unknown log level", func(c *Config) { c.LoggerLevel = "loud" }},
		{"port out of range", func(c *Config) { c.AppPort = 70000 }},
		{"poll timeout too short", func(c *Config) { c.PollTimeout = time.Millisecond }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
