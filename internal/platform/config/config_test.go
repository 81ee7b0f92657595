package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Addr:               ":8080",
		Environment:        "development",
		DatabaseURL:        "postgres://localhost/hrm",
		JWTSecret:          "secret",
		TokenTTL:           24 * time.Hour,
		LoginRatePerMinute: 10,
		MaxBodyBytes:       1 << 20,
		ActivityBuffer:     256,
	}
}

func TestValidateOK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRequiredFields(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.JWTSecret = " "
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.TokenTTL = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateProductionSeedPassword(t *testing.T) {
	cfg := validConfig()
	cfg.Environment = "production"
	cfg.RunSeed = true
	cfg.SeedHRPassword = ""
	assert.Error(t, cfg.Validate())

	cfg.SeedHRPassword = "strong-password"
	assert.NoError(t, cfg.Validate())
}

func TestIsProduction(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.IsProduction())
	cfg.Environment = "production"
	assert.True(t, cfg.IsProduction())
}
