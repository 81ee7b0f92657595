package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Addr        string `envconfig:"APP_ADDR" default:":8080"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"text"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	RedisAddr   string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	FrontendDir string `envconfig:"FRONTEND_DIR" default:"frontend/dist"`

	// CronAPIKey gates the auto-clock-out endpoint for external schedulers.
	// Empty disables the key check; HR sessions are always accepted.
	CronAPIKey       string `envconfig:"CRON_API_KEY"`
	AutoClockOutCron string `envconfig:"AUTO_CLOCK_OUT_CRON" default:"30 17 * * *"`

	LoginRatePerMinute int   `envconfig:"LOGIN_RATE_PER_MINUTE" default:"10"`
	MaxBodyBytes       int64 `envconfig:"MAX_BODY_BYTES" default:"1048576"`
	ActivityBuffer     int   `envconfig:"ACTIVITY_BUFFER" default:"256"`

	RunMigrations bool   `envconfig:"RUN_MIGRATIONS" default:"true"`
	MigrationsDir string `envconfig:"MIGRATIONS_DIR" default:"migrations"`
	RunSeed       bool   `envconfig:"RUN_SEED" default:"true"`

	SeedHREmail    string `envconfig:"SEED_HR_EMAIL"`
	SeedHRPassword string `envconfig:"SEED_HR_PASSWORD"`
	SeedHRName     string `envconfig:"SEED_HR_NAME" default:"System Administrator"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Environment == "production" && c.RunSeed && strings.TrimSpace(c.SeedHRPassword) == "" {
		return fmt.Errorf("SEED_HR_PASSWORD must be set or RUN_SEED disabled in production")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.LoginRatePerMinute <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE must be positive")
	}
	if c.ActivityBuffer <= 0 {
		return fmt.Errorf("ACTIVITY_BUFFER must be positive")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}
