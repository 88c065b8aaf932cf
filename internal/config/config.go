package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	ApprovalModeTwoStep = "two_step"
	ApprovalModeOneStep = "one_step"
)

// Config holds runtime configuration for every binary.
type Config struct {
	AppEnv       string        `envconfig:"APP_ENV" default:"development"`
	Port         string        `envconfig:"PORT" default:"3000"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
	IdleTimeout  time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"vacation"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBRetries  int    `envconfig:"DB_RETRIES" default:"5"`

	RedisAddr   string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	KafkaBroker string `envconfig:"KAFKA_BROKER"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
	// AdminEmails are promoted to ADMIN staff at startup and on sign-up.
	AdminEmails []string `envconfig:"ADMIN_EMAILS"`

	SMTPHost     string `envconfig:"SMTP_HOST" default:"127.0.0.1"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"1025"`
	SMTPUser     string `envconfig:"SMTP_USER"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"no-reply@vacation.local"`

	ApprovalMode       string        `envconfig:"LEAVE_APPROVAL_MODE" default:"two_step"`
	AccrualCron        string        `envconfig:"ACCRUAL_CRON" default:"0 2 * * *"`
	OutboxPollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"3s"`
	OutboxRetention    time.Duration `envconfig:"OUTBOX_RETENTION" default:"168h"`
	OutboxPurgeCron    string        `envconfig:"OUTBOX_PURGE_CRON" default:"30 3 * * *"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("jwt secret must be provided")
	}
	switch c.ApprovalMode {
	case ApprovalModeTwoStep, ApprovalModeOneStep:
	default:
		return fmt.Errorf("invalid LEAVE_APPROVAL_MODE %q", c.ApprovalMode)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
