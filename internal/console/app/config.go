package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env                 string        `env:"BREACHWATCH_ENV" envDefault:"dev"` // dev, staging, prod
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`      // debug, info, warn, error
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"`     // json, text
	HTTPAddr            string        `env:"HTTP_ADDR" envDefault:":8080"`     // listen address
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	DBDriver    string `env:"DB_DRIVER" envDefault:"sqlite"` // sqlite, postgres
	DBPath      string `env:"DB_PATH" envDefault:"./data/console.db"`
	DatabaseURL string `env:"DATABASE_URL"` // Required when DB_DRIVER=postgres

	PepperPath     string `env:"PEPPER_PATH" envDefault:"./data/pepper"`
	PasswordHasher string `env:"PASSWORD_HASHER" envDefault:"argon2id"` // argon2id, bcrypt

	JWTIssuer         string        `env:"JWT_ISSUER" envDefault:"breachwatch-console"`
	JWTAudience       []string      `env:"JWT_AUDIENCE" envSeparator:","`
	JWTSigningKeyPath string        `env:"JWT_SIGNING_KEY_PATH"` // Empty means an ephemeral key
	AccessTokenTTL    time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`

	PublicBaseURL         string        `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3000"`
	OnboardingTokenTTL    time.Duration `env:"ONBOARDING_TOKEN_TTL" envDefault:"24h"`
	InvitationTokenTTL    time.Duration `env:"INVITATION_TOKEN_TTL" envDefault:"168h"`
	MaxMembershipsPerUser int           `env:"MAX_MEMBERSHIPS_PER_USER" envDefault:"2"`

	BootstrapToken string `env:"BOOTSTRAP_TOKEN"` // Optional: enables POST /v1/bootstrap
	MFAIssuer      string `env:"MFA_ISSUER" envDefault:"BreachWatch"`

	SMTPHost     string `env:"SMTP_HOST"` // Empty logs emails instead of sending them
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM" envDefault:"BreachWatch <no-reply@breachwatch.io>"`

	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"` // Empty disables tracing
}

// LoadConfig reads the environment, after loading .env from the working
// directory if there is one. Variables already set win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if !strings.HasPrefix(c.PublicBaseURL, "http://") && !strings.HasPrefix(c.PublicBaseURL, "https://") {
		return fmt.Errorf("PUBLIC_BASE_URL must be an http(s) URL, got %q", c.PublicBaseURL)
	}
	if c.OnboardingTokenTTL < time.Hour || c.InvitationTokenTTL < time.Hour {
		return errors.New("ONBOARDING_TOKEN_TTL and INVITATION_TOKEN_TTL must be at least 1h")
	}
	if c.MaxMembershipsPerUser < 1 {
		return errors.New("MAX_MEMBERSHIPS_PER_USER must be at least 1")
	}
	return nil
}
