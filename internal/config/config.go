package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080" validate:"gte=1,lte=65535"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	Version     string `env:"VERSION" envDefault:"dev"`
	APIKey      string `env:"API_KEY"` // requests must carry X-API-Key when set

	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	Storage    string `env:"STORAGE" envDefault:"memory" validate:"oneof=memory postgres"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBName     string `env:"DB_NAME" envDefault:"questforge"`
	DBMaxConns int    `env:"DB_MAX_CONNS" envDefault:"10" validate:"gte=1"`

	ContentURL      string        `env:"CONTENT_URL" validate:"omitempty,url"`
	ContentFile     string        `env:"CONTENT_FILE"`
	ContentCacheTTL time.Duration `env:"CONTENT_CACHE_TTL" envDefault:"5m" validate:"gt=0"`

	DiscordToken     string `env:"DISCORD_TOKEN"`
	DiscordChannelID string `env:"DISCORD_CHANNEL_ID" validate:"required_with=DiscordToken"`

	SyncWorkers    int    `env:"SYNC_WORKERS" envDefault:"2" validate:"gte=1,lte=64"`
	SyncQueueSize  int    `env:"SYNC_QUEUE_SIZE" envDefault:"256" validate:"gte=1"`
	SyncOutboxPath string `env:"SYNC_OUTBOX_PATH"`

	EscrowSweepInterval time.Duration `env:"ESCROW_SWEEP_INTERVAL" envDefault:"15m" validate:"gt=0"`
	StreakCheckInterval time.Duration `env:"STREAK_CHECK_INTERVAL" envDefault:"1h" validate:"gt=0"`
	Timezone            string        `env:"TIMEZONE" envDefault:"UTC"`

	LogDir          string        `env:"LOG_DIR"` // session log files are written here when set
	DeadLetterPath  string        `env:"DEAD_LETTER_PATH" envDefault:"logs/event_deadletter.jsonl"`
	EventRetention  int           `env:"EVENT_RETENTION_DAYS" envDefault:"90" validate:"gte=1"`
	EventMaxRetries int           `env:"EVENT_MAX_RETRIES" envDefault:"5" validate:"gte=0"`
	EventRetryDelay time.Duration `env:"EVENT_RETRY_DELAY" envDefault:"2s"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	RNGSeed         int64         `env:"RNG_SEED"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load(DefaultEnvFile)

	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Location resolves the timezone daily rollovers use
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
