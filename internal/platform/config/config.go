package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

const (
	defaultPort                = "8080"
	defaultJWTSecret           = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTIssuer           = "fee-ledger"
	defaultMigrationsPath      = "file://migrations"
	defaultInvoiceDueDay       = 15
	defaultAllocatorMaxRetries = 5
	defaultCycleConcurrency    = 8
	defaultSweepInterval       = 24 * time.Hour
	defaultSweepBatchSize      = 500
	defaultNotifyQueueSize     = 256
	defaultNotifyTimeout       = 10 * time.Second
	defaultRateLimit           = "300-M"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	LogLevel       slog.Level
	JWTSecret      string
	JWTIssuer      string
	StoreBackend   string
	MigrationsPath string

	// Ledger behaviour
	InvoiceDueDay       int
	AllocatorMaxRetries int
	CycleConcurrency    int
	SweepInterval       time.Duration // 0 disables the scheduled sweep
	SweepBatchSize      int

	// Notifications
	NotifyWebhookURL string // empty means events are only logged
	NotifyQueueSize  int
	NotifyTimeout    time.Duration

	// HTTP surface
	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	v.SetDefault("STORE_BACKEND", StorePostgres)
	v.SetDefault("MIGRATIONS_PATH", defaultMigrationsPath)
	v.SetDefault("INVOICE_DUE_DAY", defaultInvoiceDueDay)
	v.SetDefault("ALLOCATOR_MAX_RETRIES", defaultAllocatorMaxRetries)
	v.SetDefault("CYCLE_CONCURRENCY", defaultCycleConcurrency)
	v.SetDefault("SWEEP_INTERVAL", defaultSweepInterval.String())
	v.SetDefault("SWEEP_BATCH_SIZE", defaultSweepBatchSize)
	v.SetDefault("NOTIFY_WEBHOOK_URL", "")
	v.SetDefault("NOTIFY_QUEUE_SIZE", defaultNotifyQueueSize)
	v.SetDefault("NOTIFY_TIMEOUT", defaultNotifyTimeout.String())
	v.SetDefault("RATE_LIMIT", defaultRateLimit)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")

	// Defaults above can be overridden by the .env file, which can then be overridden by actual environment variables.
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:      v.GetString("PGSQL_URL"),
		Port:             v.GetString("PORT"),
		IsProduction:     v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:    v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTIssuer:        v.GetString("JWT_ISSUER"),
		StoreBackend:     strings.ToLower(strings.TrimSpace(v.GetString("STORE_BACKEND"))),
		MigrationsPath:   v.GetString("MIGRATIONS_PATH"),
		NotifyWebhookURL: strings.TrimSpace(v.GetString("NOTIFY_WEBHOOK_URL")),
		RateLimit:        v.GetString("RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
		slog.Warn("PORT not set, using default", slog.String("port", cfg.Port))
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = defaultMigrationsPath
	}
	if cfg.RateLimit == "" {
		cfg.RateLimit = defaultRateLimit
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		slog.Warn("JWT_SECRET not set. Using default insecure key.")
	}

	switch cfg.StoreBackend {
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORE_BACKEND is %q", StorePostgres)
		}
	case StoreMemory:
		if cfg.IsProduction {
			slog.Warn("STORE_BACKEND=memory in production: ledger data is not durable")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q (want %q or %q)", cfg.StoreBackend, StorePostgres, StoreMemory)
	}

	cfg.LogLevel = parseLogLevel(v.GetString("LOG_LEVEL"))
	cfg.InvoiceDueDay = intInRange(v, "INVOICE_DUE_DAY", defaultInvoiceDueDay, 1, 31)
	cfg.AllocatorMaxRetries = intInRange(v, "ALLOCATOR_MAX_RETRIES", defaultAllocatorMaxRetries, 1, 100)
	cfg.CycleConcurrency = intInRange(v, "CYCLE_CONCURRENCY", defaultCycleConcurrency, 1, 256)
	cfg.SweepBatchSize = intInRange(v, "SWEEP_BATCH_SIZE", defaultSweepBatchSize, 1, 10000)
	cfg.NotifyQueueSize = intInRange(v, "NOTIFY_QUEUE_SIZE", defaultNotifyQueueSize, 1, 1<<16)
	cfg.SweepInterval = duration(v, "SWEEP_INTERVAL", defaultSweepInterval)
	cfg.NotifyTimeout = duration(v, "NOTIFY_TIMEOUT", defaultNotifyTimeout)

	if raw := strings.TrimSpace(v.GetString("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
			}
		}
	}

	return cfg, nil
}

func parseLogLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		slog.Warn("Invalid value for LOG_LEVEL, defaulting to info", slog.String("value", raw))
		return slog.LevelInfo
	}
	return level
}

// intInRange reads an integer key, falling back to def with a warning when it is malformed or out of range.
func intInRange(v *viper.Viper, key string, def, lo, hi int) int {
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		slog.Warn("Invalid value for "+key+", using default", slog.String("value", raw), slog.Int("default", def))
		return def
	}
	return n
}

func duration(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		slog.Warn("Invalid value for "+key+", using default", slog.String("value", raw), slog.String("default", def.String()))
		return def
	}
	return d
}
