package config

import (
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string
	DBMaxConns     int32

	// LockTimeout bounds the wait for a material or project row lock.
	LockTimeout time.Duration

	JWTSecret      string
	JWTIssuer      string
	AllowAnonymous bool

	RateLimit          string
	CORSAllowedOrigins []string

	LogLevel       slog.Level
	MetricsEnabled bool
	OTLPEndpoint   string
	ServiceName    string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("DB_MAX_CONNS", 0)
	v.SetDefault("LOCK_TIMEOUT", "5s")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "farm-ledger")
	v.SetDefault("ALLOW_ANONYMOUS", true)
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("SERVICE_NAME", "farm-ledger")

	// Environment variables override defaults and .env values.
	v.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	lockTimeoutStr := v.GetString("LOCK_TIMEOUT")
	lockTimeout, err := time.ParseDuration(lockTimeoutStr)
	if err != nil || lockTimeout < 0 {
		lockTimeout = 5 * time.Second
		log.Printf("Warning: Invalid value for LOCK_TIMEOUT ('%s'). Defaulting to %s.\n", lockTimeoutStr, lockTimeout.String())
	}

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTIssuer = v.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "farm-ledger"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", v.GetString("LOG_LEVEL"))
		level = slog.LevelInfo
	}

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")
	cfg.DBMaxConns = v.GetInt32("DB_MAX_CONNS")
	cfg.LockTimeout = lockTimeout
	cfg.AllowAnonymous = v.GetBool("ALLOW_ANONYMOUS")
	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.LogLevel = level
	cfg.MetricsEnabled = v.GetBool("METRICS_ENABLED")
	cfg.OTLPEndpoint = v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")
	cfg.ServiceName = v.GetString("SERVICE_NAME")

	return cfg, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
