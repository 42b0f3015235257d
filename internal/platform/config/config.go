package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers supported by the server.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	StorageDriver  string
	MigrationsPath string
	Port           string
	IsProduction   bool

	LogLevel        string
	LogFile         string
	LogMaxSizeMB    int
	LogMaxBackups   int
	LogMaxAgeDays   int
	SnowflakeNode   int64
	FrontendBaseURL string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	InvitationTTL     time.Duration
	SideEffectTimeout time.Duration

	// Redis backs the side-effect event stream and the distributed rate limiter.
	// When empty, side effects run in-process and the limiter uses memory.
	RedisURL          string
	EventsStream      string
	EventsGroup       string
	EventsConsumer    string
	EventsDLQStream   string
	EventsMaxAttempts int

	RateLimit          string
	AuthRateLimit      string
	CORSAllowedOrigins []string

	PosthogAPIKey string

	OTelEndpoint    string
	OTelServiceName string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("STORAGE_DRIVER", StoragePostgres)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("LOG_MAX_SIZE_MB", 100)
	viper.SetDefault("LOG_MAX_BACKUPS", 5)
	viper.SetDefault("LOG_MAX_AGE_DAYS", 28)
	viper.SetDefault("SNOWFLAKE_NODE_ID", 1)
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "survey-workspace-app")
	viper.SetDefault("INVITATION_TTL", "168h")
	viper.SetDefault("SIDE_EFFECT_TIMEOUT", "15s")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("EVENTS_STREAM", "workspace_events")
	viper.SetDefault("EVENTS_GROUP", "workspace_side_effects")
	viper.SetDefault("EVENTS_CONSUMER", "worker-1")
	viper.SetDefault("EVENTS_DLQ_STREAM", "workspace_events_dlq")
	viper.SetDefault("EVENTS_MAX_ATTEMPTS", 5)
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("AUTH_RATE_LIMIT", "5-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	viper.SetDefault("OTEL_SERVICE_NAME", "survey-workspace-backend")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.StorageDriver = strings.ToLower(viper.GetString("STORAGE_DRIVER"))
	if cfg.StorageDriver != StoragePostgres && cfg.StorageDriver != StorageMemory {
		log.Printf("Warning: unknown STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StoragePostgres)
		cfg.StorageDriver = StoragePostgres
	}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" && cfg.StorageDriver == StoragePostgres {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", time.Hour)
	cfg.InvitationTTL = durationOrDefault("INVITATION_TTL", 7*24*time.Hour)
	cfg.SideEffectTimeout = durationOrDefault("SIDE_EFFECT_TIMEOUT", 15*time.Second)

	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.LogLevel = viper.GetString("LOG_LEVEL")
	cfg.LogFile = viper.GetString("LOG_FILE")
	cfg.LogMaxSizeMB = viper.GetInt("LOG_MAX_SIZE_MB")
	cfg.LogMaxBackups = viper.GetInt("LOG_MAX_BACKUPS")
	cfg.LogMaxAgeDays = viper.GetInt("LOG_MAX_AGE_DAYS")
	cfg.SnowflakeNode = viper.GetInt64("SNOWFLAKE_NODE_ID")
	cfg.FrontendBaseURL = strings.TrimRight(viper.GetString("FRONTEND_BASE_URL"), "/")

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.EventsStream = viper.GetString("EVENTS_STREAM")
	cfg.EventsGroup = viper.GetString("EVENTS_GROUP")
	cfg.EventsConsumer = viper.GetString("EVENTS_CONSUMER")
	cfg.EventsDLQStream = viper.GetString("EVENTS_DLQ_STREAM")
	cfg.EventsMaxAttempts = viper.GetInt("EVENTS_MAX_ATTEMPTS")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.OTelEndpoint = viper.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")
	cfg.OTelServiceName = viper.GetString("OTEL_SERVICE_NAME")

	return cfg, nil
}

// OTelEnabled reports whether traces should be exported.
func (c *Config) OTelEnabled() bool {
	return c.OTelEndpoint != ""
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
