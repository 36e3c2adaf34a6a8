package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     string
	LogLevel string

	PostgresURL string
	RedisURL    string
	JWTSecret   string

	MapboxToken       string
	DistanceCacheSize int
	DistanceCacheTTL  time.Duration
	CompanionCacheTTL time.Duration

	Embedding EmbeddingConfig
	SMTP      SMTPConfig

	DiscoverySources []string
}

// EmbeddingConfig holds configuration for embedding clients
type EmbeddingConfig struct {
	Provider string
	APIKey   string
	Model    string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != ""
}

// Load reads the process environment. Outside production a .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	env := getEnvWithDefault("APP_ENV", "development")
	if env != "production" {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Env:         env,
		Port:        getEnvWithDefault("PORT", "8080"),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		MapboxToken: os.Getenv("MAPBOX_ACCESS_TOKEN"),
	}

	var err error
	if cfg.DistanceCacheSize, err = getIntEnv("DISTANCE_CACHE_SIZE", 1024); err != nil {
		return nil, err
	}
	if cfg.DistanceCacheTTL, err = getDurationEnv("DISTANCE_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CompanionCacheTTL, err = getDurationEnv("COMPANION_CACHE_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}

	cfg.Embedding = embeddingConfig()

	cfg.SMTP = SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
		FromName: getEnvWithDefault("SMTP_FROM_NAME", "Nearby"),
	}
	if cfg.SMTP.Port, err = getIntEnv("SMTP_PORT", 587); err != nil {
		return nil, err
	}

	if raw := os.Getenv("DISCOVERY_SOURCES"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cfg.DiscoverySources = append(cfg.DiscoverySources, s)
			}
		}
	}

	if cfg.PostgresURL == "" {
		return nil, fmt.Errorf("POSTGRES_URL is required")
	}

	return cfg, nil
}

func embeddingConfig() EmbeddingConfig {
	provider := strings.ToLower(getEnvWithDefault("EMBEDDING_PROVIDER", "none"))

	switch provider {
	case "openai":
		return EmbeddingConfig{
			Provider: provider,
			APIKey:   os.Getenv("OPENAI_API_KEY"),
			Model:    getEnvWithDefault("OPENAI_MODEL", "text-embedding-3-small"),
		}
	case "gemini":
		return EmbeddingConfig{
			Provider: provider,
			APIKey:   os.Getenv("GEMINI_API_KEY"),
			Model:    getEnvWithDefault("GEMINI_MODEL", "text-embedding-004"),
		}
	default:
		return EmbeddingConfig{Provider: "none"}
	}
}

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}
