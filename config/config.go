package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Pipeline PipelineConfig
	Dedupe   DedupeConfig
	Geocode  GeocodeConfig
	Relief   ReliefConfig
	Logging  LoggingConfig
	Metrics  MetricsConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Host                    string
	Port                    int
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	IdleTimeout             time.Duration
	GracefulShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	URL             string
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type PipelineConfig struct {
	RateLimit     float64
	WorkerCount   int
	BatchSize     int
	RetryAttempts int
	RetryDelay    time.Duration
	FeedURLs      []string
}

// DedupeConfig controls report clustering.
type DedupeConfig struct {
	SimilarityThreshold float64
	TimeWindowDays      int
	MaxFeatures         int
}

// GeocodeConfig controls the location resolution client. MinInterval is
// the fixed delay between distinct upstream calls (provider rate limit).
type GeocodeConfig struct {
	BaseURL     string
	UserAgent   string
	Timeout     time.Duration
	MinInterval time.Duration
	CacheTTL    time.Duration
}

// ReliefConfig controls supply allocation.
type ReliefConfig struct {
	BufferPercentage float64
	TopK             int
	FoodUnits        float64
	WaterLiters      float64
	MedicineUnits    float64
	ShelterUnits     float64
}

type LoggingConfig struct {
	Level  string
	Format string // json or text
}

type MetricsConfig struct {
	Enabled bool
	Port    int
	Path    string
}

type AuthConfig struct {
	RequireAPIKeys bool
	KeyHeader      string // default: Authorization Bearer <key>
	APIKeyHash     string // bcrypt hash of the accepted key secret
}

// Load loads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:                    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:                    getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:             getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:            getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:             getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			GracefulShutdownTimeout: getEnvDuration("SERVER_GRACEFUL_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvDuration("DB_MAX_CONN_LIFETIME", 1*time.Hour),
			MaxConnIdleTime: getEnvDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Pipeline: PipelineConfig{
			RateLimit:     getEnvFloat("PIPELINE_RATE_LIMIT", 5.0),
			WorkerCount:   getEnvInt("PIPELINE_WORKER_COUNT", 4),
			BatchSize:     getEnvInt("PIPELINE_BATCH_SIZE", 100),
			RetryAttempts: getEnvInt("PIPELINE_RETRY_ATTEMPTS", 3),
			RetryDelay:    getEnvDuration("PIPELINE_RETRY_DELAY", 5*time.Second),
			FeedURLs:      getEnvList("REPORT_FEED_URLS", nil),
		},
		Dedupe: DedupeConfig{
			SimilarityThreshold: getEnvFloat("DEDUPE_SIMILARITY_THRESHOLD", 0.6),
			TimeWindowDays:      getEnvInt("DEDUPE_TIME_WINDOW_DAYS", 3),
			MaxFeatures:         getEnvInt("DEDUPE_MAX_FEATURES", 5000),
		},
		Geocode: GeocodeConfig{
			BaseURL:     getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
			UserAgent:   getEnv("GEOCODE_USER_AGENT", "disaster_analyzer"),
			Timeout:     getEnvDuration("GEOCODE_TIMEOUT", 10*time.Second),
			MinInterval: getEnvDuration("GEOCODE_MIN_INTERVAL", 1*time.Second),
			CacheTTL:    getEnvDuration("GEOCODE_CACHE_TTL", 24*time.Hour),
		},
		Relief: ReliefConfig{
			BufferPercentage: getEnvFloat("RELIEF_BUFFER_PERCENTAGE", 20),
			TopK:             getEnvInt("RELIEF_TOP_K", 5),
			FoodUnits:        getEnvFloat("RELIEF_FOOD_UNITS", 1000),
			WaterLiters:      getEnvFloat("RELIEF_WATER_LITERS", 1000),
			MedicineUnits:    getEnvFloat("RELIEF_MEDICINE_UNITS", 100),
			ShelterUnits:     getEnvFloat("RELIEF_SHELTER_UNITS", 500),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Port:    getEnvInt("METRICS_PORT", 9090),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
		Auth: AuthConfig{
			RequireAPIKeys: getEnvBool("AUTH_REQUIRE_API_KEYS", false),
			KeyHeader:      getEnv("AUTH_KEY_HEADER", "Authorization"),
			APIKeyHash:     getEnv("AUTH_API_KEY_HASH", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}
	if c.Pipeline.WorkerCount < 1 {
		return fmt.Errorf("pipeline worker count must be at least 1")
	}
	if c.Dedupe.SimilarityThreshold < 0 || c.Dedupe.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be in [0,1]: %f", c.Dedupe.SimilarityThreshold)
	}
	if c.Dedupe.TimeWindowDays < 0 {
		return fmt.Errorf("time window days must be non-negative: %d", c.Dedupe.TimeWindowDays)
	}
	if c.Relief.BufferPercentage < 0 || c.Relief.BufferPercentage > 100 {
		return fmt.Errorf("buffer percentage must be in [0,100]: %f", c.Relief.BufferPercentage)
	}
	if c.Relief.TopK < 1 {
		return fmt.Errorf("relief top-k must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			return items
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
