package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// DefaultJWTSecret is used when JWT_SECRET is unset. Never rely on it outside local development.
const DefaultJWTSecret = "dev-secret-key-change-in-production"

// Config holds application configuration from environment.
type Config struct {
	HTTPPort        string
	DatabaseDriver  string
	DatabaseURL     string
	DBPoolSize      int
	JWTSecret       string
	TokenTTL        time.Duration
	BcryptCost      int
	RedisURL        string
	RedisPoolSize   int
	FeedURL         string
	FeedCacheTTL    int // seconds
	FeedTimeout     int // seconds
	KafkaBrokers    []string
	KafkaTopic      string
	KafkaPartitions int
	LogLevel        string
}

var (
	cfg     *Config
	cfgOnce sync.Once
)

// Get returns the application config (loads .env and the environment once).
func Get() *Config {
	cfgOnce.Do(func() {
		_ = godotenv.Load(".env")
		cfg = Load()
	})
	return cfg
}

// Load reads the configuration from the current environment.
func Load() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DatabaseDriver:  getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:     getEnv("DATABASE_URL", "./data/tasks.db"),
		DBPoolSize:      getIntEnv("DB_POOL_SIZE", 10),
		JWTSecret:       getEnv("JWT_SECRET", DefaultJWTSecret),
		TokenTTL:        getDurationEnv("TOKEN_TTL", 24*time.Hour),
		BcryptCost:      getIntEnv("BCRYPT_COST", bcrypt.DefaultCost),
		RedisURL:        os.Getenv("REDIS_URL"),
		RedisPoolSize:   getIntEnv("REDIS_POOL_SIZE", 50),
		FeedURL:         getEnv("FEED_URL", "https://jsonplaceholder.typicode.com/todos"),
		FeedCacheTTL:    getIntEnv("FEED_CACHE_TTL_SEC", 300),
		FeedTimeout:     getIntEnv("FEED_TIMEOUT_SEC", 10),
		KafkaBrokers:    getSliceEnv("KAFKA_BROKERS"),
		KafkaTopic:      getEnv("KAFKA_TASK_TOPIC", "task-events"),
		KafkaPartitions: getIntEnv("KAFKA_PARTITIONS", 4),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return defaultVal
}

// getSliceEnv splits a comma-separated variable; an unset variable yields nil.
func getSliceEnv(key string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
