package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_PORT", "DATABASE_DRIVER", "JWT_SECRET", "TOKEN_TTL", "KAFKA_BROKERS", "REDIS_URL"} {
		t.Setenv(k, "")
	}

	c := Load()
	if c.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, want 8080", c.HTTPPort)
	}
	if c.DatabaseDriver != "sqlite" {
		t.Errorf("DatabaseDriver = %q, want sqlite", c.DatabaseDriver)
	}
	if c.JWTSecret != DefaultJWTSecret {
		t.Errorf("JWTSecret = %q, want default", c.JWTSecret)
	}
	if c.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", c.TokenTTL)
	}
	if c.KafkaBrokers != nil {
		t.Errorf("KafkaBrokers = %v, want nil", c.KafkaBrokers)
	}
	if c.RedisURL != "" {
		t.Errorf("RedisURL = %q, want empty", c.RedisURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("DB_POOL_SIZE", "25")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("KAFKA_BROKERS", " a:9092, ,b:9092 ")
	t.Setenv("BCRYPT_COST", "not-a-number")

	c := Load()
	if c.HTTPPort != "9000" {
		t.Errorf("HTTPPort = %q", c.HTTPPort)
	}
	if c.DBPoolSize != 25 {
		t.Errorf("DBPoolSize = %d", c.DBPoolSize)
	}
	if c.TokenTTL != 90*time.Minute {
		t.Errorf("TokenTTL = %v", c.TokenTTL)
	}
	if len(c.KafkaBrokers) != 2 || c.KafkaBrokers[0] != "a:9092" || c.KafkaBrokers[1] != "b:9092" {
		t.Errorf("KafkaBrokers = %v", c.KafkaBrokers)
	}
	if c.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want fallback 10", c.BcryptCost)
	}
}
