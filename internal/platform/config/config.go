// Package config builds runtime configuration from environment variables so
// main stays lean.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures all server-level configuration.
type Config struct {
	Addr          string
	JWTSigningKey string

	Redis    RedisConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
	Oracle   OracleConfig

	// LinkFetchTimeout bounds each individual link fetch in the link phase.
	LinkFetchTimeout time.Duration
}

// RedisConfig configures the pattern store connection. An empty URL disables
// Redis and the in-memory store is used instead.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the task and verification record stores. An empty
// DSN keeps the service on in-memory stores.
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// KafkaConfig configures the audit event sink. Empty brokers disable Kafka
// and audit events stay on the in-memory sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// OracleConfig configures the content relevance oracle backend. An empty API
// key leaves the engine running with per-phase fallbacks only.
type OracleConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// FromEnv builds a Config from environment variables, applying development
// defaults for anything unset.
func FromEnv() Config {
	cfg := Config{
		Addr:             getEnv("TASKPROOF_ADDR", ":8080"),
		JWTSigningKey:    getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		LinkFetchTimeout: getDuration("LINK_FETCH_TIMEOUT", 10*time.Second),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			DSN:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: getInt("DATABASE_MAX_OPEN_CONNS", 20),
			MaxIdleConns: getInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Kafka: KafkaConfig{
			Topic: getEnv("KAFKA_AUDIT_TOPIC", "taskproof.audit"),
		},
		Oracle: OracleConfig{
			BaseURL: getEnv("ORACLE_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			APIKey:  os.Getenv("ORACLE_API_KEY"),
			Model:   getEnv("ORACLE_MODEL", "gemini-2.0-flash"),
			Timeout: getDuration("ORACLE_TIMEOUT", 30*time.Second),
		},
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = splitAndTrim(brokers)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
