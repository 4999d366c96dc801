package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration, resolved once at startup and
// handed to main for explicit wiring. No component reads the environment
// on its own.
type Config struct {
	HTTPAddr      string
	PostgresURL   string
	RedisAddr     string
	KafkaBrokers  []string
	OrderTopic    string
	DemoMode      bool
	StatsCacheTTL time.Duration
	InvoiceDir    string
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		PostgresURL:   getEnv("PG_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		KafkaBrokers:  getEnvSlice("KAFKA_BROKERS", nil),
		OrderTopic:    getEnv("ORDER_TOPIC", "order.events"),
		DemoMode:      getEnvBool("M7_DEMO", false),
		StatsCacheTTL: getEnvDuration("STATS_CACHE_TTL", 30*time.Second),
		InvoiceDir:    getEnv("INVOICE_DIR", ""),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return strings.Split(v, ",")
	}
	return fallback
}
