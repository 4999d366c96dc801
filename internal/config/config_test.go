package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"HTTP_ADDR", "PG_URL", "REDIS_ADDR", "KAFKA_BROKERS", "ORDER_TOPIC", "M7_DEMO", "STATS_CACHE_TTL", "INVOICE_DIR"} {
		if v, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, v) })
			os.Unsetenv(key)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "", cfg.PostgresURL)
	assert.Equal(t, "", cfg.RedisAddr)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Equal(t, "order.events", cfg.OrderTopic)
	assert.False(t, cfg.DemoMode)
	assert.Equal(t, 30*time.Second, cfg.StatsCacheTTL)
	assert.Equal(t, "", cfg.InvoiceDir, "archiving is opt-in; no directory unless INVOICE_DIR is set")
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("M7_DEMO", "true")
	t.Setenv("STATS_CACHE_TTL", "2m")
	t.Setenv("INVOICE_DIR", "/var/lib/m7/invoices")

	cfg := Load()

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.DemoMode)
	assert.Equal(t, 2*time.Minute, cfg.StatsCacheTTL)
	assert.Equal(t, "/var/lib/m7/invoices", cfg.InvoiceDir)
}
