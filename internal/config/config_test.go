package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "albergo-api", cfg.ServiceName)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 24*time.Hour, cfg.ReconcileInterval)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	t.Setenv("RECONCILE_INTERVAL", "1h")
	cfg := Load()
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Hour, cfg.ReconcileInterval)
}

func TestBadReconcileInterval(t *testing.T) {
	t.Setenv("RECONCILE_INTERVAL", "soon")
	assert.Equal(t, 24*time.Hour, Load().ReconcileInterval)

	t.Setenv("RECONCILE_INTERVAL", "-5m")
	assert.Equal(t, 24*time.Hour, Load().ReconcileInterval)
}
