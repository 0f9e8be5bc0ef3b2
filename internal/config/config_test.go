package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, AccountStoreDynamo, cfg.AccountStore)
	assert.Equal(t, PendingStoreMemory, cfg.PendingStore)
	assert.Equal(t, "users", cfg.DynamoTables.Users)
	assert.Equal(t, "shopkeepers", cfg.DynamoTables.Shopkeepers)
	assert.Equal(t, time.Hour, cfg.PendingRetention)
	assert.Zero(t, cfg.PendingSweepInterval)
	assert.Empty(t, cfg.AdminToken)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ACCOUNT_STORE", "Mongo")
	t.Setenv("PENDING_STORE", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("PENDING_SWEEP_INTERVAL", "30s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg := Load()
	assert.Equal(t, AccountStoreMongo, cfg.AccountStore)
	assert.Equal(t, PendingStoreRedis, cfg.PendingStore)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 30*time.Second, cfg.PendingSweepInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "x")
	t.Setenv("PENDING_RETENTION", "soon")

	cfg := Load()
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, time.Hour, cfg.PendingRetention)
}

func TestLoad_NonPositiveDurationsFallBack(t *testing.T) {
	t.Setenv("PENDING_RETENTION", "-10m")
	t.Setenv("PENDING_SWEEP_INTERVAL", "-1s")

	cfg := Load()
	assert.Equal(t, DefaultPendingRetention, cfg.PendingRetention)
	assert.Zero(t, cfg.PendingSweepInterval)
}

func TestLoad_ZeroRetentionFallsBack(t *testing.T) {
	t.Setenv("PENDING_STORE", "redis")
	t.Setenv("PENDING_RETENTION", "0s")

	cfg := Load()
	assert.Equal(t, DefaultPendingRetention, cfg.PendingRetention)
}
