package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "mongo", cfg.StorageDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, "user-approvals", cfg.RabbitMQApprovalQueue)
	assert.False(t, cfg.UsesMemoryStorage())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("JWT_EXPIRES_IN", "90m")
	t.Setenv("APPROVAL_WORKER_CONCURRENCY", "8")
	t.Setenv("SEARCH_ENABLED", "true")

	cfg := Load()

	assert.True(t, cfg.UsesMemoryStorage())
	assert.Equal(t, 90*time.Minute, cfg.JWTExpiresIn)
	assert.Equal(t, 8, cfg.ApprovalWorkerConcurrency)
	assert.True(t, cfg.SearchEnabled)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "tomorrow")
	t.Setenv("REDIS_DB", "one")
	t.Setenv("MAIL_SEND_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.False(t, cfg.MailSendEnabled)
}

func TestSplitList(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test , ,http://b.test"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}
