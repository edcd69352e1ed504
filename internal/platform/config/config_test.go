package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/fxdesk/internal/core/domain"
	"github.com/SscSPs/fxdesk/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PGSQL_URL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("RATE_CACHE_TTL", "")
	t.Setenv("REFERENCE_DENOMINATIONS", "")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.RateCacheTTL)
	assert.Empty(t, cfg.ReferenceDenominations)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://fx:fx@localhost:5432/fx")
	t.Setenv("ENABLE_DB_CHECK", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("RATE_CACHE_TTL", "2m")
	t.Setenv("REFERENCE_DENOMINATIONS", "VND/KRW=200000, USD/VND=50")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://fx:fx@localhost:5432/fx", cfg.DatabaseURL)
	assert.True(t, cfg.EnableDBCheck)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 2*time.Minute, cfg.RateCacheTTL)
	assert.Equal(t, map[domain.Pair]domain.DenominationKey{
		{From: domain.VND, To: domain.KRW}: "200000",
		{From: domain.USD, To: domain.VND}: "50",
	}, cfg.ReferenceDenominations)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")
	t.Setenv("RATE_CACHE_TTL", "soon")
	t.Setenv("REFERENCE_DENOMINATIONS", "")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.RateCacheTTL)
}

func TestParseReferenceDenominations_Invalid(t *testing.T) {
	for _, in := range []string{
		"VND/KRW",
		"VND-KRW=500000",
		"VND/KRW=300000",
		"EUR/KRW=100",
	} {
		_, err := config.ParseReferenceDenominations(in)
		assert.Error(t, err, in)
	}
}
