package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/fxdesk/internal/core/domain"
	"github.com/SscSPs/fxdesk/internal/platform/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	EnableDBCheck bool
	LogLevel      slog.Level

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RateCacheTTL  time.Duration

	// ReferenceDenominations overrides the fallback bucket per pair.
	ReferenceDenominations map[domain.Pair]domain.DenominationKey
}

const defaultRateCacheTTL = 30 * time.Second

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATE_CACHE_TTL", defaultRateCacheTTL.String())
	v.SetDefault("REFERENCE_DENOMINATIONS", "")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:   v.GetString("PGSQL_URL"),
		EnableDBCheck: v.GetBool("ENABLE_DB_CHECK"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	levelStr := v.GetString("LOG_LEVEL")
	level, ok := logging.ParseLevel(levelStr)
	if !ok {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to %s.\n", levelStr, level)
	}
	cfg.LogLevel = level

	ttlStr := v.GetString("RATE_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl < 0 {
		ttl = defaultRateCacheTTL
		log.Printf("Warning: Invalid value for RATE_CACHE_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl)
	}
	cfg.RateCacheTTL = ttl

	refs, err := ParseReferenceDenominations(v.GetString("REFERENCE_DENOMINATIONS"))
	if err != nil {
		return nil, err
	}
	cfg.ReferenceDenominations = refs

	return cfg, nil
}

// ParseReferenceDenominations parses "VND/KRW=500000,USD/VND=100".
func ParseReferenceDenominations(s string) (map[domain.Pair]domain.DenominationKey, error) {
	refs := make(map[domain.Pair]domain.DenominationKey)
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		pairStr, keyStr, found := strings.Cut(entry, "=")
		if !found {
			return nil, fmt.Errorf("invalid REFERENCE_DENOMINATIONS entry %q: expected FROM/TO=DENOMINATION", entry)
		}
		pair, err := domain.ParsePair(strings.TrimSpace(pairStr))
		if err != nil {
			return nil, fmt.Errorf("invalid REFERENCE_DENOMINATIONS entry %q: %w", entry, err)
		}
		key, err := domain.ParseDenomination(pair.From, keyStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REFERENCE_DENOMINATIONS entry %q: %w", entry, err)
		}
		refs[pair] = key
	}
	return refs, nil
}
