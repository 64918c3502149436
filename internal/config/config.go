// Package config loads runtime settings from configs/config.yml with
// GREENHOUSE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"greenhouse_sim/internal/catalog"
	"greenhouse_sim/internal/engine"

	"github.com/spf13/viper"
)

const envPrefix = "GREENHOUSE"

type Config struct {
	Port     string
	DBPath   string
	LogLevel string

	SigningKey string
	TokenTTL   time.Duration

	CatalogPath string

	CacheEnabled    bool
	CachePersistent bool
	CacheMaxEntries int

	SweepWorkers   int
	SweepMaxPoints int

	Policy engine.Policy
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "app.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("catalog.path", "data/catalog.yml")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.persistent", false)
	v.SetDefault("cache.max_entries", 4096)
	v.SetDefault("sweep.workers", 0)
	v.SetDefault("sweep.max_points", engine.DefaultMaxPoints)
	v.SetDefault("policy.catalog_fallback", "first_entry")
	v.SetDefault("policy.fan_bonus", "boost")
	v.SetDefault("policy.nursery_match", "fuzzy")
	v.SetDefault("policy.default_seedling_price", catalog.DefaultSeedlingPrice)
}

// Load reads config.yml from the first directory in dirs that has one. A
// missing file is not an error; defaults and environment still apply.
func Load(dirs ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:            v.GetString("port"),
		DBPath:          v.GetString("db.path"),
		LogLevel:        strings.ToLower(v.GetString("log.level")),
		SigningKey:      v.GetString("auth.signing_key"),
		TokenTTL:        v.GetDuration("auth.token_ttl"),
		CatalogPath:     v.GetString("catalog.path"),
		CacheEnabled:    v.GetBool("cache.enabled"),
		CachePersistent: v.GetBool("cache.persistent"),
		CacheMaxEntries: v.GetInt("cache.max_entries"),
		SweepWorkers:    v.GetInt("sweep.workers"),
		SweepMaxPoints:  v.GetInt("sweep.max_points"),
	}

	policy, err := engine.ParsePolicy(
		v.GetString("policy.catalog_fallback"),
		v.GetString("policy.fan_bonus"),
		v.GetString("policy.nursery_match"),
		v.GetFloat64("policy.default_seedling_price"),
	)
	if err != nil {
		return nil, fmt.Errorf("policy: %w", err)
	}
	cfg.Policy = policy
	// zero means unset to the engine
	if policy.DefaultSeedlingPrice <= 0 {
		return nil, fmt.Errorf("policy.default_seedling_price must be positive, got %v", policy.DefaultSeedlingPrice)
	}

	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("auth.token_ttl must be positive, got %v", cfg.TokenTTL)
	}
	if cfg.SweepMaxPoints < 0 || cfg.SweepWorkers < 0 {
		return nil, errors.New("sweep.workers and sweep.max_points must not be negative")
	}
	return cfg, nil
}
