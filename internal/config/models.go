package config

import (
	"fmt"
	"time"
)

// LexiconConfig selects where the word lists come from
type LexiconConfig struct {
	Source string // embedded, directory or yaml
	Path   string
}

// StorageConfig represents the configuration for submission and analysis storage
type StorageConfig struct {
	Type        string
	SQLitePath  string
	PostgresDSN string
}

// CacheConfig represents the configuration for the analysis cache
type CacheConfig struct {
	Type             string
	TTL              time.Duration
	CleanupFrequency time.Duration
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
}

// AlertsConfig represents the configuration for high-risk alert publishing
type AlertsConfig struct {
	Enabled bool
	NATSURL string
	Subject string
}

// IngestConfig represents the configuration for batch ingestion
type IngestConfig struct {
	Source    string // eml or sample
	EMLDir    string
	Lookback  time.Duration
	BatchSize int
}

// GetLexicon returns the lexicon configuration
func (c *Config) GetLexicon() LexiconConfig {
	return LexiconConfig{
		Source: c.GetString("lexicon.source"),
		Path:   c.GetString("lexicon.path"),
	}
}

// GetStorage returns the storage configuration
func (c *Config) GetStorage() StorageConfig {
	return StorageConfig{
		Type:        c.GetString("storage.type"),
		SQLitePath:  c.GetString("storage.sqlite_path"),
		PostgresDSN: c.GetString("storage.postgres_dsn"),
	}
}

// GetCache returns the cache configuration
func (c *Config) GetCache() (CacheConfig, error) {
	ttl, err := c.GetDuration("cache.ttl")
	if err != nil {
		return CacheConfig{}, fmt.Errorf("invalid cache ttl: %w", err)
	}
	cleanup, err := c.GetDuration("cache.cleanup_frequency")
	if err != nil {
		return CacheConfig{}, fmt.Errorf("invalid cache cleanup frequency: %w", err)
	}

	return CacheConfig{
		Type:             c.GetString("cache.type"),
		TTL:              ttl,
		CleanupFrequency: cleanup,
		RedisAddr:        c.GetString("cache.redis_addr"),
		RedisPassword:    c.GetString("cache.redis_password"),
		RedisDB:          c.GetInt("cache.redis_db"),
	}, nil
}

// GetAlerts returns the alert publishing configuration
func (c *Config) GetAlerts() AlertsConfig {
	return AlertsConfig{
		Enabled: c.GetBool("alerts.enabled"),
		NATSURL: c.GetString("alerts.nats_url"),
		Subject: c.GetString("alerts.subject"),
	}
}

// GetIngest returns the ingestion configuration
func (c *Config) GetIngest() (IngestConfig, error) {
	lookback, err := c.GetDuration("ingest.lookback")
	if err != nil {
		return IngestConfig{}, fmt.Errorf("invalid ingest lookback: %w", err)
	}

	return IngestConfig{
		Source:    c.GetString("ingest.source"),
		EMLDir:    c.GetString("ingest.eml_dir"),
		Lookback:  lookback,
		BatchSize: c.GetInt("ingest.batch_size"),
	}, nil
}
