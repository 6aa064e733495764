package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "infoshield.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "INFOSHIELD_PORT")
	setString(&cfg.Server.CORSOrigin, "INFOSHIELD_CORS_ORIGIN")
	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "INFOSHIELD_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "INFOSHIELD_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "INFOSHIELD_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "INFOSHIELD_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "INFOSHIELD_PG_HEALTH_CHECK")
	setString(&cfg.NATS.URL, "NATS_URL")
	setString(&cfg.LiteLLM.URL, "LITELLM_URL")
	setString(&cfg.LiteLLM.MasterKey, "LITELLM_MASTER_KEY")
	setString(&cfg.LiteLLM.SearchModel, "INFOSHIELD_SEARCH_MODEL")
	setString(&cfg.LiteLLM.SynthModel, "INFOSHIELD_SYNTH_MODEL")
	setString(&cfg.Logging.Level, "INFOSHIELD_LOG_LEVEL")
	setString(&cfg.Logging.Service, "INFOSHIELD_LOG_SERVICE")
	setInt(&cfg.Breaker.MaxFailures, "INFOSHIELD_BREAKER_MAX_FAILURES")
	setDuration(&cfg.Breaker.Timeout, "INFOSHIELD_BREAKER_TIMEOUT")
	setString(&cfg.Queue.Backend, "INFOSHIELD_QUEUE_BACKEND")
	setString(&cfg.Queue.CSVPath, "INFOSHIELD_QUEUE_CSV_PATH")
	setInt64(&cfg.Cache.MaxSizeMB, "INFOSHIELD_CACHE_SIZE_MB")
	setDuration(&cfg.Cache.TTL, "INFOSHIELD_CACHE_TTL")
	setInt(&cfg.Verification.CredibilityThreshold, "INFOSHIELD_CREDIBILITY_THRESHOLD")
	setInt(&cfg.Verification.UrgencyThreshold, "INFOSHIELD_URGENCY_THRESHOLD")
	setInt(&cfg.Verification.MaxEvents, "INFOSHIELD_MAX_EVENTS")
	setInt(&cfg.Verification.MaxEventsSingle, "INFOSHIELD_MAX_EVENTS_SINGLE")
	setInt64(&cfg.Verification.MaxConcurrent, "INFOSHIELD_MAX_CONCURRENT")
	setString(&cfg.Verification.ReviewerKeyHash, "INFOSHIELD_REVIEWER_KEY_HASH")
	setBool(&cfg.MCP.Enabled, "INFOSHIELD_MCP_ENABLED")
	setString(&cfg.MCP.Addr, "INFOSHIELD_MCP_ADDR")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Queue.Backend != "csv" && cfg.Queue.Backend != "postgres" {
		return fmt.Errorf("queue.backend must be csv or postgres, got %q", cfg.Queue.Backend)
	}
	if cfg.Queue.Backend == "csv" && cfg.Queue.CSVPath == "" {
		return errors.New("queue.csv_path is required for the csv backend")
	}
	if cfg.Queue.Backend == "postgres" && cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required for the postgres backend")
	}
	if cfg.Breaker.MaxFailures < 1 {
		return errors.New("breaker.max_failures must be >= 1")
	}
	if cfg.Verification.CredibilityThreshold < 0 || cfg.Verification.CredibilityThreshold > 100 {
		return errors.New("verification.credibility_threshold must be in [0,100]")
	}
	if cfg.Verification.MaxConcurrent < 1 {
		return errors.New("verification.max_concurrent must be >= 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
