package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrUnknownStore is returned for a session.store value with no backend.
var ErrUnknownStore = errors.New("unknown session store")

// Load layers the YAML file at path and then PORTAL_* environment variables
// over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := New()

	if path != "" {
		filename, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		yamlFile, err := os.ReadFile(filename)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(yamlFile, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	// .env is optional
	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	switch cfg.Session.Store {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Session.Store)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Env, "PORTAL_ENV")
	setString(&cfg.Server.Host, "PORTAL_HOST")
	setString(&cfg.API.BaseURL, "PORTAL_API_URL")
	setString(&cfg.Session.Store, "PORTAL_SESSION_STORE")
	setString(&cfg.Session.File.Path, "PORTAL_SESSION_FILE")
	setString(&cfg.Session.Redis.Addr, "PORTAL_REDIS_ADDR")
	setString(&cfg.Session.Redis.Password, "PORTAL_REDIS_PASSWORD")
	setString(&cfg.Log.Level, "PORTAL_LOG_LEVEL")

	if v := os.Getenv("PORTAL_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORTAL_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("PORTAL_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORTAL_REDIS_DB: %w", err)
		}
		cfg.Session.Redis.DB = db
	}
	if v := os.Getenv("PORTAL_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PORTAL_API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = d
	}
	if v := os.Getenv("PORTAL_SESSION_SECURE"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid PORTAL_SESSION_SECURE: %w", err)
		}
		cfg.Session.Secure = secure
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
