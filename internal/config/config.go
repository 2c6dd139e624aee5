package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerHost            string `yaml:"server_host"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
	StorageBackend        string `yaml:"storage_backend"`
	StorageDir            string `yaml:"storage_dir"`
	RedisAddr             string `yaml:"redis_addr"`
	RedisPassword         string `yaml:"redis_password"`
	RedisDB               int    `yaml:"redis_db"`
	Currency              string `yaml:"currency"`
	PaymentPublishableKey string `yaml:"payment_publishable_key"`
	VaultPassphrase       string `yaml:"vault_passphrase"`
}

// Load builds the configuration from an optional YAML file pointed to by
// STOREFRONT_CONFIG, with environment variables taking precedence over
// file values and built-in defaults filling the rest.
func Load() Config {
	cfg := fromFile(os.Getenv("STOREFRONT_CONFIG"))

	cfg.ServerHost = getEnv("SERVER_HOST", defaultStr(cfg.ServerHost, "192.168.100.8:8082"))
	cfg.StorageBackend = getEnv("STORAGE_BACKEND", defaultStr(cfg.StorageBackend, "file"))
	cfg.StorageDir = getEnv("STORAGE_DIR", defaultStr(cfg.StorageDir, ".storefront"))
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.Currency = getEnv("CURRENCY", defaultStr(cfg.Currency, "pln"))
	cfg.PaymentPublishableKey = getEnv("PAYMENT_PUBLISHABLE_KEY", cfg.PaymentPublishableKey)
	cfg.VaultPassphrase = strings.TrimSpace(getEnv("VAULT_PASSPHRASE", cfg.VaultPassphrase))

	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = db
		}
	}
	timeout, err := strconv.Atoi(getEnv("REQUEST_TIMEOUT_SECONDS", ""))
	if err != nil || timeout < 1 {
		timeout = cfg.RequestTimeoutSeconds
	}
	if timeout < 1 {
		timeout = 15
	}
	cfg.RequestTimeoutSeconds = timeout

	return cfg
}

// BaseURL is the backend address the REST client talks to.
func (c Config) BaseURL() string {
	return fmt.Sprintf("http://%s", c.ServerHost)
}

func fromFile(path string) Config {
	var cfg Config
	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		// A missing or unreadable config file is not fatal; env and
		// defaults still apply.
		return Config{}
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

func defaultStr(val string, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
