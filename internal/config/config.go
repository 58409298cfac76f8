package config

import (
	"fmt"
	"os"
	"time"
)

// Config is the full service configuration, loaded from YAML and then
// overridden by TASKHUB_* environment variables.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	// Store selects the repository backend: "postgres" or "memory".
	// Memory keeps everything in-process and is for local development
	// only.
	Store    string         `yaml:"store"`
	LogLevel string         `yaml:"log_level"`
	Token    TokenConfig    `yaml:"token"`
	Database DatabaseConfig `yaml:"database"`
}

// TokenConfig configures session token issuance.
type TokenConfig struct {
	Secret     string `yaml:"secret"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

// TTL returns the token lifetime as a duration.
func (t TokenConfig) TTL() time.Duration {
	return time.Duration(t.TTLMinutes) * time.Minute
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN assembles the Postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ListenAddr: ":8080",
		Store:      "postgres",
		LogLevel:   "info",
		Token: TokenConfig{
			TTLMinutes: 60,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "taskhub",
			Name:    "taskhub",
			SSLMode: "disable",
		},
	}
}

// applyEnv overlays TASKHUB_* environment variables onto the config.
func (c *Config) applyEnv() {
	setFromEnv(&c.ListenAddr, "TASKHUB_LISTEN_ADDR")
	setFromEnv(&c.Store, "TASKHUB_STORE")
	setFromEnv(&c.LogLevel, "TASKHUB_LOG_LEVEL")
	setFromEnv(&c.Token.Secret, "TASKHUB_TOKEN_SECRET")
	setFromEnv(&c.Database.Host, "TASKHUB_DB_HOST")
	setFromEnv(&c.Database.Port, "TASKHUB_DB_PORT")
	setFromEnv(&c.Database.User, "TASKHUB_DB_USER")
	setFromEnv(&c.Database.Password, "TASKHUB_DB_PASSWORD")
	setFromEnv(&c.Database.Name, "TASKHUB_DB_NAME")
	setFromEnv(&c.Database.SSLMode, "TASKHUB_DB_SSLMODE")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	switch c.Store {
	case "postgres", "memory":
	default:
		return fmt.Errorf("store must be postgres or memory, got %q", c.Store)
	}
	if c.Token.Secret == "" {
		return fmt.Errorf("token secret is required (token.secret or TASKHUB_TOKEN_SECRET)")
	}
	if c.Token.TTLMinutes <= 0 {
		return fmt.Errorf("token ttl_minutes must be positive, got %d", c.Token.TTLMinutes)
	}
	return nil
}
