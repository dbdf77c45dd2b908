// Package config loads the issue board configuration.
//
// Values are layered: built-in defaults, then the YAML file, then the
// environment. Command line flags are applied last by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/Sternrassler/issue-board/pkg/client"
	"github.com/Sternrassler/issue-board/pkg/issues"
	"github.com/Sternrassler/issue-board/pkg/logging"
	"github.com/Sternrassler/issue-board/pkg/pagination"
	"gopkg.in/yaml.v3"
)

// DefaultUserAgent identifies the board to the API.
const DefaultUserAgent = "issue-board/0.1.0"

// Environment variables read by ApplyEnv.
const (
	EnvOwner     = "ISSUE_BOARD_OWNER"
	EnvToken     = "GITHUB_TOKEN"
	EnvAPIURL    = "GITHUB_API_URL"
	EnvUserAgent = "USER_AGENT"
	EnvRedisURL  = "REDIS_URL"
	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
)

// GitHubConfig configures the API client.
type GitHubConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Token     string        `yaml:"token"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

// RedisConfig configures the shared rate limit store. An empty Addr disables it.
type RedisConfig struct {
	Addr string `yaml:"addr"`
}

// ServerConfig configures the board server.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// Config is the complete board configuration.
type Config struct {
	Issues     issues.Config     `yaml:"issues"`
	GitHub     GitHubConfig      `yaml:"github"`
	Redis      RedisConfig       `yaml:"redis"`
	Server     ServerConfig      `yaml:"server"`
	Pagination pagination.Config `yaml:"pagination"`
	Logging    logging.Config    `yaml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Issues: issues.DefaultConfig(),
		GitHub: GitHubConfig{
			BaseURL:   client.DefaultBaseURL,
			UserAgent: DefaultUserAgent,
		},
		Server:     ServerConfig{Port: "8080"},
		Pagination: pagination.DefaultConfig(),
		Logging:    logging.Config{Level: logging.LevelInfo},
	}
}

// Load reads path over the defaults, applies the environment and validates.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides fields from set environment variables.
func (c *Config) ApplyEnv() {
	setFromEnv(&c.Issues.Owner, EnvOwner)
	setFromEnv(&c.GitHub.Token, EnvToken)
	setFromEnv(&c.GitHub.BaseURL, EnvAPIURL)
	setFromEnv(&c.GitHub.UserAgent, EnvUserAgent)
	setFromEnv(&c.Redis.Addr, EnvRedisURL)
	setFromEnv(&c.Server.Port, EnvPort)

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = logging.LogLevel(v)
	}
}

func setFromEnv(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Issues.Validate(); err != nil {
		return fmt.Errorf("issues: %w", err)
	}
	if err := c.Pagination.Validate(); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if c.GitHub.UserAgent == "" {
		return fmt.Errorf("github: user_agent is required")
	}
	u, err := url.Parse(c.GitHub.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("github: base_url must be an http or https URL (got %q)", c.GitHub.BaseURL)
	}
	if c.GitHub.Timeout < 0 {
		return fmt.Errorf("github: timeout must be >= 0 (got %s)", c.GitHub.Timeout)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server: port is required")
	}
	return nil
}

// ClientConfig builds the API client configuration.
func (c Config) ClientConfig() client.Config {
	cfg := client.DefaultConfig(nil, c.GitHub.UserAgent)
	cfg.BaseURL = c.GitHub.BaseURL
	cfg.Token = c.GitHub.Token
	cfg.Timeout = c.GitHub.Timeout
	return cfg
}
