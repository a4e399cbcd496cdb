// Package config loads ghdash settings.
//
// Sources, lowest precedence first:
//
//  1. Built-in defaults ([Default])
//  2. An optional TOML file (--config ghdash.toml)
//  3. .env files, which only fill variables not already set
//  4. Process environment, read as GHDASH_<NAME> or plain <NAME>
//     (e.g. GHDASH_GITHUB_TOKEN or GITHUB_TOKEN)
//
// Secrets (the GitHub token and the session secret) are read from the
// environment only; a config file that sets them is rejected.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultPrefix is the environment variable prefix.
const DefaultPrefix = "GHDASH"

// Config holds every ghdash setting.
type Config struct {
	// Server
	Addr          string        `toml:"addr" envconfig:"ADDR" validate:"required"`
	ShutdownGrace time.Duration `toml:"shutdown_grace" envconfig:"SHUTDOWN_GRACE" validate:"gt=0"`

	// Logging
	LogLevel  string `toml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat string `toml:"log_format" envconfig:"LOG_FORMAT" validate:"oneof=text json logfmt"`

	// GitHub
	GitHubAPIURL     string        `toml:"github_api_url" envconfig:"GITHUB_API_URL" validate:"required,url"`
	GitHubGraphQLURL string        `toml:"github_graphql_url" envconfig:"GITHUB_GRAPHQL_URL" validate:"omitempty,url"`
	GitHubToken      string        `toml:"-" envconfig:"GITHUB_TOKEN"`
	RequireToken     bool          `toml:"require_token" envconfig:"REQUIRE_TOKEN"`
	HTTPTimeout      time.Duration `toml:"http_timeout" envconfig:"HTTP_TIMEOUT" validate:"gt=0"`
	RateLimit        int           `toml:"rate_limit" envconfig:"RATE_LIMIT" validate:"gte=0"` // requests per minute, 0 = unlimited

	// Sessions
	SessionSecret string `toml:"-" envconfig:"SESSION_SECRET"`

	// Cache
	CacheBackend string        `toml:"cache_backend" envconfig:"CACHE_BACKEND" validate:"oneof=memory redis none"`
	CacheTTL     time.Duration `toml:"cache_ttl" envconfig:"CACHE_TTL" validate:"gt=0"`
	RedisURL     string        `toml:"redis_url" envconfig:"REDIS_URL" validate:"required_if=CacheBackend redis"`
	RedisPrefix  string        `toml:"redis_prefix" envconfig:"REDIS_PREFIX"`

	// Dashboard
	TopRepos int `toml:"top_repos" envconfig:"TOP_REPOS" validate:"gt=0"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:          ":8080",
		ShutdownGrace: 10 * time.Second,
		LogLevel:      "info",
		LogFormat:     "text",
		GitHubAPIURL:  "https://api.github.com",
		HTTPTimeout:   10 * time.Second,
		CacheBackend:  "memory",
		CacheTTL:      5 * time.Minute,
		RedisPrefix:   "ghdash:",
		TopRepos:      5,
	}
}

// Loader reads a Config from its sources.
type Loader struct {
	Prefix   string
	File     string   // optional TOML file
	DotEnv   []string // .env files to read if present
	Validate *validator.Validate

	loaded []string
}

// NewLoader creates a Loader for the given environment prefix.
func NewLoader(prefix string) *Loader {
	return &Loader{
		Prefix:   prefix,
		DotEnv:   dotEnvFiles(),
		Validate: validator.New(),
	}
}

// Load reads and validates the configuration.
func (l *Loader) Load() (Config, error) {
	cfg := Default()
	l.loaded = nil

	if l.File != "" {
		md, err := toml.DecodeFile(l.File, &cfg)
		if err != nil {
			return cfg, fmt.Errorf("config file: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return cfg, fmt.Errorf("config file %s: unknown keys: %s", l.File, strings.Join(keys, ", "))
		}
		l.loaded = append(l.loaded, l.File)
	}

	for _, f := range l.DotEnv {
		if !fileExists(f) {
			continue
		}
		// Load never overrides variables that are already set.
		if err := godotenv.Load(f); err != nil {
			return cfg, fmt.Errorf("dotenv %s: %w", f, err)
		}
		l.loaded = append(l.loaded, f)
	}

	if err := envconfig.Process(l.Prefix, &cfg); err != nil {
		return cfg, fmt.Errorf("env load: %w", err)
	}

	if err := l.Validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return cfg, fmt.Errorf("config validation: %s failed %q", f.Field(), f.Tag())
		}
		return cfg, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Loaded lists the files the last Load read.
func (l *Loader) Loaded() []string {
	return l.loaded
}

// dotEnvFiles returns .env plus .env.<APP_ENV> when APP_ENV is set.
func dotEnvFiles() []string {
	files := []string{".env"}
	if appEnv := strings.TrimSpace(os.Getenv("APP_ENV")); appEnv != "" {
		files = append(files, ".env."+appEnv)
	}
	return files
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
