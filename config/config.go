// Package config provides configuration loading for the ArguMate backend.
// The configuration object is constructed once at process start and injected
// into every component that needs it; nothing reads the environment later.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Store backend names.
const (
	StoreSQLite = "sqlite"
	StoreNATS   = "nats"
	StoreMemory = "memory"
)

// Config is the complete backend configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	LLM    LLMConfig    `yaml:"llm"`
	Auth   AuthConfig   `yaml:"auth"`
	Store  StoreConfig  `yaml:"store"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Addr is the listen address (default ":8000").
	Addr string `yaml:"addr"`
}

// LLMConfig configures the outbound completion endpoints.
type LLMConfig struct {
	// Timeout bounds a single completion call.
	Timeout time.Duration `yaml:"timeout"`

	// OpenRouter is the OpenAI-compatible endpoint.
	OpenRouter EndpointConfig `yaml:"openrouter"`

	// Gemini is the Google generateContent endpoint.
	Gemini EndpointConfig `yaml:"gemini"`
}

// UnmarshalYAML accepts the timeout in Go duration syntax ("30s", "2m").
// yaml.v3 has no native time.Duration handling.
func (l *LLMConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Timeout    string         `yaml:"timeout"`
		OpenRouter EndpointConfig `yaml:"openrouter"`
		Gemini     EndpointConfig `yaml:"gemini"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("parse llm.timeout: %w", err)
		}
		l.Timeout = d
	}
	l.OpenRouter = raw.OpenRouter
	l.Gemini = raw.Gemini
	return nil
}

// EndpointConfig holds one provider endpoint. Credentials normally arrive
// via environment (ApplyEnv), not the config file.
type EndpointConfig struct {
	// URL overrides the provider default base URL (e.g. for mock-llm).
	URL string `yaml:"url"`
	// APIKey is the credential. Empty is allowed at startup; completion
	// calls then fail with a configuration error instead of a network one.
	APIKey string `yaml:"api_key"`
}

// AuthConfig configures identity verification.
type AuthConfig struct {
	// Secret is the HS256 signing secret for bearer tokens.
	Secret string `yaml:"secret"`
}

// StoreConfig configures the per-user document store.
type StoreConfig struct {
	// Backend selects the store implementation: sqlite, nats or memory.
	Backend string `yaml:"backend"`
	// Path is the SQLite database path (sqlite backend).
	Path string `yaml:"path"`
	// NATSURL is the NATS server URL (nats backend).
	NATSURL string `yaml:"nats_url"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8000",
		},
		LLM: LLMConfig{
			Timeout: 120 * time.Second,
		},
		Store: StoreConfig{
			Backend: StoreSQLite,
			Path:    "argumate.db",
		},
	}
}

// LoadFromFile loads configuration from a YAML file on top of defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// ApplyEnv overlays credentials and operational overrides from the
// environment. Credentials are env-only by policy.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		c.LLM.OpenRouter.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.LLM.Gemini.APIKey = v
	}
	if v := os.Getenv("AUTH_SECRET"); v != "" {
		c.Auth.Secret = v
	}
	if v := os.Getenv("ARGUMATE_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("ARGUMATE_STORE_BACKEND"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("ARGUMATE_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("ARGUMATE_NATS_URL"); v != "" {
		c.Store.NATSURL = v
	}
}

// Validate checks that the configuration can start a server. Missing LLM
// credentials are deliberately not a startup error: their absence surfaces
// as a configuration error on the first completion call.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be positive")
	}
	if c.Auth.Secret == "" {
		return fmt.Errorf("auth.secret is required (set AUTH_SECRET)")
	}

	switch c.Store.Backend {
	case StoreSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the sqlite backend")
		}
	case StoreNATS:
		if c.Store.NATSURL == "" {
			return fmt.Errorf("store.nats_url is required for the nats backend")
		}
	case StoreMemory:
		// nothing to validate
	default:
		return fmt.Errorf("unknown store.backend %q", c.Store.Backend)
	}

	return nil
}
