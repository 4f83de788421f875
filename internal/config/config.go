// Package config loads Prahar settings from an optional YAML file,
// PRAHAR_* environment variables and a local .env file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable key.
const EnvPrefix = "PRAHAR"

// Config holds all runtime settings.
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	Log    LogConfig    `mapstructure:"log"`
	LLM    LLMConfig    `mapstructure:"llm"`
}

// APIConfig configures the quiz client's backend connection.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig configures the scoring service.
type ServerConfig struct {
	Addr        string          `mapstructure:"addr"`
	Mode        string          `mapstructure:"mode"` // "debug" or "release"
	CORSOrigins []string        `mapstructure:"cors_origins"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig is a per-client token bucket: Requests per Window.
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// DBConfig locates the result ledger. An empty Path means the default
// XDG location.
type DBConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// LLMConfig selects and configures the optional narrator provider.
// An empty Provider disables the narrator.
type LLMConfig struct {
	Provider   string         `mapstructure:"provider"`
	Anthropic  ProviderConfig `mapstructure:"anthropic"`
	OpenAI     ProviderConfig `mapstructure:"openai"`
	Gemini     ProviderConfig `mapstructure:"gemini"`
	OpenRouter ProviderConfig `mapstructure:"openrouter"`
	Timeout    time.Duration  `mapstructure:"timeout"`
	Retry      RetryConfig    `mapstructure:"retry"`
}

// ProviderConfig holds credentials and model selection for one provider.
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// RetryConfig configures exponential backoff for LLM calls.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// Default returns a Config with every default applied.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:5001",
			Timeout: 10 * time.Second,
		},
		Server: ServerConfig{
			Addr: ":5001",
			Mode: "release",
			CORSOrigins: []string{
				"http://localhost:3000",
			},
			RateLimit: RateLimitConfig{
				Requests: 60,
				Window:   time.Minute,
			},
		},
		Log: LogConfig{
			Level: "info",
		},
		LLM: LLMConfig{
			Anthropic:  ProviderConfig{Model: "claude-haiku"},
			OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
			Gemini:     ProviderConfig{Model: "gemini-flash"},
			OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-exp"},
			Timeout:    15 * time.Second,
			Retry: RetryConfig{
				MaxAttempts: 3,
				InitialWait: time.Second,
				MaxWait:     10 * time.Second,
				Multiplier:  2.0,
			},
		},
	}
}

// Load reads configuration. path may name a YAML file or be empty, in which
// case prahar.yaml is looked up in the working directory and the user
// config directory. A missing file is not an error.
func Load(path string) (Config, error) {
	// .env only fills variables that are not already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("prahar")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "prahar"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.cors_origins", d.Server.CORSOrigins)
	v.SetDefault("server.rate_limit.requests", d.Server.RateLimit.Requests)
	v.SetDefault("server.rate_limit.window", d.Server.RateLimit.Window)

	v.SetDefault("db.path", d.DB.Path)

	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)

	v.SetDefault("llm.provider", d.LLM.Provider)
	for name, p := range map[string]ProviderConfig{
		"anthropic":  d.LLM.Anthropic,
		"openai":     d.LLM.OpenAI,
		"gemini":     d.LLM.Gemini,
		"openrouter": d.LLM.OpenRouter,
	} {
		v.SetDefault("llm."+name+".api_key", p.APIKey)
		v.SetDefault("llm."+name+".model", p.Model)
		v.SetDefault("llm."+name+".base_url", p.BaseURL)
	}
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.retry.max_attempts", d.LLM.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.LLM.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.LLM.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.LLM.Retry.Multiplier)
}

// Validate rejects settings that would fail later in confusing ways.
func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.Server.RateLimit.Requests <= 0 || c.Server.RateLimit.Window <= 0 {
		return fmt.Errorf("server.rate_limit requires positive requests and window")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown server.mode: %q", c.Server.Mode)
	}
	switch c.LLM.Provider {
	case "", "anthropic", "openai", "gemini", "openrouter", "mock":
	default:
		return fmt.Errorf("unknown llm.provider: %q", c.LLM.Provider)
	}
	return nil
}
