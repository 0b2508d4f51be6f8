package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	AI       AIConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings for the insight store.
type DatabaseConfig struct {
	Path string
}

// AIConfig selects and credentials the text-generation provider.
// An empty provider or missing key is not an error; the engine simply
// runs its deterministic policies.
type AIConfig struct {
	Provider       string // "openai" | "anthropic" | "" (disabled)
	APIKeyEnv      string
	APIKey         string
	Model          string
	TimeoutSeconds int
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// Timeout returns the provider request timeout as a duration.
func (a AIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Load reads configuration from file and env. Env var overrides use prefix
// PENNYWISE_, e.g. PENNYWISE_AI_PROVIDER=anthropic.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "pennywise", "pennywise.db"))
	v.SetDefault("ai.provider", "")
	v.SetDefault("ai.api_key_env", "")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PENNYWISE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "pennywise"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PENNYWISE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// config file is optional
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// APIKeyEnvName returns the env var to consult for the provider key,
// defaulting per provider when unset.
func (a AIConfig) APIKeyEnvName() string {
	if env := strings.TrimSpace(a.APIKeyEnv); env != "" {
		return env
	}
	switch strings.ToLower(strings.TrimSpace(a.Provider)) {
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}
