// Package config loads tickerwise configuration from the process environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the tickerwise assistant.
type Config struct {
	// API keys for external services
	OpenAIAPIKey       string `mapstructure:"openai_api_key"`
	AlphavantageAPIKey string `mapstructure:"alphavantage_api_key"`

	// Base URLs for API endpoints (configurable for testing)
	OpenAIBaseURL       string `mapstructure:"openai_base_url"`
	AlphavantageBaseURL string `mapstructure:"alphavantage_base_url"`

	// Models
	ChatModel      string `mapstructure:"chat_model"`
	EmbeddingModel string `mapstructure:"embedding_model"`

	// VectorDBPath is the sqlite-vec database path for the semantic index.
	// Empty means the index is held in process memory and rebuilt at startup.
	VectorDBPath string `mapstructure:"vector_db_path"`

	// Server
	ListenAddr string `mapstructure:"listen_addr"`

	// Optional data overrides (YAML files); empty means built-in defaults.
	SymbolsFile  string `mapstructure:"symbols_file"`
	KeywordsFile string `mapstructure:"keywords_file"`

	// Logging
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration from environment variables.
//
// Required environment variables:
//   - OPENAI_API_KEY
//   - ALPHAVANTAGE_API_KEY
//
// Optional environment variables:
//   - OPENAI_BASE_URL, ALPHAVANTAGE_BASE_URL
//   - CHAT_MODEL, EMBEDDING_MODEL
//   - VECTOR_DB_PATH
//   - LISTEN_ADDR
//   - SYMBOLS_FILE, KEYWORDS_FILE
//   - DEBUG, LOG_LEVEL
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("openai_base_url", "https://api.openai.com")
	v.SetDefault("alphavantage_base_url", "https://www.alphavantage.co/query")
	v.SetDefault("chat_model", "gpt-4o-mini")
	v.SetDefault("embedding_model", "text-embedding-3-small")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("log_level", "info")

	v.BindEnv("openai_api_key", "OPENAI_API_KEY")
	v.BindEnv("alphavantage_api_key", "ALPHAVANTAGE_API_KEY")
	v.BindEnv("openai_base_url", "OPENAI_BASE_URL")
	v.BindEnv("alphavantage_base_url", "ALPHAVANTAGE_BASE_URL")
	v.BindEnv("chat_model", "CHAT_MODEL")
	v.BindEnv("embedding_model", "EMBEDDING_MODEL")
	v.BindEnv("vector_db_path", "VECTOR_DB_PATH")
	v.BindEnv("listen_addr", "LISTEN_ADDR")
	v.BindEnv("symbols_file", "SYMBOLS_FILE")
	v.BindEnv("keywords_file", "KEYWORDS_FILE")
	v.BindEnv("debug", "DEBUG")
	v.BindEnv("log_level", "LOG_LEVEL")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var missing []string
	if config.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if config.AlphavantageAPIKey == "" {
		missing = append(missing, "ALPHAVANTAGE_API_KEY")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return config, nil
}
