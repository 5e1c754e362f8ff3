// Package config loads process configuration once at startup.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values.
type Config struct {
	LLM        LLMConfig
	ServerAddr string
	LogLevel   string
}

// LLMConfig selects and authenticates the text service.
type LLMConfig struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

var defaultModels = map[string]string{
	"gemini":   "gemini-2.0-flash",
	"openai":   "gpt-4o-mini",
	"deepseek": "deepseek-chat",
	"mock":     "mock",
}

var knownProviders = map[string]bool{
	"gemini":   true,
	"openai":   true,
	"deepseek": true,
	"azure":    true,
	"mock":     true,
}

// Load reads an optional .env file, an optional JSON config file at path,
// and TURING_* environment variables (which win over the file).
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TURING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("llm.api_key", "TURING_LLM_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return Config{}, err
	}

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.timeout", "0s")
	v.SetDefault("server_addr", ":8080")
	v.SetDefault("log_level", "info")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	timeout, err := time.ParseDuration(v.GetString("llm.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid llm timeout: %w", err)
	}

	cfg := Config{
		LLM: LLMConfig{
			Provider: strings.ToLower(strings.TrimSpace(v.GetString("llm.provider"))),
			Model:    strings.TrimSpace(v.GetString("llm.model")),
			APIKey:   strings.TrimSpace(v.GetString("llm.api_key")),
			BaseURL:  strings.TrimSpace(v.GetString("llm.base_url")),
			Timeout:  timeout,
		},
		ServerAddr: v.GetString("server_addr"),
		LogLevel:   strings.ToLower(v.GetString("log_level")),
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultModels[cfg.LLM.Provider]
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields every mode needs.
func (c Config) Validate() error {
	if !knownProviders[c.LLM.Provider] {
		return fmt.Errorf("llm provider %q not supported", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm model is required for provider %s", c.LLM.Provider)
	}
	if c.LLM.Provider != "mock" && c.LLM.APIKey == "" {
		return fmt.Errorf("api key missing; set TURING_LLM_API_KEY")
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm timeout must not be negative")
	}
	if c.ServerAddr == "" {
		return fmt.Errorf("server address cannot be empty")
	}
	return nil
}
