// Package config loads service configuration from the environment with an
// optional YAML overlay file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// maxTemperature caps sampling temperature to keep replies deterministic.
const maxTemperature = 0.7

// Config holds all service configuration.
type Config struct {
	Host    string `env:"TUTOR_HOST" envDefault:"127.0.0.1" yaml:"host"`
	Port    int    `env:"TUTOR_PORT" envDefault:"8000" yaml:"port"`
	Verbose bool   `env:"TUTOR_VERBOSE" yaml:"verbose"`

	// AllowedOrigin restricts inbound requests by Origin/Referer prefix when set.
	AllowedOrigin string `env:"ALLOWED_ORIGIN" yaml:"allowed_origin"`

	// Text generation provider.
	OpenAIKey       string        `env:"OPENAI_API_KEY" yaml:"openai_api_key"`
	OpenAIBaseURL   string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1" yaml:"openai_base_url"`
	Model           string        `env:"TUTOR_MODEL" envDefault:"gpt-4o-mini" yaml:"model"`
	TranscribeModel string        `env:"TUTOR_TRANSCRIBE_MODEL" envDefault:"whisper-1" yaml:"transcribe_model"`
	MaxOutputTokens int           `env:"TUTOR_MAX_OUTPUT_TOKENS" envDefault:"800" yaml:"max_output_tokens"`
	Temperature     float64       `env:"TUTOR_TEMPERATURE" envDefault:"0.2" yaml:"temperature"`
	UpstreamTimeout time.Duration `env:"TUTOR_UPSTREAM_TIMEOUT" envDefault:"2m" yaml:"upstream_timeout"`

	// Text-to-speech provider.
	ElevenKey     string `env:"ELEVEN_API_KEY" yaml:"eleven_api_key"`
	ElevenBaseURL string `env:"ELEVEN_BASE_URL" envDefault:"https://api.elevenlabs.io" yaml:"eleven_base_url"`
	DefaultVoice  string `env:"ELEVEN_VOICE_ID" envDefault:"alloy" yaml:"default_voice"`

	// Video-room token provider.
	DailyKey     string `env:"DAILY_API_KEY" yaml:"daily_api_key"`
	DailyBaseURL string `env:"DAILY_BASE_URL" envDefault:"https://api.daily.co" yaml:"daily_base_url"`

	// HistoryPath enables the server-side history store when set.
	HistoryPath string `env:"TUTOR_HISTORY_PATH" yaml:"history_path"`
}

// Load builds a Config from environment variables, then overlays values from
// the YAML file at path when one is given. File values win over environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MaxOutputTokens <= 0 {
		return fmt.Errorf("max_output_tokens must be positive, got %d", c.MaxOutputTokens)
	}
	if c.Temperature < 0 {
		c.Temperature = 0
	}
	if c.Temperature > maxTemperature {
		c.Temperature = maxTemperature
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("upstream_timeout must be positive, got %s", c.UpstreamTimeout)
	}
	return nil
}
