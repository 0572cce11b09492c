package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds server settings. Values come from an optional YAML file and
// are overridden by environment variables.
type Config struct {
	Port          string        `yaml:"port"`
	AudioDir      string        `yaml:"audio_dir"`
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	AttachTTL     time.Duration `yaml:"attach_ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
	LogLevel      string        `yaml:"log_level"`
	LogFormat     string        `yaml:"log_format"`
	AllowedOrigin string        `yaml:"cors_allowed_origins"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Port:          "8080",
		AudioDir:      "public/audio",
		JWTSecret:     "super-secret-key-change-in-production",
		TokenTTL:      24 * time.Hour,
		SessionTTL:    2 * time.Hour,
		AttachTTL:     5 * time.Minute,
		SweepInterval: 5 * time.Minute,
		LogLevel:      "info",
		LogFormat:     "json",
		AllowedOrigin: "*",
	}
}

// Load reads CONFIG_FILE if set, then applies environment overrides
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.AudioDir = getEnv("AUDIO_DIR", c.AudioDir)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.AllowedOrigin = getEnv("CORS_ALLOWED_ORIGINS", c.AllowedOrigin)

	var err error
	if c.TokenTTL, err = getDuration("TOKEN_TTL", c.TokenTTL); err != nil {
		return err
	}
	if c.SessionTTL, err = getDuration("SESSION_TTL", c.SessionTTL); err != nil {
		return err
	}
	if c.AttachTTL, err = getDuration("ATTACH_TTL", c.AttachTTL); err != nil {
		return err
	}
	if c.SweepInterval, err = getDuration("SWEEP_INTERVAL", c.SweepInterval); err != nil {
		return err
	}
	return nil
}

// Validate checks that the settings are usable
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required (set JWT_SECRET)")
	}
	if c.TokenTTL <= 0 || c.SessionTTL <= 0 || c.AttachTTL <= 0 || c.SweepInterval <= 0 {
		return fmt.Errorf("token_ttl, session_ttl, attach_ttl and sweep_interval must be positive")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log format must be json or console, got %q", c.LogFormat)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
