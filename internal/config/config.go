package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL     string        `mapstructure:"API_BASE_URL"`
	Env            string        `mapstructure:"ENV"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	HTTPTimeout    time.Duration `mapstructure:"HTTP_TIMEOUT"`
	TokenFile      string        `mapstructure:"TOKEN_FILE"`
	SampleFallback bool          `mapstructure:"SAMPLE_FALLBACK"`
	SandboxPort    string        `mapstructure:"SANDBOX_PORT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("API_BASE_URL", "http://localhost:8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_TIMEOUT", "15s")
	v.SetDefault("SAMPLE_FALLBACK", true)
	v.SetDefault("SANDBOX_PORT", "8000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("API_BASE_URL")
	v.BindEnv("ENV")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("HTTP_TIMEOUT")
	v.BindEnv("TOKEN_FILE")
	v.BindEnv("SAMPLE_FALLBACK")
	v.BindEnv("SANDBOX_PORT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.TokenFile == "" {
		cfg.TokenFile = defaultTokenFile()
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is usable before any request is
// issued. API_BASE_URL must parse as an absolute http(s) URL and the HTTP
// timeout must be positive.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("API_BASE_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API_BASE_URL must be http or https, got %q", c.APIBaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("API_BASE_URL is missing a host: %q", c.APIBaseURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}

// defaultTokenFile places the token under the user config dir, falling back
// to the working directory when the home lookup fails.
func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".healthtrack-token"
	}
	return filepath.Join(dir, "healthtrack", "token")
}
