// Package config handles configuration loading for insiderfetch.
// It supports YAML config files, a .env file, and environment variable
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "INSIDERFETCH"

// Config represents the complete application configuration.
type Config struct {
	SEC     SECConfig     `mapstructure:"sec"     yaml:"sec"`
	Fetch   FetchConfig   `mapstructure:"fetch"   yaml:"fetch"`
	Export  ExportConfig  `mapstructure:"export"  yaml:"export"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// SECConfig holds EDGAR endpoint and client settings.
type SECConfig struct {
	// SEC fair-access policy requires a descriptive User-Agent with a contact address.
	UserAgent      string        `mapstructure:"user_agent"      yaml:"user_agent"`
	TickersURL     string        `mapstructure:"tickers_url"     yaml:"tickers_url"`
	SubmissionsURL string        `mapstructure:"submissions_url" yaml:"submissions_url"`
	ArchivesURL    string        `mapstructure:"archives_url"    yaml:"archives_url"`
	Timeout        time.Duration `mapstructure:"timeout"         yaml:"timeout"` // 0 disables
}

// FetchConfig holds filing selection settings.
type FetchConfig struct {
	FormType        string        `mapstructure:"form_type"        yaml:"form_type"`
	MaxCandidates   int           `mapstructure:"max_candidates"   yaml:"max_candidates"`
	DefaultDays     int           `mapstructure:"default_days"     yaml:"default_days"`
	RequestInterval time.Duration `mapstructure:"request_interval" yaml:"request_interval"`
}

// ExportConfig holds output file settings.
type ExportConfig struct {
	Dir    string `mapstructure:"dir"    yaml:"dir"`
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
	Format string `mapstructure:"format" yaml:"format"` // "csv" or "xlsx"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "pretty" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml
//  2. ~/.insiderfetch/config.yaml
//  3. /etc/insiderfetch/config.yaml
//
// A .env file in the working directory is loaded first; it never overrides
// variables already set. Environment variables override config file values.
// Format: INSIDERFETCH_<SECTION>_<KEY>, e.g., INSIDERFETCH_SEC_USER_AGENT
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".insiderfetch"))
	v.AddConfigPath("/etc/insiderfetch")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return decode(v)
}

// Validate checks values the fetch pipeline cannot run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SEC.UserAgent) == "" {
		return errors.New("sec.user_agent must not be empty")
	}
	if c.SEC.TickersURL == "" || c.SEC.SubmissionsURL == "" || c.SEC.ArchivesURL == "" {
		return errors.New("sec endpoint URLs must not be empty")
	}
	if c.Fetch.FormType == "" {
		return errors.New("fetch.form_type must not be empty")
	}
	if c.Fetch.MaxCandidates <= 0 {
		return fmt.Errorf("fetch.max_candidates must be positive, got %d", c.Fetch.MaxCandidates)
	}
	if c.Fetch.DefaultDays <= 0 {
		return fmt.Errorf("fetch.default_days must be positive, got %d", c.Fetch.DefaultDays)
	}
	switch c.Export.Format {
	case "csv", "xlsx":
	default:
		return fmt.Errorf("export.format must be csv or xlsx, got %q", c.Export.Format)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// SEC EDGAR
	v.SetDefault("sec.user_agent", "insiderfetch/1.0 (contact: admin@example.com)")
	v.SetDefault("sec.tickers_url", "https://www.sec.gov/files/company_tickers.json")
	v.SetDefault("sec.submissions_url", "https://data.sec.gov/submissions")
	v.SetDefault("sec.archives_url", "https://www.sec.gov/Archives/edgar/data")
	v.SetDefault("sec.timeout", 30*time.Second)

	// Fetch
	v.SetDefault("fetch.form_type", "4")
	v.SetDefault("fetch.max_candidates", 50)
	v.SetDefault("fetch.default_days", 90)
	v.SetDefault("fetch.request_interval", 100*time.Millisecond)

	// Export
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.prefix", "insider_transactions")
	v.SetDefault("export.format", "csv")

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "pretty")
}

// loadDotEnv loads ./.env if present. A missing file is not an error.
func loadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("error loading .env: %w", err)
	}
	return nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
