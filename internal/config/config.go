package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. The ETF catalog and advice
// thresholds are fixed in code and not part of it.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Schedule struct {
		DigestCron string `yaml:"digest_cron"`
	} `yaml:"schedule"`
	Export struct {
		CSVDir string `yaml:"csv_dir"`
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"export"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	// .env is optional
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("DIGEST_CRON"); v != "" {
		cfg.Schedule.DigestCron = v
	}
	if v := os.Getenv("CSV_DIR"); v != "" {
		cfg.Export.CSVDir = v
	}
	if v := os.Getenv("EXPORT_DRIVER"); v != "" {
		cfg.Export.Driver = v
	}
	if v := os.Getenv("EXPORT_DSN"); v != "" {
		cfg.Export.DSN = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Schedule.DigestCron == "" {
		// weekdays after the TWSE close
		cfg.Schedule.DigestCron = "0 0 15 * * 1-5"
	}
	if cfg.Export.CSVDir == "" {
		cfg.Export.CSVDir = "data"
	}
	if cfg.Export.Driver == "" && cfg.Export.DSN != "" {
		cfg.Export.Driver = "sqlite"
	}
}

// BotMode reports whether Telegram is configured.
func (c *Config) BotMode() bool {
	return c.Telegram.BotToken != ""
}

// Validate checks that the configured values are consistent.
func (c *Config) Validate() error {
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when telegram.bot_token is set")
	}
	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow).Parse(c.Schedule.DigestCron); err != nil {
		return fmt.Errorf("schedule.digest_cron: %w", err)
	}
	switch c.Export.Driver {
	case "", "sqlite", "pgx":
	default:
		return fmt.Errorf("export.driver must be sqlite or pgx, got %q", c.Export.Driver)
	}
	if c.Export.Driver != "" && c.Export.DSN == "" {
		return fmt.Errorf("export.dsn is required when export.driver is set")
	}
	return nil
}
