package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// MaxHistoryDays is the largest window callers may request.
const MaxHistoryDays = 365

// Config holds all application configuration.
type Config struct {
	Provider struct {
		URL       string        `yaml:"url"`
		UserAgent string        `yaml:"user_agent"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"provider"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	History struct {
		DefaultDays int `yaml:"default_days"`
		MaxDays     int `yaml:"max_days"`
	} `yaml:"history"`
	Render struct {
		Timezone    string `yaml:"timezone"`
		ChartDays   int    `yaml:"chart_days"`
		ChartWidth  int    `yaml:"chart_width"`
		ChartHeight int    `yaml:"chart_height"`
		GaugeSize   int    `yaml:"gauge_size"`
	} `yaml:"render"`
	Output struct {
		HistoryFile string `yaml:"history_file"`
		ChartFile   string `yaml:"chart_file"`
		GaugeFile   string `yaml:"gauge_file"`
	} `yaml:"output"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults cover every field.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FGI_PROVIDER_URL"); v != "" {
		cfg.Provider.URL = v
	}
	if v := os.Getenv("FGI_USER_AGENT"); v != "" {
		cfg.Provider.UserAgent = v
	}
	if v := os.Getenv("FGI_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("PORT"); v != "" && cfg.Server.Addr == "" {
		cfg.Server.Addr = ":" + v
	}
	if v := os.Getenv("FGI_TIMEZONE"); v != "" {
		cfg.Render.Timezone = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("FGI_DEFAULT_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.History.DefaultDays = days
		}
	}

	// Defaults
	if cfg.Provider.Timeout == 0 {
		cfg.Provider.Timeout = 30 * time.Second
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8000"
	}
	if cfg.History.DefaultDays == 0 {
		cfg.History.DefaultDays = 90
	}
	if cfg.History.MaxDays == 0 {
		cfg.History.MaxDays = MaxHistoryDays
	}
	if cfg.Render.Timezone == "" {
		cfg.Render.Timezone = "Asia/Seoul"
	}
	if cfg.Render.ChartDays == 0 {
		cfg.Render.ChartDays = 90
	}
	if cfg.Render.ChartWidth == 0 {
		cfg.Render.ChartWidth = 300
	}
	if cfg.Render.ChartHeight == 0 {
		cfg.Render.ChartHeight = 200
	}
	if cfg.Render.GaugeSize == 0 {
		cfg.Render.GaugeSize = 200
	}
	if cfg.Output.HistoryFile == "" {
		cfg.Output.HistoryFile = "data/score_history.json"
	}
	if cfg.Output.ChartFile == "" {
		cfg.Output.ChartFile = "gen_data/fear_greed_graph.png"
	}
	if cfg.Output.GaugeFile == "" {
		cfg.Output.GaugeFile = "gen_data/fear_greed_score.png"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 0 * * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/feargreed.db"
	}

	return cfg, nil
}

// Validate checks ranges and that the timezone can be loaded.
func (c *Config) Validate() error {
	if c.History.MaxDays < 1 || c.History.MaxDays > MaxHistoryDays {
		return fmt.Errorf("history.max_days must be in 1..%d", MaxHistoryDays)
	}
	if c.History.DefaultDays < 1 || c.History.DefaultDays > c.History.MaxDays {
		return fmt.Errorf("history.default_days must be in 1..%d", c.History.MaxDays)
	}
	if c.Render.ChartDays < 1 || c.Render.ChartDays > c.History.MaxDays {
		return fmt.Errorf("render.chart_days must be in 1..%d", c.History.MaxDays)
	}
	if c.Render.ChartWidth <= 0 || c.Render.ChartHeight <= 0 || c.Render.GaugeSize <= 0 {
		return fmt.Errorf("render sizes must be positive")
	}
	if c.Provider.Timeout < 0 {
		return fmt.Errorf("provider.timeout must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// Location loads the configured render timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Render.Timezone)
	if err != nil {
		return nil, fmt.Errorf("render.timezone %q: %w", c.Render.Timezone, err)
	}
	return loc, nil
}

// TelegramEnabled reports whether refresh notifications should be sent.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
