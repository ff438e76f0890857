package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Push     PushConfig     `yaml:"push"`
	Reminder ReminderConfig `yaml:"reminder"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// ScheduleConfig holds the tunables of the cleaning-schedule optimizer.
// Season boundaries are "MM-DD" strings resolved against the requested year.
type ScheduleConfig struct {
	GapThresholdNights int    `yaml:"gap_threshold_nights"`
	LookbackDays       int    `yaml:"lookback_days"`
	SeasonOpen         string `yaml:"season_open"`
	SeasonClose        string `yaml:"season_close"`
	Timezone           string `yaml:"timezone"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// ReminderConfig holds the configuration for the daily reminder loop.
type ReminderConfig struct {
	Enabled         bool          `yaml:"enabled"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	Interval        time.Duration `yaml:"-"` // Ignored by YAML parser
	WorkerPoolSize  int           `yaml:"worker_pool_size"`
}

// SeasonWindow is the resolved [Start, End] range of one rental season.
type SeasonWindow struct {
	Start time.Time
	End   time.Time
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Schedule.GapThresholdNights <= 0 {
		cfg.Schedule.GapThresholdNights = 6
	}
	if cfg.Schedule.LookbackDays <= 0 {
		cfg.Schedule.LookbackDays = 14
	}
	if cfg.Schedule.SeasonOpen == "" {
		cfg.Schedule.SeasonOpen = "04-01"
	}
	if cfg.Schedule.SeasonClose == "" {
		cfg.Schedule.SeasonClose = "10-31"
	}
	if cfg.Schedule.Timezone == "" {
		cfg.Schedule.Timezone = "Europe/Rome"
	}
	if _, err := cfg.Schedule.Window(2000); err != nil {
		return nil, fmt.Errorf("invalid season boundaries: %w", err)
	}

	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.Reminder.IntervalSeconds <= 0 {
		cfg.Reminder.IntervalSeconds = 3600
	}
	cfg.Reminder.Interval = time.Duration(cfg.Reminder.IntervalSeconds) * time.Second
	if cfg.Reminder.WorkerPoolSize <= 0 {
		log.Printf("reminder.worker_pool_size is not set or invalid; defaulting to 1")
		cfg.Reminder.WorkerPoolSize = 1
	}

	return &cfg, nil
}

// Window resolves the configured season boundaries for a year. The returned
// dates are day-granular in UTC.
func (s *ScheduleConfig) Window(year int) (SeasonWindow, error) {
	open, err := parseMonthDay(s.SeasonOpen, year)
	if err != nil {
		return SeasonWindow{}, fmt.Errorf("season_open: %w", err)
	}
	close, err := parseMonthDay(s.SeasonClose, year)
	if err != nil {
		return SeasonWindow{}, fmt.Errorf("season_close: %w", err)
	}
	if !close.After(open) {
		return SeasonWindow{}, fmt.Errorf("season_close %q is not after season_open %q", s.SeasonClose, s.SeasonOpen)
	}
	return SeasonWindow{Start: open, End: close}, nil
}

func parseMonthDay(v string, year int) (time.Time, error) {
	t, err := time.Parse("01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("want MM-DD, got %q: %w", v, err)
	}
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
