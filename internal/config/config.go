// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Monitoring    MonitoringConfig    `yaml:"monitoring"`
	Storage       StorageConfig       `yaml:"storage"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Bus           BusConfig           `yaml:"bus"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	// AdminTokenSecret enables HS256 bearer tokens on admin routes when set.
	AdminTokenSecret string `yaml:"admin_token_secret"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s pool_max_conns=%d",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode, d.PoolSize,
	)
}

// MonitoringConfig defines the evaluation schedule and per-user defaults.
type MonitoringConfig struct {
	CheckInterval       time.Duration `yaml:"check_interval"`
	CleanupInterval     time.Duration `yaml:"cleanup_interval"`
	RetentionDays       int           `yaml:"retention_days"`
	RunOnStart          *bool         `yaml:"run_on_start"`
	DefaultStorageLimit int64         `yaml:"default_storage_limit"` // bytes
	DefaultFileLimit    int           `yaml:"default_file_limit"`
	CPUSampleWindow     time.Duration `yaml:"cpu_sample_window"`
}

// StartEnabled reports whether the scheduler runs an evaluation pass as soon
// as it starts instead of waiting for the first interval.
func (m *MonitoringConfig) StartEnabled() bool {
	return m.RunOnStart == nil || *m.RunOnStart
}

// StorageConfig describes the file-storage backend of the host application.
// Disk sampling and disk alerts only apply to local storage.
type StorageConfig struct {
	Remote    bool   `yaml:"remote"`
	LocalPath string `yaml:"local_path"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled       bool          `yaml:"enabled"`
	WebhookURL    string        `yaml:"webhook_url"`
	Username      string        `yaml:"username"`
	AvatarURL     string        `yaml:"avatar_url"`
	Footer        string        `yaml:"footer"`
	Environment   string        `yaml:"environment"` // production, development
	Timeout       time.Duration `yaml:"timeout"`
	RatePerMinute int           `yaml:"rate_per_minute"`
}

// BusConfig defines optional event fan-out.
type BusConfig struct {
	NATS NATSConfig `yaml:"nats"`
}

// NATSConfig defines the NATS publisher settings.
type NATSConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse parses raw YAML config bytes, applying env expansion, defaults, and
// validation.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyMonitoringDefaults(&cfg.Monitoring)
	applyStorageDefaults(&cfg.Storage)
	applyDiscordDefaults(&cfg.Notifications.Discord)
	applyBusDefaults(&cfg.Bus)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyMonitoringDefaults(m *MonitoringConfig) {
	if m.CheckInterval == 0 {
		m.CheckInterval = 5 * time.Minute
	}
	if m.CleanupInterval == 0 {
		m.CleanupInterval = 24 * time.Hour
	}
	if m.RetentionDays == 0 {
		m.RetentionDays = 30
	}
	if m.DefaultStorageLimit == 0 {
		m.DefaultStorageLimit = 10_000_000_000
	}
	if m.DefaultFileLimit == 0 {
		m.DefaultFileLimit = 1000
	}
	if m.CPUSampleWindow == 0 {
		m.CPUSampleWindow = 500 * time.Millisecond
	}
}

func applyStorageDefaults(s *StorageConfig) {
	if s.LocalPath == "" {
		s.LocalPath = "/"
	}
}

func applyDiscordDefaults(d *DiscordConfig) {
	if d.Username == "" {
		d.Username = "Healthwatch"
	}
	if d.Footer == "" {
		d.Footer = "Healthwatch System Monitor"
	}
	if d.Environment == "" {
		d.Environment = "development"
	}
	if d.Timeout == 0 {
		d.Timeout = 10 * time.Second
	}
	if d.RatePerMinute == 0 {
		d.RatePerMinute = 30
	}
}

func applyBusDefaults(b *BusConfig) {
	if b.NATS.SubjectPrefix == "" {
		b.NATS.SubjectPrefix = "healthwatch.events"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, errors.New("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, errors.New("database.user is required"))
	}

	if cfg.Monitoring.CheckInterval < time.Second {
		errs = append(errs, fmt.Errorf(
			"monitoring.check_interval must be at least 1s (got %s)", cfg.Monitoring.CheckInterval,
		))
	}
	if cfg.Monitoring.CleanupInterval < time.Second {
		errs = append(errs, fmt.Errorf(
			"monitoring.cleanup_interval must be at least 1s (got %s)", cfg.Monitoring.CleanupInterval,
		))
	}
	if cfg.Monitoring.RetentionDays < 1 {
		errs = append(errs, fmt.Errorf(
			"monitoring.retention_days must be positive (got %d)", cfg.Monitoring.RetentionDays,
		))
	}

	// An enabled Discord block without a URL is a valid "disabled" state;
	// only a URL that is present but unparseable is rejected.
	if d := cfg.Notifications.Discord; d.Enabled && d.WebhookURL != "" {
		if u, err := url.Parse(d.WebhookURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf(
				"notifications.discord.webhook_url is not a valid URL (got %q)", d.WebhookURL,
			))
		}
	}
	if cfg.Notifications.Discord.RatePerMinute < 0 {
		errs = append(errs, errors.New("notifications.discord.rate_per_minute must not be negative"))
	}

	if cfg.Bus.NATS.Enabled && cfg.Bus.NATS.URL == "" {
		errs = append(errs, errors.New("bus.nats.url is required when bus.nats.enabled is true"))
	}

	return errors.Join(errs...)
}
