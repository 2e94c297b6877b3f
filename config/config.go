package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/library-circulation-go/maintenance"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// Supported database drivers.
const (
	DriverPGX      = "pgx"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite3  = "sqlite3"
)

// Environment variables that override the file.
const (
	EnvDatabaseDriver = "CIRCULATION_DB_DRIVER"
	EnvDatabaseDSN    = "CIRCULATION_DB_DSN"
	EnvHTTPAddr       = "CIRCULATION_HTTP_ADDR"
	EnvLogLevel       = "CIRCULATION_LOG_LEVEL"
)

var (
	// ErrReadingConfigFailed is returned when the config file cannot be read or parsed.
	ErrReadingConfigFailed = errors.New("reading config failed")

	// ErrInvalidConfig is returned when a loaded config does not validate.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config is the complete daemon configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	HTTP      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
	Messages  MessagesConfig  `yaml:"messages"`
}

// DatabaseConfig selects the driver and tunes the connection pool.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	Migrate         bool          `yaml:"migrate"`
}

// SchedulerConfig sets the daily run times of the sweeps.
type SchedulerConfig struct {
	Enabled                    bool   `yaml:"enabled"`
	Location                   string `yaml:"location"`
	ExpireReservationsAt       string `yaml:"expire_reservations_at"`
	DetectOverdueLoansAt       string `yaml:"detect_overdue_loans_at"`
	CleanupStaleReservationsAt string `yaml:"cleanup_stale_reservations_at"`
}

// HTTPConfig configures the ops API.
type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig configures the daemon logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// MessagesConfig configures user-facing messages.
type MessagesConfig struct {
	Locale string `yaml:"locale"`
}

// Default returns a configuration that runs against a local SQLite file.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			Driver:          DriverSQLite3,
			DSN:             "file:circulation.db?_busy_timeout=5000",
			MaxOpenConns:    defaultMaxOpenConnections,
			MaxIdleConns:    defaultMaxIdleConnections,
			ConnMaxLifetime: defaultMaxConnLifetime,
			ConnMaxIdleTime: defaultMaxConnIdleTime,
			Migrate:         true,
		},
		Scheduler: SchedulerConfig{
			Enabled:                    true,
			Location:                   "UTC",
			ExpireReservationsAt:       "00:00",
			DetectOverdueLoansAt:       "01:00",
			CleanupStaleReservationsAt: "03:00",
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Messages: MessagesConfig{
			Locale: shell.DefaultLocale,
		},
	}
}

// Load reads the YAML file at path on top of Default, applies the environment overrides and validates the result.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Join(ErrReadingConfigFailed, err)
		}

		decoder := yaml.NewDecoder(bytes.NewReader(buf))
		decoder.KnownFields(true)

		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, errors.Join(ErrReadingConfigFailed, fmt.Errorf("%s: %w", path, err))
		}
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if value, ok := lookup(EnvDatabaseDriver); ok && value != "" {
		c.Database.Driver = value
	}

	if value, ok := lookup(EnvDatabaseDSN); ok && value != "" {
		c.Database.DSN = value
	}

	if value, ok := lookup(EnvHTTPAddr); ok && value != "" {
		c.HTTP.Addr = value
	}

	if value, ok := lookup(EnvLogLevel); ok && value != "" {
		c.Log.Level = value
	}
}

// Validate checks everything that would otherwise only fail at startup of the respective component.
func (c Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverPGX, DriverPostgres, DriverMySQL, DriverSQLite3:
	default:
		errs = append(errs, fmt.Errorf("database.driver %q is not supported", c.Database.Driver))
	}

	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn must not be empty"))
	}

	if _, err := c.Scheduler.TimeLocation(); err != nil {
		errs = append(errs, fmt.Errorf("scheduler.location: %w", err))
	}

	for name, value := range map[string]string{
		"scheduler.expire_reservations_at":        c.Scheduler.ExpireReservationsAt,
		"scheduler.detect_overdue_loans_at":       c.Scheduler.DetectOverdueLoansAt,
		"scheduler.cleanup_stale_reservations_at": c.Scheduler.CleanupStaleReservationsAt,
	} {
		if _, err := maintenance.ParseTimeOfDay(value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http.addr must not be empty"))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}

	return nil
}

// TimeLocation loads the configured time zone, UTC when empty.
func (s SchedulerConfig) TimeLocation() (*time.Location, error) {
	if s.Location == "" {
		return time.UTC, nil
	}

	return time.LoadLocation(s.Location)
}

// SlogLevel parses the configured level ("debug", "info", "warn", "error").
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(l.Level))

	return level, err
}
