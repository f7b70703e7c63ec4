package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultHTTPPort          = "8080"
	defaultReconcileSchedule = "@every 1m"
	defaultReconcileLookback = 15 * time.Minute
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Empty RedisAddr selects the in-process change feed and a local job lock.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel  string
	LogFormat string

	MetricsTimezone string
	PhoneRegion     string

	ReconcileSchedule string
	ReconcileLookback time.Duration
}

// LoadConfig reads the configuration through getenv, applying defaults for
// optional settings.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:          valueOr(getenv("HTTP_PORT"), defaultHTTPPort),
		DBHost:            getenv("DB_HOST"),
		DBPort:            valueOr(getenv("DB_PORT"), "5432"),
		DBUser:            getenv("DB_USER"),
		DBPassword:        getenv("DB_PASSWORD"),
		DBName:            getenv("DB_NAME"),
		DBSslMode:         valueOr(getenv("DB_SSLMODE"), "disable"),
		RedisAddr:         getenv("REDIS_ADDR"),
		RedisPassword:     getenv("REDIS_PASSWORD"),
		LogLevel:          valueOr(getenv("LOG_LEVEL"), "info"),
		LogFormat:         valueOr(getenv("LOG_FORMAT"), "json"),
		MetricsTimezone:   valueOr(getenv("METRICS_TIMEZONE"), "UTC"),
		PhoneRegion:       valueOr(getenv("PHONE_REGION"), "IN"),
		ReconcileSchedule: valueOr(getenv("RECONCILE_SCHEDULE"), defaultReconcileSchedule),
		ReconcileLookback: defaultReconcileLookback,
	}

	if raw := getenv("REDIS_DB"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, errors.Wrap(err, "REDIS_DB")
		}
		cfg.RedisDB = db
	}

	if raw := getenv("RECONCILE_LOOKBACK"); raw != "" {
		lookback, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, errors.Wrap(err, "RECONCILE_LOOKBACK")
		}
		if lookback <= 0 {
			return Config{}, errors.Errorf("RECONCILE_LOOKBACK must be positive, got %s", raw)
		}
		cfg.ReconcileLookback = lookback
	}

	if cfg.DBHost == "" || cfg.DBName == "" {
		return Config{}, errors.New("DB_HOST and DB_NAME are required")
	}

	return cfg, nil
}

// DSN renders the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Location resolves MetricsTimezone for calendar bucketing.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.MetricsTimezone)
	if err != nil {
		return nil, errors.Wrapf(err, "METRICS_TIMEZONE %q", c.MetricsTimezone)
	}
	return loc, nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
