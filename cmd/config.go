package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env      string
	LogLevel string

	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string

	StorageDir     string
	StorageBaseURL string

	// NotifyChannel is the PostgreSQL channel order events are published on.
	// Empty means events are only logged.
	NotifyChannel       string
	ListenNotifications bool
	PaymentPollSchedule string
}

// DSN is the PostgreSQL connection string of the configured database.
func (c Config) DSN() string {
	return postgres.DSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads .env when present, then the environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("STORAGE_DIR", "./data/files")
	v.SetDefault("STORAGE_BASE_URL", "/api/v1/storage")
	v.SetDefault("NOTIFY_CHANNEL", "")
	v.SetDefault("LISTEN_NOTIFICATIONS", false)
	v.SetDefault("PAYMENT_POLL_SCHEDULE", jobs.DefaultPaymentPollSchedule)

	cfg := Config{
		Env:                 v.GetString("APP_ENV"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		HTTPPort:            v.GetString("HTTP_PORT"),
		DBHost:              v.GetString("DB_HOST"),
		DBPort:              v.GetString("DB_PORT"),
		DBUser:              v.GetString("DB_USER"),
		DBPassword:          v.GetString("DB_PASSWORD"),
		DBName:              v.GetString("DB_NAME"),
		DBSslMode:           v.GetString("DB_SSLMODE"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		StorageDir:          v.GetString("STORAGE_DIR"),
		StorageBaseURL:      v.GetString("STORAGE_BASE_URL"),
		NotifyChannel:       v.GetString("NOTIFY_CHANNEL"),
		ListenNotifications: v.GetBool("LISTEN_NOTIFICATIONS"),
		PaymentPollSchedule: v.GetString("PAYMENT_POLL_SCHEDULE"),
	}
	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	var errList []error
	if c.DBName == "" {
		errList = append(errList, errors.New("DB_NAME is required"))
	}
	if c.DBUser == "" {
		errList = append(errList, errors.New("DB_USER is required"))
	}
	if c.JWTSecret == "" {
		errList = append(errList, errors.New("JWT_SECRET is required"))
	}
	if c.ListenNotifications && c.NotifyChannel == "" {
		errList = append(errList, errors.New("LISTEN_NOTIFICATIONS needs NOTIFY_CHANNEL"))
	}
	return errors.Join(errList...)
}
