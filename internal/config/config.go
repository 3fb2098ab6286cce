package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/franciscosanchezn/gin-pizza-catalog/internal/database"
	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(LevelForEnvironment(GetEnvWithDefault("APP_ENV", "development")))
}

// DefaultSecretKey is only acceptable outside production
const DefaultSecretKey = "dev-secret-key-change-me"

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Environment string `json:"environment"`
	Port        int    `json:"port"`
	Host        string `json:"host"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Security Configuration
	SecretKey    string `json:"secret_key"`
	CSRFEnabled  bool   `json:"csrf_enabled"`
	CookieSecure bool   `json:"cookie_secure"`

	// Database configuration
	Database     database.DatabaseConfig `json:"database"`
	SeedDatabase bool                    `json:"seed_database"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Environment: %s, Port: %d, Host: %s, LogLevel: %s, SecretKey: [REDACTED], CSRFEnabled: %t, CookieSecure: %t, Database: %s, SeedDatabase: %t}",
		c.Environment, c.Port, c.Host, c.LogLevel, c.CSRFEnabled, c.CookieSecure, c.Database.String(), c.SeedDatabase)
}

// Address returns the host:port pair the server listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// It validates the port, the optional DATABASE_URL and the secret key
// Returns an error if any environment variable is invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid APP_PORT: %d out of range", port)
	}

	dbURL := GetEnvWithDefault("DATABASE_URL", "")
	if dbURL != "" {
		if _, err := url.ParseRequestURI(dbURL); err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL format: %w", err)
		}
	}

	driver := GetEnvWithDefault("DB_DRIVER", database.DriverSQLite)
	if dbURL != "" {
		driver = database.DriverPostgres
	}

	config := &Config{
		Environment:  GetEnvWithDefault("APP_ENV", "development"),
		Port:         port,
		Host:         GetEnvWithDefault("APP_HOST", "localhost"),
		LogLevel:     GetEnvWithDefault("LOG_LEVEL", "info"),
		SecretKey:    GetEnvWithDefault("SECRET_KEY", DefaultSecretKey),
		CSRFEnabled:  GetEnvAsType("CSRF_ENABLED", true),
		CookieSecure: GetEnvAsType("COOKIE_SECURE", false),
		Database: database.DatabaseConfig{
			Driver:     driver,
			URL:        dbURL,
			Host:       GetEnvWithDefault("DB_HOST", "localhost"),
			Port:       GetEnvWithDefault("DB_PORT", "5432"),
			User:       GetEnvWithDefault("DB_USER", "pizza_user"),
			Password:   GetEnvWithDefault("DB_PASSWORD", ""),
			Name:       GetEnvWithDefault("DB_NAME", "pizza_order_db"),
			SSLMode:    GetEnvWithDefault("DB_SSLMODE", "disable"),
			Path:       GetEnvWithDefault("DB_PATH", "pizza.sqlite"),
			MaxRetries: GetEnvAsType("DB_MAX_RETRIES", 5),
			RetryDelay: time.Second,
		},
		SeedDatabase: GetEnvAsType("SEED_DATABASE", false),
	}

	if err := validate(config); err != nil {
		return nil, err
	}

	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

func validate(c *Config) error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY must not be empty")
	}
	if c.IsProduction() && c.SecretKey == DefaultSecretKey {
		return errors.New("SECRET_KEY must be set in production")
	}
	switch c.Database.NormalizedDriver() {
	case database.DriverPostgres, database.DriverSQLite, database.DriverSQLitePureGo:
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.Database.Driver)
	}
	return nil
}

// LevelForEnvironment maps APP_ENV to the default log level
func LevelForEnvironment(environment string) logrus.Level {
	switch strings.ToLower(environment) {
	case "development":
		return logrus.DebugLevel
	case "production":
		return logrus.ErrorLevel
	default:
		// Default to info level for other environments
		return logrus.InfoLevel
	}
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Debugf("Environment variable %s not set, using default value", key)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
