package database

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DriverPostgres     = "postgres"
	DriverSQLite       = "sqlite"
	DriverSQLitePureGo = "sqlite-purego"
)

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// Driver specifies the database driver (postgres, sqlite, sqlite-purego)
	Driver string

	// URL is a full postgres connection URL; when set it wins over the discrete fields
	URL string

	// PostgreSQL-specific configuration
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	// SQLite-specific configuration
	Path string

	// Connection retry configuration
	MaxRetries int
	RetryDelay time.Duration
}

// String returns a string representation with sensitive data masked
func (c *DatabaseConfig) String() string {
	return fmt.Sprintf("DatabaseConfig{Driver: %s, URL: %s, Host: %s, Port: %s, User: %s, Password: [REDACTED], Name: %s, SSLMode: %s, Path: %s}",
		c.NormalizedDriver(), MaskURL(c.URL), c.Host, c.Port, c.User, c.Name, c.SSLMode, c.Path)
}

// NormalizedDriver lower-cases the driver name and resolves aliases
func (c *DatabaseConfig) NormalizedDriver() string {
	switch driver := strings.ToLower(strings.TrimSpace(c.Driver)); driver {
	case "postgres", "postgresql":
		return DriverPostgres
	case "sqlite", "sqlite3", "":
		return DriverSQLite
	case "sqlite-purego", "sqlite-go":
		return DriverSQLitePureGo
	default:
		return driver
	}
}

// DSN builds a Data Source Name string based on the driver
func (c *DatabaseConfig) DSN() string {
	switch c.NormalizedDriver() {
	case DriverPostgres:
		if c.URL != "" {
			return c.URL
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
	case DriverSQLite:
		// mattn/go-sqlite3 enables foreign keys per connection from the DSN
		return withQueryParam(c.Path, "_foreign_keys=on")
	case DriverSQLitePureGo:
		return withQueryParam(c.Path, "_pragma=foreign_keys(1)")
	default:
		return ""
	}
}

// IsInMemory reports whether the configuration points at an in-memory SQLite database
func (c *DatabaseConfig) IsInMemory() bool {
	if c.NormalizedDriver() == DriverPostgres {
		return false
	}
	return c.Path == ":memory:" || strings.Contains(c.Path, "mode=memory")
}

func withQueryParam(path, param string) string {
	if strings.Contains(path, param) {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&" + param
	}
	return path + "?" + param
}

// MaskURL masks the password in a database URL
func MaskURL(dbURL string) string {
	if dbURL == "" {
		return ""
	}

	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "[REDACTED_INVALID_URL]"
	}

	if parsed.User != nil {
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.UserPassword(parsed.User.Username(), "REDACTED")
		}
	}

	return parsed.String()
}
