// Package config loads the server configuration.
//
// Values are layered, lowest precedence first:
//  1. defaults (New)
//  2. a .env file in the working directory, if present
//  3. a YAML file named by CLUB_CONFIG, if set
//  4. process environment variables
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Sentinel error kinds for this package.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// Store drivers.
const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

// Config contains process configuration. Keys match the environment
// variable names, lower-cased.
type Config struct {
	// Port is the HTTP listen port.
	Port int `koanf:"port"`

	// Environment is the runtime environment; "production" switches the
	// session cookie to Secure + SameSite=None.
	Environment string `koanf:"app_env"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// JWTSecret signs session tokens. Required.
	JWTSecret string `koanf:"jwt_secret"`

	// StoreDriver selects the backend: "mongo" or "sqlite".
	StoreDriver string `koanf:"store_driver"`

	// MongoUser and MongoPassword are embedded in the connection string.
	MongoUser     string `koanf:"user_name"`
	MongoPassword string `koanf:"user_password"`
	MongoHost     string `koanf:"mongo_host"`
	MongoAppName  string `koanf:"mongo_app_name"`
	// MongoURI, when set, is used verbatim instead of building one.
	MongoURI string `koanf:"mongo_uri"`

	// DBName is the Mongo database holding the club collections.
	DBName string `koanf:"db_name"`

	// DBPath is the SQLite file used by the sqlite driver.
	DBPath string `koanf:"db_path"`

	// CORSOrigins is a comma-separated allow-list; empty allows any origin.
	CORSOrigins string `koanf:"cors_origins"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		Port:         5000,
		Environment:  "development",
		LogLevel:     "info",
		StoreDriver:  DriverMongo,
		MongoHost:    "cluster0.lfj8fm4.mongodb.net",
		MongoAppName: "Cluster0",
		DBName:       "AshirParFoodballClub",
		DBPath:       "data/club.db",
	}
}

// Validate checks the fields the server cannot start without.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("%w: JWT_SECRET must be at least 16 characters", ErrInvalidConfig)
	}
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" && (c.MongoUser == "" || c.MongoPassword == "") {
			return fmt.Errorf("%w: USER_NAME and USER_PASSWORD are required for the mongo driver", ErrInvalidConfig)
		}
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("%w: DB_PATH is required for the sqlite driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown STORE_DRIVER %q", ErrInvalidConfig, c.StoreDriver)
	}
	return nil
}

// MongoConnString returns MongoURI if set, otherwise an Atlas SRV string
// with the credentials escaped.
func (c *Config) MongoConnString() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(c.MongoUser, c.MongoPassword),
		Host:     c.MongoHost,
		Path:     "/",
		RawQuery: url.Values{"appName": {c.MongoAppName}}.Encode(),
	}
	return u.String()
}

// IsProduction reports whether the server runs in production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins splits CORSOrigins; nil means any origin.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
