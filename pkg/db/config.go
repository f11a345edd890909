package db

import (
	"net"
	"net/url"
	"strconv"
	"time"
)

// Config holds PostgreSQL connection parameters.
// Values come from the YAML configuration files and may be overridden by
// APP_DATABASE_* environment variables.
type Config struct {
	// URL, when set, is used verbatim and the discrete fields below are ignored.
	URL string `yaml:"url" env:"URL"`

	Username     string `yaml:"username" env:"USERNAME"`
	Password     string `yaml:"password" env:"PASSWORD"`
	Host         string `yaml:"host" env:"HOST"`
	DatabaseName string `yaml:"database_name" env:"DATABASE_NAME"`
	Port         uint16 `yaml:"port" env:"PORT"`
	RequireSSL   bool   `yaml:"require_ssl" env:"REQUIRE_SSL"`

	MigrationsTable string `yaml:"migrations_table" env:"MIGRATIONS_TABLE"`

	// Health check frequency to detect connection issues early.
	HealthCheckPeriod time.Duration `yaml:"healthcheck_period" env:"HEALTHCHECK_PERIOD"`

	// Idle connections are recycled so poolers like PgBouncer don't hand out stale ones.
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"MAX_CONN_IDLE_TIME"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"MAX_CONN_LIFETIME"`

	// Startup retries for transient network issues.
	RetryAttempts int           `yaml:"retry_attempts" env:"RETRY_ATTEMPTS"`
	RetryInterval time.Duration `yaml:"retry_interval" env:"RETRY_INTERVAL"`

	MaxOpenConns int32 `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MinConns     int32 `yaml:"min_conns" env:"MIN_CONNS"`
}

// DefaultConfig returns the pool settings used when the configuration files
// leave them out.
func DefaultConfig() Config {
	return Config{
		Host:              "localhost",
		Port:              5432,
		MigrationsTable:   "schema_migrations",
		HealthCheckPeriod: time.Minute,
		MaxConnIdleTime:   10 * time.Minute,
		MaxConnLifetime:   30 * time.Minute,
		RetryAttempts:     3,
		RetryInterval:     time.Second,
		MaxOpenConns:      10,
		MinConns:          0,
	}
}

// ConnectionString returns a postgres:// URL for the configured database.
// sslmode is "require" when RequireSSL is set and "prefer" otherwise.
func (c Config) ConnectionString() string {
	if c.URL != "" {
		return c.URL
	}
	return c.connectionURL(c.DatabaseName)
}

// ConnectionStringWithoutDB points at the server's default database.
// Use it to create or drop databases.
func (c Config) ConnectionStringWithoutDB() string {
	if c.URL != "" {
		u, err := url.Parse(c.URL)
		if err != nil {
			return c.URL
		}
		u.Path = ""
		return u.String()
	}
	return c.connectionURL("")
}

func (c Config) connectionURL(database string) string {
	sslMode := "prefer"
	if c.RequireSSL {
		sslMode = "require"
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port))),
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	if c.Username != "" {
		u.User = url.UserPassword(c.Username, c.Password)
	}
	if database != "" {
		u.Path = "/" + database
	}
	return u.String()
}
