// Package config loads runtime configuration for the metakv shell.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv), METAKV_* keys.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-r string   database driver: "postgres" or "sqlite"
//	-h string   database host
//	-p string   database port
//	-d string   database name
//	-u string   database user
//	-w string   database password
//	-s string   path to the TLS server root certificate
//	-f string   sqlite database file path
//	-n string   full database DSN (overrides assembly from discrete fields)
//	-l string   log level: debug, info, warn, error
package config

import (
	"fmt"
	"net"
	"net/url"

	"github.com/dmitrijs2005/metakv/internal/common"
	"github.com/dmitrijs2005/metakv/internal/filex"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the connection parameters for the metadata store.
//
// Host, Port, Database, User, Password and SSLCert describe a PostgreSQL
// server and are assembled into a DSN by (*Config).DSN. DatabaseDSN, when
// set, bypasses the assembly entirely. FilePath is the SQLite database file
// used when Driver is "sqlite".
type Config struct {
	Driver      string
	Host        string
	Port        string
	Database    string
	User        string
	Password    string
	SSLCert     string
	FilePath    string
	DatabaseDSN string
	LogLevel    string
}

// LoadDefaults populates Config with development defaults. The password is
// deliberately empty: it must come from the environment, a flag, or the
// interactive prompt.
func (c *Config) LoadDefaults() {
	c.Driver = DriverPostgres
	c.Host = "localhost"
	c.Port = "5432"
	c.Database = "metakv"
	c.User = "postgres"
	c.Password = ""
	c.SSLCert = ""
	c.FilePath = "metakv.db"
	c.DatabaseDSN = ""
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the process environment, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate checks the connection prerequisites that must hold before any
// connection attempt. Violations are reported as common.ErrorConfig.
//
// For the postgres driver the TLS server certificate is required and must
// exist on disk, unless an explicit DatabaseDSN is supplied: the override
// is the escape hatch for development setups without TLS. The sqlite driver
// has no certificate requirement.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.DatabaseDSN != "" {
			return nil
		}
		if c.SSLCert == "" {
			return fmt.Errorf("%w: TLS certificate path is not set", common.ErrorConfig)
		}
		if !filex.FileExists(c.SSLCert) {
			return fmt.Errorf("%w: TLS certificate not found: %s", common.ErrorConfig, c.SSLCert)
		}
		return nil
	case DriverSQLite:
		if c.DatabaseDSN == "" && c.FilePath == "" {
			return fmt.Errorf("%w: sqlite database file path is not set", common.ErrorConfig)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown driver %q", common.ErrorConfig, c.Driver)
	}
}

// DSN returns the data source name for the configured driver. An explicit
// DatabaseDSN always wins. Otherwise postgres DSNs are assembled with
// net/url so credentials survive URL-escaping, and sqlite uses the file
// path directly.
func (c *Config) DSN() string {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN
	}

	if c.Driver == DriverSQLite {
		return c.FilePath
	}

	q := url.Values{}
	q.Set("sslmode", "verify-full")
	q.Set("sslrootcert", c.SSLCert)

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: q.Encode(),
	}
	return u.String()
}
