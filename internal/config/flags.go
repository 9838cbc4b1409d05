package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/metakv/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with the -c/-config flags handled by
// the JSON loader. Defaults for each flag are the current Config values, so
// a flag that is not passed leaves the earlier layers untouched.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-r", "-h", "-p", "-d", "-u", "-w", "-s", "-f", "-n", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Driver, "r", config.Driver, "database driver (postgres or sqlite)")
	fs.StringVar(&config.Host, "h", config.Host, "database host")
	fs.StringVar(&config.Port, "p", config.Port, "database port")
	fs.StringVar(&config.Database, "d", config.Database, "database name")
	fs.StringVar(&config.User, "u", config.User, "database user")
	fs.StringVar(&config.Password, "w", config.Password, "database password")
	fs.StringVar(&config.SSLCert, "s", config.SSLCert, "path to TLS server root certificate")
	fs.StringVar(&config.FilePath, "f", config.FilePath, "sqlite database file")
	fs.StringVar(&config.DatabaseDSN, "n", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
