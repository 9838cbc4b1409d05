package config

import (
	"flag"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd",
			"-r", "sqlite", "-h", "db.local", "-p", "6432", "-d", "catalog",
			"-u", "svc", "-w", "pw", "-s", "/certs/root.crt", "-f", "catalog.db",
			"-n", "postgres://u:p@h:5432/db", "-l", "debug",
		}, expectPanic: false,
			expected: &Config{
				Driver:      "sqlite",
				Host:        "db.local",
				Port:        "6432",
				Database:    "catalog",
				User:        "svc",
				Password:    "pw",
				SSLCert:     "/certs/root.crt",
				FilePath:    "catalog.db",
				DatabaseDSN: "postgres://u:p@h:5432/db",
				LogLevel:    "debug",
			}},
		{name: "Test2 unrelated flags are ignored", args: []string{"cmd",
			"-h", "db.local", "-x", "junk", "-config", "ignored.json",
		}, expectPanic: false,
			expected: &Config{
				Host: "db.local",
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {

				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
