package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/metakv/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its non-empty fields are copied into the
// runtime Config struct, so a JSON file only needs to mention the keys it
// wants to change.
type JsonConfig struct {
	Driver      string `json:"driver"`
	Host        string `json:"host"`
	Port        string `json:"port"`
	Database    string `json:"database"`
	User        string `json:"user"`
	Password    string `json:"password"`
	SSLCert     string `json:"ssl_cert"`
	FilePath    string `json:"file_path"`
	DatabaseDSN string `json:"database_dsn"`
	LogLevel    string `json:"log_level"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; when
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics: a config file that was asked
// for but cannot be used is not recoverable.
func parseJson(config *Config) {

	jsonConfigFile := flagx.ConfigFilePath()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.Driver != "" {
		config.Driver = c.Driver
	}
	if c.Host != "" {
		config.Host = c.Host
	}
	if c.Port != "" {
		config.Port = c.Port
	}
	if c.Database != "" {
		config.Database = c.Database
	}
	if c.User != "" {
		config.User = c.User
	}
	if c.Password != "" {
		config.Password = c.Password
	}
	if c.SSLCert != "" {
		config.SSLCert = c.SSLCert
	}
	if c.FilePath != "" {
		config.FilePath = c.FilePath
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
