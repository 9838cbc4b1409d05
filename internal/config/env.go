package config

import "os"

// parseEnv overlays values from the process environment. A variable that is
// present but empty still overrides: exporting METAKV_DB_PASSWORD="" is a
// legitimate way to force the interactive password prompt.
func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv("METAKV_DB_DRIVER"); ok {
		cfg.Driver = v
	}
	if v, ok := os.LookupEnv("METAKV_DB_HOST"); ok {
		cfg.Host = v
	}
	if v, ok := os.LookupEnv("METAKV_DB_PORT"); ok {
		cfg.Port = v
	}
	if v, ok := os.LookupEnv("METAKV_DB_NAME"); ok {
		cfg.Database = v
	}
	if v, ok := os.LookupEnv("METAKV_DB_USER"); ok {
		cfg.User = v
	}
	if v, ok := os.LookupEnv("METAKV_DB_PASSWORD"); ok {
		cfg.Password = v
	}
	if v, ok := os.LookupEnv("METAKV_DB_SSL_CERT"); ok {
		cfg.SSLCert = v
	}
	if v, ok := os.LookupEnv("METAKV_DB_FILE"); ok {
		cfg.FilePath = v
	}
	if v, ok := os.LookupEnv("METAKV_DATABASE_DSN"); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("METAKV_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
}
