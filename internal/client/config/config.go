package config

import "time"

// Config holds runtime settings for the newsdesk CLI.
//
// Fields:
//   - BaseURLs: backend base URLs tried in order on every request.
//   - DatabaseDSN: local state store DSN. A postgres:// DSN selects the
//     shared Postgres backend; anything else is treated as a sqlite path.
//   - TokenFile: where the saved auth token lives.
//   - AttemptTimeout: per-endpoint timeout for regular requests.
//   - UploadAttemptTimeout: per-endpoint timeout for attachment uploads.
type Config struct {
	BaseURLs             []string
	DatabaseDSN          string
	TokenFile            string
	AttemptTimeout       time.Duration
	UploadAttemptTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURLs = []string{"http://127.0.0.1:8080"}
	c.DatabaseDSN = "newsdesk.db"
	c.TokenFile = ".newsdesk-token"
	c.AttemptTimeout = 10 * time.Second
	c.UploadAttemptTimeout = 60 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
