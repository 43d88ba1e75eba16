// Package config loads runtime configuration for the newsdesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. NEWSDESK_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   comma-separated backend base URLs
//	-d string   local state store DSN (postgres:// selects Postgres, otherwise sqlite)
//	-f string   saved token path
//	-t int      per-endpoint timeout (seconds)
//	-u int      per-endpoint upload timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for timeouts, so values can be either
// strings like "10s" or integer nanoseconds:
//
//	{
//	  "base_urls": ["https://api.example.org", "https://fallback.example.org"],
//	  "database_dsn": "newsdesk.db",
//	  "token_file": ".newsdesk-token",
//	  "attempt_timeout": "10s",
//	  "upload_attempt_timeout": "60s"
//	}
//
// Primary API
//
//   - type Config                     — holds backend URLs, DSN, token path, and timeouts
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, env, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
