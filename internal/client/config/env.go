package config

import (
	"os"
	"strings"
	"time"
)

// parseEnv overlays Config with values from NEWSDESK_* environment
// variables. Unset or empty variables leave the current value in place.
//
// Recognized variables:
//
//	NEWSDESK_BASE_URLS        comma-separated backend base URLs
//	NEWSDESK_DATABASE_DSN     local state store DSN
//	NEWSDESK_TOKEN_FILE       saved token path
//	NEWSDESK_ATTEMPT_TIMEOUT  per-endpoint timeout, e.g. "10s"
//	NEWSDESK_UPLOAD_TIMEOUT   per-endpoint upload timeout, e.g. "60s"
func parseEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("NEWSDESK_BASE_URLS")); v != "" {
		var urls []string
		for _, u := range strings.Split(v, ",") {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
		if len(urls) > 0 {
			cfg.BaseURLs = urls
		}
	}
	if v := strings.TrimSpace(os.Getenv("NEWSDESK_DATABASE_DSN")); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := strings.TrimSpace(os.Getenv("NEWSDESK_TOKEN_FILE")); v != "" {
		cfg.TokenFile = v
	}
	if v := strings.TrimSpace(os.Getenv("NEWSDESK_ATTEMPT_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.AttemptTimeout = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("NEWSDESK_UPLOAD_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.UploadAttemptTimeout = d
		}
	}
}
