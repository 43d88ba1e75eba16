package config

import (
	"encoding/json"
	"os"
	"time"

	"newsdesk/internal/flagx"
	"newsdesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify timeouts either as
// strings like "10s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	BaseURLs             []string       `json:"base_urls"`
	DatabaseDSN          string         `json:"database_dsn"`
	TokenFile            string         `json:"token_file"`
	AttemptTimeout       timex.Duration `json:"attempt_timeout"`
	UploadAttemptTimeout timex.Duration `json:"upload_attempt_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies set fields into the provided Config; zero values are skipped
//     so a partial file only overrides what it names.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseEnv -> parseFlags, where
// later stages override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if len(jc.BaseURLs) > 0 {
		cfg.BaseURLs = jc.BaseURLs
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.TokenFile != "" {
		cfg.TokenFile = jc.TokenFile
	}
	if jc.AttemptTimeout.Duration != 0 {
		cfg.AttemptTimeout = time.Duration(jc.AttemptTimeout.Duration)
	}
	if jc.UploadAttemptTimeout.Duration != 0 {
		cfg.UploadAttemptTimeout = time.Duration(jc.UploadAttemptTimeout.Duration)
	}
}
