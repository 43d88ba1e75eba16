package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, []string{"http://127.0.0.1:8080"}, c.BaseURLs)
	assert.Equal(t, "newsdesk.db", c.DatabaseDSN)
	assert.Equal(t, ".newsdesk-token", c.TokenFile)
	assert.Equal(t, 10*time.Second, c.AttemptTimeout)
	assert.Equal(t, 60*time.Second, c.UploadAttemptTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, []string{"http://127.0.0.1:8080"}, cfg.BaseURLs)
	assert.Equal(t, 10*time.Second, cfg.AttemptTimeout)
}
