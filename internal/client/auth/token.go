// Package auth resolves the bearer token used for authenticated backend
// operations. The token is looked up in a fixed fallback order across two
// storage scopes: the process environment first, then the on-disk token
// file. Absence of a token in every scope is a precondition failure, not an
// endpoint failure.
package auth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"newsdesk/internal/common"
)

// EnvTokenVar is the environment-scope location of the bearer token.
const EnvTokenVar = "NEWSDESK_TOKEN"

// Provider reads and stores the bearer token.
type Provider struct {
	envVar    string
	tokenPath string
	now       func() time.Time
}

func NewProvider(tokenPath string) *Provider {
	return &Provider{envVar: EnvTokenVar, tokenPath: tokenPath, now: time.Now}
}

// Token returns the first usable token found across the storage scopes.
// A token that parses as a JWT with an exp claim in the past is treated as
// unusable and the lookup continues with the next scope. When every scope
// comes up empty, common.ErrNoAuthToken is returned (wrapping
// common.ErrTokenExpired if an expired token was seen on the way).
func (p *Provider) Token(ctx context.Context) (string, error) {
	sawExpired := false

	for _, read := range []func() string{p.fromEnv, p.fromFile} {
		token := read()
		if token == "" {
			continue
		}
		if p.expired(token) {
			sawExpired = true
			continue
		}
		return token, nil
	}

	if sawExpired {
		return "", fmt.Errorf("%w: %w", common.ErrNoAuthToken, common.ErrTokenExpired)
	}
	return "", common.ErrNoAuthToken
}

// Save writes the token into the file scope, creating the parent directory
// as needed.
func (p *Provider) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("refusing to save an empty token")
	}
	if dir := filepath.Dir(p.tokenPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating token dir: %w", err)
		}
	}
	if err := os.WriteFile(p.tokenPath, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

// Clear removes the file-scope token. The environment scope is read-only.
func (p *Provider) Clear() error {
	err := os.Remove(p.tokenPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (p *Provider) fromEnv() string {
	return strings.TrimSpace(os.Getenv(p.envVar))
}

func (p *Provider) fromFile() string {
	data, err := os.ReadFile(p.tokenPath)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// expired reports whether token is a JWT whose exp claim has passed.
// Opaque (non-JWT) tokens cannot be checked and are accepted as-is.
func (p *Provider) expired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(p.now())
}
