package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/common"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "editor-7",
		"exp": exp.Unix(),
	})
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p := NewProvider(filepath.Join(t.TempDir(), "token"))
	t.Setenv(EnvTokenVar, "")
	return p
}

func TestToken_EnvScopeWinsOverFile(t *testing.T) {
	p := newTestProvider(t)
	require.NoError(t, p.Save("file-token"))
	t.Setenv(EnvTokenVar, "env-token")

	got, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env-token", got)
}

func TestToken_FallsBackToFileScope(t *testing.T) {
	p := newTestProvider(t)
	require.NoError(t, p.Save("file-token"))

	got, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "file-token", got)
}

func TestToken_NoScopeHasToken(t *testing.T) {
	p := newTestProvider(t)

	_, err := p.Token(context.Background())
	require.ErrorIs(t, err, common.ErrNoAuthToken)
}

func TestToken_ExpiredJWTTreatedAsAbsent(t *testing.T) {
	p := newTestProvider(t)
	require.NoError(t, p.Save(signedToken(t, time.Now().Add(-time.Hour))))

	_, err := p.Token(context.Background())
	require.ErrorIs(t, err, common.ErrNoAuthToken)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestToken_ValidJWTAccepted(t *testing.T) {
	p := newTestProvider(t)
	require.NoError(t, p.Save(signedToken(t, time.Now().Add(time.Hour))))

	got, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestToken_ExpiredEnvFallsThroughToValidFile(t *testing.T) {
	p := newTestProvider(t)
	t.Setenv(EnvTokenVar, signedToken(t, time.Now().Add(-time.Minute)))
	require.NoError(t, p.Save("opaque-but-fine"))

	got, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "opaque-but-fine", got)
}

func TestClear(t *testing.T) {
	p := newTestProvider(t)
	require.NoError(t, p.Save("tok"))
	require.NoError(t, p.Clear())

	_, err := p.Token(context.Background())
	require.ErrorIs(t, err, common.ErrNoAuthToken)

	// clearing twice is fine
	require.NoError(t, p.Clear())
}
