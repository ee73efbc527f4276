package azcli

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWT(t *testing.T, exp time.Time) string {
	t.Helper()

	encode := func(v any) string {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		return base64.RawURLEncoding.EncodeToString(raw)
	}

	header := encode(map[string]string{"alg": "none", "typ": "JWT"})
	claims := encode(map[string]any{"exp": exp.Unix()})
	return header + "." + claims + ".sig"
}

func newTestProvider(run runFunc, now func() time.Time) *Provider {
	provider := NewProvider("")
	provider.run = run
	if now != nil {
		provider.now = now
	}
	return provider
}

func TestTokenRunsAzAndParsesPayload(t *testing.T) {
	token := testJWT(t, time.Now().Add(time.Hour))
	var gotArgs []string

	provider := newTestProvider(func(_ context.Context, args ...string) (string, string, error) {
		gotArgs = args
		return fmt.Sprintf(`{"accessToken":%q,"expiresOn":"2026-08-25 12:00:00"}`, token), "", nil
	}, nil)

	got, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, token, got)
	assert.Equal(t, []string{"account", "get-access-token", "--resource", DefaultResource, "--output", "json"}, gotArgs)
}

func TestTokenCachesUntilNearExpiry(t *testing.T) {
	now := time.Now()
	token := testJWT(t, now.Add(time.Hour))
	calls := 0

	provider := newTestProvider(func(context.Context, ...string) (string, string, error) {
		calls++
		return fmt.Sprintf(`{"accessToken":%q}`, token), "", nil
	}, func() time.Time { return now })

	for i := 0; i < 3; i++ {
		_, err := provider.Token(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, 1, calls)
}

func TestTokenRefreshesWithinExpiryMargin(t *testing.T) {
	now := time.Now()
	token := testJWT(t, now.Add(time.Minute))
	calls := 0

	provider := newTestProvider(func(context.Context, ...string) (string, string, error) {
		calls++
		return fmt.Sprintf(`{"accessToken":%q}`, token), "", nil
	}, func() time.Time { return now })

	_, err := provider.Token(context.Background())
	require.NoError(t, err)
	_, err = provider.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestTokenSurfacesStderrOnFailure(t *testing.T) {
	provider := newTestProvider(func(context.Context, ...string) (string, string, error) {
		return "", "Please run 'az login'", errors.New("exit status 1")
	}, nil)

	_, err := provider.Token(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "az login")
}

func TestTokenMissingAccessToken(t *testing.T) {
	provider := newTestProvider(func(context.Context, ...string) (string, string, error) {
		return `{"accessToken":""}`, "", nil
	}, nil)

	_, err := provider.Token(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accessToken")
}

func TestTokenExpiryFromMalformedJWTIsZero(t *testing.T) {
	assert.True(t, tokenExpiry("not-a-jwt").IsZero())
}
