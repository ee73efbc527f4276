// Package azcli obtains Entra ID access tokens by shelling out to the
// Azure CLI, so anyone signed in with `az login` can use the chat client
// without extra setup.
package azcli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/bnema/fchat/internal/ports"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultResource is the Entra ID resource tokens are requested for.
const DefaultResource = "https://ai.azure.com"

// refreshMargin forces a re-fetch shortly before the cached token expires.
const refreshMargin = 2 * time.Minute

var ErrUnavailable = errors.New("az command unavailable")

type runFunc func(ctx context.Context, args ...string) (stdout string, stderr string, err error)

type Provider struct {
	resource string
	run      runFunc
	now      func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

var _ ports.TokenProvider = (*Provider)(nil)

func NewProvider(resource string) *Provider {
	if resource == "" {
		resource = DefaultResource
	}

	return &Provider{
		resource: resource,
		run:      runAzCommand,
		now:      time.Now,
	}
}

func (p *Provider) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && (p.expiresAt.IsZero() || p.now().Before(p.expiresAt.Add(-refreshMargin))) {
		return p.token, nil
	}

	stdout, stderr, err := p.run(ctx, "account", "get-access-token", "--resource", p.resource, "--output", "json")
	if err != nil {
		return "", formatError(err, stderr)
	}

	var payload struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		return "", fmt.Errorf("decode az token payload: %w", err)
	}
	if strings.TrimSpace(payload.AccessToken) == "" {
		return "", errors.New("az token payload missing accessToken")
	}

	p.token = payload.AccessToken
	p.expiresAt = tokenExpiry(payload.AccessToken)

	return p.token, nil
}

// tokenExpiry reads the exp claim without verifying the signature. The
// token is never trusted locally; expiry only drives cache refresh.
func tokenExpiry(token string) time.Time {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}

	expiry, err := parsed.Claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}
	}

	return expiry.Time
}

func runAzCommand(ctx context.Context, args ...string) (string, string, error) {
	path, err := exec.LookPath("az")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate az command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func formatError(err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("az get-access-token: %w", err)
	}

	return fmt.Errorf("az get-access-token: %w: %s", err, stderr)
}
