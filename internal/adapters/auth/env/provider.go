// Package env supplies a bearer token from the process environment.
package env

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/fchat/internal/ports"
)

const DefaultVar = "AZURE_AGENT_TOKEN"

var ErrNotSet = errors.New("token environment variable not set")

type Provider struct {
	envVar string
}

var _ ports.TokenProvider = (*Provider)(nil)

func NewProvider(envVar string) *Provider {
	if envVar == "" {
		envVar = DefaultVar
	}

	return &Provider{envVar: envVar}
}

func (p *Provider) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	token := strings.TrimSpace(os.Getenv(p.envVar))
	if token == "" {
		return "", fmt.Errorf("%w: %s", ErrNotSet, p.envVar)
	}

	return token, nil
}
