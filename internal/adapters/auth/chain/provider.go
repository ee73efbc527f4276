// Package chain combines token providers: a primary backend with a
// fallback consulted when the primary fails.
package chain

import (
	"context"
	"errors"
	"fmt"

	azcliprovider "github.com/bnema/fchat/internal/adapters/auth/azcli"
	envprovider "github.com/bnema/fchat/internal/adapters/auth/env"
	"github.com/bnema/fchat/internal/ports"
)

type Provider struct {
	primary  ports.TokenProvider
	fallback ports.TokenProvider
}

var _ ports.TokenProvider = (*Provider)(nil)

var (
	errNilPrimaryProvider  = errors.New("primary token provider is nil")
	errNilFallbackProvider = errors.New("fallback token provider is nil")
)

func NewProvider(primary, fallback ports.TokenProvider) (*Provider, error) {
	if primary == nil {
		return nil, errNilPrimaryProvider
	}
	if fallback == nil {
		return nil, errNilFallbackProvider
	}

	return &Provider{primary: primary, fallback: fallback}, nil
}

// NewEnvFirstWithAzCLIFallback is the default credential chain: a static
// token from the environment when present, the Azure CLI otherwise.
func NewEnvFirstWithAzCLIFallback(envVar, resource string) (*Provider, error) {
	return NewProvider(envprovider.NewProvider(envVar), azcliprovider.NewProvider(resource))
}

func (p *Provider) Token(ctx context.Context) (string, error) {
	token, err := p.primary.Token(ctx)
	if err == nil {
		return token, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackToken, fallbackErr := p.fallback.Token(ctx)
	if fallbackErr == nil {
		return fallbackToken, nil
	}

	return "", fmt.Errorf("primary token provider failed: %w; fallback token provider failed: %w", err, fallbackErr)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
