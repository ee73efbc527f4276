package ports

import "context"

// TokenProvider supplies a bearer token for outbound calls. Providers are
// expected to cache internally; callers request a token per attempt.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
