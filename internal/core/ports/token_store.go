package ports

import "context"

// TokenStore holds the single bearer token for the console's session. The
// token is opaque: no expiry is tracked on this side, and an empty string
// means no session is held. The store must survive process restarts.
type TokenStore interface {
	// Get returns the stored token, or "" when none is held.
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
