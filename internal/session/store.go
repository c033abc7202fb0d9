// Package session tracks the association between an opaque browser cookie
// and an authenticated user. Tokens are generated server-side, carry no
// structure, and are only meaningful as keys into a Store. Two backends
// exist: an in-process map for single-instance deployments and a Redis
// store for deployments that need to share sessions across instances.
package session

import (
	"context"
	"time"

	"github.com/iliyamo/movie-tracker/internal/utils"
)

// CookieName is the session cookie set on successful login.
const CookieName = "movie_session"

// Identity is the authenticated principal carried by a session.
type Identity struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
}

// Store persists sessions for a bounded lifetime.  Create returns the
// opaque token handed to the browser; Get resolves a token to an Identity
// (ok=false for unknown or expired tokens); Delete destroys the session
// server-side so the token immediately stops resolving.
type Store interface {
	Create(ctx context.Context, id Identity) (token string, err error)
	Get(ctx context.Context, token string) (id Identity, ok bool, err error)
	Delete(ctx context.Context, token string) error
}

// newToken produces the opaque session identifier shared by all backends.
func newToken() (string, error) {
	return utils.NewSessionToken()
}

// ttlFromMinutes converts the configured session TTL into a duration.
func ttlFromMinutes(minutes int) time.Duration {
	return time.Duration(minutes) * time.Minute
}
