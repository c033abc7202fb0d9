package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/movie-tracker/internal/session" // server-side session store
)

// identityKey is the Echo context key under which LoadSession stores the
// resolved identity.  Handlers read it back through CurrentUser.
const identityKey = "identity"

// LoadSession returns an Echo middleware that resolves the session cookie
// to an authenticated identity on every request.  Requests without a
// cookie, with an unknown token, or with an expired session simply proceed
// as anonymous; this middleware never rejects a request.  It should wrap
// the whole application so that handlers and RequireAuth can rely on
// CurrentUser.
func LoadSession(store session.Store) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A missing cookie is the common anonymous case; any cookie
            // read error is treated the same way.
            cookie, err := c.Cookie(session.CookieName)
            if err != nil || cookie.Value == "" {
                return next(c)
            }
            // Resolve the opaque token against the store.  Store errors
            // (e.g. Redis hiccup) degrade to anonymous rather than failing
            // the request: every page has a sensible anonymous rendering
            // and protected routes will answer 403 downstream.
            id, ok, err := store.Get(c.Request().Context(), cookie.Value)
            if err != nil || !ok {
                return next(c)
            }
            c.Set(identityKey, id)
            return next(c)
        }
    }
}

// RequireAuth returns an Echo middleware that rejects anonymous requests
// with 403 before the wrapped handler runs.  It must be registered after
// LoadSession.
func RequireAuth() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if _, ok := CurrentUser(c); !ok {
                return c.String(http.StatusForbidden, "You must be logged in to do that.")
            }
            return next(c)
        }
    }
}

// CurrentUser returns the identity resolved by LoadSession, or ok=false for
// anonymous requests.
func CurrentUser(c echo.Context) (session.Identity, bool) {
    id, ok := c.Get(identityKey).(session.Identity)
    return id, ok
}
