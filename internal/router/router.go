package router // package router defines how HTTP routes are registered for the application

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/movie-tracker/internal/handler"    // import the handlers that implement the page logic
	"github.com/iliyamo/movie-tracker/internal/middleware" // import middleware for session loading and auth enforcement
)

// RegisterRoutes registers routes that carry no handler dependencies.
// Currently it exposes only a health check, which load balancers and
// monitoring systems can use to verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the pages that anonymous visitors may use: the
// movie list, the account forms and the movie detail page.  LoadSession
// (applied globally in main) has already resolved the visitor's identity,
// so these handlers can still personalize their output for logged-in
// users.
func RegisterPublic(e *echo.Echo, a *handler.AuthHandler, m *handler.MovieHandler) {
	// Movie list with aggregate statistics.
	e.GET("/", m.Index)
	// Account registration: form plus submission.
	e.GET("/register", a.ShowRegister)
	e.POST("/register", a.Register)
	// Login: form plus submission.
	e.GET("/login", a.ShowLogin)
	e.POST("/login", a.Login)
	// Logout destroys the session; safe for anonymous visitors too.
	e.GET("/logout", a.Logout)
	// Movie detail with its reviews; 404 for unknown ids.
	e.GET("/movie/:id", m.Detail)
}

// RegisterProtected registers the routes that require a logged-in user.
// RequireAuth answers 403 before any handler runs, so a catalog or ledger
// operation is never invoked on behalf of an anonymous request.
func RegisterProtected(e *echo.Echo, m *handler.MovieHandler, r *handler.ReviewHandler) {
	g := e.Group("", middleware.RequireAuth())
	// Add-movie form and submission (multipart, optional poster upload).
	g.GET("/add", m.ShowAdd)
	g.POST("/add-movie", m.Add)
	// Review submission for a specific movie.
	g.POST("/review/:id", r.Create)
}
