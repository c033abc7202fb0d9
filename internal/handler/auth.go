package handler

import (
    "context"      // provides context with cancellation for DB calls
    "errors"       // sentinel error comparisons
    "log"          // unexpected failures are logged before the generic 500
    "net/http"     // HTTP status codes and cookie primitives
    "strings"      // string manipulation utilities
    "time"         // timeouts for DB calls

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/iliyamo/movie-tracker/internal/config"     // app configuration
    "github.com/iliyamo/movie-tracker/internal/middleware" // session identity helpers
    "github.com/iliyamo/movie-tracker/internal/repository" // DB repositories
    "github.com/iliyamo/movie-tracker/internal/session"    // server-side session store
)

// AuthHandler bundles dependencies for registration, login and logout.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Sessions session.Store
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, s session.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Sessions: s}
}

// ShowRegister renders the registration form.  Logged-in users are sent
// back to the index instead.
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	if _, ok := middleware.CurrentUser(c); ok {
		return c.Redirect(http.StatusFound, "/")
	}
	return c.Render(http.StatusOK, "register.html", nil)
}

// Register creates a new account from the submitted form and sends the
// user to the login page.  A taken username is a 400; the plaintext
// password is handed straight to the repository, which stores only the
// bcrypt hash.
func (h *AuthHandler) Register(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.String(http.StatusBadRequest, "Username and password are required.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.Create(ctx, username, password, h.Cfg.BcryptCost); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.String(http.StatusBadRequest, "A user with that username already exists.")
		}
		log.Printf("register: create user: %v", err)
		return c.String(http.StatusInternalServerError, "Registration failed.")
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

// ShowLogin renders the login form.  Logged-in users are sent back to the
// index instead.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	if _, ok := middleware.CurrentUser(c); ok {
		return c.Redirect(http.StatusFound, "/")
	}
	return c.Render(http.StatusOK, "login.html", nil)
}

// Login verifies the credentials and establishes a session.  The failure
// message is identical for an unknown username and a wrong password so
// the response never reveals which one it was.
func (h *AuthHandler) Login(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			return c.String(http.StatusBadRequest, "Invalid username or password.")
		}
		log.Printf("login: authenticate: %v", err)
		return c.String(http.StatusInternalServerError, "Login failed.")
	}

	token, err := h.Sessions.Create(ctx, session.Identity{UserID: u.ID, Username: u.Username})
	if err != nil {
		log.Printf("login: create session: %v", err)
		return c.String(http.StatusInternalServerError, "Login failed.")
	}
	c.SetCookie(h.sessionCookie(token, 0))
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout destroys the session server-side and expires the cookie.  The old
// token stops resolving immediately, so any further request carrying it is
// anonymous.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		if err := h.Sessions.Delete(ctx, cookie.Value); err != nil {
			log.Printf("logout: delete session: %v", err)
		}
	}
	c.SetCookie(h.sessionCookie("", -1))
	return c.Redirect(http.StatusFound, "/")
}

// sessionCookie builds the session cookie.  maxAge -1 expires it.  The
// Secure flag follows the environment: browser sessions in prod travel
// only over TLS.
func (h *AuthHandler) sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.Cfg.Env == "prod",
	}
}
