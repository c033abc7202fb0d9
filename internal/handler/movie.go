package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-tracker/internal/middleware"
	"github.com/iliyamo/movie-tracker/internal/model"
	"github.com/iliyamo/movie-tracker/internal/repository"
	"github.com/iliyamo/movie-tracker/internal/upload"
)

// MovieHandler bundles dependencies for the movie catalog pages: the list
// with its aggregate statistics, the add-movie form and the detail page.
type MovieHandler struct {
	Movies  *repository.MovieRepo
	Reviews *repository.ReviewRepo
	Posters *upload.Store
}

func NewMovieHandler(m *repository.MovieRepo, r *repository.ReviewRepo, p *upload.Store) *MovieHandler {
	return &MovieHandler{Movies: m, Reviews: r, Posters: p}
}

// Index renders the public movie list, newest first, together with the
// total count and average rating.
func (h *MovieHandler) Index(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, err := h.Movies.ListAll(ctx)
	if err != nil {
		log.Printf("index: list movies: %v", err)
		return c.String(http.StatusInternalServerError, "Could not load movies.")
	}
	stats, err := h.Movies.Stats(ctx)
	if err != nil {
		log.Printf("index: stats: %v", err)
		return c.String(http.StatusInternalServerError, "Could not load movies.")
	}

	return c.Render(http.StatusOK, "index.html", echo.Map{
		"CurrentUser": currentUserView(c),
		"Movies":      movies,
		"Stats":       stats,
	})
}

// ShowAdd renders the add-movie form.  RequireAuth has already rejected
// anonymous requests with 403 before this handler runs.
func (h *MovieHandler) ShowAdd(c echo.Context) error {
	return c.Render(http.StatusOK, "add-movie.html", nil)
}

// Add creates a movie owned by the logged-in user from the multipart form.
// The poster file is optional; when present it is written to the upload
// store and only its public URL is persisted.  A duplicate title is a 400,
// everything else unexpected a 500.
func (h *MovieHandler) Add(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		// RequireAuth normally guards this route; kept as the contract of
		// the operation itself.
		return c.String(http.StatusForbidden, "You must be logged in to add a movie.")
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return c.String(http.StatusBadRequest, "Title is required.")
	}

	m := model.Movie{
		Title:       title,
		Year:        parseNullInt(c.FormValue("year")),
		Director:    nullString(c.FormValue("director")),
		Rating:      parseRating(c.FormValue("rating")),
		WatchedDate: nullString(c.FormValue("watched_date")),
		OwnerID:     user.UserID,
	}

	// The poster field is optional; http.ErrMissingFile means the form was
	// submitted without one.
	if fh, err := c.FormFile("poster"); err == nil && fh != nil {
		url, err := h.Posters.Save(fh)
		if err != nil {
			log.Printf("add-movie: save poster: %v", err)
			return c.String(http.StatusInternalServerError, "Could not save the poster.")
		}
		m.PosterURL = sql.NullString{String: url, Valid: true}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Movies.Create(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrTitleExists) {
			return c.String(http.StatusBadRequest, "A movie with that title already exists.")
		}
		log.Printf("add-movie: create: %v", err)
		return c.String(http.StatusInternalServerError, "Could not add the movie.")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Detail renders one movie with its reviews, newest first.  An unknown or
// malformed id is a 404.
func (h *MovieHandler) Detail(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.String(http.StatusNotFound, "Movie not found.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movie, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.String(http.StatusNotFound, "Movie not found.")
		}
		log.Printf("movie detail: get %d: %v", id, err)
		return c.String(http.StatusInternalServerError, "Could not load the movie.")
	}
	reviews, err := h.Reviews.ListByMovie(ctx, id)
	if err != nil {
		log.Printf("movie detail: reviews for %d: %v", id, err)
		return c.String(http.StatusInternalServerError, "Could not load the movie.")
	}

	return c.Render(http.StatusOK, "movie-detail.html", echo.Map{
		"CurrentUser": currentUserView(c),
		"Movie":       movie,
		"Reviews":     reviews,
	})
}

// currentUserView adapts the session identity for templates: nil for
// anonymous requests so `{{if .CurrentUser}}` reads naturally.
func currentUserView(c echo.Context) any {
	if id, ok := middleware.CurrentUser(c); ok {
		return id
	}
	return nil
}

// parseNullInt converts an optional numeric form value; empty or
// unparseable input persists as NULL.
func parseNullInt(v string) sql.NullInt64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return sql.NullInt64{}
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: n, Valid: true}
}

// nullString converts an optional text form value; empty input persists as
// NULL.
func nullString(v string) sql.NullString {
	v = strings.TrimSpace(v)
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

// parseRating converts the optional rating field, defaulting to 0.
func parseRating(v string) float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
