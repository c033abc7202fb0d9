package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-tracker/internal/middleware"
	"github.com/iliyamo/movie-tracker/internal/repository"
)

// ReviewHandler appends reviews to the ledger.
type ReviewHandler struct {
	Reviews *repository.ReviewRepo
}

func NewReviewHandler(r *repository.ReviewRepo) *ReviewHandler {
	return &ReviewHandler{Reviews: r}
}

// Create appends a review to the movie named in the path and redirects
// back to its detail page.  The text is stored as-is: no dedup, no length
// limit.  A movie that no longer exists is a 404 via the foreign key.
func (h *ReviewHandler) Create(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.String(http.StatusForbidden, "You must be logged in to write a review.")
	}

	movieID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.String(http.StatusNotFound, "Movie not found.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Reviews.Create(ctx, movieID, user.UserID, c.FormValue("review")); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.String(http.StatusNotFound, "Movie not found.")
		}
		log.Printf("review: create for movie %d: %v", movieID, err)
		return c.String(http.StatusInternalServerError, "Could not save the review.")
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/movie/%d", movieID))
}
