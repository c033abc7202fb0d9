package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-tracker/internal/model"
)

// ErrTitleExists is returned when adding a movie whose title is already in
// the catalog. Title uniqueness is enforced by the UNIQUE constraint on
// movies.title, not by an application-level pre-check.
var ErrTitleExists = errors.New("movie title already exists")

// ErrMovieNotFound is returned when a movie lookup matches no row.
var ErrMovieNotFound = errors.New("movie not found")

// MovieRepo encapsulates all database queries related to movies.  It
// depends on a sql.DB connection which should be configured elsewhere.
type MovieRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewMovieRepo constructs a MovieRepo with the provided DB handle.  This
// function allows dependency injection of the database in tests and at
// startup.  There is no initialization logic beyond assigning the field.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// movieColumns is the select list shared by ListAll and GetByID.  The
// trailing username comes from the JOIN against users.
const movieColumns = `m.id, m.title, m.year, m.director, m.rating,
	m.watched_date, m.poster_url, m.user_id, m.created_at, u.username`

// Create inserts a new movie owned by OwnerID and returns its ID.  The
// caller must supply an authenticated owner; there is no fallback to the
// bootstrap user on this path.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO movies (title, year, director, rating, watched_date, poster_url, user_id)
		 VALUES (?,?,?,?,?,?,?)`,
		m.Title, m.Year, m.Director, m.Rating, m.WatchedDate, m.PosterURL, m.OwnerID)
	if err != nil {
		switch Classify(err) {
		case KindDuplicateKey:
			return 0, ErrTitleExists
		case KindForeignKey:
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	m.ID = uint64(id)
	return m.ID, nil
}

// ListAll returns every movie joined with its owner's username, newest
// first by creation time (id breaks ties for rows created in the same
// second).
func (r *MovieRepo) ListAll(ctx context.Context) ([]model.MovieWithOwner, error) {
	const q = `SELECT ` + movieColumns + `
	           FROM movies m
	           JOIN users u ON m.user_id = u.id
	           ORDER BY m.created_at DESC, m.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MovieWithOwner
	for rows.Next() {
		var m model.MovieWithOwner
		if err := scanMovie(rows, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches one movie with its owner's username.  It returns
// ErrMovieNotFound if no row is found so that handlers can render a 404.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.MovieWithOwner, error) {
	const q = `SELECT ` + movieColumns + `
	           FROM movies m
	           JOIN users u ON m.user_id = u.id
	           WHERE m.id = ?`
	var m model.MovieWithOwner
	if err := scanMovie(r.db.QueryRowContext(ctx, q, id), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.MovieWithOwner{}, ErrMovieNotFound
		}
		return model.MovieWithOwner{}, err
	}
	return m, nil
}

// Stats computes the aggregate counters shown on the index page.  The
// COALESCE keeps AvgRating at a defined 0 when the table is empty instead
// of surfacing SQL NULL.
func (r *MovieRepo) Stats(ctx context.Context) (model.Stats, error) {
	var s model.Stats
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM movies").Scan(&s.Total, &s.AvgRating)
	return s, err
}

// Count returns the number of movies in the catalog.
func (r *MovieRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies").Scan(&n)
	return n, err
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(s scanner, m *model.MovieWithOwner) error {
	return s.Scan(&m.ID, &m.Title, &m.Year, &m.Director, &m.Rating,
		&m.WatchedDate, &m.PosterURL, &m.OwnerID, &m.CreatedAt, &m.AddedBy)
}
