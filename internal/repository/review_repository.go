package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/movie-tracker/internal/model"
)

// ReviewRepo encapsulates all database queries related to reviews.  The
// ledger is append-only: there are no update or single-delete methods, and
// rows disappear only through the cascade from movies or users.
type ReviewRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewReviewRepo constructs a ReviewRepo with the provided DB handle.
func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// Create appends a review and returns its ID.  No dedup and no content
// validation: identical text from the same author is accepted.  A
// foreign-key failure means the movie (or author) vanished between the
// handler's lookup and the insert and is reported as ErrMovieNotFound.
func (r *ReviewRepo) Create(ctx context.Context, movieID, authorID uint64, text string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO reviews (movie_id, user_id, review) VALUES (?,?,?)",
		movieID, authorID, text)
	if err != nil {
		if Classify(err) == KindForeignKey {
			return 0, ErrMovieNotFound
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByMovie returns all reviews for a movie joined with the author's
// username, newest first.
func (r *ReviewRepo) ListByMovie(ctx context.Context, movieID uint64) ([]model.ReviewWithAuthor, error) {
	const q = `SELECT r.id, r.movie_id, r.user_id, r.review, r.created_at, u.username
	           FROM reviews r
	           JOIN users u ON r.user_id = u.id
	           WHERE r.movie_id = ?
	           ORDER BY r.created_at DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ReviewWithAuthor
	for rows.Next() {
		var rv model.ReviewWithAuthor
		if err := rows.Scan(&rv.ID, &rv.MovieID, &rv.AuthorID, &rv.Text, &rv.CreatedAt, &rv.Author); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByMovie returns the number of reviews attached to a movie.
func (r *ReviewRepo) CountByMovie(ctx context.Context, movieID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reviews WHERE movie_id=?", movieID).Scan(&n)
	return n, err
}
