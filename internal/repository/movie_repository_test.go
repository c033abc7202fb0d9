package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/iliyamo/movie-tracker/internal/model"
	"github.com/iliyamo/movie-tracker/internal/repository"
)

func seedUser(t *testing.T, users *repository.UserRepo, name string) uint64 {
	t.Helper()
	id, err := users.Create(context.Background(), name, "pw", bcryptCost)
	if err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return id
}

func TestCreateRejectsDuplicateTitle(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	ctx := context.Background()
	owner := seedUser(t, users, "alice")

	if _, err := movies.Create(ctx, &model.Movie{Title: "Inception", OwnerID: owner}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := movies.Create(ctx, &model.Movie{Title: "Inception", OwnerID: owner})
	if !errors.Is(err, repository.ErrTitleExists) {
		t.Fatalf("expected ErrTitleExists, got %v", err)
	}

	n, err := movies.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 movie after rejected duplicate, got %d", n)
	}
}

func TestCreateRequiresExistingOwner(t *testing.T) {
	db := newTestDB(t)
	movies := repository.NewMovieRepo(db)

	_, err := movies.Create(context.Background(), &model.Movie{Title: "Orphan", OwnerID: 42})
	if !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for missing owner, got %v", err)
	}
}

func TestListAllNewestFirstWithOwnerName(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	ctx := context.Background()
	owner := seedUser(t, users, "alice")

	first := &model.Movie{Title: "Inception", Year: sql.NullInt64{Int64: 2010, Valid: true}, OwnerID: owner}
	second := &model.Movie{Title: "Heat", OwnerID: owner}
	if _, err := movies.Create(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := movies.Create(ctx, second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	all, err := movies.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(all))
	}
	if all[0].Title != "Heat" || all[1].Title != "Inception" {
		t.Fatalf("expected newest first, got %q then %q", all[0].Title, all[1].Title)
	}
	if all[0].AddedBy != "alice" || all[1].AddedBy != "alice" {
		t.Fatalf("expected owner name on both rows, got %+v", all)
	}
	if !all[1].Year.Valid || all[1].Year.Int64 != 2010 {
		t.Fatalf("expected year 2010 on Inception, got %+v", all[1].Year)
	}
}

func TestStats(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	ctx := context.Background()

	// Empty catalog reports a defined zero, not NULL or NaN.
	s, err := movies.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats on empty table failed: %v", err)
	}
	if s.Total != 0 || s.AvgRating != 0 {
		t.Fatalf("expected zero stats for empty catalog, got %+v", s)
	}

	owner := seedUser(t, users, "alice")
	if _, err := movies.Create(ctx, &model.Movie{Title: "A", Rating: 8, OwnerID: owner}); err != nil {
		t.Fatalf("create A: %v", err)
	}
	if _, err := movies.Create(ctx, &model.Movie{Title: "B", Rating: 4, OwnerID: owner}); err != nil {
		t.Fatalf("create B: %v", err)
	}

	s, err = movies.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if s.Total != 2 {
		t.Fatalf("expected total 2, got %d", s.Total)
	}
	if s.AvgRating != 6 {
		t.Fatalf("expected avg rating 6, got %v", s.AvgRating)
	}
}

func TestGetByIDNotFoundMovie(t *testing.T) {
	db := newTestDB(t)
	movies := repository.NewMovieRepo(db)

	if _, err := movies.GetByID(context.Background(), 42); !errors.Is(err, repository.ErrMovieNotFound) {
		t.Fatalf("expected ErrMovieNotFound, got %v", err)
	}
}

func TestOptionalFieldsPersistAsNull(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	ctx := context.Background()
	owner := seedUser(t, users, "alice")

	m := &model.Movie{Title: "Bare", OwnerID: owner}
	if _, err := movies.Create(ctx, m); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := movies.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Year.Valid || got.Director.Valid || got.WatchedDate.Valid || got.PosterURL.Valid {
		t.Fatalf("expected all optional fields NULL, got %+v", got)
	}
	if got.Rating != 0 {
		t.Fatalf("expected default rating 0, got %v", got.Rating)
	}
}
