package main // Entry point package

import (
	"context" // context for the startup migration
	"log"     // Logging library

	"github.com/joho/godotenv"    // Optional .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/movie-tracker/internal/config"     // Internal config loader
	"github.com/iliyamo/movie-tracker/internal/database"   // SQLite open + schema migrations
	"github.com/iliyamo/movie-tracker/internal/handler"    // HTTP handlers
	"github.com/iliyamo/movie-tracker/internal/middleware" // Session middleware
	"github.com/iliyamo/movie-tracker/internal/repository" // DB repositories
	"github.com/iliyamo/movie-tracker/internal/router"     // Route registration
	"github.com/iliyamo/movie-tracker/internal/session"    // Session stores
	"github.com/iliyamo/movie-tracker/internal/upload"     // Poster upload store
	"github.com/iliyamo/movie-tracker/internal/view"       // HTML template renderer
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env vars win
	cfg := config.Load()

	// Open the embedded database and bring the schema up to date.  A
	// migration failure means the schema may be inconsistent, so it is
	// fatal rather than something to limp past.
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("migrate schema: %v", err)
	}

	// Repositories over the shared connection pool.
	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	reviews := repository.NewReviewRepo(db)

	// Session backend: Redis when configured and reachable, otherwise the
	// in-process store.
	var sessions session.Store
	if cfg.SessionStore == "redis" {
		if client := config.NewRedisClient(); client != nil {
			sessions = session.NewRedisStore(client, cfg.SessionTTLMin)
			log.Printf("sessions: redis store")
		} else {
			log.Printf("sessions: redis unreachable, falling back to memory store")
		}
	}
	if sessions == nil {
		sessions = session.NewMemoryStore(cfg.SessionTTLMin)
	}

	// Poster uploads live in a shared directory served under /uploads.
	posters, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload store: %v", err)
	}

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Renderer = view.NewRenderer()
	e.Use(echomw.Logger())  // Request logging
	e.Use(echomw.Recover()) // Panic recovery
	e.Use(middleware.LoadSession(sessions))
	e.Static(upload.URLPrefix, posters.Dir)

	authH := handler.NewAuthHandler(cfg, users, sessions)
	movieH := handler.NewMovieHandler(movies, reviews, posters)
	reviewH := handler.NewReviewHandler(reviews)

	router.RegisterRoutes(e) // Register application routes
	router.RegisterPublic(e, authH, movieH)
	router.RegisterProtected(e, movieH, reviewH)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
