package config // package config loads application configuration from environment variables

import (
    "log"      // log is used to report configuration errors and halt execution
    "os"       // os provides access to environment variables
    "strconv"  // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and paths, ints for costs and
// durations expressed in minutes.
type Config struct {
    Env           string // application environment (e.g. "dev", "prod")
    Port          string // HTTP port to listen on
    DBPath        string // filesystem path of the SQLite database file
    UploadDir     string // directory where uploaded poster files are written
    SessionStore  string // session backend: "memory" or "redis"
    SessionTTLMin int    // session time‑to‑live in minutes
    BcryptCost    int    // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Variables with a
// sensible default use optional().
func Load() Config {
    return Config{
        Env:           must("APP_ENV"),                          // environment (dev/test/prod)
        Port:          must("APP_PORT"),                         // port to bind the HTTP server
        DBPath:        must("DB_PATH"),                          // SQLite database file
        UploadDir:     optional("UPLOAD_DIR", "public/uploads"), // poster upload directory
        SessionStore:  optional("SESSION_STORE", "memory"),      // session backend selector
        SessionTTLMin: mustInt("SESSION_TTL_MIN"),               // TTL for browser sessions in minutes
        BcryptCost:    mustInt("BCRYPT_COST"),                   // bcrypt cost factor
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// optional returns the value of an environment variable or the provided
// default when the variable is unset or empty.
func optional(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}
