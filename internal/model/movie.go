package model

import "database/sql"

// Movie represents a row in the `movies` table.  Optional columns use
// database/sql null wrappers so that an omitted form value round-trips as
// NULL instead of a zero value.  Every movie belongs to exactly one owner;
// rows created before ownership tracking default to the bootstrap user
// (id 1) at the schema level.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – movie title, unique across all users.
//  Year        – release year (nullable).
//  Director    – director name (nullable).
//  Rating      – numeric rating, 0 when not supplied.
//  WatchedDate – date the movie was watched, free-form string (nullable).
//  PosterURL   – public URL path of the uploaded poster (nullable).
//  OwnerID     – user ID of the owner (movies.user_id).
//  CreatedAt   – timestamp when the row was created (DB timezone string).
type Movie struct {
    ID          uint64         // movies.id
    Title       string         // movies.title
    Year        sql.NullInt64  // movies.year
    Director    sql.NullString // movies.director
    Rating      float64        // movies.rating
    WatchedDate sql.NullString // movies.watched_date
    PosterURL   sql.NullString // movies.poster_url
    OwnerID     uint64         // movies.user_id
    CreatedAt   string         // movies.created_at
}

// MovieWithOwner pairs a movie with the username of the user who added it,
// as produced by the list and detail queries (JOIN against users).
type MovieWithOwner struct {
    Movie
    AddedBy string // users.username of the owner
}

// Stats aggregates the catalog for the index page.  AvgRating is 0 when the
// catalog is empty, never NULL or NaN.
type Stats struct {
    Total     int     // COUNT(*) over movies
    AvgRating float64 // AVG(rating), 0 for an empty table
}
