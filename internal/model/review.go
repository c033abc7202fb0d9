package model

// Review models an entry in the `reviews` table.  Reviews are append-only:
// they are never edited or deleted directly, and disappear only through the
// cascade when their movie or author is removed.
//
// Fields:
//  ID        – primary key identifier.
//  MovieID   – movie the review belongs to (reviews.movie_id).
//  AuthorID  – user who wrote the review (reviews.user_id).
//  Text      – free-form review body.
//  CreatedAt – timestamp of submission (DB timezone string).
type Review struct {
    ID        uint64    // reviews.id
    MovieID   uint64    // reviews.movie_id
    AuthorID  uint64    // reviews.user_id
    Text      string    // reviews.review
    CreatedAt string    // reviews.created_at
}

// ReviewWithAuthor pairs a review with its author's username for rendering
// on the movie detail page.
type ReviewWithAuthor struct {
    Review
    Author string // users.username of the author
}
