// Package reel is the client side of the review store: a stateless HTTP
// client for review mutations, a durable local cache of the signed-in
// user's reviews, and the poster join that decorates cached reviews with
// TMDb metadata. The remote store is authoritative; the cache is a
// read-through, write-optimistic projection of it.
package reel

// PosterPlaceholder stands in for a poster whose metadata lookup failed
// or returned nothing.
const PosterPlaceholder = "https://via.placeholder.com/90x135?text=No+Image"

// Review mirrors the review store wire format. PosterURL is populated
// client-side by the poster join and never sent back to the store.
type Review struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	MovieID    int64  `json:"movie_id"`
	MovieTitle string `json:"movie_title,omitempty"`
	Comment    string `json:"comment"`
	Rating     int    `json:"rating"`
	PosterURL  string `json:"poster_url,omitempty"`
}

// NewReview carries the fields needed to create a review.
type NewReview struct {
	UserID  string `json:"user_id"`
	MovieID int64  `json:"movie_id"`
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

// Patch carries the two mutable review fields. UserID and MovieID are
// immutable after creation and have no place here.
type Patch struct {
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}
