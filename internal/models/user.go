package models

import "time"

// WatchlistEntry marks a movie as saved by a user.
// One entry per (user, movie) pair; created and deleted, never updated.
type WatchlistEntry struct {
	ID      uint64 `boltholdKey:"ID" json:"id"`
	UserID  string `boltholdIndex:"UserID" json:"user_id"`
	MovieID uint64 `json:"movie_id"`

	CreatedAt time.Time `json:"created_at"`
}

// Review is a user's rating and comment on a movie.
// A second review by the same user replaces the first.
type Review struct {
	ID      uint64 `boltholdKey:"ID" json:"id"`
	UserID  string `boltholdIndex:"UserID" json:"user_id"`
	MovieID uint64 `boltholdIndex:"MovieID" json:"movie_id"`

	Rating  int    `json:"rating"` // 1-5
	Comment string `json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile holds display information for a user, joined into review listings
type Profile struct {
	UserID      string `boltholdKey:"UserID" json:"user_id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReviewWithAuthor is a review decorated with the author's profile, if any
type ReviewWithAuthor struct {
	Review
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}
