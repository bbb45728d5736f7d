package models

import "time"

// Movie represents a catalog entry (movie or TV show) ingested from TMDB
// or entered manually
type Movie struct {
	ID     uint64 `boltholdKey:"ID" json:"id"`
	TMDBID int    `boltholdIndex:"TMDBID" json:"tmdb_id,omitempty"` // 0 for manual entries, which are never deduped

	MediaType MediaType `json:"type"`
	Title     string    `json:"title"`
	Year      string    `json:"year"` // "Unknown" when the provider has no release date
	Rating    float64   `json:"rating"`
	Genre     string    `json:"genre"` // comma-joined genre names

	Poster      string `json:"poster"`
	Description string `json:"description"`

	// Extended metadata (bulk ingestion fills these with defaults)
	Duration string   `json:"duration,omitempty"`
	Director string   `json:"director,omitempty"`
	Cast     []string `json:"cast,omitempty"`
	Trailer  string   `json:"trailer,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StreamSource is a playable resource attached to a movie.
// A movie can have zero sources; duplicates are tolerated.
type StreamSource struct {
	ID      uint64 `boltholdKey:"ID" json:"id"`
	MovieID uint64 `boltholdIndex:"MovieID" json:"movie_id"`

	URL      string `json:"source_url"`
	Quality  string `json:"quality"` // free text, e.g. "1080p"
	Provider string `json:"provider"`
	Language string `json:"language"`

	CreatedAt time.Time `json:"created_at"`
}

// SearchEntry memoizes the result set of one search query
type SearchEntry struct {
	ID      uint64 `boltholdKey:"ID"`
	Query   string `boltholdIndex:"Query"`
	Results []Movie

	CreatedAt time.Time
}
