package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// Database wraps the bolthold store
type Database struct {
	store *bolthold.Store
}

// ErrNotFound is returned when a lookup matches no record
var ErrNotFound = bolthold.ErrNotFound

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// Movie operations

// CreateMovie inserts a new movie and assigns its identity
func (db *Database) CreateMovie(movie *Movie) error {
	movie.CreatedAt = time.Now()
	movie.UpdatedAt = time.Now()
	return db.store.Insert(bolthold.NextSequence(), movie)
}

// UpdateMovie updates an existing movie
func (db *Database) UpdateMovie(movie *Movie) error {
	movie.UpdatedAt = time.Now()
	return db.store.Update(movie.ID, movie)
}

// GetMovieByID retrieves a movie by its identity
func (db *Database) GetMovieByID(id uint64) (*Movie, error) {
	var movie Movie
	err := db.store.Get(id, &movie)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// GetMovieByTMDBID retrieves a movie by its TMDB id.
// Manual entries (TMDBID 0) are never looked up this way.
func (db *Database) GetMovieByTMDBID(tmdbID int) (*Movie, error) {
	if tmdbID == 0 {
		return nil, bolthold.ErrNotFound
	}
	var movie Movie
	err := db.store.FindOne(&movie, bolthold.Where("TMDBID").Eq(tmdbID))
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// GetMoviesByType retrieves all movies of one media type, newest first
func (db *Database) GetMoviesByType(mediaType MediaType) ([]*Movie, error) {
	var movies []*Movie
	err := db.store.Find(&movies, bolthold.Where("MediaType").Eq(mediaType))
	if err != nil {
		return nil, err
	}
	sortNewestFirst(movies)
	return movies, nil
}

// GetAllMovies retrieves every movie, newest first
func (db *Database) GetAllMovies() ([]*Movie, error) {
	var movies []*Movie
	err := db.store.Find(&movies, nil)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(movies)
	return movies, nil
}

// SearchMovies returns movies whose title, genre or director contains the
// query, case-insensitively. No ranking: results are newest first.
func (db *Database) SearchMovies(query string) ([]*Movie, error) {
	all, err := db.GetAllMovies()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var matches []*Movie
	for _, movie := range all {
		if strings.Contains(strings.ToLower(movie.Title), q) ||
			strings.Contains(strings.ToLower(movie.Genre), q) ||
			strings.Contains(strings.ToLower(movie.Director), q) {
			matches = append(matches, movie)
		}
	}

	return matches, nil
}

func sortNewestFirst(movies []*Movie) {
	sort.Slice(movies, func(i, j int) bool {
		return movies[i].CreatedAt.After(movies[j].CreatedAt)
	})
}

// Stream source operations

// CreateSource attaches a stream source to a movie
func (db *Database) CreateSource(source *StreamSource) error {
	if source.Language == "" {
		source.Language = DefaultLanguage
	}
	source.CreatedAt = time.Now()
	return db.store.Insert(bolthold.NextSequence(), source)
}

// GetSourcesByMovieID retrieves all stream sources for a movie
func (db *Database) GetSourcesByMovieID(movieID uint64) ([]*StreamSource, error) {
	var sources []*StreamSource
	err := db.store.Find(&sources, bolthold.Where("MovieID").Eq(movieID))
	return sources, err
}

// CountSources returns the total number of stream sources
func (db *Database) CountSources() (int, error) {
	var sources []*StreamSource
	err := db.store.Find(&sources, nil)
	return len(sources), err
}

// Watchlist operations

// AddToWatchlist saves a movie to a user's watchlist.
// Adding an already saved movie is a no-op.
func (db *Database) AddToWatchlist(userID string, movieID uint64) error {
	var existing WatchlistEntry
	err := db.store.FindOne(&existing,
		bolthold.Where("UserID").Eq(userID).And("MovieID").Eq(movieID))
	if err == nil {
		return nil
	}
	if err != bolthold.ErrNotFound {
		return err
	}

	entry := &WatchlistEntry{
		UserID:    userID,
		MovieID:   movieID,
		CreatedAt: time.Now(),
	}
	return db.store.Insert(bolthold.NextSequence(), entry)
}

// RemoveFromWatchlist deletes a movie from a user's watchlist
func (db *Database) RemoveFromWatchlist(userID string, movieID uint64) error {
	return db.store.DeleteMatching(&WatchlistEntry{},
		bolthold.Where("UserID").Eq(userID).And("MovieID").Eq(movieID))
}

// GetWatchlist returns the movies on a user's watchlist, newest addition first.
// Entries pointing at deleted movies are skipped.
func (db *Database) GetWatchlist(userID string) ([]*Movie, error) {
	var entries []*WatchlistEntry
	err := db.store.Find(&entries, bolthold.Where("UserID").Eq(userID))
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	movies := make([]*Movie, 0, len(entries))
	for _, entry := range entries {
		movie, err := db.GetMovieByID(entry.MovieID)
		if err != nil {
			continue
		}
		movies = append(movies, movie)
	}

	return movies, nil
}

// CountWatchlistEntries returns the total number of watchlist entries
func (db *Database) CountWatchlistEntries() (int, error) {
	var entries []*WatchlistEntry
	err := db.store.Find(&entries, nil)
	return len(entries), err
}

// Review operations

// UpsertReview creates a review or replaces the user's previous review of
// the same movie
func (db *Database) UpsertReview(review *Review) error {
	var existing Review
	err := db.store.FindOne(&existing,
		bolthold.Where("UserID").Eq(review.UserID).And("MovieID").Eq(review.MovieID))
	if err == nil {
		existing.Rating = review.Rating
		existing.Comment = review.Comment
		existing.UpdatedAt = time.Now()
		*review = existing
		return db.store.Update(existing.ID, &existing)
	}
	if err != bolthold.ErrNotFound {
		return err
	}

	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()
	return db.store.Insert(bolthold.NextSequence(), review)
}

// GetReviewsByMovieID returns all reviews for a movie, newest first,
// decorated with the author's profile when one exists
func (db *Database) GetReviewsByMovieID(movieID uint64) ([]*ReviewWithAuthor, error) {
	var reviews []*Review
	err := db.store.Find(&reviews, bolthold.Where("MovieID").Eq(movieID))
	if err != nil {
		return nil, err
	}

	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})

	result := make([]*ReviewWithAuthor, 0, len(reviews))
	for _, review := range reviews {
		decorated := &ReviewWithAuthor{Review: *review}
		if profile, err := db.GetProfile(review.UserID); err == nil {
			decorated.DisplayName = profile.DisplayName
			decorated.AvatarURL = profile.AvatarURL
		}
		result = append(result, decorated)
	}

	return result, nil
}

// CountReviews returns the total number of reviews
func (db *Database) CountReviews() (int, error) {
	var reviews []*Review
	err := db.store.Find(&reviews, nil)
	return len(reviews), err
}

// Profile operations

// GetProfile retrieves a user's profile
func (db *Database) GetProfile(userID string) (*Profile, error) {
	var profile Profile
	err := db.store.Get(userID, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile creates or updates a user's profile
func (db *Database) UpsertProfile(profile *Profile) error {
	existing, err := db.GetProfile(profile.UserID)
	if err == nil {
		profile.CreatedAt = existing.CreatedAt
		profile.UpdatedAt = time.Now()
		return db.store.Update(profile.UserID, profile)
	}
	if err != bolthold.ErrNotFound {
		return err
	}

	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()
	return db.store.Insert(profile.UserID, profile)
}

// Search history operations

// GetLatestSearch returns the newest cached entry for a query, or ErrNotFound
func (db *Database) GetLatestSearch(query string) (*SearchEntry, error) {
	var entries []*SearchEntry
	err := db.store.Find(&entries, bolthold.Where("Query").Eq(query))
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, bolthold.ErrNotFound
	}

	latest := entries[0]
	for _, entry := range entries[1:] {
		if entry.CreatedAt.After(latest.CreatedAt) {
			latest = entry
		}
	}
	return latest, nil
}

// SaveSearch appends a cache entry for a query. Older entries for the same
// query are kept; lookups always take the newest.
func (db *Database) SaveSearch(query string, results []Movie) error {
	entry := &SearchEntry{
		Query:     query,
		Results:   results,
		CreatedAt: time.Now(),
	}
	return db.store.Insert(bolthold.NextSequence(), entry)
}

// DeleteSearchesBefore removes cache entries created before the cutoff
func (db *Database) DeleteSearchesBefore(cutoff time.Time) error {
	return db.store.DeleteMatching(&SearchEntry{},
		bolthold.Where("CreatedAt").Lt(cutoff))
}

// CountSearchEntries returns the total number of cached searches
func (db *Database) CountSearchEntries() (int, error) {
	var entries []*SearchEntry
	err := db.store.Find(&entries, nil)
	return len(entries), err
}
