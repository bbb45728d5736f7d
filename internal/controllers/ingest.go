package controllers

import (
	"context"
	"fmt"

	"github.com/amaumene/streamarr/internal/models"
	"github.com/amaumene/streamarr/internal/services/sources"
	"github.com/amaumene/streamarr/internal/services/tmdb"
	"github.com/sirupsen/logrus"
)

// CatalogStore is the slice of the database the ingestion pipeline writes to
type CatalogStore interface {
	CreateMovie(movie *models.Movie) error
	GetMovieByTMDBID(tmdbID int) (*models.Movie, error)
	CreateSource(source *models.StreamSource) error
}

// ResultCache memoizes a search query to its result set
type ResultCache interface {
	Get(query string) ([]models.Movie, bool)
	Put(query string, results []models.Movie)
}

// IngestController coordinates search ingestion: cache lookup, provider
// search, dedupe-by-tmdb-id upsert, source generation and cache write.
type IngestController struct {
	store     CatalogStore
	tmdb      tmdb.API
	generator sources.Generator
	cache     ResultCache
	logger    *logrus.Logger
}

// NewIngestController creates a new ingestion controller
func NewIngestController(store CatalogStore, api tmdb.API, generator sources.Generator, cache ResultCache, logger *logrus.Logger) *IngestController {
	return &IngestController{
		store:     store,
		tmdb:      api,
		generator: generator,
		cache:     cache,
		logger:    logger,
	}
}

// Search ingests the provider results for one query into the catalog and
// returns the normalized records in provider order. A fresh cache entry
// short-circuits the provider call entirely. Provider transport failures
// abort the call; per-item store failures only drop that item.
func (c *IngestController) Search(ctx context.Context, query string, mediaType models.MediaType) ([]models.Movie, error) {
	if cached, ok := c.cache.Get(query); ok {
		c.logger.WithField("query", query).Info("Returning cached search results")
		return cached, nil
	}

	c.logger.WithFields(logrus.Fields{
		"query": query,
		"type":  mediaType,
	}).Info("Searching provider")

	items, err := c.tmdb.Search(ctx, query, mediaType)
	if err != nil {
		return nil, fmt.Errorf("provider search failed: %w", err)
	}

	c.logger.WithField("count", len(items)).Debug("Provider results received")

	movies := make([]models.Movie, 0, len(items))
	for _, item := range items {
		movie, err := c.upsertItem(item, tmdb.NormalizeSearchItem(item, mediaType))
		if err != nil {
			// Partial success is accepted: log and continue with the rest
			c.logger.WithError(err).WithField("tmdb_id", item.ID).Error("Failed to ingest item, skipping")
			continue
		}
		movies = append(movies, *movie)
	}

	c.cache.Put(query, movies)

	c.logger.WithFields(logrus.Fields{
		"query": query,
		"count": len(movies),
	}).Info("Search ingestion completed")

	return movies, nil
}

// upsertItem reuses the identity of an already ingested tmdb id, or
// inserts a new record and attaches its generated sources. Re-ingesting
// an existing id never regenerates sources.
func (c *IngestController) upsertItem(item tmdb.Item, normalized models.Movie) (*models.Movie, error) {
	existing, err := c.store.GetMovieByTMDBID(item.ID)
	if err == nil {
		return existing, nil
	}
	if err != models.ErrNotFound {
		return nil, fmt.Errorf("tmdb id lookup failed: %w", err)
	}

	if err := c.store.CreateMovie(&normalized); err != nil {
		return nil, fmt.Errorf("insert failed: %w", err)
	}

	for _, source := range c.generator.Generate(item.ID) {
		source.MovieID = normalized.ID
		if err := c.store.CreateSource(&source); err != nil {
			// A record with missing sources renders as "no sources
			// available" downstream, so the item itself survives
			c.logger.WithError(err).WithField("movie_id", normalized.ID).Error("Failed to save stream source")
		}
	}

	c.logger.WithFields(logrus.Fields{
		"title":   normalized.Title,
		"year":    normalized.Year,
		"tmdb_id": normalized.TMDBID,
	}).Info("Added new catalog entry")

	return &normalized, nil
}
