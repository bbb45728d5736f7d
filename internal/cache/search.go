// Package cache memoizes search results for a fixed freshness window.
package cache

import (
	"time"

	"github.com/amaumene/streamarr/internal/models"
	"github.com/sirupsen/logrus"
)

// SearchCache memoizes a search query to its result set, backed by the
// database. Entries older than the freshness window are invisible to
// lookups. Catalog writes do not invalidate entries: a cached result can
// lag concurrently ingested records until the window lapses.
type SearchCache struct {
	db     *models.Database
	ttl    time.Duration
	logger *logrus.Logger
	now    func() time.Time
}

// NewSearchCache creates a cache with the given freshness window
func NewSearchCache(db *models.Database, ttl time.Duration, logger *logrus.Logger) *SearchCache {
	return &SearchCache{
		db:     db,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Get returns the cached result set for a query if a fresh entry exists
func (c *SearchCache) Get(query string) ([]models.Movie, bool) {
	entry, err := c.db.GetLatestSearch(query)
	if err != nil {
		if err != models.ErrNotFound {
			c.logger.WithError(err).Warn("Search cache lookup failed")
		}
		return nil, false
	}

	if c.now().Sub(entry.CreatedAt) >= c.ttl {
		c.logger.WithField("query", query).Debug("Search cache entry expired")
		return nil, false
	}

	c.logger.WithField("query", query).Debug("Search cache hit")
	return entry.Results, true
}

// Put caches a result set under the query key
func (c *SearchCache) Put(query string, results []models.Movie) {
	if err := c.db.SaveSearch(query, results); err != nil {
		// A failed cache write only costs a future provider call
		c.logger.WithError(err).Warn("Failed to write search cache")
	}
}

// Prune deletes entries old enough to be invisible to Get.
// Purely housekeeping: lookup behavior is unchanged.
func (c *SearchCache) Prune() error {
	return c.db.DeleteSearchesBefore(c.now().Add(-c.ttl))
}
