package controllers

import (
	"context"

	"github.com/amaumene/streamarr/internal/models"
	"github.com/amaumene/streamarr/internal/services/sources"
	"github.com/amaumene/streamarr/internal/services/tmdb"
	"github.com/sirupsen/logrus"
)

// PopulateController fills the catalog from the fixed TMDB category
// listings (trending, popular, top rated, upcoming, airing).
type PopulateController struct {
	store      CatalogStore
	tmdb       tmdb.API
	generator  sources.Generator
	categories []tmdb.Category
	logger     *logrus.Logger
}

// NewPopulateController creates a new populate controller over the
// default category list
func NewPopulateController(store CatalogStore, api tmdb.API, generator sources.Generator, logger *logrus.Logger) *PopulateController {
	return &PopulateController{
		store:      store,
		tmdb:       api,
		generator:  generator,
		categories: tmdb.DefaultCategories,
		logger:     logger,
	}
}

// Run pulls every category and inserts the entries the catalog does not
// have yet. Returns how many were added. A failing category is logged
// and skipped; the remaining categories still run.
func (c *PopulateController) Run(ctx context.Context) (int, error) {
	c.logger.Info("Starting bulk populate")

	totalAdded := 0
	for _, category := range c.categories {
		items, err := c.tmdb.ListCategory(ctx, category)
		if err != nil {
			c.logger.WithError(err).WithField("category", category.Name).Error("Category listing failed")
			continue
		}

		added := 0
		for _, item := range items {
			_, err := c.store.GetMovieByTMDBID(item.ID)
			if err == nil {
				continue
			}
			if err != models.ErrNotFound {
				c.logger.WithError(err).WithField("tmdb_id", item.ID).Error("TMDB id lookup failed")
				continue
			}

			movie := tmdb.NormalizeBulkItem(item, category.MediaType)
			if err := c.store.CreateMovie(&movie); err != nil {
				c.logger.WithError(err).WithField("title", movie.Title).Error("Failed to insert movie")
				continue
			}

			for _, source := range c.generator.Generate(item.ID) {
				source.MovieID = movie.ID
				if err := c.store.CreateSource(&source); err != nil {
					c.logger.WithError(err).WithField("movie_id", movie.ID).Error("Failed to save stream source")
				}
			}
			added++
		}

		c.logger.WithFields(logrus.Fields{
			"category": category.Name,
			"added":    added,
		}).Info("Category populated")
		totalAdded += added
	}

	c.logger.WithField("total_added", totalAdded).Info("Bulk populate completed")
	return totalAdded, nil
}
