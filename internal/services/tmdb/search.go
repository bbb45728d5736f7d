package tmdb

import (
	"context"
	"fmt"
	"net/url"

	"github.com/amaumene/streamarr/internal/models"
)

const (
	// searchLimit caps how many results one search ingests
	searchLimit = 10
	// categoryLimit caps how many results one category listing ingests
	categoryLimit = 50
)

// Category is one fixed TMDB listing endpoint used by bulk population
type Category struct {
	Name      string
	Path      string
	MediaType models.MediaType
}

// DefaultCategories is the fixed list of endpoints bulk population iterates
var DefaultCategories = []Category{
	{Name: "trending movies this week", Path: "/trending/movie/week", MediaType: models.MediaTypeMovie},
	{Name: "trending tv this week", Path: "/trending/tv/week", MediaType: models.MediaTypeTV},
	{Name: "popular movies", Path: "/movie/popular", MediaType: models.MediaTypeMovie},
	{Name: "popular tv", Path: "/tv/popular", MediaType: models.MediaTypeTV},
	{Name: "top rated movies", Path: "/movie/top_rated", MediaType: models.MediaTypeMovie},
	{Name: "top rated tv", Path: "/tv/top_rated", MediaType: models.MediaTypeTV},
	{Name: "upcoming movies", Path: "/movie/upcoming", MediaType: models.MediaTypeMovie},
	{Name: "now playing movies", Path: "/movie/now_playing", MediaType: models.MediaTypeMovie},
	{Name: "tv airing today", Path: "/tv/airing_today", MediaType: models.MediaTypeTV},
	{Name: "tv on the air", Path: "/tv/on_the_air", MediaType: models.MediaTypeTV},
}

// Search queries TMDB by free text for the given media type.
// Results are capped at 10.
func (c *Client) Search(ctx context.Context, query string, mediaType models.MediaType) ([]Item, error) {
	path := "/search/movie"
	if mediaType == models.MediaTypeTV {
		path = "/search/tv"
	}

	params := url.Values{}
	params.Set("query", query)

	var resp listResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	c.logger.WithField("count", len(resp.Results)).Debug("TMDB search completed")

	return capResults(resp.Results, searchLimit), nil
}

// ListCategory fetches one page of a fixed category listing.
// Results are capped at 50.
func (c *Client) ListCategory(ctx context.Context, category Category) ([]Item, error) {
	var resp listResponse
	if err := c.get(ctx, category.Path, nil, &resp); err != nil {
		return nil, fmt.Errorf("category listing %q failed: %w", category.Name, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"category": category.Name,
		"count":    len(resp.Results),
	}).Debug("TMDB category listing completed")

	return capResults(resp.Results, categoryLimit), nil
}

func capResults(items []Item, limit int) []Item {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
