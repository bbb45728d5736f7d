package tmdb

import (
	"context"

	"github.com/amaumene/streamarr/internal/models"
)

// API is the surface controllers consume, satisfied by *Client
// and by test doubles.
type API interface {
	Search(ctx context.Context, query string, mediaType models.MediaType) ([]Item, error)
	ListCategory(ctx context.Context, category Category) ([]Item, error)
}

var _ API = (*Client)(nil)
