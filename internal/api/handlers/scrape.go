package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/amaumene/streamarr/internal/models"
	"github.com/sirupsen/logrus"
)

// Ingester runs the search ingestion pipeline
type Ingester interface {
	Search(ctx context.Context, query string, mediaType models.MediaType) ([]models.Movie, error)
}

// ScrapeHandler handles search ingestion requests
type ScrapeHandler struct {
	ingester Ingester
	logger   *logrus.Logger
}

// NewScrapeHandler creates a new scrape handler
func NewScrapeHandler(ingester Ingester, logger *logrus.Logger) *ScrapeHandler {
	return &ScrapeHandler{
		ingester: ingester,
		logger:   logger,
	}
}

// ScrapeRequest is the search ingestion request body
type ScrapeRequest struct {
	Query string `json:"query"`
	Type  string `json:"type"`
}

// ServeHTTP handles POST /api/scrape
func (h *ScrapeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "Search query is required")
		return
	}

	movies, err := h.ingester.Search(r.Context(), req.Query, models.ParseMediaType(req.Type))
	if err != nil {
		h.logger.WithError(err).WithField("query", req.Query).Error("Search ingestion failed")
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeData(w, movies)
}
