package handlers

import (
	"net/http"

	"github.com/amaumene/streamarr/internal/models"
	"github.com/sirupsen/logrus"
)

// StatusHandler reports catalog counts
type StatusHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(db *models.Database, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		db:     db,
		logger: logger,
	}
}

// StatusResponse represents the status payload
type StatusResponse struct {
	TotalMovies   int            `json:"total_movies"`
	MoviesByType  map[string]int `json:"movies_by_type"`
	StreamSources int            `json:"stream_sources"`
	Watchlisted   int            `json:"watchlist_entries"`
	Reviews       int            `json:"reviews"`
	CachedQueries int            `json:"cached_queries"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	movies, err := h.db.GetAllMovies()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get movies")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	response := StatusResponse{
		TotalMovies:  len(movies),
		MoviesByType: make(map[string]int),
	}
	for _, movie := range movies {
		response.MoviesByType[string(movie.MediaType)]++
	}

	// Count errors degrade the field to zero rather than failing the page
	response.StreamSources, _ = h.db.CountSources()
	response.Watchlisted, _ = h.db.CountWatchlistEntries()
	response.Reviews, _ = h.db.CountReviews()
	response.CachedQueries, _ = h.db.CountSearchEntries()

	writeData(w, response)
}
