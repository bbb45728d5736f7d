package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/amaumene/streamarr/internal/models"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// WatchlistHandler serves per-user watchlist operations
type WatchlistHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(db *models.Database, logger *logrus.Logger) *WatchlistHandler {
	return &WatchlistHandler{
		db:     db,
		logger: logger,
	}
}

// List handles GET /api/watchlist.
// A signed-out caller gets an empty list, not an error.
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		writeData(w, []*models.Movie{})
		return
	}

	movies, err := h.db.GetWatchlist(user)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", user).Error("Failed to load watchlist")
		writeError(w, http.StatusInternalServerError, "failed to load watchlist")
		return
	}

	if movies == nil {
		movies = []*models.Movie{}
	}
	writeData(w, movies)
}

// Add handles POST /api/watchlist with body {"movie_id": n}
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		writeError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var req struct {
		MovieID uint64 `json:"movie_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MovieID == 0 {
		writeError(w, http.StatusBadRequest, "movie_id is required")
		return
	}

	if _, err := h.db.GetMovieByID(req.MovieID); err != nil {
		writeError(w, http.StatusNotFound, "movie not found")
		return
	}

	if err := h.db.AddToWatchlist(user, req.MovieID); err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":  user,
			"movie_id": req.MovieID,
		}).Error("Failed to add to watchlist")
		writeError(w, http.StatusInternalServerError, "failed to add to watchlist")
		return
	}

	writeMessage(w, "added to watchlist")
}

// Remove handles DELETE /api/watchlist/{movieID}
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		writeError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	movieID, err := strconv.ParseUint(mux.Vars(r)["movieID"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	if err := h.db.RemoveFromWatchlist(user, movieID); err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":  user,
			"movie_id": movieID,
		}).Error("Failed to remove from watchlist")
		writeError(w, http.StatusInternalServerError, "failed to remove from watchlist")
		return
	}

	writeMessage(w, "removed from watchlist")
}
