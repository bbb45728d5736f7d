package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/amaumene/streamarr/internal/models"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// ReviewsHandler serves review writes and listings
type ReviewsHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewReviewsHandler creates a new reviews handler
func NewReviewsHandler(db *models.Database, logger *logrus.Logger) *ReviewsHandler {
	return &ReviewsHandler{
		db:     db,
		logger: logger,
	}
}

// Upsert handles POST /api/movies/{id}/reviews.
// A second review by the same user replaces the first.
func (h *ReviewsHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		writeError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	movieID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid movie id")
		return
	}
	if _, err := h.db.GetMovieByID(movieID); err != nil {
		writeError(w, http.StatusNotFound, "movie not found")
		return
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	review := &models.Review{
		UserID:  user,
		MovieID: movieID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := h.db.UpsertReview(review); err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":  user,
			"movie_id": movieID,
		}).Error("Failed to save review")
		writeError(w, http.StatusInternalServerError, "failed to save review")
		return
	}

	writeData(w, review)
}

// List handles GET /api/movies/{id}/reviews
func (h *ReviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	reviews, err := h.db.GetReviewsByMovieID(movieID)
	if err != nil {
		h.logger.WithError(err).WithField("movie_id", movieID).Error("Failed to load reviews")
		writeError(w, http.StatusInternalServerError, "failed to load reviews")
		return
	}

	if reviews == nil {
		reviews = []*models.ReviewWithAuthor{}
	}
	writeData(w, reviews)
}
