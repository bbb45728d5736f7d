package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/amaumene/streamarr/internal/models"
	"github.com/sirupsen/logrus"
)

// ProfileHandler serves the caller's display profile
type ProfileHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(db *models.Database, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{
		db:     db,
		logger: logger,
	}
}

// Get handles GET /api/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		writeError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	profile, err := h.db.GetProfile(user)
	if err != nil {
		if err == models.ErrNotFound {
			writeError(w, http.StatusNotFound, "profile not found")
		} else {
			h.logger.WithError(err).WithField("user_id", user).Error("Failed to load profile")
			writeError(w, http.StatusInternalServerError, "failed to load profile")
		}
		return
	}

	writeData(w, profile)
}

// Put handles PUT /api/profile
func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		writeError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var req struct {
		DisplayName string `json:"display_name"`
		AvatarURL   string `json:"avatar_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile := &models.Profile{
		UserID:      user,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	}
	if err := h.db.UpsertProfile(profile); err != nil {
		h.logger.WithError(err).WithField("user_id", user).Error("Failed to save profile")
		writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	writeData(w, profile)
}
