package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Populator runs the bulk category ingestion
type Populator interface {
	Run(ctx context.Context) (int, error)
}

// PopulateHandler handles bulk population requests
type PopulateHandler struct {
	populator Populator
	logger    *logrus.Logger
}

// NewPopulateHandler creates a new populate handler
func NewPopulateHandler(populator Populator, logger *logrus.Logger) *PopulateHandler {
	return &PopulateHandler{
		populator: populator,
		logger:    logger,
	}
}

// ServeHTTP handles POST /api/populate
func (h *PopulateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	added, err := h.populator.Run(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Bulk populate failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeMessage(w, fmt.Sprintf("Successfully added %d movies/shows to database", added))
}
