package handlers

import (
	"net/http"
	"strconv"

	"github.com/amaumene/streamarr/internal/models"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// CatalogHandler serves the catalog read surface: listings, detail,
// stream sources and local search
type CatalogHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(db *models.Database, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		db:     db,
		logger: logger,
	}
}

// MovieDetail is a movie together with its stream sources
type MovieDetail struct {
	models.Movie
	Sources []*models.StreamSource `json:"sources"`
}

// List handles GET /api/movies?type=movie|tv
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		movies []*models.Movie
		err    error
	)

	if kind := r.URL.Query().Get("type"); kind != "" {
		movies, err = h.db.GetMoviesByType(models.ParseMediaType(kind))
	} else {
		movies, err = h.db.GetAllMovies()
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to list movies")
		writeError(w, http.StatusInternalServerError, "failed to list movies")
		return
	}

	if movies == nil {
		movies = []*models.Movie{}
	}
	writeData(w, movies)
}

// Get handles GET /api/movies/{id}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	movie, ok := h.movieFromPath(w, r)
	if !ok {
		return
	}

	srcs, err := h.db.GetSourcesByMovieID(movie.ID)
	if err != nil {
		h.logger.WithError(err).WithField("movie_id", movie.ID).Error("Failed to load sources")
		srcs = nil
	}
	if srcs == nil {
		srcs = []*models.StreamSource{}
	}

	writeData(w, MovieDetail{Movie: *movie, Sources: srcs})
}

// Sources handles GET /api/movies/{id}/sources.
// A movie without sources is not an error: the play surface renders
// "no sources available".
func (h *CatalogHandler) Sources(w http.ResponseWriter, r *http.Request) {
	movie, ok := h.movieFromPath(w, r)
	if !ok {
		return
	}

	srcs, err := h.db.GetSourcesByMovieID(movie.ID)
	if err != nil {
		h.logger.WithError(err).WithField("movie_id", movie.ID).Error("Failed to load sources")
		writeError(w, http.StatusInternalServerError, "failed to load sources")
		return
	}

	if len(srcs) == 0 {
		writeJSON(w, http.StatusOK, envelope{
			Success: true,
			Data:    []*models.StreamSource{},
			Message: "no sources available",
		})
		return
	}

	writeData(w, srcs)
}

// Search handles GET /api/movies/search?q=
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	movies, err := h.db.SearchMovies(query)
	if err != nil {
		h.logger.WithError(err).WithField("query", query).Error("Local search failed")
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	if movies == nil {
		movies = []*models.Movie{}
	}
	writeData(w, movies)
}

// movieFromPath resolves the {id} path variable to a movie, answering
// the request itself when the id is malformed or unknown
func (h *CatalogHandler) movieFromPath(w http.ResponseWriter, r *http.Request) (*models.Movie, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid movie id")
		return nil, false
	}

	movie, err := h.db.GetMovieByID(id)
	if err != nil {
		if err == models.ErrNotFound {
			writeError(w, http.StatusNotFound, "movie not found")
		} else {
			h.logger.WithError(err).WithField("movie_id", id).Error("Failed to load movie")
			writeError(w, http.StatusInternalServerError, "failed to load movie")
		}
		return nil, false
	}

	return movie, true
}
