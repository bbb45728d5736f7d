package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/amaumene/streamarr/internal/api/handlers"
	"github.com/amaumene/streamarr/internal/api/middleware"
	"github.com/amaumene/streamarr/internal/config"
	"github.com/amaumene/streamarr/internal/controllers"
	"github.com/amaumene/streamarr/internal/models"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	server       *http.Server
	db           *models.Database
	ingestCtrl   *controllers.IngestController
	populateCtrl *controllers.PopulateController
	logger       *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, db *models.Database, ingestCtrl *controllers.IngestController, populateCtrl *controllers.PopulateController, logger *logrus.Logger) *Server {
	s := &Server{
		db:           db,
		ingestCtrl:   ingestCtrl,
		populateCtrl: populateCtrl,
		logger:       logger,
	}

	router := mux.NewRouter()
	s.setupRoutes(router)

	handler := middleware.RequestID(middleware.Logging(router, logger))

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(router *mux.Router) {
	healthHandler := handlers.NewHealthHandler(s.logger)
	router.Handle("/health", healthHandler).Methods(http.MethodGet)

	statusHandler := handlers.NewStatusHandler(s.db, s.logger)
	router.Handle("/status", statusHandler).Methods(http.MethodGet)

	apiRouter := router.PathPrefix("/api").Subrouter()

	scrapeHandler := handlers.NewScrapeHandler(s.ingestCtrl, s.logger)
	apiRouter.Handle("/scrape", scrapeHandler).Methods(http.MethodPost)

	populateHandler := handlers.NewPopulateHandler(s.populateCtrl, s.logger)
	apiRouter.Handle("/populate", populateHandler).Methods(http.MethodPost)

	catalogHandler := handlers.NewCatalogHandler(s.db, s.logger)
	apiRouter.HandleFunc("/movies", catalogHandler.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/movies/search", catalogHandler.Search).Methods(http.MethodGet)
	apiRouter.HandleFunc("/movies/{id:[0-9]+}", catalogHandler.Get).Methods(http.MethodGet)
	apiRouter.HandleFunc("/movies/{id:[0-9]+}/sources", catalogHandler.Sources).Methods(http.MethodGet)

	watchlistHandler := handlers.NewWatchlistHandler(s.db, s.logger)
	apiRouter.HandleFunc("/watchlist", watchlistHandler.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/watchlist", watchlistHandler.Add).Methods(http.MethodPost)
	apiRouter.HandleFunc("/watchlist/{movieID:[0-9]+}", watchlistHandler.Remove).Methods(http.MethodDelete)

	reviewsHandler := handlers.NewReviewsHandler(s.db, s.logger)
	apiRouter.HandleFunc("/movies/{id:[0-9]+}/reviews", reviewsHandler.Upsert).Methods(http.MethodPost)
	apiRouter.HandleFunc("/movies/{id:[0-9]+}/reviews", reviewsHandler.List).Methods(http.MethodGet)

	profileHandler := handlers.NewProfileHandler(s.db, s.logger)
	apiRouter.HandleFunc("/profile", profileHandler.Get).Methods(http.MethodGet)
	apiRouter.HandleFunc("/profile", profileHandler.Put).Methods(http.MethodPut)
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
