package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/amaumene/streamarr/internal/models"
	"github.com/amaumene/streamarr/internal/utils"
	"github.com/gorilla/mux"
)

func newTestDB(t *testing.T) *models.Database {
	t.Helper()
	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return env
}

func seedMovie(t *testing.T, db *models.Database, title string) *models.Movie {
	t.Helper()
	movie := &models.Movie{Title: title, MediaType: models.MediaTypeMovie, Year: "2020"}
	if err := db.CreateMovie(movie); err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}
	return movie
}

func TestCatalogSourcesFallback(t *testing.T) {
	db := newTestDB(t)
	movie := seedMovie(t, db, "No Sources Here")

	handler := NewCatalogHandler(db, utils.NewLogger("error"))
	router := mux.NewRouter()
	router.HandleFunc("/api/movies/{id:[0-9]+}/sources", handler.Sources).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/movies/%d/sources", movie.ID), nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, a movie without sources must not error", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Error("expected success envelope")
	}
	if env.Message != "no sources available" {
		t.Errorf("message = %q, want 'no sources available'", env.Message)
	}
}

func TestCatalogGetIncludesSources(t *testing.T) {
	db := newTestDB(t)
	movie := seedMovie(t, db, "With Sources")
	db.CreateSource(&models.StreamSource{MovieID: movie.ID, URL: "https://example.com/v.mp4", Quality: "1080p", Provider: "server1"})

	handler := NewCatalogHandler(db, utils.NewLogger("error"))
	router := mux.NewRouter()
	router.HandleFunc("/api/movies/{id:[0-9]+}", handler.Get).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/movies/%d", movie.ID), nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Success bool        `json:"success"`
		Data    MovieDetail `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Title != "With Sources" || len(body.Data.Sources) != 1 {
		t.Errorf("unexpected detail: %+v", body.Data)
	}
}

func TestCatalogGetUnknownMovie(t *testing.T) {
	db := newTestDB(t)

	handler := NewCatalogHandler(db, utils.NewLogger("error"))
	router := mux.NewRouter()
	router.HandleFunc("/api/movies/{id:[0-9]+}", handler.Get).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies/424242", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Error("expected failure envelope")
	}
}

func TestWatchlistRequiresIdentity(t *testing.T) {
	db := newTestDB(t)
	handler := NewWatchlistHandler(db, utils.NewLogger("error"))

	// writes without identity are rejected
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/watchlist", bytes.NewBufferString(`{"movie_id":1}`))
	handler.Add(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Add without identity: status = %d, want 401", rec.Code)
	}

	// reads render the signed-out state as an empty list
	rec = httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/api/watchlist", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("List without identity: status = %d, want 200", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Error("expected success envelope with empty data")
	}
}

func TestWatchlistAddAndRemove(t *testing.T) {
	db := newTestDB(t)
	movie := seedMovie(t, db, "Listed")

	handler := NewWatchlistHandler(db, utils.NewLogger("error"))
	router := mux.NewRouter()
	router.HandleFunc("/api/watchlist", handler.List).Methods(http.MethodGet)
	router.HandleFunc("/api/watchlist", handler.Add).Methods(http.MethodPost)
	router.HandleFunc("/api/watchlist/{movieID:[0-9]+}", handler.Remove).Methods(http.MethodDelete)

	body, _ := json.Marshal(map[string]uint64{"movie_id": movie.ID})
	req := httptest.NewRequest(http.MethodPost, "/api/watchlist", bytes.NewBuffer(body))
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Add: status = %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/watchlist", nil)
	req.Header.Set("X-User-ID", "user-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var listBody struct {
		Data []models.Movie `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listBody); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listBody.Data) != 1 || listBody.Data[0].Title != "Listed" {
		t.Errorf("unexpected watchlist: %+v", listBody.Data)
	}

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/watchlist/%d", movie.ID), nil)
	req.Header.Set("X-User-ID", "user-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Remove: status = %d", rec.Code)
	}

	list, _ := db.GetWatchlist("user-1")
	if len(list) != 0 {
		t.Errorf("expected empty watchlist, got %d", len(list))
	}
}

func TestReviewRatingValidation(t *testing.T) {
	db := newTestDB(t)
	movie := seedMovie(t, db, "Rated")

	handler := NewReviewsHandler(db, utils.NewLogger("error"))
	router := mux.NewRouter()
	router.HandleFunc("/api/movies/{id:[0-9]+}/reviews", handler.Upsert).Methods(http.MethodPost)

	for _, rating := range []int{0, 6, -1} {
		body, _ := json.Marshal(map[string]interface{}{"rating": rating, "comment": "x"})
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/movies/%d/reviews", movie.ID), bytes.NewBuffer(body))
		req.Header.Set("X-User-ID", "user-1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("rating %d: status = %d, want 400", rating, rec.Code)
		}
	}

	body, _ := json.Marshal(map[string]interface{}{"rating": 4, "comment": "solid"})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/movies/%d/reviews", movie.ID), bytes.NewBuffer(body))
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid rating: status = %d: %s", rec.Code, rec.Body.String())
	}
}

// fakeIngester serves the scrape handler tests
type fakeIngester struct {
	movies []models.Movie
	err    error
}

func (f *fakeIngester) Search(ctx context.Context, query string, mediaType models.MediaType) ([]models.Movie, error) {
	return f.movies, f.err
}

func TestScrapeHandler(t *testing.T) {
	handler := NewScrapeHandler(&fakeIngester{
		movies: []models.Movie{{Title: "Inception", Year: "2010"}},
	}, utils.NewLogger("error"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/scrape",
		bytes.NewBufferString(`{"query":"Inception","type":"movie"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Error("expected success envelope")
	}
}

func TestScrapeHandlerRejectsEmptyQuery(t *testing.T) {
	handler := NewScrapeHandler(&fakeIngester{}, utils.NewLogger("error"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/scrape",
		bytes.NewBufferString(`{"type":"movie"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestScrapeHandlerSurfacesProviderFailure(t *testing.T) {
	handler := NewScrapeHandler(&fakeIngester{
		err: errors.New("provider search failed: TMDB API returned status 500"),
	}, utils.NewLogger("error"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/scrape",
		bytes.NewBufferString(`{"query":"anything","type":"movie"}`)))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success || env.Error == "" {
		t.Errorf("expected failure envelope with error, got %+v", env)
	}
}
