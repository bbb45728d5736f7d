package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amaumene/streamarr/internal/config"
	"github.com/amaumene/streamarr/internal/models"
	"github.com/amaumene/streamarr/internal/utils"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	cfg := &config.Config{
		TMDBAPIKey:     "test-key",
		TMDBBaseURL:    baseURL,
		TMDBRatePerSec: 1000,
	}
	client, err := NewClient(cfg, utils.NewLogger("error"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestSearchParsesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("query") != "Inception" {
			t.Errorf("unexpected query %q", r.URL.Query().Get("query"))
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Errorf("api key not sent")
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"page": 1,
			"results": []map[string]interface{}{
				{
					"id":           27205,
					"title":        "Inception",
					"release_date": "2010-07-15",
					"vote_average": 8.4,
					"genre_ids":    []int{28, 878},
				},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	items, err := client.Search(context.Background(), "Inception", models.MediaTypeMovie)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ID != 27205 || items[0].Title != "Inception" {
		t.Errorf("unexpected item: %+v", items[0])
	}
}

func TestSearchCapsAtTen(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		results := make([]map[string]interface{}, 0, 15)
		for i := 0; i < 15; i++ {
			results = append(results, map[string]interface{}{
				"id":    i + 1,
				"title": fmt.Sprintf("Movie %d", i+1),
			})
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"results": results})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	items, err := client.Search(context.Background(), "movie", models.MediaTypeMovie)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 10 {
		t.Errorf("expected results capped at 10, got %d", len(items))
	}
}

func TestSearchUsesTVPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]interface{}{"results": []Item{}})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	if _, err := client.Search(context.Background(), "lost", models.MediaTypeTV); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotPath != "/search/tv" {
		t.Errorf("path = %q, want /search/tv", gotPath)
	}
}

func TestNon2xxIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status_message":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	if _, err := client.Search(context.Background(), "anything", models.MediaTypeMovie); err == nil {
		t.Fatal("expected error on 401 response")
	}
	if _, err := client.ListCategory(context.Background(), DefaultCategories[0]); err == nil {
		t.Fatal("expected error on 401 response")
	}
}

func TestListCategoryCapsAtFifty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		results := make([]map[string]interface{}, 0, 60)
		for i := 0; i < 60; i++ {
			results = append(results, map[string]interface{}{"id": i + 1})
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"results": results})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	items, err := client.ListCategory(context.Background(), Category{
		Name:      "popular movies",
		Path:      "/movie/popular",
		MediaType: models.MediaTypeMovie,
	})
	if err != nil {
		t.Fatalf("ListCategory: %v", err)
	}
	if len(items) != 50 {
		t.Errorf("expected results capped at 50, got %d", len(items))
	}
}
