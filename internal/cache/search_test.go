package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/amaumene/streamarr/internal/models"
	"github.com/amaumene/streamarr/internal/utils"
)

func newTestCache(t *testing.T, ttl time.Duration) (*SearchCache, *models.Database) {
	t.Helper()

	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewSearchCache(db, ttl, utils.NewLogger("error")), db
}

func TestGetMissOnEmptyCache(t *testing.T) {
	c, _ := newTestCache(t, 24*time.Hour)

	if _, ok := c.Get("inception"); ok {
		t.Error("expected miss on empty cache")
	}
}

func TestPutThenGet(t *testing.T) {
	c, _ := newTestCache(t, 24*time.Hour)

	results := []models.Movie{{Title: "Inception", Year: "2010"}}
	c.Put("inception", results)

	got, ok := c.Get("inception")
	if !ok {
		t.Fatal("expected hit after put")
	}
	if len(got) != 1 || got[0].Title != "Inception" {
		t.Errorf("unexpected cached results: %+v", got)
	}

	if _, ok := c.Get("other query"); ok {
		t.Error("different query must not hit")
	}
}

func TestFreshnessWindow(t *testing.T) {
	c, _ := newTestCache(t, 24*time.Hour)

	written := time.Now()
	c.Put("inception", []models.Movie{{Title: "Inception"}})

	// 23h59m after the write: still fresh
	c.now = func() time.Time { return written.Add(24*time.Hour - time.Minute) }
	if _, ok := c.Get("inception"); !ok {
		t.Error("entry should still be fresh just inside the window")
	}

	// 24h01m after the write: expired, lookup must miss
	c.now = func() time.Time { return written.Add(24*time.Hour + time.Minute) }
	if _, ok := c.Get("inception"); ok {
		t.Error("entry past the window must be ignored")
	}
}

func TestNewestEntryWins(t *testing.T) {
	c, db := newTestCache(t, 24*time.Hour)

	if err := db.SaveSearch("q", []models.Movie{{Title: "old"}}); err != nil {
		t.Fatalf("SaveSearch: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if err := db.SaveSearch("q", []models.Movie{{Title: "new"}}); err != nil {
		t.Fatalf("SaveSearch: %v", err)
	}

	got, ok := c.Get("q")
	if !ok {
		t.Fatal("expected hit")
	}
	if len(got) != 1 || got[0].Title != "new" {
		t.Errorf("expected newest entry, got %+v", got)
	}
}

func TestPruneDropsOnlyExpired(t *testing.T) {
	c, db := newTestCache(t, time.Hour)

	c.Put("stale", []models.Movie{{Title: "stale"}})

	// Move the clock past the window and prune the stale entry away
	base := time.Now()
	c.now = func() time.Time { return base.Add(2 * time.Hour) }
	if err := c.Prune(); err != nil {
		t.Fatalf("Prune: %v", err)
	}

	// A fresh entry written afterwards is untouched
	c.now = time.Now
	c.Put("fresh", []models.Movie{{Title: "fresh"}})

	count, err := db.CountSearchEntries()
	if err != nil {
		t.Fatalf("CountSearchEntries: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 surviving entry, got %d", count)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("fresh entry should survive prune")
	}
}
