package history

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store := NewSQLiteStore()
	dbPath := filepath.Join(t.TempDir(), "history-test.db")
	if err := store.Initialize(dbPath); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// TestRecordAndRecent tests storing deployments and reading them back
// newest first
func TestRecordAndRecent(t *testing.T) {
	store := newTestStore(t)

	base := time.Now().Truncate(time.Second)
	deployments := []Deployment{
		{ID: "dep-1", Project: "myapp", URL: "https://myapp-1.vercel.app", Timestamp: base.Add(-2 * time.Hour)},
		{ID: "dep-2", Project: "myapp", URL: "https://myapp-2.vercel.app", Timestamp: base.Add(-1 * time.Hour)},
		{ID: "dep-3", Project: "myapp", URL: "https://myapp-3.vercel.app", Timestamp: base},
	}
	for _, dep := range deployments {
		if err := store.Record(dep); err != nil {
			t.Fatalf("Failed to record deployment %s: %v", dep.ID, err)
		}
	}

	recent, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 deployments, got %d", len(recent))
	}
	if recent[0].ID != "dep-3" || recent[1].ID != "dep-2" {
		t.Errorf("Expected newest-first order, got %s, %s", recent[0].ID, recent[1].ID)
	}
	if recent[0].URL != "https://myapp-3.vercel.app" {
		t.Errorf("Unexpected URL: %s", recent[0].URL)
	}
	if !recent[0].Timestamp.Equal(base) {
		t.Errorf("Expected timestamp %v, got %v", base, recent[0].Timestamp)
	}
}

// TestRecordReplace tests that recording twice under one ID replaces the row
func TestRecordReplace(t *testing.T) {
	store := newTestStore(t)

	dep := Deployment{ID: "dep-1", Project: "myapp", URL: "https://old.vercel.app", Timestamp: time.Now()}
	if err := store.Record(dep); err != nil {
		t.Fatalf("Failed to record deployment: %v", err)
	}

	dep.URL = "https://new.vercel.app"
	if err := store.Record(dep); err != nil {
		t.Fatalf("Failed to re-record deployment: %v", err)
	}

	recent, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Expected 1 deployment after replace, got %d", len(recent))
	}
	if recent[0].URL != "https://new.vercel.app" {
		t.Errorf("Expected replaced URL, got %s", recent[0].URL)
	}
}

// TestRecentLimits tests edge-case limits
func TestRecentLimits(t *testing.T) {
	store := newTestStore(t)

	recent, err := store.Recent(0)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("Expected no deployments for limit 0, got %d", len(recent))
	}

	recent, err = store.Recent(5)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("Expected no deployments in empty store, got %d", len(recent))
	}
}

// TestClear tests clearing the store and the returned count
func TestClear(t *testing.T) {
	store := newTestStore(t)

	for _, id := range []string{"dep-1", "dep-2"} {
		dep := Deployment{ID: id, Project: "myapp", URL: "https://myapp.vercel.app", Timestamp: time.Now()}
		if err := store.Record(dep); err != nil {
			t.Fatalf("Failed to record deployment: %v", err)
		}
	}

	count, err := store.Clear()
	if err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 cleared deployments, got %d", count)
	}

	recent, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("Expected empty store after clear, got %d deployments", len(recent))
	}
}
