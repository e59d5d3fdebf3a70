package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestSaveRunAssignsUUID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{Seed: 7, Width: 320, Duration: 42 * time.Second, Deaths: 3})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("run ID %q is not a UUID: %v", id, err)
	}

	r, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if r == nil {
		t.Fatal("saved run not found")
	}
	if r.Seed != 7 || r.Width != 320 || r.Duration != 42*time.Second || r.Deaths != 3 {
		t.Errorf("run = %+v", r)
	}
	if r.Player != LocalPlayer {
		t.Errorf("player = %q, want %q", r.Player, LocalPlayer)
	}
	if r.CreatedAt.IsZero() {
		t.Error("created_at not populated")
	}

	missing, err := store.RunByID("nope")
	if err != nil || missing != nil {
		t.Errorf("RunByID(missing) = %v, %v", missing, err)
	}
}

func TestSaveRunDuplicateID(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Run{RunID: "fixed", Duration: time.Second}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveRun(Run{RunID: "fixed", Duration: time.Second}); err == nil {
		t.Error("duplicate run ID should fail")
	}
}

func TestBestRunsOrdering(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Seed: 1, Duration: 30 * time.Second, Deaths: 0},
		{Seed: 2, Duration: 20 * time.Second, Deaths: 5},
		{Seed: 3, Duration: 20 * time.Second, Deaths: 1},
		{Seed: 1, Duration: 50 * time.Second, Deaths: 0},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	best, err := store.BestRuns(10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	wantSeeds := []int64{3, 2, 1, 1}
	if len(best) != len(wantSeeds) {
		t.Fatalf("got %d runs, want %d", len(best), len(wantSeeds))
	}
	for i, want := range wantSeeds {
		if best[i].Seed != want {
			t.Errorf("best[%d].Seed = %d, want %d", i, best[i].Seed, want)
		}
	}

	limited, err := store.BestRuns(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("limit 2 returned %d runs", len(limited))
	}

	seed1, err := store.BestRunsForSeed(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(seed1) != 2 || seed1[0].Duration != 30*time.Second {
		t.Errorf("BestRunsForSeed(1) = %+v", seed1)
	}

	recent, err := store.RecentRuns(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0].Duration != 50*time.Second {
		t.Errorf("RecentRuns(1) = %+v", recent)
	}
}

func TestBestTime(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.BestTime(9); err != nil || ok {
		t.Errorf("BestTime on empty store = ok %v, err %v", ok, err)
	}

	for _, d := range []time.Duration{40 * time.Second, 35500 * time.Millisecond} {
		if _, err := store.SaveRun(Run{Seed: 9, Duration: d}); err != nil {
			t.Fatal(err)
		}
	}

	d, ok, err := store.BestTime(9)
	if err != nil || !ok {
		t.Fatalf("BestTime = ok %v, err %v", ok, err)
	}
	if d != 35500*time.Millisecond {
		t.Errorf("BestTime = %v, want 35.5s", d)
	}
}

func TestStatsAndClear(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	for _, r := range []Run{
		{Seed: 1, Duration: 10 * time.Second, Deaths: 2},
		{Seed: 1, Duration: 20 * time.Second, Deaths: 1},
		{Seed: 2, Duration: 30 * time.Second, Deaths: 0},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Runs != 3 || stats.Courses != 2 || stats.TotalDeaths != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Best != 10*time.Second || stats.Average != 20*time.Second {
		t.Errorf("best/avg = %v/%v", stats.Best, stats.Average)
	}

	if err := store.ClearRuns(); err != nil {
		t.Fatal(err)
	}
	runs, err := store.BestRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("after ClearRuns got %d runs", len(runs))
	}
}
