package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/ringrun/internal/config"
	"github.com/vovakirdan/ringrun/internal/games/needle/sim"
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

func snapshot(score, streak int, hits sim.ZoneCounts) sim.Snapshot {
	return sim.Snapshot{
		Seed:           7,
		Score:          score,
		BestStreak:     streak,
		PeakMultiplier: sim.MultiplierFor(streak, config.DefaultConfig().Score.Thresholds),
		Hits:           hits,
		TotalRings:     hits.Total(),
		Accuracy:       hits.Accuracy(),
		CoreAccuracy:   hits.CoreAccuracy(),
		Distance:       120,
		Elapsed:        12.5,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.RecordRun("classic", snapshot(300, 4, sim.ZoneCounts{Core: 4})); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	store.Close()

	// Migrations already applied must not fail or wipe data.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("HighScore() = %d, expected 300", high)
	}
}

func TestStoreRecordAndTopRuns(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.RecordRun("classic", snapshot(score, score/10, sim.ZoneCounts{Core: 2, Miss: 1})); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}
	if _, err := store.RecordRun("hardcore", snapshot(500, 3, sim.ZoneCounts{Inner: 3})); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	runs, err := store.TopRuns("classic", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("TopRuns() returned %d runs, expected 3", len(runs))
	}

	expected := []int{200, 100, 50}
	for i, want := range expected {
		if runs[i].Score != want {
			t.Errorf("runs[%d].Score = %d, expected %d", i, runs[i].Score, want)
		}
	}

	top := runs[0]
	if top.Mode != "classic" || top.Seed != 7 || top.BestStreak != 20 {
		t.Errorf("top run = %+v", top)
	}
	if top.Hits.Core != 2 || top.Hits.Miss != 1 || top.TotalRings != 3 {
		t.Errorf("top run hits = %+v, total %d", top.Hits, top.TotalRings)
	}
	if top.Duration != 12.5 || top.Distance != 120 {
		t.Errorf("top run duration = %v distance = %v", top.Duration, top.Distance)
	}
	if top.CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}

	limited, err := store.TopRuns("classic", 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("TopRuns(2) returned %d runs", len(limited))
	}
}

func TestStoreRecordsEmptyMode(t *testing.T) {
	store := openTestStore(t)

	high, best, err := store.Records("relaxed")
	if err != nil {
		t.Fatalf("Records() failed: %v", err)
	}
	if high != 0 || best != 0 {
		t.Errorf("Records() = %d, %d, expected 0, 0", high, best)
	}

	runs, err := store.TopRuns("relaxed", 0)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("TopRuns() on empty mode = %d runs", len(runs))
	}
}

func TestStoreRecordsTrackMaxima(t *testing.T) {
	store := openTestStore(t)

	// Highest score and longest streak come from different runs.
	store.RecordRun("classic", snapshot(900, 6, sim.ZoneCounts{Core: 6}))
	store.RecordRun("classic", snapshot(400, 12, sim.ZoneCounts{Core: 12}))

	high, best, err := store.Records("classic")
	if err != nil {
		t.Fatalf("Records() failed: %v", err)
	}
	if high != 900 || best != 12 {
		t.Errorf("Records() = %d, %d, expected 900, 12", high, best)
	}

	streak, err := store.BestStreak("classic")
	if err != nil {
		t.Fatalf("BestStreak() failed: %v", err)
	}
	if streak != 12 {
		t.Errorf("BestStreak() = %d, expected 12", streak)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.RecordRun("classic", snapshot(100, 1, sim.ZoneCounts{Core: 1}))
	store.RecordRun("hardcore", snapshot(200, 1, sim.ZoneCounts{Core: 1}))

	if err := store.ClearRuns("classic"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("classic", 10)
	if len(runs) != 0 {
		t.Errorf("classic runs after clear = %d, expected 0", len(runs))
	}
	runs, _ = store.TopRuns("hardcore", 10)
	if len(runs) != 1 {
		t.Errorf("hardcore runs after clearing classic = %d, expected 1", len(runs))
	}
}

func TestStoreModeStats(t *testing.T) {
	store := openTestStore(t)

	store.RecordRun("classic", snapshot(100, 5, sim.ZoneCounts{Core: 3, Inner: 1, Miss: 1}))
	store.RecordRun("classic", snapshot(300, 9, sim.ZoneCounts{Core: 5, Middle: 2, Outer: 1, Miss: 2}))
	store.RecordRun("relaxed", snapshot(50, 2, sim.ZoneCounts{Inner: 2}))

	stats, err := store.GetModeStats("classic")
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}

	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, expected 2", stats.GamesCount)
	}
	if stats.HighScore != 300 || stats.TotalScore != 400 || stats.AvgScore != 200 {
		t.Errorf("scores = high %d total %d avg %v", stats.HighScore, stats.TotalScore, stats.AvgScore)
	}
	if stats.Hits.Core != 8 || stats.Hits.Miss != 3 || stats.TotalRings != 15 {
		t.Errorf("Hits = %+v, TotalRings = %d", stats.Hits, stats.TotalRings)
	}
	if stats.LongestStreak != 9 || stats.PeakMultiplier != 2 {
		t.Errorf("LongestStreak = %d, PeakMultiplier = %d", stats.LongestStreak, stats.PeakMultiplier)
	}
	if stats.PlayTime != 25 {
		t.Errorf("PlayTime = %v, expected 25", stats.PlayTime)
	}
	if got := stats.Accuracy(); got != 80 {
		t.Errorf("Accuracy() = %v, expected 80", got)
	}
	if stats.LastPlayed.IsZero() || stats.FirstPlayed.IsZero() {
		t.Error("play dates were not parsed")
	}

	empty, err := store.GetModeStats("hardcore")
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty mode stats = %+v", empty)
	}
}

func TestStoreAllModeStats(t *testing.T) {
	store := openTestStore(t)

	store.RecordRun("classic", snapshot(100, 1, sim.ZoneCounts{Core: 1}))
	store.RecordRun("relaxed", snapshot(70, 1, sim.ZoneCounts{Core: 1}))
	store.RecordRun("relaxed", snapshot(30, 1, sim.ZoneCounts{Miss: 1}))

	all, err := store.GetAllModeStats()
	if err != nil {
		t.Fatalf("GetAllModeStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("GetAllModeStats() returned %d modes, expected 2", len(all))
	}
	if all["relaxed"].GamesCount != 2 || all["relaxed"].HighScore != 70 {
		t.Errorf("relaxed stats = %+v", all["relaxed"])
	}
}

func TestStoreLastRun(t *testing.T) {
	store := openTestStore(t)

	last, err := store.LastRun("classic")
	if err != nil || last != nil {
		t.Fatalf("LastRun() on empty store = %v, %v", last, err)
	}

	store.RecordRun("classic", snapshot(500, 1, sim.ZoneCounts{Core: 1}))
	store.RecordRun("classic", snapshot(20, 1, sim.ZoneCounts{Core: 1}))

	last, err = store.LastRun("classic")
	if err != nil {
		t.Fatalf("LastRun() failed: %v", err)
	}
	if last == nil || last.Score != 20 {
		t.Errorf("LastRun() = %+v, expected score 20", last)
	}
}
