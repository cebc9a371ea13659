package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSQLiteBestScore(t *testing.T) {
	store := openTestSQLite(t)

	if _, err := store.ReadBest(); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadBest() on empty db error = %v, expected fs.ErrNotExist", err)
	}

	if err := store.WriteBest(12); err != nil {
		t.Fatalf("WriteBest() failed: %v", err)
	}
	if err := store.WriteBest(30); err != nil {
		t.Fatalf("WriteBest() failed: %v", err)
	}

	best, err := store.ReadBest()
	if err != nil {
		t.Fatalf("ReadBest() failed: %v", err)
	}
	if best != 30 {
		t.Errorf("ReadBest() = %d, expected 30", best)
	}

	if err := store.ClearBest(); err != nil {
		t.Fatalf("ClearBest() failed: %v", err)
	}
	if _, err := store.ReadBest(); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadBest() after clear error = %v, expected fs.ErrNotExist", err)
	}
}

func TestSQLiteBestScoreSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	if err := store.WriteBest(9); err != nil {
		t.Fatalf("WriteBest() failed: %v", err)
	}
	store.Close()

	reopened, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite() reopen failed: %v", err)
	}
	defer reopened.Close()

	best, err := reopened.ReadBest()
	if err != nil || best != 9 {
		t.Errorf("ReadBest() = %d, %v, expected 9, nil", best, err)
	}
}

func TestSQLiteRounds(t *testing.T) {
	store := openTestSQLite(t)

	rounds := []Round{
		{Score: 3, Level: 1, Ticks: 900},
		{Score: 11, Level: 3, Ticks: 4000},
		{Score: 0, Level: 1, Ticks: 201},
		{Score: 7, Level: 2, Ticks: 2500},
	}
	for _, r := range rounds {
		id, err := store.RecordRound(r)
		if err != nil {
			t.Fatalf("RecordRound() failed: %v", err)
		}
		if id <= 0 {
			t.Errorf("RecordRound() id = %d, expected positive", id)
		}
	}

	top, err := store.TopRounds(3)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("TopRounds() returned %d rounds, expected 3", len(top))
	}
	expected := []int{11, 7, 3}
	for i, score := range expected {
		if top[i].Score != score {
			t.Errorf("TopRounds()[%d].Score = %d, expected %d", i, top[i].Score, score)
		}
	}
	if top[0].Level != 3 || top[0].Ticks != 4000 {
		t.Errorf("TopRounds()[0] = %+v, expected level 3 and 4000 ticks", top[0])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}

	recent, err := store.RecentRounds(2)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentRounds() returned %d rounds, expected 2", len(recent))
	}
	if recent[0].Score != 7 || recent[1].Score != 0 {
		t.Errorf("RecentRounds() scores = %d, %d, expected 7, 0", recent[0].Score, recent[1].Score)
	}
}

func TestSQLiteStats(t *testing.T) {
	store := openTestSQLite(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Rounds != 0 || stats.BestRound != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Stats() on empty db = %+v, expected zero values", stats)
	}

	for _, r := range []Round{{Score: 4, Level: 1, Ticks: 100}, {Score: 6, Level: 2, Ticks: 300}} {
		if _, err := store.RecordRound(r); err != nil {
			t.Fatalf("RecordRound() failed: %v", err)
		}
	}

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Rounds != 2 {
		t.Errorf("Rounds = %d, expected 2", stats.Rounds)
	}
	if stats.BestRound != 6 {
		t.Errorf("BestRound = %d, expected 6", stats.BestRound)
	}
	if stats.MaxLevel != 2 {
		t.Errorf("MaxLevel = %d, expected 2", stats.MaxLevel)
	}
	if stats.AvgScore != 5 {
		t.Errorf("AvgScore = %v, expected 5", stats.AvgScore)
	}
	if stats.TotalScore != 10 || stats.TotalTicks != 400 {
		t.Errorf("TotalScore/TotalTicks = %d/%d, expected 10/400", stats.TotalScore, stats.TotalTicks)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	if err := store.ClearRounds(); err != nil {
		t.Fatalf("ClearRounds() failed: %v", err)
	}
	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Rounds != 0 {
		t.Errorf("Rounds after ClearRounds() = %d, expected 0", stats.Rounds)
	}
}

func TestSQLiteImplementsInterfaces(t *testing.T) {
	var b Backend = openTestSQLite(t)
	if _, ok := b.(Recorder); !ok {
		t.Error("SQLiteStore should implement Recorder")
	}
	if _, ok := b.(Clearer); !ok {
		t.Error("SQLiteStore should implement Clearer")
	}
}
