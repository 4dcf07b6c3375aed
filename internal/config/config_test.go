package config

import (
	"path/filepath"
	"testing"
)

// withHome points os.UserHomeDir at dir for the duration of the test, so
// Save/Load exercise the real ~/.chesscore/engine.toml path resolution
// against an isolated temporary directory.
func withHome(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("HOME", dir)
	t.Setenv("USERPROFILE", dir)
}

func TestDefaultMatchesLevelSchedule(t *testing.T) {
	d := Default()
	if d.Levels[3].BaseDepth != 3 || d.Levels[3].ExtendedDepth != 2 {
		t.Errorf("unexpected level 3 schedule: %+v", d.Levels[3])
	}
	if d.QueenValue != 120 {
		t.Errorf("expected default queen value 120, got %d", d.QueenValue)
	}
	if d.AspirationDelta != 25 || d.AspirationMax != 400 {
		t.Errorf("unexpected aspiration defaults: delta=%d max=%d", d.AspirationDelta, d.AspirationMax)
	}
}

func TestLoadFileMissingReturnsDefault(t *testing.T) {
	got := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	want := Default()
	if got != want {
		t.Errorf("expected Default() for a missing file, got %+v", got)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	withHome(t, t.TempDir())

	cfg := Default()
	cfg.QueenValue = 95
	cfg.TTSizeMB = 64
	cfg.Levels[5].BaseDepth = 6

	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := Load()
	if got.QueenValue != 95 {
		t.Errorf("expected queen value 95 after round trip, got %d", got.QueenValue)
	}
	if got.TTSizeMB != 64 {
		t.Errorf("expected TT size 64 after round trip, got %d", got.TTSizeMB)
	}
	if got.Levels[5].BaseDepth != 6 {
		t.Errorf("expected level 5 base depth 6 after round trip, got %d", got.Levels[5].BaseDepth)
	}
}

func TestLoadFileExplicitPath(t *testing.T) {
	dir := t.TempDir()
	withHome(t, dir)

	cfg := Default()
	cfg.AspirationDelta = 40
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path := filepath.Join(dir, ".chesscore", "engine.toml")
	got := LoadFile(path)
	if got.AspirationDelta != 40 {
		t.Errorf("expected aspiration delta 40, got %d", got.AspirationDelta)
	}
}
