package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glowworm.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GridSize != 20 || cfg.TickMillis != 140 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file was not written: %v", err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glowworm.json")

	cfg := Default()
	cfg.GridSize = 12
	cfg.SpectatorAddr = "127.0.0.1:8089"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.GridSize != 12 {
		t.Errorf("GridSize = %d, want 12", got.GridSize)
	}
	if got.SpectatorAddr != "127.0.0.1:8089" {
		t.Errorf("SpectatorAddr = %q", got.SpectatorAddr)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glowworm.json")
	if err := os.WriteFile(path, []byte(`{"grid_size": 1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for grid_size 1")
	}

	if err := os.WriteFile(path, []byte(`{not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestEngineConversion(t *testing.T) {
	cfg := Default()
	cfg.TickMillis = 200
	ec := cfg.Engine()
	if ec.TickPeriod != 200*time.Millisecond {
		t.Errorf("TickPeriod = %v", ec.TickPeriod)
	}
	if ec.GridSize != cfg.GridSize || ec.CellSize != cfg.CellSize {
		t.Errorf("geometry mismatch: %+v", ec)
	}
}

func TestWatchPicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glowworm.json")
	if _, err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	changed := make(chan *Config, 4)
	stop, err := Watch(path, func(c *Config) { changed <- c })
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer stop()

	cfg := Default()
	cfg.TickMillis = 90
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	select {
	case got := <-changed:
		if got.TickMillis != 90 {
			t.Errorf("TickMillis = %d, want 90", got.TickMillis)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload event within deadline")
	}
}
