// Package config loads the game's JSON configuration. A missing file is
// created with defaults on first run, and an fsnotify watcher lets the
// running game pick up edits without restarting.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"chosenoffset.com/glowworm/internal/engine"
)

// Config holds everything tunable from outside the binary.
type Config struct {
	GridSize           int    `json:"grid_size"`
	CellSize           int    `json:"cell_size"`
	TickMillis         int    `json:"tick_millis"`
	OverlayDelayMillis int    `json:"overlay_delay_millis"`
	WindowScale        int    `json:"window_scale"`     // integer canvas upscale for the window
	DataDir            string `json:"data_dir"`         // score database and snapshots live here
	Audio              bool   `json:"audio"`            // sound cues on by default
	SpectatorAddr      string `json:"spectator_addr"`   // e.g. "127.0.0.1:8089"; empty disables
	SnapshotOnDeath    bool   `json:"snapshot_on_death"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		GridSize:           20,
		CellSize:           24,
		TickMillis:         140,
		OverlayDelayMillis: 900,
		WindowScale:        2,
		DataDir:            "data",
		Audio:              true,
		SpectatorAddr:      "",
		SnapshotOnDeath:    false,
	}
}

// Load reads the configuration at path. When the file does not exist it is
// written with defaults and those defaults are returned.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as indented JSON, creating the parent
// directory if needed.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.GridSize < 4 {
		return fmt.Errorf("grid_size %d too small", c.GridSize)
	}
	if c.CellSize < 4 {
		return fmt.Errorf("cell_size %d too small", c.CellSize)
	}
	if c.TickMillis < 16 {
		return fmt.Errorf("tick_millis %d below one display frame", c.TickMillis)
	}
	if c.WindowScale < 1 {
		return fmt.Errorf("window_scale %d invalid", c.WindowScale)
	}
	return nil
}

// Engine converts the file values into simulation parameters.
func (c *Config) Engine() engine.Config {
	return engine.Config{
		GridSize:     c.GridSize,
		CellSize:     c.CellSize,
		TickPeriod:   time.Duration(c.TickMillis) * time.Millisecond,
		OverlayDelay: time.Duration(c.OverlayDelayMillis) * time.Millisecond,
	}
}

// Watch re-reads the file whenever it changes on disk and hands the result
// to onChange. Unparseable intermediate states (editors often write in two
// steps) are skipped. The returned closer stops the watcher.
func Watch(path string, onChange func(*Config)) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	// Watch the directory, not the file: many editors replace the file on
	// save, which would silently drop a file-level watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch config dir: %w", err)
	}

	abs, _ := filepath.Abs(path)
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evAbs, _ := filepath.Abs(event.Name); evAbs != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if cfg, err := Load(path); err == nil {
					onChange(cfg)
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return watcher.Close, nil
}
