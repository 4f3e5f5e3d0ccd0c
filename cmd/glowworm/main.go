package main

import (
	"flag"
	"image"
	"log"
	"math/rand"
	"path/filepath"
	"time"

	"chosenoffset.com/glowworm/internal/audio"
	"chosenoffset.com/glowworm/internal/config"
	"chosenoffset.com/glowworm/internal/engine"
	"chosenoffset.com/glowworm/internal/input"
	"chosenoffset.com/glowworm/internal/loop"
	"chosenoffset.com/glowworm/internal/render"
	ebitenwindow "chosenoffset.com/glowworm/internal/render/ebiten"
	"chosenoffset.com/glowworm/internal/score"
	"chosenoffset.com/glowworm/internal/snapshot"
	"chosenoffset.com/glowworm/internal/spectator"
)

func main() {
	configPath := flag.String("config", "glowworm.json", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	store := openStore(cfg)
	defer store.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	eng := engine.New(cfg.Engine(), rng, store)

	pipeline := render.NewPipeline(eng.Config())
	eng.SetOverlay(pipeline.Overlay())

	driver := loop.NewDriver(eng, pipeline, loop.SystemClock{})
	controller := input.NewController(eng, driver.Clock())

	player := audio.NewPlayer()
	player.Init()
	player.SetMuted(!cfg.Audio)
	controller.OnMute = func() {
		if player.ToggleMute() {
			log.Println("audio muted")
		} else {
			log.Println("audio unmuted")
		}
	}
	eng.OnStarted = func() { player.PlayStart() }
	eng.OnConsumed = func(x, y float64) { player.PlayConsume() }

	wireDeath(cfg, eng, driver, player)
	wireSpectator(cfg, eng, driver)
	watchConfig(*configPath, player)

	side := eng.Config().CanvasSize()
	window := ebitenwindow.NewWindow(driver, controller, side, side, cfg.WindowScale)
	if err := window.Run("Glowworm"); err != nil {
		log.Fatal(err)
	}
}

// openStore opens the SQLite score database, falling back to an in-memory
// store when the file cannot be opened. Scores then last for the session
// only, which beats refusing to start.
func openStore(cfg *config.Config) score.Store {
	path := filepath.Join(cfg.DataDir, "glowworm.db")
	st, err := score.OpenSQLite(path)
	if err != nil {
		log.Printf("score database unavailable, scores will not persist: %v", err)
		return score.NewMemory()
	}
	return st
}

// wireDeath hooks the end-of-round side effects: the death cue and the
// optional score-card snapshot.
func wireDeath(cfg *config.Config, eng *engine.Engine, driver *loop.Driver, player *audio.Player) {
	var writer *snapshot.Writer
	if cfg.SnapshotOnDeath {
		var err error
		writer, err = snapshot.NewWriter(filepath.Join(cfg.DataDir, "cards"))
		if err != nil {
			log.Printf("snapshots disabled: %v", err)
		}
	}

	var lastFrame image.Image
	prev := driver.OnFrame
	driver.OnFrame = func(img image.Image) {
		lastFrame = img
		if prev != nil {
			prev(img)
		}
	}

	eng.OnDied = func(finalScore int) {
		player.PlayDeath()
		if writer == nil || lastFrame == nil {
			return
		}
		if path, err := writer.Save(lastFrame, eng.RoundID(), finalScore, eng.Best()); err != nil {
			log.Printf("score card: %v", err)
		} else {
			log.Printf("score card saved to %s", path)
		}
	}
}

// wireSpectator starts the read-only HTTP view when an address is set.
func wireSpectator(cfg *config.Config, eng *engine.Engine, driver *loop.Driver) {
	if cfg.SpectatorAddr == "" {
		return
	}

	srv := spectator.NewServer()
	prev := driver.OnFrame
	driver.OnFrame = func(img image.Image) {
		srv.PublishFrame(img)
		srv.PublishState(eng.Snapshot())
		if prev != nil {
			prev(img)
		}
	}

	go func() {
		log.Printf("spectator listening on %s", cfg.SpectatorAddr)
		if err := srv.ListenAndServe(cfg.SpectatorAddr); err != nil {
			log.Printf("spectator server stopped: %v", err)
		}
	}()
}

// watchConfig applies live edits to the settings that are safe to change
// while a round is running. Geometry and timing need a restart.
func watchConfig(path string, player *audio.Player) {
	stop, err := config.Watch(path, func(c *config.Config) {
		player.SetMuted(!c.Audio)
		log.Printf("config reloaded from %s", path)
	})
	if err != nil {
		log.Printf("config watch disabled: %v", err)
		return
	}
	_ = stop
}
