// Package loop drives the per-frame sequence: at most one simulation tick,
// then effect advancement, then rendering, strictly in that order. The clock
// is injected so tests can drive frames without a real display or timer.
package loop

import (
	"image"
	"time"

	"chosenoffset.com/glowworm/internal/engine"
	"chosenoffset.com/glowworm/internal/render"
)

// Clock supplies the current time. The game loop never calls time.Now
// directly.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock implementation used by the real game.
type SystemClock struct{}

// Now returns the current wall time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Driver composes the engine and the render pipeline into the per-frame
// callback invoked by the display backend.
type Driver struct {
	engine   *engine.Engine
	pipeline *render.Pipeline
	clock    Clock

	// OnFrame, when set, receives every rendered frame. The spectator
	// endpoint and the snapshot exporter hang off this hook.
	OnFrame func(image.Image)
}

// NewDriver wires a driver from its parts.
func NewDriver(e *engine.Engine, p *render.Pipeline, clock Clock) *Driver {
	return &Driver{engine: e, pipeline: p, clock: clock}
}

// Frame runs one display frame. Even if far more than one tick period has
// elapsed, at most one tick executes; the remainder is dropped in favor of
// smooth rendering over strict timing under load.
func (d *Driver) Frame() image.Image {
	now := d.clock.Now()

	d.engine.Advance(now)
	progress := d.engine.Progress(now)

	// Effects move per frame, not per tick, and keep moving while paused
	// or dead so the scene stays alive behind the overlay.
	d.engine.Particles().Advance()
	d.engine.Floaters().Advance()

	img := d.pipeline.Draw(d.engine, progress)
	if d.OnFrame != nil {
		d.OnFrame(img)
	}
	return img
}

// Clock returns the injected clock, shared with the input controller so
// phase transitions anchor to the same time source.
func (d *Driver) Clock() Clock {
	return d.clock
}
