// Package input translates raw key events into engine actions. The mapping
// depends on the current phase: the confirm key starts a round only from
// idle or dead, the pause key toggles only an active round, and direction
// keys matter only while playing.
package input

import (
	"chosenoffset.com/glowworm/internal/engine"
	"chosenoffset.com/glowworm/internal/entity"
	"chosenoffset.com/glowworm/internal/loop"
)

// Key is a device-independent key identifier. The display backend maps its
// own key codes onto these.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPause
	KeyConfirm
	KeyMute
)

// Controller feeds key presses into the engine's state machine.
type Controller struct {
	engine *engine.Engine
	clock  loop.Clock

	// OnMute, when set, is invoked by the mute key. Audio lives outside
	// the simulation, so the controller only forwards the request.
	OnMute func()
}

// NewController creates a controller for the given engine and clock.
func NewController(e *engine.Engine, clock loop.Clock) *Controller {
	return &Controller{engine: e, clock: clock}
}

// Handle processes one key press. Unknown or currently meaningless keys are
// silently ignored.
func (c *Controller) Handle(key Key) {
	switch key {
	case KeyUp:
		c.engine.QueueDirection(entity.DirUp)
	case KeyDown:
		c.engine.QueueDirection(entity.DirDown)
	case KeyLeft:
		c.engine.QueueDirection(entity.DirLeft)
	case KeyRight:
		c.engine.QueueDirection(entity.DirRight)
	case KeyPause:
		switch c.engine.Phase() {
		case engine.PhasePlaying:
			c.engine.Pause()
		case engine.PhasePaused:
			c.engine.Resume(c.clock.Now())
		}
	case KeyConfirm:
		switch c.engine.Phase() {
		case engine.PhaseIdle, engine.PhaseDead:
			c.engine.Start(c.clock.Now())
		}
	case KeyMute:
		if c.OnMute != nil {
			c.OnMute()
		}
	}
}
