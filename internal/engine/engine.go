// Package engine owns the round simulation: the creature, the item, the
// score, and the phase state machine. It advances on a fixed tick period
// driven from outside, and exposes read-only state plus an interpolation
// fraction to the renderer. All mutation happens inside a tick or a phase
// transition; nothing here runs on its own goroutine.
package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"chosenoffset.com/glowworm/internal/effects"
	"chosenoffset.com/glowworm/internal/entity"
	"chosenoffset.com/glowworm/internal/gamemath"
	"chosenoffset.com/glowworm/internal/score"
)

// Phase is the round lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhasePaused
	PhaseDead
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseDead:
		return "dead"
	}
	return "unknown"
}

// Config holds the fixed simulation parameters.
type Config struct {
	GridSize     int           // cells per side
	CellSize     int           // pixels per cell
	TickPeriod   time.Duration // fixed simulation step
	OverlayDelay time.Duration // pause between death and the end-of-round card
}

// DefaultConfig returns the standard 20x20 board at 140 ms per tick.
func DefaultConfig() Config {
	return Config{
		GridSize:     20,
		CellSize:     24,
		TickPeriod:   140 * time.Millisecond,
		OverlayDelay: 900 * time.Millisecond,
	}
}

// CanvasSize returns the square canvas side in pixels.
func (c Config) CanvasSize() int {
	return c.GridSize * c.CellSize
}

// OverlayPresenter is the host surface for the idle/paused/dead cards.
type OverlayPresenter interface {
	Show(title, message, button string)
	Hide()
}

// burstParticles is how many particles a consumed item or a death emits.
const burstParticles = 24

// Engine is the simulation state machine. Construct with New; all methods
// must be called from the single game loop goroutine.
type Engine struct {
	cfg   Config
	rng   *rand.Rand
	store score.Store

	phase    Phase
	creature *entity.Creature
	item     entity.Item

	dir       entity.Direction
	nextDir   entity.Direction
	dirLocked bool

	roundScore   int
	best         int
	sessionHigh  int
	roundsPlayed int
	roundID      string
	roundStart   time.Time
	lastTick     time.Time

	particles *effects.ParticlePool
	floaters  *effects.FloaterPool

	overlay   OverlayPresenter
	pendingAt time.Time // zero when no deferred action is scheduled
	pendingFn func()

	// Event hooks for collaborators that sit outside the simulation
	// (audio cues, snapshot export). All optional.
	OnStarted  func()
	OnConsumed func(x, y float64) // pixel center of the consumed item
	OnDied     func(finalScore int)
}

// New creates an engine in the idle phase. The best score is read from the
// store exactly once, here; the store fails soft to zero on access errors.
func New(cfg Config, rng *rand.Rand, st score.Store) *Engine {
	side := float64(cfg.CanvasSize())
	return &Engine{
		cfg:       cfg,
		rng:       rng,
		store:     st,
		phase:     PhaseIdle,
		creature:  entity.NewCreature(cfg.GridSize),
		dir:       entity.DirRight,
		nextDir:   entity.DirRight,
		best:      st.Best(),
		particles: effects.NewParticlePool(rng, side, side),
		floaters:  effects.NewFloaterPool(),
	}
}

// SetOverlay attaches the overlay surface and presents the idle card.
func (e *Engine) SetOverlay(o OverlayPresenter) {
	e.overlay = o
	if e.phase == PhaseIdle {
		e.showIdleCard()
	}
}

// --- Phase transitions ---

// Start begins a new round from idle or dead. It resets the creature, the
// score, the direction state and the effect pools, places the first item,
// and anchors the tick timer to now.
func (e *Engine) Start(now time.Time) {
	if e.phase != PhaseIdle && e.phase != PhaseDead {
		return
	}

	e.creature = entity.NewCreature(e.cfg.GridSize)
	e.dir = entity.DirRight
	e.nextDir = entity.DirRight
	e.dirLocked = false
	e.roundScore = 0
	e.roundID = uuid.New().String()
	e.roundStart = now
	e.lastTick = now
	e.particles.Reset()
	e.floaters.Reset()
	e.cancelDeferred()

	item, err := entity.PlaceItem(e.rng, e.cfg.GridSize, e.creature.OccupiedCells())
	if err != nil {
		// Unreachable with a 3-segment creature; keep idle rather than
		// start an unplayable round.
		return
	}
	e.item = item

	e.phase = PhasePlaying
	if e.overlay != nil {
		e.overlay.Hide()
	}
	if e.OnStarted != nil {
		e.OnStarted()
	}
}

// Pause freezes the simulation. Rendering continues; ticks do not.
func (e *Engine) Pause() {
	if e.phase != PhasePlaying {
		return
	}
	e.phase = PhasePaused
	if e.overlay != nil {
		e.overlay.Show("PAUSED", "", "Press P to resume")
	}
}

// Resume returns from paused to playing, re-anchoring the tick timer to now
// so the frozen interval does not fast-forward into a catch-up tick.
func (e *Engine) Resume(now time.Time) {
	if e.phase != PhasePaused {
		return
	}
	e.phase = PhasePlaying
	e.lastTick = now
	if e.overlay != nil {
		e.overlay.Hide()
	}
}

// --- Frame entry points ---

// Advance runs any due deferred action and, when playing and a full tick
// period has elapsed, executes exactly one tick. The loop driver calls this
// once per frame; a slow frame therefore never produces a burst of
// catch-up ticks.
func (e *Engine) Advance(now time.Time) {
	e.runDeferred(now)

	if e.phase != PhasePlaying {
		return
	}
	if now.Sub(e.lastTick) >= e.cfg.TickPeriod {
		e.tick(now)
	}
}

// Progress returns the interpolation fraction: elapsed time since the last
// tick over the tick period, clamped to [0, 1]. Outside the playing phase it
// is pinned to 1 so everything renders at rest.
func (e *Engine) Progress(now time.Time) float64 {
	if e.phase != PhasePlaying {
		return 1
	}
	return gamemath.Clamp01(float64(now.Sub(e.lastTick)) / float64(e.cfg.TickPeriod))
}

// QueueDirection requests a direction change for the next tick. At most one
// change is honored per tick, and a request that exactly reverses the
// committed direction is rejected. Reports whether the request was accepted.
func (e *Engine) QueueDirection(d entity.Direction) bool {
	if e.phase != PhasePlaying || e.dirLocked {
		return false
	}
	if d == e.dir || d.IsReverse(e.dir) {
		return false
	}
	e.nextDir = d
	e.dirLocked = true
	return true
}

// --- Tick ---

func (e *Engine) tick(now time.Time) {
	// Commit the queued direction and unlock input for the next tick.
	e.dir = e.nextDir
	e.dirLocked = false

	// Every segment records its span start, so interpolation has a valid
	// prev->current pair for the whole body, not just the head.
	e.creature.SnapshotPrev()

	head := e.creature.Head()
	candidate := entity.Cell{X: head.X + e.dir.DX, Y: head.Y + e.dir.DY}

	// Collisions are checked before the cascade mutates any position, so a
	// death tick leaves every segment exactly where it was.
	if candidate.X < 0 || candidate.X >= e.cfg.GridSize ||
		candidate.Y < 0 || candidate.Y >= e.cfg.GridSize {
		e.die(now)
		return
	}
	if e.creature.HitsBody(candidate) {
		e.die(now)
		return
	}

	consumed := candidate == e.item.Cell()

	e.creature.Cascade(candidate)

	if consumed {
		e.consume(now)
	}

	e.lastTick = now
}

func (e *Engine) consume(now time.Time) {
	e.roundScore++
	if e.roundScore > e.sessionHigh {
		e.sessionHigh = e.roundScore
	}
	if e.roundScore > e.best {
		e.best = e.roundScore
		e.store.SetBest(e.best)
	}

	px, py := e.cellCenter(e.item.X, e.item.Y)
	e.particles.Burst(px, py, burstParticles)
	e.floaters.Spawn("+1", px, py)
	if e.OnConsumed != nil {
		e.OnConsumed(px, py)
	}

	e.creature.Grow()

	item, err := entity.PlaceItem(e.rng, e.cfg.GridSize, e.creature.OccupiedCells())
	if err != nil {
		// The creature covers the whole board. Not reachable in practice,
		// but it must terminate the round rather than hang.
		e.endRound(now, "BOARD FULL", "There is nowhere left to grow.")
		return
	}
	e.item = item
}

func (e *Engine) die(now time.Time) {
	head := e.creature.Head()
	px, py := e.cellCenter(head.X, head.Y)
	e.particles.Burst(px, py, burstParticles)

	e.endRound(now, "GAME OVER", e.summaryLine())
}

// endRound moves to the dead phase, records the round, and schedules the
// end card to appear after the death animation has had its moment.
func (e *Engine) endRound(now time.Time, title, message string) {
	e.phase = PhaseDead
	e.roundsPlayed++

	e.store.RecordRound(score.Round{
		ID:       e.roundID,
		Score:    e.roundScore,
		Duration: now.Sub(e.roundStart),
		PlayedAt: now,
	})
	if e.OnDied != nil {
		e.OnDied(e.roundScore)
	}

	e.scheduleDeferred(now.Add(e.cfg.OverlayDelay), func() {
		if e.overlay != nil && e.phase == PhaseDead {
			e.overlay.Show(title, message, "Press Enter to play again")
		}
	})
}

func (e *Engine) summaryLine() string {
	return fmt.Sprintf("Score %d   Best %d", e.roundScore, e.best)
}

func (e *Engine) showIdleCard() {
	if e.overlay != nil {
		e.overlay.Show("GLOWWORM", "Eat the berries. Mind the walls, and yourself.", "Press Enter to start")
	}
}

// --- Deferred actions ---

func (e *Engine) scheduleDeferred(at time.Time, fn func()) {
	e.pendingAt = at
	e.pendingFn = fn
}

func (e *Engine) cancelDeferred() {
	e.pendingAt = time.Time{}
	e.pendingFn = nil
}

func (e *Engine) runDeferred(now time.Time) {
	if e.pendingFn == nil || now.Before(e.pendingAt) {
		return
	}
	fn := e.pendingFn
	e.cancelDeferred()
	fn()
}

// --- Read-only state ---

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase { return e.phase }

// Score returns the running round score.
func (e *Engine) Score() int { return e.roundScore }

// Best returns the persisted best score, including this round's progress.
func (e *Engine) Best() int { return e.best }

// SessionHigh returns the highest round score seen since process start.
func (e *Engine) SessionHigh() int { return e.sessionHigh }

// RoundsPlayed returns how many rounds have finished this session.
func (e *Engine) RoundsPlayed() int { return e.roundsPlayed }

// RoundID returns the identifier of the current or most recent round, or ""
// before the first round starts.
func (e *Engine) RoundID() string { return e.roundID }

// Direction returns the committed movement direction.
func (e *Engine) Direction() entity.Direction { return e.dir }

// Creature returns the live creature. Callers must treat it as read-only.
func (e *Engine) Creature() *entity.Creature { return e.creature }

// Item returns the active item.
func (e *Engine) Item() entity.Item { return e.item }

// Particles returns the particle pool for per-frame advancement and drawing.
func (e *Engine) Particles() *effects.ParticlePool { return e.particles }

// Floaters returns the floating-text pool.
func (e *Engine) Floaters() *effects.FloaterPool { return e.floaters }

// Config returns the simulation parameters.
func (e *Engine) Config() Config { return e.cfg }

// Snapshot is a plain summary of engine state, safe to hand to code outside
// the game loop (the spectator endpoint serializes it as JSON).
type Snapshot struct {
	Phase        string `json:"phase"`
	Score        int    `json:"score"`
	Best         int    `json:"best"`
	SessionHigh  int    `json:"session_high"`
	RoundsPlayed int    `json:"rounds_played"`
	Length       int    `json:"length"`
	Direction    string `json:"direction"`
}

// Snapshot returns the current summary.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Phase:        e.phase.String(),
		Score:        e.roundScore,
		Best:         e.best,
		SessionHigh:  e.sessionHigh,
		RoundsPlayed: e.roundsPlayed,
		Length:       e.creature.Len(),
		Direction:    e.dir.String(),
	}
}

// cellCenter converts a grid cell to its pixel center.
func (e *Engine) cellCenter(x, y int) (float64, float64) {
	cell := float64(e.cfg.CellSize)
	return (float64(x) + 0.5) * cell, (float64(y) + 0.5) * cell
}
