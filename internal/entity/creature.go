// Package entity holds the grid-coordinate state of the things that live on
// the board: the player's creature and the item it chases. Positions carry
// their previous grid cell so the renderer can interpolate between ticks.
package entity

// Cell is a single grid coordinate.
type Cell struct {
	X, Y int
}

// Segment is one body part of the creature. X/Y is the current grid cell,
// PrevX/PrevY the cell held at the start of the current tick interval.
type Segment struct {
	X, Y         int
	PrevX, PrevY int
}

// Cell returns the segment's current grid cell.
func (s Segment) Cell() Cell {
	return Cell{X: s.X, Y: s.Y}
}

// initialLength is how many segments a freshly spawned creature has.
const initialLength = 3

// Creature is the player-controlled body, head first. It is owned by the
// simulation engine and only mutated inside a tick.
type Creature struct {
	Segments []Segment
}

// NewCreature returns a creature centered on a gridSize x gridSize board,
// facing right, with the body trailing off to the left of the head. Previous
// positions equal current positions so the first frame has no pending
// interpolation.
func NewCreature(gridSize int) *Creature {
	cx := gridSize / 2
	cy := gridSize / 2

	segments := make([]Segment, initialLength)
	for i := range segments {
		x := cx - i
		segments[i] = Segment{X: x, Y: cy, PrevX: x, PrevY: cy}
	}
	return &Creature{Segments: segments}
}

// Head returns the leading segment.
func (c *Creature) Head() Segment {
	return c.Segments[0]
}

// Len returns the number of body segments.
func (c *Creature) Len() int {
	return len(c.Segments)
}

// OccupiedCells returns the set of grid cells currently covered by the body.
func (c *Creature) OccupiedCells() map[Cell]bool {
	cells := make(map[Cell]bool, len(c.Segments))
	for _, s := range c.Segments {
		cells[s.Cell()] = true
	}
	return cells
}

// Occupies reports whether any segment currently sits on cell.
func (c *Creature) Occupies(cell Cell) bool {
	for _, s := range c.Segments {
		if s.Cell() == cell {
			return true
		}
	}
	return false
}

// HitsBody reports whether cell collides with the body for the purpose of a
// tick's self-collision check. The tail segment is exempt: it vacates its
// cell during the same tick the head would enter it.
func (c *Creature) HitsBody(cell Cell) bool {
	for i, s := range c.Segments {
		if i == len(c.Segments)-1 {
			break
		}
		if s.Cell() == cell {
			return true
		}
	}
	return false
}

// SnapshotPrev copies every segment's current cell into its previous cell.
// Called at the start of a tick so that each segment has a valid prev->current
// span for interpolation, not just the head.
func (c *Creature) SnapshotPrev() {
	for i := range c.Segments {
		c.Segments[i].PrevX = c.Segments[i].X
		c.Segments[i].PrevY = c.Segments[i].Y
	}
}

// Cascade moves every segment up to the cell held by the one ahead of it and
// places the head on newHead. Iterates tail-to-head so no cell is overwritten
// before it has been propagated.
func (c *Creature) Cascade(newHead Cell) {
	for i := len(c.Segments) - 1; i > 0; i-- {
		c.Segments[i].X = c.Segments[i-1].X
		c.Segments[i].Y = c.Segments[i-1].Y
	}
	c.Segments[0].X = newHead.X
	c.Segments[0].Y = newHead.Y
}

// Grow appends a new tail segment sitting in the cell the tail just vacated,
// with no prev->current span. Called after the cascade has moved the body,
// so the vacated cell is the tail's previous cell. The new segment renders
// as stationary for one tick instead of sliding in from elsewhere, and never
// shares a cell with the moved tail.
func (c *Creature) Grow() {
	tail := c.Segments[len(c.Segments)-1]
	c.Segments = append(c.Segments, Segment{
		X: tail.PrevX, Y: tail.PrevY,
		PrevX: tail.PrevX, PrevY: tail.PrevY,
	})
}
