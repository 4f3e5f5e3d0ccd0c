package entity

// Direction is a unit grid vector describing creature movement.
type Direction struct {
	DX, DY int
}

// The four legal movement directions.
var (
	DirRight = Direction{DX: 1, DY: 0}
	DirLeft  = Direction{DX: -1, DY: 0}
	DirUp    = Direction{DX: 0, DY: -1}
	DirDown  = Direction{DX: 0, DY: 1}
)

// IsReverse reports whether other is the exact opposite of d.
// A reversal would drive the head straight into the neck segment, so the
// engine rejects such requests.
func (d Direction) IsReverse(other Direction) bool {
	return d.DX == -other.DX && d.DY == -other.DY
}

// String returns a short name for debugging and state reporting.
func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return "none"
}
