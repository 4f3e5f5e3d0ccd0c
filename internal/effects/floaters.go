package effects

const (
	// riseSpeed is how fast floating text drifts upward, in pixels per frame.
	riseSpeed = 0.6

	// floaterDecay is the life lost per frame; text fades out linearly over
	// roughly 55 frames.
	floaterDecay = 0.018
)

// Floater is a short piece of text that rises and fades, like the "+1"
// marker shown where an item was consumed.
type Floater struct {
	Text string
	X, Y float64
	Life float64 // 1 at birth, drives alpha directly
}

// FloaterPool owns the live floating text instances.
type FloaterPool struct {
	floaters []Floater
}

// NewFloaterPool creates an empty pool.
func NewFloaterPool() *FloaterPool {
	return &FloaterPool{}
}

// Reset drops every live floater. Called when a round starts.
func (f *FloaterPool) Reset() {
	f.floaters = f.floaters[:0]
}

// Floaters returns the live instances for rendering. The slice is only valid
// until the next Advance call.
func (f *FloaterPool) Floaters() []Floater {
	return f.floaters
}

// Spawn adds a new floater at pixel position (x, y).
func (f *FloaterPool) Spawn(text string, x, y float64) {
	f.floaters = append(f.floaters, Floater{Text: text, X: x, Y: y, Life: 1})
}

// Advance runs one frame of floater life: rise, fade, reclaim.
func (f *FloaterPool) Advance() {
	for i := range f.floaters {
		f.floaters[i].Y -= riseSpeed
		f.floaters[i].Life -= floaterDecay
	}
	for i := len(f.floaters) - 1; i >= 0; i-- {
		if f.floaters[i].Life > 0 {
			continue
		}
		last := len(f.floaters) - 1
		f.floaters[i] = f.floaters[last]
		f.floaters = f.floaters[:last]
	}
}
