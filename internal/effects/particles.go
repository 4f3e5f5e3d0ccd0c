// Package effects holds the per-frame visual effect pools: drifting ambient
// particles, one-shot bursts, and floating score text. Pools are advanced
// once per rendered frame, not per simulation tick, so their motion stays
// smooth regardless of the tick rate.
package effects

import (
	"math"
	"math/rand"
)

const (
	ambientCap = 50  // resident background particles
	burstCap   = 200 // hard ceiling on live burst particles

	// spawnChance is the per-frame probability of adding one ambient
	// particle while the pool is below ambientCap.
	spawnChance = 0.35

	// gravity is the downward acceleration applied to every particle each
	// frame, in pixels per frame squared.
	gravity = 0.005

	// margin extends the visible bounds before an off-screen particle is
	// reclaimed, so particles can drift in from outside the canvas.
	margin = 40.0
)

// Particle is a single short-lived glowing mote.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Life   float64 // 1 at birth, removed at <= 0
	Decay  float64 // life lost per frame
	Burst  bool    // burst particles render hotter than ambient ones
}

// ParticlePool owns every live particle and spawns ambient ones over time.
type ParticlePool struct {
	rng           *rand.Rand
	width, height float64
	particles     []Particle
}

// NewParticlePool creates a pool covering a canvas of the given pixel size.
func NewParticlePool(rng *rand.Rand, width, height float64) *ParticlePool {
	return &ParticlePool{
		rng:       rng,
		width:     width,
		height:    height,
		particles: make([]Particle, 0, ambientCap+burstCap),
	}
}

// Reset drops every live particle. Called when a round starts.
func (p *ParticlePool) Reset() {
	p.particles = p.particles[:0]
}

// Particles returns the live particles for rendering. The slice is only
// valid until the next Advance call.
func (p *ParticlePool) Particles() []Particle {
	return p.particles
}

// Burst emits count particles radiating outward from (x, y), faster and
// shorter-lived than the ambient drift. The pool-wide burst cap bounds how
// many survive a rapid series of events.
func (p *ParticlePool) Burst(x, y float64, count int) {
	live := 0
	for _, pt := range p.particles {
		if pt.Burst {
			live++
		}
	}
	for i := 0; i < count && live < burstCap; i++ {
		angle := p.rng.Float64() * 2 * math.Pi
		speed := 1.0 + p.rng.Float64()*2.5
		p.particles = append(p.particles, Particle{
			X:     x,
			Y:     y,
			VX:    speed * math.Cos(angle),
			VY:    speed * math.Sin(angle),
			Size:  1.5 + p.rng.Float64()*2,
			Life:  1,
			Decay: 0.02 + p.rng.Float64()*0.03,
			Burst: true,
		})
		live++
	}
}

// Advance runs one frame of particle life: ambient spawning, integration
// with gravity, and reclamation of dead or out-of-bounds particles.
func (p *ParticlePool) Advance() {
	p.spawnAmbient()

	for i := range p.particles {
		pt := &p.particles[i]
		pt.VY += gravity
		pt.X += pt.VX
		pt.Y += pt.VY
		pt.Life -= pt.Decay
	}

	// Reverse iteration with swap-remove, so removals never shift an index
	// that still has to be visited.
	for i := len(p.particles) - 1; i >= 0; i-- {
		if p.alive(p.particles[i]) {
			continue
		}
		last := len(p.particles) - 1
		p.particles[i] = p.particles[last]
		p.particles = p.particles[:last]
	}
}

func (p *ParticlePool) alive(pt Particle) bool {
	if pt.Life <= 0 {
		return false
	}
	if pt.X < -margin || pt.X > p.width+margin {
		return false
	}
	if pt.Y < -margin || pt.Y > p.height+margin {
		return false
	}
	return true
}

// spawnAmbient tops up the resident drift: particles born just below the
// visible area that float upward and fade slowly.
func (p *ParticlePool) spawnAmbient() {
	ambient := 0
	for _, pt := range p.particles {
		if !pt.Burst {
			ambient++
		}
	}
	if ambient >= ambientCap || p.rng.Float64() >= spawnChance {
		return
	}
	p.particles = append(p.particles, Particle{
		X:     p.rng.Float64() * p.width,
		Y:     p.height + p.rng.Float64()*margin,
		VX:    (p.rng.Float64() - 0.5) * 0.3,
		VY:    -(0.3 + p.rng.Float64()*0.5),
		Size:  1 + p.rng.Float64()*2,
		Life:  1,
		Decay: 0.002 + p.rng.Float64()*0.004,
	})
}
