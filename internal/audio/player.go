// Package audio plays short synthesized cues for game events. Everything is
// generated at runtime, so there are no asset files to ship.
package audio

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes event cues into one speaker stream. A Player whose Init
// failed, or that was never initialized, silently drops every cue, so the
// game runs fine on machines without audio output.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Init opens the speaker. On failure the player stays usable but silent,
// and the error is logged rather than returned to the caller.
func (p *Player) Init() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		log.Printf("audio disabled: %v", err)
		return
	}
	speaker.Play(p.mixer)
	p.initialized = true
}

func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// ToggleMute flips the mute state and reports the new value.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	return p.muted
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// PlayStart plays a quick ascending two-note cue when a round begins.
func (p *Player) PlayStart() {
	p.play(
		newBlip(sampleRate, 440, 90*time.Millisecond),
		newBlip(sampleRate, 660, 120*time.Millisecond),
	)
}

// PlayConsume plays a bright single blip when an item is eaten.
func (p *Player) PlayConsume() {
	p.play(newBlip(sampleRate, 880, 80*time.Millisecond))
}

// PlayDeath plays a low descending sweep when the round ends.
func (p *Player) PlayDeath() {
	p.play(newSweep(sampleRate, 330, 70, 450*time.Millisecond))
}

func (p *Player) play(streamers ...beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}
	p.mixer.Add(beep.Seq(streamers...))
}

// blip is a sine tone with a fast attack and an exponential release.
type blip struct {
	sr    beep.SampleRate
	freq  float64
	pos   int
	total int
}

func newBlip(sr beep.SampleRate, freq float64, d time.Duration) *blip {
	return &blip{sr: sr, freq: freq, total: sr.N(d)}
}

func (b *blip) Stream(samples [][2]float64) (int, bool) {
	if b.pos >= b.total {
		return 0, false
	}
	n := 0
	for i := range samples {
		if b.pos >= b.total {
			break
		}
		t := float64(b.pos) / float64(b.sr)
		attack := math.Min(t/0.005, 1.0)
		release := math.Exp(-t * 12)
		s := 0.25 * attack * release * math.Sin(2*math.Pi*b.freq*t)
		samples[i][0] = s
		samples[i][1] = s
		b.pos++
		n++
	}
	return n, true
}

func (b *blip) Err() error { return nil }

// sweep glides from one frequency to another over its duration, fading out
// as it goes.
type sweep struct {
	sr       beep.SampleRate
	from, to float64
	phase    float64
	pos      int
	total    int
}

func newSweep(sr beep.SampleRate, from, to float64, d time.Duration) *sweep {
	return &sweep{sr: sr, from: from, to: to, total: sr.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.total {
		return 0, false
	}
	n := 0
	for i := range samples {
		if s.pos >= s.total {
			break
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*progress
		s.phase += 2 * math.Pi * freq / float64(s.sr)
		env := 0.3 * (1 - progress)
		v := env * math.Sin(s.phase)
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
		n++
	}
	return n, true
}

func (s *sweep) Err() error { return nil }
