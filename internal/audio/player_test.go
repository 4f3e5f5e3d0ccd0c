package audio

import (
	"math"
	"testing"
	"time"
)

func drain(t *testing.T, s interface {
	Stream([][2]float64) (int, bool)
}) []float64 {
	t.Helper()
	var out []float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, buf[i][0])
		}
		if !ok {
			return out
		}
	}
}

func TestBlipBoundedAndFinite(t *testing.T) {
	b := newBlip(sampleRate, 880, 80*time.Millisecond)
	out := drain(t, b)

	want := sampleRate.N(80 * time.Millisecond)
	if len(out) != want {
		t.Errorf("sample count = %d, want %d", len(out), want)
	}
	for i, v := range out {
		if math.Abs(v) > 1.0 {
			t.Fatalf("sample %d out of range: %f", i, v)
		}
	}
}

func TestBlipEnvelopeDecays(t *testing.T) {
	b := newBlip(sampleRate, 440, 100*time.Millisecond)
	out := drain(t, b)

	peak := func(from, to int) float64 {
		max := 0.0
		for _, v := range out[from:to] {
			if a := math.Abs(v); a > max {
				max = a
			}
		}
		return max
	}
	early := peak(0, len(out)/4)
	late := peak(3*len(out)/4, len(out))
	if late >= early {
		t.Errorf("envelope did not decay: early peak %f, late peak %f", early, late)
	}
}

func TestSweepFadesToSilence(t *testing.T) {
	s := newSweep(sampleRate, 330, 70, 200*time.Millisecond)
	out := drain(t, s)

	if len(out) != sampleRate.N(200*time.Millisecond) {
		t.Fatalf("sample count = %d", len(out))
	}
	tail := out[len(out)-16:]
	for _, v := range tail {
		if math.Abs(v) > 0.05 {
			t.Errorf("tail sample %f not near silence", v)
		}
	}
}

func TestUninitializedPlayerIsSilentNoop(t *testing.T) {
	p := NewPlayer()
	// None of these may panic without speaker init.
	p.PlayStart()
	p.PlayConsume()
	p.PlayDeath()

	if p.Muted() {
		t.Error("player starts muted")
	}
	if !p.ToggleMute() {
		t.Error("ToggleMute should report muted")
	}
	if p.ToggleMute() {
		t.Error("second toggle should unmute")
	}
	p.SetMuted(true)
	if !p.Muted() {
		t.Error("SetMuted(true) not applied")
	}
}
