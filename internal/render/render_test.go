package render

import (
	"image"
	"math"
	"math/rand"
	"testing"
	"time"

	"chosenoffset.com/glowworm/internal/engine"
	"chosenoffset.com/glowworm/internal/entity"
	"chosenoffset.com/glowworm/internal/score"
)

func newTestPipeline() (*Pipeline, *engine.Engine) {
	cfg := engine.DefaultConfig()
	e := engine.New(cfg, rand.New(rand.NewSource(3)), score.NewMemory())
	return NewPipeline(cfg), e
}

func TestDrawProducesCanvasSizedFrame(t *testing.T) {
	p, e := newTestPipeline()
	e.SetOverlay(p.Overlay())
	e.Start(time.Unix(0, 0))

	img := p.Draw(e, 0.5)

	side := e.Config().CanvasSize()
	want := image.Rect(0, 0, side, side)
	if img.Bounds() != want {
		t.Errorf("frame bounds = %v, want %v", img.Bounds(), want)
	}
}

func TestDrawAllPhases(t *testing.T) {
	// Drawing must be safe in every phase, including idle (no round yet)
	// and dead with the overlay up.
	p, e := newTestPipeline()
	e.SetOverlay(p.Overlay())

	p.Draw(e, 1) // idle, overlay visible

	now := time.Unix(0, 0)
	e.Start(now)
	p.Draw(e, 0)
	p.Draw(e, 1)

	e.Pause()
	p.Draw(e, 1)
	e.Resume(now)

	// Run the round into the wall and past the overlay delay.
	for e.Phase() == engine.PhasePlaying {
		now = now.Add(e.Config().TickPeriod)
		e.Advance(now)
		p.Draw(e, 0.5)
	}
	e.Advance(now.Add(e.Config().OverlayDelay * 2))
	if !p.Overlay().Visible() {
		t.Fatal("end card not visible")
	}
	p.Draw(e, 1)
}

func TestSegmentCenterInterpolation(t *testing.T) {
	seg := entity.Segment{PrevX: 2, PrevY: 5, X: 3, Y: 5}
	cell := 24.0

	x, y := segmentCenter(seg, 0, cell)
	if x != 2.5*cell || y != 5.5*cell {
		t.Errorf("progress 0: center (%v, %v), want (%v, %v)", x, y, 2.5*cell, 5.5*cell)
	}

	x, y = segmentCenter(seg, 1, cell)
	if x != 3.5*cell || y != 5.5*cell {
		t.Errorf("progress 1: center (%v, %v), want (%v, %v)", x, y, 3.5*cell, 5.5*cell)
	}

	x, _ = segmentCenter(seg, 0.5, cell)
	if x != 3.0*cell {
		t.Errorf("progress 0.5: x = %v, want %v", x, 3.0*cell)
	}
}

func TestHairGeometryStable(t *testing.T) {
	// Hair angles are a pure function of the segment index, so the fuzz
	// must not flicker between frames.
	for seg := 0; seg < 8; seg++ {
		for k := 0; k < hairsPerSegment; k++ {
			a := hairAngle(seg, k)
			b := hairAngle(seg, k)
			if a != b {
				t.Fatalf("hair angle unstable for segment %d hair %d", seg, k)
			}
			if a < 0 || a >= 2*math.Pi {
				t.Errorf("hair angle %v out of range", a)
			}
			l := hairLength(seg, k)
			if l < 0 || l >= 1 {
				t.Errorf("hair length %v out of range", l)
			}
		}
	}
}

func TestFaceLookupCoversAllDirections(t *testing.T) {
	dirs := []entity.Direction{entity.DirUp, entity.DirDown, entity.DirLeft, entity.DirRight}
	seen := map[faceGeometry]bool{}
	for _, d := range dirs {
		g := faceFor(d)
		if g == (faceGeometry{}) {
			t.Errorf("no face geometry for %v", d)
		}
		seen[g] = true
	}
	if len(seen) != 4 {
		t.Errorf("face geometries not distinct per direction: %d unique", len(seen))
	}

	// Unknown directions fall back instead of panicking.
	if faceFor(entity.Direction{}) != faceFor(entity.DirRight) {
		t.Error("zero direction should fall back to the rightward face")
	}
}

func TestOverlayState(t *testing.T) {
	o := NewOverlay()
	if o.Visible() {
		t.Error("new overlay visible")
	}
	o.Show("T", "M", "B")
	if !o.Visible() {
		t.Error("overlay hidden after Show")
	}
	o.Hide()
	if o.Visible() {
		t.Error("overlay visible after Hide")
	}
}
