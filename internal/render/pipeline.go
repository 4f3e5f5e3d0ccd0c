// Package render draws the game. The pipeline paints every frame onto a CPU
// canvas (fogleman/gg), which keeps it free of any windowing dependency: the
// ebiten backend blits the result to the screen, the spectator endpoint
// encodes it to PNG, and tests can inspect it headlessly.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"chosenoffset.com/glowworm/internal/effects"
	"chosenoffset.com/glowworm/internal/engine"
	"chosenoffset.com/glowworm/internal/entity"
	"chosenoffset.com/glowworm/internal/gamemath"
)

// Palette for the board and the creature.
var (
	boardTop    = color.NRGBA{R: 16, G: 22, B: 34, A: 255}
	boardBottom = color.NRGBA{R: 8, G: 11, B: 20, A: 255}
	gridLine    = color.NRGBA{R: 255, G: 255, B: 255, A: 10}

	bodyBright = color.NRGBA{R: 190, G: 236, B: 90, A: 255}
	bodyDark   = color.NRGBA{R: 86, G: 128, B: 38, A: 255}
	haloColor  = color.NRGBA{R: 180, G: 255, B: 120, A: 255}

	ambientColor = color.NRGBA{R: 150, G: 220, B: 130, A: 255}
	burstColor   = color.NRGBA{R: 255, G: 214, B: 120, A: 255}

	floaterColor = color.NRGBA{R: 255, G: 244, B: 180, A: 255}
	hudColor     = color.NRGBA{R: 220, G: 228, B: 235, A: 220}
)

// itemPalettes are the cosmetic berry variants, indexed by Item.Variant.
var itemPalettes = [entity.VariantCount]struct {
	core, rim color.NRGBA
}{
	{core: color.NRGBA{R: 255, G: 120, B: 120, A: 255}, rim: color.NRGBA{R: 160, G: 30, B: 40, A: 255}},
	{core: color.NRGBA{R: 255, G: 180, B: 90, A: 255}, rim: color.NRGBA{R: 180, G: 90, B: 20, A: 255}},
	{core: color.NRGBA{R: 200, G: 140, B: 255, A: 255}, rim: color.NRGBA{R: 100, G: 40, B: 170, A: 255}},
	{core: color.NRGBA{R: 120, G: 190, B: 255, A: 255}, rim: color.NRGBA{R: 30, G: 90, B: 180, A: 255}},
}

const hairsPerSegment = 7

// Pipeline renders engine state onto its own canvas each frame.
type Pipeline struct {
	cfg     engine.Config
	dc      *gg.Context
	overlay *Overlay
	frame   uint64
}

// NewPipeline creates a pipeline with a canvas sized to the configured board.
func NewPipeline(cfg engine.Config) *Pipeline {
	side := cfg.CanvasSize()
	return &Pipeline{
		cfg:     cfg,
		dc:      gg.NewContext(side, side),
		overlay: NewOverlay(),
	}
}

// Overlay returns the overlay surface for the engine to drive.
func (p *Pipeline) Overlay() *Overlay {
	return p.overlay
}

// Draw renders one frame: board, ambient and burst particles, item,
// creature (interpolated by progress), floating text, HUD, and the overlay
// card when visible. The returned image is valid until the next Draw.
func (p *Pipeline) Draw(e *engine.Engine, progress float64) image.Image {
	p.frame++

	p.drawBoard()
	p.drawParticles(e.Particles().Particles())
	p.drawItem(e.Item())
	p.drawCreature(e.Creature(), e.Direction(), progress)
	p.drawFloaters(e.Floaters().Floaters())
	p.drawHUD(e)
	if p.overlay.visible {
		p.drawOverlay()
	}

	return p.dc.Image()
}

// --- Board ---

func (p *Pipeline) drawBoard() {
	side := float64(p.cfg.CanvasSize())

	grad := gg.NewLinearGradient(0, 0, 0, side)
	grad.AddColorStop(0, boardTop)
	grad.AddColorStop(1, boardBottom)
	p.dc.SetFillStyle(grad)
	p.dc.DrawRectangle(0, 0, side, side)
	p.dc.Fill()

	cell := float64(p.cfg.CellSize)
	p.dc.SetColor(gridLine)
	p.dc.SetLineWidth(1)
	for i := 1; i < p.cfg.GridSize; i++ {
		at := float64(i) * cell
		p.dc.DrawLine(at, 0, at, side)
		p.dc.DrawLine(0, at, side, at)
	}
	p.dc.Stroke()
}

// --- Effects ---

func (p *Pipeline) drawParticles(particles []effects.Particle) {
	for _, pt := range particles {
		alpha := gamemath.Clamp01(pt.Life)
		c := ambientColor
		if pt.Burst {
			c = burstColor
		}
		c.A = uint8(alpha * 200)
		p.dc.SetColor(c)
		p.dc.DrawCircle(pt.X, pt.Y, pt.Size*(0.5+0.5*alpha))
		p.dc.Fill()
	}
}

func (p *Pipeline) drawFloaters(floaters []effects.Floater) {
	for _, fl := range floaters {
		c := floaterColor
		c.A = uint8(gamemath.Clamp01(fl.Life) * 255)
		p.dc.SetColor(c)
		p.dc.DrawStringAnchored(fl.Text, fl.X, fl.Y, 0.5, 0.5)
	}
}

// --- Item ---

func (p *Pipeline) drawItem(it entity.Item) {
	cell := float64(p.cfg.CellSize)
	x := (float64(it.X) + 0.5) * cell
	y := (float64(it.Y) + 0.5) * cell

	// Continuous pulse driven by the frame counter, independent of ticks.
	pulse := 1 + 0.12*math.Sin(float64(p.frame)*0.1)
	r := cell * 0.32 * pulse

	pal := itemPalettes[it.Variant%entity.VariantCount]

	// Soft glow behind the berry.
	glow := pal.core
	glow.A = 40
	p.dc.SetColor(glow)
	p.dc.DrawCircle(x, y, r*1.8)
	p.dc.Fill()

	grad := gg.NewRadialGradient(x-r*0.3, y-r*0.3, r*0.1, x, y, r)
	grad.AddColorStop(0, pal.core)
	grad.AddColorStop(1, pal.rim)
	p.dc.SetFillStyle(grad)
	p.dc.DrawCircle(x, y, r)
	p.dc.Fill()

	p.dc.SetRGBA(1, 1, 1, 0.6)
	p.dc.DrawCircle(x-r*0.35, y-r*0.4, r*0.2)
	p.dc.Fill()
}

// --- Creature ---

func (p *Pipeline) drawCreature(c *entity.Creature, dir entity.Direction, progress float64) {
	cell := float64(p.cfg.CellSize)

	// Tail to head, so the head overlaps the body.
	for i := c.Len() - 1; i >= 0; i-- {
		seg := c.Segments[i]
		x, y := segmentCenter(seg, progress, cell)

		r := cell * 0.42
		isHead := i == 0
		if isHead {
			r *= 1.12
		}

		// Depth shading: segments darken slightly toward the tail.
		depth := float64(i) / float64(c.Len())
		base := gamemath.LerpColor(bodyBright, bodyDark, 0.25+0.5*depth)

		p.drawHalo(x, y, r)
		p.drawSegmentBody(x, y, r, base)
		p.drawHairs(x, y, r, i)

		if isHead {
			p.drawFace(x, y, r, dir)
		}
	}
}

// drawHalo layers concentric low-opacity rings to fake a fuzzy glow.
func (p *Pipeline) drawHalo(x, y, r float64) {
	rings := []struct {
		scale float64
		alpha uint8
	}{
		{1.7, 12},
		{1.45, 22},
		{1.2, 36},
	}
	for _, ring := range rings {
		c := haloColor
		c.A = ring.alpha
		p.dc.SetColor(c)
		p.dc.DrawCircle(x, y, r*ring.scale)
		p.dc.Fill()
	}
}

func (p *Pipeline) drawSegmentBody(x, y, r float64, base color.NRGBA) {
	grad := gg.NewRadialGradient(x-r*0.35, y-r*0.35, r*0.1, x, y, r)
	grad.AddColorStop(0, gamemath.Scale(base, 1.35))
	grad.AddColorStop(1, gamemath.Scale(base, 0.55))
	p.dc.SetFillStyle(grad)
	p.dc.DrawCircle(x, y, r)
	p.dc.Fill()

	// Specular highlight.
	p.dc.SetRGBA(1, 1, 1, 0.45)
	p.dc.DrawCircle(x-r*0.35, y-r*0.42, r*0.16)
	p.dc.Fill()
}

// drawHairs strokes short fuzz lines around a segment. Angles derive from
// the segment index alone, so the fuzz is stable across frames instead of
// flickering.
func (p *Pipeline) drawHairs(x, y, r float64, seed int) {
	p.dc.SetLineWidth(1)
	c := haloColor
	c.A = 110
	p.dc.SetColor(c)
	for k := 0; k < hairsPerSegment; k++ {
		angle := hairAngle(seed, k)
		inner := r * 0.88
		outer := r * (1.25 + 0.15*hairLength(seed, k))
		p.dc.DrawLine(
			x+inner*math.Cos(angle), y+inner*math.Sin(angle),
			x+outer*math.Cos(angle), y+outer*math.Sin(angle))
	}
	p.dc.Stroke()
}

func (p *Pipeline) drawFace(x, y, r float64, dir entity.Direction) {
	g := faceFor(dir)

	eyeR := r * 0.26
	pupilR := r * 0.12

	for _, eye := range [][2]float64{
		{g.leftEyeX, g.leftEyeY},
		{g.rightEyeX, g.rightEyeY},
	} {
		ex := x + eye[0]*r
		ey := y + eye[1]*r
		p.dc.SetRGBA(1, 1, 1, 0.95)
		p.dc.DrawCircle(ex, ey, eyeR)
		p.dc.Fill()
		p.dc.SetRGBA(0.05, 0.08, 0.1, 1)
		p.dc.DrawCircle(ex+g.pupilDX*r, ey+g.pupilDY*r, pupilR)
		p.dc.Fill()
	}

	// Antennae: two strokes fanning out ahead of travel, with tip dots.
	baseAngle := math.Atan2(g.antennaDY, g.antennaDX)
	p.dc.SetLineWidth(1.5)
	p.dc.SetColor(gamemath.Scale(bodyBright, 1.1))
	for _, spread := range []float64{-0.4, 0.4} {
		angle := baseAngle + spread
		tx := x + math.Cos(angle)*r*1.5
		ty := y + math.Sin(angle)*r*1.5
		p.dc.DrawLine(x+math.Cos(angle)*r*0.8, y+math.Sin(angle)*r*0.8, tx, ty)
		p.dc.Stroke()
		p.dc.DrawCircle(tx, ty, r*0.1)
		p.dc.Fill()
	}
}

// --- HUD & overlay ---

func (p *Pipeline) drawHUD(e *engine.Engine) {
	text := fmt.Sprintf("Score %d   Best %d   High %d   Rounds %d",
		e.Score(), e.Best(), e.SessionHigh(), e.RoundsPlayed())

	// Drop shadow keeps the strip readable over bright segments.
	p.dc.SetRGBA(0, 0, 0, 0.6)
	p.dc.DrawString(text, 9, 17)
	p.dc.SetColor(hudColor)
	p.dc.DrawString(text, 8, 16)
}

func (p *Pipeline) drawOverlay() {
	side := float64(p.cfg.CanvasSize())
	cx := side / 2
	cy := side / 2

	p.dc.SetRGBA(0, 0, 0, 0.55)
	p.dc.DrawRectangle(0, 0, side, side)
	p.dc.Fill()

	p.dc.SetRGBA(1, 1, 1, 0.95)
	p.dc.DrawStringAnchored(p.overlay.title, cx, cy-28, 0.5, 0.5)
	if p.overlay.message != "" {
		p.dc.SetRGBA(0.85, 0.88, 0.9, 0.9)
		p.dc.DrawStringAnchored(p.overlay.message, cx, cy, 0.5, 0.5)
	}
	p.dc.SetRGBA(0.7, 0.9, 0.6, 0.9)
	p.dc.DrawStringAnchored(p.overlay.button, cx, cy+28, 0.5, 0.5)
}

// --- Helpers ---

// segmentCenter interpolates a segment from its previous to its current cell
// by progress and converts to the pixel center.
func segmentCenter(s entity.Segment, progress, cell float64) (float64, float64) {
	gx := gamemath.Lerp(float64(s.PrevX), float64(s.X), progress)
	gy := gamemath.Lerp(float64(s.PrevY), float64(s.Y), progress)
	return (gx + 0.5) * cell, (gy + 0.5) * cell
}

// hairAngle returns a stable pseudo-random angle for hair k of segment seed.
func hairAngle(seed, k int) float64 {
	return hairNoise(seed, k, 12.9898, 78.233) * 2 * math.Pi
}

// hairLength returns a stable [0,1) length factor for hair k of segment seed.
func hairLength(seed, k int) float64 {
	return hairNoise(seed, k, 39.3468, 11.135)
}

// hairNoise is the classic fract(sin(dot)) hash: deterministic, cheap, and
// plenty random-looking for fuzz.
func hairNoise(seed, k int, a, b float64) float64 {
	v := math.Sin(float64(seed)*a+float64(k)*b) * 43758.5453
	return v - math.Floor(v)
}
