// Package ebiten hosts the game in a desktop window. The frame is rendered
// on the CPU elsewhere; this package only polls the keyboard and blits the
// finished image to the screen.
package ebiten

import (
	"image"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"chosenoffset.com/glowworm/internal/input"
	"chosenoffset.com/glowworm/internal/loop"
)

// binding pairs a physical key with a game action.
type binding struct {
	key    ebiten.Key
	action input.Key
}

// keyBindings maps physical keys to game actions in a fixed order, so two
// keys pressed on the same frame are always handled the same way. Arrows
// and WASD both steer, and a couple of aliases exist for pause and confirm.
var keyBindings = []binding{
	{ebiten.KeyArrowUp, input.KeyUp},
	{ebiten.KeyArrowDown, input.KeyDown},
	{ebiten.KeyArrowLeft, input.KeyLeft},
	{ebiten.KeyArrowRight, input.KeyRight},
	{ebiten.KeyW, input.KeyUp},
	{ebiten.KeyS, input.KeyDown},
	{ebiten.KeyA, input.KeyLeft},
	{ebiten.KeyD, input.KeyRight},
	{ebiten.KeyP, input.KeyPause},
	{ebiten.KeyEscape, input.KeyPause},
	{ebiten.KeyEnter, input.KeyConfirm},
	{ebiten.KeySpace, input.KeyConfirm},
	{ebiten.KeyM, input.KeyMute},
}

// Window drives one driver frame per ebiten update and shows the result.
type Window struct {
	driver     *loop.Driver
	controller *input.Controller
	width      int
	height     int
	scale      int

	screen *ebiten.Image
	rgba   *image.RGBA
}

func NewWindow(driver *loop.Driver, controller *input.Controller, width, height, scale int) *Window {
	if scale < 1 {
		scale = 1
	}
	return &Window{
		driver:     driver,
		controller: controller,
		width:      width,
		height:     height,
		scale:      scale,
	}
}

// Update polls input and advances the game by one frame.
func (w *Window) Update() error {
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			w.controller.Handle(b.action)
		}
	}

	frame := w.driver.Frame()
	w.rgba = asRGBA(frame, w.rgba)
	return nil
}

// Draw blits the most recent frame to the screen.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.rgba == nil {
		return
	}
	if w.screen == nil {
		w.screen = ebiten.NewImage(w.width, w.height)
	}
	w.screen.WritePixels(w.rgba.Pix)

	op := &ebiten.DrawImageOptions{}
	screen.DrawImage(w.screen, op)
}

// Layout reports the logical canvas size; ebiten scales it to the window.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run(title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w.width*w.scale, w.height*w.scale)
	return ebiten.RunGame(w)
}

// asRGBA returns img as *image.RGBA, converting into buf when possible to
// avoid an allocation per frame.
func asRGBA(img image.Image, buf *image.RGBA) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	if buf == nil || buf.Bounds() != bounds {
		buf = image.NewRGBA(bounds)
	}
	draw.Draw(buf, bounds, img, bounds.Min, draw.Src)
	return buf
}
