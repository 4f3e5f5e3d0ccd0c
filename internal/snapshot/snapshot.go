// Package snapshot writes a score card to disk when a round ends: the final
// rendered frame with a caption bar, plus a small thumbnail for galleries.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

const (
	captionHeight = 36
	thumbWidth    = 160
)

// Writer saves score cards under a fixed directory.
type Writer struct {
	dir string
}

func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot dir: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// Save writes <roundID>.png and <roundID>_thumb.png and returns the card
// path. The frame is copied into the card, so the caller may reuse it.
func (w *Writer) Save(frame image.Image, roundID string, score, best int) (string, error) {
	card := composeCard(frame, score, best)

	cardPath := filepath.Join(w.dir, roundID+".png")
	if err := imaging.Save(card, cardPath); err != nil {
		return "", fmt.Errorf("save score card: %w", err)
	}

	thumb := imaging.Resize(card, thumbWidth, 0, imaging.Lanczos)
	thumbPath := filepath.Join(w.dir, roundID+"_thumb.png")
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return "", fmt.Errorf("save thumbnail: %w", err)
	}
	return cardPath, nil
}

func composeCard(frame image.Image, score, best int) image.Image {
	bounds := frame.Bounds()
	width := bounds.Dx()
	height := bounds.Dy() + captionHeight

	dc := gg.NewContext(width, height)
	dc.SetColor(color.NRGBA{R: 12, G: 14, B: 24, A: 255})
	dc.Clear()
	dc.DrawImage(frame, 0, 0)

	caption := fmt.Sprintf("Score %d   Best %d", score, best)
	dc.SetColor(color.NRGBA{R: 235, G: 238, B: 245, A: 255})
	dc.DrawStringAnchored(caption, float64(width)/2, float64(bounds.Dy())+captionHeight/2, 0.5, 0.35)
	return dc.Image()
}
