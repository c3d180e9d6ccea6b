// Package ebitensurface lets the compositor draw onto an ebiten screen.
package ebitensurface

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Surface adapts an *ebiten.Image to compositor.Surface.
//
// Tile images are uploaded to the GPU once and kept for the lifetime of
// the Surface, so a single Surface should be reused across frames.
type Surface struct {
	screen *ebiten.Image
	cache  map[image.Image]*ebiten.Image
}

func New() *Surface {
	return &Surface{cache: make(map[image.Image]*ebiten.Image)}
}

// SetScreen selects the image the next frame is drawn onto.
func (s *Surface) SetScreen(screen *ebiten.Image) {
	s.screen = screen
}

func (s *Surface) texture(img image.Image) *ebiten.Image {
	if t, ok := img.(*ebiten.Image); ok {
		return t
	}
	t, ok := s.cache[img]
	if !ok {
		t = ebiten.NewImageFromImage(img)
		s.cache[img] = t
	}
	return t
}

func (s *Surface) Blit(img image.Image, x, y, w, h int) {
	t := s.texture(img)
	b := t.Bounds()
	op := &ebiten.DrawImageOptions{}
	if b.Dx() != w || b.Dy() != h {
		op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	}
	op.GeoM.Translate(float64(x), float64(y))
	s.screen.DrawImage(t, op)
}

func (s *Surface) Fill(r image.Rectangle, c color.Color) {
	r = r.Intersect(s.screen.Bounds())
	if r.Empty() {
		return
	}
	s.screen.SubImage(r).(*ebiten.Image).Fill(c)
}

// Text uses the ebiten debug font, which is always white; c is ignored.
func (s *Surface) Text(str string, x, y int, c color.Color) {
	ebitenutil.DebugPrintAt(s.screen, str, x, y)
}
