package compositor

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ImageSurface is a Surface backed by an in-memory RGBA image.
type ImageSurface struct {
	*image.RGBA
}

// NewImageSurface returns a transparent w×h surface.
func NewImageSurface(w, h int) *ImageSurface {
	return &ImageSurface{RGBA: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Blit draws img into the w×h cell at x, y, scaling it with nearest
// neighbour sampling when the sizes differ.
func (s *ImageSurface) Blit(img image.Image, x, y, w, h int) {
	dst := image.Rect(x, y, x+w, y+h)
	if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
		draw.NearestNeighbor.Scale(s.RGBA, dst, img, b, draw.Over, nil)
		return
	}
	draw.Draw(s.RGBA, dst, img, img.Bounds().Min, draw.Over)
}

func (s *ImageSurface) Fill(r image.Rectangle, c color.Color) {
	draw.Draw(s.RGBA, r, &image.Uniform{c}, image.Point{}, draw.Src)
}

func (s *ImageSurface) Text(str string, x, y int, c color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  s.RGBA,
		Src:  &image.Uniform{c},
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(str)
}

// Composite renders one frame of r into a new viewportW×viewportH image.
func Composite(r *Renderer, viewportW, viewportH int) (image.Image, error) {
	s := NewImageSurface(viewportW, viewportH)
	if err := r.Render(s, viewportW, viewportH); err != nil {
		return nil, err
	}
	return s.RGBA, nil
}
