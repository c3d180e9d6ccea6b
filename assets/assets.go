// Package assets loads the images tiles are drawn with: whole files, cells of
// sprite sheets, and a named set of images built from them.
package assets

import (
	"image"
	"sort"

	// Registered image formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/golang/glog"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tmxmap/paths"
)

// ErrOutsideSheet is returned when cropping a cell that is not fully inside a sprite sheet.
var ErrOutsideSheet = errors.New("cell outside sprite sheet")

// Loader turns a path into a decoded image.
type Loader interface {
	LoadImage(path string) (image.Image, error)
}

// FileLoader loads images from the data directories known to the paths package.
type FileLoader struct{}

func (FileLoader) LoadImage(path string) (image.Image, error) {
	f, err := paths.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening image")
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding image %s", path)
	}
	glog.V(2).Infof("loaded %s image %s: %v", format, path, img.Bounds().Size())
	return img, nil
}

// SpriteSheet cuts equally sized cells out of one image.
type SpriteSheet struct {
	img          image.Image
	cellW, cellH int
}

func NewSpriteSheet(img image.Image, cellW, cellH int) *SpriteSheet {
	return &SpriteSheet{img: img, cellW: cellW, cellH: cellH}
}

// Grid returns how many whole cells fit across and down the sheet.
func (s *SpriteSheet) Grid() (cols, rows int) {
	if s.cellW <= 0 || s.cellH <= 0 {
		return 0, 0
	}
	sz := s.img.Bounds().Size()
	return sz.X / s.cellW, sz.Y / s.cellH
}

// Crop returns the cell at col, row. The result has its origin at 0,0.
func (s *SpriteSheet) Crop(col, row int) (image.Image, error) {
	cols, rows := s.Grid()
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return nil, errors.Wrapf(ErrOutsideSheet, "cell %d,%d of %dx%d grid", col, row, cols, rows)
	}
	min := s.img.Bounds().Min
	src := image.Rect(col*s.cellW, row*s.cellH, (col+1)*s.cellW, (row+1)*s.cellH).Add(min)

	dst := image.NewRGBA(image.Rect(0, 0, s.cellW, s.cellH))
	for y := 0; y < s.cellH; y++ {
		for x := 0; x < s.cellW; x++ {
			dst.Set(x, y, s.img.At(src.Min.X+x, src.Min.Y+y))
		}
	}
	return dst, nil
}

// Fit scales img to exactly w×h using nearest neighbour sampling, which keeps
// pixel art crisp. Images already of that size are returned unchanged.
func Fit(img image.Image, w, h int) image.Image {
	if sz := img.Bounds().Size(); sz.X == w && sz.Y == h {
		return img
	}
	return resize.Resize(uint(w), uint(h), img, resize.NearestNeighbor)
}

// Set maps symbolic names to images.
type Set struct {
	images map[string]image.Image
}

func NewSet() *Set {
	return &Set{images: make(map[string]image.Image)}
}

func (s *Set) Add(name string, img image.Image) {
	if _, ok := s.images[name]; ok {
		glog.Warningf("asset %q added twice; keeping the newer image", name)
	}
	s.images[name] = img
}

func (s *Set) Get(name string) (image.Image, bool) {
	img, ok := s.images[name]
	return img, ok
}

func (s *Set) Names() []string {
	names := make([]string, 0, len(s.images))
	for n := range s.images {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s *Set) Len() int {
	return len(s.images)
}
