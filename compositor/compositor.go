// Package compositor paints a part of a layered tile map onto a drawing
// surface.
//
// The visible window always starts at the map origin. Layers are painted in
// order, bottom first, each tile blitted unscaled at its grid position. A map
// that failed to load is painted in diagnostic mode instead: one fill over the
// whole viewport and a short message.
package compositor

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tmxmap/tilemap"
)

// Surface is what a Renderer draws onto.
type Surface interface {
	// Blit draws img with its top-left corner at x, y. The image is expected
	// to already be w×h.
	Blit(img image.Image, x, y, w, h int)
	// Fill paints r with a flat colour.
	Fill(r image.Rectangle, c color.Color)
	// Text draws one line of text with its top-left corner near x, y.
	Text(s string, x, y int, c color.Color)
}

// Config holds the per-deployment rendering settings.
type Config struct {
	TileWidth, TileHeight int

	// Overlay draws a one-line map summary in the top-left corner.
	Overlay bool
}

// DefaultConfig matches the 48px tiles the sample content is drawn for.
var DefaultConfig = Config{TileWidth: 48, TileHeight: 48}

type Mode int

const (
	ModeNormal Mode = iota
	ModeError
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeError:
		return "error"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

var (
	diagnosticFill = color.RGBA{255, 0, 0, 255}
	diagnosticText = color.RGBA{255, 255, 255, 255}
	overlayText    = color.RGBA{255, 255, 255, 255}
)

// DiagnosticMessage is the fixed text shown when the map could not be loaded.
var DiagnosticMessage = []string{
	"ERROR: the TMX map could not be loaded!",
	"See the log for details about the error.",
	"The map file must exist and be a valid CSV-encoded TMX map.",
}

type Renderer struct {
	cfg Config
	m   *tilemap.Map
}

// NewRenderer creates a renderer for m. The tile size in cfg must be positive.
func NewRenderer(m *tilemap.Map, cfg Config) (*Renderer, error) {
	if m == nil {
		return nil, errors.New("compositor: nil map")
	}
	if cfg.TileWidth <= 0 || cfg.TileHeight <= 0 {
		return nil, errors.Errorf("compositor: tile size %dx%d is not positive", cfg.TileWidth, cfg.TileHeight)
	}
	if ts := m.TileSize(); ts != (image.Point{}) && (ts.X != cfg.TileWidth || ts.Y != cfg.TileHeight) {
		glog.V(2).Infof("map authored for %dx%d tiles, drawing at %dx%d", ts.X, ts.Y, cfg.TileWidth, cfg.TileHeight)
	}
	return &Renderer{cfg: cfg, m: m}, nil
}

func (r *Renderer) Config() Config {
	return r.cfg
}

// Mode reports how the map will be drawn.
func (r *Renderer) Mode() Mode {
	if !r.m.Loaded() || r.m.LayerCount() == 0 || r.m.Width() <= 0 || r.m.Height() <= 0 {
		return ModeError
	}
	return ModeNormal
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Window returns how many tiles across and down are drawn for a viewport of
// the given pixel size: enough to cover it plus one partially visible tile,
// but never more than the map has.
func (r *Renderer) Window(viewportW, viewportH int) (tilesX, tilesY int) {
	if viewportW < 0 {
		viewportW = 0
	}
	if viewportH < 0 {
		viewportH = 0
	}
	tilesX = ceilDiv(viewportW, r.cfg.TileWidth) + 1
	tilesY = ceilDiv(viewportH, r.cfg.TileHeight) + 1
	if tilesX > r.m.Width() {
		tilesX = r.m.Width()
	}
	if tilesY > r.m.Height() {
		tilesY = r.m.Height()
	}
	return tilesX, tilesY
}

// Render paints one frame onto s.
//
// A tile that cannot be resolved aborts the frame and its error is returned;
// the map data is broken and substituting a tile would hide that.
func (r *Renderer) Render(s Surface, viewportW, viewportH int) error {
	if r.Mode() == ModeError {
		r.renderDiagnostic(s, viewportW, viewportH)
		return nil
	}

	tilesX, tilesY := r.Window(viewportW, viewportH)
	tw, th := r.cfg.TileWidth, r.cfg.TileHeight

	for layer := 0; layer < r.m.LayerCount(); layer++ {
		if visible, _ := r.m.LayerVisible(layer); !visible {
			continue
		}
		for y := 0; y < tilesY; y++ {
			for x := 0; x < tilesX; x++ {
				d, err := r.m.GetTileOnLayer(x, y, layer)
				if err != nil {
					return errors.Wrap(err, "compositor: rendering frame")
				}
				if d.IsEmpty() {
					continue
				}
				s.Blit(d.Image, x*tw, y*th, tw, th)
			}
		}
	}

	if r.cfg.Overlay {
		s.Text(r.m.Info(), 10, 10, overlayText)
	}
	return nil
}

func (r *Renderer) renderDiagnostic(s Surface, viewportW, viewportH int) {
	s.Fill(image.Rect(0, 0, viewportW, viewportH), diagnosticFill)
	for i, line := range DiagnosticMessage {
		s.Text(line, 50, 100+i*30, diagnosticText)
	}
}
