// Package tilemap contains the layered map model: a fixed-size grid of tile IDs
// per layer, with layers painted in order from first (bottom) to last (top).
//
// A Map is either loaded, in which case it has positive dimensions and at least
// one layer, or unloaded, in which case it has no layers at all and only
// carries the reason it could not be loaded.
package tilemap

import (
	"fmt"
	"image"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tmxmap/tiles"
)

var (
	// ErrOutOfRange is returned for coordinates outside the map.
	ErrOutOfRange = errors.New("coordinates out of range")
	// ErrInvalidLayer is returned for layer indices outside the map's layer list.
	ErrInvalidLayer = errors.New("invalid layer")
	// ErrNotLoaded is returned when querying tiles of a map that failed to load.
	ErrNotLoaded = errors.New("map is not loaded")
	// ErrInvalidModel is returned by New when its arguments break the model's invariants.
	ErrInvalidModel = errors.New("invalid map model")
)

// Layer is one grid of tile IDs, stored row-major.
type Layer struct {
	name    string
	ids     []int
	visible bool
}

// NewLayer creates a layer from a row-major slice of tile IDs. The slice is
// owned by the layer afterwards.
func NewLayer(name string, visible bool, ids []int) *Layer {
	return &Layer{
		name:    name,
		ids:     ids,
		visible: visible,
	}
}

func (l *Layer) Name() string  { return l.name }
func (l *Layer) Visible() bool { return l.visible }

func (l *Layer) String() string {
	return fmt.Sprintf("<layer %q visible=%t cells=%d>", l.name, l.visible, len(l.ids))
}

// Map is the layered map model.
type Map struct {
	width, height int
	layers        []*Layer
	loaded        bool

	// Authored tile size, if the source declared one. Advisory only.
	tileSize image.Point

	registry *tiles.Registry
	err      error
}

// MaxCells bounds width*height of a map.
const MaxCells = 1 << 24

// CellsFit reports whether a width×height grid is positive and holds at
// most MaxCells cells. The product is never computed before the check, so
// it cannot overflow.
func CellsFit(width, height int) bool {
	return width > 0 && height > 0 && height <= MaxCells/width
}

// New builds a loaded map. Every layer must have exactly width*height cells and
// there must be at least one layer.
func New(width, height int, layers []*Layer, registry *tiles.Registry) (*Map, error) {
	if !CellsFit(width, height) {
		return nil, errors.Wrapf(ErrInvalidModel, "dimensions %dx%d", width, height)
	}
	if len(layers) == 0 {
		return nil, errors.Wrap(ErrInvalidModel, "no layers")
	}
	if registry == nil {
		return nil, errors.Wrap(ErrInvalidModel, "no tile registry")
	}
	for i, l := range layers {
		if l == nil {
			return nil, errors.Wrapf(ErrInvalidModel, "layer %d is nil", i)
		}
		if len(l.ids) != width*height {
			return nil, errors.Wrapf(ErrInvalidModel, "layer %d (%q) has %d cells, want %d", i, l.name, len(l.ids), width*height)
		}
	}
	return &Map{
		width:    width,
		height:   height,
		layers:   layers,
		loaded:   true,
		registry: registry,
	}, nil
}

// Unloaded returns a map that failed to load because of cause. It has no
// layers and zero dimensions; renderers draw it in diagnostic mode.
func Unloaded(registry *tiles.Registry, cause error) *Map {
	if cause == nil {
		cause = ErrNotLoaded
	}
	return &Map{
		registry: registry,
		err:      cause,
	}
}

// SetTileSize records the tile size the map was authored with.
func (m *Map) SetTileSize(w, h int) {
	m.tileSize = image.Pt(w, h)
}

// TileSize returns the authored tile size, or a zero point if unknown.
func (m *Map) TileSize() image.Point {
	return m.tileSize
}

func (m *Map) Loaded() bool { return m.loaded }
func (m *Map) Width() int   { return m.width }
func (m *Map) Height() int  { return m.height }

// Err returns why the map is not loaded, or nil for a loaded map.
func (m *Map) Err() error {
	return m.err
}

func (m *Map) Registry() *tiles.Registry {
	return m.registry
}

// LayerCount returns the number of layers. It is zero for unloaded maps.
func (m *Map) LayerCount() int {
	return len(m.layers)
}

// LayerName returns the name of the layer at index.
func (m *Map) LayerName(index int) (string, error) {
	l, err := m.layer(index)
	if err != nil {
		return "", err
	}
	return l.name, nil
}

// LayerVisible reports whether the layer at index is currently drawn.
func (m *Map) LayerVisible(index int) (bool, error) {
	l, err := m.layer(index)
	if err != nil {
		return false, err
	}
	return l.visible, nil
}

func (m *Map) layer(index int) (*Layer, error) {
	if index < 0 || index >= len(m.layers) {
		return nil, errors.Wrapf(ErrInvalidLayer, "layer %d not in [0,%d)", index, len(m.layers))
	}
	return m.layers[index], nil
}

// SetLayerVisible shows or hides the layer at index. An unknown index is
// logged and otherwise ignored.
func (m *Map) SetLayerVisible(index int, visible bool) {
	l, err := m.layer(index)
	if err != nil {
		glog.Warningf("cannot set visibility of layer: %v", err)
		return
	}
	l.visible = visible
}

// SetLayerVisibleByName shows or hides every layer called name. Layer names are
// not unique, so more than one layer may change. An unknown name is logged and
// otherwise ignored.
func (m *Map) SetLayerVisibleByName(name string, visible bool) {
	found := false
	for _, l := range m.layers {
		if l.name == name {
			l.visible = visible
			found = true
		}
	}
	if !found {
		glog.Warningf("cannot set visibility of layer %q: no such layer", name)
	}
}

// TileID returns the raw tile ID stored at x, y on the given layer.
func (m *Map) TileID(x, y, layer int) (int, error) {
	if !m.loaded {
		return 0, errors.Wrapf(ErrNotLoaded, "tile %d,%d", x, y)
	}
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 0, errors.Wrapf(ErrOutOfRange, "tile %d,%d outside %dx%d map", x, y, m.width, m.height)
	}
	l, err := m.layer(layer)
	if err != nil {
		return 0, err
	}
	return l.ids[y*m.width+x], nil
}

// GetTileOnLayer resolves the tile at x, y on the given layer through the tile
// registry. Empty cells resolve to tiles.Empty.
func (m *Map) GetTileOnLayer(x, y, layer int) (tiles.Descriptor, error) {
	id, err := m.TileID(x, y, layer)
	if err != nil {
		return tiles.Empty, err
	}
	d, err := m.registry.Lookup(id)
	if err != nil {
		return tiles.Empty, errors.Wrapf(err, "tile %d,%d on layer %d", x, y, layer)
	}
	return d, nil
}

// GetTile resolves the tile at x, y on the bottom layer.
func (m *Map) GetTile(x, y int) (tiles.Descriptor, error) {
	return m.GetTileOnLayer(x, y, 0)
}

// Info returns a short human readable summary.
func (m *Map) Info() string {
	if !m.loaded {
		return "map not loaded"
	}
	return fmt.Sprintf("map %dx%d tiles, %d layers", m.width, m.height, len(m.layers))
}

func (m *Map) String() string {
	return "<" + m.Info() + ">"
}
