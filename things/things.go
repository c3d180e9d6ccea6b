// Package things puts together the tile registry from a tileset manifest and
// the sprite sheet it refers to.
//
// It is the place where the registry is created and populated; everything
// after that only receives the frozen registry.
package things

import (
	"image"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tmxmap/assets"
	"badc0de.net/pkg/go-tmxmap/tiles"
	"badc0de.net/pkg/go-tmxmap/xmls"
)

type Things struct {
	tileset *xmls.Tileset
	sheet   *assets.SpriteSheet
	images  *assets.Set

	tileW, tileH int
}

// New creates an empty container producing tiles of tileW×tileH pixels.
func New(tileW, tileH int) (*Things, error) {
	if tileW <= 0 || tileH <= 0 {
		return nil, errors.Errorf("tile size %dx%d is not positive", tileW, tileH)
	}
	return &Things{
		images: assets.NewSet(),
		tileW:  tileW,
		tileH:  tileH,
	}, nil
}

func (t *Things) AddTileset(ts xmls.Tileset) error {
	t.tileset = &ts
	return nil
}

// AddSpriteSheet sets the sheet image cells are cropped from. The tileset
// must already be added, since it carries the cell size.
func (t *Things) AddSpriteSheet(img image.Image) error {
	if t.tileset == nil {
		return errors.New("sprite sheet added before tileset")
	}
	t.sheet = assets.NewSpriteSheet(img, t.tileset.CellWidth, t.tileset.CellHeight)
	return nil
}

// Images returns the per-name images produced by the last Registry call.
func (t *Things) Images() *assets.Set {
	return t.images
}

// Registry builds and freezes a tile registry with one descriptor per tileset
// entry. Entries whose image cannot be cut from the sprite sheet, or all of
// them if there is no sheet, get a generated placeholder image instead.
func (t *Things) Registry() (*tiles.Registry, error) {
	if t.tileset == nil {
		return nil, errors.New("no tileset added")
	}
	r := tiles.NewRegistry()
	placeholders := 0
	for _, e := range t.tileset.Tile {
		d := tiles.Placeholder(e.ID, e.Name, t.tileW, t.tileH)
		d.Solid = e.IsSolid()

		if t.sheet != nil {
			if cell, err := t.sheet.Crop(e.Col, e.Row); err != nil {
				glog.Warningf("tile %d %q: %v; using a placeholder", e.ID, e.Name, err)
				placeholders++
			} else {
				d.Image = assets.Fit(cell, t.tileW, t.tileH)
			}
		} else {
			placeholders++
		}

		if err := r.Register(d); err != nil {
			return nil, errors.Wrapf(err, "tileset entry %q", e.Name)
		}
		t.images.Add(e.Name, d.Image)
	}
	if placeholders > 0 {
		glog.Warningf("%d of %d tiles use generated placeholder images", placeholders, len(t.tileset.Tile))
	}
	r.Freeze()
	glog.Infof("tile registry ready: %d tiles of %dx%d px", r.Count(), t.tileW, t.tileH)
	return r, nil
}
