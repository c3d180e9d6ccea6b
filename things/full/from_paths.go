// Package full wires a tiles.Registry together from the files named by a
// tileset manifest: the manifest itself and the sprite sheet it points at.
package full

import (
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tmxmap/assets"
	"badc0de.net/pkg/go-tmxmap/datafiles"
	"badc0de.net/pkg/go-tmxmap/paths"
	"badc0de.net/pkg/go-tmxmap/things"
	"badc0de.net/pkg/go-tmxmap/tiles"
	"badc0de.net/pkg/go-tmxmap/xmls"
)

// FromPaths reads the tileset manifest at tilesetPath, loads its sprite sheet
// through loader and returns the frozen registry. An empty tilesetPath selects
// the embedded default manifest.
//
// A sprite sheet that cannot be loaded is not an error: every tile then gets
// a generated placeholder image.
func FromPaths(tilesetPath string, loader assets.Loader, tileW, tileH int) (*tiles.Registry, *things.Things, error) {
	var r io.Reader
	if tilesetPath == "" {
		glog.Infof("full.FromPaths(): using embedded tileset manifest")
		r = datafiles.Tileset()
	} else {
		glog.Infof("full.FromPaths(): opening tileset manifest: %q", tilesetPath)
		f, err := paths.Open(tilesetPath)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening tileset manifest")
		}
		defer f.Close()
		r = f
	}
	return fromReader(r, loader, tileW, tileH)
}

// FromDefaults is FromPaths with the embedded manifest and images looked up
// in the data directories. Appropriate for tests and quick previews.
func FromDefaults(tileW, tileH int) (*tiles.Registry, *things.Things, error) {
	return FromPaths("", assets.FileLoader{}, tileW, tileH)
}

func fromReader(r io.Reader, loader assets.Loader, tileW, tileH int) (*tiles.Registry, *things.Things, error) {
	ts, err := xmls.ReadTileset(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parsing tileset manifest")
	}

	t, err := things.New(tileW, tileH)
	if err != nil {
		return nil, nil, errors.Wrap(err, "creating tile container")
	}
	t.AddTileset(ts)

	if ts.Image != "" && loader != nil {
		sheet, err := loader.LoadImage(ts.Image)
		if err != nil {
			glog.Warningf("sprite sheet %q could not be loaded: %v", ts.Image, err)
		} else {
			t.AddSpriteSheet(sheet)
		}
	}

	reg, err := t.Registry()
	if err != nil {
		return nil, nil, errors.Wrap(err, "building tile registry")
	}
	return reg, t, nil
}
