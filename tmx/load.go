package tmx

import (
	"io"

	"github.com/golang/glog"

	"badc0de.net/pkg/go-tmxmap/tilemap"
	"badc0de.net/pkg/go-tmxmap/tiles"
)

// Load is the fail-safe entry point used during startup. It never fails: if
// the map cannot be parsed, the error is logged and an unloaded model carrying
// the cause is returned instead. Renderers draw such a model in diagnostic
// mode.
func Load(path string, registry *tiles.Registry) *tilemap.Map {
	glog.Infof("loading tmx map from %s", path)
	m, err := Parse(path, registry)
	return settle(m, err, path, registry)
}

// LoadReader is Load for an already opened document.
func LoadReader(r io.Reader, name string, registry *tiles.Registry) *tilemap.Map {
	glog.Infof("loading tmx map %s", name)
	m, err := Decode(r, name, registry)
	return settle(m, err, name, registry)
}

func settle(m *tilemap.Map, err error, name string, registry *tiles.Registry) *tilemap.Map {
	if err != nil {
		glog.Errorf("tmx map could not be loaded: %v", err)
		glog.Errorf("check that %s exists, is a TMX map exported from Tiled, stores layer data as uncompressed CSV, and that its path is right", name)
		return tilemap.Unloaded(registry, err)
	}
	glog.Infof("tmx map loaded: %s", m.Info())
	return m
}
