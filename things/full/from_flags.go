package full

import (
	"flag"

	"badc0de.net/pkg/go-tmxmap/assets"
	"badc0de.net/pkg/go-tmxmap/datafiles"
	"badc0de.net/pkg/go-tmxmap/paths"
	"badc0de.net/pkg/go-tmxmap/things"
	"badc0de.net/pkg/go-tmxmap/tilemap"
	"badc0de.net/pkg/go-tmxmap/tiles"
	"badc0de.net/pkg/go-tmxmap/tmx"
)

var (
	tilesetPath string
	mapPath     string

	tileWidth  = flag.Int("tile_width", 48, "on-screen width of one tile, in pixels")
	tileHeight = flag.Int("tile_height", 48, "on-screen height of one tile, in pixels")
)

const (
	FlagTilesetPath = "tileset_path"
	FlagMapPath     = "map_path"
)

// SetupFilePathFlags registers --tileset_path and --map_path, defaulting to
// files found in the data directories. An empty value selects the embedded
// copy.
func SetupFilePathFlags() {
	paths.SetupFilePathFlag(datafiles.TilesetName, FlagTilesetPath, &tilesetPath)
	paths.SetupFilePathFlag(datafiles.SampleMapName, FlagMapPath, &mapPath)
}

// TileSize returns the tile size selected with --tile_width and --tile_height.
func TileSize() (w, h int) {
	return *tileWidth, *tileHeight
}

// FromFilePathFlags builds the registry from the files named on the command
// line. The flags need to be registered and parsed by the time this function
// is invoked.
func FromFilePathFlags() (*tiles.Registry, *things.Things, error) {
	w, h := TileSize()
	return FromPaths(tilesetPath, assets.FileLoader{}, w, h)
}

// MapFromFlags loads the map named by --map_path. A map that fails to load
// comes back unloaded, carrying the reason.
func MapFromFlags(registry *tiles.Registry) *tilemap.Map {
	if mapPath == "" {
		return tmx.LoadReader(datafiles.SampleMap(), datafiles.SampleMapName, registry)
	}
	return tmx.Load(mapPath, registry)
}
