// Package datafiles carries small data files compiled into the binaries: a
// sample map and the default tileset manifest.
package datafiles

import (
	"bytes"
	_ "embed"
	"io"
)

const (
	SampleMapName = "sample.tmx"
	TilesetName   = "tileset.xml"
)

//go:embed sample.tmx
var sampleMap []byte

//go:embed tileset.xml
var tileset []byte

// SampleMap returns a reader over the embedded two-layer sample map.
func SampleMap() io.Reader {
	return bytes.NewReader(sampleMap)
}

// Tileset returns a reader over the embedded default tileset manifest.
func Tileset() io.Reader {
	return bytes.NewReader(tileset)
}
