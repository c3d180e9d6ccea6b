// Package paths locates data files (maps, tileset manifests, sprite sheets)
// in the usual places a binary might find them.
package paths

import (
	"io"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// DataDirEnv names an environment variable with an extra directory to search.
const DataDirEnv = "TMXMAP_DATA"

// Find locates the passed data file and returns a path it can be opened at.
//
// Absolute paths and paths that exist relative to the working directory are
// returned as they are. Otherwise the data directories are searched, for
// example "res/Mapa/The_map.tmx" or "mybinary.runfiles/go_tmxmap/datafiles/sample.tmx".
// An empty string is returned if the file is nowhere to be found.
func Find(fileName string) string {
	for _, path := range possiblePaths(fileName) {
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			glog.V(2).Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return ""
}

// Open locates the passed file in the same locations that Find would look, and
// opens it. If Find returns an empty string, an error wrapping os.ErrNotExist is
// returned.
func Open(fileName string) (interface {
	io.ReadCloser
	io.Seeker
}, error) {
	path := Find(fileName)
	if path == "" {
		return nil, errors.Wrapf(os.ErrNotExist, "paths.Open(%q): not found in %v", fileName, Dirs())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "paths.Open(%q)", fileName)
	}
	return f, nil
}

// Dirs returns the directories searched for relative file names, in order.
func Dirs() []string {
	dirs := []string{
		".",
		filepath.Join("res", "Mapa"),
		filepath.Join("res", "textures"),
		"datafiles",
	}
	if d := os.Getenv(DataDirEnv); d != "" {
		dirs = append(dirs, d)
	}
	if gopath := os.Getenv("GOPATH"); gopath != "" {
		dirs = append(dirs, filepath.Join(gopath, "src", "badc0de.net", "pkg", "go-tmxmap", "datafiles"))
	}
	if len(os.Args) > 0 {
		dirs = append(dirs, os.Args[0]+".runfiles/go_tmxmap/datafiles")
	}
	return dirs
}

func possiblePaths(fileName string) []string {
	if filepath.IsAbs(fileName) {
		return []string{fileName}
	}
	var out []string
	for _, dir := range Dirs() {
		out = append(out, filepath.Join(dir, fileName))
	}
	return out
}
