package paths

import (
	"flag"
)

// SetupFilePathFlag registers a string flag flagName for the data file
// fileName. Its default is the first copy Find locates: in the working
// directory, res/Mapa, res/textures, datafiles, $TMXMAP_DATA, the GOPATH
// checkout or the binary's runfiles. When no copy exists the default is
// empty, which callers take to mean the embedded version of the file.
func SetupFilePathFlag(fileName, flagName string, flagPtr *string) {
	flag.StringVar(flagPtr, flagName, Find(fileName), "Path to "+fileName+" (empty: embedded copy)")
}
