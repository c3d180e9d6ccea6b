// Command tmxprint renders a TMX map and prints it on the terminal.
package main

import (
	"flag"
	"image"
	"image/png"
	"os"
	"strings"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tmxmap/compositor"
	"badc0de.net/pkg/go-tmxmap/imageprint"
	"badc0de.net/pkg/go-tmxmap/things/full"
	"badc0de.net/pkg/go-tmxmap/tilemap"
)

var (
	mode     = flag.String("mode", "24bit", "how to print: 24bit, 256, nocolor, iterm or rasterm")
	blanks   = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize = flag.Bool("downsize", true, "whether to shrink the image to fit the terminal")
	viewW    = flag.Int("viewport_width", 0, "viewport width in pixels; 0 draws the whole map")
	viewH    = flag.Int("viewport_height", 0, "viewport height in pixels; 0 draws the whole map")
	hide     = flag.String("hide", "", "comma separated names of layers to hide")
	overlay  = flag.Bool("overlay", false, "whether to print map info over the image")
	pngOut   = flag.String("png", "", "also write the rendered image to this file")
)

func viewport(m *tilemap.Map, cfg compositor.Config) (int, int) {
	w, h := *viewW, *viewH
	if w <= 0 {
		w = m.Width() * cfg.TileWidth
	}
	if h <= 0 {
		h = m.Height() * cfg.TileHeight
	}
	if w <= 0 || h <= 0 {
		// Unloaded map: leave room for the diagnostic message.
		return 640, 200
	}
	return w, h
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating png")
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrap(err, "encoding png")
	}
	return f.Close()
}

func main() {
	full.SetupFilePathFlags()
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	printMode, err := imageprint.ParseMode(*mode)
	if err != nil {
		glog.Exitf("bad --mode: %v", err)
	}

	registry, _, err := full.FromFilePathFlags()
	if err != nil {
		glog.Exitf("building tile registry: %v", err)
	}
	m := full.MapFromFlags(registry)
	if !m.Loaded() {
		figure.NewFigure("no map", "", true).Print()
	}
	for _, name := range strings.Split(*hide, ",") {
		if name = strings.TrimSpace(name); name != "" {
			m.SetLayerVisibleByName(name, false)
		}
	}

	tw, th := full.TileSize()
	cfg := compositor.Config{TileWidth: tw, TileHeight: th, Overlay: *overlay}
	r, err := compositor.NewRenderer(m, cfg)
	if err != nil {
		glog.Exitf("creating renderer: %v", err)
	}
	vw, vh := viewport(m, cfg)
	img, err := compositor.Composite(r, vw, vh)
	if err != nil {
		glog.Exitf("rendering: %v", err)
	}
	glog.Infof("%s rendered %dx%d in %v mode", m.Info(), vw, vh, r.Mode())

	if *pngOut != "" {
		if err := writePNG(*pngOut, img); err != nil {
			glog.Errorf("writing %s: %v", *pngOut, err)
		}
	}

	out(img, printMode)
}
