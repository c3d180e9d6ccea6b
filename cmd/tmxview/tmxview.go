// Command tmxview shows a TMX map in a window.
//
// Keys 1 to 9 toggle the visibility of the matching layer; Escape quits.
package main

import (
	"flag"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"badc0de.net/pkg/go-tmxmap/compositor"
	"badc0de.net/pkg/go-tmxmap/compositor/ebitensurface"
	"badc0de.net/pkg/go-tmxmap/things/full"
	"badc0de.net/pkg/go-tmxmap/tilemap"
)

var (
	windowWidth  = flag.Int("window_width", 800, "window width in pixels")
	windowHeight = flag.Int("window_height", 600, "window height in pixels")
	overlay      = flag.Bool("overlay", true, "whether to draw map info in the corner")
)

var layerKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

type game struct {
	m       *tilemap.Map
	r       *compositor.Renderer
	surface *ebitensurface.Surface

	// err is the first render failure; Update hands it to ebiten to stop.
	err error
}

func (g *game) Update() error {
	if g.err != nil {
		return g.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for i, k := range layerKeys {
		if !inpututil.IsKeyJustPressed(k) {
			continue
		}
		visible, err := g.m.LayerVisible(i)
		if err != nil {
			continue
		}
		g.m.SetLayerVisible(i, !visible)
		glog.Infof("layer %d visible=%t", i, !visible)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.surface.SetScreen(screen)
	b := screen.Bounds()
	if err := g.r.Render(g.surface, b.Dx(), b.Dy()); err != nil && g.err == nil {
		glog.Errorf("rendering: %v", err)
		g.err = err
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func main() {
	full.SetupFilePathFlags()
	flagutil.Parse()

	registry, _, err := full.FromFilePathFlags()
	if err != nil {
		glog.Exitf("building tile registry: %v", err)
	}
	m := full.MapFromFlags(registry)

	tw, th := full.TileSize()
	r, err := compositor.NewRenderer(m, compositor.Config{TileWidth: tw, TileHeight: th, Overlay: *overlay})
	if err != nil {
		glog.Exitf("creating renderer: %v", err)
	}

	ebiten.SetWindowSize(*windowWidth, *windowHeight)
	ebiten.SetWindowTitle("tmxview: " + m.Info())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := &game{m: m, r: r, surface: ebitensurface.New()}
	if err := ebiten.RunGame(g); err != nil {
		glog.Exitf("%v", err)
	}
}
