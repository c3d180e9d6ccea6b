package compositor

import (
	"image"
	"image/color"
	"testing"

	"badc0de.net/pkg/go-tmxmap/tilemap"
	"badc0de.net/pkg/go-tmxmap/tiles"
	"badc0de.net/pkg/go-tmxmap/ttesting"
)

type blit struct {
	img        image.Image
	x, y, w, h int
}

// recordingSurface remembers every call made to it.
type recordingSurface struct {
	blits []blit
	fills []image.Rectangle
	texts []string
}

func (s *recordingSurface) Blit(img image.Image, x, y, w, h int) {
	s.blits = append(s.blits, blit{img, x, y, w, h})
}

func (s *recordingSurface) Fill(r image.Rectangle, c color.Color) {
	s.fills = append(s.fills, r)
}

func (s *recordingSurface) Text(str string, x, y int, c color.Color) {
	s.texts = append(s.texts, str)
}

// testRegistry holds a grass tile (1) and a tree tile (2).
func testRegistry(tileSize int) *tiles.Registry {
	r := tiles.NewRegistry()
	r.MustRegister(tiles.Placeholder(1, "grass", tileSize, tileSize))
	r.MustRegister(tiles.Placeholder(2, "tree", tileSize, tileSize))
	r.Freeze()
	return r
}

func newTestMap(t *testing.T, w, h int, layers ...*tilemap.Layer) *tilemap.Map {
	t.Helper()
	m, err := tilemap.New(w, h, layers, testRegistry(16))
	if err != nil {
		t.Fatalf("failed to build map: %v", err)
	}
	return m
}

func filled(n, id int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = id
	}
	return ids
}

func TestWindow(t *testing.T) {
	m := newTestMap(t, 100, 50, tilemap.NewLayer("a", true, filled(100*50, 1)))
	r, err := NewRenderer(m, Config{TileWidth: 48, TileHeight: 48})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	tcs := []struct {
		vw, vh       int
		wantX, wantY int
	}{
		{800, 600, 18, 14},      // ceil(16.67)+1, ceil(12.5)+1
		{960, 480, 21, 11},      // exact multiples still get the extra tile
		{0, 0, 1, 1},            // nothing visible but the trailing tile
		{48000, 48000, 100, 50}, // clamped to the map
		{-10, 1, 1, 2},
	}
	for _, tc := range tcs {
		x, y := r.Window(tc.vw, tc.vh)
		if x != tc.wantX || y != tc.wantY {
			t.Errorf("Window(%d, %d): got %d,%d; want %d,%d", tc.vw, tc.vh, x, y, tc.wantX, tc.wantY)
		}
	}
}

func TestRenderNormal(t *testing.T) {
	m := newTestMap(t, 3, 2,
		tilemap.NewLayer("ground", true, []int{1, 0, 2, 1, 0, 2}),
		tilemap.NewLayer("top", true, []int{0, 2, 0, 0, 0, 0}),
	)
	r, err := NewRenderer(m, Config{TileWidth: 16, TileHeight: 16})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	ttesting.AssertEqualInt(t, "mode", int(r.Mode()), int(ModeNormal))

	s := &recordingSurface{}
	if err := r.Render(s, 640, 480); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := []blit{
		// ground layer first, empty cells skipped
		{x: 0, y: 0}, {x: 32, y: 0}, {x: 0, y: 16}, {x: 32, y: 16},
		// then the top layer
		{x: 16, y: 0},
	}
	if len(s.blits) != len(want) {
		t.Fatalf("got %d blits; want %d: %+v", len(s.blits), len(want), s.blits)
	}
	for i, w := range want {
		b := s.blits[i]
		if b.x != w.x || b.y != w.y || b.w != 16 || b.h != 16 {
			t.Errorf("blit %d: got %d,%d %dx%d; want %d,%d 16x16", i, b.x, b.y, b.w, b.h, w.x, w.y)
		}
	}
	ttesting.AssertEqualInt(t, "fills", len(s.fills), 0)
}

func TestRenderSkipsHiddenLayers(t *testing.T) {
	m := newTestMap(t, 2, 1,
		tilemap.NewLayer("ground", true, []int{1, 1}),
		tilemap.NewLayer("hidden", false, []int{2, 2}),
	)
	r, _ := NewRenderer(m, Config{TileWidth: 16, TileHeight: 16})

	s := &recordingSurface{}
	r.Render(s, 32, 16)
	ttesting.AssertEqualInt(t, "hidden layer skipped", len(s.blits), 2)

	m.SetLayerVisibleByName("hidden", true)
	s = &recordingSurface{}
	r.Render(s, 32, 16)
	ttesting.AssertEqualInt(t, "shown again", len(s.blits), 4)
}

func TestRenderWindowLimitsBlits(t *testing.T) {
	m := newTestMap(t, 10, 10, tilemap.NewLayer("a", true, filled(100, 1)))
	r, _ := NewRenderer(m, Config{TileWidth: 16, TileHeight: 16})

	s := &recordingSurface{}
	if err := r.Render(s, 32, 16); err != nil {
		t.Fatalf("Render: %v", err)
	}
	// 3 columns by 2 rows.
	ttesting.AssertEqualInt(t, "blits", len(s.blits), 6)
}

func TestRenderErrorMode(t *testing.T) {
	m := tilemap.Unloaded(testRegistry(16), nil)
	r, err := NewRenderer(m, DefaultConfig)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	ttesting.AssertEqualInt(t, "mode", int(r.Mode()), int(ModeError))

	for _, vp := range [][2]int{{0, 0}, {1, 1}, {800, 600}, {4096, 2160}} {
		s := &recordingSurface{}
		if err := r.Render(s, vp[0], vp[1]); err != nil {
			t.Fatalf("Render: %v", err)
		}
		ttesting.AssertEqualInt(t, "no blits", len(s.blits), 0)
		ttesting.AssertEqualInt(t, "one fill", len(s.fills), 1)
		if s.fills[0] != image.Rect(0, 0, vp[0], vp[1]) {
			t.Errorf("fill: got %v; want the whole %dx%d viewport", s.fills[0], vp[0], vp[1])
		}
		ttesting.AssertEqualInt(t, "message lines", len(s.texts), len(DiagnosticMessage))
	}
}

func TestRenderFailsLoudOnBadTile(t *testing.T) {
	m := newTestMap(t, 2, 1, tilemap.NewLayer("a", true, []int{1, 7}))
	r, _ := NewRenderer(m, Config{TileWidth: 16, TileHeight: 16})
	s := &recordingSurface{}
	err := r.Render(s, 32, 16)
	ttesting.AssertErrorIs(t, "missing descriptor", err, tiles.ErrMissingTileDescriptor)
}

func TestRenderOverlay(t *testing.T) {
	m := newTestMap(t, 1, 1, tilemap.NewLayer("a", true, []int{1}))
	r, _ := NewRenderer(m, Config{TileWidth: 16, TileHeight: 16, Overlay: true})
	s := &recordingSurface{}
	r.Render(s, 16, 16)
	if len(s.texts) != 1 || s.texts[0] != m.Info() {
		t.Errorf("got texts %q; want [%q]", s.texts, m.Info())
	}
	ttesting.AssertEqualInt(t, "blits", len(s.blits), 1)
}

func TestNewRendererRejectsBadConfig(t *testing.T) {
	m := newTestMap(t, 1, 1, tilemap.NewLayer("a", true, []int{1}))
	if _, err := NewRenderer(m, Config{TileWidth: 0, TileHeight: 16}); err == nil {
		t.Error("got no error for zero tile width")
	}
	if _, err := NewRenderer(nil, DefaultConfig); err == nil {
		t.Error("got no error for nil map")
	}
}

func TestComposite(t *testing.T) {
	m := newTestMap(t, 2, 2, tilemap.NewLayer("a", true, []int{1, 0, 0, 2}))
	r, _ := NewRenderer(m, Config{TileWidth: 16, TileHeight: 16})
	img, err := Composite(r, 32, 32)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	ttesting.AssertEqualInt(t, "width", img.Bounds().Dx(), 32)

	grass, _ := m.GetTile(0, 0)
	if got, want := img.At(5, 5), grass.Image.At(5, 5); got != want {
		t.Errorf("pixel 5,5: got %v; want %v", got, want)
	}
	if _, _, _, a := img.At(20, 5).RGBA(); a != 0 {
		t.Errorf("empty cell pixel alpha: got %d; want 0", a)
	}
}

func TestCompositeDiagnostic(t *testing.T) {
	r, _ := NewRenderer(tilemap.Unloaded(testRegistry(16), nil), DefaultConfig)
	img, err := Composite(r, 100, 50)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if got := color.RGBAModel.Convert(img.At(99, 49)); got != diagnosticFill {
		t.Errorf("corner: got %v; want %v", got, diagnosticFill)
	}
}

func TestImageSurfaceScalesTiles(t *testing.T) {
	s := NewImageSurface(32, 32)
	small := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			small.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	s.Blit(small, 16, 16, 16, 16)
	if got := s.RGBAAt(31, 31); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("scaled corner: got %v; want blue", got)
	}
	if got := s.RGBAAt(15, 15); got.A != 0 {
		t.Errorf("outside the cell: got %v; want transparent", got)
	}
}
