package tilemap

import (
	"math"
	"testing"

	"badc0de.net/pkg/go-tmxmap/tiles"
	"badc0de.net/pkg/go-tmxmap/ttesting"
)

func newTestRegistry(t *testing.T) *tiles.Registry {
	t.Helper()
	r := tiles.NewRegistry()
	r.MustRegister(tiles.Placeholder(1, "grass", 4, 4))
	r.MustRegister(tiles.Placeholder(2, "tree", 4, 4))
	r.Freeze()
	return r
}

// 3x2 map, single layer "ground" with data 1,0,2,1,0,2.
func newGroundMap(t *testing.T) *Map {
	t.Helper()
	m, err := New(3, 2, []*Layer{NewLayer("ground", true, []int{1, 0, 2, 1, 0, 2})}, newTestRegistry(t))
	if err != nil {
		t.Fatalf("failed to build map: %v", err)
	}
	return m
}

func TestGetTile(t *testing.T) {
	m := newGroundMap(t)

	tcs := []struct {
		x, y   int
		wantID int
	}{
		{0, 0, 1},
		{1, 0, 0},
		{2, 0, 2},
		{0, 1, 1},
		{1, 1, 0},
		{2, 1, 2},
	}
	for _, tc := range tcs {
		d, err := m.GetTile(tc.x, tc.y)
		if err != nil {
			t.Errorf("GetTile(%d, %d): unexpected error %v", tc.x, tc.y, err)
			continue
		}
		if d.ID != tc.wantID {
			t.Errorf("GetTile(%d, %d): got id %d; want %d", tc.x, tc.y, d.ID, tc.wantID)
		}
		if tc.wantID == 0 && !d.IsEmpty() {
			t.Errorf("GetTile(%d, %d): got %v; want empty", tc.x, tc.y, d)
		}
	}
}

func TestGetTileNeverFailsInside(t *testing.T) {
	r := newTestRegistry(t)
	m, err := New(2, 2, []*Layer{
		NewLayer("a", true, []int{1, 2, 0, 1}),
		NewLayer("b", false, []int{0, 0, 2, 0}),
	}, r)
	if err != nil {
		t.Fatalf("failed to build map: %v", err)
	}
	for layer := 0; layer < m.LayerCount(); layer++ {
		for y := 0; y < m.Height(); y++ {
			for x := 0; x < m.Width(); x++ {
				if _, err := m.GetTileOnLayer(x, y, layer); err != nil {
					t.Errorf("GetTileOnLayer(%d, %d, %d): %v", x, y, layer, err)
				}
			}
		}
	}
}

func TestGetTileOutOfRange(t *testing.T) {
	m := newGroundMap(t)
	coords := [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 2}, {3, 2}, {-5, -5}, {100, 1}}
	for _, c := range coords {
		for layer := -1; layer <= m.LayerCount(); layer++ {
			_, err := m.GetTileOnLayer(c[0], c[1], layer)
			ttesting.AssertErrorIs(t, "outside map", err, ErrOutOfRange)
		}
	}
}

func TestGetTileInvalidLayer(t *testing.T) {
	m := newGroundMap(t)
	for _, layer := range []int{-1, 1, 7} {
		_, err := m.GetTileOnLayer(0, 0, layer)
		ttesting.AssertErrorIs(t, "bad layer", err, ErrInvalidLayer)
	}
}

func TestGetTileUnresolvable(t *testing.T) {
	m, err := New(2, 1, []*Layer{NewLayer("bad", true, []int{5, 40})}, newTestRegistry(t))
	if err != nil {
		t.Fatalf("failed to build map: %v", err)
	}
	_, err = m.GetTile(0, 0)
	ttesting.AssertErrorIs(t, "unregistered id", err, tiles.ErrMissingTileDescriptor)
	_, err = m.GetTile(1, 0)
	ttesting.AssertErrorIs(t, "id beyond capacity", err, tiles.ErrInvalidTileID)
}

func TestNewRejectsBrokenInvariants(t *testing.T) {
	r := newTestRegistry(t)
	tcs := []struct {
		name          string
		width, height int
		layers        []*Layer
	}{
		{"zero width", 0, 1, []*Layer{NewLayer("", true, nil)}},
		{"negative height", 1, -1, []*Layer{NewLayer("", true, nil)}},
		{"no layers", 1, 1, nil},
		{"short layer", 2, 2, []*Layer{NewLayer("", true, []int{1, 1, 1})}},
		{"nil layer", 1, 1, []*Layer{nil}},
		// MaxInt*MaxInt wraps around to 1.
		{"product overflows", math.MaxInt, math.MaxInt, []*Layer{NewLayer("", true, []int{1})}},
		{"too many cells", MaxCells, 2, []*Layer{NewLayer("", true, nil)}},
	}
	for _, tc := range tcs {
		_, err := New(tc.width, tc.height, tc.layers, r)
		ttesting.AssertErrorIs(t, tc.name, err, ErrInvalidModel)
	}
}

func TestUnloaded(t *testing.T) {
	m := Unloaded(newTestRegistry(t), nil)
	ttesting.AssertEqualBool(t, "loaded", m.Loaded(), false)
	ttesting.AssertEqualInt(t, "layer count", m.LayerCount(), 0)
	ttesting.AssertErrorIs(t, "err", m.Err(), ErrNotLoaded)

	_, err := m.GetTile(0, 0)
	ttesting.AssertErrorIs(t, "query", err, ErrNotLoaded)
	_, err = m.LayerName(0)
	ttesting.AssertErrorIs(t, "layer name", err, ErrInvalidLayer)
}

func TestLayerVisibility(t *testing.T) {
	r := newTestRegistry(t)
	m, err := New(1, 1, []*Layer{
		NewLayer("ground", true, []int{1}),
		NewLayer("deco", false, []int{2}),
		NewLayer("deco", true, []int{0}),
	}, r)
	if err != nil {
		t.Fatalf("failed to build map: %v", err)
	}

	snapshot := func() []bool {
		out := make([]bool, m.LayerCount())
		for i := range out {
			out[i], _ = m.LayerVisible(i)
		}
		return out
	}

	before := snapshot()
	m.SetLayerVisibleByName("no such layer", false)
	m.SetLayerVisible(3, false)
	m.SetLayerVisible(-1, false)
	after := snapshot()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("layer %d: visibility changed by unknown target (%t -> %t)", i, before[i], after[i])
		}
	}

	m.SetLayerVisible(0, false)
	v, _ := m.LayerVisible(0)
	ttesting.AssertEqualBool(t, "by index", v, false)

	m.SetLayerVisibleByName("deco", true)
	v1, _ := m.LayerVisible(1)
	v2, _ := m.LayerVisible(2)
	ttesting.AssertEqualBool(t, "first deco", v1, true)
	ttesting.AssertEqualBool(t, "second deco", v2, true)
}

func TestLayerAccessors(t *testing.T) {
	m := newGroundMap(t)
	ttesting.AssertEqualInt(t, "count", m.LayerCount(), 1)
	name, err := m.LayerName(0)
	ttesting.AssertNoError(t, "name error", err)
	ttesting.AssertEqualString(t, "name", name, "ground")
	ttesting.AssertEqualString(t, "info", m.Info(), "map 3x2 tiles, 1 layers")
}

func TestCellsFit(t *testing.T) {
	ttesting.AssertEqualBool(t, "max", CellsFit(MaxCells, 1), true)
	ttesting.AssertEqualBool(t, "one over", CellsFit(MaxCells/2+1, 2), false)
	ttesting.AssertEqualBool(t, "wrapping product", CellsFit(math.MaxInt, math.MaxInt), false)
	ttesting.AssertEqualBool(t, "zero", CellsFit(0, 5), false)
}
