package roommap

import (
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/zooyer/dxfview/core"
	"github.com/zooyer/dxfview/scene"
)

func square(x, y, size float64) []Vertex {
	return []Vertex{{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size}, {X: x, Y: y + size}}
}

func TestHash_Deterministic(t *testing.T) {
	a := square(0, 0, 10)
	b := square(0, 0, 10)
	if Hash(a) != Hash(b) {
		t.Fatal("equal vertex lists must hash equally")
	}

	// 单个顶点：1*31 + round(31*(31*1+2)+3)
	if got, want := Hash([]Vertex{{X: 1, Y: 2, Z: 3}}), int64(31+31*33+3); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}

	if Hash(nil) != 1 {
		t.Fatalf("empty list must hash to the seed, got %d", Hash(nil))
	}

	// 很长的列表也不会溢出成同一个值
	long1 := make([]Vertex, 500)
	long2 := make([]Vertex, 500)
	for i := range long1 {
		long1[i] = Vertex{X: float64(i), Y: 1}
		long2[i] = Vertex{X: float64(i), Y: 2}
	}
	if Hash(long1) == Hash(long2) {
		t.Fatal("long lists with different vertices collided")
	}
}

func TestCache_TransformIdentity(t *testing.T) {
	c := NewCache()
	g1 := c.Transform(Mapping{Name: "A", Vertices: square(0, 0, 10)})
	g2 := c.Transform(Mapping{Name: "B", Vertices: square(0, 0, 10)})
	if g1 != g2 {
		t.Fatal("identical vertex lists must return the identical geometry")
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.Len())
	}
	if len(g1.Points) != 4 || len(g1.Triangles) != 2 {
		t.Fatalf("unexpected polygon: %d points, %d triangles", len(g1.Points), len(g1.Triangles))
	}

	if g3 := c.Transform(Mapping{Vertices: square(1, 0, 10)}); g3 == g1 {
		t.Fatal("different vertex lists must not share geometry")
	}
}

func TestCache_Override(t *testing.T) {
	c := NewCache()
	vertices := square(0, 0, 10)
	override := &scene.Geometry{Points: []core.Point{{X: 1}}}

	c.AddOverride(vertices, override)
	if got := c.Transform(Mapping{Vertices: vertices}); got != override {
		t.Fatal("override must be returned for the registered vertex list")
	}

	replacement := &scene.Geometry{}
	c.AddOverride(vertices, replacement)
	if got := c.Transform(Mapping{Vertices: vertices}); got != replacement {
		t.Fatal("later override must replace the earlier one")
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.Len())
	}

	// 调用方修改原切片不影响缓存
	vertices[0].X = 99
	if got := c.Transform(Mapping{Vertices: square(0, 0, 10)}); got != replacement {
		t.Fatal("cache must keep its own copy of the vertices")
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := NewCache()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Transform(Mapping{Vertices: square(float64(i%4), 0, 1)})
			c.AddOverride(square(100, float64(i), 1), &scene.Geometry{})
		}(i)
	}
	wg.Wait()
	if c.Len() != 4+16 {
		t.Fatalf("expected 20 entries, got %d", c.Len())
	}
}

func TestMapping_AreaAndContains(t *testing.T) {
	m := Mapping{Vertices: square(0, 0, 4)}
	if m.Area() != 16 {
		t.Fatalf("expected area 16, got %f", m.Area())
	}
	if !m.Contains(core.Point{X: 2, Y: 2}) || m.Contains(core.Point{X: 5, Y: 2}) {
		t.Fatal("contains mismatch")
	}

	rooms := []Mapping{{Name: "A", Vertices: square(0, 0, 4)}, {Name: "B", Vertices: square(10, 0, 4)}}
	if room, ok := Locate(rooms, core.Point{X: 11, Y: 1}); !ok || room.Name != "B" {
		t.Fatalf("expected room B, got %q %v", room.Name, ok)
	}
	if _, ok := Locate(rooms, core.Point{X: 7, Y: 1}); ok {
		t.Fatal("point between rooms must not be located")
	}
}

func TestReadCSV(t *testing.T) {
	const data = "RoomNumber,Cluster,Polygon\n" +
		"1.01,Office,\"[(0, 0), (4, 0), (4, 3), (0, 3)]\"\n" +
		"1.02,Lab,\"[(4.5, 0), (8, 0), (8, 3)]\"\n"

	mappings, err := ReadCSV(strings.NewReader(data), CSVOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(mappings) != 2 {
		t.Fatalf("expected 2 mappings, got %d", len(mappings))
	}
	if mappings[0].Name != "1.01" || mappings[0].Category != "Office" || len(mappings[0].Vertices) != 4 {
		t.Fatalf("unexpected first mapping: %+v", mappings[0])
	}
	if v := mappings[1].Vertices[0]; v.X != 4.5 || v.Y != 0 {
		t.Fatalf("unexpected vertex: %+v", v)
	}
	if math.Abs(mappings[0].Area()-12) > 1e-9 {
		t.Fatalf("expected area 12, got %f", mappings[0].Area())
	}
}

func TestReadCSV_CustomOptions(t *testing.T) {
	const data = "Room;Category;Outline\nA;Hall;[(0, 0), (1, 0), (1, 1)]\n"
	opts := CSVOptions{Delimiter: ";", RoomNameHeader: "Room", CategoryHeader: "Category", PolygonHeader: "Outline"}

	mappings, err := ReadCSV(strings.NewReader(data), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(mappings) != 1 || mappings[0].Category != "Hall" || len(mappings[0].Vertices) != 3 {
		t.Fatalf("unexpected mappings: %+v", mappings)
	}

	if _, err := ReadCSV(strings.NewReader(data), CSVOptions{Delimiter: ";"}); err == nil {
		t.Fatal("expected missing column error")
	}
}

func TestParsePolygon_Invalid(t *testing.T) {
	for _, s := range []string{"[(0, 0), (1)]", "[(a, 0)]"} {
		if _, err := ParsePolygon(s); err == nil {
			t.Fatalf("%q: expected error", s)
		}
	}
	if v, err := ParsePolygon("[]"); err != nil || len(v) != 0 {
		t.Fatalf("empty polygon: %v %v", v, err)
	}
}

func TestPalette(t *testing.T) {
	p := NewPalette([]Mapping{{Category: "B"}, {Category: "A"}, {Category: "B"}})
	if cats := p.Categories(); len(cats) != 2 || cats[0] != "B" || cats[1] != "A" {
		t.Fatalf("unexpected categories: %v", cats)
	}
	if p.Color("B") == p.Color("A") {
		t.Fatal("categories must get distinct colors")
	}
	if p.Color("B") != paletteColors[0] {
		t.Fatal("first category must get the first color")
	}
}
