package scene

import (
	"math"
	"testing"

	"github.com/zooyer/dxfview/bounds"
	"github.com/zooyer/dxfview/core"
)

func TestParseColor(t *testing.T) {
	for _, s := range []string{"#FF8000", "ff8000", "0xff8000", " #ff8000 "} {
		c, err := ParseColor(s)
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if c != 0xFF8000 {
			t.Fatalf("%q: expected 0xff8000, got %#x", s, uint32(c))
		}
		if c.Hex() != "#ff8000" {
			t.Fatalf("expected #ff8000, got %s", c.Hex())
		}
	}

	for _, s := range []string{"", "#fff", "red", "#1234567"} {
		if _, err := ParseColor(s); err == nil {
			t.Fatalf("%q: expected error", s)
		}
	}

	var c Color
	if err := c.Decode("#00ff00"); err != nil || c != 0x00FF00 {
		t.Fatalf("decode: %v %#x", err, uint32(c))
	}
}

func TestObject_BBoxWorldSpace(t *testing.T) {
	line := NewObject(KindLine, &Geometry{Points: []core.Point{{X: 0, Y: 0}, {X: 2, Y: 0}}})
	line.Position = core.Point{X: 10, Y: 10}
	line.Rotation = math.Pi / 2

	box := line.BBox()
	if math.Abs(box.Min.X-10) > 1e-9 || math.Abs(box.Max.X-10) > 1e-9 {
		t.Fatalf("unexpected x range: %+v", box)
	}
	if math.Abs(box.Min.Y-10) > 1e-9 || math.Abs(box.Max.Y-12) > 1e-9 {
		t.Fatalf("unexpected y range: %+v", box)
	}

	group := NewGroup(line)
	group.Position = core.Point{X: -10, Y: 0, Z: 5}
	box = group.BBox()
	if math.Abs(box.Min.X) > 1e-9 || box.Min.Z != 5 {
		t.Fatalf("child transform not composed: %+v", box)
	}

	if !NewGroup().BBox().IsEmpty() {
		t.Fatal("group without geometry must have an empty box")
	}
}

func TestGraph_AddRemove(t *testing.T) {
	g := NewGraph()
	a := NewObject(KindLine, &Geometry{Points: []core.Point{{X: 0}, {X: 1}}})
	b := NewObject(KindLine, &Geometry{Points: []core.Point{{X: 5}, {X: 6}}})

	g.Add(a)
	g.Add(b)
	g.Add(nil)
	if g.Len() != 2 {
		t.Fatalf("expected 2 objects, got %d", g.Len())
	}
	if a.ID == b.ID {
		t.Fatal("object ids must be unique")
	}
	if obj, ok := g.Get(b.ID); !ok || obj != b {
		t.Fatal("lookup by id failed")
	}

	if box := g.BBox(); box.Min.X != 0 || box.Max.X != 6 {
		t.Fatalf("unexpected graph bbox: %+v", box)
	}

	if !g.Remove(a) || g.Remove(a) {
		t.Fatal("remove must succeed exactly once")
	}
	if objs := g.Objects(); len(objs) != 1 || objs[0] != b {
		t.Fatalf("unexpected objects: %v", objs)
	}

	g.Dispose()
	if g.Len() != 0 || b.Geometry != nil {
		t.Fatal("dispose must clear the graph and drop geometry")
	}
}

func TestTriangulate(t *testing.T) {
	// L 形凹多边形，顺时针给出
	points := []core.Point{
		{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 0},
	}
	tris := Triangulate(points)
	if len(tris) != len(points)-2 {
		t.Fatalf("expected %d triangles, got %d", len(points)-2, len(tris))
	}

	var area float64
	for _, tri := range tris {
		a, b, c := points[tri[0]], points[tri[1]], points[tri[2]]
		area += math.Abs(cross2(a, b, c)) / 2
	}
	if math.Abs(area-3) > 1e-9 {
		t.Fatalf("triangles must cover the polygon: area %f", area)
	}

	closed := append([]core.Point{}, points...)
	closed = append(closed, points[0])
	if got := Triangulate(closed); len(got) != len(points)-2 {
		t.Fatalf("closing vertex must be ignored, got %d triangles", len(got))
	}

	if Triangulate(points[:2]) != nil {
		t.Fatal("degenerate polygon must not triangulate")
	}
}

func TestCamera_Fit(t *testing.T) {
	var c Camera
	if c.Fit(bounds.Empty(), 100, 100) {
		t.Fatal("unset bounds must not fit")
	}

	b := bounds.Bounds{X: bounds.Range{Min: 0, Max: 20}, Y: bounds.Range{Min: 0, Max: 10}, Z: bounds.Range{}}
	if !c.Fit(b, 200, 100) {
		t.Fatal("expected fit")
	}
	if c.Right-c.Left != 20 || c.Top-c.Bottom != 10 {
		t.Fatalf("unexpected frustum: %+v", c)
	}

	x, y := c.Project(core.Point{X: 0, Y: 10}, 200, 100)
	if math.Abs(x) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Fatalf("top-left corner must project to origin, got %f,%f", x, y)
	}
}
