package handler

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/zooyer/dxfview"
	"github.com/zooyer/dxfview/core"
	"github.com/zooyer/dxfview/entities"
	"github.com/zooyer/dxfview/fonts"
	"github.com/zooyer/dxfview/scene"
)

func newEntity[T entities.Entity](typeName string) T {
	return entities.CreateEntity(typeName).(T)
}

func newLine(layer string, color int, start, end core.Point) *entities.Line {
	line := newEntity[*entities.Line]("LINE")
	line.LayerName = layer
	line.ColorNumber = color
	line.Start, line.End = start, end
	return line
}

type spline struct {
	entities.BaseEntity
}

func (s *spline) Parse(*core.Scanner) error { return nil }

func (s *spline) BBox() core.BBox { return core.EmptyBBox() }

func testContext(t *testing.T) *DrawContext {
	t.Helper()
	f, err := fonts.Parse("goregular", goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	dc := DefaultDrawContext()
	dc.Font = f
	return dc
}

func near(a, b core.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9 && math.Abs(a.Z-b.Z) < 1e-9
}

func TestLookup(t *testing.T) {
	want := []string{"3DFACE", "ARC", "CIRCLE", "DIMENSION", "INSERT", "LINE", "LWPOLYLINE", "MTEXT"}
	if got := Types(); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	for _, tag := range want {
		if h, err := Lookup(tag); err != nil || h == nil {
			t.Fatalf("%s: %v", tag, err)
		}
	}

	for _, tag := range []string{"line", "SPLINE", ""} {
		if _, err := Lookup(tag); !errors.Is(err, ErrUnsupported) {
			t.Fatalf("%q: expected ErrUnsupported, got %v", tag, err)
		}
	}
}

func TestResolveColor(t *testing.T) {
	doc := dxf.NewDocument()
	doc.Layers["WALLS"] = &dxf.Layer{Name: "WALLS", ColorNumber: 5}
	doc.Layers["HIDDEN"] = &dxf.Layer{Name: "HIDDEN", ColorNumber: -3}
	doc.Layers["PLAIN"] = &dxf.Layer{Name: "PLAIN", ColorNumber: 7}

	dc := DefaultDrawContext()
	dc.Contrast = 0x112233
	dc.DefaultColor = 0x445566

	tests := []struct {
		name  string
		layer string
		color int
		want  scene.Color
	}{
		{"explicit wins over layer", "WALLS", 1, 0xFF0000},
		{"by layer", "WALLS", entities.ColorByLayer, 0x0000FF},
		{"unset uses layer", "WALLS", entities.ColorByBlock, 0x0000FF},
		{"layer off uses absolute value", "HIDDEN", entities.ColorByLayer, 0x00FF00},
		{"unknown layer uses default", "MISSING", entities.ColorByLayer, 0x445566},
		{"aci 7 uses contrast", "PLAIN", entities.ColorByLayer, 0x112233},
		{"explicit gray", "MISSING", 250, 0x333333},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := newLine(tt.layer, tt.color, core.Point{}, core.Point{X: 1})
			if got := ResolveColor(line, doc, dc); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want.Hex(), got.Hex())
			}

			obj, err := Process(line, doc, dc)
			if err != nil {
				t.Fatal(err)
			}
			if obj.Color != tt.want {
				t.Fatalf("handler color: expected %s, got %s", tt.want.Hex(), obj.Color.Hex())
			}
		})
	}

	if got := ResolveColor(newLine("WALLS", 256, core.Point{}, core.Point{}), nil, dc); got != dc.DefaultColor {
		t.Fatalf("nil document must fall back to default, got %s", got.Hex())
	}
}

func TestACI_Hue(t *testing.T) {
	dc := DefaultDrawContext()
	if got := dc.ACI(10); got != 0xFF0000 {
		t.Fatalf("aci 10: expected red, got %s", got.Hex())
	}
	if got := dc.ACI(90); got != 0x00FF00 {
		t.Fatalf("aci 90: expected green, got %s", got.Hex())
	}
	if got := dc.ACI(300); got != dc.DefaultColor {
		t.Fatalf("invalid aci must use default, got %s", got.Hex())
	}
}

func TestLine(t *testing.T) {
	start, end := core.Point{X: 1, Y: 2, Z: 3}, core.Point{X: 4, Y: 5, Z: 6}
	obj, err := Process(newLine("0", 0, start, end), nil, DefaultDrawContext())
	if err != nil {
		t.Fatal(err)
	}
	if obj.Kind != scene.KindLine || len(obj.Geometry.Points) != 2 {
		t.Fatalf("unexpected object: %+v", obj)
	}
	if obj.Geometry.Points[0] != start || obj.Geometry.Points[1] != end {
		t.Fatalf("unexpected points: %v", obj.Geometry.Points)
	}
	if obj.Layer != "0" {
		t.Fatalf("expected layer 0, got %q", obj.Layer)
	}
}

func TestCircle(t *testing.T) {
	circle := newEntity[*entities.Circle]("CIRCLE")
	circle.Center = core.Point{X: 5, Y: 5}
	circle.Radius = 2

	dc := DefaultDrawContext()
	dc.Divisions = 16

	obj, err := Process(circle, nil, dc)
	if err != nil {
		t.Fatal(err)
	}
	points := obj.Geometry.Points
	if len(points) != 17 {
		t.Fatalf("expected 17 points, got %d", len(points))
	}
	if points[0] != points[16] {
		t.Fatal("circle must be closed")
	}
	if obj.Position != circle.Center {
		t.Fatalf("expected position %v, got %v", circle.Center, obj.Position)
	}
	for _, p := range points {
		if math.Abs(math.Hypot(p.X, p.Y)-2) > 1e-9 {
			t.Fatalf("point %v not on radius", p)
		}
	}

	box := obj.BBox()
	if !near(box.Min, core.Point{X: 3, Y: 3}) || !near(box.Max, core.Point{X: 7, Y: 7}) {
		t.Fatalf("unexpected bbox: %+v", box)
	}

	for _, r := range []float64{0, -1, math.NaN()} {
		circle.Radius = r
		if _, err := Process(circle, nil, dc); !errors.Is(err, ErrMalformed) {
			t.Fatalf("radius %v: expected ErrMalformed, got %v", r, err)
		}
	}
}

func TestArc(t *testing.T) {
	arc := newEntity[*entities.Arc]("ARC")
	arc.Radius = 1
	arc.StartAngle = 270
	arc.EndAngle = 90 // 跨过 0 度

	dc := DefaultDrawContext()
	dc.Divisions = 36

	obj, err := Process(arc, nil, dc)
	if err != nil {
		t.Fatal(err)
	}
	points := obj.Geometry.Points
	if len(points) != 19 {
		t.Fatalf("expected 19 points for a half circle, got %d", len(points))
	}
	if !near(points[0], core.Point{X: 0, Y: -1}) || !near(points[18], core.Point{X: 0, Y: 1}) {
		t.Fatalf("unexpected end points: %v %v", points[0], points[18])
	}
	if !near(points[9], core.Point{X: 1, Y: 0}) {
		t.Fatalf("arc must pass through 0 degrees, got %v", points[9])
	}
}

type recorder struct {
	vertices [][]core.Point
	geoms    []*scene.Geometry
}

func (r *recorder) AddOverride(vertices []core.Point, g *scene.Geometry) {
	r.vertices = append(r.vertices, vertices)
	r.geoms = append(r.geoms, g)
}

func TestLWPolyline(t *testing.T) {
	poly := newEntity[*entities.LWPolyline]("LWPOLYLINE")
	poly.Vertices = []core.Point{{X: 0, Y: 0, Z: 3}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	poly.Bulges = make([]float64, 4)
	poly.Closed = true

	rec := &recorder{}
	dc := DefaultDrawContext()
	dc.Overrides = rec

	obj, err := Process(poly, nil, dc)
	if err != nil {
		t.Fatal(err)
	}
	points := obj.Geometry.Points
	if len(points) != 5 || points[0] != points[4] {
		t.Fatalf("closed polyline must repeat its first vertex: %v", points)
	}
	for _, p := range points {
		if p.Z != 0 {
			t.Fatalf("z must be normalized: %v", p)
		}
	}
	if len(rec.geoms) != 0 {
		t.Fatal("straight polyline must not register an override")
	}
	if poly.Vertices[0].Z != 3 {
		t.Fatal("handler must not mutate the entity")
	}

	poly.Closed = false
	obj, _ = Process(poly, nil, dc)
	if len(obj.Geometry.Points) != 4 {
		t.Fatalf("open polyline: expected 4 points, got %d", len(obj.Geometry.Points))
	}

	poly.Vertices = nil
	if _, err := Process(poly, nil, dc); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestLWPolyline_BulgeOverride(t *testing.T) {
	poly := newEntity[*entities.LWPolyline]("LWPOLYLINE")
	poly.Vertices = []core.Point{{X: 0, Y: 0}, {X: 2, Y: 0}}
	poly.Bulges = []float64{1, 0} // 半圆
	poly.Closed = true

	rec := &recorder{}
	dc := DefaultDrawContext()
	dc.Overrides = rec

	if _, err := Process(poly, nil, dc); err != nil {
		t.Fatal(err)
	}
	if len(rec.geoms) != 1 {
		t.Fatalf("expected one override, got %d", len(rec.geoms))
	}
	if !slices.Equal(rec.vertices[0], poly.Vertices) {
		t.Fatalf("override must be keyed by the raw vertices: %v", rec.vertices[0])
	}

	g := rec.geoms[0]
	if len(g.Points) <= 2 || len(g.Triangles) == 0 {
		t.Fatalf("expected expanded outline, got %d points %d triangles", len(g.Points), len(g.Triangles))
	}
	// 正凸度逆时针，从 (0,0) 到 (2,0) 经过 (1,-1)
	box := core.BBoxOf(g.Points...)
	if math.Abs(box.Min.Y+1) > 1e-9 {
		t.Fatalf("arc must bulge below the chord: %+v", box)
	}
}

type panicOverrides struct{}

func (panicOverrides) AddOverride([]core.Point, *scene.Geometry) { panic("boom") }

func TestProcess_RecoversPanic(t *testing.T) {
	poly := newEntity[*entities.LWPolyline]("LWPOLYLINE")
	poly.Vertices = []core.Point{{X: 0, Y: 0}, {X: 2, Y: 0}}
	poly.Bulges = []float64{0.5, 0}

	dc := DefaultDrawContext()
	dc.Overrides = panicOverrides{}

	obj, err := Process(poly, nil, dc)
	if !errors.Is(err, ErrMalformed) || obj != nil {
		t.Fatalf("expected recovered ErrMalformed, got %v %v", obj, err)
	}
}

func TestFace3D_Winding(t *testing.T) {
	ccw := []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	cw := []core.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}}

	tests := []struct {
		corners []core.Point
		want    [][3]int
	}{
		{ccw, [][3]int{{0, 1, 2}, {1, 3, 2}}},
		{cw, [][3]int{{2, 1, 0}, {2, 3, 0}}},
	}

	for _, tt := range tests {
		face := newEntity[*entities.Face3D]("3DFACE")
		face.SetCorners(tt.corners...)

		obj, err := Process(face, nil, DefaultDrawContext())
		if err != nil {
			t.Fatal(err)
		}
		if obj.Kind != scene.KindMesh || len(obj.Geometry.Points) != 4 {
			t.Fatalf("unexpected object: %+v", obj)
		}
		if !slices.Equal(obj.Geometry.Triangles, tt.want) {
			t.Fatalf("expected %v, got %v", tt.want, obj.Geometry.Triangles)
		}
	}

	triangle := newEntity[*entities.Face3D]("3DFACE")
	triangle.SetCorners(ccw[:3]...)
	obj, err := Process(triangle, nil, DefaultDrawContext())
	if err != nil {
		t.Fatal(err)
	}
	if obj.Geometry.Points[3] != obj.Geometry.Points[2] {
		t.Fatal("three-sided face must repeat its third corner")
	}

	broken := newEntity[*entities.Face3D]("3DFACE")
	broken.SetCorners(ccw[:2]...)
	if _, err := Process(broken, nil, DefaultDrawContext()); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestMText(t *testing.T) {
	mtext := newEntity[*entities.MText]("MTEXT")
	mtext.Position = core.Point{X: 10, Y: 20}
	mtext.Text = `{\fArial|b0;Room}\P101`
	mtext.Direction = core.Point{X: 0, Y: 1}

	dc := testContext(t)
	obj, err := Process(mtext, nil, dc)
	if err != nil {
		t.Fatal(err)
	}
	if obj.Kind != scene.KindText || obj.Text != "Room\n101" {
		t.Fatalf("unexpected text object: %q", obj.Text)
	}
	if obj.TextHeight != 11 {
		t.Fatalf("expected default height 11, got %f", obj.TextHeight)
	}
	if obj.Position != mtext.Position {
		t.Fatalf("unexpected position %v", obj.Position)
	}
	if math.Abs(obj.Rotation-math.Pi/2) > 1e-9 {
		t.Fatalf("expected rotation from direction vector, got %f", obj.Rotation)
	}

	mtext.Height = 2.5
	obj, _ = Process(mtext, nil, dc)
	if obj.TextHeight != 2.5 {
		t.Fatalf("expected nominal height, got %f", obj.TextHeight)
	}
	if box := obj.Geometry.BBox(); math.Abs(box.Max.Y-box.Min.Y-5) > 1e-9 {
		t.Fatalf("two lines must be 5 high, got %+v", box)
	}

	if _, err := Process(mtext, nil, DefaultDrawContext()); !errors.Is(err, fonts.ErrFontUnavailable) {
		t.Fatalf("expected ErrFontUnavailable, got %v", err)
	}
}

func TestInsert(t *testing.T) {
	doc := dxf.NewDocument()
	doc.Blocks["DOOR"] = &dxf.Block{Name: "DOOR", Entities: []entities.Entity{
		newLine("0", entities.ColorByBlock, core.Point{}, core.Point{X: 1}),
		&spline{BaseEntity: entities.BaseEntity{TypeName: "SPLINE"}}, // 不支持的实体被跳过
	}}

	ins := entities.NewInsert("door", core.Point{X: 10, Y: 10})
	ins.Scale = core.Point{X: 2, Y: 3, Z: 1}
	ins.Rotation = 90
	ins.ColorNumber = 1

	obj, err := Process(ins, doc, DefaultDrawContext())
	if err != nil {
		t.Fatal(err)
	}
	if obj.Kind != scene.KindGroup || len(obj.Children) != 1 {
		t.Fatalf("expected group with one child, got %+v", obj)
	}

	child := obj.Children[0]
	if child.Color != 0xFF0000 {
		t.Fatalf("BYBLOCK child must take the insert color, got %s", child.Color.Hex())
	}
	if !near(child.Geometry.Points[1], core.Point{X: 10, Y: 12}) {
		t.Fatalf("expected end (10,12), got %v", child.Geometry.Points[1])
	}

	box := obj.BBox()
	if !near(box.Min, core.Point{X: 10, Y: 10}) || !near(box.Max, core.Point{X: 10, Y: 12}) {
		t.Fatalf("children must inherit the insert transform: %+v", box)
	}

	if line := doc.Blocks["DOOR"].Entities[0].(*entities.Line); line.End != (core.Point{X: 1}) {
		t.Fatal("block definition must not be mutated")
	}

	missing := entities.NewInsert("WINDOW", core.Point{})
	if _, err := Process(missing, doc, DefaultDrawContext()); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestInsert_NestedCircle(t *testing.T) {
	circle := newEntity[*entities.Circle]("CIRCLE")
	circle.Center = core.Point{X: 1, Y: 0}
	circle.Radius = 1

	doc := dxf.NewDocument()
	doc.Blocks["RING"] = &dxf.Block{Name: "RING", Entities: []entities.Entity{circle}}
	doc.Blocks["PAIR"] = &dxf.Block{Name: "PAIR", Entities: []entities.Entity{
		entities.NewInsert("RING", core.Point{}),
		entities.NewInsert("RING", core.Point{X: 10}),
	}}

	obj, err := Process(entities.NewInsert("PAIR", core.Point{Y: 100}), doc, DefaultDrawContext())
	if err != nil {
		t.Fatal(err)
	}

	box := obj.BBox()
	if !near(box.Min, core.Point{X: 0, Y: 99}) || !near(box.Max, core.Point{X: 12, Y: 101}) {
		t.Fatalf("unexpected nested bbox: %+v", box)
	}
}

func TestInsert_Recursion(t *testing.T) {
	doc := dxf.NewDocument()
	doc.Blocks["LOOP"] = &dxf.Block{Name: "LOOP", Entities: []entities.Entity{
		entities.NewInsert("LOOP", core.Point{X: 1}),
	}}

	obj, err := Process(entities.NewInsert("LOOP", core.Point{}), doc, DefaultDrawContext())
	if err != nil {
		t.Fatal(err)
	}
	if n := obj.Count(); n != MaxDepth {
		t.Fatalf("expected recursion to stop after %d levels, got %d", MaxDepth, n)
	}
}

func TestInsert_Attributes(t *testing.T) {
	doc := dxf.NewDocument()
	doc.Blocks["TAG"] = &dxf.Block{Name: "TAG"}

	ins := entities.NewInsert("TAG", core.Point{X: 5, Y: 5})
	attr := newEntity[*entities.Attrib]("ATTRIB")
	attr.Tag, attr.Text = "ROOM", "1.01"
	attr.Location = core.Point{X: 6, Y: 6}
	ins.Attributes = append(ins.Attributes, attr)

	obj, err := Process(ins, doc, testContext(t))
	if err != nil {
		t.Fatal(err)
	}
	if obj.Attrs["ROOM"] != "1.01" {
		t.Fatalf("expected attribute ROOM, got %v", obj.Attrs)
	}
	if len(obj.Children) != 1 || obj.Children[0].Text != "1.01" || obj.Children[0].Position != attr.Location {
		t.Fatalf("attribute must render as text at its location: %+v", obj.Children)
	}
}

func TestDimension(t *testing.T) {
	doc := dxf.NewDocument()
	doc.DimStyles["ISO"] = &dxf.DimStyle{Name: "ISO", Precision: 1, Scale: 2}

	dim := newEntity[*entities.Dimension]("DIMENSION")
	dim.StyleName = "ISO"
	dim.DefPoint = core.Point{X: 0, Y: 5}
	dim.MeasureStart = core.Point{X: 0, Y: 0}
	dim.MeasureEnd = core.Point{X: 100, Y: 0}
	dim.TextMidPoint = core.Point{X: 50, Y: 6}
	dim.ActualMeasurement = 100

	obj, err := Process(dim, doc, testContext(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(obj.Children) != 2 {
		t.Fatalf("expected lines and text, got %d children", len(obj.Children))
	}

	lines, text := obj.Children[0], obj.Children[1]
	if lines.Kind != scene.KindSegments || len(lines.Geometry.Points) != 6 {
		t.Fatalf("unexpected segments: %+v", lines.Geometry)
	}
	if !near(lines.Geometry.Points[0], core.Point{X: 0, Y: 5}) || !near(lines.Geometry.Points[1], core.Point{X: 100, Y: 5}) {
		t.Fatalf("unexpected dimension line: %v", lines.Geometry.Points[:2])
	}
	if text.Text != "100.0" || text.TextHeight != 22 {
		t.Fatalf("unexpected text %q height %f", text.Text, text.TextHeight)
	}
}

func TestInsert_ChildWithoutColorUsesLayer(t *testing.T) {
	data := strings.Join([]string{
		"0", "SECTION", "2", "TABLES",
		"0", "TABLE", "2", "LAYER",
		"0", "LAYER", "2", "0", "62", "7",
		"0", "LAYER", "2", "WALLS", "62", "1",
		"0", "ENDTAB",
		"0", "ENDSEC",
		"0", "SECTION", "2", "BLOCKS",
		"0", "BLOCK", "8", "0", "2", "B",
		"0", "LINE", "8", "WALLS", "10", "0", "20", "0", "11", "1", "21", "0",
		"0", "ENDBLK",
		"0", "ENDSEC",
		"0", "SECTION", "2", "ENTITIES",
		"0", "INSERT", "8", "0", "2", "B", "10", "5", "20", "5",
		"0", "ENDSEC",
		"0", "EOF",
	}, "\n") + "\n"

	doc, err := dxf.Load(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	block, ok := doc.Block("B")
	if !ok || len(block.Entities) != 1 {
		t.Fatalf("block B not parsed: %+v", block)
	}
	if n := block.Entities[0].Color(); n != entities.ColorByLayer {
		t.Fatalf("missing group 62 must mean BYLAYER, got %d", n)
	}

	obj, err := Process(doc.Entities[0], doc, DefaultDrawContext())
	if err != nil {
		t.Fatal(err)
	}
	if obj.Color != 0x000000 {
		t.Fatalf("insert on layer 0 must use the contrast color, got %s", obj.Color.Hex())
	}
	if len(obj.Children) != 1 || obj.Children[0].Color != 0xFF0000 {
		t.Fatalf("child on layer WALLS must be red, got %+v", obj.Children)
	}
}

func TestResolveColor_LayerNameCase(t *testing.T) {
	data := "0\nSECTION\n2\nTABLES\n0\nTABLE\n2\nLAYER\n0\nLAYER\n2\nWalls\n62\n3\n0\nENDTAB\n0\nENDSEC\n0\nEOF\n"
	doc, err := dxf.Load(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	line := newLine("WALLS", entities.ColorByLayer, core.Point{}, core.Point{X: 1})
	if got := ResolveColor(line, doc, DefaultDrawContext()); got != 0x00FF00 {
		t.Fatalf("layer names are case-insensitive, got %s", got.Hex())
	}
}

func TestInsert_BulgeOverrideInWorld(t *testing.T) {
	poly := newEntity[*entities.LWPolyline]("LWPOLYLINE")
	poly.Vertices = []core.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	poly.Bulges = []float64{0, 0.5, 0, 0}
	poly.Closed = true

	doc := dxf.NewDocument()
	doc.Blocks["ROOM"] = &dxf.Block{Name: "ROOM", Entities: []entities.Entity{poly}}

	outer := entities.NewInsert("OUTER", core.Point{X: 100, Y: 100})
	doc.Blocks["OUTER"] = &dxf.Block{Name: "OUTER", Entities: []entities.Entity{
		entities.NewInsert("ROOM", core.Point{X: 10, Y: 0}),
	}}

	rec := &recorder{}
	dc := DefaultDrawContext()
	dc.Overrides = rec

	if _, err := Process(entities.NewInsert("ROOM", core.Point{X: 100, Y: 100}), doc, dc); err != nil {
		t.Fatal(err)
	}
	if _, err := Process(outer, doc, dc); err != nil {
		t.Fatal(err)
	}
	if len(rec.vertices) != 2 {
		t.Fatalf("expected 2 overrides, got %d", len(rec.vertices))
	}

	want := [][]core.Point{
		{{X: 100, Y: 100}, {X: 104, Y: 100}, {X: 104, Y: 104}, {X: 100, Y: 104}},
		{{X: 110, Y: 100}, {X: 114, Y: 100}, {X: 114, Y: 104}, {X: 110, Y: 104}},
	}
	for i := range want {
		for j, v := range want[i] {
			if !near(rec.vertices[i][j], v) {
				t.Fatalf("override %d must be keyed by world vertices, got %v", i, rec.vertices[i])
			}
		}
		box := core.BBoxOf(rec.geoms[i].Points...)
		if box.Min.X < want[i][0].X-1e-9 || box.Min.Y < want[i][0].Y-1e-9 {
			t.Fatalf("override %d outline must be in world space: %+v", i, box)
		}
	}
}
