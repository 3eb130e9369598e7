// Package export 把绘制好的场景输出为 SVG。
package export

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/zooyer/dxfview/bounds"
	"github.com/zooyer/dxfview/core"
	"github.com/zooyer/dxfview/scene"
)

// Options SVG 画布设置
type Options struct {
	Width       int // 像素
	Height      int
	Background  scene.Color
	StrokeWidth float64
	Title       string
}

// DefaultOptions 1920x1080 白底
func DefaultOptions() Options {
	return Options{
		Width:       1920,
		Height:      1080,
		Background:  0xFFFFFF,
		StrokeWidth: 1,
	}
}

// errWriter 记录第一次写入错误，svgo 本身不返回错误
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// projection 世界坐标到画布像素，Y 轴翻转
type projection struct {
	vp     bounds.Viewport
	sx, sy float64
}

func newProjection(vp bounds.Viewport, width, height int) projection {
	p := projection{vp: vp}
	if vp.Width > 0 {
		p.sx = float64(width) / vp.Width
	}
	if vp.Height > 0 {
		p.sy = float64(height) / vp.Height
	}
	// 退化的视口按另一轴的比例缩放
	switch {
	case p.sx == 0 && p.sy == 0:
		p.sx, p.sy = 1, 1
	case p.sx == 0:
		p.sx = p.sy
	case p.sy == 0:
		p.sy = p.sx
	}
	return p
}

func (p projection) point(q core.Point) (int, int) {
	x := (q.X - p.vp.Left) * p.sx
	y := (p.vp.Top - q.Y) * p.sy
	return int(math.Round(x)), int(math.Round(y))
}

func (p projection) points(points []core.Point) (xs, ys []int) {
	xs = make([]int, len(points))
	ys = make([]int, len(points))
	for i, q := range points {
		xs[i], ys[i] = p.point(q)
	}
	return
}

// SVG 按对象顺序输出，子对象使用组合后的世界变换
func SVG(w io.Writer, objs []*scene.Object, vp bounds.Viewport, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = 1
	}

	var (
		out    = &errWriter{w: w}
		canvas = svg.New(out)
		proj   = newProjection(vp, opts.Width, opts.Height)
	)

	canvas.Start(opts.Width, opts.Height)
	if opts.Title != "" {
		canvas.Title(opts.Title)
	}
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:"+opts.Background.Hex())

	for _, obj := range objs {
		if obj == nil {
			continue
		}
		obj.Walk(func(o *scene.Object, world scene.Transform) {
			drawObject(canvas, proj, o, world, opts)
		})
	}

	canvas.End()

	return out.err
}

func drawObject(canvas *svg.SVG, proj projection, obj *scene.Object, world scene.Transform, opts Options) {
	// 带属性的对象输出为带标题的分组，便于在浏览器中查看
	if len(obj.Attrs) > 0 && obj.Kind == scene.KindGroup {
		canvas.Gid(obj.ID)
		canvas.Title(attrTitle(obj.Attrs))
		canvas.Gend()
	}

	if obj.Geometry == nil || len(obj.Geometry.Points) == 0 {
		return
	}

	var (
		color  = obj.Color.Hex()
		stroke = fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", color, opts.StrokeWidth)
		points = make([]core.Point, len(obj.Geometry.Points))
	)
	for i, p := range obj.Geometry.Points {
		points[i] = world(p)
	}

	switch obj.Kind {
	case scene.KindLine:
		xs, ys := proj.points(points)
		canvas.Polyline(xs, ys, stroke)
	case scene.KindSegments:
		for i := 0; i+1 < len(points); i += 2 {
			x1, y1 := proj.point(points[i])
			x2, y2 := proj.point(points[i+1])
			canvas.Line(x1, y1, x2, y2, stroke)
		}
	case scene.KindMesh:
		drawMesh(canvas, proj, obj, points)
	case scene.KindText:
		drawText(canvas, proj, obj, world)
	}
}

func drawMesh(canvas *svg.SVG, proj projection, obj *scene.Object, points []core.Point) {
	var fill = fmt.Sprintf("fill:%s;fill-opacity:%g;stroke:none", obj.Color.Hex(), opacity(obj))

	if len(obj.Geometry.Triangles) == 0 {
		xs, ys := proj.points(points)
		canvas.Polygon(xs, ys, fill)
	}
	for _, tri := range obj.Geometry.Triangles {
		if tri[0] >= len(points) || tri[1] >= len(points) || tri[2] >= len(points) {
			continue
		}
		xs, ys := proj.points([]core.Point{points[tri[0]], points[tri[1]], points[tri[2]]})
		canvas.Polygon(xs, ys, fill)
	}

	if room := obj.Attrs["room"]; room != "" {
		canvas.Gid(obj.ID)
		canvas.Title(attrTitle(obj.Attrs))
		cx, cy := proj.point(core.BBoxOf(points...).Center())
		canvas.Text(cx, cy, room, "text-anchor:middle;font-size:12px;fill:"+obj.Color.Hex())
		canvas.Gend()
	}
}

func drawText(canvas *svg.SVG, proj projection, obj *scene.Object, world scene.Transform) {
	var (
		box    = obj.Geometry.BBox()
		origin = world(core.Point{})
		axis   = world(core.Point{X: 1}).Sub(origin)
		// 屏幕 Y 轴向下，旋转方向相反
		degrees = -math.Atan2(axis.Y, axis.X) * 180 / math.Pi
		size    = obj.TextHeight * proj.sy
		style   = fmt.Sprintf("font-family:sans-serif;font-size:%.2fpx;fill:%s;fill-opacity:%g",
			size, obj.Color.Hex(), opacity(obj))
	)

	// 文字框左上角作为排版起点，逐行向下
	x, y := proj.point(world(core.Point{X: box.Min.X, Y: box.Max.Y}))
	canvas.Gtransform(fmt.Sprintf("translate(%d,%d) rotate(%.2f)", x, y, degrees))
	for i, line := range strings.Split(obj.Text, "\n") {
		canvas.Text(0, int(math.Round(size*float64(i+1))), line, style)
	}
	canvas.Gend()
}

func opacity(obj *scene.Object) float64 {
	if obj.Opacity <= 0 || obj.Opacity > 1 {
		return 1
	}
	return obj.Opacity
}

func attrTitle(attrs map[string]string) string {
	var keys = make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines = make([]string, len(keys))
	for i, k := range keys {
		lines[i] = k + "=" + attrs[k]
	}
	return strings.Join(lines, "\n")
}
