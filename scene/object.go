// Package scene 是 DXF 绘制管线的内存渲染后端。
// 对象以局部坐标保存几何数据，加入 Graph 后所有权归 Graph。
package scene

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/zooyer/dxfview/core"
)

// Color 24 位 RGB 颜色，0xRRGGBB
type Color uint32

// ParseColor 支持 "#rrggbb"、"rrggbb"、"0xrrggbb" 三种写法
func ParseColor(s string) (Color, error) {
	v := strings.TrimSpace(strings.ToLower(s))
	v = strings.TrimPrefix(strings.TrimPrefix(v, "#"), "0x")
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil || len(v) != 6 {
		return 0, fmt.Errorf("scene: invalid color %q", s)
	}
	return Color(n), nil
}

// Decode 实现 envconfig.Decoder
func (c *Color) Decode(value string) error {
	parsed, err := ParseColor(value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Hex 返回 "#rrggbb" 形式
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF)
}

// RGB 拆分三个通道
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Kind 决定后端如何解释对象的几何数据
type Kind int

const (
	KindLine     Kind = iota // 依次连接 Points 的折线
	KindSegments             // 独立线段，Points 两两一组
	KindMesh                 // 三角网格，Triangles 索引 Points
	KindText                 // 文字位于原点，Points 为文字范围
	KindGroup                // 只有子对象
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindSegments:
		return "segments"
	case KindMesh:
		return "mesh"
	case KindText:
		return "text"
	case KindGroup:
		return "group"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Geometry 顶点缓冲，可带三角形索引
type Geometry struct {
	Points    []core.Point
	Triangles [][3]int
}

// BBox 顶点的局部包围盒
func (g *Geometry) BBox() core.BBox {
	if g == nil {
		return core.EmptyBBox()
	}
	return core.BBoxOf(g.Points...)
}

// Object 可渲染的场景节点
type Object struct {
	ID      string
	Kind    Kind
	Layer   string
	Color   Color
	Opacity float64

	Geometry *Geometry

	// 局部变换：先绕 Z 轴旋转，再平移
	Position core.Point
	Rotation float64 // 弧度

	Text       string
	TextHeight float64

	Attrs    map[string]string
	Children []*Object
}

// NewObject 创建不透明对象并分配新 ID
func NewObject(kind Kind, geometry *Geometry) *Object {
	return &Object{
		ID:       uuid.NewString(),
		Kind:     kind,
		Opacity:  1,
		Geometry: geometry,
	}
}

// NewGroup 把子对象打包成组
func NewGroup(children ...*Object) *Object {
	group := NewObject(KindGroup, nil)
	group.Children = children
	return group
}

// Apply 把局部坐标映射到父坐标系
func (o *Object) Apply(p core.Point) core.Point {
	if o.Rotation != 0 {
		cos, sin := math.Cos(o.Rotation), math.Sin(o.Rotation)
		p.X, p.Y = p.X*cos-p.Y*sin, p.X*sin+p.Y*cos
	}
	return p.Add(o.Position)
}

// Transform 局部坐标到世界坐标的映射
type Transform func(core.Point) core.Point

func identity(p core.Point) core.Point { return p }

// Walk 深度优先遍历对象及其后代，world 把被访问对象的局部坐标映射到世界坐标
func (o *Object) Walk(fn func(obj *Object, world Transform)) {
	o.walk(identity, fn)
}

func (o *Object) walk(parent Transform, fn func(obj *Object, world Transform)) {
	world := func(p core.Point) core.Point { return parent(o.Apply(p)) }
	fn(o, world)
	for _, child := range o.Children {
		child.walk(world, fn)
	}
}

// WorldPoints 对象自身顶点的世界坐标(不含子对象)
func (o *Object) WorldPoints() []core.Point {
	if o.Geometry == nil {
		return nil
	}
	points := make([]core.Point, len(o.Geometry.Points))
	for i, p := range o.Geometry.Points {
		points[i] = o.Apply(p)
	}
	return points
}

// BBox 对象及其子对象的世界坐标包围盒，没有顶点时返回空盒
func (o *Object) BBox() core.BBox {
	var box = core.EmptyBBox()
	o.Walk(func(obj *Object, world Transform) {
		if obj.Geometry == nil {
			return
		}
		for _, p := range obj.Geometry.Points {
			box = box.Extend(world(p))
		}
	})
	return box
}

// Count 子树中的对象数量(含自身)
func (o *Object) Count() int {
	n := 1
	for _, child := range o.Children {
		n += child.Count()
	}
	return n
}
