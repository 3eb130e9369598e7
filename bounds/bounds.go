package bounds

import (
	"math"

	"github.com/zooyer/golib/xmath"

	"github.com/zooyer/dxfview/core"
)

// Range 单轴范围，未设置时 Min 为 +Inf、Max 为 -Inf
type Range struct {
	Min, Max float64
}

// EmptyRange 返回未设置的范围
func EmptyRange() Range {
	return Range{Min: math.Inf(1), Max: math.Inf(-1)}
}

// Valid 至少累积过一个值
func (r Range) Valid() bool {
	return r.Min <= r.Max
}

// Size 范围长度，未设置时为 0
func (r Range) Size() float64 {
	if !r.Valid() {
		return 0
	}
	return r.Max - r.Min
}

// Center 范围中点，未设置时为 0
func (r Range) Center() float64 {
	if !r.Valid() {
		return 0
	}
	return (r.Min + r.Max) / 2
}

func (r Range) widen(min, max float64) Range {
	if math.IsNaN(min) || math.IsNaN(max) {
		return r
	}
	if !r.Valid() || min < r.Min {
		r.Min = min
	}
	if !r.Valid() || max > r.Max {
		r.Max = max
	}
	return r
}

// Bounds 三维累积范围
type Bounds struct {
	X, Y, Z Range
}

// Empty 返回三个轴都未设置的范围
func Empty() Bounds {
	return Bounds{X: EmptyRange(), Y: EmptyRange(), Z: EmptyRange()}
}

// Valid 三个轴都已设置
func (b Bounds) Valid() bool {
	return b.X.Valid() && b.Y.Valid() && b.Z.Valid()
}

// Extend 按包围盒扩展，空盒不参与
func (b Bounds) Extend(box core.BBox) Bounds {
	if box.IsEmpty() {
		return b
	}
	b.X = b.X.widen(box.Min.X, box.Max.X)
	b.Y = b.Y.widen(box.Min.Y, box.Max.Y)
	b.Z = b.Z.widen(box.Min.Z, box.Max.Z)
	return b
}

// BBox 转换为 core.BBox
func (b Bounds) BBox() core.BBox {
	return core.BBox{
		Min: core.Point{X: b.X.Min, Y: b.Y.Min, Z: b.Z.Min},
		Max: core.Point{X: b.X.Max, Y: b.Y.Max, Z: b.Z.Max},
	}
}

// Boxed 能给出世界坐标包围盒的对象，*scene.Object 满足该接口
type Boxed interface {
	BBox() core.BBox
}

// Tracker 一次绘制过程中的累积范围，只属于一次进行中的绘制
type Tracker struct {
	bounds Bounds
}

// NewTracker 创建已重置的 Tracker
func NewTracker() *Tracker {
	return &Tracker{bounds: Empty()}
}

// Reset 所有轴恢复为未设置
func (t *Tracker) Reset() {
	t.bounds = Empty()
}

// Accumulate 用对象的世界包围盒扩展范围
func (t *Tracker) Accumulate(obj Boxed) {
	if obj == nil {
		return
	}
	t.bounds = t.bounds.Extend(obj.BBox())
}

// Bounds 返回当前范围的快照
func (t *Tracker) Bounds() Bounds {
	return t.bounds
}

// Viewport 二维显示矩形，Top 是最大 Y (DXF 坐标 Y 轴向上)
type Viewport struct {
	Left, Top, Width, Height float64
}

// Right 矩形右边界
func (v Viewport) Right() float64 {
	return v.Left + v.Width
}

// Bottom 矩形下边界
func (v Viewport) Bottom() float64 {
	return v.Top - v.Height
}

// IsZero 未设置的范围得到零值
func (v Viewport) IsZero() bool {
	return v == Viewport{}
}

const aspectEpsilon = 1e-9

// ViewportOf 丢弃 Z 轴，按显示区域宽高比补齐
func ViewportOf(b Bounds, displayWidth, displayHeight float64) Viewport {
	if !b.X.Valid() || !b.Y.Valid() {
		return Viewport{}
	}

	var (
		width  = b.X.Size()
		height = b.Y.Size()
		cx     = b.X.Center()
		cy     = b.Y.Center()
	)

	if displayWidth <= 0 || displayHeight <= 0 {
		return Viewport{Left: b.X.Min, Top: b.Y.Max, Width: width, Height: height}
	}

	var aspect = displayWidth / displayHeight

	// 退化为点或线时用另一边补齐
	switch {
	case xmath.Equal(width, 0, aspectEpsilon) && xmath.Equal(height, 0, aspectEpsilon):
		return Viewport{Left: cx, Top: cy}
	case xmath.Equal(height, 0, aspectEpsilon):
		height = width / aspect
	case xmath.Equal(width, 0, aspectEpsilon):
		width = height * aspect
	case width/height > aspect:
		height = width / aspect
	default:
		width = height * aspect
	}

	return Viewport{
		Left:   cx - width/2,
		Top:    cy + height/2,
		Width:  width,
		Height: height,
	}
}
