package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point 代表三维空间中的一个点
type Point struct {
	X, Y, Z float64
}

// Vec 转换为 gonum 向量，便于叉乘等运算
func (p Point) Vec() r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

// FromVec 从 gonum 向量构造点
func FromVec(v r3.Vec) Point {
	return Point{X: v.X, Y: v.Y, Z: v.Z}
}

func (p Point) Add(q Point) Point {
	return FromVec(r3.Add(p.Vec(), q.Vec()))
}

func (p Point) Sub(q Point) Point {
	return FromVec(r3.Sub(p.Vec(), q.Vec()))
}

// Cross 叉乘 p × q
func (p Point) Cross(q Point) Point {
	return FromVec(r3.Cross(p.Vec(), q.Vec()))
}

// Flat 丢弃 Z 分量
func (p Point) Flat() Point {
	return Point{X: p.X, Y: p.Y}
}

// BBox 代表包围盒
type BBox struct {
	Min, Max Point
}

// EmptyBBox 返回未初始化的包围盒(Min 为正无穷，Max 为负无穷)
func EmptyBBox() BBox {
	return BBox{
		Min: Point{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
}

// IsEmpty 没有任何点参与时为 true
func (b BBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend 扩展包围盒使其包含点 p
func (b BBox) Extend(p Point) BBox {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
	return b
}

// Union 合并两个包围盒，空盒不参与
func (b BBox) Union(other BBox) BBox {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	return b.Extend(other.Min).Extend(other.Max)
}

// Corners 返回包围盒的 8 个角点
func (b BBox) Corners() []Point {
	return []Point{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// BBoxOf 计算一组点的包围盒
func BBoxOf(points ...Point) BBox {
	var box = EmptyBBox()
	for _, p := range points {
		box = box.Extend(p)
	}
	return box
}

// Center 包围盒中心
func (b BBox) Center() Point {
	return Point{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}
