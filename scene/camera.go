package scene

import (
	"github.com/zooyer/dxfview/bounds"
	"github.com/zooyer/dxfview/core"
)

// Camera 正交相机，视锥以世界坐标表示
type Camera struct {
	Left, Right, Top, Bottom float64
	Near, Far                float64
	Position                 core.Point
}

// Fit 让相机框住范围，按显示区域宽高比补齐。
// 未设置的范围保持相机不变并返回 false。
func (c *Camera) Fit(b bounds.Bounds, displayWidth, displayHeight float64) bool {
	vp := bounds.ViewportOf(b, displayWidth, displayHeight)
	if vp.IsZero() {
		return false
	}

	var (
		cx = vp.Left + vp.Width/2
		cy = vp.Top - vp.Height/2
	)

	c.Left, c.Right = -vp.Width/2, vp.Width/2
	c.Top, c.Bottom = vp.Height/2, -vp.Height/2

	// 相机位于 Z 范围上方，远平面覆盖整个深度
	var depth = b.Z.Size()
	c.Near = 0.1
	c.Far = depth + 1000
	c.Position = core.Point{X: cx, Y: cy, Z: b.Z.Max + 500}

	return true
}

// Project 把世界坐标投影到 [0, w]x[0, h] 的屏幕坐标，Y 轴向下
func (c *Camera) Project(p core.Point, w, h float64) (x, y float64) {
	var (
		width  = c.Right - c.Left
		height = c.Top - c.Bottom
	)
	if width == 0 || height == 0 {
		return 0, 0
	}
	x = (p.X - c.Position.X - c.Left) / width * w
	y = (c.Top - (p.Y - c.Position.Y)) / height * h
	return x, y
}
