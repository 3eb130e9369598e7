package utils

import (
	"github.com/zooyer/dxfview/core"
)

// InBox 判断点是否落在包围盒的 XY 投影内(含边界)
func InBox(box core.BBox, point core.Point) bool {
	if point.X >= box.Min.X && point.X <= box.Max.X && point.Y >= box.Min.Y && point.Y <= box.Max.Y {
		return true
	}

	return false
}

// InPolygon 射线法判断点是否在多边形内(只看 XY)
func InPolygon(polygon []core.Point, point core.Point) bool {
	var inside bool
	for i, j := 0, len(polygon)-1; i < len(polygon); j, i = i, i+1 {
		a, b := polygon[i], polygon[j]
		if (a.Y > point.Y) != (b.Y > point.Y) &&
			point.X < (b.X-a.X)*(point.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}
