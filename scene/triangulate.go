package scene

import (
	"github.com/zooyer/dxfview/core"
)

// Triangulate 耳切法三角化简单多边形(只看 XY)。
// 首尾重复的点会被忽略，返回的索引指向 points。
func Triangulate(points []core.Point) [][3]int {
	n := len(points)
	if n > 1 && points[0] == points[n-1] {
		n--
	}
	if n < 3 {
		return nil
	}

	// 统一为逆时针
	var idx = make([]int, n)
	if signedArea(points[:n]) >= 0 {
		for i := range idx {
			idx[i] = i
		}
	} else {
		for i := range idx {
			idx[i] = n - 1 - i
		}
	}

	var triangles = make([][3]int, 0, n-2)
	for guard := 0; len(idx) > 3 && guard < n*n; guard++ {
		clipped := false
		for i := range idx {
			var (
				prev = idx[(i+len(idx)-1)%len(idx)]
				curr = idx[i]
				next = idx[(i+1)%len(idx)]
			)
			if !isEar(points, idx, prev, curr, next) {
				continue
			}
			triangles = append(triangles, [3]int{prev, curr, next})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// 自交或数值退化，剩余部分按扇形处理
			break
		}
	}

	for i := 1; i+1 < len(idx); i++ {
		triangles = append(triangles, [3]int{idx[0], idx[i], idx[i+1]})
	}

	return triangles
}

func signedArea(points []core.Point) float64 {
	var area float64
	for i := range points {
		j := (i + 1) % len(points)
		area += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return area / 2
}

func cross2(o, a, b core.Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func isEar(points []core.Point, idx []int, prev, curr, next int) bool {
	var a, b, c = points[prev], points[curr], points[next]
	if cross2(a, b, c) <= 0 {
		return false
	}
	for _, k := range idx {
		if k == prev || k == curr || k == next {
			continue
		}
		if inTriangle(points[k], a, b, c) {
			return false
		}
	}
	return true
}

func inTriangle(p, a, b, c core.Point) bool {
	return cross2(a, b, p) >= 0 && cross2(b, c, p) >= 0 && cross2(c, a, p) >= 0
}
