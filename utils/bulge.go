package utils

import (
	"math"

	"github.com/zooyer/golib/xmath"

	"github.com/zooyer/dxfview/core"
)

// bulgeEpsilon 小于该值的凸度视为直线段
const bulgeEpsilon = 1e-9

// HasBulge 多段线是否含有圆弧段
func HasBulge(bulges []float64) bool {
	for _, b := range bulges {
		if !xmath.Equal(b, 0, bulgeEpsilon) {
			return true
		}
	}
	return false
}

// ExpandBulges 把带凸度的多段线展开为折线轮廓。
// divisions 是整圆的细分数；闭合时轮廓不重复首点。
func ExpandBulges(vertices []core.Point, bulges []float64, closed bool, divisions int) []core.Point {
	if divisions < 1 {
		divisions = 1
	}

	var out = make([]core.Point, 0, len(vertices))
	for i, p1 := range vertices {
		out = append(out, p1)

		if i == len(vertices)-1 && !closed {
			break
		}

		var (
			p2 = vertices[(i+1)%len(vertices)]
			b  float64
		)
		if i < len(bulges) {
			b = bulges[i]
		}
		if xmath.Equal(b, 0, bulgeEpsilon) {
			continue
		}

		out = append(out, arcPoints(p1, p2, b, divisions)...)
	}

	return out
}

// arcPoints 返回 p1 -> p2 圆弧上的中间点(不含两端)
func arcPoints(p1, p2 core.Point, bulge float64, divisions int) []core.Point {
	var (
		dx, dy = p2.X - p1.X, p2.Y - p1.Y
		// 圆心 = 弦中点 + 左法向 * (1 - b²) / (4b)
		k      = (1 - bulge*bulge) / (4 * bulge)
		cx     = (p1.X+p2.X)/2 - dy*k
		cy     = (p1.Y+p2.Y)/2 + dx*k
		radius = math.Hypot(p1.X-cx, p1.Y-cy)
		start  = math.Atan2(p1.Y-cy, p1.X-cx)
		sweep  = 4 * math.Atan(bulge) // 正值为逆时针
		steps  = int(math.Ceil(math.Abs(sweep) / (2 * math.Pi) * float64(divisions)))
	)

	if steps < 2 || radius == 0 {
		return nil
	}

	var points = make([]core.Point, 0, steps-1)
	for s := 1; s < steps; s++ {
		angle := start + sweep*float64(s)/float64(steps)
		points = append(points, core.Point{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
			Z: p1.Z,
		})
	}
	return points
}
