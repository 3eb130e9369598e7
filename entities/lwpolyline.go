package entities

import (
	"github.com/zooyer/dxfview/core"
)

type LWPolyline struct {
	BaseEntity
	Vertices  []core.Point
	Bulges    []float64 // 与 Vertices 一一对应，组码 42
	Closed    bool      // 组码 70 第 1 位
	Elevation float64   // 组码 38
	Width     float64   // 组码 43 全局宽度
}

func init() {
	Register("LWPOLYLINE", func() Entity { return &LWPolyline{BaseEntity: newBase("LWPOLYLINE")} })
}

func (l *LWPolyline) Parse(s *core.Scanner) error {
	var x float64
	for {
		t := s.LastTag
		if !l.parseCommon(t) {
			switch t.Code {
			case 38:
				l.Elevation = t.AsFloat()
			case 43:
				l.Width = t.AsFloat()
			case 70:
				l.Closed = t.AsInt()&1 == 1
			case 10:
				x = t.AsFloat()
			case 20:
				l.Vertices = append(l.Vertices, core.Point{X: x, Y: t.AsFloat()})
				l.Bulges = append(l.Bulges, 0)
			case 42:
				if n := len(l.Bulges); n > 0 {
					l.Bulges[n-1] = t.AsFloat()
				}
			}
		}
		if !next(s) {
			break
		}
	}
	return nil
}

// Bulge 返回第 i 个顶点的凸度，缺省为 0
func (l *LWPolyline) Bulge(i int) float64 {
	if i < 0 || i >= len(l.Bulges) {
		return 0
	}
	return l.Bulges[i]
}

func (l *LWPolyline) BBox() core.BBox {
	if len(l.Vertices) == 0 {
		return core.BBox{}
	}
	return core.BBoxOf(l.Vertices...)
}
