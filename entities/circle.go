package entities

import (
	"math"

	"github.com/zooyer/dxfview/core"
)

type Circle struct {
	BaseEntity
	Center core.Point
	Radius float64
}

func init() {
	Register("CIRCLE", func() Entity { return &Circle{BaseEntity: newBase("CIRCLE")} })
}

func (c *Circle) Parse(s *core.Scanner) error {
	for {
		t := s.LastTag
		if !c.parseCommon(t) {
			switch t.Code {
			case 10:
				c.Center.X = t.AsFloat()
			case 20:
				c.Center.Y = t.AsFloat()
			case 30:
				c.Center.Z = t.AsFloat()
			case 40:
				c.Radius = t.AsFloat()
			}
		}
		if !next(s) {
			break
		}
	}
	return nil
}

func (c *Circle) BBox() core.BBox {
	r := math.Abs(c.Radius)
	return core.BBox{
		Min: core.Point{X: c.Center.X - r, Y: c.Center.Y - r, Z: c.Center.Z},
		Max: core.Point{X: c.Center.X + r, Y: c.Center.Y + r, Z: c.Center.Z},
	}
}

type Arc struct {
	Circle
	StartAngle float64 // 组码 50，角度制
	EndAngle   float64 // 组码 51，角度制
}

func init() {
	Register("ARC", func() Entity {
		return &Arc{Circle: Circle{BaseEntity: newBase("ARC")}}
	})
}

func (a *Arc) Parse(s *core.Scanner) error {
	for {
		t := s.LastTag
		if !a.parseCommon(t) {
			switch t.Code {
			case 10:
				a.Center.X = t.AsFloat()
			case 20:
				a.Center.Y = t.AsFloat()
			case 30:
				a.Center.Z = t.AsFloat()
			case 40:
				a.Radius = t.AsFloat()
			case 50:
				a.StartAngle = t.AsFloat()
			case 51:
				a.EndAngle = t.AsFloat()
			}
		}
		if !next(s) {
			break
		}
	}
	return nil
}

// Sweep 返回逆时针扫过的角度，范围 (0, 360]
func (a *Arc) Sweep() float64 {
	sweep := math.Mod(a.EndAngle-a.StartAngle, 360)
	if sweep <= 0 {
		sweep += 360
	}
	return sweep
}

func (a *Arc) BBox() core.BBox {
	// 取起止点与落在弧上的象限点
	var (
		box   = core.EmptyBBox()
		start = a.StartAngle
		sweep = a.Sweep()
	)
	box = box.Extend(a.pointAt(start)).Extend(a.pointAt(start + sweep))
	for q := math.Ceil(start/90) * 90; q < start+sweep; q += 90 {
		box = box.Extend(a.pointAt(q))
	}
	return box
}

func (a *Arc) pointAt(deg float64) core.Point {
	rad := deg * math.Pi / 180.0
	return core.Point{
		X: a.Center.X + a.Radius*math.Cos(rad),
		Y: a.Center.Y + a.Radius*math.Sin(rad),
		Z: a.Center.Z,
	}
}
