package entities

import (
	"github.com/zooyer/dxfview/core"
)

type Face3D struct {
	BaseEntity
	Corners        [4]core.Point // 组码 10-13 / 20-23 / 30-33
	InvisibleEdges int           // 组码 70
	corners        int
}

func init() {
	Register("3DFACE", func() Entity { return &Face3D{BaseEntity: newBase("3DFACE")} })
}

func (f *Face3D) Parse(s *core.Scanner) error {
	for {
		t := s.LastTag
		if !f.parseCommon(t) {
			switch {
			case t.Code >= 10 && t.Code <= 13:
				f.Corners[t.Code-10].X = t.AsFloat()
				f.corners = max(f.corners, t.Code-10+1)
			case t.Code >= 20 && t.Code <= 23:
				f.Corners[t.Code-20].Y = t.AsFloat()
			case t.Code >= 30 && t.Code <= 33:
				f.Corners[t.Code-30].Z = t.AsFloat()
			case t.Code == 70:
				f.InvisibleEdges = t.AsInt()
			}
		}
		if !next(s) {
			break
		}
	}
	return nil
}

// CornerCount 返回文件中实际给出的角点数
func (f *Face3D) CornerCount() int {
	return f.corners
}

// SetCorners 直接设置角点(用于程序构造的实体)
func (f *Face3D) SetCorners(points ...core.Point) {
	f.corners = copy(f.Corners[:], points)
}

func (f *Face3D) BBox() core.BBox {
	return core.BBoxOf(f.Corners[:max(f.corners, 1)]...)
}
