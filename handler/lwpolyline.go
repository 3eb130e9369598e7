package handler

import (
	"github.com/zooyer/dxfview"
	"github.com/zooyer/dxfview/core"
	"github.com/zooyer/dxfview/entities"
	"github.com/zooyer/dxfview/scene"
	"github.com/zooyer/dxfview/utils"
)

func init() {
	register("LWPOLYLINE", Func(processLWPolyline))
}

func processLWPolyline(entity entities.Entity, doc *dxf.Document, dc *DrawContext) (*scene.Object, error) {
	poly, ok := entity.(*entities.LWPolyline)
	if !ok {
		return nil, mismatch(entity)
	}
	if len(poly.Vertices) == 0 {
		return nil, malformed(entity, "no vertices")
	}

	// Z 统一归零
	var vertices = make([]core.Point, len(poly.Vertices))
	for i, v := range poly.Vertices {
		vertices[i] = v.Flat()
	}

	var points = make([]core.Point, len(vertices), len(vertices)+1)
	copy(points, vertices)
	if poly.Closed {
		points = append(points, vertices[0])
	}

	// 带圆弧的多段线：登记展开后的轮廓，房间映射命中同一组顶点时使用。
	// 房间映射是世界坐标，块内的多段线先换算到世界坐标再登记。
	if dc.Overrides != nil && utils.HasBulge(poly.Bulges) {
		outline := utils.ExpandBulges(vertices, poly.Bulges, poly.Closed, dc.divisions())
		for i, p := range outline {
			outline[i] = dc.world(p).Flat()
		}
		var key = make([]core.Point, len(vertices))
		for i, v := range vertices {
			key[i] = dc.world(v).Flat()
		}
		dc.Overrides.AddOverride(key, &scene.Geometry{
			Points:    outline,
			Triangles: scene.Triangulate(outline),
		})
	}

	return newObject(scene.KindLine, &scene.Geometry{Points: points}, entity, doc, dc), nil
}
