package handler

import (
	"github.com/zooyer/dxfview"
	"github.com/zooyer/dxfview/core"
	"github.com/zooyer/dxfview/entities"
	"github.com/zooyer/dxfview/scene"
)

func init() {
	register("3DFACE", Func(processFace3D))
}

func processFace3D(entity entities.Entity, doc *dxf.Document, dc *DrawContext) (*scene.Object, error) {
	face, ok := entity.(*entities.Face3D)
	if !ok {
		return nil, mismatch(entity)
	}
	if face.CornerCount() < 3 {
		return nil, malformed(entity, "%d corners", face.CornerCount())
	}

	var points = make([]core.Point, 4)
	copy(points, face.Corners[:])
	// 三角面：第四个点与第三个点重合
	if face.CornerCount() == 3 {
		points[3] = points[2]
	}

	// 根据前两条边叉乘的 Z 分量决定绕序，保证可见面一致
	var normal = points[1].Sub(points[0]).Cross(points[2].Sub(points[0]))

	var triangles [][3]int
	if normal.Z < 0 {
		triangles = [][3]int{{2, 1, 0}, {2, 3, 0}}
	} else {
		triangles = [][3]int{{0, 1, 2}, {1, 3, 2}}
	}

	g := &scene.Geometry{Points: points, Triangles: triangles}

	return newObject(scene.KindMesh, g, entity, doc, dc), nil
}
