package handler

import (
	"math"

	"github.com/zooyer/dxfview"
	"github.com/zooyer/dxfview/core"
	"github.com/zooyer/dxfview/entities"
	"github.com/zooyer/dxfview/scene"
	"github.com/zooyer/dxfview/utils"
)

func init() {
	register("INSERT", Func(processInsert))
}

func processInsert(entity entities.Entity, doc *dxf.Document, dc *DrawContext) (*scene.Object, error) {
	ins, ok := entity.(*entities.Insert)
	if !ok {
		return nil, mismatch(entity)
	}
	if dc.depth >= MaxDepth {
		return nil, malformed(entity, "block %q nested deeper than %d", ins.BlockName, MaxDepth)
	}
	if doc == nil {
		return nil, malformed(entity, "block %q without document", ins.BlockName)
	}

	block, ok := doc.Block(ins.BlockName)
	if !ok {
		return nil, malformed(entity, "unknown block %q", ins.BlockName)
	}

	var (
		group  = newObject(scene.KindGroup, nil, entity, doc, dc)
		nested = dc.nested(group.Color, ins)
	)

	// 块内无法转换的实体直接跳过
	for _, child := range block.Entities {
		obj, err := Process(child, doc, nested)
		if err != nil {
			continue
		}
		bake(obj, ins)
		group.Children = append(group.Children, obj)
	}

	// 属性位置本身就是插入后的坐标
	for _, attr := range ins.Attributes {
		if attr.Text == "" {
			continue
		}
		text, err := textObject(attr.Text, dc.textHeight(attr.Height), 7, attr.Location,
			attr.Rotation*math.Pi/180, attr, doc, dc)
		if err != nil {
			return nil, err
		}
		group.Children = append(group.Children, text)
	}

	if len(ins.Attributes) > 0 {
		group.Attrs = utils.GetAttrs(ins)
	}

	return group, nil
}

// bake 把块内对象(含子对象)换算到插入后的坐标系。
// 非均匀缩放下只有逐点变换才准确，因此除文字外都直接改写顶点，局部变换清零。
func bake(obj *scene.Object, ins *entities.Insert) {
	bakeNode(obj, ins, func(p core.Point) core.Point { return p }, 0)
}

func bakeNode(obj *scene.Object, ins *entities.Insert, parent scene.Transform, parentRotation float64) {
	var (
		frame    = scene.Object{Position: obj.Position, Rotation: obj.Rotation}
		world    = func(p core.Point) core.Point { return parent(frame.Apply(p)) }
		rotation = parentRotation + obj.Rotation
	)

	switch {
	case obj.Kind == scene.KindText:
		// 文字保留局部坐标，只换算锚点、角度和字高
		var sx, sy = math.Abs(ins.Scale.X), math.Abs(ins.Scale.Y)
		if g := obj.Geometry; g != nil {
			points := make([]core.Point, len(g.Points))
			for i, p := range g.Points {
				points[i] = core.Point{X: p.X * sx, Y: p.Y * sy, Z: p.Z}
			}
			obj.Geometry = &scene.Geometry{Points: points}
		}
		obj.TextHeight *= sy
		obj.Position = utils.TransformPoint(world(core.Point{}), ins)
		obj.Rotation = rotation + ins.Rotation*math.Pi/180
	default:
		// 几何可能与缓存共享，生成新的顶点缓冲
		if g := obj.Geometry; g != nil {
			points := make([]core.Point, len(g.Points))
			for i, p := range g.Points {
				points[i] = utils.TransformPoint(world(p), ins)
			}
			obj.Geometry = &scene.Geometry{Points: points, Triangles: g.Triangles}
		}
		obj.Position = core.Point{}
		obj.Rotation = 0
	}

	for _, child := range obj.Children {
		bakeNode(child, ins, world, rotation)
	}
}
