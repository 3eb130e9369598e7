package handler

import (
	"math"

	"github.com/zooyer/dxfview"
	"github.com/zooyer/dxfview/core"
	"github.com/zooyer/dxfview/entities"
	"github.com/zooyer/dxfview/scene"
)

func init() {
	register("LINE", Func(processLine))
	register("CIRCLE", Func(processCircle))
	register("ARC", Func(processArc))
}

func processLine(entity entities.Entity, doc *dxf.Document, dc *DrawContext) (*scene.Object, error) {
	line, ok := entity.(*entities.Line)
	if !ok {
		return nil, mismatch(entity)
	}

	g := &scene.Geometry{Points: []core.Point{line.Start, line.End}}

	return newObject(scene.KindLine, g, entity, doc, dc), nil
}

// circlePoints 以原点为圆心，从 start 开始逆时针 sweep 弧度，共 steps+1 个点
func circlePoints(radius, start, sweep float64, steps int) []core.Point {
	var points = make([]core.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		angle := start + sweep*float64(i)/float64(steps)
		points = append(points, core.Point{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
		})
	}
	return points
}

func processCircle(entity entities.Entity, doc *dxf.Document, dc *DrawContext) (*scene.Object, error) {
	circle, ok := entity.(*entities.Circle)
	if !ok {
		return nil, mismatch(entity)
	}
	if !(circle.Radius > 0) {
		return nil, malformed(entity, "radius %v", circle.Radius)
	}

	var (
		divisions = dc.divisions()
		points    = circlePoints(circle.Radius, 0, 2*math.Pi, divisions)
	)
	// 首尾完全重合
	points[divisions] = points[0]

	obj := newObject(scene.KindLine, &scene.Geometry{Points: points}, entity, doc, dc)
	obj.Position = circle.Center

	return obj, nil
}

func processArc(entity entities.Entity, doc *dxf.Document, dc *DrawContext) (*scene.Object, error) {
	arc, ok := entity.(*entities.Arc)
	if !ok {
		return nil, mismatch(entity)
	}
	if !(arc.Radius > 0) {
		return nil, malformed(entity, "radius %v", arc.Radius)
	}

	var (
		sweep = arc.Sweep()
		steps = int(math.Ceil(float64(dc.divisions()) * sweep / 360))
	)
	if steps < 1 {
		steps = 1
	}

	points := circlePoints(arc.Radius, arc.StartAngle*math.Pi/180, sweep*math.Pi/180, steps)

	obj := newObject(scene.KindLine, &scene.Geometry{Points: points}, entity, doc, dc)
	obj.Position = arc.Center

	return obj, nil
}
