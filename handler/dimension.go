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
	register("DIMENSION", Func(processDimension))
}

func processDimension(entity entities.Entity, doc *dxf.Document, dc *DrawContext) (*scene.Object, error) {
	dim, ok := entity.(*entities.Dimension)
	if !ok {
		return nil, mismatch(entity)
	}

	var exe, height = 0.0, dc.textHeight(0)
	if doc != nil {
		if style, ok := doc.DimStyles[dim.StyleName]; ok && style.Scale > 0 {
			exe = style.ExLimit * style.Scale
			height *= style.Scale
		}
	}

	// 标注线两端是测量点在标注线上的投影，延伸线越过标注线 DIMEXE
	var (
		c13, c14 = dim.Corners()
		points   = []core.Point{c13, c14}
	)
	if dim.Linear() {
		e13, e14 := dim.Extensions(exe)
		points = append(points, dim.MeasureStart, e13, dim.MeasureEnd, e14)
	}
	lines := newObject(scene.KindSegments, &scene.Geometry{Points: points}, entity, doc, dc)

	text, err := textObject(utils.GetDimText(doc, dim), height, 5, dim.TextMidPoint,
		dim.Angle*math.Pi/180, entity, doc, dc)
	if err != nil {
		return nil, err
	}

	group := newObject(scene.KindGroup, nil, entity, doc, dc)
	group.Children = []*scene.Object{lines, text}

	return group, nil
}
