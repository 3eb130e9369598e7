package handler

import (
	"fmt"
	"math"
	"strings"

	"github.com/zooyer/dxfview"
	"github.com/zooyer/dxfview/core"
	"github.com/zooyer/dxfview/entities"
	"github.com/zooyer/dxfview/fonts"
	"github.com/zooyer/dxfview/scene"
)

func init() {
	register("MTEXT", Func(processMText))
}

// textExtent 按对齐方式计算文字在局部坐标中的矩形。
// attachment 1-9 依次为 左上、中上、右上、左中 ... 右下。
func textExtent(width, height float64, attachment int) []core.Point {
	if attachment < 1 || attachment > 9 {
		attachment = 1
	}

	var (
		col  = (attachment - 1) % 3
		row  = (attachment - 1) / 3
		left = -width * float64(col) / 2
		top  = height * float64(row) / 2
	)

	return []core.Point{
		{X: left, Y: top - height},
		{X: left + width, Y: top - height},
		{X: left + width, Y: top},
		{X: left, Y: top},
	}
}

// textObject 文字对象，位置与旋转放在对象变换上
func textObject(text string, height float64, attachment int, at core.Point, rotation float64,
	entity entities.Entity, doc *dxf.Document, dc *DrawContext) (*scene.Object, error) {
	if dc.Font == nil {
		return nil, fmt.Errorf("%s: %w", entity.Type(), fonts.ErrFontUnavailable)
	}

	width, total := dc.Font.Measure(text, height)

	obj := newObject(scene.KindText, &scene.Geometry{Points: textExtent(width, total, attachment)}, entity, doc, dc)
	obj.Text = text
	obj.TextHeight = height
	obj.Position = at
	obj.Rotation = rotation

	return obj, nil
}

func processMText(entity entities.Entity, doc *dxf.Document, dc *DrawContext) (*scene.Object, error) {
	mtext, ok := entity.(*entities.MText)
	if !ok {
		return nil, mismatch(entity)
	}

	var rotation = mtext.Rotation * math.Pi / 180
	if d := mtext.Direction; d.X != 0 || d.Y != 0 {
		rotation = math.Atan2(d.Y, d.X)
	}

	// 未设置字高时取文字样式的固定字高
	var height = mtext.Height
	if height <= 0 && doc != nil {
		if style, ok := doc.Styles[strings.ToUpper(mtext.StyleName)]; ok {
			height = style.FixedHeight
		}
	}

	return textObject(mtext.PlainText(), dc.textHeight(height), mtext.AttachmentPoint,
		mtext.Position, rotation, entity, doc, dc)
}
