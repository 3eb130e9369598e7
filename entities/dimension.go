package entities

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/zooyer/dxfview/core"
)

// 组码 70 低 3 位的标注类型
const (
	DimRotated = iota
	DimAligned
	DimAngular
	DimDiameter
	DimRadius
	DimAngular3P
	DimOrdinate
)

type Dimension struct {
	BaseEntity
	DimType           int        // 组码 70 低 3 位
	StyleName         string     // 组码 3，关联 DIMSTYLE 表
	ActualMeasurement float64    // 组码 42
	Text              string     // 组码 1，"<>" 代表测量值
	Angle             float64    // 组码 50，标注线角度
	DefPoint          core.Point // 组码 10，标注线经过的点
	TextMidPoint      core.Point // 组码 11
	MeasureStart      core.Point // 组码 13
	MeasureEnd        core.Point // 组码 14
}

func init() {
	Register("DIMENSION", func() Entity {
		return &Dimension{BaseEntity: newBase("DIMENSION")}
	})
}

func (d *Dimension) Parse(scanner *core.Scanner) error {
	for {
		tag := scanner.LastTag
		if !d.parseCommon(tag) {
			switch tag.Code {
			case 3:
				d.StyleName = strings.ToUpper(tag.AsString())
			case 1:
				d.Text = tag.AsString()
			case 42:
				d.ActualMeasurement = tag.AsFloat()
			case 50:
				d.Angle = tag.AsFloat()
			case 70:
				d.DimType = tag.AsInt() & 0x07
			case 10:
				d.DefPoint.X = tag.AsFloat()
			case 20:
				d.DefPoint.Y = tag.AsFloat()
			case 30:
				d.DefPoint.Z = tag.AsFloat()
			case 11:
				d.TextMidPoint.X = tag.AsFloat()
			case 21:
				d.TextMidPoint.Y = tag.AsFloat()
			case 31:
				d.TextMidPoint.Z = tag.AsFloat()
			case 13:
				d.MeasureStart.X = tag.AsFloat()
			case 23:
				d.MeasureStart.Y = tag.AsFloat()
			case 33:
				d.MeasureStart.Z = tag.AsFloat()
			case 14:
				d.MeasureEnd.X = tag.AsFloat()
			case 24:
				d.MeasureEnd.Y = tag.AsFloat()
			case 34:
				d.MeasureEnd.Z = tag.AsFloat()
			}
		}
		if !next(scanner) {
			break
		}
	}
	return nil
}

// Linear 转角标注和对齐标注
func (d *Dimension) Linear() bool {
	return d.DimType == DimRotated || d.DimType == DimAligned
}

func (d *Dimension) axis() r3.Vec {
	rad := d.Angle * math.Pi / 180
	return r3.Vec{X: math.Cos(rad), Y: math.Sin(rad)}
}

// project 把点沿延伸线方向投影到标注线上
func (d *Dimension) project(p core.Point) core.Point {
	var (
		axis   = d.axis()
		origin = d.DefPoint.Vec()
	)
	return core.FromVec(r3.Add(origin, r3.Scale(r3.Dot(r3.Sub(p.Vec(), origin), axis), axis)))
}

// Corners 标注线的两个端点，分别对应 13 和 14 测量点
func (d *Dimension) Corners() (start, end core.Point) {
	return d.project(d.MeasureStart), d.project(d.MeasureEnd)
}

// Extensions 延伸线越过标注线 exe (DIMEXE) 后的端点
func (d *Dimension) Extensions(exe float64) (start, end core.Point) {
	start, end = d.Corners()
	if exe == 0 {
		return
	}

	// 延伸线方向：从测量点指向标注线
	var normal = r3.Vec{X: -d.axis().Y, Y: d.axis().X}
	if r3.Dot(r3.Sub(start.Vec(), d.MeasureStart.Vec()), normal) < 0 {
		normal = r3.Scale(-1, normal)
	}
	offset := core.FromVec(r3.Scale(exe, normal))

	return start.Add(offset), end.Add(offset)
}

// ExtendedBBox 包含测量点、延伸线端点和文字位置
func (d *Dimension) ExtendedBBox(exe float64) core.BBox {
	start, end := d.Extensions(exe)
	return core.BBoxOf(d.MeasureStart, d.MeasureEnd, start, end, d.TextMidPoint)
}

func (d *Dimension) BBox() core.BBox {
	return d.ExtendedBBox(0)
}

var (
	reDimFormat = regexp.MustCompile(`\\[A-Z].*?;`)
	reDimNumber = regexp.MustCompile(`[0-9.]+`)
)

// TextValue 测量值为空时从覆盖文字中提取数字
func (d *Dimension) TextValue() float64 {
	if d.ActualMeasurement > 0 || d.Text == "" {
		return d.ActualMeasurement
	}

	clean := reDimFormat.ReplaceAllString(d.Text, "")
	if match := reDimNumber.FindString(clean); match != "" {
		if value, err := strconv.ParseFloat(match, 64); err == nil {
			return value
		}
	}
	return d.ActualMeasurement
}
