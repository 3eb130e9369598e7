package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/zooyer/dxfview"
	"github.com/zooyer/dxfview/entities"
)

// dimPrecision 查找标注样式定义的小数位数，默认取整
func dimPrecision(doc *dxf.Document, dim *entities.Dimension) int {
	if doc == nil {
		return 0
	}
	if style, ok := doc.DimStyles[strings.ToUpper(dim.StyleName)]; ok {
		return style.Precision
	}
	return 0
}

func GetDimValue(doc *dxf.Document, dim *entities.Dimension) float64 {
	// 1. 如果有手动文字覆盖，直接按文字提取数字
	if dim.Text != "" && !strings.Contains(dim.Text, "<>") {
		return dim.TextValue()
	}

	// 2. 根据样式精度进行四舍五入
	p := math.Pow(10, float64(dimPrecision(doc, dim)))

	return math.Round(dim.ActualMeasurement*p) / p
}

// GetDimText 返回标注应显示的文字，"<>" 会被替换为测量值
func GetDimText(doc *dxf.Document, dim *entities.Dimension) string {
	var (
		value    = GetDimValue(doc, dim)
		measured = strconv.FormatFloat(value, 'f', dimPrecision(doc, dim), 64)
	)

	switch {
	case dim.Text == "":
		return measured
	case strings.Contains(dim.Text, "<>"):
		return strings.ReplaceAll(dim.Text, "<>", measured)
	default:
		return dim.Text
	}
}
