package handler

import (
	"math"

	"github.com/zooyer/dxfview"
	"github.com/zooyer/dxfview/entities"
	"github.com/zooyer/dxfview/scene"
)

// ResolveColor 颜色优先级：实体颜色 > 图层颜色 > 默认颜色。
// 块内 BYBLOCK 的实体使用块引用的颜色。
func ResolveColor(entity entities.Entity, doc *dxf.Document, dc *DrawContext) scene.Color {
	n := entity.Color()
	if n != entities.ColorByBlock && n != entities.ColorByLayer {
		return dc.ACI(n)
	}
	if n == entities.ColorByBlock && dc.byBlock != nil {
		return *dc.byBlock
	}

	if doc != nil {
		if layer, ok := doc.Layer(entity.Layer()); ok {
			return dc.ACI(layer.ColorNumber)
		}
	}

	return dc.DefaultColor
}

// ACI 把 AutoCAD 颜色号转换为 RGB，7 号随背景取对比色。
// 负数(图层关闭)取绝对值，无效颜色号返回默认颜色。
func (dc *DrawContext) ACI(n int) scene.Color {
	if n < 0 {
		n = -n
	}

	switch {
	case n == 7:
		return dc.Contrast
	case n >= 1 && n <= 9:
		return aciStandard[n]
	case n >= 10 && n <= 249:
		return aciHue(n)
	case n >= 250 && n <= 255:
		return aciGray[n-250]
	}

	return dc.DefaultColor
}

var aciStandard = [10]scene.Color{
	1: 0xFF0000,
	2: 0xFFFF00,
	3: 0x00FF00,
	4: 0x00FFFF,
	5: 0x0000FF,
	6: 0xFF00FF,
	7: 0xFFFFFF,
	8: 0x808080,
	9: 0xC0C0C0,
}

var aciGray = [6]scene.Color{0x333333, 0x505050, 0x696969, 0x828282, 0xBEBEBE, 0xFFFFFF}

// 10-249：十位为色相(每级 15°)，个位决定明度，奇数为淡色
var aciValues = [5]float64{1, 0.8, 0.6, 0.5, 0.3}

func aciHue(n int) scene.Color {
	var (
		hue   = float64(n/10-1) * 15
		sub   = n % 10
		value = aciValues[sub/2]
		sat   = 1.0
	)
	if sub%2 == 1 {
		sat = 0.5
	}
	return hsv(hue, sat, value)
}

func hsv(h, s, v float64) scene.Color {
	var (
		c = v * s
		x = c * (1 - math.Abs(math.Mod(h/60, 2)-1))
		m = v - c

		r, g, b float64
	)

	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	var channel = func(f float64) scene.Color {
		return scene.Color(math.Round((f + m) * 255))
	}

	return channel(r)<<16 | channel(g)<<8 | channel(b)
}
