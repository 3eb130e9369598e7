// Package handler 把 DXF 实体转换为可渲染的场景对象。
//
// 可处理的实体类型在包初始化时确定，运行期不能再登记新的类型。
package handler

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zooyer/dxfview"
	"github.com/zooyer/dxfview/core"
	"github.com/zooyer/dxfview/entities"
	"github.com/zooyer/dxfview/fonts"
	"github.com/zooyer/dxfview/scene"
	"github.com/zooyer/dxfview/utils"
)

var (
	// ErrUnsupported 没有对应类型的处理器
	ErrUnsupported = errors.New("handler: unsupported entity type")
	// ErrMalformed 实体数据无法转换
	ErrMalformed = errors.New("handler: malformed entity")
)

// MaxDepth 块引用的最大嵌套深度
const MaxDepth = 16

// Overrides 登记房间映射的替代几何，*roommap.Cache 满足该接口
type Overrides interface {
	AddOverride(vertices []core.Point, g *scene.Geometry)
}

// DrawContext 一次绘制的主题与资源
type DrawContext struct {
	Divisions         int // 整圆细分数
	Contrast          scene.Color
	Background        scene.Color
	DefaultColor      scene.Color
	DefaultTextHeight float64
	Font              *fonts.Font
	Overrides         Overrides

	depth   int
	byBlock *scene.Color                  // 块内 BYBLOCK 颜色
	place   func(p core.Point) core.Point // 块内坐标到世界坐标，顶层为 nil
}

// DefaultDrawContext 浅色背景下的默认设置
func DefaultDrawContext() *DrawContext {
	return &DrawContext{
		Divisions:         32,
		Contrast:          0x000000,
		Background:        0xFFFFFF,
		DefaultColor:      0x000000,
		DefaultTextHeight: 11,
	}
}

func (dc *DrawContext) divisions() int {
	if dc.Divisions < 3 {
		return 32
	}
	return dc.Divisions
}

func (dc *DrawContext) textHeight(height float64) float64 {
	if height > 0 {
		return height
	}
	if dc.DefaultTextHeight > 0 {
		return dc.DefaultTextHeight
	}
	return 11
}

// nested 进入块引用时使用的上下文，color 为块引用自身的颜色
func (dc *DrawContext) nested(color scene.Color, ins *entities.Insert) *DrawContext {
	child := *dc
	child.depth++
	child.byBlock = &color
	child.place = func(p core.Point) core.Point {
		return dc.world(utils.TransformPoint(p, ins))
	}
	return &child
}

// world 把当前块内坐标换算到世界坐标
func (dc *DrawContext) world(p core.Point) core.Point {
	if dc.place == nil {
		return p
	}
	return dc.place(p)
}

// Handler 把一种实体转换为场景对象，不能修改文档和场景
type Handler interface {
	Process(entity entities.Entity, doc *dxf.Document, dc *DrawContext) (*scene.Object, error)
}

// Func 函数形式的 Handler
type Func func(entity entities.Entity, doc *dxf.Document, dc *DrawContext) (*scene.Object, error)

func (f Func) Process(entity entities.Entity, doc *dxf.Document, dc *DrawContext) (*scene.Object, error) {
	return f(entity, doc, dc)
}

var handlers = map[string]Handler{}

// register 只在 init 中调用
func register(typeTag string, h Handler) {
	handlers[typeTag] = h
}

// Lookup 按类型名精确查找处理器(区分大小写)
func Lookup(typeTag string) (Handler, error) {
	h, ok := handlers[typeTag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, typeTag)
	}
	return h, nil
}

// Types 已登记的类型名，按字典序
func Types() []string {
	var types = make([]string, 0, len(handlers))
	for t := range handlers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Process 查找处理器并转换实体，处理器中的 panic 会转换为 ErrMalformed
func Process(entity entities.Entity, doc *dxf.Document, dc *DrawContext) (obj *scene.Object, err error) {
	if entity == nil {
		return nil, fmt.Errorf("%w: nil entity", ErrMalformed)
	}

	h, err := Lookup(entity.Type())
	if err != nil {
		return nil, err
	}
	if dc == nil {
		dc = DefaultDrawContext()
	}

	defer func() {
		if r := recover(); r != nil {
			obj, err = nil, fmt.Errorf("%w: %s: panic: %v", ErrMalformed, entity.Type(), r)
		}
	}()

	obj, err = h.Process(entity, doc, dc)
	if err == nil && obj == nil {
		err = malformed(entity, "no object produced")
	}

	return
}

func malformed(entity entities.Entity, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformed, entity.Type(), fmt.Sprintf(format, args...))
}

func mismatch(entity entities.Entity) error {
	return malformed(entity, "unexpected entity %T", entity)
}

// newObject 创建带图层和颜色的对象
func newObject(kind scene.Kind, g *scene.Geometry, entity entities.Entity, doc *dxf.Document, dc *DrawContext) *scene.Object {
	obj := scene.NewObject(kind, g)
	obj.Layer = entity.Layer()
	obj.Color = ResolveColor(entity, doc, dc)
	return obj
}
