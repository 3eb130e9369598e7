package entities

import (
	"github.com/zooyer/dxfview/core"
)

// 颜色号中的特殊值
const (
	ColorByBlock = 0
	ColorByLayer = 256
)

// Entity 是一切几何实体的接口
type Entity interface {
	Parse(scanner *core.Scanner) error
	Type() string
	Layer() string
	Color() int
	BBox() core.BBox
}

// BaseEntity 存放所有实体通用的属性（如 Layer, Color, Handle）
type BaseEntity struct {
	TypeName    string
	LayerName   string
	Handle      string
	ColorNumber int // 组码 62，0 为 BYBLOCK，256 为 BYLAYER
}

func (b *BaseEntity) Type() string { return b.TypeName }

func (b *BaseEntity) Layer() string { return b.LayerName }

func (b *BaseEntity) Color() int { return b.ColorNumber }

// newBase 没有组码 62 的实体颜色为 BYLAYER
func newBase(typeName string) BaseEntity {
	return BaseEntity{TypeName: typeName, ColorNumber: ColorByLayer}
}

// parseCommon 处理所有实体共有的组码，已处理返回 true
func (b *BaseEntity) parseCommon(t core.Tag) bool {
	switch t.Code {
	case 5:
		b.Handle = t.AsString()
	case 8:
		b.LayerName = t.AsString()
	case 62:
		b.ColorNumber = t.AsInt()
	default:
		return false
	}
	return true
}

// EntityFactory 定义了如何从标签流中创建一个实体
type EntityFactory func() Entity

var registry = map[string]EntityFactory{}

// Register 在 init 阶段登记可解析的实体类型
func Register(typeName string, factory EntityFactory) {
	registry[typeName] = factory
}

// CreateEntity 根据实体名称生产对应的结构体
func CreateEntity(typeName string) Entity {
	if factory, ok := registry[typeName]; ok {
		return factory()
	}
	return nil
}

// next 读取下一个标签，遇到新实体(组码 0)或结束时返回 false
func next(s *core.Scanner) bool {
	return s.Next() && s.LastTag.Code != 0
}
