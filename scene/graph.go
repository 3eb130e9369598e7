package scene

import (
	"sync"

	"github.com/zooyer/dxfview/core"
)

// Scene 绘制管线写入的可变场景
type Scene interface {
	Add(obj *Object)
	Remove(obj *Object) bool
	Objects() []*Object
	Len() int
}

// Graph 保留模式场景，顶层对象按加入顺序排列
type Graph struct {
	mu      sync.RWMutex
	objects []*Object
	byID    map[string]*Object
}

// NewGraph 创建空场景
func NewGraph() *Graph {
	return &Graph{
		byID: make(map[string]*Object),
	}
}

func (g *Graph) Add(obj *Object) {
	if obj == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.objects = append(g.objects, obj)
	g.byID[obj.ID] = obj
}

func (g *Graph) Remove(obj *Object) bool {
	if obj == nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, o := range g.objects {
		if o == obj {
			g.objects = append(g.objects[:i], g.objects[i+1:]...)
			delete(g.byID, obj.ID)
			return true
		}
	}
	return false
}

// Get 按 ID 查找顶层对象
func (g *Graph) Get(id string) (*Object, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	obj, ok := g.byID[id]
	return obj, ok
}

// Objects 返回顶层对象的快照
func (g *Graph) Objects() []*Object {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Object, len(g.objects))
	copy(out, g.objects)
	return out
}

func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.objects)
}

// Clear 移除所有对象
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.objects = nil
	g.byID = make(map[string]*Object)
}

// Dispose 清空场景并释放对象持有的几何数据。
// 几何数据可能与缓存共享，只断开引用，不修改内容。
func (g *Graph) Dispose() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, obj := range g.objects {
		obj.Walk(func(o *Object, _ Transform) {
			o.Geometry = nil
			o.Children = nil
		})
	}
	g.objects = nil
	g.byID = make(map[string]*Object)
}

// BBox 场景内所有对象的世界坐标包围盒
func (g *Graph) BBox() core.BBox {
	var box = core.EmptyBBox()
	for _, obj := range g.Objects() {
		box = box.Union(obj.BBox())
	}
	return box
}
