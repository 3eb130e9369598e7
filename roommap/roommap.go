// Package roommap 管理叠加在图纸上的房间多边形。
package roommap

import (
	"math"
	"slices"
	"sync"

	"github.com/zooyer/dxfview/core"
	"github.com/zooyer/dxfview/scene"
	"github.com/zooyer/dxfview/utils"
)

// Vertex 房间轮廓顶点，Z 缺省为 0
type Vertex = core.Point

// Mapping 外部提供的房间映射
type Mapping struct {
	Name     string
	Category string
	Vertices []Vertex
}

// Area 鞋带公式计算 XY 投影面积
func (m Mapping) Area() float64 {
	var area float64
	for i := range m.Vertices {
		a, b := m.Vertices[i], m.Vertices[(i+1)%len(m.Vertices)]
		area += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(area) / 2
}

// Contains 点是否落在房间内
func (m Mapping) Contains(p core.Point) bool {
	if len(m.Vertices) < 3 {
		return false
	}
	if !utils.InBox(core.BBoxOf(m.Vertices...), p) {
		return false
	}
	return utils.InPolygon(m.Vertices, p)
}

// Locate 返回第一个包含该点的房间
func Locate(mappings []Mapping, p core.Point) (Mapping, bool) {
	for _, m := range mappings {
		if m.Contains(p) {
			return m, true
		}
	}
	return Mapping{}, false
}

func vertexHash(v Vertex) int64 {
	return toInt64(math.Round(31*(31*v.X+v.Y) + v.Z))
}

// toInt64 超出 int64 范围的值按位折叠，保证结果确定
func toInt64(f float64) int64 {
	if math.IsNaN(f) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return int64(math.Float64bits(f))
	}
	return int64(f)
}

// Hash 顶点列表的内容哈希，相同顶点得到相同的值
func Hash(vertices []Vertex) int64 {
	var hash int64 = 1
	for _, v := range vertices {
		hash = 31*hash + vertexHash(v)
	}
	return hash
}

type entry struct {
	vertices []Vertex
	geometry *scene.Geometry
}

// Cache 按顶点内容缓存改进后的几何，同一哈希桶内再比较顶点是否相等
type Cache struct {
	mu      sync.Mutex
	buckets map[int64][]*entry
	size    int
}

// NewCache 创建空缓存
func NewCache() *Cache {
	return &Cache{buckets: make(map[int64][]*entry)}
}

func (c *Cache) find(hash int64, vertices []Vertex) *entry {
	for _, e := range c.buckets[hash] {
		if slices.Equal(e.vertices, vertices) {
			return e
		}
	}
	return nil
}

func (c *Cache) put(vertices []Vertex, g *scene.Geometry) {
	var hash = Hash(vertices)
	if e := c.find(hash, vertices); e != nil {
		e.geometry = g
		return
	}
	c.buckets[hash] = append(c.buckets[hash], &entry{
		vertices: slices.Clone(vertices),
		geometry: g,
	})
	c.size++
}

// Transform 返回房间的填充几何。
// 命中缓存时返回缓存的对象；否则构造填充多边形并缓存。
func (c *Cache) Transform(m Mapping) *scene.Geometry {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e := c.find(Hash(m.Vertices), m.Vertices); e != nil {
		return e.geometry
	}

	g := Polygon(m.Vertices)
	c.put(m.Vertices, g)
	return g
}

// AddOverride 为这组顶点登记更好的几何(例如展开了凸度的多段线)
func (c *Cache) AddOverride(vertices []Vertex, g *scene.Geometry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(vertices, g)
}

// Len 缓存条目数
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Polygon 以第一个顶点起笔、依次连到其余顶点的填充多边形
func Polygon(vertices []Vertex) *scene.Geometry {
	var points = make([]core.Point, len(vertices))
	for i, v := range vertices {
		points[i] = core.Point{X: v.X, Y: v.Y}
	}
	return &scene.Geometry{
		Points:    points,
		Triangles: scene.Triangulate(points),
	}
}
