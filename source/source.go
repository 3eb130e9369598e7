// Package source 把 DXF 文档绘制到场景中。
//
// 绘制按文档顺序逐个转换实体，每隔 stride 个实体回调一次进度，
// 回调返回 false 或 ctx 结束时立即停止，已加入场景的对象不会回滚。
package source

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/zooyer/dxfview"
	"github.com/zooyer/dxfview/bounds"
	"github.com/zooyer/dxfview/entities"
	"github.com/zooyer/dxfview/fonts"
	"github.com/zooyer/dxfview/handler"
	"github.com/zooyer/dxfview/roommap"
	"github.com/zooyer/dxfview/scene"
)

// ProgressFunc 进度回调，percent 取值 (0, 100]，返回 false 表示取消
type ProgressFunc func(ctx context.Context, percent float64) bool

// Stats 最近一次绘制的统计
type Stats struct {
	Total     int
	Drawn     int
	Skipped   int
	Cancelled bool
}

type Option func(*Source)

// WithLogger 指定日志，默认 slog.Default()
func WithLogger(log *slog.Logger) Option {
	return func(s *Source) {
		if log != nil {
			s.log = log
		}
	}
}

// WithFonts 共享字体缓存，多个 Source 可以共用
func WithFonts(cache *fonts.Cache) Option {
	return func(s *Source) {
		if cache != nil {
			s.fonts = cache
		}
	}
}

// WithCache 共享房间映射缓存
func WithCache(cache *roommap.Cache) Option {
	return func(s *Source) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// WithDrawContext 指定主题，Font 与 Overrides 会在绘制时填充
func WithDrawContext(dc handler.DrawContext) Option {
	return func(s *Source) {
		s.dc = dc
	}
}

// Source 一个文档的绘制入口，同一时刻只能有一次 Draw
type Source struct {
	doc     *dxf.Document
	log     *slog.Logger
	fonts   *fonts.Cache
	cache   *roommap.Cache
	dc      handler.DrawContext
	tracker *bounds.Tracker
	stats   Stats
}

func New(doc *dxf.Document, opts ...Option) *Source {
	s := &Source{
		doc:     doc,
		log:     slog.Default(),
		fonts:   fonts.NewCache(""),
		cache:   roommap.NewCache(),
		dc:      *handler.DefaultDrawContext(),
		tracker: bounds.NewTracker(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stride 进度回调间隔，约每 0.1% 回调一次，最小为 1
func Stride(n int) int {
	stride := int(math.Round(float64(n) / 1000))
	if stride < 1 {
		return 1
	}
	return stride
}

// Draw 绘制全部实体并返回累积范围。
// 单个实体失败只记录日志并跳过；字体加载失败和 ctx 结束会返回错误。
func (s *Source) Draw(ctx context.Context, sc scene.Scene, progress ProgressFunc) (bounds.Bounds, error) {
	s.tracker.Reset()
	s.stats = Stats{}

	font, err := s.fonts.Load(ctx)
	if err != nil {
		return s.tracker.Bounds(), fmt.Errorf("source: load font: %w", err)
	}

	var dc = s.dc
	dc.Font = font
	dc.Overrides = s.cache

	var ents []entities.Entity
	if s.doc != nil {
		ents = s.doc.Entities
	}

	var (
		total  = len(ents)
		stride = Stride(total)
		log    = s.log.With("entities", total)
	)
	s.stats.Total = total

	for i, entity := range ents {
		var counter = i + 1

		obj, err := handler.Process(entity, s.doc, &dc)
		if err != nil {
			s.stats.Skipped++
			log.Warn("skip entity", append(describe(entity), "index", i, "error", err)...)
		} else {
			sc.Add(obj)
			s.tracker.Accumulate(obj)
			s.stats.Drawn++
		}

		if counter%stride != 0 {
			continue
		}

		if progress != nil && !progress(ctx, float64(counter)*100/float64(total)) {
			s.stats.Cancelled = true
			log.Info("draw cancelled", "processed", counter)
			return s.tracker.Bounds(), nil
		}
		if err := ctx.Err(); err != nil {
			s.stats.Cancelled = true
			log.Info("draw cancelled", "processed", counter, "error", err)
			return s.tracker.Bounds(), err
		}
	}

	log.Debug("draw complete", "drawn", s.stats.Drawn, "skipped", s.stats.Skipped)

	return s.tracker.Bounds(), nil
}

func describe(entity entities.Entity) []any {
	if entity == nil {
		return []any{"type", "", "layer", ""}
	}
	return []any{"type", entity.Type(), "layer", entity.Layer()}
}

// Stats 最近一次绘制的统计
func (s *Source) Stats() Stats {
	return s.stats
}

// Bounds 当前累积范围
func (s *Source) Bounds() bounds.Bounds {
	return s.tracker.Bounds()
}

// Document 绘制的文档
func (s *Source) Document() *dxf.Document {
	return s.doc
}

// TransformRoomMapping 返回房间的填充几何，优先使用绘制时登记的替代几何
func (s *Source) TransformRoomMapping(m roommap.Mapping) *scene.Geometry {
	return s.cache.Transform(m)
}

// AddOverride 为一组顶点登记替代几何
func (s *Source) AddOverride(vertices []roommap.Vertex, g *scene.Geometry) {
	s.cache.AddOverride(vertices, g)
}

// RoomOpacity 房间叠加层的透明度
const RoomOpacity = 0.5

// DrawRoomMappings 以半透明网格叠加房间，颜色按类别分配
func (s *Source) DrawRoomMappings(sc scene.Scene, mappings []roommap.Mapping, palette *roommap.Palette) []*scene.Object {
	if palette == nil {
		palette = roommap.NewPalette(mappings)
	}

	var objs = make([]*scene.Object, 0, len(mappings))
	for _, m := range mappings {
		if len(m.Vertices) < 3 {
			s.log.Warn("skip room mapping", "room", m.Name, "vertices", len(m.Vertices))
			continue
		}

		obj := scene.NewObject(scene.KindMesh, s.TransformRoomMapping(m))
		obj.Layer = "ROOMS"
		obj.Color = palette.Color(m.Category)
		obj.Opacity = RoomOpacity
		obj.Attrs = map[string]string{"room": m.Name, "category": m.Category}

		sc.Add(obj)
		objs = append(objs, obj)
	}

	return objs
}
