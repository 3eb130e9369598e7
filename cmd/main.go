package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/ncruces/zenity"
	"github.com/zooyer/golib/xos"

	"github.com/zooyer/dxfview"
	"github.com/zooyer/dxfview/bounds"
	"github.com/zooyer/dxfview/config"
	"github.com/zooyer/dxfview/export"
	"github.com/zooyer/dxfview/fonts"
	"github.com/zooyer/dxfview/roommap"
	"github.com/zooyer/dxfview/scene"
	"github.com/zooyer/dxfview/source"
)

// 用法: dxfview [图纸.dxf] [房间映射.csv]
// 不带参数时弹出文件选择框
func selectFiles(args []string) (drawing, mapping string, err error) {
	if len(args) > 0 {
		drawing = args[0]
	}
	if len(args) > 1 {
		mapping = args[1]
	}
	if drawing != "" {
		return
	}

	drawing, err = zenity.SelectFile(
		zenity.Title("选择 DXF 图纸"),
		zenity.FileFilters{{Name: "DXF 图纸", Patterns: []string{"*.dxf"}, CaseFold: true}},
	)
	if err != nil {
		return
	}

	// 房间映射可选，取消则只输出图纸
	mapping, err = zenity.SelectFile(
		zenity.Title("选择房间映射 (可取消)"),
		zenity.FileFilters{{Name: "CSV", Patterns: []string{"*.csv"}, CaseFold: true}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		mapping, err = "", nil
	}
	return
}

// progress 优先使用进度对话框，没有图形环境时输出到控制台
func progress(title string) (source.ProgressFunc, func()) {
	dlg, err := zenity.Progress(zenity.Title(title), zenity.MaxValue(100))
	if err != nil {
		var last = -1
		return func(ctx context.Context, percent float64) bool {
			if p := int(percent); p/10 != last/10 {
				last = p
				fmt.Printf("\r绘制中: %3d%%", p)
			}
			return true
		}, func() { fmt.Println() }
	}

	return func(ctx context.Context, percent float64) bool {
			select {
			case <-dlg.Done():
				// 点击了取消
				return false
			default:
			}
			_ = dlg.Value(int(percent))
			return true
		}, func() {
			_ = dlg.Complete()
			_ = dlg.Close()
		}
}

func readMappings(filename string, opts roommap.CSVOptions) ([]roommap.Mapping, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return roommap.ReadCSV(bufio.NewReader(file), opts)
}

func writeReport(filename string, mappings []roommap.Mapping) error {
	const header = "房间,类别,面积\n"
	if err := os.WriteFile(filename, []byte(header), 0644); err != nil {
		return err
	}

	var total float64
	for _, m := range mappings {
		area := m.Area()
		total += area

		line := fmt.Sprintf("%s,%s,%.2f\n", m.Name, m.Category, area)
		if err := xos.AppendFile(filename, []byte(line), 0644); err != nil {
			return err
		}
	}

	stat := fmt.Sprintf("共%d房间,,%.2f\n", len(mappings), total)
	return xos.AppendFile(filename, []byte(stat), 0644)
}

// writeSVG 写入文件，关闭失败同样视为写入失败
func writeSVG(filename string, objs []*scene.Object, vp bounds.Viewport, opts export.Options) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	out := bufio.NewWriter(file)
	if err = export.SVG(out, objs, vp, opts); err != nil {
		return err
	}
	return out.Flush()
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, _ := cfg.Level()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	drawing, mapping, err := selectFiles(args)
	if err != nil {
		return err
	}

	var opts []dxf.Option
	if enc, _ := cfg.Encoding(); enc != nil {
		opts = append(opts, dxf.WithEncoding(enc))
	}

	doc, err := dxf.Open(drawing, opts...)
	if err != nil {
		return fmt.Errorf("打开图纸失败: %w", err)
	}
	log.Info("document loaded", "file", drawing, "entities", len(doc.Entities), "blocks", len(doc.Blocks))

	var (
		graph = scene.NewGraph()
		src   = source.New(doc,
			source.WithLogger(log),
			source.WithFonts(fonts.NewCache(cfg.FontPath)),
			source.WithDrawContext(cfg.DrawContext()),
		)
		callback, done = progress("绘制 " + filepath.Base(drawing))
	)
	defer graph.Dispose()

	b, err := src.Draw(ctx, graph, callback)
	done()
	if err != nil {
		return fmt.Errorf("绘制失败: %w", err)
	}

	st := src.Stats()
	fmt.Printf("共%d实体, 绘制%d, 跳过%d\n", st.Total, st.Drawn, st.Skipped)
	if st.Cancelled {
		fmt.Println("已取消，输出部分结果")
	}

	var base = strings.TrimSuffix(drawing, filepath.Ext(drawing))

	if mapping != "" {
		mappings, err := readMappings(mapping, cfg.CSVOptions())
		if err != nil {
			return fmt.Errorf("读取房间映射失败: %w", err)
		}

		palette := roommap.NewPalette(mappings)
		rooms := src.DrawRoomMappings(graph, mappings, palette)
		for _, category := range palette.Categories() {
			fmt.Printf("    [%s] %s\n", palette.Color(category).Hex(), category)
		}

		report := base + ".rooms.csv"
		if err = writeReport(report, mappings); err != nil {
			return err
		}
		fmt.Printf("房间 %d 个, 写入文件: %s\n", len(rooms), report)
	}

	var (
		vp       = bounds.ViewportOf(b, float64(cfg.Width), float64(cfg.Height))
		filename = base + ".svg"
	)
	svgOpts := export.DefaultOptions()
	svgOpts.Width, svgOpts.Height = cfg.Width, cfg.Height
	svgOpts.Background = cfg.BackgroundColor
	svgOpts.Title = filepath.Base(drawing)

	if err = writeSVG(filename, graph.Objects(), vp, svgOpts); err != nil {
		return err
	}
	fmt.Println("写入文件:", filename)

	return nil
}

func main() {
	defer xos.PauseExit()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return
		}
		fmt.Println("错误:", err)
	}
}
