package roommap

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zooyer/dxfview/scene"
)

// CSVOptions 房间映射 CSV 的列设置
type CSVOptions struct {
	Delimiter      string
	RoomNameHeader string
	CategoryHeader string
	PolygonHeader  string
}

// DefaultCSVOptions 上传对话框的默认列设置
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter:      ",",
		RoomNameHeader: "RoomNumber",
		CategoryHeader: "Cluster",
		PolygonHeader:  "Polygon",
	}
}

// ReadCSV 读取房间映射，多边形列形如 "[(x, y), (x, y), ...]"
func ReadCSV(r io.Reader, opts CSVOptions) ([]Mapping, error) {
	var defaults = DefaultCSVOptions()
	if opts.Delimiter == "" {
		opts.Delimiter = defaults.Delimiter
	}
	if opts.RoomNameHeader == "" {
		opts.RoomNameHeader = defaults.RoomNameHeader
	}
	if opts.CategoryHeader == "" {
		opts.CategoryHeader = defaults.CategoryHeader
	}
	if opts.PolygonHeader == "" {
		opts.PolygonHeader = defaults.PolygonHeader
	}

	delimiter, size := utf8.DecodeRuneInString(opts.Delimiter)
	if size != len(opts.Delimiter) {
		return nil, fmt.Errorf("roommap: delimiter must be a single character, got %q", opts.Delimiter)
	}

	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("roommap: read header: %w", err)
	}

	var columns = make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	var index = func(name string) (int, error) {
		i, ok := columns[name]
		if !ok {
			return 0, fmt.Errorf("roommap: missing column %q", name)
		}
		return i, nil
	}

	nameCol, err := index(opts.RoomNameHeader)
	if err != nil {
		return nil, err
	}
	categoryCol, err := index(opts.CategoryHeader)
	if err != nil {
		return nil, err
	}
	polygonCol, err := index(opts.PolygonHeader)
	if err != nil {
		return nil, err
	}

	var mappings []Mapping
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("roommap: %w", err)
		}

		line, _ := reader.FieldPos(0)
		vertices, err := ParsePolygon(record[polygonCol])
		if err != nil {
			return nil, fmt.Errorf("roommap: line %d: %w", line, err)
		}

		mappings = append(mappings, Mapping{
			Name:     record[nameCol],
			Category: record[categoryCol],
			Vertices: vertices,
		})
	}

	return mappings, nil
}

// ParsePolygon 解析 "[(x, y), (x, y), ...]"
func ParsePolygon(s string) ([]Vertex, error) {
	var body = strings.TrimSpace(s)
	body = strings.TrimPrefix(body, "[")
	body = strings.TrimSuffix(body, "]")
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}

	var parts = strings.Split(body, ",")
	if len(parts)%2 != 0 {
		return nil, fmt.Errorf("invalid polygon %q: odd number of coordinates", s)
	}

	var vertices = make([]Vertex, 0, len(parts)/2)
	for i := 0; i < len(parts); i += 2 {
		var (
			first  = strings.TrimPrefix(strings.TrimSpace(parts[i]), "(")
			second = strings.TrimSuffix(strings.TrimSpace(parts[i+1]), ")")
		)
		x, err := strconv.ParseFloat(strings.TrimSpace(first), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid polygon %q: %w", s, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(second), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid polygon %q: %w", s, err)
		}
		vertices = append(vertices, Vertex{X: x, Y: y})
	}

	return vertices, nil
}

// 图例默认配色
var paletteColors = []scene.Color{
	0x1F77B4, 0xFF7F0E, 0x2CA02C, 0xD62728, 0x9467BD,
	0x8C564B, 0xE377C2, 0x7F7F7F, 0xBCBD22, 0x17BECF,
}

// Palette 按类别首次出现的顺序分配颜色
type Palette struct {
	order  []string
	colors map[string]scene.Color
}

// NewPalette 依次登记映射中的类别
func NewPalette(mappings []Mapping) *Palette {
	p := &Palette{colors: make(map[string]scene.Color)}
	for _, m := range mappings {
		p.Color(m.Category)
	}
	return p
}

// Color 返回类别颜色，新类别会被登记
func (p *Palette) Color(category string) scene.Color {
	if c, ok := p.colors[category]; ok {
		return c
	}
	if p.colors == nil {
		p.colors = make(map[string]scene.Color)
	}
	var c = paletteColors[len(p.order)%len(paletteColors)]
	p.order = append(p.order, category)
	p.colors[category] = c
	return c
}

// Categories 按登记顺序返回类别
func (p *Palette) Categories() []string {
	return append([]string(nil), p.order...)
}
