package dxf

import (
	"bytes"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/zooyer/dxfview/core"
	"github.com/zooyer/dxfview/entities"
)

type DimStyle struct {
	Name      string
	Precision int     // 对应组码 271 DIMDEC，显示的小数位数
	ExLimit   float64 // 对应组码 44 DIMEXE，标注线超出延伸线的长度
	Scale     float64 // 对应组码 40 DIMSCALE，全局比例，影响所有标注特征)
}

// Layer 图层表中的一项
type Layer struct {
	Name        string
	ColorNumber int    // 组码 62，负数表示图层关闭
	LineType    string // 组码 6
	Flags       int    // 组码 70
}

// Style 文字样式表中的一项
type Style struct {
	Name        string
	FixedHeight float64 // 组码 40，0 表示不固定
	WidthFactor float64 // 组码 41
	FontFile    string  // 组码 3
}

type Block struct {
	Name     string
	Entities []entities.Entity
}

type Document struct {
	Blocks    map[string]*Block
	Entities  []entities.Entity
	Layers    map[string]*Layer
	Styles    map[string]*Style
	DimStyles map[string]*DimStyle
	CodePage  string // 头段 $DWGCODEPAGE
}

// NewDocument 创建空文档，供程序构造或测试使用
func NewDocument() *Document {
	return &Document{
		Blocks:    make(map[string]*Block),
		Entities:  make([]entities.Entity, 0, 1024),
		Layers:    make(map[string]*Layer),
		Styles:    make(map[string]*Style),
		DimStyles: make(map[string]*DimStyle),
	}
}

// Block 按名称查找块定义(不区分大小写)
func (d *Document) Block(name string) (*Block, bool) {
	block, ok := d.Blocks[strings.ToUpper(name)]
	return block, ok
}

// Layer 按名称查找图层(不区分大小写)
func (d *Document) Layer(name string) (*Layer, bool) {
	layer, ok := d.Layers[strings.ToUpper(name)]
	return layer, ok
}

func (d *Document) parseHeader(scanner *core.Scanner) {
	var variable string
	for scanner.Next() {
		tag := scanner.LastTag
		if tag.Code == 0 && strings.ToUpper(tag.Value) == "ENDSEC" {
			break
		}
		if tag.Code == 9 {
			variable = strings.ToUpper(tag.AsString())
			continue
		}
		if variable == "$DWGCODEPAGE" && tag.Code == 3 {
			d.CodePage = strings.ToUpper(tag.AsString())
		}
	}
}

func (d *Document) parseBlocks(scanner *core.Scanner) {
	var currentBlock *Block
	for scanner.Next() {
		tag := scanner.LastTag
		if tag.Code == 0 && strings.ToUpper(tag.Value) == "ENDSEC" {
			break
		}
		if tag.Code == 0 && strings.ToUpper(tag.Value) == "BLOCK" {
			currentBlock = &Block{Entities: []entities.Entity{}}
			for scanner.Next() {
				if scanner.LastTag.Code == 2 {
					currentBlock.Name = strings.ToUpper(scanner.LastTag.AsString())
					break
				}
				if scanner.LastTag.Code == 0 {
					break
				}
			}
			d.Blocks[currentBlock.Name] = currentBlock
		}
		// 块内实体解析完后 LastTag 已是下一个组码 0，需要在不前进的情况下继续判断
		for currentBlock != nil && scanner.LastTag.Code == 0 {
			value := scanner.LastTag.Value
			if value == "BLOCK" || value == "ENDBLK" || strings.ToUpper(value) == "ENDSEC" {
				break
			}
			ent := entities.CreateEntity(value)
			if ent == nil {
				break
			}
			_ = ent.Parse(scanner)
			currentBlock.Entities = append(currentBlock.Entities, ent)
		}
		if scanner.LastTag.Code == 0 && strings.ToUpper(scanner.LastTag.Value) == "ENDSEC" {
			break
		}
	}
}

func (d *Document) parseEntities(scanner *core.Scanner) {
	for {
		tag := scanner.LastTag
		if tag.Code == 0 && strings.ToUpper(tag.Value) == "ENDSEC" {
			break
		}
		if tag.Code == 0 {
			ent := entities.CreateEntity(tag.Value)
			if ent != nil {
				_ = ent.Parse(scanner)
				d.Entities = append(d.Entities, ent)
				continue
			}
		}
		if !scanner.Next() {
			break
		}
	}
}

func (d *Document) parseTables(scanner *core.Scanner) {
	for scanner.Next() {
		tag := scanner.LastTag
		if tag.Code == 0 && strings.ToUpper(tag.Value) == "ENDSEC" {
			break
		}
		if tag.Code == 0 && strings.ToUpper(tag.Value) == "TABLE" {
			scanner.Next()
			tableName := strings.ToUpper(scanner.LastTag.Value)
			switch tableName {
			case "DIMSTYLE":
				d.parseDimStyles(scanner)
			case "LAYER":
				d.parseLayers(scanner)
			case "STYLE":
				d.parseStyles(scanner)
			}
		}
	}
}

func (d *Document) parseLayers(scanner *core.Scanner) {
	for {
		tag := scanner.LastTag
		if tag.Code == 0 && strings.ToUpper(tag.Value) == "ENDTAB" {
			break
		}

		if tag.Code == 0 && strings.ToUpper(tag.Value) == "LAYER" {
			layer := &Layer{ColorNumber: 7}
			for scanner.Next() {
				t := scanner.LastTag
				if t.Code == 0 {
					break
				}
				switch t.Code {
				case 2:
					layer.Name = t.AsString()
				case 62:
					layer.ColorNumber = t.AsInt()
				case 6:
					layer.LineType = t.AsString()
				case 70:
					layer.Flags = t.AsInt()
				}
			}
			if layer.Name != "" {
				d.Layers[strings.ToUpper(layer.Name)] = layer
			}
			continue
		}

		if !scanner.Next() {
			break
		}
	}
}

func (d *Document) parseStyles(scanner *core.Scanner) {
	for {
		tag := scanner.LastTag
		if tag.Code == 0 && strings.ToUpper(tag.Value) == "ENDTAB" {
			break
		}

		if tag.Code == 0 && strings.ToUpper(tag.Value) == "STYLE" {
			style := &Style{WidthFactor: 1}
			for scanner.Next() {
				t := scanner.LastTag
				if t.Code == 0 {
					break
				}
				switch t.Code {
				case 2:
					style.Name = t.AsString()
				case 40:
					style.FixedHeight = t.AsFloat()
				case 41:
					style.WidthFactor = t.AsFloat()
				case 3:
					style.FontFile = t.AsString()
				}
			}
			if style.Name != "" {
				d.Styles[strings.ToUpper(style.Name)] = style
			}
			continue
		}

		if !scanner.Next() {
			break
		}
	}
}

func (d *Document) parseDimStyles(scanner *core.Scanner) {
	var currentStyle *DimStyle
	for {
		tag := scanner.LastTag
		if tag.Code == 0 && strings.ToUpper(tag.Value) == "ENDTAB" {
			break
		}

		if tag.Code == 0 && strings.ToUpper(tag.Value) == "DIMSTYLE" {
			currentStyle = &DimStyle{
				Precision: 0,
				ExLimit:   0.0,
				Scale:     1.0, // 默认为 1.0，防止乘法归零
			}

			for scanner.Next() {
				t := scanner.LastTag
				if t.Code == 0 {
					break
				}
				switch t.Code {
				case 2: // 样式名称
					currentStyle.Name = strings.ToUpper(t.Value)
				case 271: // 精度
					currentStyle.Precision = t.AsInt()
				case 44: // 标注线超出延伸线长度 (DIMEXE)
					currentStyle.ExLimit = t.AsFloat()
				case 40: // 全局标注比例 (DIMSCALE)
					currentStyle.Scale = t.AsFloat()
				}
			}

			if currentStyle.Name != "" {
				d.DimStyles[currentStyle.Name] = currentStyle
			}

			if scanner.LastTag.Code == 0 && strings.ToUpper(scanner.LastTag.Value) == "DIMSTYLE" {
				continue
			}
		}

		if !scanner.Next() {
			break
		}
	}
}

type options struct {
	encoding encoding.Encoding
}

// Option 控制文档读取方式
type Option func(*options)

// WithEncoding 指定文本编码，跳过自动检测
func WithEncoding(enc encoding.Encoding) Option {
	return func(o *options) {
		o.encoding = enc
	}
}

// DetectEncoding 根据 $DWGCODEPAGE 推断旧版 DXF 的文本编码。
// R2007 之后的文件一律是 UTF-8，此时返回 nil。
func DetectEncoding(data []byte) encoding.Encoding {
	if utf8.Valid(data) {
		return nil
	}

	header := data
	if idx := bytes.Index(data, []byte("ENTITIES")); idx > 0 {
		header = data[:idx]
	}
	header = bytes.ToUpper(header)

	switch {
	case bytes.Contains(header, []byte("ANSI_936")), bytes.Contains(header, []byte("GB2312")):
		return simplifiedchinese.GBK
	case bytes.Contains(header, []byte("GB18030")):
		return simplifiedchinese.GB18030
	}

	return nil
}

func Open(filename string, opts ...Option) (doc *Document, err error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.encoding == nil {
		if enc := DetectEncoding(data); enc != nil {
			opts = append(opts, WithEncoding(enc))
		}
	}

	return Load(bytes.NewReader(data), opts...)
}

func Load(reader io.Reader, opts ...Option) (doc *Document, err error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.encoding != nil {
		reader = transform.NewReader(reader, o.encoding.NewDecoder())
	}

	var (
		scanner  = core.NewScanner(reader)
		document = NewDocument()
	)

	for scanner.Next() {
		tag := scanner.LastTag
		if tag.Code == 0 && strings.ToUpper(tag.Value) == "SECTION" {
			if !scanner.Next() {
				break
			}
			sectionName := strings.ToUpper(scanner.LastTag.Value)
			switch sectionName {
			case "HEADER":
				document.parseHeader(scanner)
			case "TABLES":
				document.parseTables(scanner)
			case "BLOCKS":
				document.parseBlocks(scanner)
			case "ENTITIES":
				document.parseEntities(scanner)
			}
		}
	}

	return document, scanner.Err()
}
