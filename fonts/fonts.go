// Package fonts 加载绘制文字所需的字体资源。
package fonts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/singleflight"
)

// ErrFontUnavailable 字体无法加载
var ErrFontUnavailable = errors.New("fonts: font unavailable")

// Font 已解析的字体
type Font struct {
	Name string
	font *opentype.Font
	upem fixed.Int26_6
	mu   sync.Mutex
	buf  sfnt.Buffer
}

// Parse 解析 TTF/OTF 数据
func Parse(name string, data []byte) (*Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontUnavailable, name, err)
	}
	return &Font{
		Name: name,
		font: f,
		upem: fixed.I(int(f.UnitsPerEm())),
	}, nil
}

// Measure 按字高测量文字范围，多行取最宽一行
func (f *Font) Measure(text string, height float64) (width, total float64) {
	if f == nil || height <= 0 {
		return 0, 0
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var (
		lines  = 1
		line   fixed.Int26_6
		widest fixed.Int26_6
	)
	for _, r := range text {
		if r == '\n' {
			lines++
			line = 0
			continue
		}
		index, err := f.font.GlyphIndex(&f.buf, r)
		if err != nil {
			continue
		}
		// ppem 取 units-per-em，得到的步进即为字体单位
		advance, err := f.font.GlyphAdvance(&f.buf, index, f.upem, font.HintingNone)
		if err != nil {
			continue
		}
		line += advance
		if line > widest {
			widest = line
		}
	}

	var scale = height / (float64(f.upem) / 64)
	width = float64(widest) / 64 * scale
	total = float64(lines) * height
	return width, total
}

// Cache 字体只加载一次，并发调用共享同一次加载
type Cache struct {
	Path string // 为空时使用内嵌的 Go Regular

	// ReadFile 读取字体文件，默认 os.ReadFile
	ReadFile func(name string) ([]byte, error)

	group singleflight.Group
	mu    sync.Mutex
	font  *Font
}

// NewCache 创建字体缓存
func NewCache(path string) *Cache {
	return &Cache{Path: path}
}

// Load 返回字体。成功后结果被缓存，失败不缓存，下次调用会重新加载。
func (c *Cache) Load(ctx context.Context) (*Font, error) {
	c.mu.Lock()
	if c.font != nil {
		f := c.font
		c.mu.Unlock()
		return f, nil
	}
	c.mu.Unlock()

	ch := c.group.DoChan(c.Path, func() (any, error) {
		f, err := c.load()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.font = f
		c.mu.Unlock()
		return f, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Font), nil
	}
}

// Loaded 已缓存的字体，未加载时为 nil
func (c *Cache) Loaded() *Font {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.font
}

func (c *Cache) load() (*Font, error) {
	if c.Path == "" {
		return Parse("goregular", goregular.TTF)
	}

	var read = c.ReadFile
	if read == nil {
		read = os.ReadFile
	}

	data, err := read(c.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontUnavailable, err)
	}

	return Parse(c.Path, data)
}
