// Package config 从环境变量读取查看器设置，前缀 DXFVIEW。
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/zooyer/dxfview/handler"
	"github.com/zooyer/dxfview/roommap"
	"github.com/zooyer/dxfview/scene"
)

const Prefix = "DXFVIEW"

type Config struct {
	Divisions         int         `envconfig:"DIVISIONS" default:"32"`
	ContrastColor     scene.Color `envconfig:"CONTRAST_COLOR" default:"#000000"`
	BackgroundColor   scene.Color `envconfig:"BACKGROUND_COLOR" default:"#ffffff"`
	DefaultColor      scene.Color `envconfig:"DEFAULT_COLOR" default:"#000000"`
	DefaultTextHeight float64     `envconfig:"DEFAULT_TEXT_HEIGHT" default:"11"`
	FontPath          string      `envconfig:"FONT_PATH"` // 空则使用内置字体

	Width  int `envconfig:"WIDTH" default:"1920"`
	Height int `envconfig:"HEIGHT" default:"1080"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	CodePage string `envconfig:"CODE_PAGE" default:"auto"` // auto, utf8, gbk, gb18030

	CSVDelimiter   string `envconfig:"CSV_DELIMITER" default:","`
	RoomNameHeader string `envconfig:"ROOM_NAME_HEADER" default:"RoomNumber"`
	CategoryHeader string `envconfig:"CATEGORY_HEADER" default:"Cluster"`
	PolygonHeader  string `envconfig:"POLYGON_HEADER" default:"Polygon"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if cfg.Divisions < 3 {
		return nil, fmt.Errorf("config: %s_DIVISIONS must be at least 3, got %d", Prefix, cfg.Divisions)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("config: invalid canvas size %dx%d", cfg.Width, cfg.Height)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	if _, err := cfg.Encoding(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DrawContext 绘制主题，字体由 source 加载后填充
func (c *Config) DrawContext() handler.DrawContext {
	return handler.DrawContext{
		Divisions:         c.Divisions,
		Contrast:          c.ContrastColor,
		Background:        c.BackgroundColor,
		DefaultColor:      c.DefaultColor,
		DefaultTextHeight: c.DefaultTextHeight,
	}
}

func (c *Config) CSVOptions() roommap.CSVOptions {
	return roommap.CSVOptions{
		Delimiter:      c.CSVDelimiter,
		RoomNameHeader: c.RoomNameHeader,
		CategoryHeader: c.CategoryHeader,
		PolygonHeader:  c.PolygonHeader,
	}
}

// Level 日志级别，接受 debug/info/warn/error
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: %s_LOG_LEVEL: %w", Prefix, err)
	}
	return level, nil
}

// Encoding 文本编码，auto 和 utf8 返回 nil，由文档自行检测
func (c *Config) Encoding() (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(c.CodePage)) {
	case "", "auto", "utf8", "utf-8":
		return nil, nil
	case "gbk", "ansi_936", "gb2312":
		return simplifiedchinese.GBK, nil
	case "gb18030":
		return simplifiedchinese.GB18030, nil
	}
	return nil, fmt.Errorf("config: unsupported code page %q", c.CodePage)
}
