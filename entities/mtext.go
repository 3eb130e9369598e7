package entities

import (
	"regexp"
	"strings"

	"github.com/zooyer/dxfview/core"
)

type MText struct {
	BaseEntity
	Position        core.Point // 组码 10/20/30 插入点
	Height          float64    // 组码 40 名义字高
	RectWidth       float64    // 组码 41 参考矩形宽度
	AttachmentPoint int        // 组码 71
	Direction       core.Point // 组码 11/21/31 X 轴方向向量
	Rotation        float64    // 组码 50，角度制
	StyleName       string     // 组码 7
	Text            string     // 组码 3 + 组码 1
}

func init() {
	Register("MTEXT", func() Entity { return &MText{BaseEntity: newBase("MTEXT")} })
}

func (m *MText) Parse(s *core.Scanner) error {
	var chunks []string
	for {
		t := s.LastTag
		if !m.parseCommon(t) {
			switch t.Code {
			case 10:
				m.Position.X = t.AsFloat()
			case 20:
				m.Position.Y = t.AsFloat()
			case 30:
				m.Position.Z = t.AsFloat()
			case 40:
				m.Height = t.AsFloat()
			case 41:
				m.RectWidth = t.AsFloat()
			case 71:
				m.AttachmentPoint = t.AsInt()
			case 11:
				m.Direction.X = t.AsFloat()
			case 21:
				m.Direction.Y = t.AsFloat()
			case 31:
				m.Direction.Z = t.AsFloat()
			case 50:
				m.Rotation = t.AsFloat()
			case 7:
				m.StyleName = t.AsString()
			case 3, 1:
				// 长文本按 250 字符拆到多个组码 3，最后一段是组码 1
				chunks = append(chunks, t.Value)
			}
		}
		if !next(s) {
			break
		}
	}
	m.Text = strings.Join(chunks, "")
	return nil
}

var (
	reFormat = regexp.MustCompile(`\\[ACFHQTWfhqtw][^;]*;`)
	reSwitch = regexp.MustCompile(`\\[LlOoKk]`)
)

// PlainText 去掉格式控制符，\P 转换为换行
func (m *MText) PlainText() string {
	text := reFormat.ReplaceAllString(m.Text, "")
	text = reSwitch.ReplaceAllString(text, "")
	text = strings.NewReplacer(`\P`, "\n", `\~`, " ", "{", "", "}", "").Replace(text)
	return text
}

func (m *MText) BBox() core.BBox {
	// 没有字体度量时只能以插入点作为包围盒
	return core.BBox{Min: m.Position, Max: m.Position}
}
