package surface

import (
	"image/color"
	"math"
)

// Style 画布的可变样式状态
type Style struct {
	FillColor   color.NRGBA
	StrokeColor color.NRGBA
	LineWidth   float64
	FontFamily  string
	FontSize    float64
	GlobalAlpha float64
	Composite   CompositeMode
	ShadowColor color.NRGBA
	ShadowBlur  float64
}

// DefaultStyle 返回新画布的初始样式（与 HTML canvas 初始值一致）
func DefaultStyle() Style {
	return Style{
		FillColor:   color.NRGBA{A: 0xff},
		StrokeColor: color.NRGBA{A: 0xff},
		LineWidth:   1,
		FontFamily:  "sans-serif",
		FontSize:    10,
		GlobalAlpha: 1,
		Composite:   CompositeSourceOver,
	}
}

// StyleState 实现 Surface 的样式设置与 Save/Restore 栈
// 具体画布通过嵌入该类型获得全部样式方法
type StyleState struct {
	current Style
	stack   []Style
}

// NewStyleState 创建使用默认样式的状态
func NewStyleState() StyleState {
	return StyleState{current: DefaultStyle()}
}

func (s *StyleState) SetFillColor(c color.NRGBA)   { s.current.FillColor = c }
func (s *StyleState) SetStrokeColor(c color.NRGBA) { s.current.StrokeColor = c }
func (s *StyleState) SetComposite(m CompositeMode) { s.current.Composite = m }

// SetLineWidth 设置描边宽度，非正数或 NaN 被忽略
func (s *StyleState) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 0) {
		s.current.LineWidth = w
	}
}

// SetFont 设置字体族与像素字号
func (s *StyleState) SetFont(family string, size float64) {
	if family != "" {
		s.current.FontFamily = family
	}
	if size > 0 {
		s.current.FontSize = size
	}
}

// SetGlobalAlpha 设置全局透明度，超出 [0,1] 的值被忽略
func (s *StyleState) SetGlobalAlpha(a float64) {
	if a >= 0 && a <= 1 {
		s.current.GlobalAlpha = a
	}
}

// SetShadow 设置发光颜色与模糊半径，blur 为 0 表示关闭
func (s *StyleState) SetShadow(c color.NRGBA, blur float64) {
	s.current.ShadowColor = c
	if blur < 0 || math.IsNaN(blur) {
		blur = 0
	}
	s.current.ShadowBlur = blur
}

// Save 将当前样式压栈
func (s *StyleState) Save() {
	s.stack = append(s.stack, s.current)
}

// Restore 弹出最近一次保存的样式；栈为空时不做任何事
func (s *StyleState) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.current = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// State 返回当前样式副本
func (s *StyleState) State() Style {
	return s.current
}

// Depth 返回 Save 栈深度
func (s *StyleState) Depth() int {
	return len(s.stack)
}

// Premultiply 将非预乘颜色与额外透明度合成为预乘 RGBA
func Premultiply(c color.NRGBA, alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	a := float64(c.A) / 255 * alpha
	return color.RGBA{
		R: uint8(math.Round(float64(c.R) * a)),
		G: uint8(math.Round(float64(c.G) * a)),
		B: uint8(math.Round(float64(c.B) * a)),
		A: uint8(math.Round(255 * a)),
	}
}
