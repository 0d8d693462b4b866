// Package surface 定义动画绘制所用的 2D 栅格画布抽象
//
// 画布由宿主环境创建（Ebitengine 窗口、终端等），效果组件只持有引用。
// 样式状态（填充色、描边色、透明度、混合模式、发光）通过 StyleState 统一实现，
// 具体画布只需实现几何绘制原语。
package surface

import (
	"image/color"
)

// CompositeMode 合成模式
type CompositeMode int

const (
	// CompositeSourceOver 普通 alpha 叠加（默认）
	CompositeSourceOver CompositeMode = iota
	// CompositeLighter 加色混合，源颜色与目标颜色相加
	CompositeLighter
)

// String 返回合成模式名称
func (m CompositeMode) String() string {
	switch m {
	case CompositeSourceOver:
		return "source-over"
	case CompositeLighter:
		return "lighter"
	default:
		return "unknown"
	}
}

// Surface 是效果组件使用的绘制目标
//
// 坐标单位为像素，原点在左上角。FillText 的 y 为文字基线位置。
type Surface interface {
	// Size 返回当前画布尺寸
	Size() (width, height int)
	// Resize 修改画布尺寸
	Resize(width, height int)

	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	FillText(glyph string, x, y float64)

	SetFillColor(c color.NRGBA)
	SetStrokeColor(c color.NRGBA)
	SetLineWidth(w float64)
	SetFont(family string, size float64)
	SetGlobalAlpha(a float64)
	SetComposite(m CompositeMode)
	SetShadow(c color.NRGBA, blur float64)

	// Save 将当前样式压栈，Restore 弹栈恢复
	Save()
	Restore()

	// State 返回当前样式的副本
	State() Style
}

// WithSaved 在 Save/Restore 作用域内执行 fn
// 即使 fn 发生 panic，样式也会被恢复
func WithSaved(s Surface, fn func()) {
	s.Save()
	defer s.Restore()
	fn()
}
