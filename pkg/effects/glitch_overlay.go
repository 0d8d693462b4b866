package effects

import (
	"image/color"

	"github.com/decker502/matrixrain/pkg/surface"
)

// GlitchOptions 故障叠加层参数
type GlitchOptions struct {
	Probability float64 // 每次 Tick 触发一次故障的概率
	Alpha       float64
	Color       color.NRGBA
	LineWidth   float64
	RectCount   int
	MinWidth    float64 // 矩形宽度范围 [MinWidth, MaxWidth)
	MaxWidth    float64
	MinHeight   float64 // 矩形高度范围 [MinHeight, MaxHeight)
	MaxHeight   float64
}

// DefaultGlitchOptions 返回默认参数
func DefaultGlitchOptions() GlitchOptions {
	return GlitchOptions{
		Probability: 0.03,
		Alpha:       0.2,
		Color:       color.NRGBA{R: 0xff, A: 0xff},
		LineWidth:   2,
		RectCount:   5,
		MinWidth:    50,
		MaxWidth:    250,
		MinHeight:   2,
		MaxHeight:   12,
	}
}

// GlitchOverlay 在数字雨上随机绘制短暂的红色条纹，不持有任何持久状态
type GlitchOverlay struct {
	opts GlitchOptions
	rng  Random
}

// NewGlitchOverlay 创建故障叠加层
func NewGlitchOverlay(opts GlitchOptions, rng Random) *GlitchOverlay {
	return &GlitchOverlay{opts: opts, rng: rng}
}

// Tick 按概率绘制一次故障，返回是否绘制
func (g *GlitchOverlay) Tick(s surface.Surface) bool {
	if !chance(g.rng, g.opts.Probability) {
		return false
	}

	surface.WithSaved(s, func() {
		g.burst(s)
	})
	return true
}

func (g *GlitchOverlay) burst(s surface.Surface) {
	width, height := s.Size()

	s.SetComposite(surface.CompositeLighter)
	s.SetGlobalAlpha(g.opts.Alpha)
	s.SetStrokeColor(g.opts.Color)
	s.SetLineWidth(g.opts.LineWidth)

	for i := 0; i < g.opts.RectCount; i++ {
		x := g.rng.Float64() * float64(width)
		y := g.rng.Float64() * float64(height)
		w := g.opts.MinWidth + g.rng.Float64()*(g.opts.MaxWidth-g.opts.MinWidth)
		h := g.opts.MinHeight + g.rng.Float64()*(g.opts.MaxHeight-g.opts.MinHeight)
		s.StrokeRect(x, y, w, h)
	}
}
