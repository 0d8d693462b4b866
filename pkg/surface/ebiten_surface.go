package surface

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// FontResolver 根据字体族和字号返回 text/v2 字体
// 找不到时返回 nil，此时 FillText 不绘制任何内容
type FontResolver interface {
	Face(family string, size float64) text.Face
}

// glowTaps 发光效果的采样方向（单位圆上 8 个方向）
var glowTaps = [8][2]float64{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{0.7071, 0.7071}, {-0.7071, 0.7071}, {0.7071, -0.7071}, {-0.7071, -0.7071},
}

// glowTapAlpha 每个发光采样的透明度系数
const glowTapAlpha = 0.12

// EbitenSurface 基于离屏 *ebiten.Image 的画布
//
// 画布内容跨帧保留（与 HTML canvas 一致），拖尾效果依赖这一点。
// Resize 会重新分配图像，原有内容被清空。
type EbitenSurface struct {
	StyleState
	canvas *ebiten.Image
	pixel  *ebiten.Image // 1x1 白色像素，用于带混合模式的矩形绘制
	fonts  FontResolver
}

// NewEbitenSurface 创建指定尺寸的离屏画布
func NewEbitenSurface(width, height int, fonts FontResolver) *EbitenSurface {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)

	s := &EbitenSurface{
		StyleState: NewStyleState(),
		pixel:      pixel,
		fonts:      fonts,
	}
	s.Resize(width, height)
	return s
}

// Image 返回离屏画布，宿主在 Draw 中将其绘制到屏幕
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.canvas
}

// Size 返回画布尺寸
func (s *EbitenSurface) Size() (int, int) {
	b := s.canvas.Bounds()
	return b.Dx(), b.Dy()
}

// Resize 重新分配画布；尺寸至少为 1x1（ebiten.NewImage 不接受 0）
func (s *EbitenSurface) Resize(width, height int) {
	width = max(width, 1)
	height = max(height, 1)
	if s.canvas != nil {
		if w, h := s.Size(); w == width && h == height {
			return
		}
		s.canvas.Deallocate()
	}
	s.canvas = ebiten.NewImage(width, height)
}

// FillRect 以当前填充色填充矩形
func (s *EbitenSurface) FillRect(x, y, w, h float64) {
	x, y, w, h = normalizeRect(x, y, w, h)
	if w == 0 || h == 0 {
		return
	}
	st := s.State()
	clr := Premultiply(st.FillColor, st.GlobalAlpha)
	if st.Composite == CompositeSourceOver {
		vector.DrawFilledRect(s.canvas, float32(x), float32(y), float32(w), float32(h), clr, false)
		return
	}
	s.drawQuad(x, y, w, h, clr, st.Composite)
}

// StrokeRect 以当前描边色和线宽描边矩形，线条以边为中心
func (s *EbitenSurface) StrokeRect(x, y, w, h float64) {
	x, y, w, h = normalizeRect(x, y, w, h)
	st := s.State()
	clr := Premultiply(st.StrokeColor, st.GlobalAlpha)
	lw := st.LineWidth
	if st.Composite == CompositeSourceOver {
		vector.StrokeRect(s.canvas, float32(x), float32(y), float32(w), float32(h), float32(lw), clr, false)
		return
	}

	// 加色混合下重叠部分会被叠加两次
	for _, q := range StrokeQuads(x, y, w, h, lw) {
		s.drawQuad(q.X, q.Y, q.W, q.H, clr, st.Composite)
	}
}

// FillText 在基线位置 (x, y) 绘制字符，若设置了发光则先绘制发光层
func (s *EbitenSurface) FillText(glyph string, x, y float64) {
	if s.fonts == nil || glyph == "" {
		return
	}
	st := s.State()
	face := s.fonts.Face(st.FontFamily, st.FontSize)
	if face == nil {
		return
	}
	top := y - face.Metrics().HAscent

	if st.ShadowBlur > 0 && st.ShadowColor.A > 0 {
		glow := Premultiply(st.ShadowColor, st.GlobalAlpha*glowTapAlpha)
		for _, radius := range []float64{st.ShadowBlur / 2, st.ShadowBlur} {
			for _, tap := range glowTaps {
				s.drawText(glyph, face, x+tap[0]*radius, top+tap[1]*radius, glow, st.Composite)
			}
		}
	}

	s.drawText(glyph, face, x, top, Premultiply(st.FillColor, st.GlobalAlpha), st.Composite)
}

func (s *EbitenSurface) drawText(glyph string, face text.Face, x, y float64, clr color.RGBA, mode CompositeMode) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.Blend = blendFor(mode)
	text.Draw(s.canvas, glyph, face, op)
}

func (s *EbitenSurface) drawQuad(x, y, w, h float64, clr color.RGBA, mode CompositeMode) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.Blend = blendFor(mode)
	s.canvas.DrawImage(s.pixel, op)
}

// blendFor 将合成模式映射到 Ebitengine 混合方式
func blendFor(mode CompositeMode) ebiten.Blend {
	if mode == CompositeLighter {
		return ebiten.BlendLighter
	}
	return ebiten.BlendSourceOver
}

// normalizeRect 将负宽高的矩形规范化为正宽高
func normalizeRect(x, y, w, h float64) (float64, float64, float64, float64) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	if math.IsNaN(w) || math.IsNaN(h) {
		return x, y, 0, 0
	}
	return x, y, w, h
}
