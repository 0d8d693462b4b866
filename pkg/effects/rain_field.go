package effects

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/matrixrain/pkg/surface"
)

// ResizePolicy 画布尺寸变化时列状态的处理策略
type ResizePolicy string

const (
	// ResizeRederive 按新宽度重新计算列数，保留仍然存在的列的头部行
	ResizeRederive ResizePolicy = "rederive"
	// ResizePreserve 保持初始列数不变（原始行为），新宽度之外的列绘制在画布外
	ResizePreserve ResizePolicy = "preserve"
)

// ParseResizePolicy 解析策略名称，空字符串返回默认策略
func ParseResizePolicy(s string) (ResizePolicy, error) {
	switch ResizePolicy(s) {
	case "":
		return ResizeRederive, nil
	case ResizeRederive, ResizePreserve:
		return ResizePolicy(s), nil
	}
	return "", fmt.Errorf("unknown resize policy %q (want %q or %q)", s, ResizeRederive, ResizePreserve)
}

// RainOptions 数字雨参数
type RainOptions struct {
	FontSize         int
	FontFamily       string
	FadeColor        color.NRGBA
	FadeAlpha        float64 // 每次 Tick 覆盖整个画布的半透明矩形透明度
	GlyphColor       color.NRGBA
	GlowBlur         float64 // 字符发光半径（像素）
	ResetProbability float64 // 每列每次 Tick 回到顶部的概率
	ResizePolicy     ResizePolicy
}

// DefaultRainOptions 返回默认参数
func DefaultRainOptions() RainOptions {
	return RainOptions{
		FontSize:         18,
		FontFamily:       "Share Tech Mono",
		FadeColor:        color.NRGBA{A: 0xff},
		FadeAlpha:        0.08,
		GlyphColor:       color.NRGBA{R: 0x39, G: 0xff, B: 0x14, A: 0xff},
		GlowBlur:         8,
		ResetProbability: 0.025,
		ResizePolicy:     ResizeRederive,
	}
}

// RainField 每列一条下落字符流
//
// drops[i] 是第 i 列下一次绘制所在的行（以 FontSize 为单位）。
type RainField struct {
	opts     RainOptions
	alphabet Alphabet
	rng      Random
	drops    []int
	resets   int // 累计重置次数
}

// NewRainField 创建数字雨组件；需要调用 Initialize 分配列状态
// 字符表为空时返回 ErrEmptyAlphabet
func NewRainField(opts RainOptions, alphabet Alphabet, rng Random) (*RainField, error) {
	if alphabet.Len() == 0 {
		return nil, ErrEmptyAlphabet
	}
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultRainOptions().FontSize
	}
	if opts.ResizePolicy == "" {
		opts.ResizePolicy = ResizeRederive
	}
	return &RainField{
		opts:     opts,
		alphabet: alphabet,
		rng:      rng,
	}, nil
}

// ColumnsFor 计算给定宽度可容纳的列数：floor(width / fontSize)
func ColumnsFor(surfaceWidth, fontSize int) int {
	if surfaceWidth <= 0 || fontSize <= 0 {
		return 0
	}
	return surfaceWidth / fontSize
}

// Initialize 按画布宽度分配列状态，所有列从第 1 行开始
func (f *RainField) Initialize(surfaceWidth int) {
	columns := ColumnsFor(surfaceWidth, f.opts.FontSize)
	f.drops = make([]int, columns)
	for i := range f.drops {
		f.drops[i] = 1
	}
	log.Printf("[RainField] initialized: width=%d fontSize=%d columns=%d", surfaceWidth, f.opts.FontSize, columns)
}

// Resize 按策略处理画布宽度变化
func (f *RainField) Resize(surfaceWidth int) {
	if f.opts.ResizePolicy == ResizePreserve {
		log.Printf("[RainField] resize to width=%d, keeping %d columns (policy=%s)", surfaceWidth, len(f.drops), f.opts.ResizePolicy)
		return
	}

	columns := ColumnsFor(surfaceWidth, f.opts.FontSize)
	if columns == len(f.drops) {
		return
	}

	drops := make([]int, columns)
	n := copy(drops, f.drops)
	for i := n; i < columns; i++ {
		drops[i] = 1
	}
	log.Printf("[RainField] resize to width=%d: columns %d -> %d", surfaceWidth, len(f.drops), columns)
	f.drops = drops
}

// Tick 绘制一帧
//
// 先用半透明矩形覆盖整个画布形成拖尾，再逐列绘制随机字符，
// 最后按概率重置并推进每列的头部行。
func (f *RainField) Tick(s surface.Surface) {
	width, height := s.Size()
	size := float64(f.opts.FontSize)

	s.SetFillColor(withAlpha(f.opts.FadeColor, f.opts.FadeAlpha))
	s.FillRect(0, 0, float64(width), float64(height))

	s.SetFont(f.opts.FontFamily, size)
	for i := range f.drops {
		glyph := f.alphabet.Pick(f.rng)

		s.SetFillColor(f.opts.GlyphColor)
		s.SetShadow(f.opts.GlyphColor, f.opts.GlowBlur)
		s.FillText(glyph, float64(i)*size, float64(f.drops[i])*size)
		s.SetShadow(f.opts.GlyphColor, 0)

		if chance(f.rng, f.opts.ResetProbability) {
			f.drops[i] = 0
			f.resets++
		}
		f.drops[i]++
	}
}

// Columns 返回当前列数
func (f *RainField) Columns() int {
	return len(f.drops)
}

// Drops 返回列状态副本
func (f *RainField) Drops() []int {
	out := make([]int, len(f.drops))
	copy(out, f.drops)
	return out
}

// Resets 返回累计重置次数
func (f *RainField) Resets() int {
	return f.resets
}

// Policy 返回尺寸变化策略
func (f *RainField) Policy() ResizePolicy {
	return f.opts.ResizePolicy
}

// withAlpha 将颜色的 alpha 通道乘以 a
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c.A = uint8(float64(c.A)*a + 0.5)
	return c
}
