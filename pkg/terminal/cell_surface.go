// Package terminal 将 surface.Surface 映射到终端字符网格
//
// 每个字符单元对应边长为 cellSize 像素的正方形，数字雨的一列正好是一个终端列。
// 绘制结果通过 Flush 写入 tcell.Screen。
package terminal

import (
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/decker502/matrixrain/pkg/surface"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/width"
)

// FallbackGlyph 没有半角形式的宽字符（如 ヰ）显示为该字符
const FallbackGlyph = '*'

// fadedDistance 前景与背景的 RGB 距离低于该值时认为字符已淡出
const fadedDistance = 0.03

// Cell 一个字符单元
type Cell struct {
	Glyph rune // 0 表示空
	FG    colorful.Color
	BG    colorful.Color
	Bold  bool
}

// CellSurface 字符网格画布
//
// 尺寸以像素表示（列数 * cellSize），与桌面端画布使用同一套坐标。
// 矩形覆盖到的单元整体参与混合，不做亚单元覆盖率计算。
type CellSurface struct {
	surface.StyleState
	cellSize   float64
	cols, rows int
	cells      []Cell
}

// NewCellSurface 创建 cols x rows 的字符网格
func NewCellSurface(cols, rows int, cellSize float64) *CellSurface {
	if cellSize <= 0 {
		cellSize = 1
	}
	s := &CellSurface{
		StyleState: surface.NewStyleState(),
		cellSize:   cellSize,
	}
	s.ResizeCells(cols, rows)
	return s
}

// CellSize 返回单元边长（像素）
func (s *CellSurface) CellSize() float64 {
	return s.cellSize
}

// Grid 返回列数与行数
func (s *CellSurface) Grid() (cols, rows int) {
	return s.cols, s.rows
}

// Size 返回像素尺寸
func (s *CellSurface) Size() (int, int) {
	return int(float64(s.cols) * s.cellSize), int(float64(s.rows) * s.cellSize)
}

// Resize 按像素尺寸重新分配网格，内容被清空
func (s *CellSurface) Resize(w, h int) {
	s.ResizeCells(int(float64(w)/s.cellSize), int(float64(h)/s.cellSize))
}

// ResizeCells 按终端列数与行数重新分配网格
func (s *CellSurface) ResizeCells(cols, rows int) {
	s.cols = max(cols, 0)
	s.rows = max(rows, 0)
	s.cells = make([]Cell, s.cols*s.rows)
	for i := range s.cells {
		s.cells[i] = Cell{FG: black, BG: black}
	}
}

// At 返回指定单元；越界时返回零值
func (s *CellSurface) At(col, row int) Cell {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return Cell{}
	}
	return s.cells[row*s.cols+col]
}

// FillRect 用当前填充色混合矩形覆盖的单元
func (s *CellSurface) FillRect(x, y, w, h float64) {
	c0, r0, c1, r1, ok := s.span(x, y, w, h)
	if !ok {
		return
	}
	st := s.State()
	clr, alpha := toColorful(st.FillColor, st.GlobalAlpha)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			s.blend(&s.cells[row*s.cols+col], clr, alpha, st.Composite, true)
		}
	}
}

// StrokeRect 用当前描边色混合矩形边框经过的单元
func (s *CellSurface) StrokeRect(x, y, w, h float64) {
	c0, r0, c1, r1, ok := s.span(x, y, w, h)
	if !ok {
		return
	}
	st := s.State()
	clr, alpha := toColorful(st.StrokeColor, st.GlobalAlpha)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			if row != r0 && row != r1-1 && col != c0 && col != c1-1 {
				continue
			}
			s.blend(&s.cells[row*s.cols+col], clr, alpha, st.Composite, false)
		}
	}
}

// FillText 在基线 (x, y) 所在的单元写入字符
// 基线 y 落在第 ceil(y/cellSize)-1 行；带阴影时加粗显示
func (s *CellSurface) FillText(glyph string, x, y float64) {
	if glyph == "" {
		return
	}
	col := int(math.Floor(x / s.cellSize))
	row := int(math.Ceil(y/s.cellSize)) - 1
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return
	}

	st := s.State()
	clr, alpha := toColorful(st.FillColor, st.GlobalAlpha)
	cell := &s.cells[row*s.cols+col]
	cell.Glyph = NarrowGlyph(glyph)
	cell.FG = cell.BG.BlendRgb(clr, alpha).Clamped()
	cell.Bold = st.ShadowBlur > 0
}

// Flush 将网格写入屏幕，调用方负责 Show
func (s *CellSurface) Flush(screen tcell.Screen) {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			cell := s.cells[row*s.cols+col]
			glyph := cell.Glyph
			if glyph == 0 {
				glyph = ' '
			}
			style := tcell.StyleDefault.
				Foreground(tcellColor(cell.FG)).
				Background(tcellColor(cell.BG)).
				Bold(cell.Bold)
			screen.SetContent(col, row, glyph, nil, style)
		}
	}
}

// NarrowGlyph 返回占一个终端列的字符
// 全角片假名转换为半角形式，无法转换的宽字符使用 FallbackGlyph
func NarrowGlyph(glyph string) rune {
	r, _ := utf8.DecodeRuneInString(width.Narrow.String(glyph))
	if r == utf8.RuneError || runewidth.RuneWidth(r) != 1 {
		return FallbackGlyph
	}
	return r
}

func (s *CellSurface) blend(cell *Cell, clr colorful.Color, alpha float64, mode surface.CompositeMode, fill bool) {
	if mode == surface.CompositeLighter {
		cell.BG = lighter(cell.BG, clr, alpha)
		if fill {
			cell.FG = lighter(cell.FG, clr, alpha)
		}
		return
	}

	cell.BG = cell.BG.BlendRgb(clr, alpha).Clamped()
	if !fill {
		return
	}
	cell.FG = cell.FG.BlendRgb(clr, alpha).Clamped()
	if cell.Glyph != 0 && cell.FG.DistanceRgb(cell.BG) < fadedDistance {
		cell.Glyph = 0
		cell.Bold = false
	}
}

// span 将像素矩形转换为单元范围 [c0, c1) x [r0, r1)
func (s *CellSurface) span(x, y, w, h float64) (c0, r0, c1, r1 int, ok bool) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	if w == 0 || h == 0 {
		return 0, 0, 0, 0, false
	}
	c0 = max(int(math.Floor(x/s.cellSize)), 0)
	r0 = max(int(math.Floor(y/s.cellSize)), 0)
	c1 = min(int(math.Ceil((x+w)/s.cellSize)), s.cols)
	r1 = min(int(math.Ceil((y+h)/s.cellSize)), s.rows)
	return c0, r0, c1, r1, c0 < c1 && r0 < r1
}

var black = colorful.Color{}

func lighter(dst, src colorful.Color, alpha float64) colorful.Color {
	return colorful.Color{
		R: dst.R + src.R*alpha,
		G: dst.G + src.G*alpha,
		B: dst.B + src.B*alpha,
	}.Clamped()
}

func toColorful(c color.Color, globalAlpha float64) (colorful.Color, float64) {
	clr, ok := colorful.MakeColor(c)
	_, _, _, a := c.RGBA()
	if !ok {
		// 完全透明
		return black, 0
	}
	return clr, float64(a) / 0xffff * globalAlpha
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
