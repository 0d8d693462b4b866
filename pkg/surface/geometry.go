package surface

// Rect 轴对齐矩形
type Rect struct {
	X, Y, W, H float64
}

// StrokeQuads 将以边为中心、线宽 lw 的矩形描边拆成互不重叠的矩形
//
// 上下两条边占满外框宽度，左右两条边只覆盖中间部分，角落不会被重复绘制。
// 宽或高不超过线宽时（包括退化为线段），四条边会相互覆盖，此时返回整个外框。
// 调用方负责先将负宽高规范化。
func StrokeQuads(x, y, w, h, lw float64) []Rect {
	if lw <= 0 || w < 0 || h < 0 || (w == 0 && h == 0) {
		return nil
	}
	half := lw / 2
	outer := Rect{X: x - half, Y: y - half, W: w + lw, H: h + lw}
	if w <= lw || h <= lw {
		return []Rect{outer}
	}

	inner := h - lw
	return []Rect{
		{X: outer.X, Y: outer.Y, W: outer.W, H: lw},
		{X: outer.X, Y: y + h - half, W: outer.W, H: lw},
		{X: outer.X, Y: y + half, W: lw, H: inner},
		{X: x + w - half, Y: y + half, W: lw, H: inner},
	}
}
