package surface

import "testing"

// TestStrokeQuads 测试描边拆分的几何形状
func TestStrokeQuads(t *testing.T) {
	tests := []struct {
		name           string
		x, y, w, h, lw float64
		want           []Rect
	}{
		{"regular", 0, 0, 10, 6, 2, []Rect{
			{X: -1, Y: -1, W: 12, H: 2},
			{X: -1, Y: 5, W: 12, H: 2},
			{X: -1, Y: 1, W: 2, H: 4},
			{X: 9, Y: 1, W: 2, H: 4},
		}},
		{"offset", 20, 30, 4, 4, 1, []Rect{
			{X: 19.5, Y: 29.5, W: 5, H: 1},
			{X: 19.5, Y: 33.5, W: 5, H: 1},
			{X: 19.5, Y: 30.5, W: 1, H: 3},
			{X: 23.5, Y: 30.5, W: 1, H: 3},
		}},
		{"thinner than line", 0, 0, 10, 1, 2, []Rect{{X: -1, Y: -1, W: 12, H: 3}}},
		{"vertical segment", 5, 0, 0, 8, 2, []Rect{{X: 4, Y: -1, W: 2, H: 10}}},
		{"point", 5, 5, 0, 0, 2, nil},
		{"no line width", 0, 0, 10, 10, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StrokeQuads(tt.x, tt.y, tt.w, tt.h, tt.lw)
			if len(got) != len(tt.want) {
				t.Fatalf("quads: got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("quad %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestStrokeQuadsCoverBandOnce 测试拆分后的矩形互不重叠且面积等于描边带面积
func TestStrokeQuadsCoverBandOnce(t *testing.T) {
	const x, y, w, h, lw = 3.0, 7.0, 40.0, 25.0, 3.0
	quads := StrokeQuads(x, y, w, h, lw)

	area := 0.0
	for i, a := range quads {
		area += a.W * a.H
		for _, b := range quads[i+1:] {
			if a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H {
				t.Errorf("quads overlap: %+v and %+v", a, b)
			}
		}
	}

	band := (w+lw)*(h+lw) - (w-lw)*(h-lw)
	if area != band {
		t.Errorf("area: got %v, want %v", area, band)
	}
}
