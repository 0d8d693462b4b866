package effects

import (
	"errors"
	"math"
	"testing"

	"github.com/decker502/matrixrain/pkg/surface"
)

// stubRandom 固定输出的随机源
type stubRandom struct {
	f float64
	n int
}

func (s stubRandom) Float64() float64 { return s.f }
func (s stubRandom) Intn(n int) int   { return s.n % n }

// 不触发任何概率事件
var neverRandom = stubRandom{f: 0}

// 必然触发概率事件
var alwaysRandom = stubRandom{f: 0.999}

func newTestField(t *testing.T, width int, rng Random) *RainField {
	t.Helper()
	f, err := NewRainField(DefaultRainOptions(), DefaultAlphabet(), rng)
	if err != nil {
		t.Fatalf("NewRainField() error: %v", err)
	}
	f.Initialize(width)
	return f
}

// TestColumnsFor 测试列数计算 floor(width / fontSize)
func TestColumnsFor(t *testing.T) {
	tests := []struct {
		width, fontSize, want int
	}{
		{1000, 18, 55},
		{360, 18, 20},
		{17, 18, 0},
		{0, 18, 0},
		{-50, 18, 0},
		{100, 0, 0},
	}

	for _, tt := range tests {
		if got := ColumnsFor(tt.width, tt.fontSize); got != tt.want {
			t.Errorf("ColumnsFor(%d, %d): got %d, want %d", tt.width, tt.fontSize, got, tt.want)
		}
	}
}

// TestInitialize 测试初始化后所有列从第 1 行开始
func TestInitialize(t *testing.T) {
	f := newTestField(t, 1000, neverRandom)

	if f.Columns() != 55 {
		t.Fatalf("Columns: got %d, want 55", f.Columns())
	}
	for i, d := range f.Drops() {
		if d != 1 {
			t.Errorf("drops[%d]: got %d, want 1", i, d)
		}
	}
}

// TestTickWithoutReset 端到端：360x200 画布，一次 Tick 且不触发重置
func TestTickWithoutReset(t *testing.T) {
	s := surface.NewRecorder(360, 200)
	f := newTestField(t, 360, neverRandom)

	if f.Columns() != 20 {
		t.Fatalf("Columns: got %d, want 20", f.Columns())
	}

	f.Tick(s)

	for i, d := range f.Drops() {
		if d != 2 {
			t.Errorf("drops[%d]: got %d, want 2", i, d)
		}
	}

	texts := s.OpsOf(surface.OpFillText)
	if len(texts) != 20 {
		t.Fatalf("glyphs drawn: got %d, want 20", len(texts))
	}
	for i, op := range texts {
		if op.X != float64(i*18) {
			t.Errorf("glyph %d x: got %v, want %d", i, op.X, i*18)
		}
		if op.Y != 18 {
			t.Errorf("glyph %d y: got %v, want 18", i, op.Y)
		}
	}
}

// TestTickAlwaysReset 端到端：必然重置时，一次 Tick 后每列为 1（先置 0 再加 1）
func TestTickAlwaysReset(t *testing.T) {
	s := surface.NewRecorder(360, 200)
	f := newTestField(t, 360, alwaysRandom)

	f.Tick(s)
	f.Tick(s)

	for i, d := range f.Drops() {
		if d != 1 {
			t.Errorf("drops[%d]: got %d, want 1", i, d)
		}
	}

	// 重置的列下一次从第 1 行（y = fontSize）开始绘制
	texts := s.OpsOf(surface.OpFillText)
	for _, op := range texts[20:] {
		if op.Y != 18 {
			t.Errorf("second tick glyph y: got %v, want 18", op.Y)
		}
	}
}

// TestTickFadeAndGlow 测试拖尾矩形与发光样式
func TestTickFadeAndGlow(t *testing.T) {
	s := surface.NewRecorder(360, 200)
	f := newTestField(t, 360, neverRandom)

	f.Tick(s)

	ops := s.Ops()
	if len(ops) == 0 || ops[0].Kind != surface.OpFillRect {
		t.Fatal("first op should be the fade rectangle")
	}
	fade := ops[0]
	if fade.X != 0 || fade.Y != 0 || fade.W != 360 || fade.H != 200 {
		t.Errorf("fade rect: got (%v,%v,%v,%v), want full surface", fade.X, fade.Y, fade.W, fade.H)
	}
	if fade.Style.FillColor.A != 20 {
		t.Errorf("fade alpha: got %d, want 20 (0.08)", fade.Style.FillColor.A)
	}
	if got := s.Count(surface.OpFillRect); got != 1 {
		t.Errorf("fade rects per tick: got %d, want 1", got)
	}

	opts := DefaultRainOptions()
	for _, op := range s.OpsOf(surface.OpFillText) {
		if op.Style.ShadowBlur != opts.GlowBlur {
			t.Errorf("glyph glow blur: got %v, want %v", op.Style.ShadowBlur, opts.GlowBlur)
		}
		if op.Style.FillColor != opts.GlyphColor || op.Style.ShadowColor != opts.GlyphColor {
			t.Errorf("glyph colors: fill=%v shadow=%v", op.Style.FillColor, op.Style.ShadowColor)
		}
		if op.Style.FontSize != 18 {
			t.Errorf("font size: got %v, want 18", op.Style.FontSize)
		}
	}

	// 发光在绘制后被关闭，不会影响其他绘制
	if got := s.State().ShadowBlur; got != 0 {
		t.Errorf("ShadowBlur after tick: got %v, want 0", got)
	}
}

// TestGlyphsFromAlphabet 测试绘制的字符都属于字符表
func TestGlyphsFromAlphabet(t *testing.T) {
	alphabet := DefaultAlphabet()
	s := surface.NewRecorder(720, 400)
	f, _ := NewRainField(DefaultRainOptions(), alphabet, NewRandom(7))
	f.Initialize(720)

	for i := 0; i < 50; i++ {
		f.Tick(s)
	}

	for _, op := range s.OpsOf(surface.OpFillText) {
		if !alphabet.Contains(op.Glyph) {
			t.Fatalf("glyph %q not in alphabet", op.Glyph)
		}
	}
}

// TestDropsNeverNegative 测试任意次 Tick 后头部行均非负
func TestDropsNeverNegative(t *testing.T) {
	s := surface.NewRecorder(1000, 600)
	s.Discard = true
	f := newTestField(t, 1000, NewRandom(11))

	for n := 0; n < 500; n++ {
		f.Tick(s)
		for i, d := range f.Drops() {
			if d < 0 {
				t.Fatalf("tick %d: drops[%d] = %d", n, i, d)
			}
		}
	}
}

// TestResetRateConverges 测试经验重置率收敛到配置值
func TestResetRateConverges(t *testing.T) {
	const ticks = 2000
	s := surface.NewRecorder(360, 200)
	s.Discard = true
	f := newTestField(t, 360, NewRandom(42))

	resets, samples := 0, 0
	for n := 0; n < ticks; n++ {
		f.Tick(s)
		for _, d := range f.Drops() {
			// Tick 后为 1 当且仅当本次发生了重置
			if d == 1 {
				resets++
			}
			samples++
		}
	}

	if f.Resets() != resets {
		t.Errorf("Resets: got %d, want %d", f.Resets(), resets)
	}
	rate := float64(resets) / float64(samples)
	if math.Abs(rate-0.025) > 0.005 {
		t.Errorf("reset rate: got %.4f, want 0.025 ± 0.005", rate)
	}
}

// TestTickCountsResets 测试重置计数
func TestTickCountsResets(t *testing.T) {
	s := surface.NewRecorder(360, 200)
	f := newTestField(t, 360, alwaysRandom)

	f.Tick(s)
	f.Tick(s)
	if got := f.Resets(); got != 40 {
		t.Errorf("Resets: got %d, want 40", got)
	}

	g := newTestField(t, 360, neverRandom)
	g.Tick(s)
	if got := g.Resets(); got != 0 {
		t.Errorf("Resets without reset: got %d, want 0", got)
	}
}

// TestNewRainFieldEmptyAlphabet 测试空字符表被拒绝
func TestNewRainFieldEmptyAlphabet(t *testing.T) {
	if _, err := NewRainField(DefaultRainOptions(), Alphabet{}, neverRandom); !errors.Is(err, ErrEmptyAlphabet) {
		t.Errorf("NewRainField(empty): got %v, want ErrEmptyAlphabet", err)
	}
}

// TestResizeRederive 测试默认策略按新宽度重新计算列数
func TestResizeRederive(t *testing.T) {
	s := surface.NewRecorder(360, 200)
	f := newTestField(t, 360, neverRandom)
	f.Tick(s)

	f.Resize(540)
	drops := f.Drops()
	if len(drops) != 30 {
		t.Fatalf("Columns after grow: got %d, want 30", len(drops))
	}
	for i, d := range drops {
		want := 2
		if i >= 20 {
			want = 1
		}
		if d != want {
			t.Errorf("drops[%d]: got %d, want %d", i, d, want)
		}
	}

	f.Resize(180)
	if f.Columns() != 10 {
		t.Fatalf("Columns after shrink: got %d, want 10", f.Columns())
	}
	for i, d := range f.Drops() {
		if d != 2 {
			t.Errorf("drops[%d] after shrink: got %d, want 2", i, d)
		}
	}
}

// TestResizePreserve 测试保留策略不改变列数，缩小后仍可安全绘制
func TestResizePreserve(t *testing.T) {
	opts := DefaultRainOptions()
	opts.ResizePolicy = ResizePreserve
	f, err := NewRainField(opts, DefaultAlphabet(), neverRandom)
	if err != nil {
		t.Fatalf("NewRainField() error: %v", err)
	}
	f.Initialize(360)

	s := surface.NewRecorder(180, 200)
	f.Resize(180)
	if f.Columns() != 20 {
		t.Fatalf("Columns: got %d, want 20", f.Columns())
	}
	if f.Policy() != ResizePreserve {
		t.Errorf("Policy: got %q, want %q", f.Policy(), ResizePreserve)
	}

	f.Tick(s)
	if got := len(s.OpsOf(surface.OpFillText)); got != 20 {
		t.Errorf("glyphs drawn: got %d, want 20", got)
	}
}

// TestParseResizePolicy 测试策略解析
func TestParseResizePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    ResizePolicy
		wantErr bool
	}{
		{"", ResizeRederive, false},
		{"rederive", ResizeRederive, false},
		{"preserve", ResizePreserve, false},
		{"stretch", "", true},
	}

	for _, tt := range tests {
		got, err := ParseResizePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseResizePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseResizePolicy(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
