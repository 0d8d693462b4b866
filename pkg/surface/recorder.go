package surface

// OpKind 记录的绘制操作类型
type OpKind int

const (
	OpFillRect OpKind = iota
	OpStrokeRect
	OpFillText
)

// Op 一次绘制操作及其发生时的样式快照
type Op struct {
	Kind  OpKind
	Glyph string
	X, Y  float64
	W, H  float64
	Style Style
}

// Recorder 只记录绘制操作的画布，不产生像素
// 用于测试和 cmd/rainbench 的无头运行
type Recorder struct {
	StyleState
	width, height int
	ops           []Op
	// Discard 为 true 时只计数不保存操作
	Discard bool
	counts  [3]int
}

// NewRecorder 创建指定尺寸的记录画布
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		StyleState: NewStyleState(),
		width:      width,
		height:     height,
	}
}

func (r *Recorder) Size() (int, int) { return r.width, r.height }

func (r *Recorder) Resize(width, height int) {
	r.width, r.height = width, height
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.record(Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) StrokeRect(x, y, w, h float64) {
	r.record(Op{Kind: OpStrokeRect, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) FillText(glyph string, x, y float64) {
	r.record(Op{Kind: OpFillText, Glyph: glyph, X: x, Y: y})
}

func (r *Recorder) record(op Op) {
	r.counts[op.Kind]++
	if r.Discard {
		return
	}
	op.Style = r.State()
	r.ops = append(r.ops, op)
}

// Ops 返回已记录的操作
func (r *Recorder) Ops() []Op {
	return r.ops
}

// OpsOf 返回指定类型的操作
func (r *Recorder) OpsOf(kind OpKind) []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Count 返回指定类型的操作次数（Discard 模式下同样有效）
func (r *Recorder) Count(kind OpKind) int {
	return r.counts[kind]
}

// Reset 清空记录
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
	r.counts = [3]int{}
}
