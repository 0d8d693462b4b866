package effects

import (
	"errors"
	"strings"
)

// 默认字符集
const (
	Katakana = "アァイィウヴエェオカガキギクグケゲコゴサザシジスズセゼソゾタダチッヂヅテデトドナニヌネノハバパヒビピフブプヘベペホボポマミムメモヤャユュヨョラリルレロワヲン"
	Latin    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits   = "0123456789"
)

// ErrEmptyAlphabet 字符表为空
var ErrEmptyAlphabet = errors.New("alphabet is empty")

// Alphabet 不可变的有序字符表，每个元素是单个字符
type Alphabet struct {
	glyphs []string
	index  map[string]struct{}
}

// NewAlphabet 按顺序拼接各字符集
func NewAlphabet(sets ...string) (Alphabet, error) {
	var glyphs []string
	for _, set := range sets {
		for _, r := range set {
			glyphs = append(glyphs, string(r))
		}
	}
	if len(glyphs) == 0 {
		return Alphabet{}, ErrEmptyAlphabet
	}

	index := make(map[string]struct{}, len(glyphs))
	for _, g := range glyphs {
		index[g] = struct{}{}
	}
	return Alphabet{glyphs: glyphs, index: index}, nil
}

// DefaultAlphabet 片假名 + 拉丁大写字母 + 数字
func DefaultAlphabet() Alphabet {
	a, _ := NewAlphabet(Katakana, Latin, Digits)
	return a
}

// Len 返回字符数量
func (a Alphabet) Len() int {
	return len(a.glyphs)
}

// At 返回第 i 个字符
func (a Alphabet) At(i int) string {
	return a.glyphs[i]
}

// Contains 判断字符是否属于字符表
func (a Alphabet) Contains(glyph string) bool {
	_, ok := a.index[glyph]
	return ok
}

// Pick 均匀随机选取一个字符
func (a Alphabet) Pick(rng Random) string {
	return a.glyphs[rng.Intn(len(a.glyphs))]
}

// String 返回字符表全文
func (a Alphabet) String() string {
	return strings.Join(a.glyphs, "")
}
