package effects

import (
	"errors"
	"testing"
	"unicode/utf8"
)

// TestDefaultAlphabet 测试默认字符表为三个字符集按顺序拼接
func TestDefaultAlphabet(t *testing.T) {
	a := DefaultAlphabet()

	want := utf8.RuneCountInString(Katakana) + len(Latin) + len(Digits)
	if a.Len() != want {
		t.Fatalf("Len: got %d, want %d", a.Len(), want)
	}
	if a.At(0) != "ア" {
		t.Errorf("first glyph: got %q, want %q", a.At(0), "ア")
	}
	if a.At(a.Len()-1) != "9" {
		t.Errorf("last glyph: got %q, want %q", a.At(a.Len()-1), "9")
	}
	if a.String() != Katakana+Latin+Digits {
		t.Error("String does not match concatenated sets")
	}
}

// TestAlphabetContains 测试成员判断
func TestAlphabetContains(t *testing.T) {
	a := DefaultAlphabet()

	for _, g := range []string{"ア", "ン", "A", "Z", "0", "9"} {
		if !a.Contains(g) {
			t.Errorf("Contains(%q): got false, want true", g)
		}
	}
	for _, g := range []string{"a", "!", "", "AB"} {
		if a.Contains(g) {
			t.Errorf("Contains(%q): got true, want false", g)
		}
	}
}

// TestNewAlphabetEmpty 测试空字符表返回错误
func TestNewAlphabetEmpty(t *testing.T) {
	if _, err := NewAlphabet(); !errors.Is(err, ErrEmptyAlphabet) {
		t.Errorf("NewAlphabet(): got %v, want ErrEmptyAlphabet", err)
	}
	if _, err := NewAlphabet("", ""); !errors.Is(err, ErrEmptyAlphabet) {
		t.Errorf("NewAlphabet(\"\", \"\"): got %v, want ErrEmptyAlphabet", err)
	}
}

// TestAlphabetPick 测试选取使用随机源给出的下标
func TestAlphabetPick(t *testing.T) {
	a, err := NewAlphabet("XYZ")
	if err != nil {
		t.Fatalf("NewAlphabet: %v", err)
	}

	if got := a.Pick(stubRandom{n: 1}); got != "Y" {
		t.Errorf("Pick: got %q, want %q", got, "Y")
	}
}

// TestChance 测试概率判断的边界
func TestChance(t *testing.T) {
	tests := []struct {
		name string
		f    float64
		p    float64
		want bool
	}{
		{"zero probability", 0.999, 0, false},
		{"certain", 0, 1, true},
		{"below threshold", 0.97, 0.025, false},
		{"above threshold", 0.98, 0.025, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chance(stubRandom{f: tt.f}, tt.p); got != tt.want {
				t.Errorf("chance: got %v, want %v", got, tt.want)
			}
		})
	}
}
