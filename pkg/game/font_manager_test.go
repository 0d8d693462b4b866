package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// TestFontManagerFallback 测试未注册字体族使用内置字体，并按字号缓存
func TestFontManagerFallback(t *testing.T) {
	fm, err := NewFontManager()
	if err != nil {
		t.Fatalf("NewFontManager() error: %v", err)
	}

	face := fm.Face("Share Tech Mono", 18)
	goFace, ok := face.(*text.GoTextFace)
	if !ok {
		t.Fatalf("Face() type: got %T, want *text.GoTextFace", face)
	}
	if goFace.Source != fm.fallback {
		t.Error("unregistered family should use the fallback source")
	}
	if goFace.Size != 18 {
		t.Errorf("Size: got %v, want 18", goFace.Size)
	}

	if fm.Face("Share Tech Mono", 18) != face {
		t.Error("Face() should return the cached face")
	}
	if fm.Face("Share Tech Mono", 24) == face {
		t.Error("different sizes should not share a face")
	}
}

// TestFontManagerLoadFontFile 测试从磁盘加载字体
func TestFontManagerLoadFontFile(t *testing.T) {
	fm, err := NewFontManager()
	if err != nil {
		t.Fatalf("NewFontManager() error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "mono.ttf")
	if err := os.WriteFile(path, fonts.PressStart2P_ttf, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	before := fm.Face("Mono", 18)
	if err := fm.LoadFontFile("Mono", path); err != nil {
		t.Fatalf("LoadFontFile() error: %v", err)
	}
	after := fm.Face("Mono", 18).(*text.GoTextFace)

	if after == before {
		t.Error("cached fallback face should be invalidated after loading")
	}
	if after.Source == fm.fallback {
		t.Error("loaded family should not use the fallback source")
	}
}

// TestFontManagerLoadErrors 测试加载失败
func TestFontManagerLoadErrors(t *testing.T) {
	fm, err := NewFontManager()
	if err != nil {
		t.Fatalf("NewFontManager() error: %v", err)
	}

	if err := fm.LoadFontFile("X", filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Error("LoadFontFile() expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.ttf")
	if err := os.WriteFile(bad, []byte("not a font"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := fm.LoadFontFile("X", bad); err == nil {
		t.Error("LoadFontFile() expected error for invalid font data")
	}
}
