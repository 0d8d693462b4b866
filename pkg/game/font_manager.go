package game

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// FontManager 管理字体源与按字号缓存的字体
//
// 未注册的字体族回退到内置的 M+ 1p 字体（覆盖片假名、拉丁字母与数字）。
// 实现 surface.FontResolver。
type FontManager struct {
	sources   map[string]*text.GoTextFaceSource // 字体族 -> 字体源
	fallback  *text.GoTextFaceSource
	faceCache map[string]*text.GoTextFace
}

// NewFontManager 创建字体管理器并加载内置回退字体
func NewFontManager() (*FontManager, error) {
	fallback, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.MPlus1pRegular_ttf))
	if err != nil {
		return nil, fmt.Errorf("failed to create builtin font source: %w", err)
	}
	return &FontManager{
		sources:   make(map[string]*text.GoTextFaceSource),
		fallback:  fallback,
		faceCache: make(map[string]*text.GoTextFace),
	}, nil
}

// LoadFontFile 从磁盘加载 TrueType/OpenType 字体并注册为 family
// Supported formats: .ttf, .otf
func (fm *FontManager) LoadFontFile(family, path string) error {
	fontData, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read font file %s: %w", path, err)
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return fmt.Errorf("failed to create font source for %s: %w", path, err)
	}

	fm.sources[family] = source
	// 同一字体族之前缓存的字体需要失效
	prefix := family + ":"
	for key := range fm.faceCache {
		if strings.HasPrefix(key, prefix) {
			delete(fm.faceCache, key)
		}
	}
	log.Printf("[FontManager] loaded %s as %q", path, family)
	return nil
}

// Face 返回指定字体族和字号的字体，结果按 family:size 缓存
func (fm *FontManager) Face(family string, size float64) text.Face {
	cacheKey := fmt.Sprintf("%s:%.1f", family, size)
	if cached, ok := fm.faceCache[cacheKey]; ok {
		return cached
	}

	source, ok := fm.sources[family]
	if !ok {
		source = fm.fallback
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	fm.faceCache[cacheKey] = face
	return face
}
