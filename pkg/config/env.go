package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// rainEnv 可通过环境变量覆盖的配置项
// 零值表示未设置；概率允许显式设为 0，因此用指针区分
type rainEnv struct {
	FontSize          int           `env:"MATRIXRAIN_FONT_SIZE"`
	FontFile          string        `env:"MATRIXRAIN_FONT_FILE"`
	GlyphColor        string        `env:"MATRIXRAIN_GLYPH_COLOR"`
	RainInterval      time.Duration `env:"MATRIXRAIN_RAIN_INTERVAL"`
	ResetProbability  *float64      `env:"MATRIXRAIN_RESET_PROBABILITY"`
	ResizePolicy      string        `env:"MATRIXRAIN_RESIZE_POLICY"`
	GlitchInterval    time.Duration `env:"MATRIXRAIN_GLITCH_INTERVAL"`
	GlitchProbability *float64      `env:"MATRIXRAIN_GLITCH_PROBABILITY"`
	GlitchColor       string        `env:"MATRIXRAIN_GLITCH_COLOR"`
}

// ApplyEnv 用 MATRIXRAIN_* 环境变量覆盖配置
func ApplyEnv(cfg *RainConfig) error {
	var e rainEnv
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if e.FontSize != 0 {
		cfg.Rain.FontSize = e.FontSize
	}
	if e.FontFile != "" {
		cfg.Rain.FontFile = e.FontFile
	}
	if e.GlyphColor != "" {
		cfg.Rain.GlyphColor = e.GlyphColor
	}
	if e.RainInterval != 0 {
		cfg.Rain.Interval = e.RainInterval
	}
	if e.ResetProbability != nil {
		cfg.Rain.ResetProbability = *e.ResetProbability
	}
	if e.ResizePolicy != "" {
		cfg.Rain.ResizePolicy = e.ResizePolicy
	}
	if e.GlitchInterval != 0 {
		cfg.Glitch.Interval = e.GlitchInterval
	}
	if e.GlitchProbability != nil {
		cfg.Glitch.Probability = *e.GlitchProbability
	}
	if e.GlitchColor != "" {
		cfg.Glitch.Color = e.GlitchColor
	}
	return nil
}
