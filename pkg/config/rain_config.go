package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/decker502/matrixrain/pkg/effects"
	"github.com/decker502/matrixrain/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 嵌入的默认配置文件
const DefaultConfigPath = "data/rain.yaml"

// ThemeDir 嵌入的主题目录，每个主题是一个覆盖默认配置的 YAML 文件
const ThemeDir = "data/themes"

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid config")

// RainConfig 程序的完整配置
type RainConfig struct {
	Window WindowConfig `yaml:"window"`
	Rain   RainSection  `yaml:"rain"`
	Glitch GlitchConfig `yaml:"glitch"`
}

// WindowConfig 桌面窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`  // 初始窗口宽度（像素）
	Height int    `yaml:"height"` // 初始窗口高度（像素）
	Title  string `yaml:"title"`
}

// RainSection 数字雨配置
type RainSection struct {
	Interval         time.Duration `yaml:"interval"` // 重绘间隔，如 "40ms"
	FontSize         int           `yaml:"fontSize"`
	FontFamily       string        `yaml:"fontFamily"`
	FontFile         string        `yaml:"fontFile,omitempty"` // 可选：TTF/OTF 字体文件路径，为空使用内置字体
	FadeColor        string        `yaml:"fadeColor"`
	FadeAlpha        float64       `yaml:"fadeAlpha"`
	GlyphColor       string        `yaml:"glyphColor"`
	GlowBlur         float64       `yaml:"glowBlur"`
	ResetProbability float64       `yaml:"resetProbability"`
	ResizePolicy     string        `yaml:"resizePolicy"` // "rederive" 或 "preserve"
	Alphabet         []string      `yaml:"alphabet"`     // 依次拼接的字符集
}

// GlitchConfig 故障叠加层配置
type GlitchConfig struct {
	Interval    time.Duration `yaml:"interval"`
	Probability float64       `yaml:"probability"`
	Alpha       float64       `yaml:"alpha"`
	Color       string        `yaml:"color"`
	LineWidth   float64       `yaml:"lineWidth"`
	RectCount   int           `yaml:"rectCount"`
	MinWidth    float64       `yaml:"minWidth"`
	MaxWidth    float64       `yaml:"maxWidth"`
	MinHeight   float64       `yaml:"minHeight"`
	MaxHeight   float64       `yaml:"maxHeight"`
}

// DefaultRainConfig 返回内置默认配置
// 与 data/rain.yaml 保持一致，嵌入数据不可用时（测试、工具）直接使用
func DefaultRainConfig() *RainConfig {
	return &RainConfig{
		Window: WindowConfig{
			Width:  1024,
			Height: 768,
			Title:  "Matrix Rain",
		},
		Rain: RainSection{
			Interval:         40 * time.Millisecond,
			FontSize:         18,
			FontFamily:       "Share Tech Mono",
			FadeColor:        "black",
			FadeAlpha:        0.08,
			GlyphColor:       "#39ff14",
			GlowBlur:         8,
			ResetProbability: 0.025,
			ResizePolicy:     string(effects.ResizeRederive),
			Alphabet:         []string{effects.Katakana, effects.Latin, effects.Digits},
		},
		Glitch: GlitchConfig{
			Interval:    120 * time.Millisecond,
			Probability: 0.03,
			Alpha:       0.2,
			Color:       "red",
			LineWidth:   2,
			RectCount:   5,
			MinWidth:    50,
			MaxWidth:    250,
			MinHeight:   2,
			MaxHeight:   12,
		},
	}
}

// Merge 将 YAML 文档覆盖到当前配置上，文档中未出现的字段保持原值
func (c *RainConfig) Merge(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// MergeFile 读取磁盘上的 YAML 文件并覆盖到当前配置
func (c *RainConfig) MergeFile(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}
	if err := c.Merge(data); err != nil {
		return fmt.Errorf("%s: %w", filePath, err)
	}
	return nil
}

// MergeTheme 应用嵌入的主题
func (c *RainConfig) MergeTheme(name string) error {
	data, err := embedded.ReadFile(path.Join(ThemeDir, name+".yaml"))
	if err != nil {
		return fmt.Errorf("unknown theme %q: %w", name, err)
	}
	if err := c.Merge(data); err != nil {
		return fmt.Errorf("theme %s: %w", name, err)
	}
	return nil
}

// ListThemes 返回可用的主题名称
func ListThemes() ([]string, error) {
	matches, err := embedded.Glob(ThemeDir + "/*.yaml")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".yaml"))
	}
	return names, nil
}

// LoadRainConfig 加载配置
//
// 顺序：内置默认值 -> 嵌入的 data/rain.yaml -> 主题 -> 用户配置文件 -> 环境变量。
// 最后执行校验。theme 与 userPath 为空时跳过。
func LoadRainConfig(theme, userPath string) (*RainConfig, error) {
	cfg := DefaultRainConfig()

	if embedded.Exists(DefaultConfigPath) {
		data, err := embedded.ReadFile(DefaultConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", DefaultConfigPath, err)
		}
		if err := cfg.Merge(data); err != nil {
			return nil, fmt.Errorf("%s: %w", DefaultConfigPath, err)
		}
	}

	if theme != "" {
		if err := cfg.MergeTheme(theme); err != nil {
			return nil, err
		}
	}

	if userPath != "" {
		if err := cfg.MergeFile(userPath); err != nil {
			return nil, err
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查配置取值范围
func (c *RainConfig) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive (got %dx%d)", c.Window.Width, c.Window.Height)

	r := c.Rain
	check(r.Interval > 0, "rain.interval must be positive (got %s)", r.Interval)
	check(r.FontSize > 0, "rain.fontSize must be positive (got %d)", r.FontSize)
	check(inUnit(r.FadeAlpha), "rain.fadeAlpha must be within [0,1] (got %v)", r.FadeAlpha)
	check(r.GlowBlur >= 0, "rain.glowBlur must not be negative (got %v)", r.GlowBlur)
	check(inUnit(r.ResetProbability), "rain.resetProbability must be within [0,1] (got %v)", r.ResetProbability)
	_, err := effects.ParseResizePolicy(r.ResizePolicy)
	check(err == nil, "rain.resizePolicy: %v", err)
	check(strings.Join(r.Alphabet, "") != "", "rain.alphabet must not be empty")
	for _, field := range [][2]string{{"rain.fadeColor", r.FadeColor}, {"rain.glyphColor", r.GlyphColor}, {"glitch.color", c.Glitch.Color}} {
		_, err := ParseColor(field[1])
		check(err == nil, "%s: %v", field[0], err)
	}

	g := c.Glitch
	check(g.Interval > 0, "glitch.interval must be positive (got %s)", g.Interval)
	check(inUnit(g.Probability), "glitch.probability must be within [0,1] (got %v)", g.Probability)
	check(inUnit(g.Alpha), "glitch.alpha must be within [0,1] (got %v)", g.Alpha)
	check(g.LineWidth > 0, "glitch.lineWidth must be positive (got %v)", g.LineWidth)
	check(g.RectCount >= 0, "glitch.rectCount must not be negative (got %d)", g.RectCount)
	check(g.MinWidth >= 0 && g.MaxWidth >= g.MinWidth, "glitch width range invalid [%v, %v)", g.MinWidth, g.MaxWidth)
	check(g.MinHeight >= 0 && g.MaxHeight >= g.MinHeight, "glitch height range invalid [%v, %v)", g.MinHeight, g.MaxHeight)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// RainOptions 转换为 effects.RainOptions
func (c *RainConfig) RainOptions() (effects.RainOptions, error) {
	fade, err := ParseColor(c.Rain.FadeColor)
	if err != nil {
		return effects.RainOptions{}, fmt.Errorf("rain.fadeColor: %w", err)
	}
	glyph, err := ParseColor(c.Rain.GlyphColor)
	if err != nil {
		return effects.RainOptions{}, fmt.Errorf("rain.glyphColor: %w", err)
	}
	policy, err := effects.ParseResizePolicy(c.Rain.ResizePolicy)
	if err != nil {
		return effects.RainOptions{}, err
	}

	return effects.RainOptions{
		FontSize:         c.Rain.FontSize,
		FontFamily:       c.Rain.FontFamily,
		FadeColor:        fade,
		FadeAlpha:        c.Rain.FadeAlpha,
		GlyphColor:       glyph,
		GlowBlur:         c.Rain.GlowBlur,
		ResetProbability: c.Rain.ResetProbability,
		ResizePolicy:     policy,
	}, nil
}

// GlitchOptions 转换为 effects.GlitchOptions
func (c *RainConfig) GlitchOptions() (effects.GlitchOptions, error) {
	clr, err := ParseColor(c.Glitch.Color)
	if err != nil {
		return effects.GlitchOptions{}, fmt.Errorf("glitch.color: %w", err)
	}
	g := c.Glitch
	return effects.GlitchOptions{
		Probability: g.Probability,
		Alpha:       g.Alpha,
		Color:       clr,
		LineWidth:   g.LineWidth,
		RectCount:   g.RectCount,
		MinWidth:    g.MinWidth,
		MaxWidth:    g.MaxWidth,
		MinHeight:   g.MinHeight,
		MaxHeight:   g.MaxHeight,
	}, nil
}

// Alphabet 构建字符表
func (c *RainConfig) Alphabet() (effects.Alphabet, error) {
	a, err := effects.NewAlphabet(c.Rain.Alphabet...)
	if err != nil {
		return effects.Alphabet{}, fmt.Errorf("rain.alphabet: %w", err)
	}
	return a, nil
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
