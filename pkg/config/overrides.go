package config

import (
	"fmt"
)

// Overrides 命令行参数对配置的覆盖，零值表示不覆盖
type Overrides struct {
	FontSize     int
	ResizePolicy string
	Width        int
	Height       int
}

// ApplyOverrides 应用命令行覆盖并重新校验
func (c *RainConfig) ApplyOverrides(o Overrides) error {
	if o.FontSize != 0 {
		c.Rain.FontSize = o.FontSize
	}
	if o.ResizePolicy != "" {
		c.Rain.ResizePolicy = o.ResizePolicy
	}
	if o.Width != 0 {
		c.Window.Width = o.Width
	}
	if o.Height != 0 {
		c.Window.Height = o.Height
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("command line: %w", err)
	}
	return nil
}
