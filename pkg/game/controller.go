package game

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/matrixrain/pkg/config"
	"github.com/decker502/matrixrain/pkg/effects"
	"github.com/decker502/matrixrain/pkg/surface"
)

// 调度任务名称
const (
	TaskRain   = "rain"
	TaskGlitch = "glitch"
)

// ControllerOptions 动画控制器参数
type ControllerOptions struct {
	Rain           effects.RainOptions
	Glitch         effects.GlitchOptions
	Alphabet       effects.Alphabet
	RainInterval   time.Duration
	GlitchInterval time.Duration
}

// DefaultControllerOptions 返回默认参数（40ms 数字雨，120ms 故障叠加）
func DefaultControllerOptions() ControllerOptions {
	return ControllerOptions{
		Rain:           effects.DefaultRainOptions(),
		Glitch:         effects.DefaultGlitchOptions(),
		Alphabet:       effects.DefaultAlphabet(),
		RainInterval:   40 * time.Millisecond,
		GlitchInterval: 120 * time.Millisecond,
	}
}

// OptionsFromConfig 从配置构建控制器参数
func OptionsFromConfig(cfg *config.RainConfig) (ControllerOptions, error) {
	rain, err := cfg.RainOptions()
	if err != nil {
		return ControllerOptions{}, err
	}
	glitch, err := cfg.GlitchOptions()
	if err != nil {
		return ControllerOptions{}, err
	}
	alphabet, err := cfg.Alphabet()
	if err != nil {
		return ControllerOptions{}, err
	}
	return ControllerOptions{
		Rain:           rain,
		Glitch:         glitch,
		Alphabet:       alphabet,
		RainInterval:   cfg.Rain.Interval,
		GlitchInterval: cfg.Glitch.Interval,
	}, nil
}

// Stats 运行统计
type Stats struct {
	Columns      int
	ResizePolicy effects.ResizePolicy
	RainTicks    int
	Resets       int // 列回到顶部的累计次数
	GlitchTicks  int
	Bursts       int
	Paused       bool
	Stopped      bool
}

// Controller 动画控制器
//
// 持有画布引用、数字雨、故障叠加层与调度器。所有方法都必须在同一个线程上调用
// （宿主的帧循环），因此不需要加锁。
type Controller struct {
	surface   surface.Surface
	rain      *effects.RainField
	glitch    *effects.GlitchOverlay
	scheduler *Scheduler
	paused    bool
	bursts    int
}

// NewController 创建控制器并按当前画布宽度初始化列状态
func NewController(s surface.Surface, opts ControllerOptions, rng effects.Random) (*Controller, error) {
	if s == nil {
		return nil, fmt.Errorf("surface is nil")
	}
	if opts.RainInterval <= 0 || opts.GlitchInterval <= 0 {
		return nil, fmt.Errorf("intervals must be positive (rain=%s glitch=%s)", opts.RainInterval, opts.GlitchInterval)
	}

	rain, err := effects.NewRainField(opts.Rain, opts.Alphabet, rng)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		surface:   s,
		rain:      rain,
		glitch:    effects.NewGlitchOverlay(opts.Glitch, rng),
		scheduler: NewScheduler(),
	}

	width, height := s.Size()
	c.rain.Initialize(width)

	c.scheduler.Every(TaskRain, opts.RainInterval, func() {
		c.rain.Tick(c.surface)
	})
	c.scheduler.Every(TaskGlitch, opts.GlitchInterval, func() {
		if c.glitch.Tick(c.surface) {
			c.bursts++
		}
	})

	log.Printf("[Controller] created: surface=%dx%d columns=%d", width, height, c.rain.Columns())
	return c, nil
}

// Update 推进 dt 秒；暂停或停止时不绘制
func (c *Controller) Update(dt float64) {
	if c.paused {
		return
	}
	c.scheduler.Advance(dt)
}

// Resize 处理宿主的尺寸变化通知
func (c *Controller) Resize(width, height int) {
	if w, h := c.surface.Size(); w == width && h == height {
		return
	}
	c.surface.Resize(width, height)
	c.rain.Resize(width)
	log.Printf("[Controller] resized to %dx%d, columns=%d", width, height, c.rain.Columns())
}

// Stop 停止所有定时任务，宿主视图卸载时调用
func (c *Controller) Stop() {
	c.scheduler.Stop()
}

// SetPaused 设置暂停状态
func (c *Controller) SetPaused(paused bool) {
	c.paused = paused
}

// TogglePaused 切换暂停状态并返回新状态
func (c *Controller) TogglePaused() bool {
	c.paused = !c.paused
	log.Printf("[Controller] paused=%v", c.paused)
	return c.paused
}

// Surface 返回控制器使用的画布
func (c *Controller) Surface() surface.Surface {
	return c.surface
}

// Rain 返回数字雨组件
func (c *Controller) Rain() *effects.RainField {
	return c.rain
}

// Stats 返回运行统计
func (c *Controller) Stats() Stats {
	return Stats{
		Columns:      c.rain.Columns(),
		ResizePolicy: c.rain.Policy(),
		RainTicks:    c.scheduler.Fired(TaskRain),
		Resets:       c.rain.Resets(),
		GlitchTicks:  c.scheduler.Fired(TaskGlitch),
		Bursts:       c.bursts,
		Paused:       c.paused,
		Stopped:      c.scheduler.Stopped(),
	}
}
