// Package app 提供桌面端数字雨应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 cmd/matrixrain 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/matrixrain/pkg/config"
	"github.com/decker502/matrixrain/pkg/effects"
	"github.com/decker502/matrixrain/pkg/game"
	"github.com/decker502/matrixrain/pkg/surface"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 用户配置文件路径，为空则只使用嵌入的默认配置
	ConfigPath string
	// Theme 主题名称，为空则使用上次保存的主题
	Theme string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// Fullscreen 以全屏模式启动
	Fullscreen bool
	// Overrides 命令行对配置的覆盖
	Overrides config.Overrides
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	controller *game.Controller
	canvas     *surface.EbitenSurface
	settings   *game.SettingsManager
	rainConfig *config.RainConfig

	// fullscreenFlag 来自命令行，只影响本次启动，不写入设置
	fullscreenFlag bool

	// Layout 记录的外部尺寸，在下一次 Update 中应用
	pendingWidth  int
	pendingHeight int

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	settings := game.NewSettingsManager(game.OpenStorage(game.AppName))

	theme := cfg.Theme
	if theme == "" {
		theme = settings.GetSettings().Theme
	}

	rainConfig, err := config.LoadRainConfig(theme, cfg.ConfigPath)
	if err != nil && cfg.Theme == "" && theme != "" {
		// 保存的主题可能已不存在，回退到默认配置
		log.Printf("[App] Warning: saved theme %q unusable: %v", theme, err)
		theme = ""
		settings.SetTheme("")
		rainConfig, err = config.LoadRainConfig("", cfg.ConfigPath)
	}
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	if err := rainConfig.ApplyOverrides(cfg.Overrides); err != nil {
		return nil, err
	}
	if cfg.Theme != "" {
		settings.SetTheme(cfg.Theme)
	}
	log.Printf("[App] theme=%q window=%dx%d", theme, rainConfig.Window.Width, rainConfig.Window.Height)

	fonts, err := game.NewFontManager()
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}
	if rainConfig.Rain.FontFile != "" {
		if err := fonts.LoadFontFile(rainConfig.Rain.FontFamily, rainConfig.Rain.FontFile); err != nil {
			return nil, fmt.Errorf("字体加载失败: %w", err)
		}
	}

	opts, err := game.OptionsFromConfig(rainConfig)
	if err != nil {
		return nil, err
	}

	canvas := surface.NewEbitenSurface(rainConfig.Window.Width, rainConfig.Window.Height, fonts)
	controller, err := game.NewController(canvas, opts, effects.NewRandom(cfg.Seed))
	if err != nil {
		return nil, fmt.Errorf("控制器初始化失败: %w", err)
	}

	return &App{
		controller:     controller,
		canvas:         canvas,
		settings:       settings,
		rainConfig:     rainConfig,
		fullscreenFlag: cfg.Fullscreen,
	}, nil
}

// Update 更新动画逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.rainConfig.Window.Width, a.rainConfig.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.rainConfig.Window.Width, a.rainConfig.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		log.Printf("[App] Escape pressed, terminating")
		return ebiten.Termination
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.controller.TogglePaused()
	}

	// F3 切换调试信息
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		a.settings.SetShowDebug(!a.settings.GetSettings().ShowDebug)
	}

	a.applyPendingResize()

	a.controller.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settings.SetFullscreen(false)
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
		a.settings.SetFullscreen(true)
	}
}

// applyPendingResize 将 Layout 记录的尺寸同步到控制器
func (a *App) applyPendingResize() {
	if a.pendingWidth <= 0 || a.pendingHeight <= 0 {
		return
	}
	a.controller.Resize(a.pendingWidth, a.pendingHeight)
}

// Draw 绘制画面
// 离屏画布跨帧保留内容，这里只负责将其复制到屏幕
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	screen.DrawImage(a.canvas.Image(), nil)

	if a.settings.GetSettings().ShowDebug {
		stats := a.controller.Stats()
		w, h := a.canvas.Size()
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"TPS: %0.1f  FPS: %0.1f\ncanvas: %dx%d  columns: %d  resize: %s\nrain: %d  resets: %d\nglitch: %d  bursts: %d\npaused: %v",
			ebiten.ActualTPS(), ebiten.ActualFPS(), w, h, stats.Columns, stats.ResizePolicy,
			stats.RainTicks, stats.Resets, stats.GlitchTicks, stats.Bursts, stats.Paused,
		))
	}
}

// Layout 返回逻辑屏幕尺寸
// 画布跟随窗口尺寸，新尺寸在下一次 Update 中应用
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.pendingWidth, a.pendingHeight = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// RainConfig 返回生效的配置，main 用它设置窗口
func (a *App) RainConfig() *config.RainConfig {
	return a.rainConfig
}

// Fullscreen 返回是否应以全屏启动：命令行要求或上次用 F11 保存的状态
func (a *App) Fullscreen() bool {
	return a.fullscreenFlag || a.settings.GetSettings().Fullscreen
}

// Close 停止动画并保存设置
// 在 ebiten.RunGame 返回后调用
func (a *App) Close() error {
	a.controller.Stop()
	if err := a.settings.Save(); err != nil {
		return fmt.Errorf("保存设置失败: %w", err)
	}
	return nil
}
