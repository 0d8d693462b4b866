// Command matrixrain 在桌面窗口中播放数字雨
package main

import (
	"fmt"
	"os"

	"github.com/decker502/matrixrain"
	"github.com/decker502/matrixrain/pkg/app"
	"github.com/decker502/matrixrain/pkg/config"
	"github.com/decker502/matrixrain/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		cfg        app.Config
		listThemes bool
	)

	pflag.StringVarP(&cfg.ConfigPath, "config", "c", "", "Path to a YAML config file merged over the defaults")
	pflag.StringVarP(&cfg.Theme, "theme", "t", "", "Theme name (see --list-themes)")
	pflag.BoolVar(&listThemes, "list-themes", false, "List the built-in themes and exit")
	pflag.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose logging")
	pflag.Int64Var(&cfg.Seed, "seed", 0, "Random seed (0 = time based)")
	pflag.IntVar(&cfg.Overrides.FontSize, "font-size", 0, "Glyph size in pixels (0 = from config)")
	pflag.StringVar(&cfg.Overrides.ResizePolicy, "resize-policy", "", "Column handling on resize: rederive or preserve")
	pflag.IntVar(&cfg.Overrides.Width, "width", 0, "Initial window width (0 = from config)")
	pflag.IntVar(&cfg.Overrides.Height, "height", 0, "Initial window height (0 = from config)")
	pflag.BoolVar(&cfg.Fullscreen, "fullscreen", false, "Start in fullscreen mode")
	pflag.Parse()

	embedded.Init(matrixrain.DataFS)

	if listThemes {
		names, err := config.ListThemes()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing themes: %v\n", err)
			return 1
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return 0
	}

	rainApp, err := app.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		return 1
	}

	window := rainApp.RainConfig().Window
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(rainApp.Fullscreen())

	runErr := ebiten.RunGame(rainApp)
	if err := rainApp.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", runErr)
		return 1
	}
	return 0
}
