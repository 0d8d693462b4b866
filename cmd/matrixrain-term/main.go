// Command matrixrain-term 在终端中播放数字雨
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"

	"github.com/decker502/matrixrain"
	"github.com/decker502/matrixrain/pkg/config"
	"github.com/decker502/matrixrain/pkg/effects"
	"github.com/decker502/matrixrain/pkg/embedded"
	"github.com/decker502/matrixrain/pkg/game"
	"github.com/decker502/matrixrain/pkg/terminal"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath string
		theme      string
		logFile    string
		seed       int64
		overrides  config.Overrides
	)

	pflag.StringVarP(&configPath, "config", "c", "", "Path to a YAML config file merged over the defaults")
	pflag.StringVarP(&theme, "theme", "t", "", "Theme name")
	pflag.StringVar(&logFile, "log-file", "", "Write logs to this file (the terminal is busy drawing)")
	pflag.Int64Var(&seed, "seed", 0, "Random seed (0 = time based)")
	pflag.IntVar(&overrides.FontSize, "font-size", 0, "Pixels per terminal cell; only affects rain geometry (0 = from config)")
	pflag.StringVar(&overrides.ResizePolicy, "resize-policy", "", "Column handling on resize: rederive or preserve")
	pflag.Parse()

	log.SetOutput(io.Discard)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		log.SetOutput(f)
	}

	embedded.Init(matrixrain.DataFS)

	cfg, err := config.LoadRainConfig(theme, configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	if err := cfg.ApplyOverrides(overrides); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	opts, err := game.OptionsFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	// Panic Recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nMATRIXRAIN CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()
	screen.HideCursor()

	host, err := terminal.NewHost(screen, float64(cfg.Rain.FontSize), opts, effects.NewRandom(seed))
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	host.Run()
	return 0
}
