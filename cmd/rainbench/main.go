// Command rainbench 无头运行数字雨并统计绘制次数与触发频率
//
// 用于检查配置（主题、概率、间隔）在给定时长内的实际效果，不需要窗口或终端。
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/decker502/matrixrain"
	"github.com/decker502/matrixrain/pkg/config"
	"github.com/decker502/matrixrain/pkg/effects"
	"github.com/decker502/matrixrain/pkg/embedded"
	"github.com/decker502/matrixrain/pkg/game"
	"github.com/decker502/matrixrain/pkg/surface"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath string
		theme      string
		seed       int64
		duration   time.Duration
		tps        int
		overrides  config.Overrides
	)

	pflag.StringVarP(&configPath, "config", "c", "", "Path to a YAML config file merged over the defaults")
	pflag.StringVarP(&theme, "theme", "t", "", "Theme name")
	pflag.Int64Var(&seed, "seed", 1, "Random seed (0 = time based)")
	pflag.DurationVarP(&duration, "duration", "d", time.Minute, "Simulated run time")
	pflag.IntVar(&tps, "tps", 60, "Simulated host ticks per second")
	pflag.IntVar(&overrides.FontSize, "font-size", 0, "Glyph size in pixels (0 = from config)")
	pflag.IntVar(&overrides.Width, "width", 0, "Surface width (0 = from config)")
	pflag.IntVar(&overrides.Height, "height", 0, "Surface height (0 = from config)")
	pflag.Parse()

	if tps <= 0 || duration <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --tps and --duration must be positive")
		return 1
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

	report, err := bench(cfg, seed, duration, tps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	report.print(cfg)
	return 0
}

type benchReport struct {
	stats     game.Stats
	glyphs    int
	fades     int
	rects     int
	maxDrop   int
	simulated time.Duration
	wallClock time.Duration
}

func bench(cfg *config.RainConfig, seed int64, duration time.Duration, tps int) (*benchReport, error) {
	opts, err := game.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	rec := surface.NewRecorder(cfg.Window.Width, cfg.Window.Height)
	rec.Discard = true
	controller, err := game.NewController(rec, opts, effects.NewRandom(seed))
	if err != nil {
		return nil, err
	}

	report := &benchReport{}
	dt := 1.0 / float64(tps)
	frames := int(duration.Seconds() * float64(tps))
	start := time.Now()

	for i := 0; i < frames; i++ {
		controller.Update(dt)
		for _, d := range controller.Rain().Drops() {
			report.maxDrop = max(report.maxDrop, d)
		}
	}
	controller.Stop()

	report.wallClock = time.Since(start)
	report.simulated = time.Duration(frames) * time.Second / time.Duration(tps)
	report.stats = controller.Stats()
	report.glyphs = rec.Count(surface.OpFillText)
	report.fades = rec.Count(surface.OpFillRect)
	report.rects = rec.Count(surface.OpStrokeRect)
	return report, nil
}

func (r *benchReport) print(cfg *config.RainConfig) {
	fmt.Printf("surface:        %dx%d, %d columns\n", cfg.Window.Width, cfg.Window.Height, r.stats.Columns)
	fmt.Printf("simulated:      %s in %s\n", r.simulated, r.wallClock.Round(time.Millisecond))
	fmt.Printf("rain ticks:     %d (fades %d, glyphs %d)\n", r.stats.RainTicks, r.fades, r.glyphs)
	fmt.Printf("glitch ticks:   %d (bursts %d, rects %d)\n", r.stats.GlitchTicks, r.stats.Bursts, r.rects)
	if rate, ok := r.resetRate(); ok {
		fmt.Printf("reset rate:     %.4f (configured %.4f)\n", rate, cfg.Rain.ResetProbability)
	}
	if r.stats.GlitchTicks > 0 {
		fmt.Printf("burst rate:     %.4f (configured %.4f)\n", float64(r.stats.Bursts)/float64(r.stats.GlitchTicks), cfg.Glitch.Probability)
	}
	fmt.Printf("max drop row:   %d\n", r.maxDrop)
}

// resetRate 每个绘制的字符对应一次重置判定
func (r *benchReport) resetRate() (float64, bool) {
	if r.glyphs == 0 {
		return 0, false
	}
	return float64(r.stats.Resets) / float64(r.glyphs), true
}
