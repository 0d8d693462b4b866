package main

import (
	"math"
	"testing"
	"time"

	"github.com/decker502/matrixrain/pkg/config"
)

// TestBenchCounts 测试无头运行的计数关系
func TestBenchCounts(t *testing.T) {
	cfg := config.DefaultRainConfig()

	report, err := bench(cfg, 7, 10*time.Second, 60)
	if err != nil {
		t.Fatalf("bench() error: %v", err)
	}

	if report.stats.Columns != 56 {
		t.Errorf("Columns: got %d, want 56", report.stats.Columns)
	}
	// 10 秒内 40ms 间隔约 250 次
	if report.stats.RainTicks < 248 || report.stats.RainTicks > 250 {
		t.Errorf("RainTicks: got %d, want ~250", report.stats.RainTicks)
	}
	if report.fades != report.stats.RainTicks {
		t.Errorf("fades: got %d, want %d", report.fades, report.stats.RainTicks)
	}
	if report.glyphs != report.stats.RainTicks*report.stats.Columns {
		t.Errorf("glyphs: got %d, want %d", report.glyphs, report.stats.RainTicks*report.stats.Columns)
	}
	if report.rects != report.stats.Bursts*cfg.Glitch.RectCount {
		t.Errorf("rects: got %d, want %d", report.rects, report.stats.Bursts*cfg.Glitch.RectCount)
	}
	if !report.stats.Stopped {
		t.Error("controller should be stopped after the run")
	}
}

// TestBenchResetRate 测试每帧跨多个绘制间隔时重置率仍接近配置值
func TestBenchResetRate(t *testing.T) {
	cfg := config.DefaultRainConfig()

	for _, tps := range []int{10, 60} {
		report, err := bench(cfg, 3, time.Minute, tps)
		if err != nil {
			t.Fatalf("bench(tps=%d) error: %v", tps, err)
		}
		rate, ok := report.resetRate()
		if !ok {
			t.Fatalf("tps=%d: no glyphs drawn", tps)
		}
		if math.Abs(rate-cfg.Rain.ResetProbability) > 0.005 {
			t.Errorf("tps=%d reset rate: got %.4f, want %.3f ± 0.005", tps, rate, cfg.Rain.ResetProbability)
		}
	}
}

// TestBenchInvalidConfig 测试非法配置
func TestBenchInvalidConfig(t *testing.T) {
	cfg := config.DefaultRainConfig()
	cfg.Rain.GlyphColor = "nope"

	if _, err := bench(cfg, 1, time.Second, 60); err == nil {
		t.Error("bench() expected error for invalid color")
	}
}
