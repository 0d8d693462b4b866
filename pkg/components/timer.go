package components

import "math"

// TimerComponent 固定间隔计时器
// 用于按固定节奏触发的任务（如数字雨重绘、故障叠加）
type TimerComponent struct {
	Name     string  // 计时器名称，如 "rain"
	Interval float64 // 触发间隔（秒）
	Elapsed  float64 // 距上次触发累计的时间（秒）
	Fired    int     // 累计触发次数
}

// Advance 推进 dt 秒，返回本次到期的次数
//
// 单次推进最多触发 maxFires 次，超出部分直接丢弃，
// 避免长时间卡顿后连续补帧。Interval 非正时永不触发。
func (t *TimerComponent) Advance(dt float64, maxFires int) int {
	if t.Interval <= 0 || dt <= 0 {
		return 0
	}

	t.Elapsed += dt
	fires := 0
	for t.Elapsed >= t.Interval {
		if fires >= maxFires {
			t.Elapsed = math.Mod(t.Elapsed, t.Interval)
			break
		}
		t.Elapsed -= t.Interval
		fires++
	}
	t.Fired += fires
	return fires
}

// Reset 清空累计时间
func (t *TimerComponent) Reset() {
	t.Elapsed = 0
}
