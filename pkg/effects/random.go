// Package effects 实现数字雨（RainField）与故障叠加层（GlitchOverlay）
//
// 两个组件都是纯同步的：每次 Tick 在同一个逻辑线程上完成一批绘制，
// 调度由上层 game.Scheduler 负责。
package effects

import (
	"math/rand"
	"time"
)

// Random 效果组件使用的随机源
// *rand.Rand 满足该接口；测试中可替换为固定输出的实现
type Random interface {
	// Float64 返回 [0, 1) 内的随机数
	Float64() float64
	// Intn 返回 [0, n) 内的随机整数
	Intn(n int) int
}

// NewRandom 创建随机源，seed 为 0 时使用当前时间
func NewRandom(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// chance 判断一次概率为 p 的事件是否发生
// 比较方式为 rng > 1-p，p<=0 永不发生，p>=1 必然发生
func chance(rng Random, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rng.Float64() > 1-p
}
