package game

import (
	"log"
	"time"

	"github.com/decker502/matrixrain/pkg/components"
)

// DefaultMaxCatchUp 单帧内每个任务最多补执行的次数
const DefaultMaxCatchUp = 3

// task 一个固定间隔任务
type task struct {
	timer components.TimerComponent
	run   func()
}

// Scheduler 单线程协作式定时调度器
//
// 由宿主的帧循环驱动：每帧调用 Advance(dt)，到期的任务在同一线程上同步执行。
// 多个任务同时到期时按注册顺序执行。Stop 之后 Advance 不再执行任何任务。
type Scheduler struct {
	tasks      []*task
	maxCatchUp int
	stopped    bool
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	return &Scheduler{maxCatchUp: DefaultMaxCatchUp}
}

// Every 注册按 interval 周期执行的任务
func (s *Scheduler) Every(name string, interval time.Duration, fn func()) {
	s.tasks = append(s.tasks, &task{
		timer: components.TimerComponent{Name: name, Interval: interval.Seconds()},
		run:   fn,
	})
	log.Printf("[Scheduler] registered task %q every %s", name, interval)
}

// Advance 推进 dt 秒并执行到期任务
func (s *Scheduler) Advance(dt float64) {
	if s.stopped {
		return
	}
	for _, t := range s.tasks {
		fires := t.timer.Advance(dt, s.maxCatchUp)
		for i := 0; i < fires; i++ {
			t.run()
		}
	}
}

// Stop 停止调度，之后的 Advance 调用都是空操作
func (s *Scheduler) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	log.Printf("[Scheduler] stopped")
}

// Stopped 返回调度器是否已停止
func (s *Scheduler) Stopped() bool {
	return s.stopped
}

// Fired 返回指定任务的累计执行次数，任务不存在时返回 0
func (s *Scheduler) Fired(name string) int {
	for _, t := range s.tasks {
		if t.timer.Name == name {
			return t.timer.Fired
		}
	}
	return 0
}
