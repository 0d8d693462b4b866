package terminal

import (
	"log"
	"time"

	"github.com/decker502/matrixrain/pkg/effects"
	"github.com/decker502/matrixrain/pkg/game"
	"github.com/gdamore/tcell/v2"
)

// FrameInterval 终端刷新间隔（约 60 FPS）
const FrameInterval = 16 * time.Millisecond

// Host 在 tcell 屏幕上驱动控制器
//
// 事件读取在独立 goroutine 中进行，通过通道交给主循环；
// 控制器只在主循环中被访问。
type Host struct {
	screen     tcell.Screen
	surface    *CellSurface
	controller *game.Controller
}

// NewHost 按屏幕当前尺寸创建字符画布与控制器
// cellSize 为一个字符单元对应的像素边长，通常等于字号
func NewHost(screen tcell.Screen, cellSize float64, opts game.ControllerOptions, rng effects.Random) (*Host, error) {
	cols, rows := screen.Size()
	surface := NewCellSurface(cols, rows, cellSize)
	controller, err := game.NewController(surface, opts, rng)
	if err != nil {
		return nil, err
	}
	return &Host{
		screen:     screen,
		surface:    surface,
		controller: controller,
	}, nil
}

// Controller 返回控制器
func (h *Host) Controller() *game.Controller {
	return h.controller
}

// Surface 返回字符画布
func (h *Host) Surface() *CellSurface {
	return h.surface
}

// HandleEvent 处理一个终端事件，返回 false 表示退出
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'c' && ev.Modifiers()&tcell.ModCtrl != 0) {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
			h.controller.TogglePaused()
		}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		cellSize := h.surface.CellSize()
		h.controller.Resize(int(float64(cols)*cellSize), int(float64(rows)*cellSize))
		h.screen.Sync()
	}
	return true
}

// Frame 推进 dt 秒并刷新屏幕
func (h *Host) Frame(dt float64) {
	h.controller.Update(dt)
	h.surface.Flush(h.screen)
	h.screen.Show()
}

// Run 运行主循环直到用户退出或屏幕关闭
func (h *Host) Run() {
	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()
	defer h.controller.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go h.pollEvents(eventChan, done)

	last := time.Now()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !h.HandleEvent(ev) {
				log.Printf("[Host] exiting")
				return
			}

		case now := <-ticker.C:
			h.Frame(now.Sub(last).Seconds())
			last = now
		}
	}
}

// pollEvents 将屏幕事件转发到 events，屏幕关闭时关闭 events
// done 关闭后不再发送，避免主循环退出后阻塞
func (h *Host) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := h.screen.PollEvent()
		// 屏幕关闭后 PollEvent 返回 nil
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}
