package tui

import (
	"hashhunt/pkg/engine/input"
	"hashhunt/pkg/game/gameplay"
	"hashhunt/pkg/game/state"
)

// WaitMission keeps the screen live while a mission runs on another goroutine: every countdown
// tick redraws the frame, and Escape, Q or X cancel the mission. It returns once done is closed.
// Other keys are ignored; a read still running when the mission ends is kept for GetInput.
func (t *TUIRenderer) WaitMission(g *state.Game, ticks <-chan int, done <-chan struct{}) {
	for {
		select {
		case n := <-ticks:
			g.Countdown = n
			t.redraw(g)
		case k := <-t.nextKey():
			t.reading = false
			intent := keyIntent(k)
			if intent.Action != input.ActionDismiss && intent.Action != input.ActionQuit {
				continue
			}
			if gameplay.CancelMission(g) {
				t.redraw(g)
			}
			if k.err != nil {
				// stdin is gone; one cancel is all we can do
				<-done
				return
			}
		case <-done:
			return
		}
	}
}

func (t *TUIRenderer) redraw(g *state.Game) {
	t.Clear()
	t.RenderFrame(g)
}
