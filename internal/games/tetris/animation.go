package tetris

import "fmt"

// Animation durations in milliseconds, converted to ticks at reset.
const (
	flashMs = 120
	blinkMs = 75
	popupMs = 900
)

// animations holds render-only feedback. It never affects engine state.
type animations struct {
	flashTicks int
	blinkTicks int
	popupTicks int

	flash     map[Point]int // Placed cells still flashing, by remaining ticks
	popup     string
	popupLeft int
	frame     int
}

func newAnimations(tickRate int) animations {
	toTicks := func(ms int) int {
		return max(1, tickRate*ms/1000)
	}
	return animations{
		flashTicks: toTicks(flashMs),
		blinkTicks: toTicks(blinkMs),
		popupTicks: toTicks(popupMs),
		flash:      make(map[Point]int),
	}
}

// apply starts the feedback for an engine event.
func (a *animations) apply(ev Event) {
	switch ev.Kind {
	case EventPlaced:
		for _, p := range ev.Cells {
			a.flash[p] = a.flashTicks
		}
	case EventLinesCleared:
		a.popup = fmt.Sprintf("+%d", ev.Points)
		if len(ev.Rows) == 4 {
			a.popup = "TETRIS! " + a.popup
		}
		a.popupLeft = a.popupTicks
	case EventRowsRemoved:
		// Rows shifted; flashing coordinates no longer match the board.
		clear(a.flash)
	case EventGameOver:
		a.popup = ""
		a.popupLeft = 0
	}
}

// step ages every running animation by one tick.
func (a *animations) step() {
	a.frame++
	for p, left := range a.flash {
		if left <= 1 {
			delete(a.flash, p)
			continue
		}
		a.flash[p] = left - 1
	}
	if a.popupLeft > 0 {
		a.popupLeft--
		if a.popupLeft == 0 {
			a.popup = ""
		}
	}
}

// flashing reports whether a placed cell is still highlighted.
func (a *animations) flashing(p Point) bool {
	return a.flash[p] > 0
}

// blinkOn reports the phase of the cleared-row blink.
func (a *animations) blinkOn() bool {
	return (a.frame/a.blinkTicks)%2 == 0
}
