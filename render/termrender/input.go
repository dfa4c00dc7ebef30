package termrender

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/breakout/breakout"
)

var runeBindings = map[rune]breakout.Key{
	'a': breakout.KeyA,
	'A': breakout.KeyA,
	'd': breakout.KeyD,
	'D': breakout.KeyD,
	'r': breakout.KeyR,
	'R': breakout.KeyR,
	' ': breakout.KeySpace,
	'+': breakout.KeyPlus,
	'=': breakout.KeyPlus,
	'-': breakout.KeyMinus,
	'h': breakout.KeyH,
	'H': breakout.KeyH,
}

var keyBindings = map[tcell.Key]breakout.Key{
	tcell.KeyEscape: breakout.KeyEscape,
	tcell.KeyLeft:   breakout.KeyLeft,
	tcell.KeyRight:  breakout.KeyRight,
}

// Input collects terminal key events between two frames.
type Input struct {
	pressed map[breakout.Key]bool
	closed  bool
}

func NewInput() *Input {
	return &Input{pressed: make(map[breakout.Key]bool)}
}

func (in *Input) CloseRequested() bool {
	return in.closed
}

func (in *Input) JustPressed(key breakout.Key) bool {
	return in.pressed[key]
}

// HandleEvent records a key event. Ctrl-C requests a close.
func (in *Input) HandleEvent(ev tcell.Event) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}

	switch key.Key() {
	case tcell.KeyCtrlC:
		in.closed = true
	case tcell.KeyRune:
		if k, ok := runeBindings[key.Rune()]; ok {
			in.pressed[k] = true
		}
	default:
		if k, ok := keyBindings[key.Key()]; ok {
			in.pressed[k] = true
		}
	}
}

// Clear forgets this frame's presses.
func (in *Input) Clear() {
	clear(in.pressed)
}
