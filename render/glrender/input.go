package glrender

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/plus3/breakout/breakout"
)

var keyBindings = map[glfw.Key]breakout.Key{
	glfw.KeyEscape:     breakout.KeyEscape,
	glfw.KeyA:          breakout.KeyA,
	glfw.KeyD:          breakout.KeyD,
	glfw.KeyLeft:       breakout.KeyLeft,
	glfw.KeyRight:      breakout.KeyRight,
	glfw.KeyR:          breakout.KeyR,
	glfw.KeySpace:      breakout.KeySpace,
	glfw.KeyEqual:      breakout.KeyPlus,
	glfw.KeyKPAdd:      breakout.KeyPlus,
	glfw.KeyMinus:      breakout.KeyMinus,
	glfw.KeyKPSubtract: breakout.KeyMinus,
	glfw.KeyH:          breakout.KeyH,
}

// Input collects key presses between two PollEvents calls.
type Input struct {
	pressed     map[breakout.Key]bool
	shouldClose func() bool
}

// NewInput returns an Input whose CloseRequested calls shouldClose.
func NewInput(shouldClose func() bool) *Input {
	return &Input{pressed: make(map[breakout.Key]bool), shouldClose: shouldClose}
}

func (in *Input) CloseRequested() bool {
	return in.shouldClose != nil && in.shouldClose()
}

func (in *Input) JustPressed(key breakout.Key) bool {
	return in.pressed[key]
}

// KeyCallback records presses. Repeats and releases are ignored.
func (in *Input) KeyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	if k, ok := keyBindings[key]; ok {
		in.pressed[k] = true
	}
}

// Clear forgets this frame's presses.
func (in *Input) Clear() {
	clear(in.pressed)
}
