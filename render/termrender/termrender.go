// Package termrender previews a breakout world in a terminal with tcell.
package termrender

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/breakout/breakout"
	"github.com/plus3/breakout/ecs"
)

const hudRows = 1

// RenderSystem draws the Scene and a status line onto Screen.
type RenderSystem struct {
	Scene  ecs.Singleton[breakout.Scene]
	State  ecs.Singleton[breakout.GameState]
	Clock  ecs.Singleton[breakout.Clock]
	Screen tcell.Screen
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	scene, state := s.Scene.Get(), s.State.Get()
	if scene == nil || state == nil || s.Screen == nil {
		return
	}
	var runtime time.Duration
	if clock := s.Clock.Get(); clock != nil {
		runtime = clock.Runtime
	}

	Draw(s.Screen, scene, Status(state, runtime))
	s.Screen.Show()
}

// Status is the text of the top line.
func Status(state *breakout.GameState, runtime time.Duration) string {
	return fmt.Sprintf(" Score %d  Lives %d  Blocks %d/%d  %s",
		state.Score, state.Lives, state.ActiveBlocks(), breakout.GridRows*breakout.GridCols,
		breakout.FormatDuration(runtime))
}

// Draw paints the scene below a status line. Every quad covers at least one
// cell.
func Draw(screen tcell.Screen, scene *breakout.Scene, status string) {
	width, height := screen.Size()
	background := tcell.StyleDefault.Background(Color(scene.Background))
	screen.Fill(' ', background)

	hud := tcell.StyleDefault.Reverse(true)
	for x := range width {
		screen.SetContent(x, 0, ' ', nil, hud)
	}
	for x, r := range []rune(status) {
		if x >= width {
			break
		}
		screen.SetContent(x, 0, r, nil, hud)
	}

	field := float32(height - hudRows)
	for _, q := range scene.Quads {
		x, y, w, h := q.Pixels(float32(width), field)
		style := background.Foreground(Color(q.Color))

		left, top := round(x), round(y)+hudRows
		right := max(round(x+w), left+1)
		bottom := max(round(y+h)+hudRows, top+1)
		for cy := max(top, hudRows); cy < min(bottom, height); cy++ {
			for cx := max(left, 0); cx < min(right, width); cx++ {
				screen.SetContent(cx, cy, '█', nil, style)
			}
		}
	}
}

func round(v float32) int {
	return int(math.Round(float64(v)))
}

// Color converts a linear 0..1 colour into a true-colour tcell colour.
func Color(c mgl32.Vec3) tcell.Color {
	r, g, b := breakout.ToColorful(c).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// forwardEvents sends polled events to events until poll returns nil or done
// is closed.
func forwardEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Run steps w every interval until its session ends, feeding terminal
// events to input. It returns the error that ended the session.
func Run(w *breakout.World, screen tcell.Screen, input *Input, interval time.Duration) error {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go forwardEvents(screen.PollEvent, events, done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for w.Running() {
		select {
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
			input.HandleEvent(ev)
		case now := <-ticker.C:
			w.Step(now.Sub(last).Seconds())
			last = now
			input.Clear()
		}
	}
	return w.Err()
}
