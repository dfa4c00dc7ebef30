package termrender_test

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/breakout/breakout"
	"github.com/plus3/breakout/render/termrender"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)
	return screen
}

func row(screen tcell.SimulationScreen, y int) string {
	width, _ := screen.Size()
	var b strings.Builder
	for x := range width {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestColor(t *testing.T) {
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), termrender.Color(mgl32.Vec3{1, 0, 0}))
	assert.Equal(t, tcell.NewRGBColor(0, 0, 255), termrender.Color(mgl32.Vec3{0, 0, 2}))
}

func TestStatus(t *testing.T) {
	state := &breakout.GameState{}
	breakout.ResetGame(state, breakout.DefaultLayout())
	state.Score = 120

	status := termrender.Status(state, 1500*time.Millisecond)
	assert.Contains(t, status, "Score 120")
	assert.Contains(t, status, "Lives 3")
	assert.Contains(t, status, "Blocks 60/60")
	assert.Contains(t, status, "00:00:01.500")
}

func TestDrawScene(t *testing.T) {
	screen := newScreen(t, 40, 11)
	scene := &breakout.Scene{
		Background: mgl32.Vec3{0, 0, 0},
		Quads: []breakout.Quad{
			{Center: mgl32.Vec2{0, 0}, Size: mgl32.Vec2{0.1, 0.1}, Color: mgl32.Vec3{0, 1, 0}},
		},
	}

	termrender.Draw(screen, scene, "hello")
	assert.True(t, strings.HasPrefix(row(screen, 0), "hello"))

	r, _, style, _ := screen.GetContent(20, 6)
	assert.Equal(t, '█', r)
	fg, _, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(0, 255, 0), fg)

	r, _, _, _ = screen.GetContent(0, 10)
	assert.Equal(t, ' ', r)
}

func TestDrawTinyQuadCoversACell(t *testing.T) {
	screen := newScreen(t, 20, 11)
	scene := &breakout.Scene{
		Quads: []breakout.Quad{
			{Center: mgl32.Vec2{0, 0}, Size: mgl32.Vec2{0.001, 0.001}, Color: mgl32.Vec3{1, 1, 1}},
		},
	}

	termrender.Draw(screen, scene, "")
	count := 0
	for y := 1; y < 11; y++ {
		count += strings.Count(row(screen, y), "█")
	}
	assert.Equal(t, 1, count)
}

func TestInputHandleEvent(t *testing.T) {
	in := termrender.NewInput()

	in.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	in.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	in.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '=', tcell.ModNone))
	in.HandleEvent(tcell.NewEventResize(80, 24))

	assert.True(t, in.JustPressed(breakout.KeyA))
	assert.True(t, in.JustPressed(breakout.KeyRight))
	assert.True(t, in.JustPressed(breakout.KeyPlus))
	assert.False(t, in.JustPressed(breakout.KeyD))
	assert.False(t, in.CloseRequested())

	in.Clear()
	assert.False(t, in.JustPressed(breakout.KeyA))

	in.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	assert.True(t, in.CloseRequested())
}

func TestRunStopsOnEscape(t *testing.T) {
	screen := newScreen(t, 60, 20)
	input := termrender.NewInput()

	w := breakout.NewWorld(breakout.DefaultConfig(), time.Now())
	w.Schedule(&breakout.InputSystem{Input: input},
		&breakout.SceneSystem{},
		&termrender.RenderSystem{Screen: screen},
	)

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- termrender.Run(w, screen, input, time.Millisecond) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	assert.False(t, w.Running())
	assert.Positive(t, w.Clock.Get().FrameCounter)
}

func TestForwardEventsStopsWhenDone(t *testing.T) {
	poll := func() tcell.Event { return tcell.NewEventResize(10, 10) }
	events := make(chan tcell.Event)
	done := make(chan struct{})

	returned := make(chan struct{})
	go func() {
		termrender.ForwardEvents(poll, events, done)
		close(returned)
	}()

	<-events
	close(done)

	select {
	case <-returned:
	case <-time.After(5 * time.Second):
		t.Fatal("forwardEvents blocked after done was closed")
	}
}

func TestForwardEventsStopsOnNil(t *testing.T) {
	queue := []tcell.Event{tcell.NewEventResize(10, 10), nil}
	poll := func() tcell.Event {
		ev := queue[0]
		queue = queue[1:]
		return ev
	}
	events := make(chan tcell.Event, 1)

	termrender.ForwardEvents(poll, events, make(chan struct{}))
	require.Len(t, events, 1)
	assert.IsType(t, &tcell.EventResize{}, <-events)
}
