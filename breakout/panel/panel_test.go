package panel_test

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/breakout/breakout"
	"github.com/plus3/breakout/breakout/panel"
	"github.com/plus3/breakout/ecs"
	"github.com/plus3/breakout/ecs/debugui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPanel(t *testing.T) *panel.Panel {
	t.Helper()
	w := breakout.NewWorld(breakout.DefaultConfig(), time.Now(), debugui.RegisterDebugUIComponents)
	return panel.Spawn(w)
}

func TestSpawnAddsImguiItem(t *testing.T) {
	p := newPanel(t)

	items := ecs.NewView[struct{ *debugui.ImguiItem }](p.World.Storage)
	assert.Equal(t, 1, items.Count())
}

func TestPressTogglesBlock(t *testing.T) {
	p := newPanel(t)
	state := p.World.State.Get()
	points := state.Blocks[2][3].Points

	p.Press(2, 3)
	assert.False(t, state.Blocks[2][3].Active)
	assert.Equal(t, points, state.Score)

	p.Press(2, 3)
	assert.True(t, state.Blocks[2][3].Active)
	assert.Equal(t, points, state.Score)
	assert.True(t, p.World.Running())
}

func TestPressOutOfRangeEndsSession(t *testing.T) {
	p := newPanel(t)

	p.Press(breakout.GridRows, 0)
	assert.False(t, p.World.Running())
	require.Error(t, p.World.Err())
	assert.ErrorIs(t, p.World.Err(), breakout.ErrBlockOutOfRange)
	assert.Contains(t, p.World.Err().Error(), "debug panel")
}

func TestScoreAndLives(t *testing.T) {
	p := newPanel(t)
	state := p.World.State.Get()

	p.SetScore(1234)
	assert.Equal(t, 1234, state.Score)

	p.SetLives(9)
	assert.Equal(t, 9, state.Lives)

	p.SetLives(-2)
	assert.Equal(t, 0, state.Lives)
}

func TestSetPaddleClamps(t *testing.T) {
	p := newPanel(t)

	p.SetPaddle(breakout.SideLeft, -5)
	transform, paddle := p.World.Paddle(breakout.SideLeft)
	assert.Equal(t, paddle.Min, transform.Position.X())

	p.SetPaddle(breakout.SideRight, 5)
	transform, paddle = p.World.Paddle(breakout.SideRight)
	assert.Equal(t, paddle.Max, transform.Position.X())
}

func TestReset(t *testing.T) {
	p := newPanel(t)
	state := p.World.State.Get()

	p.Press(0, 0)
	p.SetLives(0)
	p.Reset()

	assert.Equal(t, 0, state.Score)
	assert.Equal(t, breakout.DefaultConfig().Lives, state.Lives)
	assert.False(t, state.Cleared())
	assert.Equal(t, breakout.GridRows*breakout.GridCols, state.ActiveBlocks())
}

func TestMissingStateEndsSession(t *testing.T) {
	for name, edit := range map[string]func(*panel.Panel){
		"press":  func(p *panel.Panel) { p.Press(0, 0) },
		"score":  func(p *panel.Panel) { p.SetScore(10) },
		"lives":  func(p *panel.Panel) { p.SetLives(2) },
		"reset":  func(p *panel.Panel) { p.Reset() },
		"render": func(p *panel.Panel) { p.Render() },
	} {
		t.Run(name, func(t *testing.T) {
			p := newPanel(t)
			p.World.Storage.RemoveSingleton(reflect.TypeFor[breakout.GameState]())

			edit(p)
			assert.False(t, p.World.Running())
			assert.ErrorIs(t, p.World.Err(), breakout.ErrMissingState)
		})
	}
}

func TestHideBall(t *testing.T) {
	p := newPanel(t)
	before := p.World.Ball.Id

	p.World.SetBallHidden(true)
	assert.True(t, p.World.BallHidden())
	assert.NotEqual(t, before, p.World.Ball.Id)
	require.NotNil(t, p.World.BallTransform())

	p.World.SetBallHidden(false)
	assert.False(t, p.World.BallHidden())
	require.NotNil(t, p.World.BallTransform())
}

func TestInputValueSaturates(t *testing.T) {
	assert.Equal(t, int32(42), panel.InputValue(42))
	assert.Equal(t, int32(-3), panel.InputValue(-3))
	assert.Equal(t, int32(math.MaxInt32), panel.InputValue(math.MaxInt32+10))
	assert.Equal(t, int32(math.MinInt32), panel.InputValue(math.MinInt32-10))
}

func TestLabels(t *testing.T) {
	block := breakout.Block{Points: 40, Active: true}
	assert.Equal(t, "40", panel.BlockLabel(&block))

	block.Active = false
	assert.Equal(t, "-", panel.BlockLabel(&block))

	assert.Equal(t, "Ball: (0.250, -0.500)", panel.BallText(mgl32.Vec2{0.25, -0.5}))
}
