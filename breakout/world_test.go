package breakout_test

import (
	"testing"

	"github.com/plus3/breakout/breakout"
	"github.com/plus3/breakout/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Marker struct{}

func TestNewWorld(t *testing.T) {
	cfg := breakout.DefaultConfig()
	cfg.Lives = 7

	registered := false
	w := breakout.NewWorld(cfg, epoch, func(r *ecs.ComponentRegistry) {
		ecs.RegisterComponent[Marker](r)
		registered = true
	})
	require.True(t, registered)
	assert.NotPanics(t, func() { w.Storage.Spawn(Marker{}) })

	assert.True(t, w.Running())
	assert.NoError(t, w.Err())
	assert.Equal(t, 7, w.State.Get().Lives)
	assert.Equal(t, breakout.GridRows*breakout.GridCols, w.State.Get().ActiveBlocks())
	assert.Equal(t, cfg.Window.Title, w.Settings.Get().Title)
	assert.Equal(t, epoch, w.Clock.Get().RunStart)

	for _, side := range []breakout.Side{breakout.SideLeft, breakout.SideRight} {
		transform, paddle := w.Paddle(side)
		require.NotNil(t, transform, side.String())
		require.NotNil(t, paddle, side.String())
		assert.Equal(t, side, paddle.Side)
		assert.Less(t, paddle.Min, paddle.Max)
		assert.GreaterOrEqual(t, paddle.Min, cfg.Paddle.Min)
		assert.LessOrEqual(t, paddle.Max, cfg.Paddle.Max)
		assert.Equal(t, paddle.Clamp(transform.Position.X()), transform.Position.X())
	}

	left, _ := w.Paddle(breakout.SideLeft)
	right, _ := w.Paddle(breakout.SideRight)
	assert.Less(t, left.Position.X()+left.Size.X()/2, right.Position.X()-right.Size.X()/2)

	require.True(t, w.Ball.Valid())
	assert.NotNil(t, ecs.ReadComponent[breakout.Ball](w.Storage, w.Ball.Id))
	assert.NotNil(t, w.BallTransform())
	assert.False(t, w.BallHidden())
}

func TestRefsFollowArchetypeMoves(t *testing.T) {
	w := breakout.NewWorld(breakout.DefaultConfig(), epoch)
	left := w.Paddles[breakout.SideLeft]
	before := left.Id

	moved := w.Storage.AddComponent(before, breakout.Hidden{})
	require.NotZero(t, moved)
	assert.NotEqual(t, before, moved)
	assert.False(t, w.Storage.Alive(before))
	assert.Equal(t, moved, left.Id)

	transform, paddle := w.Paddle(breakout.SideLeft)
	require.NotNil(t, transform)
	require.NotNil(t, paddle)
	assert.Equal(t, breakout.SideLeft, paddle.Side)

	w.Storage.Delete(left.Id)
	assert.False(t, left.Valid())
	transform, paddle = w.Paddle(breakout.SideLeft)
	assert.Nil(t, transform)
	assert.Nil(t, paddle)
}

func TestWorldFailStopsRun(t *testing.T) {
	w := breakout.NewWorld(breakout.DefaultConfig(), epoch)
	w.Schedule(&breakout.InputSystem{}, &breakout.SceneSystem{})

	err := w.State.Get().DestroyBlock(breakout.GridRows, 0)
	w.Session.Get().Fail(err)

	w.Step(0)
	assert.False(t, w.Running())
	assert.ErrorIs(t, w.Err(), breakout.ErrBlockOutOfRange)
	assert.Equal(t, 1, w.Clock.Get().FrameCounter)
}

func TestScheduleOrder(t *testing.T) {
	w := breakout.NewWorld(breakout.DefaultConfig(), epoch)
	w.Schedule(&breakout.InputSystem{}, &breakout.SceneSystem{})
	w.Step(0)

	var names []string
	for _, sys := range w.Scheduler.GetStats().Systems {
		names = append(names, sys.Name)
	}
	assert.Equal(t, []string{"ClockSystem", "InputSystem", "PaddleBoundsSystem", "SceneSystem", "FrameCounterSystem"}, names)
}
