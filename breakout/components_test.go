package breakout_test

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/breakout/breakout"
	"github.com/stretchr/testify/assert"
)

func TestPaddleMoveClamps(t *testing.T) {
	paddle := breakout.Paddle{Speed: 0.1, Min: -0.5, Max: 0.5}

	tests := []struct {
		name  string
		start float32
		steps int
		want  float32
	}{
		{"one step right", 0, 1, 0.1},
		{"one step left", 0, -1, -0.1},
		{"no steps", 0.2, 0, 0.2},
		{"stops at max", 0.45, 1, 0.5},
		{"stops at min", -0.45, -3, -0.5},
		{"far past max", 0, 100, 0.5},
		{"starts outside", 3, 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := tt.start
			paddle.Move(&pos, tt.steps)
			assert.InDelta(t, tt.want, pos, 1e-6)
			assert.GreaterOrEqual(t, pos, paddle.Min)
			assert.LessOrEqual(t, pos, paddle.Max)
		})
	}
}

func TestPaddleClamp(t *testing.T) {
	paddle := breakout.Paddle{Min: 0, Max: 1}
	assert.Equal(t, float32(0), paddle.Clamp(-3))
	assert.Equal(t, float32(1), paddle.Clamp(7))
	assert.Equal(t, float32(0.25), paddle.Clamp(0.25))
}

func TestSettingsColor(t *testing.T) {
	settings := breakout.Settings{
		Ball:        mgl32.Vec3{1, 1, 1},
		PaddleLeft:  mgl32.Vec3{1, 0, 0},
		PaddleRight: mgl32.Vec3{0, 0, 1},
	}

	assert.Equal(t, settings.Ball, settings.Color(breakout.TintBall))
	assert.Equal(t, settings.PaddleLeft, settings.Color(breakout.TintPaddleLeft))
	assert.Equal(t, settings.PaddleRight, settings.Color(breakout.TintPaddleRight))
}

func TestSessionFailKeepsFirstError(t *testing.T) {
	session := breakout.Session{Running: true}
	first := errors.New("first")

	session.Fail(first)
	session.Fail(errors.New("second"))

	assert.False(t, session.Running)
	assert.Same(t, first, session.Err)
}

func TestSideString(t *testing.T) {
	assert.Equal(t, "Left", breakout.SideLeft.String())
	assert.Equal(t, "Right", breakout.SideRight.String())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00.000"},
		{1500 * time.Millisecond, "00:00:01.500"},
		{time.Hour + 2*time.Minute + 3*time.Second + 4*time.Millisecond, "01:02:03.004"},
		{25 * time.Hour, "25:00:00.000"},
		{999 * time.Microsecond, "00:00:00.000"},
		{-time.Second, "00:00:00.000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, breakout.FormatDuration(tt.d), "duration %v", tt.d)
	}
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 7, 8, 9, 0, time.Local)
	assert.Equal(t, "2024-03-05 07:08:09", breakout.FormatTime(ts))
}
