package breakout

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/breakout/ecs"
)

// Settings is the window and colour configuration. The debug panel edits
// the colours live.
type Settings struct {
	Title        string
	VersionMajor int
	VersionMinor int
	Width        int
	Height       int
	VSync        bool

	Background  mgl32.Vec3
	Ball        mgl32.Vec3
	PaddleLeft  mgl32.Vec3
	PaddleRight mgl32.Vec3
}

// Color returns the colour a Tint role resolves to.
func (s *Settings) Color(role TintRole) mgl32.Vec3 {
	switch role {
	case TintPaddleLeft:
		return s.PaddleLeft
	case TintPaddleRight:
		return s.PaddleRight
	default:
		return s.Ball
	}
}

// Clock tracks frame timing. Runtime is always FrameStart - RunStart.
type Clock struct {
	FrameCounter int
	RunStart     time.Time
	FrameStart   time.Time
	Runtime      time.Duration
}

// Session carries the run flag and the error that ended the run, if any.
type Session struct {
	Running bool
	Err     error
}

// Stop ends the run without an error.
func (s *Session) Stop() {
	s.Running = false
}

// Fail ends the run with err. The first error wins.
func (s *Session) Fail(err error) {
	if s.Err == nil {
		s.Err = err
	}
	s.Running = false
}

// Transform is an entity's centre and size in normalised device coordinates.
type Transform struct {
	Position mgl32.Vec2
	Size     mgl32.Vec2
}

type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "Right"
	}
	return "Left"
}

// Paddle moves horizontally in Speed sized steps and stays inside [Min, Max].
type Paddle struct {
	Side  Side
	Speed float32
	Min   float32
	Max   float32
}

// Clamp returns pos limited to the paddle's bounds.
func (p *Paddle) Clamp(pos float32) float32 {
	return mgl32.Clamp(pos, p.Min, p.Max)
}

// Move shifts *pos by steps * Speed and clamps the result.
func (p *Paddle) Move(pos *float32, steps int) {
	*pos = p.Clamp(*pos + float32(steps)*p.Speed)
}

// Ball marks the ball entity. It has a position but no motion.
type Ball struct{}

// Hidden keeps an entity out of the Scene.
type Hidden struct{}

type TintRole int

const (
	TintBall TintRole = iota
	TintPaddleLeft
	TintPaddleRight
)

// Tint colours an entity with one of the Settings colours.
type Tint struct {
	Role TintRole
}

// RegisterComponents registers the component types of the game.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Paddle](registry)
	ecs.RegisterComponent[Ball](registry)
	ecs.RegisterComponent[Tint](registry)
	ecs.RegisterComponent[Hidden](registry)
}

const (
	VersionMajor = 0
	VersionMinor = 1
)
