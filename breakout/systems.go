package breakout

import (
	"log"
	"reflect"
	"time"

	"github.com/plus3/breakout/ecs"
)

// Key is a front-end independent key.
type Key int

const (
	KeyEscape Key = iota
	KeyA
	KeyD
	KeyLeft
	KeyRight
	KeyR
	KeySpace
	KeyPlus
	KeyMinus
	KeyH
)

// Input is the per-frame input of a front-end.
type Input interface {
	// CloseRequested reports a window close or terminal interrupt.
	CloseRequested() bool
	// JustPressed reports whether key went down this frame.
	JustPressed(key Key) bool
}

// ClockSystem stamps the frame start and recomputes the runtime.
type ClockSystem struct {
	Clock ecs.Singleton[Clock]
	Now   func() time.Time
}

func (s *ClockSystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	if clock == nil {
		return
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	clock.FrameStart = now()
	clock.Runtime = clock.FrameStart.Sub(clock.RunStart)
}

// InputSystem applies keyboard actions. Keys are ignored while Captured
// reports that the debug panel owns the keyboard; a close request never is.
//
//	Escape       stop
//	A / D        move the left paddle
//	Left / Right move the right paddle
//	R            reset the game
//	Space        destroy the next active block
//	+ / -        add or remove a life
//	H            hide or show the ball
//
// A missing GameState ends the session with ErrMissingState.
type InputSystem struct {
	Input    Input
	Captured func() bool

	Paddles ecs.Query[struct {
		*Transform
		*Paddle
	}]
	Balls ecs.Query[struct {
		ecs.EntityId
		*Ball
		Hidden *Hidden `ecs:"optional"`
	}]
	Session ecs.Singleton[Session]
	State   ecs.Singleton[GameState]
	Layout  ecs.Singleton[Layout]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if s.Input == nil || session == nil {
		return
	}

	if s.Input.CloseRequested() {
		session.Stop()
		return
	}
	if s.Captured != nil && s.Captured() {
		return
	}

	if s.Input.JustPressed(KeyEscape) {
		session.Stop()
		return
	}

	s.movePaddles(SideLeft, s.axis(KeyA, KeyD))
	s.movePaddles(SideRight, s.axis(KeyLeft, KeyRight))

	if s.Input.JustPressed(KeyH) {
		s.toggleBall(frame)
	}

	state := s.State.Get()
	if state == nil {
		session.Fail(ErrMissingState)
		return
	}

	if s.Input.JustPressed(KeyR) {
		layout := DefaultLayout()
		if l := s.Layout.Get(); l != nil {
			layout = *l
		}
		ResetGame(state, layout)
		log.Println("game reset")
	}
	if s.Input.JustPressed(KeySpace) {
		if row, col, ok := state.DestroyNext(); ok {
			log.Printf("destroyed block (%d, %d), score %d", row, col, state.Score)
		}
	}
	if s.Input.JustPressed(KeyPlus) {
		state.AddLives(1)
	}
	if s.Input.JustPressed(KeyMinus) {
		state.AddLives(-1)
	}
}

func (s *InputSystem) axis(negative, positive Key) int {
	steps := 0
	if s.Input.JustPressed(negative) {
		steps--
	}
	if s.Input.JustPressed(positive) {
		steps++
	}
	return steps
}

func (s *InputSystem) movePaddles(side Side, steps int) {
	if steps == 0 {
		return
	}
	for paddle := range s.Paddles.Iter() {
		if paddle.Paddle.Side == side {
			paddle.Paddle.Move(&paddle.Transform.Position[0], steps)
		}
	}
}

// toggleBall adds or removes Hidden on every ball. The change lands when the
// frame's commands are flushed.
func (s *InputSystem) toggleBall(frame *ecs.UpdateFrame) {
	for ball := range s.Balls.Iter() {
		if ball.Hidden == nil {
			frame.Commands.AddComponent(ball.EntityId, Hidden{})
		} else {
			frame.Commands.RemoveComponent(ball.EntityId, reflect.TypeFor[Hidden]())
		}
	}
}

// PaddleBoundsSystem clamps every paddle into its bounds each frame, so edits
// made outside the input keys cannot leave a paddle off its track.
type PaddleBoundsSystem struct {
	Paddles ecs.Query[struct {
		*Transform
		*Paddle
	}]
}

func (s *PaddleBoundsSystem) Execute(frame *ecs.UpdateFrame) {
	for paddle := range s.Paddles.Iter() {
		paddle.Transform.Position[0] = paddle.Paddle.Clamp(paddle.Transform.Position[0])
	}
}

// FrameCounterSystem counts finished frames. Register it last.
type FrameCounterSystem struct {
	Clock ecs.Singleton[Clock]
}

func (s *FrameCounterSystem) Execute(frame *ecs.UpdateFrame) {
	if clock := s.Clock.Get(); clock != nil {
		clock.FrameCounter++
	}
}
