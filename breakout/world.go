package breakout

import (
	"reflect"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/breakout/ecs"
)

const (
	paddleY     = -0.9
	paddleWidth = 0.3
)

// World is the storage, scheduler and entities of one game.
type World struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	State    *ecs.Singleton[GameState]
	Settings *ecs.Singleton[Settings]
	Layout   *ecs.Singleton[Layout]
	Clock    *ecs.Singleton[Clock]
	Session  *ecs.Singleton[Session]
	Scene    *ecs.Singleton[Scene]

	// Refs follow their entity across archetype moves, such as hiding the
	// ball.
	Paddles [2]*ecs.EntityRef
	Ball    *ecs.EntityRef
}

// NewWorld creates the singletons from cfg, resets the game and spawns the
// paddles and the ball. registrars register extra component types, such as
// the debug UI's, before anything is spawned.
func NewWorld(cfg Config, now time.Time, registrars ...func(*ecs.ComponentRegistry)) *World {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	for _, register := range registrars {
		register(registry)
	}

	storage := ecs.NewStorage(registry)
	w := &World{
		Storage:   storage,
		Scheduler: ecs.NewScheduler(storage),
		Settings:  ecs.NewSingleton(storage, cfg.Settings()),
		Layout:    ecs.NewSingleton(storage, cfg.Layout()),
		Clock:     ecs.NewSingleton(storage, Clock{RunStart: now, FrameStart: now}),
		Session:   ecs.NewSingleton(storage, Session{Running: true}),
		Scene:     ecs.NewSingleton[Scene](storage),
		State:     ecs.NewSingleton[GameState](storage),
	}
	ResetGame(w.State.Get(), cfg.Layout())

	mid := (cfg.Paddle.Min + cfg.Paddle.Max) / 2
	halfGap := float32(paddleWidth / 2)
	w.Paddles[SideLeft] = w.spawnPaddle(Paddle{
		Side:  SideLeft,
		Speed: cfg.Paddle.Speed,
		Min:   cfg.Paddle.Min,
		Max:   max(mid-halfGap, cfg.Paddle.Min),
	}, TintPaddleLeft)
	w.Paddles[SideRight] = w.spawnPaddle(Paddle{
		Side:  SideRight,
		Speed: cfg.Paddle.Speed,
		Min:   min(mid+halfGap, cfg.Paddle.Max),
		Max:   cfg.Paddle.Max,
	}, TintPaddleRight)

	w.Ball = storage.CreateEntityRef(storage.Spawn(
		Transform{Size: mgl32.Vec2{0.03, 0.05}},
		Ball{},
		Tint{Role: TintBall},
	))

	return w
}

func (w *World) spawnPaddle(paddle Paddle, role TintRole) *ecs.EntityRef {
	x := (paddle.Min + paddle.Max) / 2
	return w.Storage.CreateEntityRef(w.Storage.Spawn(
		Transform{Position: mgl32.Vec2{x, paddleY}, Size: mgl32.Vec2{paddleWidth, 0.04}},
		paddle,
		Tint{Role: role},
	))
}

// Schedule registers the frame systems: clock, input, paddle bounds, then
// systems in the given order, then the frame counter.
func (w *World) Schedule(input *InputSystem, systems ...ecs.System) {
	w.Scheduler.Register(&ClockSystem{})
	w.Scheduler.Register(input)
	w.Scheduler.Register(&PaddleBoundsSystem{})
	for _, system := range systems {
		w.Scheduler.Register(system)
	}
	w.Scheduler.Register(&FrameCounterSystem{})
}

// Step runs one frame.
func (w *World) Step(dt float64) {
	w.Scheduler.Once(dt)
}

// Running reports whether the session is still going.
func (w *World) Running() bool {
	session := w.Session.Get()
	return session != nil && session.Running
}

// Err returns the error that ended the session, if any.
func (w *World) Err() error {
	if session := w.Session.Get(); session != nil {
		return session.Err
	}
	return nil
}

// Paddle returns the transform and paddle of side, or nils once the paddle
// is gone.
func (w *World) Paddle(side Side) (*Transform, *Paddle) {
	id, ok := w.Storage.ResolveEntityRef(w.Paddles[side])
	if !ok {
		return nil, nil
	}
	return ecs.ReadComponent[Transform](w.Storage, id), ecs.ReadComponent[Paddle](w.Storage, id)
}

// BallTransform returns the ball's transform, or nil once the ball is gone.
func (w *World) BallTransform() *Transform {
	id, ok := w.Storage.ResolveEntityRef(w.Ball)
	if !ok {
		return nil
	}
	return ecs.ReadComponent[Transform](w.Storage, id)
}

// BallHidden reports whether the ball carries Hidden.
func (w *World) BallHidden() bool {
	id, ok := w.Storage.ResolveEntityRef(w.Ball)
	return ok && w.Storage.HasComponent(id, reflect.TypeFor[Hidden]())
}

// SetBallHidden adds or removes Hidden on the ball right away. Both move the
// ball to another archetype; w.Ball follows it.
func (w *World) SetBallHidden(hidden bool) {
	id, ok := w.Storage.ResolveEntityRef(w.Ball)
	if !ok || hidden == w.BallHidden() {
		return
	}
	if hidden {
		w.Storage.AddComponent(id, Hidden{})
	} else {
		w.Storage.RemoveComponent(id, reflect.TypeFor[Hidden]())
	}
}
