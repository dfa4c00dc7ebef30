package ecs_test

import (
	"fmt"

	"github.com/plus3/breakout/ecs"
)

type Lives struct {
	Remaining int
}

type LoseLifeSystem struct {
	Lives ecs.Singleton[Lives]
}

func (s *LoseLifeSystem) Execute(frame *ecs.UpdateFrame) {
	if lives := s.Lives.Get(); lives.Remaining > 0 {
		lives.Remaining--
	}
}

// ExampleScheduler shows a system reading and writing a singleton.
func ExampleScheduler() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	ecs.NewSingleton[Lives](storage, Lives{Remaining: 2})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&LoseLifeSystem{})

	for range 3 {
		scheduler.Once(1.0 / 60.0)
	}

	var lives *Lives
	storage.ReadSingleton(&lives)
	fmt.Println("lives:", lives.Remaining)

	// Output:
	// lives: 0
}

// ExampleView shows iterating entities by shape.
func ExampleView() {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Name{Value: "paddle"}, Position{X: 0, Y: -0.9})
	storage.Spawn(Name{Value: "label"})

	view := ecs.NewView[struct {
		*Name
		*Position
	}](storage)

	for item := range view.Iter() {
		fmt.Printf("%s at (%.1f, %.1f)\n", item.Name.Value, item.Position.X, item.Position.Y)
	}

	// Output:
	// paddle at (0.0, -0.9)
}

// ExampleNewSingleton shows that every accessor shares the same value.
func ExampleNewSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	first := ecs.NewSingleton[Lives](storage, Lives{Remaining: 3})
	second := ecs.NewSingleton[Lives](storage, Lives{Remaining: 99})

	second.Get().Remaining--
	fmt.Println(first.Get().Remaining)

	// Output:
	// 2
}
