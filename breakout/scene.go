package breakout

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/breakout/ecs"
)

// Quad is one coloured rectangle in normalised device coordinates.
type Quad struct {
	Center mgl32.Vec2
	Size   mgl32.Vec2
	Color  mgl32.Vec3
}

// Scene is everything a front-end draws for one frame: the background
// colour and the quads back to front.
type Scene struct {
	Background mgl32.Vec3
	Quads      []Quad
}

// SceneSystem rebuilds the Scene singleton from the grid, the paddles and
// the ball. Hidden sprites are left out.
type SceneSystem struct {
	Sprites ecs.Query[struct {
		*Transform
		*Tint
		Hidden *Hidden `ecs:"optional"`
	}]
	State    ecs.Singleton[GameState]
	Settings ecs.Singleton[Settings]
	Scene    ecs.Singleton[Scene]
}

func (s *SceneSystem) Execute(frame *ecs.UpdateFrame) {
	scene, state, settings := s.Scene.Get(), s.State.Get(), s.Settings.Get()
	if scene == nil || state == nil || settings == nil {
		return
	}

	scene.Background = settings.Background
	scene.Quads = scene.Quads[:0]

	for row := range GridRows {
		for col := range GridCols {
			block := &state.Blocks[row][col]
			if !block.Active {
				continue
			}
			scene.Quads = append(scene.Quads, Quad{Center: block.Position, Size: block.Size, Color: block.Color})
		}
	}

	for sprite := range s.Sprites.Iter() {
		if sprite.Hidden != nil {
			continue
		}
		scene.Quads = append(scene.Quads, Quad{
			Center: sprite.Transform.Position,
			Size:   sprite.Transform.Size,
			Color:  settings.Color(sprite.Tint.Role),
		})
	}
}

// Pixels maps q onto a width x height surface whose origin is the top-left
// corner and returns its top-left corner and size.
func (q Quad) Pixels(width, height float32) (x, y, w, h float32) {
	w = q.Size.X() / 2 * width
	h = q.Size.Y() / 2 * height
	x = (q.Center.X()+1)/2*width - w/2
	y = (1-q.Center.Y())/2*height - h/2
	return x, y, w, h
}
