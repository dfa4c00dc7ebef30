// Command breakout-gl draws the prototype with OpenGL 4.1 core in a GLFW
// window. Debug actions are on the keyboard: Space destroys the next block,
// R resets, + and - change lives.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/plus3/breakout/breakout"
	"github.com/plus3/breakout/render/glrender"
	"github.com/plus3/breakout/shaders"
)

func main() {
	cfg, err := breakout.ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sources, err := shaders.Load(cfg.ShaderDir, glrender.ShaderFiles...)
	if err != nil {
		log.Fatalf("shaders: %v", err)
	}

	if err := glrender.InitGraphics(); err != nil {
		log.Fatalf("graphics: %v", err)
	}
	defer glrender.TerminateGraphics()

	world := breakout.NewWorld(cfg, time.Now())

	window, err := glrender.NewWindow(world.Settings.Get())
	if err != nil {
		log.Fatalf("window: %v", err)
	}
	defer window.Shutdown()

	renderer, err := glrender.NewRenderer(sources)
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}
	defer renderer.Delete()

	world.Schedule(&breakout.InputSystem{Input: window.Input},
		&breakout.SceneSystem{},
		&glrender.RenderSystem{Renderer: renderer},
	)

	last := time.Now()
	for world.Running() {
		now := time.Now()
		world.Step(now.Sub(last).Seconds())
		last = now
		window.EndFrame()
	}

	if err := world.Err(); err != nil {
		log.Fatalf("breakout: %v", err)
	}
	log.Printf("stopped after %d frames, score %d", world.Clock.Get().FrameCounter, world.State.Get().Score)
}
