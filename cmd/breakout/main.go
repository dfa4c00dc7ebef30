// Command breakout runs the prototype in an ebiten window with the ImGui
// debug panel and the ECS inspector.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/breakout/breakout"
	"github.com/plus3/breakout/breakout/panel"
	"github.com/plus3/breakout/ecs/debugui"
	debugui_ebiten "github.com/plus3/breakout/ecs/debugui/ebiten"
	"github.com/plus3/breakout/render/ebitenrender"
	"github.com/plus3/breakout/shaders"
)

func main() {
	cfg, err := breakout.ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sources, err := shaders.Load(cfg.ShaderDir, ebitenrender.ShaderFiles...)
	if err != nil {
		log.Fatalf("shaders: %v", err)
	}

	title := fmt.Sprintf("%s %d.%d", cfg.Window.Title, breakout.VersionMajor, breakout.VersionMinor)
	backend := debugui_ebiten.NewImguiBackend(title, cfg.Window.Width, cfg.Window.Height)

	world := breakout.NewWorld(cfg, time.Now(), debugui.RegisterDebugUIComponents)
	game, err := ebitenrender.NewGame(world, backend, sources)
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}

	panel.Spawn(world)
	debugui.SpawnInspector(world.Storage, world.Scheduler)

	log.Printf("%s started", title)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("breakout: %v", err)
	}
	log.Printf("stopped after %d frames, score %d", world.Clock.Get().FrameCounter, world.State.Get().Score)
}
