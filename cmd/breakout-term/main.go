// Command breakout-term previews the prototype in a terminal.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/breakout/breakout"
	"github.com/plus3/breakout/render/termrender"
)

func main() {
	interval := flag.Duration("interval", 33*time.Millisecond, "Time between frames.")
	cfg, err := breakout.ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen: %v", err)
	}

	world := breakout.NewWorld(cfg, time.Now())
	input := termrender.NewInput()
	world.Schedule(&breakout.InputSystem{Input: input},
		&breakout.SceneSystem{},
		&termrender.RenderSystem{Screen: screen},
	)

	err = termrender.Run(world, screen, input, *interval)
	screen.Fini()
	if err != nil {
		log.Fatalf("breakout: %v", err)
	}
	log.Printf("stopped after %d frames, score %d", world.Clock.Get().FrameCounter, world.State.Get().Score)
}
