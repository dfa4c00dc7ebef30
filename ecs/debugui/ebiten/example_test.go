package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/breakout/ecs"
	"github.com/plus3/breakout/ecs/debugui"
	debugui_ebiten "github.com/plus3/breakout/ecs/debugui/ebiten"
)

// Game implements ebiten.Game and integrates the ECS with ImGui rendering.
type Game struct {
	scheduler    *ecs.Scheduler
	imguiBackend *ecs.Singleton[debugui_ebiten.ImguiBackend]
}

func (g *Game) Update() error {
	// ImGui render functions are deferred by ImguiSystem and run inside Once.
	g.imguiBackend.Get().BeginFrame()
	g.scheduler.Once(1.0 / 60.0)
	g.imguiBackend.Get().EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.imguiBackend.Get().Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imguiBackend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	registry := ecs.NewComponentRegistry()
	debugui.RegisterDebugUIComponents(registry)
	storage := ecs.NewStorage(registry)

	backend := debugui_ebiten.Install(storage, debugui_ebiten.NewImguiBackend("ECS ImGui Example", 1280, 720))
	ecs.NewSingleton[debugui.ImguiInputState](storage)

	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from ECS!")
			imgui.End()
		},
	})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&debugui.ImguiSystem{})
	debugui.SpawnInspector(storage, scheduler)

	game := &Game{scheduler: scheduler, imguiBackend: backend}
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
