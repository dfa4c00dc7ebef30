// Package ebitenrender runs a breakout world in an ebiten window with the
// ImGui debug panel drawn on top.
package ebitenrender

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/breakout/breakout"
	"github.com/plus3/breakout/ecs"
	"github.com/plus3/breakout/ecs/debugui"
	debugui_ebiten "github.com/plus3/breakout/ecs/debugui/ebiten"
	"github.com/plus3/breakout/shaders"
)

// ShaderFiles are the Kage sources the renderer compiles.
var ShaderFiles = []string{"background.kage", "quad.kage"}

var keyBindings = map[breakout.Key][]ebiten.Key{
	breakout.KeyEscape: {ebiten.KeyEscape},
	breakout.KeyA:      {ebiten.KeyA},
	breakout.KeyD:      {ebiten.KeyD},
	breakout.KeyLeft:   {ebiten.KeyArrowLeft},
	breakout.KeyRight:  {ebiten.KeyArrowRight},
	breakout.KeyR:      {ebiten.KeyR},
	breakout.KeySpace:  {ebiten.KeySpace},
	breakout.KeyPlus:   {ebiten.KeyEqual, ebiten.KeyNumpadAdd},
	breakout.KeyMinus:  {ebiten.KeyMinus, ebiten.KeyNumpadSubtract},
	breakout.KeyH:      {ebiten.KeyH},
}

// Input reads ebiten's keyboard and window state.
type Input struct{}

func (Input) CloseRequested() bool {
	return ebiten.IsWindowBeingClosed()
}

func (Input) JustPressed(key breakout.Key) bool {
	for _, k := range keyBindings[key] {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// Captured reports whether ImGui wants the keyboard this frame.
func Captured(storage *ecs.Storage) func() bool {
	state := ecs.NewSingleton[debugui.ImguiInputState](storage)
	return func() bool {
		s := state.Get()
		return s != nil && s.WantCaptureKeyboard
	}
}

// Screen is the image being drawn this frame.
type Screen struct {
	*ebiten.Image
}

// RenderSystem draws the Scene onto the Screen with the Kage shaders.
type RenderSystem struct {
	Scene  ecs.Singleton[breakout.Scene]
	Screen ecs.Singleton[Screen]

	background *ebiten.Shader
	quad       *ebiten.Shader
}

// NewRenderSystem compiles the Kage sources.
func NewRenderSystem(sources shaders.Sources) (*RenderSystem, error) {
	background, err := ebiten.NewShader([]byte(sources["background.kage"]))
	if err != nil {
		return nil, fmt.Errorf("compile background.kage: %w", err)
	}
	quad, err := ebiten.NewShader([]byte(sources["quad.kage"]))
	if err != nil {
		return nil, fmt.Errorf("compile quad.kage: %w", err)
	}
	return &RenderSystem{background: background, quad: quad}, nil
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	scene, screen := s.Scene.Get(), s.Screen.Get()
	if scene == nil || screen == nil || screen.Image == nil {
		return
	}

	bounds := screen.Bounds()
	width, height := float32(bounds.Dx()), float32(bounds.Dy())

	bg := &ebiten.DrawRectShaderOptions{}
	bg.Uniforms = map[string]any{"Color": scene.Background[:]}
	screen.DrawRectShader(bounds.Dx(), bounds.Dy(), s.background, bg)

	for _, q := range scene.Quads {
		x, y, w, h := q.Pixels(width, height)
		if w < 1 || h < 1 {
			continue
		}
		opts := &ebiten.DrawRectShaderOptions{}
		opts.GeoM.Translate(float64(x), float64(y))
		opts.Uniforms = map[string]any{"Color": q.Color[:]}
		screen.DrawRectShader(int(w), int(h), s.quad, opts)
	}
}

// Game implements ebiten.Game around a breakout world.
type Game struct {
	World           *breakout.World
	RenderScheduler *ecs.Scheduler
	ImguiBackend    *ecs.Singleton[debugui_ebiten.ImguiBackend]
	Screen          *ecs.Singleton[Screen]
}

// NewGame schedules the frame systems and the render system. The world must
// have been created with debugui.RegisterDebugUIComponents.
func NewGame(w *breakout.World, backend debugui_ebiten.ImguiBackend, sources shaders.Sources) (*Game, error) {
	render, err := NewRenderSystem(sources)
	if err != nil {
		return nil, err
	}

	ecs.NewSingleton[debugui.ImguiInputState](w.Storage)
	w.Schedule(&breakout.InputSystem{Input: Input{}, Captured: Captured(w.Storage)},
		&debugui.ImguiSystem{},
		&breakout.SceneSystem{},
	)

	renderScheduler := ecs.NewScheduler(w.Storage)
	renderScheduler.Register(render)

	ebiten.SetWindowClosingHandled(true)
	ebiten.SetVsyncEnabled(w.Settings.Get().VSync)

	return &Game{
		World:           w,
		RenderScheduler: renderScheduler,
		ImguiBackend:    debugui_ebiten.Install(w.Storage, backend),
		Screen:          ecs.NewSingleton[Screen](w.Storage),
	}, nil
}

func (g *Game) Update() error {
	g.ImguiBackend.Get().BeginFrame()
	g.World.Step(1.0 / 60.0)
	g.ImguiBackend.Get().EndFrame()

	return Outcome(g.World)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.Screen.Get().Image = screen
	g.RenderScheduler.Once(0)
	g.ImguiBackend.Get().Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.ImguiBackend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Outcome is what Update returns for w: nil while running, the session
// error if one ended it, ebiten.Termination otherwise.
func Outcome(w *breakout.World) error {
	if w.Running() {
		return nil
	}
	if err := w.Err(); err != nil {
		return err
	}
	return ebiten.Termination
}
