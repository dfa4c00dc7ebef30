package glrender

import (
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/plus3/breakout/breakout"
)

// InitGraphics locks the main thread and initialises GLFW. Call it from main.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	log.Printf("GLFW initialized")
	return nil
}

// TerminateGraphics shuts GLFW down.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW terminated")
}

// Window is a GLFW window with a current 4.1 core context.
type Window struct {
	window *glfw.Window
	Input  *Input
}

// NewWindow opens the window described by settings, makes its context
// current and loads the GL functions.
func NewWindow(settings *breakout.Settings) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	title := fmt.Sprintf("%s %d.%d", settings.Title, settings.VersionMajor, settings.VersionMinor)
	win, err := glfw.CreateWindow(settings.Width, settings.Height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("init gl: %w", err)
	}
	log.Printf("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	if settings.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{window: win}
	w.Input = NewInput(win.ShouldClose)
	win.SetKeyCallback(w.Input.KeyCallback)
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	})
	return w, nil
}

// EndFrame presents the frame and collects the next frame's events.
func (w *Window) EndFrame() {
	w.window.SwapBuffers()
	w.Input.Clear()
	glfw.PollEvents()
}

// Shutdown destroys the window.
func (w *Window) Shutdown() {
	w.window.Destroy()
}
