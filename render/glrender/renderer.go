package glrender

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/breakout/breakout"
	"github.com/plus3/breakout/ecs"
	"github.com/plus3/breakout/shaders"
)

// ShaderFiles are the GLSL sources the renderer links.
var ShaderFiles = []string{"quad.vert", "quad.frag"}

// unit square centred on the origin, two triangles
var (
	quadVertices = []float32{
		0.5, 0.5, 0,
		0.5, -0.5, 0,
		-0.5, -0.5, 0,
		-0.5, 0.5, 0,
	}
	quadIndices = []uint32{
		0, 1, 3,
		1, 2, 3,
	}
)

// Renderer draws scene quads with one shader program and one unit square.
type Renderer struct {
	program uint32
	vao     uint32
	vbo     uint32
	ebo     uint32
	uModel  int32
	uColor  int32
}

// NewRenderer compiles and links the GLSL sources and uploads the square.
// A context must be current.
func NewRenderer(sources shaders.Sources) (*Renderer, error) {
	program, err := newProgram(sources["quad.vert"], sources["quad.frag"])
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		program: program,
		uModel:  gl.GetUniformLocation(program, gl.Str("uModel\x00")),
		uColor:  gl.GetUniformLocation(program, gl.Str("uColor\x00")),
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(quadIndices)*4, gl.Ptr(quadIndices), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return r, nil
}

// Draw clears to the scene background and draws every quad.
func (r *Renderer) Draw(scene *breakout.Scene) {
	bg := scene.Background
	gl.ClearColor(bg.X(), bg.Y(), bg.Z(), 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.BindVertexArray(r.vao)
	for _, q := range scene.Quads {
		model := Model(q)
		gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
		gl.Uniform3f(r.uColor, q.Color.X(), q.Color.Y(), q.Color.Z())
		gl.DrawElements(gl.TRIANGLES, int32(len(quadIndices)), gl.UNSIGNED_INT, gl.PtrOffset(0))
	}
	gl.BindVertexArray(0)
}

// Delete frees the GL objects.
func (r *Renderer) Delete() {
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteBuffers(1, &r.ebo)
	gl.DeleteProgram(r.program)
}

// Model scales the unit square to q and moves it to q's centre.
func Model(q breakout.Quad) mgl32.Mat4 {
	return mgl32.Translate3D(q.Center.X(), q.Center.Y(), 0).
		Mul4(mgl32.Scale3D(q.Size.X(), q.Size.Y(), 1))
}

// RenderSystem draws the Scene each frame.
type RenderSystem struct {
	Scene    ecs.Singleton[breakout.Scene]
	Renderer *Renderer
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	if scene := s.Scene.Get(); scene != nil && s.Renderer != nil {
		s.Renderer.Draw(scene)
	}
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("quad.vert: %w", err)
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, fmt.Errorf("quad.frag: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
