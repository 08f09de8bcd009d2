package opengl

import (
	"errors"
	"fmt"

	"github.com/ThatOtherAndrew/shapes/internal/logging"
	"github.com/ThatOtherAndrew/shapes/internal/models"
	"github.com/ThatOtherAndrew/shapes/internal/render"
	"github.com/ThatOtherAndrew/shapes/internal/shaders"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	ErrAttribLocation  = errors.New("failed to get attrib locations")
	ErrUniformLocation = errors.New("failed to get uniform locations")
	ErrForeignDrawable = errors.New("drawable was not created by this renderer")
)

type drawable struct {
	vao      uint32
	vertices int32
}

func (d *drawable) VertexCount() int32 { return d.vertices }

// Renderer draws with one program shared by every drawable. It needs a
// current GL context on the calling thread.
type Renderer struct {
	program uint32

	positionAttrib uint32
	colorAttrib    uint32

	canvasSizeUniform    int32
	shapeLocationUniform int32
	shapeSizeUniform     int32

	// Drawables built from the same slice share one buffer, the way every
	// triangle in the catalog shares one position buffer.
	positionBuffers map[bufferKey[float32]]uint32
	colorBuffers    map[bufferKey[uint8]]uint32
	vaos            []uint32
}

func New() *Renderer {
	return &Renderer{
		positionBuffers: make(map[bufferKey[float32]]uint32),
		colorBuffers:    make(map[bufferKey[uint8]]uint32),
	}
}

func (r *Renderer) InitGL() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("this system does not support OpenGL 4.1: %w", err)
	}
	logging.Logger().Debug("OpenGL initialised", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	program, err := shaders.NewProgram(shaders.ShapeVertex, shaders.ShapeFragment)
	if err != nil {
		return err
	}
	r.program = program

	positionLoc := gl.GetAttribLocation(program, gl.Str(shaders.AttribPosition+"\x00"))
	colorLoc := gl.GetAttribLocation(program, gl.Str(shaders.AttribColor+"\x00"))
	if positionLoc < 0 || colorLoc < 0 {
		return fmt.Errorf("%w: (pos=%d, color=%d)", ErrAttribLocation, positionLoc, colorLoc)
	}
	r.positionAttrib = uint32(positionLoc)
	r.colorAttrib = uint32(colorLoc)

	r.shapeLocationUniform = gl.GetUniformLocation(program, gl.Str(shaders.UniformShapeLocation+"\x00"))
	r.shapeSizeUniform = gl.GetUniformLocation(program, gl.Str(shaders.UniformShapeSize+"\x00"))
	r.canvasSizeUniform = gl.GetUniformLocation(program, gl.Str(shaders.UniformCanvasSize+"\x00"))
	if r.shapeLocationUniform < 0 || r.shapeSizeUniform < 0 || r.canvasSizeUniform < 0 {
		return fmt.Errorf("%w: (shapeLocation=%t, shapeSize=%t, canvasSize=%t)", ErrUniformLocation,
			r.shapeLocationUniform >= 0, r.shapeSizeUniform >= 0, r.canvasSizeUniform >= 0)
	}

	return nil
}

func (r *Renderer) CreateDrawable(positions []float32, colors []uint8) (models.Drawable, error) {
	n, ok := render.VertexCount(positions, colors)
	if !ok {
		return nil, fmt.Errorf("mismatched vertex data (%d position floats, %d color bytes)", len(positions), len(colors))
	}

	positionBuffer, err := staticBuffer(r.positionBuffers, positions, 4)
	if err != nil {
		return nil, err
	}
	colorBuffer, err := staticBuffer(r.colorBuffers, colors, 1)
	if err != nil {
		return nil, err
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	if vao == 0 {
		return nil, fmt.Errorf("failed to allocate VAO for 2 buffers")
	}
	r.vaos = append(r.vaos, vao)

	gl.BindVertexArray(vao)

	gl.EnableVertexAttribArray(r.positionAttrib)
	gl.EnableVertexAttribArray(r.colorAttrib)

	gl.BindBuffer(gl.ARRAY_BUFFER, positionBuffer)
	gl.VertexAttribPointer(r.positionAttrib, 2, gl.FLOAT, false, 0, nil)
	gl.BindBuffer(gl.ARRAY_BUFFER, colorBuffer)
	gl.VertexAttribPointer(r.colorAttrib, 3, gl.UNSIGNED_BYTE, true, 0, nil)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.BindVertexArray(0)

	return &drawable{vao: vao, vertices: n}, nil
}

type bufferKey[T any] struct {
	first *T
	n     int
}

func staticBuffer[T float32 | uint8](cache map[bufferKey[T]]uint32, data []T, elemSize int) (uint32, error) {
	key := bufferKey[T]{first: &data[0], n: len(data)}
	if buffer, ok := cache[key]; ok {
		return buffer, nil
	}

	var buffer uint32
	gl.GenBuffers(1, &buffer)
	if buffer == 0 {
		return 0, errors.New("failed to allocate buffer")
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*elemSize, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	cache[key] = buffer
	return buffer, nil
}

func (r *Renderer) BeginFrame(width, height int) {
	c := render.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Viewport(0, 0, int32(width), int32(height))

	gl.UseProgram(r.program)
	gl.Uniform2f(r.canvasSizeUniform, float32(width), float32(height))
}

func (r *Renderer) DrawInstance(d models.Drawable, position models.Vec2, size float32) {
	dr, ok := d.(*drawable)
	if !ok {
		logging.Logger().Warn("skipping draw", "err", ErrForeignDrawable)
		return
	}
	gl.Uniform1f(r.shapeSizeUniform, size)
	gl.Uniform2f(r.shapeLocationUniform, position.X, position.Y)
	gl.BindVertexArray(dr.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, dr.vertices)
}

// Delete releases every GL object the renderer created.
func (r *Renderer) Delete() {
	if len(r.vaos) > 0 {
		gl.DeleteVertexArrays(int32(len(r.vaos)), &r.vaos[0])
		r.vaos = nil
	}
	for key, buffer := range r.positionBuffers {
		gl.DeleteBuffers(1, &buffer)
		delete(r.positionBuffers, key)
	}
	for key, buffer := range r.colorBuffers {
		gl.DeleteBuffers(1, &buffer)
		delete(r.colorBuffers, key)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}
