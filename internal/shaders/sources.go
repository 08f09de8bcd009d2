package shaders

import _ "embed"

//go:embed shape.vert.glsl
var ShapeVertex string

//go:embed shape.frag.glsl
var ShapeFragment string

const (
	AttribPosition = "vertexPosition"
	AttribColor    = "vertexColor"

	UniformCanvasSize    = "canvasSize"
	UniformShapeLocation = "shapeLocation"
	UniformShapeSize     = "shapeSize"
)
