package shaders

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

func kindName(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	default:
		return "unknown"
	}
}

func CompileShaderFromSource(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	if shader == 0 {
		return 0, fmt.Errorf("could not allocate %s shader", kindName(shaderType))
	}

	if !strings.HasSuffix(source, "\x00") {
		source += "\x00"
	}
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logMsg))

		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to COMPILE %s shader - %s", kindName(shaderType), strings.TrimRight(logMsg, "\x00\n "))
	}

	return shader, nil
}

// NewProgram compiles both stages and links them. The shader objects are
// released once linked.
func NewProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertShader, err := CompileShaderFromSource(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := CompileShaderFromSource(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	if program == 0 {
		return 0, fmt.Errorf("could not allocate shader program")
	}
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logMsg))

		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to LINK shaders - %s", strings.TrimRight(logMsg, "\x00\n "))
	}

	return program, nil
}
