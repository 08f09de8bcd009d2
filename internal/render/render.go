package render

import (
	"github.com/ThatOtherAndrew/shapes/internal/models"
)

// Renderer is what the demos draw through. Positions are pixels with the
// origin at the bottom-left of the canvas, as in GL.
type Renderer interface {
	// CreateDrawable uploads xy vertex positions and matching rgb bytes.
	CreateDrawable(positions []float32, colors []uint8) (models.Drawable, error)
	// BeginFrame clears the target and sets the viewport.
	BeginFrame(width, height int)
	// DrawInstance draws d scaled by size and translated to position.
	DrawInstance(d models.Drawable, position models.Vec2, size float32)
}

// Reporter surfaces unrecoverable setup failures to the user.
type Reporter interface {
	Report(msg string)
}

// ClearColor is the background every renderer clears to.
var ClearColor = [4]float32{0.08, 0.08, 0.08, 1.0}

// VertexCount checks that positions and colors describe the same number of
// vertices and returns it.
func VertexCount(positions []float32, colors []uint8) (int32, bool) {
	if len(positions) == 0 || len(positions)%2 != 0 || len(colors)%3 != 0 {
		return 0, false
	}
	n := len(positions) / 2
	if len(colors)/3 != n {
		return 0, false
	}
	return int32(n), true
}
