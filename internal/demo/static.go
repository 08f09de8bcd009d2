package demo

import (
	"fmt"

	"github.com/ThatOtherAndrew/shapes/internal/catalog"
	"github.com/ThatOtherAndrew/shapes/internal/draw"
	"github.com/ThatOtherAndrew/shapes/internal/models"
	"github.com/ThatOtherAndrew/shapes/internal/render"
)

type Triangle struct {
	geometry *models.Geometry
}

func NewTriangle() *Triangle { return &Triangle{} }

func (*Triangle) Name() string        { return "triangle" }
func (*Triangle) Description() string { return "a single static indigo triangle" }
func (*Triangle) Animated() bool      { return false }

func (d *Triangle) Setup(r render.Renderer, width, height int) error {
	g, err := catalog.Build(r, []catalog.Entry{{
		Name:      "indigo triangle",
		Positions: catalog.HelloTrianglePositions,
		Colors:    catalog.IndigoTriangleColors,
	}})
	if err != nil {
		return fmt.Errorf("triangle setup: %w", err)
	}
	d.geometry = g[0]
	return nil
}

func (*Triangle) Frame(float32, int, int) {}

// Draw centres the triangle and scales it so its vertices land where the
// clip-space coordinates put them along the shorter canvas side.
func (d *Triangle) Draw(r render.Renderer, width, height int) {
	size := float32(min(width, height)) / 2
	draw.New(r).DrawStatic(d.geometry, []draw.Placement{{
		Position: models.Vec2{X: float32(width) / 2, Y: float32(height) / 2},
		Size:     size,
	}}, width, height)
}

// TwoTriangles draws one uploaded triangle twice with different location
// and size uniforms.
type TwoTriangles struct {
	geometry   *models.Geometry
	Placements []draw.Placement
}

func NewTwoTriangles() *TwoTriangles {
	return &TwoTriangles{
		Placements: []draw.Placement{
			{Position: models.Vec2{X: 300, Y: 400}, Size: 200},
			{Position: models.Vec2{X: 650, Y: 300}, Size: 100},
		},
	}
}

func (*TwoTriangles) Name() string   { return "twotriangles" }
func (*TwoTriangles) Animated() bool { return false }

func (*TwoTriangles) Description() string {
	return "two triangles sharing one buffer, placed with uniforms"
}

func (d *TwoTriangles) Setup(r render.Renderer, width, height int) error {
	g, err := catalog.Build(r, []catalog.Entry{{
		Name:      "indigo triangle",
		Positions: catalog.TrianglePositions,
		Colors:    catalog.IndigoTriangleColors,
	}})
	if err != nil {
		return fmt.Errorf("twotriangles setup: %w", err)
	}
	d.geometry = g[0]
	return nil
}

func (*TwoTriangles) Frame(float32, int, int) {}

func (d *TwoTriangles) Draw(r render.Renderer, width, height int) {
	draw.New(r).DrawStatic(d.geometry, d.Placements, width, height)
}
