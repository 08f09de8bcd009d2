package draw

import (
	"github.com/ThatOtherAndrew/shapes/internal/models"
	"github.com/ThatOtherAndrew/shapes/internal/render"
)

type App struct {
	r render.Renderer
}

func New(r render.Renderer) *App {
	return &App{r: r}
}

// Draw clears the canvas and issues one draw call per shape, in order.
func (a *App) Draw(shapes []models.Shape, width, height int) {
	a.r.BeginFrame(width, height)
	for i := range shapes {
		s := &shapes[i]
		if s.Geometry == nil || s.Geometry.Handle == nil {
			continue
		}
		a.r.DrawInstance(s.Geometry.Handle, s.Position, s.Size)
	}
}

// Placement is one fixed draw of a static demo.
type Placement struct {
	Position models.Vec2
	Size     float32
}

// DrawStatic draws the same geometry once per placement, overriding the
// location and size for each draw.
func (a *App) DrawStatic(g *models.Geometry, placements []Placement, width, height int) {
	a.r.BeginFrame(width, height)
	for _, p := range placements {
		a.r.DrawInstance(g.Handle, p.Position, p.Size)
	}
}
