package update

import (
	"github.com/ThatOtherAndrew/shapes/internal/models"
)

type App struct {
	app       *models.App
	maxShapes int
}

func New(app *models.App, maxShapes int) *App {
	return &App{app: app, maxShapes: maxShapes}
}

// UpdateShapes moves every shape along its velocity and burns dt of its
// lifetime, then drops the dead ones. Survivors keep their order and only
// the first maxShapes of them are kept.
func (a *App) UpdateShapes(dt float32) {
	for i := range a.app.Shapes {
		s := &a.app.Shapes[i]
		s.Position.X += s.Velocity.X * dt
		s.Position.Y += s.Velocity.Y * dt
		s.TimeRemaining -= dt
	}
	a.app.Shapes = Prune(a.app.Shapes, a.maxShapes)
}

// Prune filters shapes in place to the alive ones and truncates to max.
// A max of zero or less disables the cap.
func Prune(shapes []models.Shape, max int) []models.Shape {
	alive := shapes[:0]
	for i := range shapes {
		if shapes[i].Alive() {
			alive = append(alive, shapes[i])
		}
	}
	// Clear the tail so dropped shapes don't pin their geometry.
	clear(shapes[len(alive):])

	if max > 0 && len(alive) > max {
		clear(alive[max:])
		alive = alive[:max]
	}
	return alive
}
