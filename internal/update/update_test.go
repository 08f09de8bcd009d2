package update

import (
	"testing"

	"github.com/ThatOtherAndrew/shapes/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestUpdateShapesIntegrates(t *testing.T) {
	app := &models.App{Shapes: []models.Shape{{
		Position:      models.Vec2{X: 100, Y: 100},
		Velocity:      models.Vec2{X: 10, Y: -20},
		TimeRemaining: 1,
	}}}
	New(app, 250).UpdateShapes(0.5)

	assert.Len(t, app.Shapes, 1)
	assert.Equal(t, models.Vec2{X: 105, Y: 90}, app.Shapes[0].Position)
	assert.Equal(t, float32(0.5), app.Shapes[0].TimeRemaining)
}

func TestUpdateShapesPrunesExpired(t *testing.T) {
	app := &models.App{}
	for i := 0; i < 5; i++ {
		app.Shapes = append(app.Shapes, models.Shape{TimeRemaining: 0.01})
	}
	New(app, 250).UpdateShapes(0.02)
	assert.Empty(t, app.Shapes)
}

func TestUpdateShapesKeepsOrder(t *testing.T) {
	app := &models.App{Shapes: []models.Shape{
		{Size: 1, TimeRemaining: 1},
		{Size: 2, TimeRemaining: 0.1},
		{Size: 3, TimeRemaining: 1},
	}}
	New(app, 250).UpdateShapes(0.2)

	var sizes []float32
	for _, s := range app.Shapes {
		sizes = append(sizes, s.Size)
	}
	assert.Equal(t, []float32{1, 3}, sizes)
}

func TestPruneCapsFromFront(t *testing.T) {
	shapes := make([]models.Shape, 300)
	for i := range shapes {
		shapes[i] = models.Shape{Size: float32(i), TimeRemaining: 5}
	}
	kept := Prune(shapes, 250)

	assert.Len(t, kept, 250)
	assert.Equal(t, float32(0), kept[0].Size)
	assert.Equal(t, float32(249), kept[249].Size)
}

func TestPruneNoCap(t *testing.T) {
	shapes := make([]models.Shape, 300)
	for i := range shapes {
		shapes[i].TimeRemaining = 1
	}
	assert.Len(t, Prune(shapes, 0), 300)
}

func TestPruneZeroLifetimeIsDead(t *testing.T) {
	kept := Prune([]models.Shape{{TimeRemaining: 0}, {TimeRemaining: -1}, {TimeRemaining: 1e-6}}, 10)
	assert.Len(t, kept, 1)
}
