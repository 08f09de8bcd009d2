package spawn

import (
	"testing"

	"github.com/ThatOtherAndrew/shapes/internal/config"
	"github.com/ThatOtherAndrew/shapes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(geometries int) *models.App {
	app := &models.App{Width: 800, Height: 600}
	for i := 0; i < geometries; i++ {
		app.Geometries = append(app.Geometries, &models.Geometry{Name: "tri", Vertices: 3})
	}
	return app
}

func TestRandomAnchorInset(t *testing.T) {
	app := testApp(1)

	a := New(app, NewSequence(0), config.Default())
	assert.Equal(t, models.Vec2{X: 80, Y: 60}, a.RandomAnchor())

	a = New(app, NewSequence(0.5), config.Default())
	assert.Equal(t, models.Vec2{X: 400, Y: 300}, a.RandomAnchor())

	a = New(app, Seeded(7), config.Default())
	for i := 0; i < 1000; i++ {
		p := a.RandomAnchor()
		assert.GreaterOrEqual(t, p.X, float32(80))
		assert.LessOrEqual(t, p.X, float32(720))
		assert.GreaterOrEqual(t, p.Y, float32(60))
		assert.LessOrEqual(t, p.Y, float32(540))
	}
}

func TestReset(t *testing.T) {
	app := testApp(1)
	cfg := config.Default()
	New(app, NewSequence(0.5), cfg).Reset()

	assert.Equal(t, cfg.SpawnInterval, app.Spawner.TimeToNextSpawn)
	assert.Equal(t, cfg.AnchorInterval, app.Spawner.TimeToAnchorChange)
	assert.Equal(t, models.Vec2{X: 400, Y: 300}, app.Spawner.Anchor)
}

func TestRelocateAnchor(t *testing.T) {
	app := testApp(1)
	a := New(app, NewSequence(0.5, 0.5, 0, 0), config.Default())
	a.Reset()
	start := app.Spawner.Anchor

	assert.False(t, a.RelocateAnchor(1))
	assert.InDelta(t, 2, app.Spawner.TimeToAnchorChange, 1e-6)

	// Reaching exactly zero is not enough.
	assert.False(t, a.RelocateAnchor(2))
	assert.Equal(t, start, app.Spawner.Anchor)

	assert.True(t, a.RelocateAnchor(0.01))
	assert.Equal(t, float32(3), app.Spawner.TimeToAnchorChange)
	assert.Equal(t, models.Vec2{X: 80, Y: 60}, app.Spawner.Anchor)
}

func TestSpawnShapesCatchUp(t *testing.T) {
	app := testApp(4)
	cfg := config.Default()
	a := New(app, Seeded(1), cfg)
	a.Reset()

	n := a.SpawnShapes(0.5)
	assert.Equal(t, 6, n)
	assert.Len(t, app.Shapes, 6)
	assert.GreaterOrEqual(t, app.Spawner.TimeToNextSpawn, float32(0))
	assert.Less(t, app.Spawner.TimeToNextSpawn, cfg.SpawnInterval)
}

func TestSpawnShapesShortFrame(t *testing.T) {
	app := testApp(1)
	a := New(app, Seeded(1), config.Default())
	a.Reset()

	assert.Equal(t, 0, a.SpawnShapes(0.05))
	assert.Empty(t, app.Shapes)
	assert.InDelta(t, 0.03, app.Spawner.TimeToNextSpawn, 1e-6)
}

func TestSpawnShapesExactInterval(t *testing.T) {
	app := testApp(1)
	cfg := config.Default()
	a := New(app, Seeded(1), cfg)
	a.Reset()

	// The timer has to drop below zero before anything spawns.
	assert.Equal(t, 0, a.SpawnShapes(cfg.SpawnInterval))
	assert.Equal(t, float32(0), app.Spawner.TimeToNextSpawn)

	a.Reset()
	assert.Equal(t, 1, a.SpawnShapes(cfg.SpawnInterval+1e-4))
	assert.InDelta(t, cfg.SpawnInterval, app.Spawner.TimeToNextSpawn, 1e-3)
}

func TestSpawnShapesCap(t *testing.T) {
	app := testApp(2)
	cfg := config.Default()
	cfg.MaxSpawnsPerFrame = 2
	a := New(app, Seeded(3), cfg)
	a.Reset()

	assert.Equal(t, 2, a.SpawnShapes(10))
	assert.Len(t, app.Shapes, 2)
	assert.GreaterOrEqual(t, app.Spawner.TimeToNextSpawn, float32(0))
	assert.Less(t, app.Spawner.TimeToNextSpawn, cfg.SpawnInterval)
}

func TestSpawnShapesEmptyCatalog(t *testing.T) {
	app := testApp(0)
	cfg := config.Default()
	a := New(app, Seeded(3), cfg)
	a.Reset()

	assert.Equal(t, 0, a.SpawnShapes(1))
	assert.Empty(t, app.Shapes)
	assert.GreaterOrEqual(t, app.Spawner.TimeToNextSpawn, float32(0))
}

func TestNewShape(t *testing.T) {
	app := testApp(4)
	cfg := config.Default()
	// anchor x, anchor y, angle, speed, size, lifetime, index
	a := New(app, NewSequence(0.5, 0.5, 0, 0, 0, 0, 0.999999), cfg)
	a.Reset()

	s := a.NewShape()
	assert.Equal(t, app.Spawner.Anchor, s.Position)
	assert.InDelta(t, 0, s.Velocity.X, 1e-4)
	assert.InDelta(t, cfg.MinSpeed, s.Velocity.Y, 1e-4)
	assert.Equal(t, cfg.MinSize, s.Size)
	assert.Equal(t, cfg.MinLifetime, s.TimeRemaining)
	require.NotNil(t, s.Geometry)
	assert.Same(t, app.Geometries[3], s.Geometry)
	assert.Equal(t, int32(3), s.Vertices)

	// The shape keeps its spawn point when the anchor later moves.
	app.Spawner.Anchor = models.Vec2{X: 1, Y: 1}
	assert.Equal(t, models.Vec2{X: 400, Y: 300}, s.Position)
}

func TestNewShapeRanges(t *testing.T) {
	app := testApp(4)
	cfg := config.Default()
	a := New(app, Seeded(42), cfg)
	a.Reset()

	const eps = 1e-2
	for i := 0; i < 10000; i++ {
		s := a.NewShape()
		speed := s.Velocity.Len()
		assert.GreaterOrEqual(t, speed, cfg.MinSpeed-eps)
		assert.LessOrEqual(t, speed, cfg.MaxSpeed+eps)
		assert.GreaterOrEqual(t, s.Size, cfg.MinSize)
		assert.LessOrEqual(t, s.Size, cfg.MaxSize)
		assert.GreaterOrEqual(t, s.TimeRemaining, cfg.MinLifetime)
		assert.LessOrEqual(t, s.TimeRemaining, cfg.MaxLifetime)
		assert.Contains(t, app.Geometries, s.Geometry)
	}
}

func TestSequenceWraps(t *testing.T) {
	s := NewSequence(0.1, 0.2)
	assert.Equal(t, []float32{0.1, 0.2, 0.1}, []float32{s.Float32(), s.Float32(), s.Float32()})
	assert.Equal(t, float32(0), NewSequence().Float32())
}

func TestSeededIsReproducible(t *testing.T) {
	a, b := Seeded(9), Seeded(9)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float32(), b.Float32())
	}
}
