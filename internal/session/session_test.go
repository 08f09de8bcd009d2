package session

import (
	"testing"

	"github.com/ThatOtherAndrew/shapes/internal/config"
	"github.com/ThatOtherAndrew/shapes/internal/models"
	"github.com/ThatOtherAndrew/shapes/internal/spawn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geometries() []*models.Geometry {
	return []*models.Geometry{
		{Name: "triangle", Vertices: 3},
		{Name: "square", Vertices: 6},
	}
}

func longLived() config.Settings {
	cfg := config.Default()
	cfg.MinLifetime, cfg.MaxLifetime = 5, 6
	return cfg
}

func TestNewStartsReset(t *testing.T) {
	cfg := config.Default()
	s := New(cfg, geometries(), spawn.NewSequence(0.5), 800, 600)

	st := s.Spawner()
	assert.Equal(t, cfg.SpawnInterval, st.TimeToNextSpawn)
	assert.Equal(t, cfg.AnchorInterval, st.TimeToAnchorChange)
	assert.Equal(t, models.Vec2{X: 400, Y: 300}, st.Anchor)
	assert.Empty(t, s.Shapes())
	assert.Equal(t, uint64(0), s.Frames())
}

func TestStepOnePastInterval(t *testing.T) {
	cfg := longLived()
	s := New(cfg, geometries(), spawn.Seeded(1), 800, 600)

	res := s.Step(cfg.SpawnInterval + 1e-4)
	assert.Equal(t, 1, res.Spawned)
	assert.False(t, res.AnchorChanged)
	require.Len(t, s.Shapes(), 1)
	assert.InDelta(t, cfg.SpawnInterval, s.Spawner().TimeToNextSpawn, 1e-3)

	// The new shape already moved for this frame.
	shape := s.Shapes()[0]
	assert.NotEqual(t, s.Spawner().Anchor, shape.Position)
}

func TestStepReplacesExpiredShapesWithNewSpawn(t *testing.T) {
	cfg := longLived()
	s := New(cfg, geometries(), spawn.Seeded(3), 800, 600)

	g := s.app.Geometries[0]
	for i := 0; i < 5; i++ {
		s.app.Shapes = append(s.app.Shapes, models.Shape{
			Position:      models.Vec2{X: float32(i), Y: 1},
			Size:          10,
			TimeRemaining: 0.01,
			Geometry:      g,
			Vertices:      g.Vertices,
		})
	}
	s.app.Spawner.TimeToNextSpawn = 0.01

	res := s.Step(0.02)
	assert.Equal(t, 1, res.Spawned)
	require.Len(t, s.Shapes(), 1)
	assert.GreaterOrEqual(t, s.Shapes()[0].TimeRemaining, cfg.MinLifetime-0.02)

	timer := s.Spawner().TimeToNextSpawn
	assert.GreaterOrEqual(t, timer, float32(0))
	assert.Less(t, timer, cfg.SpawnInterval)
}

func TestStepNegativeDt(t *testing.T) {
	cfg := config.Default()
	s := New(cfg, geometries(), spawn.Seeded(1), 800, 600)

	res := s.Step(-1)
	assert.Equal(t, FrameResult{}, res)
	assert.Equal(t, cfg.SpawnInterval, s.Spawner().TimeToNextSpawn)
	assert.Equal(t, cfg.AnchorInterval, s.Spawner().TimeToAnchorChange)
	assert.Equal(t, uint64(1), s.Frames())
}

func TestStepTimerStaysInRange(t *testing.T) {
	cfg := longLived()
	s := New(cfg, geometries(), spawn.Seeded(5), 800, 600)

	for _, dt := range []float32{0.016, 0.5, 0.001, 1.3, 0.08, 0.2} {
		s.Step(dt)
		timer := s.Spawner().TimeToNextSpawn
		assert.GreaterOrEqual(t, timer, float32(0))
		assert.Less(t, timer, cfg.SpawnInterval)
		assert.LessOrEqual(t, len(s.Shapes()), cfg.MaxShapes)
	}
}

func TestStepMovesAnchor(t *testing.T) {
	cfg := longLived()
	s := New(cfg, geometries(), spawn.Seeded(2), 800, 600)

	assert.False(t, s.Step(cfg.AnchorInterval).AnchorChanged)
	res := s.Step(0.01)
	assert.True(t, res.AnchorChanged)
	assert.Equal(t, cfg.AnchorInterval, s.Spawner().TimeToAnchorChange)
}

func TestResizeMovesFutureAnchors(t *testing.T) {
	cfg := config.Default()
	s := New(cfg, geometries(), spawn.NewSequence(0.5), 800, 600)

	s.Resize(100, 50)
	assert.Equal(t, models.Vec2{X: 400, Y: 300}, s.Spawner().Anchor)

	s.Step(cfg.AnchorInterval + 0.01)
	assert.Equal(t, models.Vec2{X: 50, Y: 25}, s.Spawner().Anchor)
}

func TestReconfigureTrimsOnNextStep(t *testing.T) {
	cfg := longLived()
	s := New(cfg, geometries(), spawn.Seeded(3), 800, 600)

	s.Step(10*cfg.SpawnInterval + 1e-3)
	require.Len(t, s.Shapes(), 10)

	cfg.MaxShapes = 3
	s.Reconfigure(cfg)
	assert.Len(t, s.Shapes(), 10)
	assert.Equal(t, 3, s.Settings().MaxShapes)

	s.Step(0)
	assert.Len(t, s.Shapes(), 3)
}

func TestStop(t *testing.T) {
	cfg := longLived()
	s := New(cfg, geometries(), spawn.Seeded(4), 800, 600)
	s.Step(1)
	before := len(s.Shapes())

	s.Stop()
	assert.True(t, s.Stopped())
	assert.Equal(t, FrameResult{}, s.Step(1))
	assert.Len(t, s.Shapes(), before)
	assert.Equal(t, uint64(1), s.Frames())
}

func TestEmptyCatalogNeverSpawns(t *testing.T) {
	s := New(config.Default(), nil, spawn.Seeded(4), 800, 600)
	for i := 0; i < 10; i++ {
		assert.Equal(t, 0, s.Step(0.5).Spawned)
	}
	assert.Empty(t, s.Shapes())
}
