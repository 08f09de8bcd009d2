package spawn

import (
	"github.com/ThatOtherAndrew/shapes/internal/config"
	"github.com/ThatOtherAndrew/shapes/internal/models"
	"github.com/chewxy/math32"
)

type App struct {
	app *models.App
	rng Rand
	cfg config.Settings
}

func New(app *models.App, rng Rand, cfg config.Settings) *App {
	if rng == nil {
		rng = Global
	}
	return &App{app: app, rng: rng, cfg: cfg}
}

// RandomAnchor picks a point in the middle 80% of the canvas on both axes.
func (a *App) RandomAnchor() models.Vec2 {
	return models.Vec2{
		X: inRange(a.rng, a.app.Width*0.1, a.app.Width*0.9),
		Y: inRange(a.rng, a.app.Height*0.1, a.app.Height*0.9),
	}
}

// Reset puts the spawner back at its start-of-session state.
func (a *App) Reset() {
	a.app.Spawner = models.SpawnerState{
		TimeToNextSpawn:    a.cfg.SpawnInterval,
		Anchor:             a.RandomAnchor(),
		TimeToAnchorChange: a.cfg.AnchorInterval,
	}
}

// RelocateAnchor advances the relocation timer and reports whether the
// anchor moved this frame.
func (a *App) RelocateAnchor(dt float32) bool {
	s := &a.app.Spawner
	s.TimeToAnchorChange -= dt
	if s.TimeToAnchorChange >= 0 {
		return false
	}
	s.TimeToAnchorChange = a.cfg.AnchorInterval
	s.Anchor = a.RandomAnchor()
	return true
}

// SpawnShapes advances the spawn timer and appends one shape for every
// interval the timer fell behind. A slow frame can therefore spawn many
// shapes at once; MaxSpawnsPerFrame bounds that when set, while the timer
// is still wound back into [0, interval).
func (a *App) SpawnShapes(dt float32) int {
	s := &a.app.Spawner
	s.TimeToNextSpawn -= dt

	spawned := 0
	for s.TimeToNextSpawn < 0 {
		s.TimeToNextSpawn += a.cfg.SpawnInterval

		if a.cfg.MaxSpawnsPerFrame > 0 && spawned >= a.cfg.MaxSpawnsPerFrame {
			continue
		}
		if len(a.app.Geometries) == 0 {
			continue
		}
		a.app.Shapes = append(a.app.Shapes, a.NewShape())
		spawned++
	}
	return spawned
}

func (a *App) NewShape() models.Shape {
	angle := inRange(a.rng, 0, 2*math32.Pi)
	speed := inRange(a.rng, a.cfg.MinSpeed, a.cfg.MaxSpeed)

	velocity := models.Vec2{
		X: math32.Sin(angle) * speed,
		Y: math32.Cos(angle) * speed,
	}
	size := inRange(a.rng, a.cfg.MinSize, a.cfg.MaxSize)
	timeRemaining := inRange(a.rng, a.cfg.MinLifetime, a.cfg.MaxLifetime)

	idx := int(inRange(a.rng, 0, float32(len(a.app.Geometries))))
	if idx >= len(a.app.Geometries) {
		idx = len(a.app.Geometries) - 1
	}
	geometry := a.app.Geometries[idx]

	return models.Shape{
		Position:      a.app.Spawner.Anchor,
		Velocity:      velocity,
		Size:          size,
		TimeRemaining: timeRemaining,
		Geometry:      geometry,
		Vertices:      geometry.Vertices,
	}
}
