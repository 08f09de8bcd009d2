// Package session owns the state of one running shape demo and advances it
// one frame at a time.
package session

import (
	"github.com/ThatOtherAndrew/shapes/internal/config"
	"github.com/ThatOtherAndrew/shapes/internal/models"
	"github.com/ThatOtherAndrew/shapes/internal/spawn"
	"github.com/ThatOtherAndrew/shapes/internal/update"
)

type Session struct {
	app     *models.App
	cfg     config.Settings
	rng     spawn.Rand
	spawner *spawn.App
	updater *update.App
	stopped bool
	frames  uint64
}

// FrameResult describes what a single Step did.
type FrameResult struct {
	Spawned       int
	AnchorChanged bool
}

func New(cfg config.Settings, geometries []*models.Geometry, rng spawn.Rand, width, height float32) *Session {
	app := &models.App{
		Geometries: geometries,
		Width:      width,
		Height:     height,
	}
	s := &Session{app: app, rng: rng}
	s.configure(cfg)
	s.spawner.Reset()
	return s
}

func (s *Session) configure(cfg config.Settings) {
	s.cfg = cfg
	s.spawner = spawn.New(s.app, s.rng, cfg)
	s.updater = update.New(s.app, cfg.MaxShapes)
}

// Step advances the simulation by dt seconds. A negative dt is treated as
// zero. Stepping a stopped session does nothing.
func (s *Session) Step(dt float32) FrameResult {
	if s.stopped {
		return FrameResult{}
	}
	if dt < 0 {
		dt = 0
	}
	var res FrameResult
	res.AnchorChanged = s.spawner.RelocateAnchor(dt)
	res.Spawned = s.spawner.SpawnShapes(dt)
	s.updater.UpdateShapes(dt)
	s.frames++
	return res
}

// Shapes is the active set. Callers must treat it as read-only; it is only
// valid until the next Step.
func (s *Session) Shapes() []models.Shape {
	return s.app.Shapes
}

func (s *Session) Spawner() models.SpawnerState {
	return s.app.Spawner
}

func (s *Session) Settings() config.Settings {
	return s.cfg
}

func (s *Session) Frames() uint64 {
	return s.frames
}

// Resize changes the canvas future anchors are picked in. The current
// anchor stays where it is until its timer runs out.
func (s *Session) Resize(width, height float32) {
	s.app.Width = width
	s.app.Height = height
}

// Reconfigure swaps the spawner constants between frames. Timers and live
// shapes carry over; the active set is trimmed on the next Step.
func (s *Session) Reconfigure(cfg config.Settings) {
	s.configure(cfg)
}

func (s *Session) Stop() {
	s.stopped = true
}

func (s *Session) Stopped() bool {
	return s.stopped
}
