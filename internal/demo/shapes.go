package demo

import (
	"fmt"

	"github.com/ThatOtherAndrew/shapes/internal/catalog"
	"github.com/ThatOtherAndrew/shapes/internal/config"
	"github.com/ThatOtherAndrew/shapes/internal/draw"
	"github.com/ThatOtherAndrew/shapes/internal/logging"
	"github.com/ThatOtherAndrew/shapes/internal/models"
	"github.com/ThatOtherAndrew/shapes/internal/render"
	"github.com/ThatOtherAndrew/shapes/internal/session"
	"github.com/ThatOtherAndrew/shapes/internal/spawn"
)

type Shapes struct {
	cfg     config.Settings
	rng     spawn.Rand
	session *session.Session
}

func NewShapes(cfg config.Settings, rng spawn.Rand) *Shapes {
	return &Shapes{cfg: cfg, rng: rng}
}

func (*Shapes) Name() string   { return "shapes" }
func (*Shapes) Animated() bool { return true }

func (*Shapes) Description() string {
	return "a stream of coloured shapes drifting from a moving spawner"
}

func (d *Shapes) Setup(r render.Renderer, width, height int) error {
	geometries, err := catalog.Build(r, catalog.Shapes())
	if err != nil {
		return fmt.Errorf("shapes setup: %w", err)
	}
	d.session = session.New(d.cfg, geometries, d.rng, float32(width), float32(height))
	return nil
}

func (d *Shapes) Frame(dt float32, width, height int) {
	d.session.Resize(float32(width), float32(height))
	res := d.session.Step(dt)
	if res.AnchorChanged {
		a := d.session.Spawner().Anchor
		logging.Logger().Debug("spawner moved", "x", a.X, "y", a.Y)
	}
}

func (d *Shapes) Draw(r render.Renderer, width, height int) {
	draw.New(r).Draw(d.session.Shapes(), width, height)
}

func (d *Shapes) Reconfigure(cfg config.Settings) {
	d.cfg = cfg
	if d.session != nil {
		d.session.Reconfigure(cfg)
	}
}

func (d *Shapes) Session() *session.Session {
	return d.session
}

func (d *Shapes) ActiveShapes() []models.Shape {
	if d.session == nil {
		return nil
	}
	return d.session.Shapes()
}

func (d *Shapes) Stop() {
	if d.session != nil {
		d.session.Stop()
	}
}
