// Package ebitengine renders the demos through Ebitengine, which also
// covers the browser build (GOOS=js GOARCH=wasm).
package ebitengine

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/ThatOtherAndrew/shapes/internal/config"
	"github.com/ThatOtherAndrew/shapes/internal/demo"
	"github.com/ThatOtherAndrew/shapes/internal/logging"
	"github.com/ThatOtherAndrew/shapes/internal/models"
	"github.com/ThatOtherAndrew/shapes/internal/render"
	"github.com/ThatOtherAndrew/shapes/internal/report"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

type drawable struct {
	positions []float32
	colors    []float32
	vertices  int32
}

func (d *drawable) VertexCount() int32 { return d.vertices }

// Renderer draws into whatever image SetTarget last received, normally the
// screen handed to Game.Draw.
type Renderer struct {
	target   *ebiten.Image
	height   float32
	vertices []ebiten.Vertex
	indices  []uint16
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SetTarget(img *ebiten.Image) {
	r.target = img
}

func (r *Renderer) CreateDrawable(positions []float32, colors []uint8) (models.Drawable, error) {
	n, ok := render.VertexCount(positions, colors)
	if !ok {
		return nil, fmt.Errorf("mismatched vertex data (%d position floats, %d color bytes)", len(positions), len(colors))
	}
	d := &drawable{
		positions: append([]float32(nil), positions...),
		colors:    make([]float32, len(colors)),
		vertices:  n,
	}
	for i, c := range colors {
		d.colors[i] = float32(c) / 255
	}
	return d, nil
}

func (r *Renderer) BeginFrame(width, height int) {
	r.height = float32(height)
	if r.target == nil {
		return
	}
	c := render.ClearColor
	r.target.Fill(color.RGBA{
		R: uint8(c[0] * 255),
		G: uint8(c[1] * 255),
		B: uint8(c[2] * 255),
		A: uint8(c[3] * 255),
	})
}

func (r *Renderer) DrawInstance(d models.Drawable, position models.Vec2, size float32) {
	dr, ok := d.(*drawable)
	if !ok || r.target == nil {
		return
	}

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for i := 0; i < int(dr.vertices); i++ {
		x := dr.positions[i*2]*size + position.X
		y := dr.positions[i*2+1]*size + position.Y
		r.vertices = append(r.vertices, ebiten.Vertex{
			DstX:   x,
			DstY:   r.height - y,
			SrcX:   1,
			SrcY:   1,
			ColorR: dr.colors[i*3],
			ColorG: dr.colors[i*3+1],
			ColorB: dr.colors[i*3+2],
			ColorA: 1,
		})
		r.indices = append(r.indices, uint16(i))
	}
	r.target.DrawTriangles(r.vertices, r.indices, whiteSubImage, nil)
}

// Game adapts a demo to ebiten.Game.
type Game struct {
	demo     demo.Demo
	r        *Renderer
	reporter render.Reporter
	reload   <-chan config.Settings

	width, height int
	ready         bool
	err           error
}

func NewGame(d demo.Demo, reporter render.Reporter, reload <-chan config.Settings, width, height int) *Game {
	return &Game{
		demo:     d,
		r:        NewRenderer(),
		reporter: reporter,
		reload:   reload,
		width:    width,
		height:   height,
	}
}

func (g *Game) fail(err error) error {
	g.err = err
	if g.reporter != nil {
		g.reporter.Report(err.Error())
	}
	return err
}

// recoverPanic records a panic as the game's terminal error. The next
// Update returns it, which ends RunGame.
func (g *Game) recoverPanic() {
	if r := recover(); r != nil {
		g.err = report.Panic(g.reporter, r)
	}
}

func (g *Game) Update() (err error) {
	if g.err != nil {
		return g.err
	}
	defer func() {
		if g.err != nil {
			err = g.err
		}
	}()
	defer g.recoverPanic()

	if !g.ready {
		if err := g.demo.Setup(g.r, g.width, g.height); err != nil {
			return g.fail(err)
		}
		g.ready = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	select {
	case cfg, ok := <-g.reload:
		if ok {
			if rc, ok := g.demo.(demo.Reconfigurable); ok {
				rc.Reconfigure(cfg)
			}
		}
	default:
	}

	g.demo.Frame(float32(1/float64(ebiten.TPS())), g.width, g.height)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.ready || g.err != nil {
		return
	}
	defer g.recoverPanic()
	g.r.SetTarget(screen)
	g.demo.Draw(g.r, g.width, g.height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens a window and blocks until it closes or the demo fails.
func Run(d demo.Demo, reporter render.Reporter, reload <-chan config.Settings, width, height int) error {
	ebiten.SetWindowTitle("shapes: " + d.Name())
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	logging.Logger().Debug("starting ebitengine", "demo", d.Name())
	err := ebiten.RunGame(NewGame(d, reporter, reload, width, height))
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
