// Package software renders the demos on the CPU with gogpu/gg, so they can
// run headless and be saved frame by frame as PNG files.
package software

import (
	"fmt"
	"image"
	"io"
	"path/filepath"

	"github.com/ThatOtherAndrew/shapes/internal/logging"
	"github.com/ThatOtherAndrew/shapes/internal/models"
	"github.com/ThatOtherAndrew/shapes/internal/render"
	"github.com/gogpu/gg"
)

type vertex struct {
	x, y  float64
	color gg.RGBA
}

type drawable struct {
	vertices []vertex
	// solid is set when every vertex has the same colour.
	solid bool
}

func (d *drawable) VertexCount() int32 { return int32(len(d.vertices)) }

type Renderer struct {
	dc     *gg.Context
	width  int
	height int
	draws  int
}

func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) CreateDrawable(positions []float32, colors []uint8) (models.Drawable, error) {
	n, ok := render.VertexCount(positions, colors)
	if !ok {
		return nil, fmt.Errorf("mismatched vertex data (%d position floats, %d color bytes)", len(positions), len(colors))
	}
	d := &drawable{vertices: make([]vertex, n), solid: true}
	for i := range d.vertices {
		d.vertices[i] = vertex{
			x: float64(positions[i*2]),
			y: float64(positions[i*2+1]),
			color: gg.RGB(
				float64(colors[i*3])/255,
				float64(colors[i*3+1])/255,
				float64(colors[i*3+2])/255,
			),
		}
		if d.vertices[i].color != d.vertices[0].color {
			d.solid = false
		}
	}
	return d, nil
}

func (r *Renderer) BeginFrame(width, height int) {
	if r.dc == nil || r.width != width || r.height != height {
		if r.dc != nil {
			_ = r.dc.Close()
		}
		r.dc = gg.NewContext(width, height)
		r.width, r.height = width, height
	}
	c := render.ClearColor
	r.dc.ClearWithColor(gg.RGBA2(float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3])))
	r.draws = 0
}

func (r *Renderer) DrawInstance(d models.Drawable, position models.Vec2, size float32) {
	dr, ok := d.(*drawable)
	if !ok || r.dc == nil {
		logging.Logger().Warn("skipping draw", "foreign", !ok, "frame_started", r.dc != nil)
		return
	}

	s := float64(size)
	tris := make([][3]vertex, 0, len(dr.vertices)/3)
	for i := 0; i+2 < len(dr.vertices); i += 3 {
		var tri [3]vertex
		for j := range tri {
			v := dr.vertices[i+j]
			// Canvas y grows upward like GL; the image grows downward.
			tri[j] = vertex{
				x:     v.x*s + float64(position.X),
				y:     float64(r.height) - (v.y*s + float64(position.Y)),
				color: v.color,
			}
		}
		tris = append(tris, tri)
	}
	r.fill(tris, dr.solid)
	r.draws++
}

// fill draws every triangle of one drawable as a single path. Triangles
// that share an edge (the two halves of a square) then get full coverage
// along it instead of two half-covered anti-aliased edges.
func (r *Renderer) fill(tris [][3]vertex, solid bool) {
	if len(tris) == 0 {
		return
	}
	if solid {
		r.dc.SetFillBrush(gg.Solid(tris[0][0].color))
	} else {
		r.dc.SetFillBrush(gg.NewCustomBrush(gouraud(tris)))
	}
	for _, tri := range tris {
		r.dc.MoveTo(tri[0].x, tri[0].y)
		r.dc.LineTo(tri[1].x, tri[1].y)
		r.dc.LineTo(tri[2].x, tri[2].y)
		r.dc.ClosePath()
	}
	if err := r.dc.Fill(); err != nil {
		logging.Logger().Debug("fill failed", "err", err)
	}
}

type barycentric struct {
	tri [3]vertex
	den float64
}

// weights returns the barycentric weights of (x, y). They are all in
// [0, 1] when the point is inside the triangle.
func (b *barycentric) weights(x, y float64) (w0, w1, w2 float64) {
	t := &b.tri
	w0 = ((t[1].y-t[2].y)*(x-t[2].x) + (t[2].x-t[1].x)*(y-t[2].y)) / b.den
	w1 = ((t[2].y-t[0].y)*(x-t[2].x) + (t[0].x-t[2].x)*(y-t[2].y)) / b.den
	return w0, w1, 1 - w0 - w1
}

// gouraud interpolates vertex colours within whichever triangle holds the
// sample. Samples on the anti-aliased rim fall just outside every triangle;
// they take the nearest one with clamped weights.
func gouraud(tris [][3]vertex) gg.ColorFunc {
	bs := make([]barycentric, 0, len(tris))
	for _, tri := range tris {
		den := (tri[1].y-tri[2].y)*(tri[0].x-tri[2].x) + (tri[2].x-tri[1].x)*(tri[0].y-tri[2].y)
		if den == 0 {
			continue
		}
		bs = append(bs, barycentric{tri: tri, den: den})
	}
	if len(bs) == 0 {
		c := tris[0][0].color
		return func(float64, float64) gg.RGBA { return c }
	}

	return func(x, y float64) gg.RGBA {
		best := &bs[0]
		w0, w1, w2 := best.weights(x, y)
		score := min(w0, w1, w2)
		for i := 1; i < len(bs) && score < 0; i++ {
			v0, v1, v2 := bs[i].weights(x, y)
			if s := min(v0, v1, v2); s > score {
				best, score = &bs[i], s
				w0, w1, w2 = v0, v1, v2
			}
		}

		w0, w1, w2 = clamp01(w0), clamp01(w1), clamp01(w2)
		sum := w0 + w1 + w2
		t := &best.tri
		if sum == 0 {
			return t[0].color
		}
		w0, w1, w2 = w0/sum, w1/sum, w2/sum
		return gg.RGBA{
			R: w0*t[0].color.R + w1*t[1].color.R + w2*t[2].color.R,
			G: w0*t[0].color.G + w1*t[1].color.G + w2*t[2].color.G,
			B: w0*t[0].color.B + w1*t[1].color.B + w2*t[2].color.B,
			A: 1,
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Draws is the number of DrawInstance calls since the last BeginFrame.
func (r *Renderer) Draws() int {
	return r.draws
}

func (r *Renderer) Image() image.Image {
	if r.dc == nil {
		return nil
	}
	_ = r.dc.FlushGPU()
	return r.dc.Image()
}

func (r *Renderer) EncodePNG(w io.Writer) error {
	if r.dc == nil {
		return fmt.Errorf("no frame has been drawn")
	}
	return r.dc.EncodePNG(w)
}

func (r *Renderer) SavePNG(path string) error {
	if r.dc == nil {
		return fmt.Errorf("no frame has been drawn")
	}
	return r.dc.SavePNG(path)
}

// FramePath names the PNG for frame n inside dir.
func FramePath(dir string, n uint64) string {
	return filepath.Join(dir, fmt.Sprintf("frame-%05d.png", n))
}

func (r *Renderer) Close() error {
	if r.dc == nil {
		return nil
	}
	err := r.dc.Close()
	r.dc = nil
	return err
}
