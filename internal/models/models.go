package models

import (
	"github.com/chewxy/math32"
)

type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Len() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Drawable is an uploaded geometry/colour pairing. Renderers hand these out
// from CreateDrawable and only accept their own back in DrawInstance.
type Drawable interface {
	VertexCount() int32
}

// Geometry is one catalog entry. It is built once and shared by pointer
// between every shape that picked it.
type Geometry struct {
	Name      string
	Positions []float32
	Colors    []uint8
	Vertices  int32
	Handle    Drawable
}

type Shape struct {
	Position      Vec2
	Velocity      Vec2
	Size          float32
	TimeRemaining float32
	Geometry      *Geometry
	Vertices      int32
}

func (s *Shape) Alive() bool {
	return s.TimeRemaining > 0
}

type SpawnerState struct {
	TimeToNextSpawn    float32
	Anchor             Vec2
	TimeToAnchorChange float32
}

type App struct {
	Shapes     []Shape
	Spawner    SpawnerState
	Geometries []*Geometry
	Width      float32
	Height     float32
}
