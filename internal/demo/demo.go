// Package demo holds the three rasterization demos: a static triangle, two
// triangles drawn with per-draw overrides, and the animated shape spawner.
package demo

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ThatOtherAndrew/shapes/internal/config"
	"github.com/ThatOtherAndrew/shapes/internal/render"
	"github.com/ThatOtherAndrew/shapes/internal/spawn"
)

var ErrUnknown = errors.New("unknown demo")

type Demo interface {
	Name() string
	Description() string
	// Setup creates every GPU resource the demo needs. An error means the
	// demo must not enter the frame loop.
	Setup(r render.Renderer, width, height int) error
	// Frame advances the demo by dt seconds.
	Frame(dt float32, width, height int)
	Draw(r render.Renderer, width, height int)
	// Animated reports whether frames after the first differ.
	Animated() bool
}

// Reconfigurable demos accept new settings between frames.
type Reconfigurable interface {
	Reconfigure(cfg config.Settings)
}

type factory func(cfg config.Settings, rng spawn.Rand) Demo

var registry = map[string]factory{
	"triangle":     func(config.Settings, spawn.Rand) Demo { return NewTriangle() },
	"twotriangles": func(config.Settings, spawn.Rand) Demo { return NewTwoTriangles() },
	"shapes":       func(cfg config.Settings, rng spawn.Rand) Demo { return NewShapes(cfg, rng) },
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Describe(name string) string {
	f, ok := registry[name]
	if !ok {
		return ""
	}
	return f(config.Default(), spawn.Global).Description()
}

func New(name string, cfg config.Settings, rng spawn.Rand) (Demo, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknown, name, Names())
	}
	return f(cfg, rng), nil
}
