// Package loop drives a demo frame by frame, either against a window or
// headless on a ticker.
package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/ThatOtherAndrew/shapes/internal/config"
	"github.com/ThatOtherAndrew/shapes/internal/demo"
	"github.com/ThatOtherAndrew/shapes/internal/logging"
	"github.com/ThatOtherAndrew/shapes/internal/render"
	"github.com/ThatOtherAndrew/shapes/internal/report"
)

// ErrPanic wraps a panic recovered from a demo.
var ErrPanic = report.ErrPanic

// Surface is the window side of the loop.
type Surface interface {
	GetSize() (int, int)
	ShouldClose() bool
	PollEvents()
	SwapBuffers()
	EscapePressed() bool
}

type Options struct {
	Reporter render.Reporter
	// Reload delivers new settings; they are applied at the start of a frame.
	Reload <-chan config.Settings
	Now    func() time.Time
}

func (o *Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *Options) report(msg string) {
	if o.Reporter != nil {
		o.Reporter.Report(msg)
	}
}

// guard turns a panic into a reported error. It must be deferred directly.
func guard(o *Options, err *error) {
	if r := recover(); r != nil {
		*err = report.Panic(o.Reporter, r)
	}
}

func setup(d demo.Demo, r render.Renderer, width, height int, o *Options) error {
	if err := d.Setup(r, width, height); err != nil {
		o.report(err.Error())
		return err
	}
	logging.Logger().Debug("demo ready", "demo", d.Name(), "width", width, "height", height)
	return nil
}

func applyReload(d demo.Demo, reload <-chan config.Settings) {
	if reload == nil {
		return
	}
	select {
	case cfg, ok := <-reload:
		if !ok {
			return
		}
		if rc, ok := d.(demo.Reconfigurable); ok {
			rc.Reconfigure(cfg)
			logging.Logger().Info("applied new settings", "demo", d.Name())
		}
	default:
	}
}

// RunWindow runs d until the window closes, Escape is pressed or ctx is
// done. dt is wall-clock time between frames.
func RunWindow(ctx context.Context, s Surface, r render.Renderer, d demo.Demo, opts Options) (err error) {
	defer guard(&opts, &err)

	width, height := s.GetSize()
	if err := setup(d, r, width, height, &opts); err != nil {
		return err
	}

	lastTime := opts.now()
	for !s.ShouldClose() {
		if ctx.Err() != nil {
			return nil
		}

		now := opts.now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		s.PollEvents()
		if s.EscapePressed() {
			return nil
		}
		applyReload(d, opts.Reload)

		width, height = s.GetSize()
		d.Frame(dt, width, height)
		d.Draw(r, width, height)
		s.SwapBuffers()
	}
	return nil
}

type HeadlessConfig struct {
	Hz     int
	Frames uint64
	Width  int
	Height int
	// Unpaced runs frames back to back instead of waiting for the ticker.
	// dt is still 1/Hz.
	Unpaced bool
	// AfterFrame runs after each frame is drawn, with the 1-based frame
	// number. An error stops the loop.
	AfterFrame func(frame uint64) error
}

// RunHeadless runs d with a fixed dt of 1/Hz. It returns nil after Frames
// frames (0 runs until ctx is done) and ctx.Err() on cancellation.
func RunHeadless(ctx context.Context, r render.Renderer, d demo.Demo, cfg HeadlessConfig, opts Options) (err error) {
	defer guard(&opts, &err)

	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		def := config.Default()
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	period := time.Second / time.Duration(cfg.Hz)
	if period <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	dt := float32(period.Seconds())

	if err := setup(d, r, cfg.Width, cfg.Height, &opts); err != nil {
		return err
	}

	var tick <-chan time.Time
	if !cfg.Unpaced {
		t := time.NewTicker(period)
		defer t.Stop()
		tick = t.C
	}

	var frame uint64
	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return ctx.Err()
		}

		applyReload(d, opts.Reload)
		d.Frame(dt, cfg.Width, cfg.Height)
		d.Draw(r, cfg.Width, cfg.Height)
		frame++

		if cfg.AfterFrame != nil {
			if err := cfg.AfterFrame(frame); err != nil {
				return err
			}
		}
		if cfg.Frames > 0 && frame >= cfg.Frames {
			return nil
		}
	}
}
