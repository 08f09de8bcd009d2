package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/ThatOtherAndrew/shapes/internal/config"
	"github.com/ThatOtherAndrew/shapes/internal/demo"
	"github.com/ThatOtherAndrew/shapes/internal/ebitengine"
	"github.com/ThatOtherAndrew/shapes/internal/logging"
	"github.com/ThatOtherAndrew/shapes/internal/loop"
	"github.com/ThatOtherAndrew/shapes/internal/opengl"
	"github.com/ThatOtherAndrew/shapes/internal/report"
	"github.com/ThatOtherAndrew/shapes/internal/software"
	"github.com/ThatOtherAndrew/shapes/internal/spawn"
	"github.com/ThatOtherAndrew/shapes/pkg/window"
	"github.com/spf13/cobra"
)

type runOptions struct {
	backend string
	frames  uint64
	hz      int
	out     string
	seed    uint64
	watch   bool
	unpaced bool
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:       "run [demo]",
	Short:     "Run a demo (default: shapes)",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: demo.Names(),
	RunE:      Run,
}

func init() {
	rootCmd.AddCommand(runCmd)
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()

	f := runCmd.Flags()
	f.StringVarP(&runOpts.backend, "backend", "b", "gl", "Renderer: gl, ebiten or headless")
	f.Uint64Var(&runOpts.frames, "frames", 0, "Stop after N frames in headless mode (0 = forever, 1 for static demos)")
	f.IntVar(&runOpts.hz, "hz", 60, "Frame rate in headless mode")
	f.StringVarP(&runOpts.out, "out", "o", "", "Write each headless frame as a PNG into this directory")
	f.Uint64Var(&runOpts.seed, "seed", 0, "Seed the shape spawner for a reproducible run")
	f.BoolVar(&runOpts.watch, "watch", false, "Reload settings when the settings file changes")
	f.BoolVar(&runOpts.unpaced, "unpaced", false, "Run headless frames back to back")
}

func Run(cmd *cobra.Command, args []string) error {
	box := report.NewBox(os.Stderr)

	name := "shapes"
	if len(args) > 0 {
		name = args[0]
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return reported(box, fmt.Errorf("failed to load settings: %w", err))
	}

	rng := spawn.Global
	if cmd.Flags().Changed("seed") {
		rng = spawn.Seeded(runOpts.seed)
	}

	d, err := demo.New(name, *settings, rng)
	if err != nil {
		return reported(box, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var reload <-chan config.Settings
	if runOpts.watch {
		settingsPath, err := config.GetSettingsPath()
		if err != nil {
			return reported(box, fmt.Errorf("failed to get settings path: %w", err))
		}
		reload, err = config.Watch(ctx, settingsPath)
		if err != nil {
			return reported(box, fmt.Errorf("failed to watch settings: %w", err))
		}
		logging.Logger().Info("watching settings", "path", settingsPath)
	}

	opts := loop.Options{Reporter: box, Reload: reload}
	logging.Logger().Info("starting demo", "demo", d.Name(), "backend", runOpts.backend)

	switch runOpts.backend {
	case "gl":
		err = runGL(ctx, d, settings, opts)
	case "ebiten":
		err = ebitengine.Run(d, box, reload, settings.Width, settings.Height)
	case "headless":
		err = runHeadless(ctx, d, settings, opts)
	default:
		return reported(box, fmt.Errorf("unknown backend %q (want gl, ebiten or headless)", runOpts.backend))
	}

	if shapes, ok := d.(*demo.Shapes); ok {
		shapes.Stop()
	}
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	if box.Empty() {
		return reported(box, err)
	}
	return reportedError{err}
}

func runGL(ctx context.Context, d demo.Demo, settings *config.Settings, opts loop.Options) error {
	win, err := window.NewWindow("shapes: "+d.Name(), settings.Width, settings.Height)
	if err != nil {
		return reported(opts.Reporter, err)
	}
	defer win.Destroy()

	r := opengl.New()
	if err := r.InitGL(); err != nil {
		return reported(opts.Reporter, fmt.Errorf("failed to initialise OpenGL: %w", err))
	}
	defer r.Delete()

	return loop.RunWindow(ctx, win, r, d, opts)
}

func runHeadless(ctx context.Context, d demo.Demo, settings *config.Settings, opts loop.Options) error {
	r := software.New()
	defer r.Close()

	frames := runOpts.frames
	if frames == 0 && !d.Animated() {
		frames = 1
	}

	cfg := loop.HeadlessConfig{
		Hz:      runOpts.hz,
		Frames:  frames,
		Width:   settings.Width,
		Height:  settings.Height,
		Unpaced: runOpts.unpaced,
	}
	if runOpts.out != "" {
		if err := os.MkdirAll(runOpts.out, 0755); err != nil {
			return reported(opts.Reporter, fmt.Errorf("failed to create output directory: %w", err))
		}
		cfg.AfterFrame = func(frame uint64) error {
			path := software.FramePath(runOpts.out, frame)
			if err := r.SavePNG(path); err != nil {
				return fmt.Errorf("failed to save frame %d: %w", frame, err)
			}
			logging.Logger().Debug("saved frame", "path", path)
			return nil
		}
	}

	return loop.RunHeadless(ctx, r, d, cfg, opts)
}
