// Command oxy-graph opens a window that plots polynomial equations on a pannable, zoomable grid.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine"
	"github.com/Carmen-Shannon/oxy-graph/engine/camera"
	"github.com/Carmen-Shannon/oxy-graph/engine/renderer"
	"github.com/Carmen-Shannon/oxy-graph/engine/scene"
	"github.com/Carmen-Shannon/oxy-graph/engine/window"
)

// defaultEquations are plotted when no -eq flag is given.
var defaultEquations = []string{"1", "-x^3+3x^2+4x+1"}

// equationList collects repeated -eq flags.
type equationList []string

func (l *equationList) String() string {
	return strings.Join(*l, ", ")
}

func (l *equationList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type config struct {
	width, height int
	title         string
	vsync         bool
	msaa          uint
	profile       time.Duration
	software      bool
	panSpeed      float64
	logLevel      slog.Level
	equations     equationList
}

func parseFlags(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("oxy-graph", flag.ContinueOnError)
	fs.IntVar(&cfg.width, "width", 1280, "window width in pixels")
	fs.IntVar(&cfg.height, "height", 720, "window height in pixels")
	fs.StringVar(&cfg.title, "title", "oxy-graph", "window title")
	fs.BoolVar(&cfg.vsync, "vsync", true, "wait for vertical blank before presenting")
	fs.UintVar(&cfg.msaa, "msaa", uint(renderer.MSAA4x), "multisample count (1, 4, 8 or 16)")
	fs.DurationVar(&cfg.profile, "profile", 0, "log frame rate and memory statistics at this interval, e.g. 1s (0 disables)")
	fs.BoolVar(&cfg.software, "software", false, "force the software fallback adapter")
	fs.Float64Var(&cfg.panSpeed, "pan-speed", 0.1, "keyboard pan step as a fraction of the camera distance; also scales zoom steps")
	fs.TextVar(&cfg.logLevel, "log-level", slog.LevelInfo, "log level (debug, info, warn, error)")
	fs.Var(&cfg.equations, "eq", "equation to plot, e.g. \"y = 2x^2 - 1\" (repeatable)")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if !renderer.MSAASampleCount(cfg.msaa).Valid() {
		return cfg, fmt.Errorf("invalid -msaa %d: must be 1, 4, 8 or 16", cfg.msaa)
	}
	if cfg.width <= 0 || cfg.height <= 0 {
		return cfg, fmt.Errorf("invalid window size %dx%d", cfg.width, cfg.height)
	}
	if cfg.panSpeed <= 0 || cfg.panSpeed > 1 {
		return cfg, fmt.Errorf("invalid -pan-speed %g: must be in (0, 1]", cfg.panSpeed)
	}
	if len(cfg.equations) == 0 {
		cfg.equations = defaultEquations
	}
	return cfg, nil
}

func run(cfg config) error {
	w, err := window.NewWindow(
		window.WithTitle(cfg.title),
		window.WithSize(cfg.width, cfg.height),
	)
	if err != nil {
		return err
	}
	defer w.Close()

	presentMode := renderer.PresentModeVSync
	if !cfg.vsync {
		presentMode = renderer.PresentModeUncapped
	}
	r, err := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		w,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.msaa)),
		renderer.WithForceSoftwareRenderer(cfg.software),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Release()

	opts := []scene.SceneBuilderOption{
		scene.WithSize(w.Size()),
		scene.WithController(camera.NewCameraController(camera.WithPanSpeed(float32(cfg.panSpeed)))),
	}
	for _, eq := range cfg.equations {
		opts = append(opts, scene.WithEquation(eq))
	}
	s, err := scene.NewScene(opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	eng, err := engine.NewEngine(w, r, s, engine.WithProfiling(cfg.profile))
	if err != nil {
		return err
	}
	common.Logger().Info("starting", "equations", len(cfg.equations), "size", w.Size())
	eng.Run()
	return nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	common.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.logLevel})))

	if err := run(cfg); err != nil {
		common.Logger().Error("oxy-graph exited", "error", err)
		os.Exit(1)
	}
}
