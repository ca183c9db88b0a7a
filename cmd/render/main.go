package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/user/raytracer/internal/engine"
	"github.com/user/raytracer/internal/engine/gpu"
	"github.com/user/raytracer/internal/scene"
	"github.com/user/raytracer/internal/snapshot"
	"github.com/user/raytracer/internal/ui"
)

type options struct {
	mode     string
	scene    string
	display  string
	width    int
	height   int
	tiles    int
	workers  int
	frames   int
	out      string
	seed     int64
	hud      bool
	orbit    bool
	interval int
}

func main() {
	log.Println("raytracer: starting main()")

	var o options
	flag.StringVar(&o.mode, "mode", "reference", "render mode: reference, fast or preview")
	flag.StringVar(&o.scene, "scene", scene.Default, "built-in scene: "+strings.Join(scene.Names(), ", "))
	flag.StringVar(&o.display, "display", "gl", "display backend: gl, fyne or headless")
	flag.IntVar(&o.width, "width", 0, "image width (0 = mode default)")
	flag.IntVar(&o.height, "height", 0, "image height (0 = mode default)")
	flag.IntVar(&o.tiles, "tiles", 0, "tiles per side (0 = mode default)")
	flag.IntVar(&o.workers, "workers", 0, "worker goroutines (0 = mode default, PATHTRACER_WORKERS overrides)")
	flag.IntVar(&o.frames, "frames", 0, "stop after N frames (0 = run until closed; headless defaults to 1)")
	flag.StringVar(&o.out, "out", "output.png", "output PNG file for headless render")
	flag.Int64Var(&o.seed, "seed", 13, "seed for generated scenes")
	flag.BoolVar(&o.hud, "hud", false, "draw throughput statistics onto the headless PNG")
	flag.BoolVar(&o.orbit, "orbit", false, "move the camera around the scene")
	flag.IntVar(&o.interval, "every", 0, "headless: also write the PNG every N frames")
	flag.Parse()

	log.Printf("flags: mode=%s scene=%s display=%s out=%s\n", o.mode, o.scene, o.display, o.out)

	if err := run(o); err != nil {
		log.Println("render error:", err)
		os.Exit(1)
	}
}

func run(o options) error {
	backend, err := engine.ParseBackend(o.display)
	if err != nil {
		return err
	}
	engine.SetBackend(backend)

	settings := engine.RenderSettingsForMode(o.mode)
	settings.ApplyEnv()
	if o.width > 0 {
		settings.Width = o.width
	}
	if o.height > 0 {
		settings.Height = o.height
	}
	if o.tiles > 0 {
		settings.Tiles = o.tiles
	}
	if o.workers > 0 {
		settings.Workers = o.workers
	}
	settings.MaxFrames = o.frames
	if backend == engine.BackendHeadless && settings.MaxFrames == 0 {
		settings.MaxFrames = 1
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	desc, err := scene.ByName(o.scene, o.seed)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	world, camCfg := engine.BuildScene(desc)
	camCfg.Orbit = o.orbit
	log.Printf("scene %q: %d objects, %d lights", desc.Name, len(world.Objects), len(world.Lights()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch engine.GetBackend() {
	case engine.BackendHeadless:
		err = runHeadless(ctx, world, settings, camCfg, o)
	case engine.BackendFyne:
		err = runFyne(ctx, world, settings, camCfg)
	default:
		err = runGL(ctx, world, settings, camCfg)
	}
	if errors.Is(err, context.Canceled) {
		log.Println("raytracer: interrupted")
		return nil
	}
	return err
}

func runGL(ctx context.Context, world *engine.Scene, settings engine.RenderSettings, camCfg engine.CameraConfig) error {
	win, err := gpu.Open("Ray Tracer", settings.Width, settings.Height)
	if err != nil {
		return fmt.Errorf("open window: %w", err)
	}
	defer win.Close()

	loop, err := engine.NewLoop(world, settings, camCfg, win, nil)
	if err != nil {
		return err
	}
	defer loop.Close()
	return loop.Run(ctx)
}

func runFyne(ctx context.Context, world *engine.Scene, settings engine.RenderSettings, camCfg engine.CameraConfig) error {
	viewer := ui.NewViewer("Ray Tracer", settings.Width, settings.Height)

	loop, err := engine.NewLoop(world, settings, camCfg, viewer, nil)
	if err != nil {
		return err
	}
	defer loop.Close()

	done := make(chan error, 1)
	viewer.Run(func() { done <- loop.Run(ctx) })
	return <-done
}

func runHeadless(ctx context.Context, world *engine.Scene, settings engine.RenderSettings, camCfg engine.CameraConfig, o options) error {
	w := snapshot.NewWriter(o.out)
	w.Every = o.interval

	loop, err := engine.NewLoop(world, settings, camCfg, w, nil)
	if err != nil {
		return err
	}
	defer loop.Close()
	if o.hud {
		w.Stats = loop.Stats()
	}

	runErr := loop.Run(ctx)
	if w.Presented() > 0 {
		if err := w.Flush(); err != nil {
			return fmt.Errorf("save png: %w", err)
		}
		log.Printf("raytracer: wrote %s after %d frames", o.out, w.Presented())
	}
	return runErr
}
