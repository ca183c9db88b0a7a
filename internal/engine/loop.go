package engine

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"
)

// pollInterval is how long the loop sleeps when the pool is saturated.
const pollInterval = 500 * time.Microsecond

// Logger is the subset of *log.Logger the loop needs.
type Logger interface {
	Printf(format string, args ...any)
}

type stdLogger struct{}

func (stdLogger) Printf(format string, args ...any) { log.Printf(format, args...) }

// Display presents finished frames. Present receives exclusive access to
// the frame until it returns.
type Display interface {
	Present(f *Frame) error
	// PollEvents drains pending input without blocking and reports
	// whether the user asked to quit.
	PollEvents() bool
}

// Loop renders frames into a shared buffer using a worker pool.
type Loop struct {
	settings RenderSettings
	scene    *Scene
	camCfg   CameraConfig
	cam      camera
	grid     TileGrid
	order    []Tile
	busy     []atomic.Bool // per tile, set while a job for it is queued or running

	pool    *WorkerPool
	frame   *Frame
	stats   *Stats
	display Display
	logger  Logger

	frameNo uint64
}

// NewLoop validates settings and starts the worker pool.
// A nil display skips presentation; a nil logger logs through the log package.
func NewLoop(sc *Scene, settings RenderSettings, camCfg CameraConfig, display Display, logger Logger) (*Loop, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, fmt.Errorf("%w: nil scene", ErrInvalidSettings)
	}
	if logger == nil {
		logger = stdLogger{}
	}

	grid := NewTileGrid(settings.Width, settings.Height, settings.Tiles)
	l := &Loop{
		settings: settings,
		scene:    sc,
		camCfg:   camCfg,
		cam:      newCamera(camCfg, settings.Width, settings.Height),
		grid:     grid,
		order:    grid.SpiralOrder(),
		busy:     make([]atomic.Bool, grid.Count()),
		pool:     NewWorkerPool(settings.Workers),
		frame:    NewFrame(settings.Width, settings.Height),
		stats:    NewStats(),
		display:  display,
		logger:   logger,
	}
	logger.Printf("engine: %dx%d, %dx%d tiles, %d workers, budget %s",
		settings.Width, settings.Height, settings.Tiles, settings.Tiles, l.pool.Size(), settings.FrameBudget)
	return l, nil
}

// Frame returns the shared pixel buffer. It is only safe to read between
// calls to Step.
func (l *Loop) Frame() *Frame { return l.frame }

// Stats returns the cumulative counters.
func (l *Loop) Stats() *Stats { return l.stats }

// Close stops the worker pool after in-flight jobs finish.
func (l *Loop) Close() { l.pool.Close() }

// Run renders frames until ctx is cancelled, the display asks to quit, or
// MaxFrames frames have been presented. Cancellation returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		quit, err := l.Step()
		if err != nil {
			return err
		}
		if quit {
			l.logger.Printf("engine: display closed after %d frames", l.stats.Frames())
			return nil
		}
		if l.settings.MaxFrames > 0 && l.stats.Frames() >= int64(l.settings.MaxFrames) {
			return nil
		}
	}
}

// Step renders one frame: it keeps the pool fed with tile jobs for the
// frame budget, waits for the jobs to finish, reports throughput and hands
// the buffer to the display.
func (l *Loop) Step() (bool, error) {
	cam := l.cam
	if l.camCfg.Orbit {
		cam = cam.withOrigin(OrbitOrigin(l.frameNo))
	}

	start := time.Now()
	for {
		if l.pool.Pending() <= l.grid.Count() {
			if err := l.submitTiles(cam); err != nil {
				return false, err
			}
		}
		remaining := l.settings.FrameBudget - time.Since(start)
		if remaining <= 0 {
			break
		}
		time.Sleep(min(pollInterval, remaining))
	}

	l.pool.Wait()
	l.frameNo++
	n := l.stats.AddFrame()
	if l.settings.ReportEvery > 0 && n%int64(l.settings.ReportEvery) == 0 {
		r := l.stats.Snapshot()
		l.logger.Printf("engine: frame %d, total rays %d, RPS %.0f, FPS %.1f, time %.1fs, waiting jobs %d",
			r.Frames, r.Rays, r.RPS, r.FPS, r.Elapsed.Seconds(), l.pool.Pending())
	}

	if l.display == nil {
		return false, nil
	}
	if err := l.display.Present(l.frame); err != nil {
		return false, fmt.Errorf("present frame: %w", err)
	}
	return l.display.PollEvents(), nil
}

// submitTiles queues one job per tile in spiral order. A tile whose
// previous job has not finished is skipped, so no two jobs ever write the
// same pixels at once.
func (l *Loop) submitTiles(cam camera) error {
	for i := range l.order {
		if !l.busy[i].CompareAndSwap(false, true) {
			continue
		}
		tile := l.order[i]
		flag := &l.busy[i]
		err := l.pool.Submit(func(int) {
			defer flag.Store(false)
			l.renderTile(cam, tile)
		})
		if err != nil {
			flag.Store(false)
			return fmt.Errorf("submit tile %d,%d: %w", tile.Col, tile.Row, err)
		}
	}
	return nil
}

// renderTile traces every pixel of one tile into the shared frame.
func (l *Loop) renderTile(cam camera, tile Tile) {
	b := tile.Bounds
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r := cam.getRay(x, y)
			l.frame.SetColor(x, y, Trace(r.orig, r.dir, l.scene, 0))
		}
	}
	l.stats.AddRays(b.Dx() * b.Dy())
}
