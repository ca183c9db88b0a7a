package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeDisplay struct {
	mu        sync.Mutex
	presents  int
	quitAfter int
	err       error
	last      []byte
}

func (d *fakeDisplay) Present(f *Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.presents++
	d.last = append(d.last[:0], f.Pix...)
	return nil
}

func (d *fakeDisplay) PollEvents() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.quitAfter > 0 && d.presents >= d.quitAfter
}

type captureLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *captureLogger) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *captureLogger) contains(s string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

func testSettings() RenderSettings {
	return RenderSettings{Width: 32, Height: 24, Tiles: 4, Workers: 3}
}

func testScene() *Scene {
	return NewScene(
		NewSphere(V(0, 0, -10), 2, Material{SurfaceColor: V(0.8, 0.2, 0.2)}),
		NewSphere(V(0, 20, -10), 1, Material{EmissionColor: V(1, 1, 1)}),
	)
}

func testCamera() CameraConfig {
	return CameraConfig{FOV: 70}
}

func TestLoopRunMaxFrames(t *testing.T) {
	d := &fakeDisplay{}
	settings := testSettings()
	settings.MaxFrames = 3

	l, err := NewLoop(testScene(), settings, testCamera(), d, discardLogger{})
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	defer l.Close()

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if d.presents != 3 {
		t.Errorf("presents = %d, want 3", d.presents)
	}
	if got, want := l.Stats().Rays(), int64(3*32*24); got != want {
		t.Errorf("rays = %d, want %d", got, want)
	}
	if got := l.Stats().Frames(); got != 3 {
		t.Errorf("frames = %d, want 3", got)
	}
}

func TestLoopRunCancelled(t *testing.T) {
	d := &fakeDisplay{}
	l, err := NewLoop(testScene(), testSettings(), testCamera(), d, discardLogger{})
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	defer l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
	if d.presents != 0 {
		t.Errorf("presented %d frames after cancel", d.presents)
	}
}

func TestLoopRunStopsWhenDisplayQuits(t *testing.T) {
	d := &fakeDisplay{quitAfter: 2}
	l, err := NewLoop(testScene(), testSettings(), testCamera(), d, discardLogger{})
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	defer l.Close()

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if d.presents != 2 {
		t.Errorf("presents = %d, want 2", d.presents)
	}
}

func TestLoopPresentError(t *testing.T) {
	errBroken := errors.New("broken display")
	d := &fakeDisplay{err: errBroken}
	l, err := NewLoop(testScene(), testSettings(), testCamera(), d, discardLogger{})
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	defer l.Close()

	if err := l.Run(context.Background()); !errors.Is(err, errBroken) {
		t.Errorf("Run = %v, want wrapped display error", err)
	}
}

func TestLoopSkipsBusyTiles(t *testing.T) {
	d := &fakeDisplay{}
	l, err := NewLoop(testScene(), testSettings(), testCamera(), d, discardLogger{})
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	defer l.Close()

	for i := range l.busy {
		l.busy[i].Store(true)
	}
	if _, err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := l.Stats().Rays(); got != 0 {
		t.Errorf("rays = %d, want 0 while every tile is busy", got)
	}
	if d.presents != 1 {
		t.Errorf("presents = %d, want 1", d.presents)
	}
}

func TestLoopBudgetKeepsSubmitting(t *testing.T) {
	settings := testSettings()
	settings.FrameBudget = 20 * time.Millisecond

	l, err := NewLoop(testScene(), settings, testCamera(), nil, discardLogger{})
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	defer l.Close()

	start := time.Now()
	if _, err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if elapsed := time.Since(start); elapsed < settings.FrameBudget {
		t.Errorf("Step returned after %s, before the %s budget", elapsed, settings.FrameBudget)
	}
	if got := l.Stats().Rays(); got < 32*24 {
		t.Errorf("rays = %d, want at least one full frame", got)
	}
	if got := l.pool.Pending(); got != 0 {
		t.Errorf("Pending after Step = %d", got)
	}
}

func TestLoopReportsThroughput(t *testing.T) {
	logger := &captureLogger{}
	settings := testSettings()
	settings.ReportEvery = 2
	settings.MaxFrames = 4

	l, err := NewLoop(testScene(), settings, testCamera(), nil, logger)
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	defer l.Close()

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{"engine: 32x24", "frame 2,", "frame 4,", "RPS"} {
		if !logger.contains(want) {
			t.Errorf("log has no line containing %q: %q", want, logger.lines)
		}
	}
	if logger.contains("frame 3,") {
		t.Error("frame 3 should not be reported")
	}
}

func TestNewLoopRejectsBadInput(t *testing.T) {
	bad := testSettings()
	bad.Tiles = 0
	if _, err := NewLoop(testScene(), bad, testCamera(), nil, discardLogger{}); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("NewLoop with zero tiles = %v", err)
	}
	if _, err := NewLoop(nil, testSettings(), testCamera(), nil, discardLogger{}); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("NewLoop with nil scene = %v", err)
	}
}

func TestRenderSilhouette(t *testing.T) {
	sc := NewScene(NewSphere(V(0, 0, -10), 2, Material{SurfaceColor: V(0.5, 0.5, 0.5), Reflection: 1}))
	settings := RenderSettings{Width: 64, Height: 48, Tiles: 5, Workers: 4}
	camCfg := CameraConfig{FOV: 70}

	f, err := Render(sc, settings, camCfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	cam := newCamera(camCfg, settings.Width, settings.Height)
	hits := 0
	for y := 0; y < settings.Height; y++ {
		for x := 0; x < settings.Width; x++ {
			i := f.PixOffset(x, y)
			r, g, b := f.Pix[i], f.Pix[i+1], f.Pix[i+2]

			ray := cam.getRay(x, y)
			if obj, _ := sc.nearest(ray.orig, ray.dir); obj != nil {
				hits++
				if r != g || g != b || r == 0 || r == 255 {
					t.Fatalf("hit pixel %d,%d = (%d,%d,%d), want mid gray", x, y, r, g, b)
				}
				continue
			}
			if r != 255 || g != 255 || b != 255 {
				t.Fatalf("miss pixel %d,%d = (%d,%d,%d), want background", x, y, r, g, b)
			}
		}
	}
	if hits == 0 {
		t.Fatal("sphere not visible")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	settings := RenderSettings{Width: 40, Height: 30, Tiles: 3, Workers: 4}
	a, err := Render(testScene(), settings, testCamera())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	settings.Workers = 1
	b, err := Render(testScene(), settings, testCamera())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(a.Pix) != string(b.Pix) {
		t.Error("frames differ between worker counts")
	}
}
