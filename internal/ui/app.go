package ui

import (
	"fmt"
	"image"
	"io"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/user/raytracer/internal/engine"
)

// logFilter drops harmless GLFW messages from the log.
type logFilter struct {
	original io.Writer
}

func (f *logFilter) Write(p []byte) (n int, err error) {
	// Invalid scancode warnings come from non-standard keys and are harmless.
	if strings.Contains(string(p), "Invalid scancode") {
		return len(p), nil
	}
	return f.original.Write(p)
}

// Viewer shows frames in a fyne window with FPS and status labels.
type Viewer struct {
	app      fyne.App
	win      fyne.Window
	raster   *canvas.Raster
	status   *widget.Label
	fpsLabel *widget.Label

	mu          sync.Mutex
	current     *image.RGBA // read by the fyne painter through raster
	lastPresent time.Time
	presented   int

	closed atomic.Bool
}

// NewViewer creates the application and window. It must be called from
// the main goroutine.
func NewViewer(title string, width, height int) *Viewer {
	return newViewer(app.New(), title, width, height)
}

func newViewer(a fyne.App, title string, width, height int) *Viewer {
	w := a.NewWindow(title)

	v := &Viewer{
		app:      a,
		win:      w,
		status:   widget.NewLabel("Idle"),
		fpsLabel: widget.NewLabel("FPS: -"),
		current:  image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	v.raster = canvas.NewRaster(func(int, int) image.Image { return v.latest() })
	v.raster.ScaleMode = canvas.ImageScalePixels
	v.raster.SetMinSize(fyne.NewSize(float32(width), float32(height)))

	w.SetContent(container.NewBorder(nil, container.NewHBox(v.status, v.fpsLabel), nil, nil, v.raster))
	w.SetOnClosed(func() { v.closed.Store(true) })
	w.Resize(fyne.NewSize(float32(width), float32(height)+40))
	return v
}

// Run shows the window and calls work on a new goroutine. The window
// closes when work returns. Run blocks until the application exits.
func (v *Viewer) Run(work func()) {
	originalLogWriter := log.Writer()
	log.SetOutput(&logFilter{original: originalLogWriter})
	defer log.SetOutput(originalLogWriter)

	go func() {
		work()
		if !v.closed.Load() {
			v.app.Quit()
		}
	}()
	v.win.ShowAndRun()
	v.closed.Store(true)
}

// Present copies the frame into a fresh image and swaps it in under the
// lock. The painter only sees complete images and never one that is
// still being written.
func (v *Viewer) Present(f *engine.Frame) error {
	if v.closed.Load() {
		return nil
	}
	rgba := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	f.CopyToRGBA(rgba)

	v.mu.Lock()
	v.current = rgba
	now := time.Now()
	elapsed := now.Sub(v.lastPresent).Seconds()
	v.lastPresent = now
	v.presented++
	n := v.presented
	v.mu.Unlock()

	v.raster.Refresh()
	v.status.SetText(fmt.Sprintf("Frame %d", n))
	if n > 1 && elapsed > 0 {
		v.fpsLabel.SetText(fmt.Sprintf("FPS: %.2f", 1.0/elapsed))
	}
	return nil
}

// latest returns the last presented frame. The painter calls it.
func (v *Viewer) latest() image.Image {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// PollEvents reports whether the window has been closed. fyne delivers
// input on its own goroutine, so there is nothing to drain here.
func (v *Viewer) PollEvents() bool {
	return v.closed.Load()
}
