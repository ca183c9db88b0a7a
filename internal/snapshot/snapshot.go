// Package snapshot is the headless display: frames are kept in memory and
// written to a PNG file, optionally with a statistics overlay.
package snapshot

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/fogleman/gg"

	"github.com/user/raytracer/internal/engine"
)

// Writer implements engine.Display without a window.
type Writer struct {
	Path  string
	Every int           // also write every N presented frames, 0 = only on Flush
	Stats *engine.Stats // when set, a HUD line is drawn onto the image

	img       *image.RGBA
	presented int
}

// NewWriter returns a Writer that saves to path.
func NewWriter(path string) *Writer {
	return &Writer{Path: path}
}

// Present copies the frame. It writes the file when Every divides the
// number of presented frames.
func (w *Writer) Present(f *engine.Frame) error {
	if w.img == nil || w.img.Bounds() != f.Bounds() {
		w.img = image.NewRGBA(f.Bounds())
	}
	f.CopyToRGBA(w.img)
	w.presented++

	if w.Every > 0 && w.presented%w.Every == 0 {
		return w.Flush()
	}
	return nil
}

// PollEvents never asks to quit.
func (w *Writer) PollEvents() bool { return false }

// Presented is the number of frames received so far.
func (w *Writer) Presented() int { return w.presented }

// Flush writes the last presented frame to Path.
func (w *Writer) Flush() error {
	if w.img == nil {
		return fmt.Errorf("snapshot: no frame presented")
	}
	out := w.img
	if w.Stats != nil {
		out = drawHUD(w.img, w.Stats.Snapshot())
	}
	return SavePNG(w.Path, out)
}

// drawHUD returns a copy of img with a one-line throughput banner.
func drawHUD(img *image.RGBA, r engine.Report) *image.RGBA {
	dst := image.NewRGBA(img.Bounds())
	copy(dst.Pix, img.Pix)

	dc := gg.NewContextForRGBA(dst)
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(0, 0, float64(dst.Bounds().Dx()), 20)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(HUDText(r), 6, 10, 0, 0.5)
	return dst
}

// HUDText formats the overlay line.
func HUDText(r engine.Report) string {
	return fmt.Sprintf("frames %d  rays %d  %.0f rays/s  %.1f fps", r.Frames, r.Rays, r.RPS, r.FPS)
}

// SavePNG writes an image to a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
