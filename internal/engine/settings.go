package engine

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"
)

// ErrInvalidSettings is wrapped by RenderSettings.Validate.
var ErrInvalidSettings = errors.New("engine: invalid render settings")

// RenderSettings controls the frame loop.
type RenderSettings struct {
	Width       int
	Height      int
	Tiles       int           // the image is split into Tiles x Tiles jobs
	Workers     int           // worker goroutines, 0 = runtime.NumCPU()
	FrameBudget time.Duration // time spent submitting work before presenting
	ReportEvery int           // log throughput every N frames, 0 disables
	MaxFrames   int           // stop after N frames, 0 = until cancelled
}

// RenderSettingsForMode returns defaults for the named mode:
// "reference", "fast" or "preview". Unknown modes fall back to reference.
func RenderSettingsForMode(mode string) RenderSettings {
	switch mode {
	case "fast":
		return RenderSettings{
			Width:       1024,
			Height:      768,
			Tiles:       10,
			Workers:     runtime.NumCPU(),
			FrameBudget: time.Second / 60,
			ReportEvery: 15,
		}
	case "preview":
		return RenderSettings{
			Width:       320,
			Height:      240,
			Tiles:       4,
			Workers:     runtime.NumCPU(),
			FrameBudget: time.Second / 60,
			ReportEvery: 15,
		}
	default:
		return RenderSettings{
			Width:       1024,
			Height:      768,
			Tiles:       5,
			Workers:     2,
			FrameBudget: time.Second / 60,
			ReportEvery: 15,
		}
	}
}

// Validate checks that the settings describe a renderable frame.
func (s RenderSettings) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidSettings, s.Width, s.Height)
	case s.Tiles <= 0:
		return fmt.Errorf("%w: tiles %d", ErrInvalidSettings, s.Tiles)
	case s.Tiles > s.Width || s.Tiles > s.Height:
		return fmt.Errorf("%w: %d tiles per side exceed %dx%d image", ErrInvalidSettings, s.Tiles, s.Width, s.Height)
	case s.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidSettings, s.Workers)
	case s.FrameBudget < 0:
		return fmt.Errorf("%w: frame budget %s", ErrInvalidSettings, s.FrameBudget)
	}
	return nil
}

// ApplyEnv overrides the worker count from PATHTRACER_WORKERS (1..128).
func (s *RenderSettings) ApplyEnv() {
	if envWorkers := os.Getenv("PATHTRACER_WORKERS"); envWorkers != "" {
		if n, err := strconv.Atoi(envWorkers); err == nil && n > 0 && n <= 128 {
			s.Workers = n
		}
	}
}
