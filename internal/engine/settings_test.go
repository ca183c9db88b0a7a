package engine

import (
	"errors"
	"runtime"
	"testing"
	"time"
)

func TestRenderSettingsForMode(t *testing.T) {
	cases := []struct {
		mode                 string
		width, height, tiles int
		workers              int
	}{
		{"reference", 1024, 768, 5, 2},
		{"fast", 1024, 768, 10, runtime.NumCPU()},
		{"preview", 320, 240, 4, runtime.NumCPU()},
		{"bogus", 1024, 768, 5, 2},
	}
	for _, tc := range cases {
		s := RenderSettingsForMode(tc.mode)
		if s.Width != tc.width || s.Height != tc.height || s.Tiles != tc.tiles || s.Workers != tc.workers {
			t.Errorf("%s: got %+v", tc.mode, s)
		}
		if s.FrameBudget != time.Second/60 || s.ReportEvery != 15 {
			t.Errorf("%s: budget %s, report every %d", tc.mode, s.FrameBudget, s.ReportEvery)
		}
		if err := s.Validate(); err != nil {
			t.Errorf("%s: Validate: %v", tc.mode, err)
		}
	}
}

func TestRenderSettingsValidate(t *testing.T) {
	base := RenderSettingsForMode("preview")
	cases := []struct {
		name   string
		mutate func(*RenderSettings)
	}{
		{"zero width", func(s *RenderSettings) { s.Width = 0 }},
		{"negative height", func(s *RenderSettings) { s.Height = -1 }},
		{"zero tiles", func(s *RenderSettings) { s.Tiles = 0 }},
		{"more tiles than rows", func(s *RenderSettings) { s.Height = 3; s.Tiles = 4 }},
		{"negative workers", func(s *RenderSettings) { s.Workers = -2 }},
		{"negative budget", func(s *RenderSettings) { s.FrameBudget = -time.Millisecond }},
	}
	for _, tc := range cases {
		s := base
		tc.mutate(&s)
		err := s.Validate()
		if !errors.Is(err, ErrInvalidSettings) {
			t.Errorf("%s: Validate = %v, want ErrInvalidSettings", tc.name, err)
		}
	}
}

func TestRenderSettingsApplyEnv(t *testing.T) {
	cases := []struct {
		env  string
		want int
	}{
		{"", 2},
		{"8", 8},
		{"128", 128},
		{"0", 2},
		{"129", 2},
		{"many", 2},
	}
	for _, tc := range cases {
		t.Setenv("PATHTRACER_WORKERS", tc.env)
		s := RenderSettingsForMode("reference")
		s.ApplyEnv()
		if s.Workers != tc.want {
			t.Errorf("PATHTRACER_WORKERS=%q: Workers = %d, want %d", tc.env, s.Workers, tc.want)
		}
	}
}
