package engine

// Render draws a single frame of sc and returns it. Every tile is traced
// exactly once; no display is involved.
func Render(sc *Scene, settings RenderSettings, camCfg CameraConfig) (*Frame, error) {
	settings.FrameBudget = 0
	settings.ReportEvery = 0
	settings.MaxFrames = 1

	l, err := NewLoop(sc, settings, camCfg, nil, discardLogger{})
	if err != nil {
		return nil, err
	}
	defer l.Close()

	if _, err := l.Step(); err != nil {
		return nil, err
	}
	return l.Frame(), nil
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...any) {}
