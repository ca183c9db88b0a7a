package engine

import "fmt"

// Backend selects where finished frames are presented.
type Backend int

const (
	BackendGL Backend = iota
	BackendFyne
	BackendHeadless
)

var currentBackend = BackendGL

func (b Backend) String() string {
	switch b {
	case BackendGL:
		return "gl"
	case BackendFyne:
		return "fyne"
	case BackendHeadless:
		return "headless"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// ParseBackend maps a flag value to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "gl", "glfw":
		return BackendGL, nil
	case "fyne", "ui":
		return BackendFyne, nil
	case "headless", "png":
		return BackendHeadless, nil
	}
	return BackendGL, fmt.Errorf("unknown display backend %q", s)
}

// SetBackend selects the active display backend.
// If an unknown value is passed, the GL backend will be used.
func SetBackend(b Backend) {
	switch b {
	case BackendGL, BackendFyne, BackendHeadless:
		currentBackend = b
	default:
		currentBackend = BackendGL
	}
}

// GetBackend returns the currently selected display backend.
func GetBackend() Backend {
	return currentBackend
}
