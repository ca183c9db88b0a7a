// Package gpu presents frames in a GLFW window. The frame's RGB bytes are
// uploaded into a texture and blitted to the default framebuffer; no
// rendering happens on the GPU.
package gpu

import (
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/user/raytracer/internal/engine"
)

func init() {
	// GLFW and GL calls must stay on the main OS thread.
	runtime.LockOSThread()
}

// Window owns a GLFW window and the GL objects used to show a frame.
// All methods must be called from the main goroutine.
type Window struct {
	window  *glfw.Window
	texture uint32
	fbo     uint32
	width   int
	height  int
}

// Open creates a visible, fixed-size window of width x height pixels.
func Open(title string, width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(0)

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	w := &Window{window: win, width: width, height: height}
	win.SetKeyCallback(func(win *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			win.SetShouldClose(true)
		}
	})

	gl.GenTextures(1, &w.texture)
	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB8, int32(width), int32(height), 0, gl.RGB, gl.UNSIGNED_BYTE, nil)

	gl.GenFramebuffers(1, &w.fbo)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, w.fbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, w.texture, 0)
	if status := gl.CheckFramebufferStatus(gl.READ_FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		w.Close()
		return nil, fmt.Errorf("gl framebuffer incomplete: 0x%x", status)
	}

	log.Printf("gpu: window %dx%d, GL %s", width, height, gl.GoStr(gl.GetString(gl.VERSION)))
	return w, nil
}

// Present uploads the frame and shows it. The frame must match the window
// size; its Stride is honoured as the source pitch.
func (w *Window) Present(f *engine.Frame) error {
	if f.Width != w.width || f.Height != w.height {
		return fmt.Errorf("frame %dx%d does not match window %dx%d", f.Width, f.Height, w.width, w.height)
	}

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(f.Stride/engine.Channels))
	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(f.Width), int32(f.Height), gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(f.Pix))

	// Frame rows run top to bottom, GL rows bottom to top: flip on blit.
	fbw, fbh := w.window.GetFramebufferSize()
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, w.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, int32(f.Width), int32(f.Height), 0, int32(fbh), int32(fbw), 0, gl.COLOR_BUFFER_BIT, gl.NEAREST)

	w.window.SwapBuffers()
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", e)
	}
	return nil
}

// PollEvents processes pending window events without blocking and reports
// whether the window should close.
func (w *Window) PollEvents() bool {
	glfw.PollEvents()
	return w.window.ShouldClose()
}

// Close releases GL objects and the window.
func (w *Window) Close() {
	if w.fbo != 0 {
		gl.DeleteFramebuffers(1, &w.fbo)
	}
	if w.texture != 0 {
		gl.DeleteTextures(1, &w.texture)
	}
	w.window.Destroy()
	glfw.Terminate()
}
