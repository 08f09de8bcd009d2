package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type WindowError struct {
	msg string
	err error
}

func (e *WindowError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *WindowError) Unwrap() error {
	return e.err
}

// Window is a GLFW window with a current OpenGL 4.1 core context. Create
// and use it from the main, OS-locked thread.
type Window struct {
	win *glfw.Window

	lastKey   glfw.Key
	lastState glfw.Action
	hasKey    bool
}

func NewWindow(title string, width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, &WindowError{msg: "failed to initialise GLFW", err: err}
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &WindowError{msg: "this system does not provide an OpenGL 4.1 context", err: err}
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	w := &Window{win: win}
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		w.lastKey = key
		w.lastState = action
		w.hasKey = true
	})
	return w, nil
}

// GetSize returns the framebuffer size in pixels, which is what the
// viewport and canvas uniforms need on high-DPI screens.
func (w *Window) GetSize() (int, int) {
	return w.win.GetFramebufferSize()
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *Window) SetShouldClose() {
	w.win.SetShouldClose(true)
}

func (w *Window) SwapBuffers() {
	w.win.SwapBuffers()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) GetLastKey() (glfw.Key, glfw.Action, bool) {
	return w.lastKey, w.lastState, w.hasKey
}

func (w *Window) ClearLastKey() {
	w.hasKey = false
}

// EscapePressed consumes the last key event and reports whether it was
// Escape going down.
func (w *Window) EscapePressed() bool {
	key, state, ok := w.GetLastKey()
	if !ok {
		return false
	}
	w.ClearLastKey()
	return key == glfw.KeyEscape && state == glfw.Press
}

func (w *Window) Destroy() {
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
	glfw.Terminate()
}
