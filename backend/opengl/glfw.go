package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/gallery"
)

// GLFWInputAdapter collects GLFW window events into a gallery.InputState.
type GLFWInputAdapter struct {
	window *glfw.Window
	input  *gallery.InputState
}

// NewGLFWInputAdapter installs input callbacks on window.
func NewGLFWInputAdapter(window *glfw.Window) *GLFWInputAdapter {
	adapter := &GLFWInputAdapter{
		window: window,
		input:  gallery.NewInputState(),
	}

	window.SetKeyCallback(adapter.keyCallback)
	window.SetMouseButtonCallback(adapter.mouseButtonCallback)
	window.SetScrollCallback(adapter.scrollCallback)
	window.SetCursorPosCallback(adapter.cursorPosCallback)

	return adapter
}

// Update clears per-frame state and samples the cursor.
// Call this at the start of each frame, before glfw.PollEvents.
func (a *GLFWInputAdapter) Update() *gallery.InputState {
	a.input.Reset()
	x, y := a.window.GetCursorPos()
	a.input.SetMousePos(float32(x), float32(y))
	return a.input
}

// Input returns the current input state.
func (a *GLFWInputAdapter) Input() *gallery.InputState {
	return a.input
}

func (a *GLFWInputAdapter) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	k := glfwKeyToGalleryKey(key)
	if k == gallery.KeyNone {
		return
	}

	switch action {
	case glfw.Press:
		a.input.SetKey(k, true)
	case glfw.Repeat:
		// Re-press so held PageUp/PageDown keep scrolling.
		a.input.SetKey(k, false)
		a.input.SetKey(k, true)
	case glfw.Release:
		a.input.SetKey(k, false)
	}
}

func (a *GLFWInputAdapter) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b := glfwMouseButtonToGallery(button)
	if b < 0 {
		return
	}

	switch action {
	case glfw.Press:
		a.input.SetMouseButton(b, true)
	case glfw.Release:
		a.input.SetMouseButton(b, false)
	}
}

func (a *GLFWInputAdapter) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	a.input.SetMouseWheel(a.input.MouseWheelX+float32(xoff), a.input.MouseWheelY+float32(yoff))
}

func (a *GLFWInputAdapter) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	a.input.SetMousePos(float32(xpos), float32(ypos))
}

// glfwKeyToGalleryKey maps GLFW keys to gallery keys.
func glfwKeyToGalleryKey(key glfw.Key) gallery.Key {
	switch key {
	case glfw.KeyUp:
		return gallery.KeyUp
	case glfw.KeyDown:
		return gallery.KeyDown
	case glfw.KeyPageUp:
		return gallery.KeyPageUp
	case glfw.KeyPageDown:
		return gallery.KeyPageDown
	case glfw.KeyHome:
		return gallery.KeyHome
	case glfw.KeyEnd:
		return gallery.KeyEnd
	case glfw.KeyEscape:
		return gallery.KeyEscape
	default:
		return gallery.KeyNone
	}
}

// glfwMouseButtonToGallery maps GLFW mouse buttons to gallery buttons.
func glfwMouseButtonToGallery(button glfw.MouseButton) gallery.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return gallery.MouseButtonLeft
	case glfw.MouseButtonRight:
		return gallery.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return gallery.MouseButtonMiddle
	default:
		return -1
	}
}
