package gallery

// Viewport holds the scroll state of the gallery's content area.
type Viewport struct {
	Rect          Rect    // Screen-space viewport
	ScrollY       float32 // Vertical scroll offset into the content
	ContentHeight float32 // Measured content height
	WheelStep     float32 // Pixels scrolled per wheel notch
}

// NewViewport creates a viewport at the top of empty content.
func NewViewport(rect Rect, wheelStep float32) *Viewport {
	if wheelStep <= 0 {
		wheelStep = 30
	}
	return &Viewport{Rect: rect, WheelStep: wheelStep}
}

// MaxScroll returns the largest valid scroll offset.
func (v *Viewport) MaxScroll() float32 {
	return maxf(0, v.ContentHeight-v.Rect.H)
}

// ScrollOffset returns the current scroll offset.
func (v *Viewport) ScrollOffset() float32 {
	return v.ScrollY
}

// SetScrollOffset moves the viewport, clamped to the content.
func (v *Viewport) SetScrollOffset(y float32) {
	v.ScrollY = clampf(y, 0, v.MaxScroll())
}

// SetContentHeight updates the measured content height. The offset is not
// clamped here so an anchor shift can follow with the new extent.
func (v *Viewport) SetContentHeight(h float32) {
	v.ContentHeight = h
}

// Sample returns the scroll geometry for window recomputation.
func (v *Viewport) Sample() ScrollSample {
	return ScrollSample{
		ScrollOffset:   v.ScrollY,
		ViewportExtent: v.Rect.H,
		ContentExtent:  v.ContentHeight,
	}
}

// HandleInput applies wheel and keyboard scrolling while
// the mouse is over the viewport. Returns true if the offset changed.
func (v *Viewport) HandleInput(input *InputState) bool {
	if input == nil || !v.Rect.Contains(Vec2{X: input.MouseX, Y: input.MouseY}) {
		return false
	}
	before := v.ScrollY

	if input.MouseWheelY != 0 {
		v.SetScrollOffset(v.ScrollY - input.MouseWheelY*v.WheelStep)
	}
	if input.KeyPressed(KeyDown) {
		v.SetScrollOffset(v.ScrollY + v.WheelStep)
	}
	if input.KeyPressed(KeyUp) {
		v.SetScrollOffset(v.ScrollY - v.WheelStep)
	}

	// Page up/down scrolls 80% of viewport
	page := v.Rect.H * 0.8
	if input.KeyPressed(KeyPageDown) {
		v.SetScrollOffset(v.ScrollY + page)
	}
	if input.KeyPressed(KeyPageUp) {
		v.SetScrollOffset(v.ScrollY - page)
	}
	if input.KeyPressed(KeyHome) {
		v.SetScrollOffset(0)
	}
	if input.KeyPressed(KeyEnd) {
		v.SetScrollOffset(v.MaxScroll())
	}
	return v.ScrollY != before
}

// ContentToScreen converts a content-space rectangle to screen space.
func (v *Viewport) ContentToScreen(r Rect) Rect {
	return r.Translate(v.Rect.X, v.Rect.Y-v.ScrollY)
}

// ScreenToContent converts a screen-space point to content space.
func (v *Viewport) ScreenToContent(p Vec2) Vec2 {
	return Vec2{X: p.X - v.Rect.X, Y: p.Y - v.Rect.Y + v.ScrollY}
}
