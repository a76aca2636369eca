package gallery

// MinAnchorOffset is the offset the viewport is pinned to when it reaches
// the top of the content.
const MinAnchorOffset float32 = 1

// Scroller is the scroll position the anchor adjusts.
type Scroller interface {
	ScrollOffset() float32
	SetScrollOffset(y float32)
}

// Positioner reports where a (bucket, item) position lands for a window.
type Positioner interface {
	PositionOf(w WindowState, bucket, item int) float32
}

// ScrollAnchor keeps the content under the viewport stationary while the
// window gains or loses leading content.
type ScrollAnchor struct {
	scroller Scroller
	measure  Positioner
}

// NewScrollAnchor creates an anchor over scroller.
func NewScrollAnchor(scroller Scroller, measure Positioner) *ScrollAnchor {
	return &ScrollAnchor{scroller: scroller, measure: measure}
}

// Pin moves an offset at or below zero to MinAnchorOffset. The scroller may
// clamp the offset back to zero when the content does not scroll.
// Returns true if the offset was moved off zero.
func (a *ScrollAnchor) Pin() bool {
	if a.scroller.ScrollOffset() > 0 {
		return false
	}
	a.scroller.SetScrollOffset(MinAnchorOffset)
	return a.scroller.ScrollOffset() > 0
}

// Adjust shifts the scroll offset by the extent of the leading content that
// changed between prev and next. The shift is measured at the later of the
// two window starts, which is present in both windows. Disjoint windows
// are not adjusted. Returns the applied shift.
func (a *ScrollAnchor) Adjust(prev, next WindowState) float32 {
	if prev.IsEmpty() || next.IsEmpty() {
		return 0
	}
	if next.StartBucket >= prev.EndBucket || prev.StartBucket >= next.EndBucket {
		return 0
	}
	if next.StartBucket == prev.StartBucket && next.StartItem == prev.StartItem {
		return 0
	}

	if next.startsBefore(prev) {
		a.Pin()
	}

	bucket, item := prev.StartBucket, prev.StartItem
	if prev.startsBefore(next) {
		bucket, item = next.StartBucket, next.StartItem
	}
	delta := a.measure.PositionOf(next, bucket, item) - a.measure.PositionOf(prev, bucket, item)
	if delta != 0 {
		a.scroller.SetScrollOffset(a.scroller.ScrollOffset() + delta)
	}
	return delta
}

// Reset places the offset at MinAnchorOffset, used after a jump replaces
// the window.
func (a *ScrollAnchor) Reset() {
	a.scroller.SetScrollOffset(MinAnchorOffset)
}
