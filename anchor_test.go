package gallery

import "testing"

type fakeScroller struct {
	offset float32
}

func (s *fakeScroller) ScrollOffset() float32     { return s.offset }
func (s *fakeScroller) SetScrollOffset(y float32) { s.offset = y }

var testLayoutConfig = LayoutConfig{Columns: 4, CellSize: 90, Gap: 10, HeaderHeight: 20}

func newTestAnchor(offset float32) (*ScrollAnchor, *fakeScroller) {
	s := &fakeScroller{offset: offset}
	l := NewLayout(threeBuckets(), WindowState{}, testLayoutConfig, 400)
	return NewScrollAnchor(s, l), s
}

func TestAnchorPin(t *testing.T) {
	tests := []struct {
		offset float32
		want   float32
		pinned bool
	}{
		{0, MinAnchorOffset, true},
		{-5, MinAnchorOffset, true},
		{3, 3, false},
	}
	for _, tt := range tests {
		a, s := newTestAnchor(tt.offset)
		if pinned := a.Pin(); pinned != tt.pinned {
			t.Errorf("Pin() at %v = %v, want %v", tt.offset, pinned, tt.pinned)
		}
		if s.offset != tt.want {
			t.Errorf("offset after Pin() at %v = %v, want %v", tt.offset, s.offset, tt.want)
		}
	}
}

func TestAnchorPinShortContent(t *testing.T) {
	vp := NewViewport(Rect{W: 400, H: 600}, 30)
	vp.SetContentHeight(300)
	a := NewScrollAnchor(vp, NewLayout(threeBuckets(), WindowState{}, testLayoutConfig, 400))

	if a.Pin() {
		t.Error("Pin() = true for content shorter than the viewport")
	}
	if vp.ScrollOffset() != 0 {
		t.Errorf("offset = %v, want 0", vp.ScrollOffset())
	}

	vp.SetContentHeight(900)
	if !a.Pin() || vp.ScrollOffset() != MinAnchorOffset {
		t.Errorf("Pin() on scrollable content left offset %v", vp.ScrollOffset())
	}
}

func TestAnchorPrependPinsThenShifts(t *testing.T) {
	a, s := newTestAnchor(0)

	// Bucket 0 has 28 items: 7 rows of 100 plus a 20px header.
	delta := a.Adjust(WindowState{1, 0, 3, 100}, WindowState{0, 0, 3, 100})
	if delta != 720 {
		t.Errorf("delta = %v, want 720", delta)
	}
	if s.offset != MinAnchorOffset+720 {
		t.Errorf("offset = %v, want %v", s.offset, MinAnchorOffset+720)
	}
}

func TestAnchorPrependWithinBucket(t *testing.T) {
	a, s := newTestAnchor(250)

	delta := a.Adjust(WindowState{1, 60, 3, 100}, WindowState{1, 0, 3, 100})
	if delta != 1500 {
		t.Errorf("delta = %v, want 1500", delta)
	}
	if s.offset != 1750 {
		t.Errorf("offset = %v, want 1750", s.offset)
	}
}

func TestAnchorTopShrinkShiftsUp(t *testing.T) {
	a, s := newTestAnchor(3000)

	delta := a.Adjust(WindowState{0, 0, 3, 100}, WindowState{1, 0, 3, 100})
	if delta != -720 {
		t.Errorf("delta = %v, want -720", delta)
	}
	if s.offset != 2280 {
		t.Errorf("offset = %v, want 2280", s.offset)
	}
}

func TestAnchorIgnoresBottomChangesAndDisjointWindows(t *testing.T) {
	a, s := newTestAnchor(500)

	if d := a.Adjust(WindowState{0, 0, 2, 60}, WindowState{0, 0, 3, 100}); d != 0 {
		t.Errorf("bottom growth shifted by %v", d)
	}
	if d := a.Adjust(WindowState{0, 0, 1, 28}, WindowState{2, 0, 3, 100}); d != 0 {
		t.Errorf("disjoint windows shifted by %v", d)
	}
	if s.offset != 500 {
		t.Errorf("offset = %v, want 500", s.offset)
	}
}

func TestAnchorReset(t *testing.T) {
	a, s := newTestAnchor(4000)
	a.Reset()
	if s.offset != MinAnchorOffset {
		t.Errorf("offset = %v, want %v", s.offset, MinAnchorOffset)
	}
}
