package gallery

import "testing"

func newTestLayout() *Layout {
	return NewLayout(threeBuckets(), WindowState{0, 20, 2, 10}, testLayoutConfig, 400)
}

func TestLayoutSections(t *testing.T) {
	l := newTestLayout()

	secs := l.Sections()
	if len(secs) != 2 {
		t.Fatalf("got %d sections, want 2", len(secs))
	}
	// 8 cells in 2 rows, then 10 cells in 3 rows.
	if secs[0].Rect.H != 220 || secs[1].Rect.Y != 220 || secs[1].Rect.H != 320 {
		t.Errorf("sections = %+v", secs)
	}
	if l.ContentExtent() != 540 {
		t.Errorf("ContentExtent() = %v, want 540", l.ContentExtent())
	}
	if _, ok := l.Section(2); ok {
		t.Error("Section(2) outside the window reported ok")
	}
}

func TestLayoutCellRect(t *testing.T) {
	l := newTestLayout()

	tests := []struct {
		bucket, item int
		want         Rect
	}{
		{0, 20, Rect{X: 0, Y: 20, W: 92.5, H: 90}},
		{0, 25, Rect{X: 102.5, Y: 120, W: 92.5, H: 90}},
		{1, 9, Rect{X: 102.5, Y: 440, W: 92.5, H: 90}},
	}
	for _, tt := range tests {
		got, ok := l.CellRect(tt.bucket, tt.item)
		if !ok || got != tt.want {
			t.Errorf("CellRect(%d, %d) = %+v, %v; want %+v", tt.bucket, tt.item, got, ok, tt.want)
		}
	}
	if _, ok := l.CellRect(0, 19); ok {
		t.Error("CellRect for an item before the window reported ok")
	}
	if _, ok := l.CellRect(1, 10); ok {
		t.Error("CellRect for an item after the window reported ok")
	}
}

func TestLayoutHitTest(t *testing.T) {
	l := newTestLayout()

	if b, i, ok := l.HitTest(Vec2{X: 110, Y: 130}); !ok || b != 0 || i != 25 {
		t.Errorf("HitTest(cell) = %d, %d, %v; want 0, 25, true", b, i, ok)
	}
	if _, _, ok := l.HitTest(Vec2{X: 10, Y: 5}); ok {
		t.Error("HitTest on a header reported a cell")
	}
	if _, _, ok := l.HitTest(Vec2{X: 95, Y: 130}); ok {
		t.Error("HitTest in the gap reported a cell")
	}
}

func TestLayoutVisibleCells(t *testing.T) {
	l := newTestLayout()

	type cell struct{ bucket, item int }
	var got []cell
	l.VisibleCells(200, 100, func(bucket, item int, r Rect) {
		got = append(got, cell{bucket, item})
	})

	// Second row of bucket 0 and the first two rows of bucket 1.
	if len(got) != 12 {
		t.Fatalf("got %d cells, want 12: %v", len(got), got)
	}
	if got[0] != (cell{0, 24}) || got[4] != (cell{1, 0}) || got[11] != (cell{1, 7}) {
		t.Errorf("cells = %v", got)
	}
}

func TestClipRows(t *testing.T) {
	tests := []struct {
		name               string
		total              int
		scrollY, visible   float32
		wantStart, wantEnd int
	}{
		{"top", 10, 0, 250, 0, 4},
		{"scrolled", 10, 350, 250, 3, 7},
		{"clamped", 10, 900, 250, 9, 10},
		{"below viewport", 10, -400, 250, 0, 0},
		{"empty", 0, 0, 250, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := clipRows(tt.total, 100, tt.visible, tt.scrollY)
			if r.start != tt.wantStart || r.end != tt.wantEnd {
				t.Errorf("clipRows = [%d, %d), want [%d, %d)", r.start, r.end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
