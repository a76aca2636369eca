package gallery

// ElementRef names an element whose screen geometry can be queried.
// Non-negative values are bucket indices.
type ElementRef int

// ViewportRef refers to the scroll viewport itself.
const ViewportRef ElementRef = -1

// Geometry reports screen-space bounding boxes. ok is false for elements
// that are not currently laid out.
type Geometry interface {
	BoundingBox(ref ElementRef) (r Rect, ok bool)
}

// NoBucket is reported when there is no visible bucket.
const NoBucket = -1

// VisibilityTracker derives the single "currently in view" bucket.
type VisibilityTracker struct {
	geom    Geometry
	visible int
}

// NewVisibilityTracker creates a tracker reporting NoBucket.
func NewVisibilityTracker(geom Geometry) *VisibilityTracker {
	return &VisibilityTracker{geom: geom, visible: NoBucket}
}

// Visible returns the current bucket, or NoBucket.
func (t *VisibilityTracker) Visible() int {
	return t.visible
}

// Update scans the materialized buckets of w in order and reports the
// first one starting at or below the viewport top, or straddling the
// viewport midpoint. With no match the previous value is kept.
func (t *VisibilityTracker) Update(w WindowState) int {
	if w.IsEmpty() {
		t.visible = NoBucket
		return t.visible
	}
	if t.geom == nil {
		return t.visible
	}
	vp, ok := t.geom.BoundingBox(ViewportRef)
	if !ok {
		return t.visible
	}
	mid := vp.MidY()
	for b := w.StartBucket; b < w.EndBucket; b++ {
		r, ok := t.geom.BoundingBox(ElementRef(b))
		if !ok {
			continue
		}
		if r.Top() >= vp.Top() || (r.Top() < mid && r.Bottom() > mid) {
			t.visible = b
			return t.visible
		}
	}
	return t.visible
}

// Clamp keeps the reported bucket inside w after a window change.
func (t *VisibilityTracker) Clamp(w WindowState) int {
	if w.IsEmpty() {
		t.visible = NoBucket
		return t.visible
	}
	t.visible = clampi(t.visible, w.StartBucket, w.EndBucket-1)
	return t.visible
}
