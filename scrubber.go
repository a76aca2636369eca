package gallery

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Tick is a scrubber marker for one bucket.
type Tick struct {
	Bucket int
	Label  string
	Offset float32
}

// ScrubberMapper converts between bucket indices and positions along the
// scrubber track. Offsets are proportional to the items preceding a bucket.
type ScrubberMapper struct {
	index   *BucketIndex
	track   float32
	offsets []float32
}

// NewScrubberMapper precomputes the offset of every bucket on a track of
// the given length.
func NewScrubberMapper(index *BucketIndex, trackLength float32) *ScrubberMapper {
	m := &ScrubberMapper{index: index, track: maxf(0, trackLength)}
	n := index.Len()
	m.offsets = make([]float32, n)
	if n < 2 {
		return m
	}
	denom := index.Cumulative(n - 2)
	if denom == 0 {
		return m
	}
	for i := 1; i < n; i++ {
		m.offsets[i] = float32(index.Cumulative(i-1)) / float32(denom) * m.track
	}
	return m
}

// TrackLength returns the track length the mapper was built for.
func (m *ScrubberMapper) TrackLength() float32 {
	return m.track
}

// Offset returns the track offset of bucket i. Indices are clamped.
func (m *ScrubberMapper) Offset(i int) float32 {
	if len(m.offsets) == 0 {
		return 0
	}
	return m.offsets[clampi(i, 0, len(m.offsets)-1)]
}

// Resolve returns the bucket nearest to track position y, or NoBucket when
// there are no buckets. The walk stops at the first bucket whose distance
// is strictly greater than its predecessor's.
func (m *ScrubberMapper) Resolve(y float32) int {
	n := len(m.offsets)
	if n == 0 {
		return NoBucket
	}
	y = clampf(y, 0, m.track)
	prev := absf(m.offsets[0] - y)
	for i := 1; i < n; i++ {
		d := absf(m.offsets[i] - y)
		if d > prev {
			return i - 1
		}
		prev = d
	}
	return n - 1
}

// Ticks returns one tick per bucket.
func (m *ScrubberMapper) Ticks() []Tick {
	ticks := make([]Tick, len(m.offsets))
	for i, off := range m.offsets {
		ticks[i] = Tick{Bucket: i, Label: m.index.Bucket(i).Label, Offset: off}
	}
	return ticks
}

// Label formats the scrubber caption for bucket i.
func (m *ScrubberMapper) Label(i int) string {
	if i < 0 || i >= m.index.Len() {
		return ""
	}
	b := m.index.Bucket(i)
	return fmt.Sprintf("%s · %s items", b.Label, humanize.Comma(int64(b.Count)))
}

// DragState tracks scrubber interaction. LastActivity is shared with the
// fade controller as the most recent user activity.
type DragState struct {
	Dragging     bool
	LastActivity time.Time
	GrabOffset   float32 // Handle offset from the pointer when the drag started
}

// Scrubber is the draggable handle over a ScrubberMapper's track.
// Jumps are reported only when the resolved bucket changes.
type Scrubber struct {
	Rect         Rect    // Screen-space track
	HandleHeight float32 // Height of the draggable handle

	mapper   *ScrubberMapper
	handleY  float32 // Handle offset along the track
	drag     DragState
	lastSent int
	onJump   func(bucket int)
}

// NewScrubber creates a scrubber drawing its track in rect.
func NewScrubber(index *BucketIndex, rect Rect, handleHeight float32, onJump func(int)) *Scrubber {
	return &Scrubber{
		Rect:         rect,
		HandleHeight: handleHeight,
		mapper:       NewScrubberMapper(index, rect.H-handleHeight),
		lastSent:     NoBucket,
		onJump:       onJump,
	}
}

// Mapper returns the offset mapper.
func (s *Scrubber) Mapper() *ScrubberMapper { return s.mapper }

// Drag returns the drag state.
func (s *Scrubber) Drag() *DragState { return &s.drag }

// Dragging reports whether a drag is in progress.
func (s *Scrubber) Dragging() bool { return s.drag.Dragging }

// HandleOffset returns the handle's position along the track.
func (s *Scrubber) HandleOffset() float32 { return s.handleY }

// HandleRect returns the handle's screen-space rectangle.
func (s *Scrubber) HandleRect() Rect {
	return Rect{X: s.Rect.X, Y: s.Rect.Y + s.handleY, W: s.Rect.W, H: s.HandleHeight}
}

// Sync moves the handle to bucket when no drag is in progress.
func (s *Scrubber) Sync(bucket int) {
	if s.drag.Dragging || bucket == NoBucket {
		return
	}
	s.handleY = s.mapper.Offset(bucket)
}

// BeginDrag starts a drag at screen y. current is the bucket the view is
// showing, used to suppress a jump to where the user already is.
func (s *Scrubber) BeginDrag(y float32, now time.Time, current int) {
	s.drag.Dragging = true
	s.drag.LastActivity = now
	s.lastSent = current

	handle := s.HandleRect()
	if y >= handle.Top() && y < handle.Bottom() {
		s.drag.GrabOffset = y - handle.Top()
	} else {
		s.drag.GrabOffset = s.HandleHeight / 2
	}
	s.DragTo(y, now)
}

// DragTo repositions the handle under the pointer and reports a jump when
// the resolved bucket differs from the last one sent.
func (s *Scrubber) DragTo(y float32, now time.Time) {
	if !s.drag.Dragging {
		return
	}
	s.drag.LastActivity = now
	s.handleY = clampf(y-s.Rect.Y-s.drag.GrabOffset, 0, s.mapper.TrackLength())

	idx := s.mapper.Resolve(s.handleY)
	if idx == NoBucket || idx == s.lastSent {
		return
	}
	s.lastSent = idx
	if s.onJump != nil {
		s.onJump(idx)
	}
}

// EndDrag finishes the drag.
func (s *Scrubber) EndDrag(now time.Time) {
	if !s.drag.Dragging {
		return
	}
	s.drag.Dragging = false
	s.drag.LastActivity = now
	s.drag.GrabOffset = 0
}

// HandleInput processes pointer input over the track.
// Returns true while a drag is in progress.
func (s *Scrubber) HandleInput(input *InputState, now time.Time, current int) bool {
	if input == nil {
		return s.drag.Dragging
	}
	mouse := Vec2{X: input.MouseX, Y: input.MouseY}

	if input.MouseClicked(MouseButtonLeft) && s.Rect.Contains(mouse) {
		s.BeginDrag(mouse.Y, now, current)
		return true
	}

	if s.drag.Dragging {
		if input.MouseDown(MouseButtonLeft) {
			s.DragTo(mouse.Y, now)
		} else {
			s.EndDrag(now)
		}
	}
	return s.drag.Dragging
}
