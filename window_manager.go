package gallery

import (
	"log/slog"
	"sync"
)

// ScrollSample is the scroll geometry read at each scroll tick.
type ScrollSample struct {
	ScrollOffset   float32
	ViewportExtent float32
	ContentExtent  float32
}

// DistanceFromTop returns how far the viewport top is from the content top.
func (s ScrollSample) DistanceFromTop() float32 {
	return s.ScrollOffset
}

// DistanceFromBottom returns how far the viewport bottom is from the content
// bottom. Negative when the content is shorter than the viewport.
func (s ScrollSample) DistanceFromBottom() float32 {
	return s.ContentExtent - (s.ScrollOffset + s.ViewportExtent)
}

// malformed reports geometry that must not drive a recomputation, such as
// the zero-sized viewport seen transiently during layout.
func (s ScrollSample) malformed() bool {
	return s.ViewportExtent <= 0 || s.ContentExtent < 0
}

// WindowConfig holds the growth/shrink parameters of the window.
type WindowConfig struct {
	StepSize        int     `yaml:"step_size"`        // Items added/removed per step
	GrowThreshold   float32 `yaml:"grow_threshold"`   // Distance from an edge that triggers growth
	ShrinkThreshold float32 `yaml:"shrink_threshold"` // Distance from an edge beyond which content is evicted
}

// WindowListener is notified after every window transition. jumped is
// true when the transition replaced the window instead of extending it.
type WindowListener func(prev, next WindowState, jumped bool)

// WindowManager is the sole writer of the gallery's WindowState.
// It grows the window near an edge that is close to exhaustion and
// shrinks the opposite edge once it is far enough to evict safely.
type WindowManager struct {
	index  *BucketIndex
	cfg    WindowConfig
	state  WindowState
	logger *slog.Logger

	last    ScrollSample
	hasLast bool

	mu        sync.Mutex // Guards listeners only
	listeners map[int]WindowListener
	nextID    int
}

// NewWindowManager creates a manager holding the default one-bucket window.
// A non-positive step size is treated as 1.
func NewWindowManager(index *BucketIndex, cfg WindowConfig, logger *slog.Logger) *WindowManager {
	if cfg.StepSize <= 0 {
		cfg.StepSize = 1
	}
	if logger == nil {
		logger = galleryLogger
	}
	return &WindowManager{
		index:     index,
		cfg:       cfg,
		state:     DefaultWindow(index),
		logger:    logger,
		listeners: make(map[int]WindowListener),
	}
}

// State returns the current window.
func (m *WindowManager) State() WindowState {
	return m.state
}

// Config returns the effective configuration.
func (m *WindowManager) Config() WindowConfig {
	return m.cfg
}

// Subscribe registers fn for window transitions and returns a cancel func.
func (m *WindowManager) Subscribe(fn WindowListener) (cancel func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// Recompute evaluates one scroll sample and returns the resulting window and
// whether it changed. Recomputing the sample that was processed last is a
// no-op unless the window changed since.
func (m *WindowManager) Recompute(s ScrollSample) (WindowState, bool) {
	if m.hasLast && s == m.last {
		return m.state, false
	}
	m.last, m.hasLast = s, true

	next := NextWindow(m.index, m.cfg, m.state, s)
	if next == m.state {
		return m.state, false
	}
	recordRecompute()
	m.apply(next, "recompute", false)
	return next, true
}

// Jump replaces the window with exactly bucket target, discarding the
// previous window.
func (m *WindowManager) Jump(target int) (WindowState, bool) {
	m.hasLast = false
	next := JumpWindow(m.index, target)
	if next == m.state {
		return m.state, false
	}
	recordJump()
	m.apply(next, "jump", true)
	return next, true
}

func (m *WindowManager) apply(next WindowState, reason string, jumped bool) {
	prev := m.state
	m.state = next
	// A grow step that only partly fills a grid row leaves the extent
	// unchanged; the next sample then equals the last one.
	m.hasLast = false
	setMaterializedItems(next.ItemCount(m.index))
	m.logger.Debug("window changed", "reason", reason, "from", prev.String(), "to", next.String())

	m.mu.Lock()
	listeners := make([]WindowListener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(prev, next, jumped)
	}
}

// NextWindow computes the window that follows w for scroll sample s.
// Bottom growth is evaluated first and top growth only when the bottom did
// not grow. Shrinking an edge is skipped when that edge grew in the same
// evaluation, and always sees the grown state.
func NextWindow(index *BucketIndex, cfg WindowConfig, w WindowState, s ScrollSample) WindowState {
	if index.Len() == 0 || w.IsEmpty() || s.malformed() {
		return w
	}
	step := cfg.StepSize
	if step <= 0 {
		step = 1
	}

	grewBottom, grewTop := false, false
	if s.DistanceFromBottom() < cfg.GrowThreshold {
		w, grewBottom = growBottom(index, step, w)
	} else if s.DistanceFromTop() < cfg.GrowThreshold {
		w, grewTop = growTop(index, step, w)
	}

	if !grewTop && s.DistanceFromTop() > cfg.ShrinkThreshold {
		w, _ = shrinkTop(index, step, w)
	}
	if !grewBottom && s.DistanceFromBottom() > cfg.ShrinkThreshold {
		w, _ = shrinkBottom(index, step, w)
	}
	return w
}

func growBottom(index *BucketIndex, step int, w WindowState) (WindowState, bool) {
	orig := w
	last := w.EndBucket - 1
	if w.EndItem >= index.Count(last) {
		if w.EndBucket >= index.Len() {
			return w, false
		}
		w.EndBucket++
		w.EndItem = 0
		last++
	}
	w.EndItem = min(nextMultiple(w.EndItem, step), index.Count(last))
	return w, w != orig
}

func growTop(index *BucketIndex, step int, w WindowState) (WindowState, bool) {
	orig := w
	if w.StartItem <= 0 {
		if w.StartBucket <= 0 {
			return w, false
		}
		w.StartBucket--
		w.StartItem = index.Count(w.StartBucket)
	}
	w.StartItem = prevMultiple(w.StartItem, step)
	return w, w != orig
}

func shrinkTop(index *BucketIndex, step int, w WindowState) (WindowState, bool) {
	count := index.Count(w.StartBucket)
	bucket, item := w.StartBucket, min(nextMultiple(w.StartItem, step), count)
	if item >= count {
		bucket, item = bucket+1, 0
	}

	// Never evict the last materialized content.
	if bucket >= w.EndBucket {
		return w, false
	}
	if bucket == w.EndBucket-1 && item >= w.EndItem {
		return w, false
	}

	w.StartBucket, w.StartItem = bucket, item
	return w, true
}

func shrinkBottom(index *BucketIndex, step int, w WindowState) (WindowState, bool) {
	bucket, item := w.EndBucket, prevMultiple(w.EndItem, step)
	if item <= 0 {
		bucket--
		item = index.Count(bucket - 1)
	}

	if bucket <= w.StartBucket {
		return w, false
	}
	if bucket-1 == w.StartBucket && item <= w.StartItem {
		return w, false
	}

	w.EndBucket, w.EndItem = bucket, item
	return w, true
}
