package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Renderer draws a finished draw list.
type Renderer interface {
	Render(dl *DrawList) error
	Resize(width, height int)
}

// Gallery is a windowed, scrubbable view over a bucketed media collection.
// Its methods must be called on the UI goroutine. Timer and fetch
// callbacks are queued and run by Pump.
type Gallery struct {
	cfg    Config
	clock  Clock
	logger *slog.Logger
	nav    Navigator
	geom   Geometry

	index    *BucketIndex
	windows  *WindowManager
	viewport *Viewport
	layout   *Layout
	anchor   *ScrollAnchor
	tracker  *VisibilityTracker
	scrubber *Scrubber
	fade     *FadeController
	store    *ContentStore
	loader   *Loader

	recompute *Throttle[ScrollSample]
	activity  *Throttle[float32]
	poller    *Poller

	mu     sync.Mutex
	queue  []func()
	closed bool

	selected string
}

// Option configures a Gallery.
type Option func(*Gallery)

// WithConfig sets the configuration.
func WithConfig(cfg Config) Option {
	return func(g *Gallery) { g.cfg = cfg }
}

// WithClock sets the clock driving throttles and the fade poller.
func WithClock(c Clock) Option {
	return func(g *Gallery) { g.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gallery) { g.logger = l }
}

// WithNavigator sets the receiver of selection and jump events.
func WithNavigator(n Navigator) Option {
	return func(g *Gallery) { g.nav = n }
}

// WithGeometry replaces the built-in geometry used for visibility tracking.
func WithGeometry(geom Geometry) Option {
	return func(g *Gallery) { g.geom = geom }
}

// New fetches the session from supplier and mounts the gallery in rect.
// fetcher may be nil, in which case every slot stays a placeholder.
func New(ctx context.Context, supplier Supplier, fetcher Fetcher, rect Rect, opts ...Option) (*Gallery, error) {
	g := &Gallery{
		cfg:    DefaultConfig(),
		clock:  SystemClock,
		logger: galleryLogger,
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}

	session, err := supplier.Session(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if session.StepSize > 0 {
		g.cfg.Window.StepSize = session.StepSize
	}

	g.index = NewBucketIndex(session.Buckets)
	g.windows = NewWindowManager(g.index, g.cfg.Window, g.logger)
	g.store = NewContentStore(g.cfg.Window.StepSize)
	g.loader = NewLoader(fetcher, g.index, g.store, g.post, g.cfg.Fetch.Timeout, g.logger)

	g.viewport = NewViewport(Rect{}, g.cfg.Scroll.WheelStep)
	g.layout = NewLayout(g.index, g.windows.State(), g.cfg.Layout, 0)
	g.anchor = NewScrollAnchor(g.viewport, g.layout)
	if g.geom == nil {
		g.geom = galleryGeometry{g}
	}
	g.tracker = NewVisibilityTracker(g.geom)
	g.scrubber = NewScrubber(g.index, Rect{}, g.cfg.ScrubberHandle, g.jump)
	g.fade = NewFadeController(g.cfg.Fade, g.clock, g.scrubber.Drag(), g.logger)

	g.recompute = NewThrottle(g.clock, g.cfg.Scroll.Throttle, func(s ScrollSample) {
		g.post(func() { g.recomputeWindow(s) })
	})
	g.activity = NewThrottle(g.clock, g.cfg.Fade.ScrollThrottle, func(offset float32) {
		g.post(func() { g.fade.NoteScroll(offset) })
	})
	g.poller = NewPoller(g.clock, g.cfg.Fade.PollInterval, func() {
		g.post(func() { g.fade.Tick() })
	})

	g.fade.OnChange(setScrubberVisible)
	g.windows.Subscribe(g.windowChanged)

	g.Resize(rect)
	g.windowChanged(WindowState{}, g.windows.State(), false)
	g.poller.Start()

	g.logger.Debug("gallery mounted",
		"buckets", g.index.Len(),
		"items", g.index.Total(),
		"step", g.cfg.Window.StepSize)
	return g, nil
}

// post queues fn for the UI goroutine. Posts after Close are dropped.
func (g *Gallery) post(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.queue = append(g.queue, fn)
}

// Pump runs queued callbacks and returns how many ran.
// Call it once per frame from the UI goroutine.
func (g *Gallery) Pump() int {
	n := 0
	for {
		g.mu.Lock()
		if g.closed || len(g.queue) == 0 {
			g.mu.Unlock()
			return n
		}
		fn := g.queue[0]
		g.queue = g.queue[1:]
		g.mu.Unlock()

		fn()
		n++
	}
}

// Close stops every timer, cancels in-flight fetches and discards queued
// callbacks. The gallery must not be used afterwards.
func (g *Gallery) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	g.queue = nil
	g.mu.Unlock()

	g.recompute.Cancel()
	g.activity.Cancel()
	g.poller.Stop()
	g.loader.Close()
}

// Resize places the gallery in rect: the viewport on the left and the
// scrubber track along the right edge.
func (g *Gallery) Resize(rect Rect) {
	sw := minf(g.cfg.ScrubberWidth, rect.W)
	g.viewport.Rect = Rect{X: rect.X, Y: rect.Y, W: rect.W - sw, H: rect.H}
	g.scrubber = g.rebuildScrubber(Rect{X: rect.X + rect.W - sw, Y: rect.Y, W: sw, H: rect.H})
	g.relayout()
	g.sampleScroll(false)
}

func (g *Gallery) rebuildScrubber(rect Rect) *Scrubber {
	s := NewScrubber(g.index, rect, g.cfg.ScrubberHandle, g.jump)
	if g.scrubber != nil {
		*s.Drag() = *g.scrubber.Drag()
		s.lastSent = g.scrubber.lastSent
	}
	if g.fade != nil {
		g.fade.drag = s.Drag()
	}
	s.Sync(g.tracker.Visible())
	return s
}

func (g *Gallery) relayout() {
	g.layout = NewLayout(g.index, g.windows.State(), g.cfg.Layout, g.viewport.Rect.W)
	g.anchor = NewScrollAnchor(g.viewport, g.layout)
	g.viewport.SetContentHeight(g.layout.ContentExtent())
}

// OnScroll is called after the viewport offset changed.
func (g *Gallery) OnScroll() {
	g.sampleScroll(true)
}

// sampleScroll handles one scroll sample. user marks samples caused by
// user input, which count as scrubber activity.
func (g *Gallery) sampleScroll(user bool) {
	g.anchor.Pin()
	g.scrubber.Sync(g.tracker.Update(g.windows.State()))
	if user {
		g.activity.Push(g.viewport.ScrollOffset())
	}
	if !g.scrubber.Dragging() {
		g.recompute.Push(g.viewport.Sample())
	}
}

func (g *Gallery) recomputeWindow(s ScrollSample) {
	if g.scrubber.Dragging() {
		return
	}
	if _, changed := g.windows.Recompute(s); changed {
		// Keep growing until the edges settle.
		g.sampleScroll(false)
	}
}

// jump is invoked by the scrubber with a newly resolved bucket.
func (g *Gallery) jump(bucket int) {
	g.windows.Jump(bucket)
	if g.nav != nil {
		g.nav.JumpToBucket(bucket)
	}
}

// windowChanged follows a window transition with the layout, scroll
// position and loaded pages.
func (g *Gallery) windowChanged(prev, next WindowState, jumped bool) {
	g.relayout()
	if jumped {
		g.anchor.Reset()
	} else {
		g.anchor.Adjust(prev, next)
	}
	g.tracker.Clamp(next)
	g.scrubber.Sync(g.tracker.Visible())

	if n := g.store.Cleanup(g.index, next); n > 0 {
		g.logger.Debug("evicted pages", "count", n)
	}
	g.loader.Load(next)
}

// HandleInput processes one frame of input.
func (g *Gallery) HandleInput(input *InputState) {
	if input == nil {
		return
	}
	now := g.clock.Now()
	wasDragging := g.scrubber.Dragging()
	if g.scrubber.HandleInput(input, now, g.tracker.Visible()) {
		return
	}
	if wasDragging {
		// Drag released: resume scroll-driven windowing from here.
		g.sampleScroll(true)
		return
	}

	if g.viewport.HandleInput(input) {
		g.OnScroll()
	}

	if input.MouseClicked(MouseButtonLeft) {
		mouse := Vec2{X: input.MouseX, Y: input.MouseY}
		if g.viewport.Rect.Contains(mouse) {
			if b, i, ok := g.layout.HitTest(g.viewport.ScreenToContent(mouse)); ok {
				g.SelectItem(b, i)
			}
		}
	}
}

// SelectItem makes (bucket, item) the current item if it is loaded.
// Returns false for placeholders.
func (g *Gallery) SelectItem(bucket, item int) bool {
	it, ok := g.store.Item(bucket, item)
	if !ok {
		return false
	}
	if it.ID != g.selected {
		g.selected = it.ID
		if g.nav != nil {
			g.nav.CurrentItemChanged(it.ID)
		}
	}
	return true
}

// Selected returns the ID of the current item.
func (g *Gallery) Selected() string { return g.selected }

// Index returns the session's bucket index.
func (g *Gallery) Index() *BucketIndex { return g.index }

// Window returns the current window.
func (g *Gallery) Window() WindowState { return g.windows.State() }

// Windows returns the window manager.
func (g *Gallery) Windows() *WindowManager { return g.windows }

// Viewport returns the scroll viewport.
func (g *Gallery) Viewport() *Viewport { return g.viewport }

// Layout returns the current layout.
func (g *Gallery) Layout() *Layout { return g.layout }

// Scrubber returns the scrubber.
func (g *Gallery) Scrubber() *Scrubber { return g.scrubber }

// Fade returns the fade controller.
func (g *Gallery) Fade() *FadeController { return g.fade }

// Content returns the item page store.
func (g *Gallery) Content() *ContentStore { return g.store }

// VisibleBucket returns the bucket currently in view, or NoBucket.
func (g *Gallery) VisibleBucket() int { return g.tracker.Visible() }

// Label returns the scrubber caption for the visible bucket.
func (g *Gallery) Label() string {
	return g.scrubber.Mapper().Label(g.tracker.Visible())
}

// galleryGeometry reports the built-in layout in screen space.
type galleryGeometry struct {
	g *Gallery
}

func (gg galleryGeometry) BoundingBox(ref ElementRef) (Rect, bool) {
	if ref == ViewportRef {
		return gg.g.viewport.Rect, true
	}
	s, ok := gg.g.layout.Section(int(ref))
	if !ok {
		return Rect{}, false
	}
	return gg.g.viewport.ContentToScreen(s.Rect), true
}
