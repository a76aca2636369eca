package gallery

import (
	"context"
	"errors"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

type fakeSupplier struct {
	session Session
	err     error
}

func (s fakeSupplier) Session(ctx context.Context) (Session, error) {
	return s.session, s.err
}

type recordingNavigator struct {
	items []string
	jumps []int
}

func (n *recordingNavigator) CurrentItemChanged(id string) { n.items = append(n.items, id) }
func (n *recordingNavigator) JumpToBucket(index int)       { n.jumps = append(n.jumps, index) }

type countingRenderer struct {
	frames   int
	vertices int
	err      error
}

func (r *countingRenderer) Render(dl *DrawList) error {
	r.frames++
	r.vertices = len(dl.VtxBuffer)
	return r.err
}

func (r *countingRenderer) Resize(width, height int) {}

func gaugeValue(t *testing.T) float64 {
	t.Helper()
	var m dto.Metric
	if err := metricScrubberVisible.Write(&m); err != nil {
		t.Fatalf("reading gauge: %v", err)
	}
	return m.GetGauge().GetValue()
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Window.StepSize = 30
	cfg.Layout = testLayoutConfig
	cfg.ScrubberWidth = 20
	return cfg
}

type testGallery struct {
	*Gallery
	clock *fakeClock
	nav   *recordingNavigator
}

func newTestGallery(t *testing.T, fetcher Fetcher) *testGallery {
	t.Helper()
	clock := newFakeClock()
	nav := &recordingNavigator{}
	supplier := fakeSupplier{session: Session{
		Buckets: []BucketSpec{
			{Label: "2024-03", Count: 28},
			{Label: "2024-02", Count: 100},
			{Label: "2024-01", Count: 100},
		},
		StepSize: 60,
	}}
	g, err := New(context.Background(), supplier, fetcher, Rect{W: 420, H: 600},
		WithConfig(testConfig()),
		WithClock(clock),
		WithNavigator(nav),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(g.Close)
	return &testGallery{Gallery: g, clock: clock, nav: nav}
}

// settle runs timers, fetches and queued callbacks until the window is
// expected to be stable.
func (tg *testGallery) settle() {
	for i := 0; i < 6; i++ {
		tg.clock.Advance(100 * time.Millisecond)
		tg.loader.Wait()
		tg.Pump()
	}
}

func (tg *testGallery) frame(x, y float32, down bool) {
	in := NewInputState()
	in.SetMousePos(x, y)
	if down {
		in.SetMouseButton(MouseButtonLeft, true)
	}
	tg.HandleInput(in)
}

func TestGalleryGrowsToFillViewport(t *testing.T) {
	tg := newTestGallery(t, &fakeFetcher{})
	tg.settle()

	if got := tg.Window(); got != (WindowState{0, 0, 2, 60}) {
		t.Fatalf("window = %v, want [0:0, 2:60)", got)
	}
	if tg.Viewport().ScrollOffset() != MinAnchorOffset {
		t.Errorf("offset = %v, want %v", tg.Viewport().ScrollOffset(), MinAnchorOffset)
	}
	if tg.VisibleBucket() != 0 {
		t.Errorf("visible bucket = %d, want 0", tg.VisibleBucket())
	}
	if tg.Content().Status(PageKey{1, 0}) != PageLoaded {
		t.Error("page of the grown bucket was not loaded")
	}
	if tg.Label() != "2024-03 · 28 items" {
		t.Errorf("Label() = %q", tg.Label())
	}
}

func TestGalleryGrowsWithStepBelowColumns(t *testing.T) {
	clock := newFakeClock()
	cfg := testConfig()
	cfg.Window.StepSize = 1
	supplier := fakeSupplier{session: Session{
		Buckets: []BucketSpec{{Label: "2024-03", Count: 500}},
	}}
	g, err := New(context.Background(), supplier, nil, Rect{W: 420, H: 600},
		WithConfig(cfg),
		WithClock(clock),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer g.Close()

	// Most single-item steps leave the row count, and so the sample, as is.
	for i := 0; i < 80; i++ {
		clock.Advance(100 * time.Millisecond)
		g.Pump()
	}

	// 37 items take 10 rows of 100 plus a 20px header.
	if got := g.Window(); got != (WindowState{0, 0, 1, 37}) {
		t.Fatalf("window = %v, want [0:0, 1:37)", got)
	}
	if d := g.Viewport().Sample().DistanceFromBottom(); d < cfg.Window.GrowThreshold {
		t.Errorf("distance from bottom = %v, below grow threshold %v", d, cfg.Window.GrowThreshold)
	}
}

func TestGalleryScrubberJump(t *testing.T) {
	tg := newTestGallery(t, &fakeFetcher{})
	tg.settle()

	// Press at the bottom of the track and hold.
	tg.frame(410, 590, true)
	if !tg.Scrubber().Dragging() {
		t.Fatal("press on the track did not start a drag")
	}
	if got := tg.Window(); got != (WindowState{2, 0, 3, 100}) {
		t.Fatalf("window after jump = %v, want [2:0, 3:100)", got)
	}
	if len(tg.nav.jumps) != 1 || tg.nav.jumps[0] != 2 {
		t.Errorf("jumps = %v, want [2]", tg.nav.jumps)
	}
	if tg.Viewport().ScrollOffset() != MinAnchorOffset {
		t.Errorf("offset after jump = %v, want %v", tg.Viewport().ScrollOffset(), MinAnchorOffset)
	}

	// The window holds still while the drag continues.
	tg.settle()
	if got := tg.Window(); got != (WindowState{2, 0, 3, 100}) {
		t.Errorf("window changed during drag: %v", got)
	}
	if tg.Fade().State() != FadeVisible {
		t.Error("scrubber hidden during drag")
	}
	if v := gaugeValue(t); v != 1 {
		t.Errorf("scrubber_visible = %v during drag, want 1", v)
	}

	// Release: growth resumes and the anchor keeps bucket 2 in place.
	tg.frame(410, 590, false)
	tg.settle()
	if got := tg.Window(); got != (WindowState{1, 60, 3, 100}) {
		t.Fatalf("window after release = %v, want [1:60, 3:100)", got)
	}
	if tg.Viewport().ScrollOffset() != 1021 {
		t.Errorf("offset after release = %v, want 1021", tg.Viewport().ScrollOffset())
	}
	if tg.VisibleBucket() != 2 {
		t.Errorf("visible bucket = %d, want 2", tg.VisibleBucket())
	}
	if len(tg.nav.jumps) != 1 {
		t.Errorf("jumps = %v, want exactly one", tg.nav.jumps)
	}

	tg.clock.Advance(2 * time.Second)
	tg.Pump()
	if tg.Fade().State() != FadeHidden {
		t.Error("scrubber still visible after the hide timeout")
	}
	if v := gaugeValue(t); v != 0 {
		t.Errorf("scrubber_visible = %v after hiding, want 0", v)
	}
}

func TestGallerySelectItem(t *testing.T) {
	tg := newTestGallery(t, &fakeFetcher{})
	tg.settle()

	tg.frame(10, 30, true)
	if tg.Selected() != "2024-03/0" {
		t.Errorf("Selected() = %q, want 2024-03/0", tg.Selected())
	}
	if len(tg.nav.items) != 1 || tg.nav.items[0] != "2024-03/0" {
		t.Errorf("items = %v", tg.nav.items)
	}
	if tg.SelectItem(2, 0) {
		t.Error("selected an item outside the window")
	}
}

func TestGalleryFetchFailureKeepsSlots(t *testing.T) {
	tg := newTestGallery(t, &fakeFetcher{fail: map[string]bool{"2024-03": true}})
	tg.settle()

	if got := tg.Window(); got != (WindowState{0, 0, 2, 60}) {
		t.Fatalf("window = %v, want [0:0, 2:60)", got)
	}
	if tg.Content().Status(PageKey{0, 0}) != PageFailed {
		t.Errorf("status = %v, want failed", tg.Content().Status(PageKey{0, 0}))
	}
	s, ok := tg.Layout().Section(0)
	if !ok || s.Cells() != 28 {
		t.Errorf("section 0 = %+v, %v; want 28 reserved cells", s, ok)
	}
	if tg.SelectItem(0, 3) {
		t.Error("selected a placeholder")
	}
}

func TestGalleryNilFetcher(t *testing.T) {
	tg := newTestGallery(t, nil)
	tg.settle()

	if got := tg.Window(); got != (WindowState{0, 0, 2, 60}) {
		t.Errorf("window = %v, want [0:0, 2:60)", got)
	}
	if tg.Content().Len() != 0 {
		t.Errorf("store holds %d pages without a fetcher", tg.Content().Len())
	}
}

func TestGalleryNewErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(context.Background(), fakeSupplier{err: boom}, nil, Rect{W: 400, H: 600})
	if !errors.Is(err, boom) {
		t.Errorf("New() = %v, want wrapped supplier error", err)
	}

	cfg := DefaultConfig()
	cfg.Window.ShrinkThreshold = cfg.Window.GrowThreshold
	_, err = New(context.Background(), fakeSupplier{}, nil, Rect{W: 400, H: 600}, WithConfig(cfg))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New() = %v, want ErrInvalidConfig", err)
	}
}

func TestGalleryEmptySession(t *testing.T) {
	clock := newFakeClock()
	g, err := New(context.Background(), fakeSupplier{}, nil, Rect{W: 400, H: 600}, WithClock(clock))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer g.Close()

	clock.Advance(time.Second)
	g.Pump()
	if !g.Window().IsEmpty() {
		t.Errorf("window = %v, want empty", g.Window())
	}
	if g.VisibleBucket() != NoBucket {
		t.Errorf("visible bucket = %d, want NoBucket", g.VisibleBucket())
	}
}

func TestGalleryCloseDiscardsQueue(t *testing.T) {
	tg := newTestGallery(t, &fakeFetcher{})
	tg.clock.Advance(100 * time.Millisecond)
	tg.Close()

	if n := tg.Pump(); n != 0 {
		t.Errorf("Pump ran %d callbacks after Close", n)
	}
	tg.clock.Advance(time.Second)
	if n := tg.Pump(); n != 0 {
		t.Errorf("Pump ran %d callbacks after Close", n)
	}
	if tg.clock.Pending() != 0 {
		t.Errorf("%d timers still armed after Close", tg.clock.Pending())
	}
}

func TestGalleryRender(t *testing.T) {
	tg := newTestGallery(t, &fakeFetcher{})
	tg.settle()

	r := &countingRenderer{}
	if err := tg.Render(r, DefaultTheme(), 1.0/60); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if r.frames != 1 || r.vertices == 0 {
		t.Errorf("frames = %d, vertices = %d", r.frames, r.vertices)
	}

	r.err = errors.New("lost context")
	if err := tg.Render(r, DefaultTheme(), 1.0/60); !errors.Is(err, r.err) {
		t.Errorf("Render() = %v, want renderer error", err)
	}
}
