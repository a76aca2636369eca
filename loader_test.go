package gallery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeFetcher serves synthetic items and fails for labels in fail.
type fakeFetcher struct {
	mu    sync.Mutex
	calls int
	fail  map[string]bool
}

func (f *fakeFetcher) Fetch(ctx context.Context, b BucketRef, from, to int) ([]Item, error) {
	f.mu.Lock()
	f.calls++
	fail := f.fail[b.Label]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fail {
		return nil, errors.New("backend unavailable")
	}
	items := make([]Item, 0, to-from)
	for i := from; i < to; i++ {
		kind := KindPhoto
		if i%7 == 0 {
			kind = KindVideo
		}
		items = append(items, Item{ID: fmt.Sprintf("%s/%d", b.Label, i), Kind: kind})
	}
	return items, nil
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// queue collects posted callbacks for the test goroutine.
type queue struct {
	mu  sync.Mutex
	fns []func()
}

func (q *queue) post(fn func()) {
	q.mu.Lock()
	q.fns = append(q.fns, fn)
	q.mu.Unlock()
}

func (q *queue) drain() int {
	q.mu.Lock()
	fns := q.fns
	q.fns = nil
	q.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

func TestLoaderStoresFetchedPages(t *testing.T) {
	index := threeBuckets()
	store := NewContentStore(60)
	fetcher := &fakeFetcher{}
	q := &queue{}
	l := NewLoader(fetcher, index, store, q.post, 0, nil)
	defer l.Close()

	w := WindowState{0, 0, 2, 60}
	if n := l.Load(w); n != 2 {
		t.Fatalf("Load started %d fetches, want 2", n)
	}
	l.Wait()
	if n := q.drain(); n != 2 {
		t.Fatalf("posted %d results, want 2", n)
	}

	if it, ok := store.Item(1, 7); !ok || it.ID != "2024-02/7" || it.Kind != KindVideo {
		t.Errorf("Item(1, 7) = %+v, %v", it, ok)
	}
	if n := l.Load(w); n != 0 {
		t.Errorf("reloading a loaded window started %d fetches", n)
	}
}

func TestLoaderFailureKeepsPlaceholders(t *testing.T) {
	index := threeBuckets()
	store := NewContentStore(60)
	fetcher := &fakeFetcher{fail: map[string]bool{"2024-02": true}}
	q := &queue{}
	l := NewLoader(fetcher, index, store, q.post, 0, nil)
	defer l.Close()

	w := WindowState{0, 0, 2, 60}
	l.Load(w)
	l.Wait()
	q.drain()

	if store.Status(PageKey{1, 0}) != PageFailed {
		t.Errorf("status = %v, want failed", store.Status(PageKey{1, 0}))
	}
	if store.Status(PageKey{0, 0}) != PageLoaded {
		t.Errorf("healthy page status = %v, want loaded", store.Status(PageKey{0, 0}))
	}

	calls := fetcher.Calls()
	l.Load(w)
	l.Wait()
	if fetcher.Calls() != calls {
		t.Error("failed page was fetched again")
	}
}

func TestLoaderDropsEvictedResults(t *testing.T) {
	index := threeBuckets()
	store := NewContentStore(60)
	q := &queue{}
	l := NewLoader(&fakeFetcher{}, index, store, q.post, 0, nil)
	defer l.Close()

	l.Load(WindowState{0, 0, 1, 28})
	l.Wait()
	store.Cleanup(index, WindowState{2, 0, 3, 100})
	q.drain()

	if store.Status(PageKey{0, 0}) != PageMissing {
		t.Errorf("evicted page status = %v, want missing", store.Status(PageKey{0, 0}))
	}
}

func TestLoaderClosedPostsNothing(t *testing.T) {
	q := &queue{}
	l := NewLoader(&fakeFetcher{}, threeBuckets(), NewContentStore(60), q.post, 0, nil)
	l.Close()

	if n := l.Load(WindowState{0, 0, 1, 28}); n != 0 {
		t.Errorf("Load after Close started %d fetches", n)
	}
	if n := q.drain(); n != 0 {
		t.Errorf("posted %d results after Close", n)
	}
}

func TestLoaderNilFetcher(t *testing.T) {
	l := NewLoader(nil, threeBuckets(), NewContentStore(60), func(func()) {}, 0, nil)
	defer l.Close()
	if n := l.Load(WindowState{0, 0, 1, 28}); n != 0 {
		t.Errorf("nil fetcher started %d fetches", n)
	}
}

// gatedFetcher holds every fetch until want requests are in flight, or
// until a second has passed.
type gatedFetcher struct {
	mu      sync.Mutex
	want    int
	arrived int
	all     chan struct{}
}

func (f *gatedFetcher) Fetch(ctx context.Context, b BucketRef, from, to int) ([]Item, error) {
	f.mu.Lock()
	f.arrived++
	if f.arrived == f.want {
		close(f.all)
	}
	f.mu.Unlock()

	select {
	case <-f.all:
	case <-time.After(time.Second):
	}
	items := make([]Item, 0, to-from)
	for i := from; i < to; i++ {
		items = append(items, Item{ID: fmt.Sprintf("bucket%d/%d", b.Index, i), Kind: KindPhoto})
	}
	return items, nil
}

func TestLoaderUnlabeledBucketsFetchSeparately(t *testing.T) {
	index := NewBucketIndex([]BucketSpec{{Count: 10}, {Count: 10}})
	store := NewContentStore(60)
	fetcher := &gatedFetcher{want: 2, all: make(chan struct{})}
	q := &queue{}
	l := NewLoader(fetcher, index, store, q.post, 0, nil)
	defer l.Close()

	if n := l.Load(WindowState{0, 0, 2, 10}); n != 2 {
		t.Fatalf("Load started %d fetches, want 2", n)
	}
	l.Wait()
	q.drain()

	for b := 0; b < 2; b++ {
		want := fmt.Sprintf("bucket%d/0", b)
		if it, ok := store.Item(b, 0); !ok || it.ID != want {
			t.Errorf("Item(%d, 0) = %+v, %v; want %s", b, it, ok, want)
		}
	}
}
