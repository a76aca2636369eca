package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Loader requests the item pages of the window from a Fetcher.
// Results are handed to post, which must run them on the UI goroutine.
type Loader struct {
	fetcher Fetcher
	index   *BucketIndex
	store   *ContentStore
	post    func(func())
	logger  *slog.Logger
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	group  singleflight.Group
	wg     sync.WaitGroup
}

// NewLoader creates a loader. A nil fetcher disables loading.
func NewLoader(fetcher Fetcher, index *BucketIndex, store *ContentStore, post func(func()), timeout time.Duration, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = galleryLogger
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		fetcher: fetcher,
		index:   index,
		store:   store,
		post:    post,
		logger:  logger,
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Load starts fetches for every page of w not yet requested.
// Returns the number of fetches started.
func (l *Loader) Load(w WindowState) int {
	if l.fetcher == nil || l.ctx.Err() != nil {
		return 0
	}
	missing := l.store.Missing(l.index, w)
	for _, key := range missing {
		l.store.MarkPending(key)
		l.wg.Add(1)
		go l.fetch(key)
	}
	return len(missing)
}

func (l *Loader) fetch(key PageKey) {
	defer l.wg.Done()

	ref := l.index.Ref(key.Bucket)
	from, to := l.store.PageRange(l.index, key)
	// Labels are optional and may repeat, so fetches are merged by position.
	sfKey := fmt.Sprintf("%d#%d", key.Bucket, key.Page)

	v, err, _ := l.group.Do(sfKey, func() (any, error) {
		ctx := l.ctx
		if l.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, l.timeout)
			defer cancel()
		}
		return l.fetcher.Fetch(ctx, ref, from, to)
	})
	recordFetch(err)

	if l.ctx.Err() != nil {
		return
	}
	if err != nil {
		l.logger.Warn("fetch failed", "bucket", key.Bucket, "label", ref.Label, "page", key.Page, "error", err)
		l.post(func() { l.store.Fail(key) })
		return
	}
	items, _ := v.([]Item)
	l.post(func() {
		if !l.store.Store(key, items) {
			l.logger.Debug("dropped evicted page", "bucket", key.Bucket, "page", key.Page)
		}
	})
}

// Wait blocks until every started fetch has posted its result.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Close cancels in-flight fetches and waits for their goroutines.
func (l *Loader) Close() {
	l.cancel()
	l.wg.Wait()
}
