package gallery

import "sync"

// PageStatus is the load state of one page of items.
type PageStatus int

const (
	PageMissing PageStatus = iota
	PagePending
	PageLoaded
	PageFailed
)

// PageKey identifies page Page of bucket Bucket. A page holds the items
// [Page*step, (Page+1)*step) of its bucket.
type PageKey struct {
	Bucket int
	Page   int
}

type pageEntry struct {
	status PageStatus
	items  []Item
}

// ContentStore caches fetched item pages for the materialized window.
// Pages that leave the window are evicted on Cleanup; failed pages are
// kept so they are not fetched again.
type ContentStore struct {
	mu    sync.RWMutex
	step  int
	pages map[PageKey]*pageEntry
}

// NewContentStore creates an empty store with pages of step items.
func NewContentStore(step int) *ContentStore {
	if step <= 0 {
		step = 1
	}
	return &ContentStore{step: step, pages: make(map[PageKey]*pageEntry)}
}

// PageSize returns the number of items per page.
func (s *ContentStore) PageSize() int { return s.step }

// PageRange returns the item range covered by key.
func (s *ContentStore) PageRange(index *BucketIndex, key PageKey) (from, to int) {
	from = key.Page * s.step
	to = min(from+s.step, index.Count(key.Bucket))
	return from, to
}

// Pages returns the keys of every page intersecting window w.
func (s *ContentStore) Pages(index *BucketIndex, w WindowState) []PageKey {
	var keys []PageKey
	for b := w.StartBucket; b < w.EndBucket; b++ {
		from, to := w.ItemRange(index, b)
		if to <= from {
			continue
		}
		for p := from / s.step; p <= (to-1)/s.step; p++ {
			keys = append(keys, PageKey{Bucket: b, Page: p})
		}
	}
	return keys
}

// Missing returns the pages of w that have never been requested.
func (s *ContentStore) Missing(index *BucketIndex, w WindowState) []PageKey {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var missing []PageKey
	for _, key := range s.Pages(index, w) {
		if _, ok := s.pages[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// MarkPending records that key is being fetched.
func (s *ContentStore) MarkPending(key PageKey) {
	s.mu.Lock()
	s.pages[key] = &pageEntry{status: PagePending}
	s.mu.Unlock()
}

// Store saves fetched items for a pending page. Results for pages evicted
// while in flight are dropped and Store returns false.
func (s *ContentStore) Store(key PageKey, items []Item) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.pages[key]
	if !ok || entry.status != PagePending {
		return false
	}
	entry.status = PageLoaded
	entry.items = items
	return true
}

// Fail marks a pending page as failed. Its slots stay as placeholders.
func (s *ContentStore) Fail(key PageKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.pages[key]
	if !ok || entry.status != PagePending {
		return false
	}
	entry.status = PageFailed
	return true
}

// Status returns the load state of key.
func (s *ContentStore) Status(key PageKey) PageStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if entry, ok := s.pages[key]; ok {
		return entry.status
	}
	return PageMissing
}

// Item returns the loaded item at (bucket, item).
func (s *ContentStore) Item(bucket, item int) (Item, bool) {
	key := PageKey{Bucket: bucket, Page: item / s.step}
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.pages[key]
	if !ok || entry.status != PageLoaded {
		return Item{}, false
	}
	i := item - key.Page*s.step
	if i < 0 || i >= len(entry.items) {
		return Item{}, false
	}
	return entry.items[i], true
}

// Cleanup evicts loaded and pending pages that no longer intersect w.
// Returns the number of evicted pages.
func (s *ContentStore) Cleanup(index *BucketIndex, w WindowState) int {
	keep := make(map[PageKey]bool)
	for _, key := range s.Pages(index, w) {
		keep[key] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, entry := range s.pages {
		if keep[key] || entry.status == PageFailed {
			continue
		}
		delete(s.pages, key)
		evicted++
	}
	return evicted
}

// Len returns the number of tracked pages.
func (s *ContentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

// Clear removes all pages.
func (s *ContentStore) Clear() {
	s.mu.Lock()
	s.pages = make(map[PageKey]*pageEntry)
	s.mu.Unlock()
}
