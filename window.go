package gallery

import "fmt"

// WindowState is the currently materialized range of the gallery.
// EndBucket is exclusive; EndItem is the exclusive item offset within
// bucket EndBucket-1. Values are replaced wholesale, never mutated.
type WindowState struct {
	StartBucket int
	StartItem   int
	EndBucket   int
	EndItem     int
}

// DefaultWindow returns the one-bucket window used at mount.
// With no buckets it is the all-zero window.
func DefaultWindow(index *BucketIndex) WindowState {
	if index.Len() == 0 {
		return WindowState{}
	}
	return WindowState{StartBucket: 0, StartItem: 0, EndBucket: 1, EndItem: 0}
}

// JumpWindow returns the window covering exactly bucket target.
func JumpWindow(index *BucketIndex, target int) WindowState {
	if index.Len() == 0 {
		return WindowState{}
	}
	target = clampi(target, 0, index.Len()-1)
	return WindowState{
		StartBucket: target,
		StartItem:   0,
		EndBucket:   target + 1,
		EndItem:     index.Count(target),
	}
}

// IsEmpty reports whether the window includes no buckets.
func (w WindowState) IsEmpty() bool {
	return w.EndBucket <= w.StartBucket
}

// Contains reports whether bucket i is inside [StartBucket, EndBucket).
func (w WindowState) Contains(bucket int) bool {
	return bucket >= w.StartBucket && bucket < w.EndBucket
}

// Buckets returns the number of buckets in the window.
func (w WindowState) Buckets() int {
	if w.IsEmpty() {
		return 0
	}
	return w.EndBucket - w.StartBucket
}

// ItemRange returns the materialized [from, to) item range of a bucket.
// Buckets outside the window return an empty range.
func (w WindowState) ItemRange(index *BucketIndex, bucket int) (from, to int) {
	if !w.Contains(bucket) {
		return 0, 0
	}
	from, to = 0, index.Count(bucket)
	if bucket == w.StartBucket {
		from = w.StartItem
	}
	if bucket == w.EndBucket-1 {
		to = w.EndItem
	}
	if to < from {
		to = from
	}
	return from, to
}

// ItemCount returns the total number of materialized items.
func (w WindowState) ItemCount(index *BucketIndex) int {
	n := 0
	for b := w.StartBucket; b < w.EndBucket; b++ {
		from, to := w.ItemRange(index, b)
		n += to - from
	}
	return n
}

// startsBefore reports whether w starts earlier than other in (bucket, item) order.
func (w WindowState) startsBefore(other WindowState) bool {
	if w.StartBucket != other.StartBucket {
		return w.StartBucket < other.StartBucket
	}
	return w.StartItem < other.StartItem
}

func (w WindowState) String() string {
	return fmt.Sprintf("[%d:%d, %d:%d)", w.StartBucket, w.StartItem, w.EndBucket, w.EndItem)
}

// nextMultiple returns the smallest multiple of step strictly greater than v.
func nextMultiple(v, step int) int {
	return (v/step + 1) * step
}

// prevMultiple returns the largest multiple of step strictly less than v,
// never below zero.
func prevMultiple(v, step int) int {
	if v <= 0 {
		return 0
	}
	return ((v - 1) / step) * step
}
