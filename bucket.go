package gallery

// BucketSpec is one record of the externally supplied bucket list.
type BucketSpec struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Bucket is a single ordered group of items with its running total.
type Bucket struct {
	Label           string
	Count           int
	CumulativeTotal int // Sum of counts of buckets 0..i inclusive
}

// BucketRef identifies a bucket for collaborators.
type BucketRef struct {
	Index int
	Label string
}

// BucketIndex is the immutable, ordered description of the dataset.
// It is created once per session and safe to read from anywhere.
type BucketIndex struct {
	buckets []Bucket
}

// NewBucketIndex builds the index and computes cumulative totals.
// Negative counts are treated as zero.
func NewBucketIndex(specs []BucketSpec) *BucketIndex {
	buckets := make([]Bucket, len(specs))
	total := 0
	for i, s := range specs {
		count := s.Count
		if count < 0 {
			count = 0
		}
		total += count
		buckets[i] = Bucket{Label: s.Label, Count: count, CumulativeTotal: total}
	}
	return &BucketIndex{buckets: buckets}
}

// Len returns the number of buckets.
func (b *BucketIndex) Len() int {
	if b == nil {
		return 0
	}
	return len(b.buckets)
}

// Bucket returns bucket i. Out-of-range indices return the zero Bucket.
func (b *BucketIndex) Bucket(i int) Bucket {
	if i < 0 || i >= b.Len() {
		return Bucket{}
	}
	return b.buckets[i]
}

// Count returns the item count of bucket i, or 0 when out of range.
func (b *BucketIndex) Count(i int) int {
	return b.Bucket(i).Count
}

// Cumulative returns the cumulative total through bucket i, or 0 when out of range.
func (b *BucketIndex) Cumulative(i int) int {
	return b.Bucket(i).CumulativeTotal
}

// Total returns the total number of items across all buckets.
func (b *BucketIndex) Total() int {
	if b.Len() == 0 {
		return 0
	}
	return b.buckets[len(b.buckets)-1].CumulativeTotal
}

// Ref returns the collaborator-facing reference for bucket i.
func (b *BucketIndex) Ref(i int) BucketRef {
	return BucketRef{Index: i, Label: b.Bucket(i).Label}
}
