package gallery

import "context"

// ItemKind is the media type of an item.
type ItemKind string

const (
	KindPhoto ItemKind = "photo"
	KindVideo ItemKind = "video"
)

// Item is the metadata of one media item.
type Item struct {
	ID   string   `json:"id"`
	Kind ItemKind `json:"kind"`
}

// Session is the dataset description fetched once per gallery session.
type Session struct {
	Buckets  []BucketSpec
	StepSize int // Items per growth step; 0 uses the configured step size
}

// Supplier provides the session's bucket list.
type Supplier interface {
	Session(ctx context.Context) (Session, error)
}

// Fetcher loads item metadata for the range [from, to) of a bucket.
type Fetcher interface {
	Fetch(ctx context.Context, bucket BucketRef, from, to int) ([]Item, error)
}

// Navigator receives the gallery's outward navigation events.
type Navigator interface {
	CurrentItemChanged(id string)
	JumpToBucket(index int)
}

// NavigatorFuncs adapts plain functions to Navigator. Nil fields are ignored.
type NavigatorFuncs struct {
	OnItem func(id string)
	OnJump func(index int)
}

func (n NavigatorFuncs) CurrentItemChanged(id string) {
	if n.OnItem != nil {
		n.OnItem(id)
	}
}

func (n NavigatorFuncs) JumpToBucket(index int) {
	if n.OnJump != nil {
		n.OnJump(index)
	}
}
