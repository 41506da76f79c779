package deed

import (
	"context"
	"errors"
)

// ErrNotFound covers both "unknown deed id" and "no assignable deed". It is an
// expected result variant, not a failure: handlers map it to 404.
var ErrNotFound = errors.New("deed not found")

// DeedStore owns the document catalog and its ground-truth metadata.
type DeedStore interface {
	Put(ctx context.Context, d Deed) (Deed, error)
	Get(ctx context.Context, id int64) (Deed, error)
	// ListAll returns the whole catalog in ascending id order.
	ListAll(ctx context.Context) ([]Deed, error)
	// UpdateMetadata corrects ground-truth fields on an existing deed.
	UpdateMetadata(ctx context.Context, d Deed) error
	CountWithFile(ctx context.Context) (int, error)
}

// AttemptStore persists grading results. Attempts are insert-only.
type AttemptStore interface {
	Insert(ctx context.Context, a Attempt) (Attempt, error)
	ListByUser(ctx context.Context, userID string) ([]Attempt, error)
	List(ctx context.Context, opts AttemptListOpts) ([]Attempt, error)
	// AttemptedDeedIDs is the set of deed ids the user has submitted at least
	// one attempt for.
	AttemptedDeedIDs(ctx context.Context, userID string) (map[int64]bool, error)
	Stats(ctx context.Context) (Stats, error)
}

// ContentProbe abstracts over the blob backend (local disk or object storage)
// without this package knowing which.
type ContentProbe interface {
	Exists(ctx context.Context, key string) (bool, error)
}
