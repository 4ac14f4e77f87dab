// Package store provides the version-controlled document store the
// editor writes through. Every file carries an opaque revision marker;
// writes supply the revision they were based on and fail distinctly
// when it is stale. A batch variant applies multiple operations as one
// change against a store-wide head revision.
package store

import "errors"

var (
	// ErrConflict means the supplied revision is stale: the file (or
	// the store head, for batches) changed since it was read. Callers
	// surface this to the user; it is never auto-merged.
	ErrConflict = errors.New("store: stale revision")

	// ErrNotFound means no file exists at the path.
	ErrNotFound = errors.New("store: not found")
)

// Revision is an opaque version token for a file or the store head.
type Revision string

// File is one stored document plus the revision it was read at.
type File struct {
	Path string
	Data []byte
	Rev  Revision
}

// Op is one step of a batch: a write when Data is set, a delete when
// Delete is set.
type Op struct {
	Path   string
	Data   []byte
	Delete bool
}

// Store is the document store contract. Implementations must hand out
// a changed Revision for every content change and reject writes based
// on stale revisions with ErrConflict.
type Store interface {
	// Read returns the file at path, or ErrNotFound.
	Read(path string) (File, error)

	// Write stores data at path. rev must match the current revision
	// of the file; pass the empty revision to create. Returns the new
	// revision.
	Write(path string, data []byte, rev Revision) (Revision, error)

	// Delete removes the file at path; rev must be current.
	Delete(path string, rev Revision) error

	// List returns the paths of all files under prefix.
	List(prefix string) ([]string, error)

	// Head returns the store-wide revision, changed by any write.
	Head() (Revision, error)

	// Apply performs all ops as a single change against base. If the
	// head moved since base was read, nothing is applied and
	// ErrConflict is returned.
	Apply(ops []Op, base Revision) (Revision, error)
}

// maxCommitRetries bounds how often Commit rebuilds a batch after a
// detected concurrent modification before giving up.
const maxCommitRetries = 3

// Commit applies a batch with bounded conflict retries. build is
// invoked with the current head each attempt so the caller can re-read
// state and rebuild its operations; any other error aborts immediately.
func Commit(s Store, build func(head Revision) ([]Op, error)) (Revision, error) {
	var lastErr error
	for attempt := 0; attempt <= maxCommitRetries; attempt++ {
		head, err := s.Head()
		if err != nil {
			return "", err
		}
		ops, err := build(head)
		if err != nil {
			return "", err
		}
		rev, err := s.Apply(ops, head)
		if err == nil {
			return rev, nil
		}
		if !errors.Is(err, ErrConflict) {
			return "", err
		}
		lastErr = err
	}
	return "", lastErr
}
