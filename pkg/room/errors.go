package room

import "errors"

var (
	// ErrNotFound means the room has never existed or is already gone.
	ErrNotFound = errors.New("room not found")
	// ErrStale means an event references a participant or an object
	// which is no longer present. Such events are dropped silently.
	ErrStale = errors.New("stale reference")
	// ErrBadObject means a canvas object without a usable id.
	ErrBadObject = errors.New("bad canvas object")
)
