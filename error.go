package protocol

import "fmt"

var (
	ErrNilHandle     = fmt.Errorf("protocol: handle cannot be nil")
	errNilStructure  = fmt.Errorf("protocol: structure cannot be nil")
	errNoWorldHandle = fmt.Errorf("world isn't backed by a world server")
	errIDOutOfRange  = fmt.Errorf("protocol: packet id doesn't fit in 32 bits")
)

// InternalError wraps an error raised inside the server's own code
// while it was called on behalf of a packet container: a packet's
// encoder or decoder, or a world's entity lookup.
//
// It is never retried. The container stays usable.
type InternalError struct {
	err error
}

func (e InternalError) Error() string {
	return "protocol: internal error: " + e.err.Error()
}

func (e InternalError) Unwrap() error {
	return e.err
}

func wrapInternalError(err error) *InternalError {
	return &InternalError{err: err}
}

// ConstructionError is returned when a packet container can't be
// created: the handle is nil, the ID is unknown, or the handle
// doesn't match the ID's structure.
type ConstructionError struct {
	ID  int
	err error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("protocol: cannot construct packet %d: %v", e.ID, e.err)
}

func (e *ConstructionError) Unwrap() error {
	return e.err
}
