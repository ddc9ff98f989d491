package sync

import "sync"

type (
	Once = sync.Once
	Map  = sync.Map
)

// OnceValue is sync.OnceValue. It is not swapped under protocol_deadlock;
// the deadlock detector only tracks mutexes.
func OnceValue[T any](f func() T) func() T { return sync.OnceValue(f) }
