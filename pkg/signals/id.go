package signals

import "sync/atomic"

// idCounter is the source of unique IDs for all reactive primitives.
var idCounter uint64

// nextID returns the next unique primitive ID. IDs are monotonically
// increasing and never reused.
func nextID() uint64 {
	return atomic.AddUint64(&idCounter, 1)
}
