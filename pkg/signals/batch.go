package signals

// Batch groups multiple signal writes into a single notification phase.
// All writes inside fn are collected, deduplicated by listener ID, and the
// affected listeners are notified once when the outermost batch completes.
//
// Example:
//
//	signals.Batch(func() {
//	    firstName.Set("John")
//	    lastName.Set("Doe")
//	})
//	// subscribers run once with both changes visible
func Batch(fn func()) {
	incrementBatchDepth()

	defer func() {
		if decrementBatchDepth() {
			processPendingUpdates()
		}
	}()

	fn()
}

// processPendingUpdates deduplicates and notifies all queued listeners.
func processPendingUpdates() {
	updates := drainPendingUpdates()
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	for _, listener := range updates {
		id := listener.ID()
		if seen[id] {
			continue
		}
		seen[id] = true
		listener.MarkDirty()
	}
}

// Untracked runs fn without recording signal reads as dependencies of the
// current listener. For a single signal read, Peek is clearer.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}

// UntrackedValue runs fn with tracking suppressed and returns its result.
func UntrackedValue[T any](fn func() T) T {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	return fn()
}
