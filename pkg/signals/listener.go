package signals

// Listener is anything that can be notified when a dependency changes.
// Memos and effects implement it; tests may supply their own.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	// For memos this invalidates the cached value; for effects it re-runs
	// the effect body.
	MarkDirty()

	// ID returns a unique identifier for this listener, used to deduplicate
	// notifications within a batch.
	ID() uint64
}

// sourceTracker is implemented by listeners that track which sources they
// subscribed to during their last run, so stale subscriptions can be
// dropped before the next run.
type sourceTracker interface {
	Listener
	addSource(*signalBase)
}

// Cleanup is returned by an effect body and runs before the effect re-runs
// or when it is disposed.
type Cleanup func()
