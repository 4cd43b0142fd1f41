package resource

// State is the discrete lifecycle state of a Resource. A resource is in
// exactly one state at a time.
type State int

const (
	// Unresolved means no load with a usable source key has completed and
	// no fetch is running.
	Unresolved State = iota

	// Pending means the first fetch is in flight and no value has ever
	// resolved.
	Pending

	// Ready means the last load succeeded (or an initial value was seeded)
	// and no fetch is in flight.
	Ready

	// Refreshing means a fetch is in flight while a previously resolved
	// value is still available.
	Refreshing

	// Errored means the last load failed. A previously resolved value may
	// still sit underneath, inspectable via Latest.
	Errored
)

// String returns the lifecycle state name.
func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Refreshing:
		return "refreshing"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}
