// Package resource provides an asynchronous-data primitive built on a
// fine-grained reactive graph: given an optional reactive source and a
// fetcher, it produces a Resource exposing the latest resolved value, a
// discrete lifecycle state, loading and error accessors, and a Latest
// accessor that keeps serving the previous value while a refresh is in
// flight. Mutate overrides the value directly and Refetch re-invokes the
// fetcher.
//
// Basic usage:
//
//	user := resource.NewKeyed(
//	    func() (int, bool) { id := userID.Get(); return id, id != 0 },
//	    func(id int, info resource.Info[*User]) *resource.Task[*User] {
//	        return resource.Go(func() (*User, error) {
//	            return api.FetchUser(id)
//	        })
//	    },
//	)
//
//	// Whenever userID changes, the resource refetches. Stale completions
//	// from superseded fetches are discarded.
//	u, err := user.Read()
//
// A synchronous fetcher returns a settled Task (resource.Done or
// resource.Fail) and callers never observe an intermediate pending state.
// Two Refetch calls issued in the same synchronous turn collapse into one
// fetch; the window closes at the next microtask boundary.
//
// The engine talks to the reactive graph through the small Graph interface
// and to its data cell through Cell, so both can be substituted (custom
// storage, fake graph in tests). The default wiring uses pkg/signals.
package resource
