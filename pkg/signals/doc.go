// Package signals implements a fine-grained reactive graph: Signal cells,
// Memo derived computations, Effect subscriptions, batched updates, and
// tracking suppression.
//
// Reading a Signal or Memo inside a tracked context (a memo computation or
// an effect body) subscribes that computation to the value; writing the
// value re-runs subscribers. Batch coalesces any number of writes into a
// single notification pass, and Untracked reads without subscribing.
//
// Basic usage:
//
//	count := signals.New(0)
//	doubled := signals.NewMemo(func() int { return count.Get() * 2 })
//
//	signals.NewEffect(func() signals.Cleanup {
//	    fmt.Println("doubled is", doubled.Get())
//	    return nil
//	})
//
//	count.Set(2) // effect re-runs, prints "doubled is 4"
//
// All primitives are safe for concurrent use; dependency tracking is scoped
// per goroutine.
package signals
