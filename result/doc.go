// Package result provides a generic two-variant outcome type and the
// combinators used to chain fallible steps without nested error checks.
//
// A Result[T, E] is either a Success holding a T or an Error holding an E.
// It is immutable once built and is only ever taken apart by Fold or Match,
// which force the caller to handle both variants.
//
// # Operators
//
//   - Success, Failure: construct a Result
//   - Fold: exhaustive eliminator returning a value
//   - Match: exhaustive eliminator for side effects
//   - Map: transform the success value with a total function
//   - FlatMap: continue with a Result-returning step
//   - MapError: rewrite the error value
//   - Sequence: run producers in order, stopping at the first Error
//   - Traverse: apply a Result-returning step to each value in order
//
// Map and FlatMap never invoke their function on an Error, so a failure at
// any step skips every later step and surfaces unchanged.
//
// # Usage
//
//	r := result.FlatMap(fetch(), func(raw string) result.Result[int, Kind] {
//	    return parse(raw)
//	})
//	msg := result.Fold(r,
//	    func(n int) string { return fmt.Sprintf("got %d", n) },
//	    func(k Kind) string { return "failed: " + k.String() },
//	)
package result
