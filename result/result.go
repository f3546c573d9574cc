package result

import "fmt"

// Result holds either a success value of type T or an error value of type E.
//
// The zero Result is an Error carrying the zero E, so a Result is never in a
// state where neither variant applies.
type Result[T, E any] struct {
	value T
	err   E
	ok    bool
}

// Success creates a Result holding value.
func Success[T, E any](value T) Result[T, E] {
	return Result[T, E]{value: value, ok: true}
}

// Failure creates a Result holding err.
func Failure[T, E any](err E) Result[T, E] {
	return Result[T, E]{err: err}
}

// IsSuccess reports whether r holds a success value.
func (r Result[T, E]) IsSuccess() bool { return r.ok }

// IsError reports whether r holds an error value.
func (r Result[T, E]) IsError() bool { return !r.ok }

// Match calls onSuccess or onError depending on the variant. Exactly one of
// them is called.
func (r Result[T, E]) Match(onSuccess func(T), onError func(E)) {
	if r.ok {
		onSuccess(r.value)
		return
	}
	onError(r.err)
}

// String formats r as Success(value) or Error(err).
func (r Result[T, E]) String() string {
	if r.ok {
		return fmt.Sprintf("Success(%v)", r.value)
	}
	return fmt.Sprintf("Error(%v)", r.err)
}

// Fold collapses r into a single value by applying onSuccess to a success
// value or onError to an error value. Exactly one function is invoked.
func Fold[T, E, U any](r Result[T, E], onSuccess func(T) U, onError func(E) U) U {
	if r.ok {
		return onSuccess(r.value)
	}
	return onError(r.err)
}
