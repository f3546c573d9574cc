package result

// Map applies f to the success value of r. An Error is returned unchanged and
// f is not called. f must not fail; use FlatMap for steps that can.
func Map[T, U, E any](r Result[T, E], f func(T) U) Result[U, E] {
	if !r.ok {
		return Failure[U](r.err)
	}
	return Success[U, E](f(r.value))
}

// FlatMap continues with f when r is a Success and returns whatever f
// returns, including its Error. An Error is returned unchanged and f is not
// called.
func FlatMap[T, U, E any](r Result[T, E], f func(T) Result[U, E]) Result[U, E] {
	if !r.ok {
		return Failure[U](r.err)
	}
	return f(r.value)
}

// MapError applies g to the error value of r. A Success keeps its value and
// g is not called.
func MapError[T, E, F any](r Result[T, E], g func(E) F) Result[T, F] {
	if r.ok {
		return Success[T, F](r.value)
	}
	return Failure[T](g(r.err))
}

// Sequence calls each producer in order and collects the success values.
// It stops at the first Error and returns it; producers after that one are
// never called.
func Sequence[T, E any](producers ...func() Result[T, E]) Result[[]T, E] {
	values := make([]T, 0, len(producers))
	for _, produce := range producers {
		r := produce()
		if !r.ok {
			return Failure[[]T](r.err)
		}
		values = append(values, r.value)
	}
	return Success[[]T, E](values)
}

// Traverse applies f to each value in order and collects the results. It
// stops at the first Error; f is not called for the remaining values.
func Traverse[T, U, E any](values []T, f func(T) Result[U, E]) Result[[]U, E] {
	out := make([]U, 0, len(values))
	for _, v := range values {
		r := f(v)
		if !r.ok {
			return Failure[[]U](r.err)
		}
		out = append(out, r.value)
	}
	return Success[[]U, E](out)
}
