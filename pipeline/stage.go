package pipeline

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/railway/fault"
	"github.com/kbukum/railway/logger"
	"github.com/kbukum/railway/result"
)

// Stage is a lazily evaluated chain ending in a value of type T. Stages are
// immutable; extending one returns a new Stage and leaves the original
// usable on its own.
type Stage[T any, K fault.Kind] struct {
	p     *Pipeline[K]
	names []string
	run   func(ctx context.Context, rn *run) (result.Result[T, K], error)
}

// Start begins a chain with a producer. The producer's error is classified
// with the pipeline's classifier.
func Start[T any, K fault.Kind](p *Pipeline[K], stage string, producer func(context.Context) (T, error)) *Stage[T, K] {
	info := stageInfo{name: stage, index: 0}
	return &Stage[T, K]{
		p:     p,
		names: []string{stage},
		run: func(ctx context.Context, rn *run) (result.Result[T, K], error) {
			return execute(ctx, p, rn, info, func(ctx context.Context) (result.Result[T, K], error) {
				return fault.Wrap(p.classifier, withRetry(ctx, p, rn, info, func() (T, error) {
					return producer(ctx)
				}))
			})
		},
	}
}

// Then appends a fallible stage. fn runs only when every earlier stage
// succeeded, and its error is classified like a producer's.
func Then[T, U any, K fault.Kind](s *Stage[T, K], stage string, fn func(context.Context, T) (U, error)) *Stage[U, K] {
	p := s.p
	info := stageInfo{name: stage, index: len(s.names)}
	return &Stage[U, K]{
		p:     p,
		names: append(slices.Clip(s.names), stage),
		run: func(ctx context.Context, rn *run) (result.Result[U, K], error) {
			prev, err := s.run(ctx, rn)
			return fault.Chain(prev, err, func(v T) (result.Result[U, K], error) {
				return execute(ctx, p, rn, info, func(ctx context.Context) (result.Result[U, K], error) {
					return fault.Wrap(p.classifier, withRetry(ctx, p, rn, info, func() (U, error) {
						return fn(ctx, v)
					}))
				})
			})
		},
	}
}

// Bind appends a stage whose function already returns a Result. It is
// observed like any named stage but never retried.
func Bind[T, U any, K fault.Kind](s *Stage[T, K], stage string, fn func(context.Context, T) result.Result[U, K]) *Stage[U, K] {
	p := s.p
	info := stageInfo{name: stage, index: len(s.names)}
	return &Stage[U, K]{
		p:     p,
		names: append(slices.Clip(s.names), stage),
		run: func(ctx context.Context, rn *run) (result.Result[U, K], error) {
			prev, err := s.run(ctx, rn)
			return fault.Chain(prev, err, func(v T) (result.Result[U, K], error) {
				return execute(ctx, p, rn, info, func(ctx context.Context) (result.Result[U, K], error) {
					return fn(ctx, v), nil
				})
			})
		},
	}
}

// Map applies a total transform to a successful value. It is not a named
// stage: it emits no span, metric or event. It does not run once the
// context is done; the context error is resolved with the classifier.
func Map[T, U any, K fault.Kind](s *Stage[T, K], fn func(T) U) *Stage[U, K] {
	p := s.p
	return &Stage[U, K]{
		p:     p,
		names: s.names,
		run: func(ctx context.Context, rn *run) (result.Result[U, K], error) {
			prev, err := s.run(ctx, rn)
			return fault.Chain(prev, err, func(v T) (result.Result[U, K], error) {
				if cerr := ctx.Err(); cerr != nil {
					return fault.Resolve[U](p.classifier, cerr)
				}
				return result.Success[U, K](fn(v)), nil
			})
		},
	}
}

// Tap calls fn with a successful value and passes the value through
// unchanged. Like Map it is not a named stage and does not run once the
// context is done.
func Tap[T any, K fault.Kind](s *Stage[T, K], fn func(context.Context, T)) *Stage[T, K] {
	p := s.p
	return &Stage[T, K]{
		p:     p,
		names: s.names,
		run: func(ctx context.Context, rn *run) (result.Result[T, K], error) {
			prev, err := s.run(ctx, rn)
			return fault.Chain(prev, err, func(v T) (result.Result[T, K], error) {
				if cerr := ctx.Err(); cerr != nil {
					return fault.Resolve[T](p.classifier, cerr)
				}
				fn(ctx, v)
				return prev, nil
			})
		},
	}
}

// Names returns the named stages in declaration order.
func (s *Stage[T, K]) Names() []string {
	return slices.Clone(s.names)
}

// Pipeline returns the pipeline the chain was started on.
func (s *Stage[T, K]) Pipeline() *Pipeline[K] { return s.p }

// Run evaluates the chain once. A Failure result means a stage failed with
// a classified kind. A non-nil error means a stage raised a fault the
// classifier does not recognise; the error is returned unchanged and the
// Result must be ignored.
//
// The context passed to stage functions carries the run ID, see
// logger.RunIDFromContext.
func (s *Stage[T, K]) Run(ctx context.Context) (result.Result[T, K], error) {
	rn := &run{id: uuid.NewString()}
	ctx = logger.ContextWithRunID(ctx, rn.id)

	start := time.Now()
	r, err := s.run(ctx, rn)
	s.p.runFinished(ctx, rn, outcomeOf(r, err), time.Since(start))
	return r, err
}
