package fault

import (
	stderrors "errors"

	"github.com/kbukum/railway/errors"
	"github.com/kbukum/railway/result"
)

// Kind is the constraint for taxonomy members: a closed, comparable
// enumeration that can name itself for logs and telemetry.
type Kind interface {
	comparable
	String() string
}

// Rule maps a family of errors to a single Kind.
type Rule[K Kind] struct {
	kind  K
	match func(error) bool
}

// Kind returns the taxonomy member the rule produces.
func (r Rule[K]) Kind() K { return r.kind }

// Is matches errors for which errors.Is(err, target) holds.
func Is[K Kind](target error, kind K) Rule[K] {
	return Rule[K]{kind: kind, match: func(err error) bool {
		return stderrors.Is(err, target)
	}}
}

// As matches errors whose chain contains a value of type E.
func As[E error, K Kind](kind K) Rule[K] {
	return Rule[K]{kind: kind, match: func(err error) bool {
		var target E
		return stderrors.As(err, &target)
	}}
}

// Code matches errors whose chain contains an *errors.AppError with code.
func Code[K Kind](code errors.ErrorCode, kind K) Rule[K] {
	return Rule[K]{kind: kind, match: func(err error) bool {
		got, ok := errors.CodeOf(err)
		return ok && got == code
	}}
}

// When matches errors for which pred returns true.
func When[K Kind](pred func(error) bool, kind K) Rule[K] {
	return Rule[K]{kind: kind, match: pred}
}

// Classifier maps expected errors onto a taxonomy. Rules are checked in the
// order they were given and the first match wins. A Classifier is immutable
// and safe for concurrent use.
type Classifier[K Kind] struct {
	rules []Rule[K]
}

// New creates a Classifier from rules.
func New[K Kind](rules ...Rule[K]) *Classifier[K] {
	return &Classifier[K]{rules: append([]Rule[K](nil), rules...)}
}

// Classify returns the Kind for err, or false when err is nil or no rule
// recognizes it.
func (c *Classifier[K]) Classify(err error) (K, bool) {
	var zero K
	if err == nil {
		return zero, false
	}
	for _, r := range c.rules {
		if r.match(err) {
			return r.kind, true
		}
	}
	return zero, false
}

// Kinds returns the distinct kinds the classifier can produce, in rule order.
func (c *Classifier[K]) Kinds() []K {
	seen := make(map[K]struct{}, len(c.rules))
	kinds := make([]K, 0, len(c.rules))
	for _, r := range c.rules {
		if _, ok := seen[r.kind]; ok {
			continue
		}
		seen[r.kind] = struct{}{}
		kinds = append(kinds, r.kind)
	}
	return kinds
}

// Wrap runs producer and converts its outcome into a Result.
//
// On success it returns Success(value) and a nil error. When producer fails
// with an error c recognizes it returns Failure(kind) and a nil error. Any
// other error is returned as is, together with the zero Result, which the
// caller must not use.
func Wrap[T any, K Kind](c *Classifier[K], producer func() (T, error)) (result.Result[T, K], error) {
	value, err := producer()
	if err == nil {
		return result.Success[T, K](value), nil
	}
	return Resolve[T](c, err)
}

// Resolve converts a non-nil producer error into a Failure, or returns it
// unchanged when c does not recognize it. err must not be nil.
func Resolve[T any, K Kind](c *Classifier[K], err error) (result.Result[T, K], error) {
	if kind, ok := c.Classify(err); ok {
		return result.Failure[T](kind), nil
	}
	return result.Result[T, K]{}, err
}

// Lift adapts a fallible transform into a classified continuation for Chain.
func Lift[T, U any, K Kind](c *Classifier[K], fn func(T) (U, error)) func(T) (result.Result[U, K], error) {
	return func(v T) (result.Result[U, K], error) {
		return Wrap(c, func() (U, error) { return fn(v) })
	}
}

// Chain continues a classified chain. An escaped error from the previous step
// is returned unchanged, an Error result short-circuits, and only a Success
// invokes next.
func Chain[T, U any, K Kind](r result.Result[T, K], err error, next func(T) (result.Result[U, K], error)) (result.Result[U, K], error) {
	if err != nil {
		return result.Result[U, K]{}, err
	}
	o := result.Fold(r,
		func(v T) outcome[U, K] {
			res, err := next(v)
			return outcome[U, K]{res: res, err: err}
		},
		func(k K) outcome[U, K] {
			return outcome[U, K]{res: result.Failure[U](k)}
		},
	)
	return o.res, o.err
}

type outcome[T any, K Kind] struct {
	res result.Result[T, K]
	err error
}
